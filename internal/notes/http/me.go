package http

import (
	"net/http"

	"github.com/inkwellhq/inkwell/internal/notes/service"
	"github.com/inkwellhq/inkwell/pkg/httpx"
	"github.com/inkwellhq/inkwell/pkg/slogx"
)

type MeHandler struct {
	NotesService *service.NotesService
}

// ServeHTTP returns the authenticated user's record.
//
//	@Summary		Get current identity
//	@Description	Returns the user resolved from the session cookie, minus the password hash.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	UserResponse
//	@Failure		401	{object}	httpx.ErrorResponse	"Missing or invalid session"
//	@Failure		404	{object}	httpx.ErrorResponse	"User deleted after token issuance"
//	@Failure		500	{object}	httpx.ErrorResponse
//	@Router			/api/auth/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := UserFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	notes, err := h.NotesService.ListNotes(ctx, user.ID)
	if err != nil {
		log.Error("failed to list notes for profile", "user_id", user.ID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user, noteIDs(notes)))
}
