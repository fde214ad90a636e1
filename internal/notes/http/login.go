package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/inkwellhq/inkwell/internal/notes/service"
	"github.com/inkwellhq/inkwell/pkg/httpx"
	"github.com/inkwellhq/inkwell/pkg/jwtx"
	"github.com/inkwellhq/inkwell/pkg/slogx"
)

type LoginHandler struct {
	AuthService  *service.AuthService
	NotesService *service.NotesService
	Sessions     *jwtx.Issuer
	Production   bool
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ServeHTTP handles login.
//
//	@Summary		Log in
//	@Description	Verifies the username/password pair and issues a session cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		loginRequest	true	"Credentials"
//	@Success		200		{object}	UserResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"Invalid username or password"
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Router			/api/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.AuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidUsername):
			httpx.WriteError(w, http.StatusBadRequest, "Invalid username")
		case errors.Is(err, service.ErrInvalidPassword):
			httpx.WriteError(w, http.StatusBadRequest, "Invalid password")
		default:
			log.Error("login failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	token, err := h.Sessions.Issue(user.ID)
	if err != nil {
		log.Error("failed to issue session token", "user_id", user.ID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.SetSessionCookie(w, token, h.Sessions.TTL, h.Production)

	notes, err := h.NotesService.ListNotes(ctx, user.ID)
	if err != nil {
		log.Error("failed to list notes for profile", "user_id", user.ID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user, noteIDs(notes)))
}
