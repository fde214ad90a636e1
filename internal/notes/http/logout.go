package http

import (
	"net/http"

	"github.com/inkwellhq/inkwell/pkg/httpx"
)

type LogoutHandler struct {
	Production bool
}

// ServeHTTP handles logout.
//
// There is no server-side session state, so logout is an unconditional,
// idempotent cookie overwrite. A stolen token stays valid until its
// natural expiry; that is accepted behaviour, not a bug.
//
//	@Summary		Log out
//	@Description	Clears the session cookie. Always succeeds.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	httpx.MessageResponse
//	@Router			/api/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	httpx.ClearSessionCookie(w, h.Production)
	httpx.WriteJSON(w, http.StatusOK, httpx.MessageResponse{Message: "Logged out successfully"})
}
