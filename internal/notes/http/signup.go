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

type SignupHandler struct {
	AuthService *service.AuthService
	Sessions    *jwtx.Issuer
	Production  bool
}

type signupRequest struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ServeHTTP handles user registration.
//
//	@Summary		Register a new user
//	@Description	Creates a user account, issues a session cookie, and sends an email verification code out of band.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		signupRequest	true	"Registration details"
//	@Success		201		{object}	SignupResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"Invalid email, duplicate username/email, or weak password"
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Router			/api/auth/signup [post].
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.AuthService.Signup(ctx, req.FullName, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			httpx.WriteError(w, http.StatusBadRequest, "Invalid email format")
		case errors.Is(err, service.ErrUsernameTaken):
			httpx.WriteError(w, http.StatusBadRequest, "Username is already taken")
		case errors.Is(err, service.ErrEmailTaken):
			httpx.WriteError(w, http.StatusBadRequest, "Email is already in use")
		case errors.Is(err, service.ErrPasswordTooShort):
			httpx.WriteError(w, http.StatusBadRequest, "Password must be at least 6 characters long")
		case errors.Is(err, service.ErrInvalidSignupRequest):
			httpx.WriteError(w, http.StatusBadRequest, "Invalid user data")
		default:
			log.Error("signup failed", "err", err)
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

	httpx.WriteJSON(w, http.StatusCreated, SignupResponse{
		User: UserSummary{
			ID:       user.ID,
			FullName: user.FullName,
			Username: user.Username,
			Email:    user.Email,
		},
	})
}
