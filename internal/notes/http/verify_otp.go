package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/inkwellhq/inkwell/internal/notes/service"
	"github.com/inkwellhq/inkwell/pkg/httpx"
	"github.com/inkwellhq/inkwell/pkg/slogx"
)

type VerifyOTPHandler struct {
	AuthService *service.AuthService
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ServeHTTP handles email verification.
//
//	@Summary		Verify email
//	@Description	Checks the submitted verification code against the pending one and clears it on success.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		verifyOTPRequest	true	"Email and verification code"
//	@Success		200		{object}	httpx.MessageResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"No pending code, wrong code, or expired code"
//	@Failure		404		{object}	httpx.ErrorResponse	"Unknown email"
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Router			/api/auth/verify-otp [post].
func (h *VerifyOTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req verifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.AuthService.VerifyOTP(ctx, req.Email, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			httpx.WriteError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrNoPendingOTP):
			httpx.WriteError(w, http.StatusBadRequest, "No OTP found, please request again")
		case errors.Is(err, service.ErrOTPMismatch):
			httpx.WriteError(w, http.StatusBadRequest, "Invalid OTP")
		case errors.Is(err, service.ErrOTPExpired):
			httpx.WriteError(w, http.StatusBadRequest, "OTP expired")
		default:
			log.Error("otp verification failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, httpx.MessageResponse{Message: "OTP verified successfully"})
}
