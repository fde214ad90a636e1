package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/inkwellhq/inkwell/internal/notes/domain"
	"github.com/inkwellhq/inkwell/internal/notes/store"
	"github.com/inkwellhq/inkwell/pkg/cryptox"
	"github.com/inkwellhq/inkwell/pkg/idx"
	"github.com/inkwellhq/inkwell/pkg/slogx"
)

// MinPasswordLength is the signup password policy. Enforced here, not in
// the hasher.
const MinPasswordLength = 6

var (
	ErrInvalidSignupRequest = errors.New("invalid signup request")
	ErrInvalidEmail         = errors.New("invalid email format")
	ErrUsernameTaken        = errors.New("username already taken")
	ErrEmailTaken           = errors.New("email already in use")
	ErrPasswordTooShort     = errors.New("password too short")

	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidPassword = errors.New("invalid password")

	ErrUserNotFound = errors.New("user not found")
	ErrNoPendingOTP = errors.New("no pending verification code")
	ErrOTPMismatch  = errors.New("verification code mismatch")
	ErrOTPExpired   = errors.New("verification code expired")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// OTPSender delivers a freshly generated verification code out of band.
// The code is intentionally never part of any HTTP response; production
// wires an email-backed sender, dev logs it, tests capture it.
type OTPSender interface {
	SendOTP(ctx context.Context, email, code string, expiresAt time.Time) error
}

// LogOTPSender writes the code to the service log. Dev-only stand-in
// until a real mail transport is wired up.
type LogOTPSender struct{}

func (LogOTPSender) SendOTP(ctx context.Context, email, code string, expiresAt time.Time) error {
	slogx.FromContext(ctx).Info("verification code issued",
		slog.String("email", email),
		slog.String("otp", code),
		slog.Time("expires_at", expiresAt),
	)
	return nil
}

// AuthService sequences the signup, login, and OTP verification flows.
// Session token issuance is the HTTP layer's job; this service only deals
// in user records.
type AuthService struct {
	Store     store.Store
	OTPSender OTPSender
}

// Signup validates the registration request, creates the user with a
// hashed password and a pending verification code, and hands the code to
// the OTPSender.
func (s *AuthService) Signup(
	ctx context.Context,
	fullName, username, email, password string,
) (domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input shape.
	if fullName == "" || username == "" {
		return domain.User{}, ErrInvalidSignupRequest
	}
	if err := validate.Var(email, "required,email"); err != nil {
		return domain.User{}, ErrInvalidEmail
	}

	// 2. Check username availability.
	if _, err := s.Store.Users().GetUserByUsername(ctx, username); err == nil {
		return domain.User{}, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check username availability", slog.Any("error", err))
		return domain.User{}, err
	}

	// 3. Check email availability.
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return domain.User{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check email availability", slog.Any("error", err))
		return domain.User{}, err
	}

	// 4. Enforce password policy before hashing.
	if len(password) < MinPasswordLength {
		return domain.User{}, ErrPasswordTooShort
	}

	// 5. Hash the password.
	passwordHash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	// 6. Generate the verification code.
	otp, otpExpiresAt, err := cryptox.GenerateOTP()
	if err != nil {
		log.Error("failed to generate verification code", slog.Any("error", err))
		return domain.User{}, err
	}

	newUser := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		OTP:          &otp,
		OTPExpiresAt: &otpExpiresAt,
	}

	// 7. Create the record. The availability checks above race with
	// concurrent signups; the unique indexes are the real enforcement, so
	// a loser resolves to the matching "taken" error here.
	if err := s.Store.Users().CreateUser(ctx, newUser); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, s.resolveTaken(ctx, username)
		}
		log.Error("failed to create user",
			slog.String("username", username),
			slog.Any("error", err),
		)
		return domain.User{}, err
	}

	// 8. Deliver the code out of band. Delivery failure doesn't undo the
	// signup; the user can request a fresh code later.
	if err := s.OTPSender.SendOTP(ctx, email, otp, otpExpiresAt); err != nil {
		log.Error("failed to deliver verification code",
			slog.String("email", email),
			slog.Any("error", err),
		)
	}

	log.Info("user registered",
		slog.String("user_id", newUser.ID),
		slog.String("username", newUser.Username),
	)

	return newUser, nil
}

// resolveTaken decides which uniqueness constraint a racing signup lost.
func (s *AuthService) resolveTaken(ctx context.Context, username string) error {
	if _, err := s.Store.Users().GetUserByUsername(ctx, username); err == nil {
		return ErrUsernameTaken
	}
	return ErrEmailTaken
}

// Login checks the username/password pair and returns the user record on
// success.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidUsername
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Warn("login attempt with wrong password",
				slog.String("username", username),
			)
			return domain.User{}, ErrInvalidPassword
		}
		log.Error("failed to verify password", slog.Any("error", err))
		return domain.User{}, err
	}

	log.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// VerifyOTP checks a submitted verification code against the pending one
// and clears it on success. A second attempt with the same code fails
// with ErrNoPendingOTP.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) error {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return err
	}

	if !user.HasPendingOTP() {
		return ErrNoPendingOTP
	}

	if *user.OTP != code {
		log.Warn("verification attempt with wrong code",
			slog.String("user_id", user.ID),
		)
		return ErrOTPMismatch
	}

	if time.Now().After(*user.OTPExpiresAt) {
		return ErrOTPExpired
	}

	if err := s.Store.Users().ClearUserOTP(ctx, user.ID); err != nil {
		log.Error("failed to clear verification code",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("email verified", slog.String("user_id", user.ID))
	return nil
}
