package service_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/inkwellhq/inkwell/internal/notes/domain"
	"github.com/inkwellhq/inkwell/internal/notes/service"
	"github.com/inkwellhq/inkwell/internal/notes/store/drivers/sqlite"
	"github.com/inkwellhq/inkwell/pkg/cryptox"
	"github.com/inkwellhq/inkwell/pkg/idx"
	"github.com/stretchr/testify/require"
)

// captureSender records delivered codes so tests can replay them.
type captureSender struct {
	mu    sync.Mutex
	codes map[string]string
}

func newCaptureSender() *captureSender {
	return &captureSender{codes: make(map[string]string)}
}

func (c *captureSender) SendOTP(_ context.Context, email, code string, _ time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.codes[email] = code
	return nil
}

func (c *captureSender) codeFor(email string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.codes[email]
}

func newAuthService(t *testing.T) (*service.AuthService, *captureSender) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	sender := newCaptureSender()
	return &service.AuthService{Store: st, OTPSender: sender}, sender
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	auth, sender := newAuthService(t)

	user, err := auth.Signup(ctx, "Alice Blue", "alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "alice", user.Username)

	// The stored credential is a hash, never the plaintext.
	require.NotEqual(t, "secret1", user.PasswordHash)
	require.NoError(t, cryptox.VerifyPassword("secret1", user.PasswordHash))

	// A pending verification code was generated and delivered out of band.
	require.NotNil(t, user.OTP)
	require.NotNil(t, user.OTPExpiresAt)
	require.WithinDuration(t, time.Now().Add(5*time.Minute), *user.OTPExpiresAt, 5*time.Second)
	require.Equal(t, *user.OTP, sender.codeFor("alice@example.com"))
	require.Len(t, sender.codeFor("alice@example.com"), 6)
}

func TestSignupValidation(t *testing.T) {
	ctx := context.Background()
	auth, _ := newAuthService(t)

	_, err := auth.Signup(ctx, "Alice Blue", "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		fullName string
		username string
		email    string
		password string
		want     error
	}{
		{"bad email", "B", "bob", "not-an-email", "secret1", service.ErrInvalidEmail},
		{"email without domain", "B", "bob", "bob@", "secret1", service.ErrInvalidEmail},
		{"username taken", "B", "alice", "bob@example.com", "secret1", service.ErrUsernameTaken},
		{"email taken", "B", "bob", "alice@example.com", "secret1", service.ErrEmailTaken},
		{"password too short", "B", "bob", "bob@example.com", "five5", service.ErrPasswordTooShort},
		{"missing full name", "", "bob", "bob@example.com", "secret1", service.ErrInvalidSignupRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Signup(ctx, tt.fullName, tt.username, tt.email, tt.password)
			require.ErrorIs(t, err, tt.want)
		})
	}

	// None of the rejected signups created a record.
	_, err = auth.Login(ctx, "bob", "secret1")
	require.ErrorIs(t, err, service.ErrInvalidUsername)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	auth, _ := newAuthService(t)

	created, err := auth.Signup(ctx, "Alice Blue", "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		user, err := auth.Login(ctx, "alice", "secret1")
		require.NoError(t, err)
		require.Equal(t, created.ID, user.ID)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := auth.Login(ctx, "mallory", "secret1")
		require.ErrorIs(t, err, service.ErrInvalidUsername)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := auth.Login(ctx, "alice", "wrongpass")
		require.ErrorIs(t, err, service.ErrInvalidPassword)
	})

	t.Run("password is case sensitive", func(t *testing.T) {
		_, err := auth.Login(ctx, "alice", strings.ToUpper("secret1"))
		require.ErrorIs(t, err, service.ErrInvalidPassword)
	})
}

func TestVerifyOTP(t *testing.T) {
	ctx := context.Background()
	auth, sender := newAuthService(t)

	_, err := auth.Signup(ctx, "Alice Blue", "alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	code := sender.codeFor("alice@example.com")

	t.Run("unknown email", func(t *testing.T) {
		require.ErrorIs(t,
			auth.VerifyOTP(ctx, "ghost@example.com", code),
			service.ErrUserNotFound)
	})

	t.Run("wrong code", func(t *testing.T) {
		wrong := "000000"
		if wrong == code {
			wrong = "000001"
		}
		require.ErrorIs(t,
			auth.VerifyOTP(ctx, "alice@example.com", wrong),
			service.ErrOTPMismatch)
	})

	t.Run("correct code clears the pending OTP", func(t *testing.T) {
		require.NoError(t, auth.VerifyOTP(ctx, "alice@example.com", code))

		user, err := auth.Store.Users().GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Nil(t, user.OTP)
		require.Nil(t, user.OTPExpiresAt)
	})

	t.Run("second attempt fails with no pending code", func(t *testing.T) {
		require.ErrorIs(t,
			auth.VerifyOTP(ctx, "alice@example.com", code),
			service.ErrNoPendingOTP)
	})
}

func TestVerifyOTPExpired(t *testing.T) {
	ctx := context.Background()
	auth, _ := newAuthService(t)

	// Seed a user whose code expired a minute ago.
	hash, err := cryptox.HashPassword("secret1")
	require.NoError(t, err)
	code := "123456"
	expired := time.Now().Add(-time.Minute)
	require.NoError(t, auth.Store.Users().CreateUser(ctx, domain.User{
		ID:           idx.New().String(),
		Username:     "carol",
		Email:        "carol@example.com",
		FullName:     "Carol Grey",
		PasswordHash: hash,
		OTP:          &code,
		OTPExpiresAt: &expired,
	}))

	require.ErrorIs(t,
		auth.VerifyOTP(ctx, "carol@example.com", code),
		service.ErrOTPExpired)

	// Failing on expiry keeps the pending code in place.
	user, err := auth.Store.Users().GetUserByEmail(ctx, "carol@example.com")
	require.NoError(t, err)
	require.NotNil(t, user.OTP)
}

func TestSignupDuplicateCreatesNoSecondRecord(t *testing.T) {
	ctx := context.Background()
	auth, _ := newAuthService(t)

	first, err := auth.Signup(ctx, "Alice Blue", "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	_, err = auth.Signup(ctx, "Impostor", "alice", "impostor@example.com", "secret2")
	require.ErrorIs(t, err, service.ErrUsernameTaken)

	// The original record is untouched.
	user, err := auth.Store.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, first.ID, user.ID)
	require.Equal(t, "alice@example.com", user.Email)
}
