package domain

import "time"

// User is the identity and credential record. OTP and OTPExpiresAt are
// either both set (verification pending) or both nil.
type User struct {
	ID           string
	Username     string
	Email        string
	FullName     string
	PasswordHash string // bcrypt encoded, never the plaintext
	ProfileImage string
	OTP          *string
	OTPExpiresAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPendingOTP reports whether the user still has an unverified
// email-verification code.
func (u User) HasPendingOTP() bool {
	return u.OTP != nil && u.OTPExpiresAt != nil
}
