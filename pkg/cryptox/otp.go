package cryptox

import (
	"crypto/rand"
	"math/big"
	"time"
)

// OTPTTL is how long a freshly generated verification code stays valid.
const OTPTTL = 5 * time.Minute

const (
	otpMin = 100000
	otpMax = 999999
)

// GenerateOTP returns a uniformly random 6-digit verification code and its
// expiry timestamp (now + OTPTTL). Generation is stateless; the caller is
// responsible for persisting and delivering the code.
func GenerateOTP() (string, time.Time, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", time.Time{}, err
	}

	code := big.NewInt(otpMin + n.Int64())
	return code.String(), time.Now().Add(OTPTTL), nil
}
