package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the validity window for session tokens. Sessions
// are long-lived because there is no refresh flow; logout discards the
// client-held cookie.
const DefaultSessionTTL = 7 * 24 * time.Hour

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrExpired    = errors.New("jwtx: token expired")
	ErrIssuer     = errors.New("jwtx: issuer mismatch")
	ErrNoSubject  = errors.New("jwtx: missing subject claim")
)

// Claims are the session-token claims. The subject carries the user id;
// everything else is standard registered claims.
type Claims struct {
	jwt.RegisteredClaims
}

// Issuer mints and verifies HS256 session tokens with a single
// server-held secret.
type Issuer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// Issue signs a session token whose subject is the given user id. The
// token is valid from now until now + TTL.
func (i *Issuer) Issue(userID string) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl())),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.Secret)
}

// Verify parses and validates a session token: signature, expiry, issuer
// (when configured), and presence of a subject claim.
func (i *Issuer) Verify(raw string) (Claims, error) {
	var claims Claims

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if i.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.Issuer))
	}

	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return i.Secret, nil
	}, opts...)
	if err != nil {
		return Claims{}, mapJWTError(err)
	}

	if claims.Subject == "" {
		return Claims{}, ErrNoSubject
	}

	return claims, nil
}

func (i *Issuer) ttl() time.Duration {
	if i.TTL == 0 {
		return DefaultSessionTTL
	}
	return i.TTL
}

// mapJWTError flattens golang-jwt's error chain into our sentinels so
// callers can switch on errors.Is without importing the jwt package.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ErrIssuer
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	default:
		return ErrMalformed
	}
}
