package httpx

import (
	"net/http"
	"time"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "jwt"

// SetSessionCookie transports a freshly issued session token to the client.
// The cookie is always httpOnly. In production the frontend is served
// cross-site, so Secure and SameSite=None are required; outside production
// Lax keeps local development over plain HTTP working.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration, production bool) {
	sameSite := http.SameSiteLaxMode
	if production {
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   production,
		SameSite: sameSite,
	})
}

// ClearSessionCookie overwrites the session cookie with an immediately
// expiring empty value. The server holds no revocation state, so this is
// the whole of logout.
func ClearSessionCookie(w http.ResponseWriter, production bool) {
	sameSite := http.SameSiteLaxMode
	if production {
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   production,
		SameSite: sameSite,
	})
}
