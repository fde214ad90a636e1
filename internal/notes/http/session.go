package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/inkwellhq/inkwell/internal/notes/domain"
	"github.com/inkwellhq/inkwell/internal/notes/store"
	"github.com/inkwellhq/inkwell/pkg/httpx"
	"github.com/inkwellhq/inkwell/pkg/slogx"
)

type ctxKey struct{}

var ctxKeyUser ctxKey

// contextWithUser attaches the resolved user to the request context.
func contextWithUser(ctx context.Context, u domain.User) context.Context {
	return context.WithValue(ctx, ctxKeyUser, u)
}

// UserFromContext returns the session's resolved user. The second return
// is false when the request never passed the gate.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(ctxKeyUser).(domain.User)
	return u, ok
}

// sessionGate resolves the session cookie to a live user record before a
// protected handler runs.
//
// No cookie, a bad signature, an expired token, or a token without a
// subject all reject with 401. A valid token whose user has since
// disappeared rejects with 404. Store failures surface as 500, never as
// a silent pass.
func (rt *Router) sessionGate() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			cookie, err := r.Cookie(httpx.SessionCookieName)
			if err != nil || cookie.Value == "" {
				httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized: no token provided")
				return
			}

			claims, err := rt.sessions.Verify(cookie.Value)
			if err != nil {
				log.Warn("session token rejected", "err", err)
				httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized: invalid token")
				return
			}

			user, err := rt.UserService.GetUserByID(ctx, claims.Subject)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					httpx.WriteError(w, http.StatusNotFound, "User not found")
					return
				}
				log.Error("session gate failed to load user",
					"user_id", claims.Subject, "err", err)
				httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			ctx = httpx.ContextWithUserID(ctx, user.ID)
			ctx = contextWithUser(ctx, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
