package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/inkwellhq/inkwell/internal/notes/service"
	"github.com/inkwellhq/inkwell/internal/notes/store"
	"github.com/inkwellhq/inkwell/pkg/httpx"
	"github.com/inkwellhq/inkwell/pkg/jwtx"
	"github.com/inkwellhq/inkwell/pkg/slogx"

	_ "github.com/inkwellhq/inkwell/api/notes" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	sessions     *jwtx.Issuer
	production   bool
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	AuthService  *service.AuthService
	UserService  *service.UserService
	NotesService *service.NotesService
}

func NewRouter(
	sessions *jwtx.Issuer,
	production bool,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		sessions:     sessions,
		production:   production,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerNotes()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Inkwell Notes API
//	@version		0.1.0
//	@description	Personal note-taking service with cookie-based session auth.
//	@description
//	@description	Sessions are HS256-signed JWTs transported in an httpOnly cookie named "jwt".
//
//	@contact.name	Inkwell Team
//	@contact.url	https://github.com/inkwellhq/inkwell
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	signupHandler := &SignupHandler{
		AuthService: r.AuthService,
		Sessions:    r.sessions,
		Production:  r.production,
	}
	loginHandler := &LoginHandler{
		AuthService:  r.AuthService,
		NotesService: r.NotesService,
		Sessions:     r.sessions,
		Production:   r.production,
	}
	logoutHandler := &LogoutHandler{Production: r.production}
	verifyHandler := &VerifyOTPHandler{AuthService: r.AuthService}
	meHandler := &MeHandler{NotesService: r.NotesService}

	// Credential endpoints get the strict per-IP limit (brute force
	// prevention).
	r.Mux.Handle("POST /api/auth/signup",
		httpx.Chain(signupHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/verify-otp",
		httpx.Chain(verifyHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Logout is an unconditional cookie overwrite; no gate needed.
	r.Mux.Handle("POST /api/auth/logout",
		httpx.Chain(logoutHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /api/auth/me",
		httpx.Chain(meHandler,
			r.sessionGate(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerNotes() {
	h := &NotesHandler{NotesService: r.NotesService}

	secured := func(handler http.HandlerFunc) http.Handler {
		return httpx.Chain(handler,
			r.sessionGate(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /api/notes", secured(h.HandleList))
	r.Mux.Handle("GET /api/notes/{id}", secured(h.HandleGet))
	r.Mux.Handle("POST /api/notes", secured(h.HandleCreate))
	r.Mux.Handle("PUT /api/notes/{id}", secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /api/notes/{id}", secured(h.HandleDelete))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
