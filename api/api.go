// Package api provides the HTTP surface of the authentication
// gateway: the login form, the protected dashboard and the logout
// action.
package api

import (
	"log/slog"
	"net/http"
	"os"

	_ "embed"

	"github.com/go-chi/chi/v5"
	"github.com/go-openapi/runtime/middleware"

	"github.com/jmcleod/authgate/session"
	"github.com/jmcleod/authgate/store"
)

// API holds the dependencies needed by the HTTP handlers.
type API struct {
	store    store.Store
	sessions *session.Manager
	logger   *slog.Logger
}

//go:embed openapi.yaml
var openapiSpec []byte

// Option configures the API instance.
type Option func(*API)

// WithLogger sets the structured logger for authentication events.
// If not set, a default JSON logger writing to stderr is used.
func WithLogger(logger *slog.Logger) Option {
	return func(a *API) {
		a.logger = logger
	}
}

// New creates a new API instance over the given credential store and
// session manager.
func New(st store.Store, sessions *session.Manager, opts ...Option) *API {
	a := &API{
		store:    st,
		sessions: sessions,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	return a
}

// Router returns a chi.Router with all routes mounted.
func (a *API) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})

	r.Handle("/docs*", middleware.SwaggerUI(middleware.SwaggerUIOpts{
		SpecURL: "/openapi.yaml",
		Path:    "docs",
	}, nil))

	r.Handle("/redoc*", middleware.Redoc(middleware.RedocOpts{
		SpecURL: "/openapi.yaml",
		Path:    "redoc",
	}, nil))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Get("/", a.LoginForm)
	r.Post("/", a.Login)
	r.With(a.RequireIdentity).Get("/dashboard", a.Dashboard)
	r.Get("/logout", a.Logout)

	return r
}
