// Package httpapi exposes the vault over a JSON HTTP API: registration and
// login, bearer-token authenticated CRUD for credentials, notes and contacts,
// the audit trail, and backup exports.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/passvault/passvault/internal/logging"
	"github.com/passvault/passvault/internal/server/config"
	"github.com/passvault/passvault/internal/server/metrics"
	"github.com/passvault/passvault/internal/server/services"
)

// RouterDeps carries everything the router needs.
type RouterDeps struct {
	Config      *config.Config
	Logger      logging.Logger
	Users       *services.UserService
	Credentials *services.CredentialService
	Notes       *services.NoteService
	Contacts    *services.ContactService
	Backup      *services.BackupService
	Collector   *metrics.Collector
	Gatherer    prometheus.Gatherer
}

// NewRouter builds the full route tree.
//
// The auth endpoints sit behind a per-IP rate limiter and are the only
// API routes reachable without a token. Everything under the authenticated
// group sees the resolved user in the request context.
func NewRouter(deps *RouterDeps) (http.Handler, *ipRateLimiter) {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(requestMetrics(deps.Collector))

	authHandler := NewAuthHandler(deps.Users, deps.Logger, deps.Collector)
	credHandler := NewCredentialHandler(deps.Credentials, deps.Logger)
	noteHandler := NewNoteHandler(deps.Notes, deps.Logger)
	contactHandler := NewContactHandler(deps.Contacts, deps.Logger)
	sysHandler := NewSystemHandler(deps.Backup, deps.Config, deps.Logger)

	r.Get("/healthz", sysHandler.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))

	limiter := newIPRateLimiter(deps.Config.AuthRateLimitRPS, deps.Config.AuthRateLimitBurst)

	r.Route("/api/auth", func(r chi.Router) {
		r.Use(limiter.Middleware())
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(requireAuth(deps.Users, deps.Logger, deps.Collector))

		r.Route("/api/passwords", func(r chi.Router) {
			r.Post("/", credHandler.Create)
			r.Get("/", credHandler.List)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", credHandler.Get)
				r.Put("/", credHandler.Update)
				r.Delete("/", credHandler.Delete)
			})
		})

		r.Route("/api/notes", func(r chi.Router) {
			r.Post("/", noteHandler.Create)
			r.Get("/", noteHandler.List)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", noteHandler.Get)
				r.Put("/", noteHandler.Update)
				r.Delete("/", noteHandler.Delete)
			})
		})

		r.Route("/api/contacts", func(r chi.Router) {
			r.Post("/", contactHandler.Create)
			r.Get("/", contactHandler.List)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", contactHandler.Get)
				r.Put("/", contactHandler.Update)
				r.Delete("/", contactHandler.Delete)
			})
		})

		r.Get("/api/analytics/user", credHandler.Analytics)
		r.Get("/api/security/status", sysHandler.SecurityStatus)

		r.Route("/api/backup", func(r chi.Router) {
			r.Get("/status", sysHandler.BackupStatus)
			r.Post("/export", sysHandler.BackupExport)
		})
	})

	return r, limiter
}
