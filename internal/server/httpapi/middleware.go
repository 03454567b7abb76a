package httpapi

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/passvault/passvault/internal/logging"
	"github.com/passvault/passvault/internal/server/metrics"
	"github.com/passvault/passvault/internal/server/models"
	"github.com/passvault/passvault/internal/server/services"
)

type contextKey string

const userContextKey contextKey = "authenticated-user"

// identityResolver is what the auth middleware needs from the user service.
type identityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (*models.User, error)
}

// requireAuth authenticates requests via the Authorization: Bearer header and
// injects the resolved user into the request context. Rejections share one
// response body; the detail goes to the log only.
func requireAuth(resolver identityResolver, logger logging.Logger, collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				collector.RecordAuthFailure()
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token")
				return
			}

			user, err := resolver.ResolveIdentity(r.Context(), token)
			if err != nil {
				collector.RecordAuthFailure()
				logger.Warn(r.Context(), "token rejected",
					"ip", r.RemoteAddr, "endpoint", r.Method+" "+r.URL.Path, "error", err.Error())
				writeServiceError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// userFromContext returns the authenticated user placed by requireAuth.
func userFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// clientMeta extracts request attribution for the audit trail.
func clientMeta(r *http.Request) services.ClientMeta {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return services.ClientMeta{
		IPAddress: ip,
		UserAgent: r.UserAgent(),
	}
}

// requestMetrics records a counter and latency observation per request,
// labelled with the chi route pattern rather than the raw path so that
// record IDs do not explode label cardinality.
func requestMetrics(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			collector.RecordRequest(r.Method, route, ww.Status(), time.Since(start))
		})
	}
}
