package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/frahmantamala/coursetrack/internal"
	"github.com/frahmantamala/coursetrack/internal/transport"
)

type Middleware struct {
	*transport.BaseHandler
	verifier *Verifier
}

// NewMiddleware builds the admin gate. A nil verifier (no public key
// configured) keeps the admin routes mounted but rejects every request, so
// a misconfigured deployment fails loudly instead of serving unprotected.
func NewMiddleware(baseHandler *transport.BaseHandler, verifier *Verifier) *Middleware {
	return &Middleware{BaseHandler: baseHandler, verifier: verifier}
}

// RequireAdmin verifies the bearer token and stores the admin subject in
// the request context for audit fields.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.verifier == nil {
			m.Logger.Warn("admin request rejected: no JWT public key configured", "path", r.URL.Path)
			m.WriteError(w, http.StatusServiceUnavailable, "admin access is not configured")
			return
		}

		token := m.ExtractTokenFromHeader(r)
		if token == "" {
			m.HandleServiceError(w, internal.ErrInvalidToken)
			return
		}

		claims, err := m.verifier.VerifyToken(token)
		if err != nil {
			m.Logger.Warn("admin token rejected",
				slog.String("path", r.URL.Path),
				slog.String("reason", strings.TrimSpace(err.Error())))
			m.HandleServiceError(w, err)
			return
		}

		ctx := internal.ContextWithAdmin(r.Context(), claims.AdminSubject())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
