package middleware

import (
	"net/http"

	"github.com/yuzvak/storefront-service/internal/application/ports"
	"github.com/yuzvak/storefront-service/internal/infrastructure/http/response"
	"github.com/yuzvak/storefront-service/internal/pkg/logger"
)

// NewAdminOnlyMiddleware rejects requests unless the stored session user has the
// admin role.
func NewAdminOnlyMiddleware(session ports.SessionReader, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := session.User(r.Context())
			if err != nil {
				log.Warn("Failed to read session user", "error", err, "path", r.URL.Path)
			}
			if !user.IsAdmin() {
				response.WriteError(w, http.StatusForbidden, response.StatusForbidden, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
