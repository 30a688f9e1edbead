package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/yuzvak/storefront-service/internal/infrastructure/http/response"
	"github.com/yuzvak/storefront-service/internal/pkg/logger"
	"github.com/yuzvak/storefront-service/internal/pkg/requestid"
)

func NewRecoveryMiddleware(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error("Panic recovered",
						"error", err,
						"stack", string(debug.Stack()),
						"path", r.URL.Path,
						"method", r.Method,
						"request_id", requestid.FromContext(r.Context()),
					)

					response.WriteError(w, http.StatusInternalServerError, response.StatusInternalError, "Internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
