package middleware

import (
	"net/http"

	"github.com/yuzvak/storefront-service/internal/pkg/generator"
	"github.com/yuzvak/storefront-service/internal/pkg/requestid"
)

// NewRequestIDMiddleware reuses an incoming X-Request-ID or assigns a new one,
// echoes it on the response and stores it on the request context so outbound
// API calls carry the same id.
func NewRequestIDMiddleware(ids generator.IDGenerator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestid.Header)
			if id == "" {
				id = ids.RequestID()
			}

			w.Header().Set(requestid.Header, id)
			next.ServeHTTP(w, r.WithContext(requestid.NewContext(r.Context(), id)))
		})
	}
}
