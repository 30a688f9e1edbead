package monitoring

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

type HTTPMetricsMiddleware struct {
	next http.Handler
}

func NewHTTPMetricsMiddleware(next http.Handler) *HTTPMetricsMiddleware {
	return &HTTPMetricsMiddleware{
		next: next,
	}
}

func (m *HTTPMetricsMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	wrapped := &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}

	handlerName := extractHandlerName(r.URL.Path)

	m.next.ServeHTTP(wrapped, r)

	duration := time.Since(start).Seconds()
	statusCode := strconv.Itoa(wrapped.statusCode)

	HTTPRequestDuration.WithLabelValues(handlerName, r.Method, statusCode).Observe(duration)
	HTTPRequestsTotal.WithLabelValues(handlerName, r.Method, statusCode).Inc()
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// extractHandlerName keeps label cardinality bounded by dropping ids from paths.
func extractHandlerName(path string) string {
	path = strings.TrimPrefix(path, "/")

	switch {
	case strings.HasPrefix(path, "api/admin/orders"):
		return "admin_orders"
	case strings.HasPrefix(path, "api/admin/promo-codes"):
		return "admin_promo_codes"
	case strings.HasPrefix(path, "api/cart/items"):
		return "cart_items"
	case strings.HasPrefix(path, "api/cart"):
		return "cart"
	case strings.HasPrefix(path, "api/checkout/promo"):
		return "checkout_promo"
	case strings.HasPrefix(path, "api/checkout/orders"):
		return "checkout_orders"
	case strings.HasPrefix(path, "api/checkout"):
		return "checkout"
	case strings.HasPrefix(path, "api/orders"):
		return "orders"
	case strings.HasPrefix(path, "metrics"):
		return "metrics"
	case strings.HasPrefix(path, "health"):
		return "health"
	default:
		return "unknown"
	}
}

func WrapHandler(handler http.Handler) http.Handler {
	return NewHTTPMetricsMiddleware(handler)
}
