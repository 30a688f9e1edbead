package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yuzvak/storefront-service/internal/infrastructure/http/middleware"
	"github.com/yuzvak/storefront-service/internal/infrastructure/monitoring"
)

func (s *Server) setupRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.middlewares()...)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", s.handlers.Health.HandleHealth())

	r.Route("/api", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			cart := s.handlers.Cart
			r.Get("/", cart.HandleGetCart)
			r.Delete("/", cart.HandleClear)
			r.Post("/toggle", cart.HandleToggle)
			r.Post("/items", cart.HandleAddItem)
			r.Put("/items/{productId}", cart.HandleUpdateQuantity)
			r.Delete("/items/{productId}", cart.HandleRemoveItem)
			r.Post("/items/{productId}/increment", cart.HandleIncrement)
			r.Post("/items/{productId}/decrement", cart.HandleDecrement)
		})

		r.Route("/checkout", func(r chi.Router) {
			checkout := s.handlers.Checkout
			r.Get("/", checkout.HandleSummary)
			r.Post("/promo", checkout.HandleApplyPromo)
			r.Delete("/promo", checkout.HandleRemovePromo)
			r.Post("/validate", checkout.HandleValidateShipping)
			r.Post("/orders", checkout.HandlePlaceOrder)
		})

		r.Get("/orders/{orderId}", s.handlers.Orders.HandleGetOrder)

		r.Route("/admin", func(r chi.Router) {
			admin := s.handlers.Admin
			r.Use(middleware.NewAdminOnlyMiddleware(s.session, s.logger))
			r.Get("/orders", admin.HandleListOrders)
			r.Put("/orders/{orderId}/status", admin.HandleUpdateOrderStatus)
			r.Get("/promo-codes", admin.HandleListPromoCodes)
			r.Post("/promo-codes", admin.HandleCreatePromoCode)
			r.Delete("/promo-codes/{id}", admin.HandleDeletePromoCode)
		})
	})

	return r
}

const requestTimeout = 30 * time.Second

func (s *Server) middlewares() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		chimiddleware.Timeout(requestTimeout),
		s.corsMiddleware,
		middleware.NewRequestIDMiddleware(s.ids),
		monitoring.WrapHandler,
		middleware.NewLoggingMiddleware(s.logger),
		middleware.NewRecoveryMiddleware(s.logger),
	}
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Request-ID")
		w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")
		w.Header().Set("Access-Control-Max-Age", "300")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
