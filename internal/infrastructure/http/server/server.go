package server

import (
	"context"
	"net/http"
	"time"

	"github.com/yuzvak/storefront-service/internal/application/ports"
	"github.com/yuzvak/storefront-service/internal/infrastructure/http/handlers"
	"github.com/yuzvak/storefront-service/internal/pkg/generator"
	"github.com/yuzvak/storefront-service/internal/pkg/logger"
)

type Handlers struct {
	Health   *handlers.HealthHandler
	Cart     *handlers.CartHandler
	Checkout *handlers.CheckoutHandler
	Orders   *handlers.OrderHandler
	Admin    *handlers.AdminHandler
}

type Server struct {
	server   *http.Server
	logger   *logger.Logger
	handlers Handlers
	session  ports.SessionReader
	ids      generator.IDGenerator
}

func NewServer(addr string, h Handlers, session ports.SessionReader, ids generator.IDGenerator, logger *logger.Logger) *Server {
	s := &Server{
		logger:   logger,
		handlers: h,
		session:  session,
		ids:      ids,
	}

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.setupRoutes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) ListenAndServe() error {
	s.logger.Info("Starting HTTP server", "address", s.server.Addr)

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
