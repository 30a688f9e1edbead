package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yuzvak/storefront-service/internal/application/commands"
	"github.com/yuzvak/storefront-service/internal/application/ports"
	"github.com/yuzvak/storefront-service/internal/application/use_cases"
	"github.com/yuzvak/storefront-service/internal/config"
	"github.com/yuzvak/storefront-service/internal/domain/checkout"
	"github.com/yuzvak/storefront-service/internal/infrastructure/api"
	"github.com/yuzvak/storefront-service/internal/infrastructure/events"
	"github.com/yuzvak/storefront-service/internal/infrastructure/http/handlers"
	"github.com/yuzvak/storefront-service/internal/infrastructure/http/server"
	"github.com/yuzvak/storefront-service/internal/infrastructure/monitoring"
	"github.com/yuzvak/storefront-service/internal/infrastructure/persistence/file"
	"github.com/yuzvak/storefront-service/internal/infrastructure/persistence/localstore"
	"github.com/yuzvak/storefront-service/internal/infrastructure/persistence/memory"
	"github.com/yuzvak/storefront-service/internal/infrastructure/persistence/postgres"
	"github.com/yuzvak/storefront-service/internal/infrastructure/persistence/redis"
	"github.com/yuzvak/storefront-service/internal/pkg/clock"
	"github.com/yuzvak/storefront-service/internal/pkg/generator"
	"github.com/yuzvak/storefront-service/internal/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	flag.Parse()

	cfg, configErr := config.LoadConfig(*configPath)
	if configErr != nil {
		logger.NewLogger().Fatal("Failed to load configuration", "error", configErr)
	}

	log := logger.NewLoggerWithLevel(cfg.Log.Level)
	defer log.Sync()
	log.Info("Starting Storefront Service", "storage_driver", cfg.Storage.Driver, "events_driver", cfg.Events.Driver)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	storage, db, closeStorage, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open storage", "error", err, "driver", cfg.Storage.Driver)
	}
	defer closeStorage()

	publisher, err := events.NewPublisher(cfg.Events, log)
	if err != nil {
		log.Fatal("Failed to create event publisher", "error", err)
	}
	defer publisher.Close()

	ids := generator.NewUUIDGenerator()
	clk := clock.NewRealClock()

	apiClient, err := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, ids, log)
	if err != nil {
		log.Fatal("Failed to create API client", "error", err)
	}

	cartRepo := localstore.NewCartRepository(storage, cfg.Storage.CartKey)
	sessionRepo := localstore.NewSessionRepository(storage, cfg.Storage.TokenKey, cfg.Storage.UserKey)

	cartStore := use_cases.NewCartStore(ctx, cartRepo, cfg.Checkout.Shipping(), log)
	calculator := checkout.NewCalculator(
		cfg.Checkout.Shipping(),
		cfg.Checkout.Tax(),
		checkout.NewPromotion(cfg.Checkout.PromoCode, cfg.Checkout.Discount()),
	)
	checkoutUseCase := use_cases.NewCheckoutUseCase(cartStore, calculator, sessionRepo, apiClient, publisher, clk, ids, log)
	adminUseCase := use_cases.NewAdminUseCase(sessionRepo, apiClient, clk, log)

	httpServer := server.NewServer(cfg.Server.Addr(), server.Handlers{
		Health:   handlers.NewHealthHandler(storage, cfg.Storage.Driver, log),
		Cart:     handlers.NewCartHandler(cartStore, commands.NewAddToCartHandler(cartStore, apiClient, log), log),
		Checkout: handlers.NewCheckoutHandler(cartStore, checkoutUseCase, commands.NewPlaceOrderHandler(checkoutUseCase, log), log),
		Orders:   handlers.NewOrderHandler(checkoutUseCase, log),
		Admin:    handlers.NewAdminHandler(adminUseCase, log),
	}, sessionRepo, ids, log)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if db != nil {
		g.Go(func() error {
			return monitoring.NewDBMetricsCollector(db).Run(gCtx, 30*time.Second)
		})
	}

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("Server stopped")
}

// openStorage returns the configured local storage driver. db is non-nil only
// for the postgres driver so pool metrics can be collected.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (ports.LocalStorage, *sql.DB, func(), error) {
	noop := func() {}

	switch cfg.Storage.Driver {
	case "memory":
		return memory.NewLocalStorage(), nil, noop, nil

	case "file":
		store, err := file.NewLocalStorage(cfg.Storage.Path)
		if err != nil {
			return nil, nil, noop, err
		}
		return store, nil, noop, nil

	case "redis":
		conn, err := redis.NewConnection(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, noop, err
		}
		closeFn := func() {
			if err := conn.Close(); err != nil {
				log.Error("Failed to close Redis connection", "error", err)
			}
		}
		return redis.NewLocalStorage(conn, cfg.Redis.Prefix), nil, closeFn, nil

	case "postgres":
		conn, err := postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			return nil, nil, noop, err
		}
		closeFn := func() {
			if err := conn.Close(); err != nil {
				log.Error("Failed to close database connection", "error", err)
			}
		}
		if err := postgres.RunMigrations(conn.GetDB(), log); err != nil {
			closeFn()
			return nil, nil, noop, err
		}
		return postgres.NewLocalStorage(conn), conn.GetDB(), closeFn, nil
	}

	return nil, nil, noop, errors.New("unknown storage driver " + cfg.Storage.Driver)
}
