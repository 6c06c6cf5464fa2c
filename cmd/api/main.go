package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/pizza-delivery/internal/api/http"
	"github.com/spec-kit/pizza-delivery/internal/api/http/handlers"
	"github.com/spec-kit/pizza-delivery/internal/auth"
	"github.com/spec-kit/pizza-delivery/internal/config"
	"github.com/spec-kit/pizza-delivery/internal/events"
	"github.com/spec-kit/pizza-delivery/internal/observability"
	"github.com/spec-kit/pizza-delivery/internal/persistence"
	"github.com/spec-kit/pizza-delivery/internal/repository"
	"github.com/spec-kit/pizza-delivery/internal/service"
	"github.com/spec-kit/pizza-delivery/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	readiness := map[string]handlers.Pinger{}
	var (
		userRepo  repository.UserRepository
		orderRepo repository.OrderRepository
	)
	if pool := pg.Pool; pool != nil {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pool, cfg.Postgres.MigrationsDir, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		userRepo = repository.NewUserRepository(pool)
		orderRepo = repository.NewOrderRepository(pool)
		readiness["postgres"] = pg
	} else {
		logger.Warn("using in-memory storage; data is lost on restart")
		userRepo = repository.NewMemoryUserRepository()
		orderRepo = repository.NewMemoryOrderRepository()
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()
	readiness["redis"] = redis

	tokens, err := auth.NewTokenManager(auth.TokenConfig{
		Secret:     cfg.Auth.JWTSecret,
		Algorithm:  cfg.Auth.JWTAlgorithm,
		AccessTTL:  cfg.Auth.AccessTTL(),
		RefreshTTL: cfg.Auth.RefreshTTL(),
	})
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo: userRepo,
		Tokens:   tokens,
		Attempts: persistence.NewLoginAttempts(redis, cfg.Auth.LoginLockout()),
		Metrics:  metrics,
		Logger:   logger,
	})
	guard := auth.NewGuard(authService.TokenManager(), userRepo)
	authMiddleware := auth.NewAuthMiddleware(guard)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	notifier := worker.NewNotificationWorker(events.NewInMemoryDispatcher(), cfg.Notification.Workers, logger)
	service.NewNotificationService(notifier, logger, cfg.Notification).RegisterHandlers()
	notifier.Start(workerCtx)

	orderService := service.NewOrderService(service.OrderDependencies{
		OrderRepo:  orderRepo,
		Dispatcher: notifier,
		Metrics:    metrics,
		Logger:     logger,
	})

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, readiness),
		Auth:           handlers.NewAuthHandler(authService),
		Orders:         handlers.NewOrdersHandler(orderService),
		AuthMiddleware: authMiddleware,
		Metrics:        promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}
	stopWorkers()
	notifier.Wait()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
