package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/study-service/internal/api/http"
	"github.com/spec-kit/study-service/internal/api/http/handlers"
	"github.com/spec-kit/study-service/internal/auth"
	"github.com/spec-kit/study-service/internal/config"
	"github.com/spec-kit/study-service/internal/events"
	"github.com/spec-kit/study-service/internal/observability"
	"github.com/spec-kit/study-service/internal/persistence"
	"github.com/spec-kit/study-service/internal/pin"
	"github.com/spec-kit/study-service/internal/repository"
	"github.com/spec-kit/study-service/internal/service"
	"github.com/spec-kit/study-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	studyRepo := repository.NewStudyRepository(pool)

	authService := service.NewAuthService(*cfg, userRepo, dispatcher)
	studyService := service.NewStudyService(studyRepo, dispatcher)

	var pinStore pin.Store
	if err := redis.Ping(ctx); err == nil {
		pinStore = pin.NewRedisStore(redis.Client)
	} else {
		logger.Warn("redis unavailable; using in-process pin store", zap.Error(err))
		pinStore = pin.NewMemoryStore()
	}
	pinService := pin.NewService(cfg.Pairing, pinStore, userRepo, authService.TokenManager(), dispatcher, logger, metrics)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager())

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Pairing:        handlers.NewPairingHandler(pinService),
		Studies:        handlers.NewStudiesHandler(studyService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
