package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/KushalZanzari/neuroq-backend/internal/api/http"
	"github.com/KushalZanzari/neuroq-backend/internal/api/http/handlers"
	"github.com/KushalZanzari/neuroq-backend/internal/auth"
	"github.com/KushalZanzari/neuroq-backend/internal/config"
	"github.com/KushalZanzari/neuroq-backend/internal/events"
	"github.com/KushalZanzari/neuroq-backend/internal/llm"
	"github.com/KushalZanzari/neuroq-backend/internal/observability"
	"github.com/KushalZanzari/neuroq-backend/internal/persistence"
	"github.com/KushalZanzari/neuroq-backend/internal/repository"
	"github.com/KushalZanzari/neuroq-backend/internal/service"
	"github.com/KushalZanzari/neuroq-backend/internal/worker"
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

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	checkInRepo := repository.NewCheckInRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	// A missing API key is a valid state: analysis falls back to the
	// heuristic scorer and chat is unavailable.
	var analyzer service.SymptomAnalyzer
	var chatClient service.ChatClient
	if client := llm.NewClient(cfg.LLM); client != nil {
		analyzer = client
		chatClient = client
	} else {
		logger.Warn("GROQ_API_KEY not set; running analysis heuristic-only")
	}

	authService := service.NewAuthService(*cfg, userRepo)
	analysisService := service.NewAnalysisService(analyzer, metrics, logger)
	checkInService := service.NewCheckInService(checkInRepo, analysisService, dispatcher, redis.Handle(), logger)
	chatService := service.NewChatService(chatClient, logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.CORSOrigins, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Analyze:        handlers.NewAnalyzeHandler(analysisService),
		CheckIn:        handlers.NewCheckInHandler(checkInService),
		Chat:           handlers.NewChatHandler(chatService),
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
