package main

// @title Itinerary Microservice API
// @version 1.0.0
// @description Микросервис построения однодневных маршрутов. Получает кандидатов от LLM, проверяет режим работы мест через Google Places, ранжирует их и жадно собирает маршрут в пределах бюджета времени с учётом дороги домой.

// @contact.name API Support
// @contact.email support@itinerary-microservice.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/itinerary-microservice/docs"
	"github.com/itinerary-microservice/internal/app"
	"github.com/itinerary-microservice/internal/config"
	httpDelivery "github.com/itinerary-microservice/internal/delivery/http"
	"github.com/itinerary-microservice/internal/delivery/http/handler"
	"github.com/itinerary-microservice/internal/pkg/logger"
	"github.com/itinerary-microservice/internal/repository/cache"
	redisRepo "github.com/itinerary-microservice/internal/repository/redis"
	"github.com/itinerary-microservice/internal/worker"
	"github.com/itinerary-microservice/internal/worker/trip"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Itinerary Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("gemini_model", cfg.Gemini.Model),
		zap.Bool("worker_enabled", cfg.Worker.Enabled),
	)

	// 3. Connect to Redis. Без кеша и воркера сервис работает и без него.
	redisRequired := cfg.Worker.Enabled
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		if redisRequired {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Warn("Redis unavailable, oracle cache disabled", zap.Error(err))
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 4. External services
	oracle, err := app.NewOracle(ctx, cfg, redisClient, log)
	if err != nil {
		log.Fatal("Failed to initialize recommendation oracle", zap.Error(err))
	}

	directory, err := app.NewDirectory(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize places directory", zap.Error(err))
	}

	// 5. Initialize Use Cases
	tripUC, err := app.NewTripUseCase(cfg, oracle, directory, log)
	if err != nil {
		log.Fatal("Failed to initialize trip use case", zap.Error(err))
	}

	log.Info("Use cases initialized")

	// 6. Initialize HTTP Handlers
	checkers := map[string]handler.HealthChecker{}
	if redisClient != nil && redisRequired {
		checkers["redis"] = redisClient
	}
	tripHandler := handler.NewTripHandler(tripUC, log)
	healthHandler := handler.NewHealthHandler(checkers, log)

	// 7. Initialize HTTP Server
	server := httpDelivery.NewServer(cfg, log, tripHandler, healthHandler)

	// 8. Optional in-process worker
	var workerManager *worker.WorkerManager
	if cfg.Worker.Enabled {
		streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
		workerManager = worker.NewWorkerManager(worker.DefaultShutdownTimeout, log)
		workerManager.Register(trip.NewPlanningWorker(streamRepo, tripUC, cfg.Worker.ConsumerGroup, log))

		if err := workerManager.Start(ctx); err != nil {
			log.Fatal("Failed to start workers", zap.Error(err))
		}
	}

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if workerManager != nil {
		if err := workerManager.Stop(); err != nil {
			log.Error("Error stopping workers", zap.Error(err))
		}
	}
	cancel()

	log.Info("Server stopped successfully")
}
