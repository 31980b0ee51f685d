package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/osm2svg/internal/app"
	"github.com/osm2svg/internal/config"
	"github.com/osm2svg/internal/domain/repository"
	"github.com/osm2svg/internal/pkg/logger"
	"github.com/osm2svg/internal/repository/cache"
	redisRepo "github.com/osm2svg/internal/repository/redis"
	"github.com/osm2svg/internal/worker"
	"github.com/osm2svg/internal/worker/render"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New("osm2svg-worker", cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting osm2svg Render Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.String("contour_source", cfg.Terrain.Source),
		zap.String("result_dir", cfg.Output.ResultDir))

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Initialize repositories
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	var cacheRepo repository.CacheRepository
	if cfg.Cache.Enabled {
		cacheRepo = cache.NewCacheRepository(redisClient)
	}

	// 5. Initialize render pipeline
	stack, err := app.NewRenderStack(cfg, afero.NewOsFs(), cacheRepo, log)
	if err != nil {
		log.Fatal("Failed to initialize render pipeline", zap.Error(err))
	}
	defer stack.Close()

	// 6. Initialize workers
	renderWorker := render.NewRenderWorker(
		streamRepo,
		stack.UseCase,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxRetries,
		log,
	)

	// 7. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(worker.DefaultShutdownTimeout, log)
	workerManager.Register(renderWorker)

	// 8. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start workers
	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Cancel context to stop workers
	cancel()

	// Stop worker manager
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
