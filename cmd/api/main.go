package main

// @title osm2svg API
// @version 1.0.0
// @description Сервис построения чертежей горизонталей для плоттера. По охвату в градусах строит SVG с изолиниями рельефа, вписанными в страницу A4.
// @description
// @description Основные возможности:
// @description - Построение чертежа и отдача SVG в ответе
// @description - Построение чертежа с сохранением в каталог результатов
// @description - Метрики Prometheus

// @contact.name API Support

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

	_ "github.com/osm2svg/docs/swagger"
	"github.com/osm2svg/internal/app"
	"github.com/osm2svg/internal/config"
	httpDelivery "github.com/osm2svg/internal/delivery/http"
	"github.com/osm2svg/internal/delivery/http/handler"
	"github.com/osm2svg/internal/domain/repository"
	"github.com/osm2svg/internal/pkg/logger"
	"github.com/osm2svg/internal/repository/cache"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New("osm2svg-api", cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting osm2svg API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("contour_source", cfg.Terrain.Source),
		zap.Bool("render_cache", cfg.Cache.Enabled),
	)

	// 3. Connect to Redis (только для кеша чертежей)
	var cacheRepo repository.CacheRepository
	var redisClient *cache.Redis
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Health(ctx); err != nil {
			cancel()
			log.Fatal("Redis health check failed", zap.Error(err))
		}
		cancel()

		cacheRepo = cache.NewCacheRepository(redisClient)
		log.Info("Redis connected")
	}

	// 4. Initialize render pipeline (репозитории и use case)
	stack, err := app.NewRenderStack(cfg, afero.NewOsFs(), cacheRepo, log)
	if err != nil {
		log.Fatal("Failed to initialize render pipeline", zap.Error(err))
	}

	// 5. Initialize HTTP Handlers
	renderHandler := handler.NewRenderHandler(stack.UseCase, log)

	log.Info("HTTP handlers initialized")

	// 6. Initialize HTTP Server
	server := httpDelivery.NewServer(cfg, log, renderHandler)

	log.Info("HTTP server initialized")

	// 7. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := stack.Close(); err != nil {
		log.Error("Failed to close render pipeline", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
