package main

import (
	"context"
	"log"
	"time"

	"filmorate/cmd"
	"filmorate/internal/data/repository"
	"filmorate/internal/wire"
	"filmorate/pkg/cache"
	"filmorate/pkg/database"
	"filmorate/pkg/metrics"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")
	metrics.RegisterDBPool(db.Stat)

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = database.Migrate(migrateCtx, db)
	cancel()
	if err != nil {
		logger.Fatal("Failed to apply schema", zap.Error(err))
	}

	// Popular-films cache is optional
	var popularCache cache.PopularCache = cache.Noop{}
	if config.Cache.RedisAddr != "" {
		redisCache := cache.NewRedisCache(config.Cache, logger)
		defer redisCache.Close()
		popularCache = redisCache
		logger.Info("Popular cache enabled", zap.String("redis", config.Cache.RedisAddr))
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, popularCache, db, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
	logger.Info("Server stopped")
}
