package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jardelbordignon/gorestaurant-details-service/internal/clients"
	"github.com/jardelbordignon/gorestaurant-details-service/internal/config"
	"github.com/jardelbordignon/gorestaurant-details-service/internal/events"
	"github.com/jardelbordignon/gorestaurant-details-service/internal/handlers"
	"github.com/jardelbordignon/gorestaurant-details-service/internal/repository"
	"github.com/jardelbordignon/gorestaurant-details-service/internal/server"
	"github.com/jardelbordignon/gorestaurant-details-service/internal/service"
	"github.com/jardelbordignon/gorestaurant-details-service/internal/session"

	_ "github.com/lib/pq"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Starting details-service", zap.Int("port", cfg.Server.Port))

	storeClient := clients.NewHTTPStoreClient(cfg.StoreService, logger)

	var cache repository.FoodCache
	if cfg.Features.EnableFoodCaching {
		cache = repository.NewRedisFoodCache(cfg.Redis, logger)
	} else {
		cache = repository.NewMemoryFoodCache()
	}

	var journal repository.OrderJournal = repository.NopJournal{}
	if cfg.Features.EnableOrderJournal {
		db, err := initDatabase(cfg, logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		journal = repository.NewPostgresOrderJournal(db, logger)
	}

	var eventPublisher events.EventPublisher = events.NopPublisher{}
	if cfg.Features.EnableOrderEvents {
		eventPublisher = events.NewKafkaPublisher(cfg.Kafka, logger)
	}
	defer eventPublisher.Close()

	var favoritePolicy service.FavoritePolicy
	if cfg.Features.StrictFavoriteSync {
		favoritePolicy = service.NewStrictFavoritePolicy(logger)
	} else {
		favoritePolicy = service.NewOptimisticFavoritePolicy(logger)
	}

	sessionService := service.NewSessionService(
		storeClient,
		cache,
		journal,
		session.NewStore(),
		eventPublisher,
		favoritePolicy,
		cfg,
		logger,
	)

	h := handlers.NewHandlers(sessionService, cfg, logger)

	srv := server.New(h, cfg)

	go func() {
		logger.Info("Server starting",
			zap.Int("port", cfg.Server.Port),
			zap.Bool("food_caching", cfg.Features.EnableFoodCaching),
			zap.Bool("order_events", cfg.Features.EnableOrderEvents),
			zap.Bool("order_journal", cfg.Features.EnableOrderJournal),
			zap.Bool("strict_favorites", cfg.Features.StrictFavoriteSync),
		)
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func initDatabase(cfg *config.Config, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	logger.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("name", cfg.Database.Name),
	)

	return db, nil
}
