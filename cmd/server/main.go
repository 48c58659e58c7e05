package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"haphuong/internal/config"
	"haphuong/internal/handlers"
	"haphuong/internal/repositories/interfaces"
	"haphuong/internal/repositories/memory"
	"haphuong/internal/repositories/mongodb"
	"haphuong/internal/seed"
	"haphuong/internal/services"
	"haphuong/pkg/cache"
	"haphuong/pkg/database"
	"haphuong/pkg/logger"
	"haphuong/pkg/websocket"
	"haphuong/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Output: "stdout",
		Colors: config.IsDevelopment(),
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	userRepo, tripRepo, bookingRepo, chatRepo, closeStores := buildStores(cfg, appLogger)
	defer closeStores()

	hub := websocket.NewHub(appLogger)
	go hub.Run()

	authService := services.NewAuthService(userRepo, cfg.Security.JWTSecret, appLogger)
	tripService := services.NewTripService(tripRepo, appLogger)
	bookingService := services.NewBookingService(bookingRepo, tripRepo, appLogger)
	chatService := services.NewChatService(chatRepo, userRepo, hub, appLogger)

	router := routes.SetupRouter(&routes.Handlers{
		Auth:    handlers.NewAuthHandler(authService, appLogger),
		Trip:    handlers.NewTripHandler(tripService, appLogger),
		Booking: handlers.NewBookingHandler(bookingService, appLogger),
		Chat:    handlers.NewChatHandler(chatService, appLogger),
		WS:      websocket.NewHandler(hub, cfg.Security.JWTSecret),
	}, cfg.Security.JWTSecret)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	appLogger.WithFields(map[string]interface{}{
		"addr":  addr,
		"store": cfg.App.StoreDriver,
	}).Info("Starting server")

	if err := http.ListenAndServe(addr, router); err != nil {
		appLogger.WithError(err).Fatal("Server stopped")
	}
}

// buildStores wires the repository layer for the configured store driver and
// returns a cleanup func for the underlying connections.
func buildStores(cfg *config.Config, appLogger *logger.Logger) (
	interfaces.UserRepository,
	interfaces.TripRepository,
	interfaces.BookingRepository,
	interfaces.ChatRepository,
	func(),
) {
	if cfg.App.StoreDriver == "memory" {
		userRepo := memory.NewUserRepository()
		tripRepo := memory.NewTripRepository()
		bookingRepo := memory.NewBookingRepository()
		chatRepo := memory.NewChatRepository()

		if cfg.App.SeedDemoData {
			stores := &seed.Stores{Users: userRepo, Trips: tripRepo, Chats: chatRepo}
			if err := seed.Demo(context.Background(), stores, "123456", appLogger); err != nil {
				appLogger.WithError(err).Fatal("Failed to seed demo data")
			}
		}

		return userRepo, tripRepo, bookingRepo, chatRepo, func() {}
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to MongoDB")
	}

	if err := db.EnsureIndexes(context.Background()); err != nil {
		appLogger.WithError(err).Fatal("Failed to ensure indexes")
	}

	var cacheService services.CacheService
	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		redisCache, err = cache.NewRedisCache(&cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to connect to Redis")
		}
		cacheService = services.NewCacheService(redisCache, appLogger)
	}

	userRepo := mongodb.NewUserRepository(db.Database)
	tripRepo := mongodb.NewTripRepository(db.Database, cacheService)
	bookingRepo := mongodb.NewBookingRepository(db.Database)
	chatRepo := mongodb.NewChatRepository(db.Database, cacheService)

	closeStores := func() {
		if redisCache != nil {
			redisCache.Close()
		}
		db.Close()
	}
	return userRepo, tripRepo, bookingRepo, chatRepo, closeStores
}
