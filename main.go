package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/bookstore/backend/internal/config"
	"github.com/bookstore/backend/internal/db"
	"github.com/bookstore/backend/internal/handler"
	"github.com/bookstore/backend/internal/service"
)

func main() {
	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()

	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	ctx := context.Background()

	dsn, err := db.BuildPostgresURL(cfg.Postgres)
	if err != nil {
		logger.Fatalf("Failed to resolve postgres DSN: %v", err)
	}

	if err := db.RunMigrations(ctx, dsn); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	mongoDB, err := db.NewMongoDatabase(ctx, cfg.Mongo)
	if err != nil {
		logger.Fatalf("Failed to connect to mongodb: %v", err)
	}
	defer func() {
		_ = mongoDB.Client().Disconnect(ctx)
	}()

	// 로그아웃 토큰 저장소: REDIS_ADDR가 설정되면 Redis, 아니면 인메모리
	var revoked service.RevocationStore = service.NewMemoryRevocationStore()
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatalf("Failed to connect to redis: %v", err)
		}
		revoked = service.NewRedisRevocationStore(client)
	}

	tokenService, err := service.NewTokenService(cfg.Auth, revoked)
	if err != nil {
		logger.Fatalf("Failed to init token service: %v", err)
	}

	userService := service.NewUserService(&db.Postgres{Pool: pool}, logger)
	bookService := service.NewBookService(db.NewMongo(mongoDB), logger)
	authService := service.NewAuthService(userService, tokenService)

	router := gin.Default()
	handler.SetupRoutes(
		router,
		authService,
		handler.NewAuthHandler(authService),
		handler.NewUsersHandler(userService),
		handler.NewBooksHandler(bookService),
		cfg.Server.AllowedOrigins,
	)

	logger.Infof("Starting %s on :%s", config.AppName, cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatalf("Server stopped: %v", err)
	}
}
