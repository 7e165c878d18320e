package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/srijeyam/tyrestore-backend/api"
	"github.com/srijeyam/tyrestore-backend/api/middleware"
	"github.com/srijeyam/tyrestore-backend/api/routes"
	"github.com/srijeyam/tyrestore-backend/internal/accounts"
	"github.com/srijeyam/tyrestore-backend/internal/auth"
	"github.com/srijeyam/tyrestore-backend/internal/cart"
	"github.com/srijeyam/tyrestore-backend/internal/catalog"
	"github.com/srijeyam/tyrestore-backend/internal/notifications"
	"github.com/srijeyam/tyrestore-backend/internal/orders"
	"github.com/srijeyam/tyrestore-backend/pkg/config"
	"github.com/srijeyam/tyrestore-backend/pkg/db"
	"github.com/srijeyam/tyrestore-backend/pkg/logger"
	"github.com/srijeyam/tyrestore-backend/pkg/mail"
	"github.com/srijeyam/tyrestore-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := context.Background()

	dbClient, err := db.New(ctx, cfg.Mongo, logg)
	if err != nil {
		logg.Error(ctx, "failed to connect to mongodb", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(ctx); err != nil {
			logg.Error(ctx, "error closing mongodb", err)
		}
	}()

	var redisClient *redis.Client
	var rateLimiter middleware.RateLimiterStore
	var redisPinger db.Pinger
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to connect to redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(ctx, "error closing redis", err)
			}
		}()
		rateLimiter = redisClient
		redisPinger = redisClient
	} else {
		logg.Warn(ctx, "redis not configured, auth rate limiting disabled")
	}

	mailer := mail.New(cfg.SMTP, logg)
	if err := mailer.Verify(ctx); err != nil {
		logg.Error(ctx, "smtp transport verification failed, emails may not deliver", err)
	}

	accountRepo := accounts.NewRepository(dbClient)

	authService, err := auth.NewService(auth.ServiceParams{
		AccountRepo: accountRepo,
		JWTConfig:   cfg.JWT,
	})
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient))
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.NewRepository(dbClient))
	if err != nil {
		logg.Error(ctx, "failed to create cart service", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(notifications.ServiceParams{
		Mailer:      mailer,
		AdminLookup: accountRepo,
		Notify:      cfg.Notify,
		Logger:      logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create notifications service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.ServiceParams{
		OrderRepo:   orders.NewRepository(dbClient),
		AccountRepo: accountRepo,
		Notifier:    notificationsService,
		Logger:      logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create orders service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Deps{
		Config:        cfg,
		Logger:        logg,
		Mongo:         dbClient,
		Redis:         redisPinger,
		RateLimiter:   rateLimiter,
		AccountRepo:   accountRepo,
		AuthService:   authService,
		Catalog:       catalogService,
		Cart:          cartService,
		Orders:        ordersService,
		Notifications: notificationsService,
	})

	startCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"port": cfg.App.Port,
	})
	logg.Info(startCtx, "starting api server")

	if err := api.Serve(ctx, cfg, logg, router); err != nil {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
