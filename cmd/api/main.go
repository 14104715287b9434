package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/avelara/dispatchly-backend/api/routes"
	"github.com/avelara/dispatchly-backend/internal/analytics"
	"github.com/avelara/dispatchly-backend/internal/auth"
	"github.com/avelara/dispatchly-backend/internal/deliveries"
	"github.com/avelara/dispatchly-backend/internal/events"
	"github.com/avelara/dispatchly-backend/internal/messages"
	"github.com/avelara/dispatchly-backend/internal/notifications"
	"github.com/avelara/dispatchly-backend/internal/products"
	"github.com/avelara/dispatchly-backend/internal/seed"
	"github.com/avelara/dispatchly-backend/internal/users"
	"github.com/avelara/dispatchly-backend/pkg/auth/session"
	"github.com/avelara/dispatchly-backend/pkg/config"
	"github.com/avelara/dispatchly-backend/pkg/db"
	"github.com/avelara/dispatchly-backend/pkg/logger"
	"github.com/avelara/dispatchly-backend/pkg/migrate"
	"github.com/avelara/dispatchly-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}
	if cfg.FeatureFlags.SeedDemoData {
		if err := seed.Run(context.Background(), dbClient.DB(), cfg.Password, logg); err != nil {
			logg.Error(context.Background(), "failed to seed demo data", err)
			os.Exit(1)
		}
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	conn := dbClient.DB()
	userRepo := users.NewRepository(conn)
	notificationsRepo := notifications.NewRepository(conn)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	exitOn(logg, "auth service", err)

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	exitOn(logg, "register service", err)

	deliveriesService, err := deliveries.NewService(dbClient, deliveries.NewRepository(conn), userRepo, notificationsRepo, logg)
	exitOn(logg, "deliveries service", err)

	productsService, err := products.NewService(products.NewRepository(conn), userRepo)
	exitOn(logg, "products service", err)

	notificationsService, err := notifications.NewService(notificationsRepo)
	exitOn(logg, "notifications service", err)

	messagesService, err := messages.NewService(messages.NewRepository(conn), deliveries.NewRepository(conn), userRepo)
	exitOn(logg, "messages service", err)

	analyticsService, err := analytics.NewService(conn)
	exitOn(logg, "analytics service", err)

	eventsService, err := events.NewService(dbClient, events.NewRepository(conn))
	exitOn(logg, "events service", err)

	registry := prometheus.NewRegistry()
	handler := routes.NewRouter(routes.Deps{
		Config:   cfg,
		Logger:   logg,
		DB:       dbClient,
		Redis:    redisClient,
		Sessions: sessionManager,
		Registry: registry,

		AuthService:     authService,
		RegisterService: registerService,
		Users:           userRepo,
		Deliveries:      deliveriesService,
		Products:        productsService,
		Notifications:   notificationsService,
		Messages:        messagesService,
		Analytics:       analyticsService,
		Events:          eventsService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
		logg.Info(ctx, "api server shut down gracefully")
	}
}

func exitOn(logg *logger.Logger, what string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+what, err)
	os.Exit(1)
}
