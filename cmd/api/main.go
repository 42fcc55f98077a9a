package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/bulkmandi/bulkmandi-backend/api/routes"
	"github.com/bulkmandi/bulkmandi-backend/internal/auth"
	"github.com/bulkmandi/bulkmandi-backend/internal/grouporders"
	"github.com/bulkmandi/bulkmandi-backend/internal/materials"
	"github.com/bulkmandi/bulkmandi-backend/internal/users"
	"github.com/bulkmandi/bulkmandi-backend/pkg/auth/session"
	"github.com/bulkmandi/bulkmandi-backend/pkg/config"
	"github.com/bulkmandi/bulkmandi-backend/pkg/db"
	"github.com/bulkmandi/bulkmandi-backend/pkg/logger"
	"github.com/bulkmandi/bulkmandi-backend/pkg/metrics"
	"github.com/bulkmandi/bulkmandi-backend/pkg/migrate"
	"github.com/bulkmandi/bulkmandi-backend/pkg/redis"
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

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	materialsService, err := materials.NewService(materials.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create materials service", err)
		os.Exit(1)
	}

	groupOrdersService, err := grouporders.NewService(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create group orders service", err)
		os.Exit(1)
	}

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
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			DB:              dbClient,
			Redis:           redisClient,
			Sessions:        sessionManager,
			Metrics:         metrics.NewHTTPMetrics(),
			AuthService:     authService,
			RegisterService: registerService,
			Materials:       materialsService,
			GroupOrders:     groupOrdersService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
