package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/vuminhhai/seaquote-backend/api/routes"
	"github.com/vuminhhai/seaquote-backend/internal/orders"
	"github.com/vuminhhai/seaquote-backend/internal/pricing"
	"github.com/vuminhhai/seaquote-backend/internal/quotations"
	"github.com/vuminhhai/seaquote-backend/internal/rates"
	"github.com/vuminhhai/seaquote-backend/internal/requests"
	"github.com/vuminhhai/seaquote-backend/internal/users"
	"github.com/vuminhhai/seaquote-backend/pkg/config"
	"github.com/vuminhhai/seaquote-backend/pkg/db"
	"github.com/vuminhhai/seaquote-backend/pkg/logger"
	"github.com/vuminhhai/seaquote-backend/pkg/migrate"
	"github.com/vuminhhai/seaquote-backend/pkg/redis"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	usersService, err := users.NewService(users.ServiceParams{
		Repo:     users.NewRepository(dbClient.DB()),
		JWT:      cfg.JWT,
		Password: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	ratesService, err := rates.NewService(rates.ServiceParams{
		Repo: rates.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create rates service", err)
		os.Exit(1)
	}

	calculator := pricing.NewCalculator(ratesService)

	requestsService, err := requests.NewService(requests.ServiceParams{
		Repo: requests.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create requests service", err)
		os.Exit(1)
	}

	quotationsService, err := quotations.NewService(quotations.ServiceParams{
		Repo:         quotations.NewRepository(dbClient.DB()),
		RequestRepo:  requests.NewRepository(dbClient.DB()),
		Calculator:   calculator,
		Tx:           dbClient,
		ValidityDays: cfg.Pricing.QuoteValidityDays,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create quotations service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.ServiceParams{
		Repo:          orders.NewRepository(dbClient.DB()),
		QuotationRepo: quotations.NewRepository(dbClient.DB()),
		Tx:            dbClient,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
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
		Handler: routes.NewRouter(cfg, logg,
			routes.Pingers{DB: dbClient, Redis: redisClient},
			redisClient,
			routes.Services{
				Accounts:   usersService,
				Requests:   requestsService,
				Quotations: quotationsService,
				Orders:     ordersService,
				Rates:      ratesService,
				Calculator: calculator,
			},
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
