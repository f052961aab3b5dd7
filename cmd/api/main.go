package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/Wizhill05/car-rental/api/routes"
	"github.com/Wizhill05/car-rental/internal/cars"
	"github.com/Wizhill05/car-rental/internal/notifications"
	"github.com/Wizhill05/car-rental/internal/rentals"
	"github.com/Wizhill05/car-rental/internal/reviews"
	"github.com/Wizhill05/car-rental/internal/users"
	"github.com/Wizhill05/car-rental/pkg/config"
	"github.com/Wizhill05/car-rental/pkg/db"
	"github.com/Wizhill05/car-rental/pkg/logger"
	"github.com/Wizhill05/car-rental/pkg/mailer"
	"github.com/Wizhill05/car-rental/pkg/migrate"
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

	emails := mailer.New(cfg.Sendgrid, logg)

	carRepo := cars.NewRepository(dbClient.DB())
	userRepo := users.NewRepository(dbClient.DB())
	rentalRepo := rentals.NewRepository(dbClient.DB())
	reviewRepo := reviews.NewRepository(dbClient.DB())
	notificationRepo := notifications.NewRepository(dbClient.DB())

	carService := cars.NewService(carRepo, rentalRepo, logg)
	userService := users.NewService(userRepo, emails, logg)
	rentalService := rentals.NewService(dbClient, rentalRepo, carRepo, userRepo, logg)
	reviewService := reviews.NewService(reviewRepo, rentalRepo, carRepo)
	notificationService := notifications.NewService(notificationRepo, emails, logg)

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
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			carService,
			userService,
			rentalService,
			reviewService,
			notificationService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
