package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/Wizhill05/car-rental/api/controllers"
	"github.com/Wizhill05/car-rental/api/middleware"
	"github.com/Wizhill05/car-rental/internal/cars"
	"github.com/Wizhill05/car-rental/internal/notifications"
	"github.com/Wizhill05/car-rental/internal/rentals"
	"github.com/Wizhill05/car-rental/internal/reviews"
	"github.com/Wizhill05/car-rental/internal/users"
	"github.com/Wizhill05/car-rental/pkg/config"
	"github.com/Wizhill05/car-rental/pkg/db"
	"github.com/Wizhill05/car-rental/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	carService cars.Service,
	userService users.Service,
	rentalService rentals.Service,
	reviewService reviews.Service,
	notificationService notifications.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			MaxAge:         300,
		}),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/cars", func(r chi.Router) {
			r.Get("/", controllers.ListCars(carService, logg))
			r.Post("/", controllers.CreateCar(carService, logg))
			r.Get("/available", controllers.ListAvailableCars(carService, logg))
			r.Get("/{carId}/next-available", controllers.NextAvailable(carService, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", controllers.RegisterUser(userService, logg))
			r.Get("/{phone}", controllers.GetUserByPhone(userService, logg))
		})

		r.Route("/rentals", func(r chi.Router) {
			r.Post("/", controllers.CreateRental(rentalService, logg))
			r.Get("/active", controllers.ActiveRentals(rentalService, logg))
			r.Get("/history", controllers.RentalHistory(rentalService, logg))
			r.Get("/user/{userId}", controllers.UserRentals(rentalService, logg))
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Post("/", controllers.CreateReview(reviewService, logg))
			r.Get("/", controllers.ListReviews(reviewService, logg))
			r.Get("/car/{carId}", controllers.CarReviews(reviewService, logg))
		})

		r.Post("/send-expiration-emails", controllers.SendExpirationEmails(notificationService, logg))
	})

	return r
}
