package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Wizhill05/car-rental/api/responses"
	"github.com/Wizhill05/car-rental/api/validators"
	"github.com/Wizhill05/car-rental/internal/cars"
	pkgerrors "github.com/Wizhill05/car-rental/pkg/errors"
	"github.com/Wizhill05/car-rental/pkg/logger"
)

type createCarRequest struct {
	Name       string          `json:"name" validate:"required"`
	Type       string          `json:"type" validate:"required"`
	RatePerDay decimal.Decimal `json:"rate_per_day" validate:"required"`
}

// ListCars returns the whole fleet.
func ListCars(svc cars.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fleet, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, fleet)
	}
}

// ListAvailableCars returns only cars whose availability flag is set.
func ListAvailableCars(svc cars.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fleet, err := svc.ListAvailable(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, fleet)
	}
}

// CreateCar adds a car to the fleet and answers {id}.
func CreateCar(svc cars.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createCarRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		car, err := svc.Create(r.Context(), cars.CreateParams{
			Name:       body.Name,
			Type:       body.Type,
			RatePerDay: body.RatePerDay,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"id": car.ID.String()})
	}
}

type nextAvailableResponse struct {
	Available         bool       `json:"available"`
	NextAvailableDate *time.Time `json:"next_available_date,omitempty"`
	Message           string     `json:"message"`
}

// NextAvailable answers when the car can next be booked.
func NextAvailable(svc cars.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		carID, err := uuid.Parse(chi.URLParam(r, "carId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid car id"))
			return
		}

		availability, err := svc.NextAvailability(r.Context(), carID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := nextAvailableResponse{Available: availability.Available}
		if availability.Available {
			resp.Message = "Car is currently available"
		} else {
			resp.NextAvailableDate = availability.NextAvailableDate
			resp.Message = "Car will be available after " + availability.NextAvailableDate.UTC().Format("2006-01-02")
		}
		responses.WriteSuccess(w, resp)
	}
}
