package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Wizhill05/car-rental/api/responses"
	"github.com/Wizhill05/car-rental/api/validators"
	"github.com/Wizhill05/car-rental/internal/rentals"
	pkgerrors "github.com/Wizhill05/car-rental/pkg/errors"
	"github.com/Wizhill05/car-rental/pkg/logger"
)

type createRentalRequest struct {
	CarID     string `json:"car_id" validate:"required,uuid"`
	UserID    string `json:"user_id" validate:"required,uuid"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

// parseDate accepts a plain calendar day or a full RFC3339 timestamp.
func parseDate(value string) (time.Time, error) {
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed, nil
	}
	return time.Parse(time.RFC3339, value)
}

// CreateRental books a car and answers {id, total_amount}.
func CreateRental(svc rentals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createRentalRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		start, err := parseDate(body.StartDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Invalid date range"))
			return
		}
		end, err := parseDate(body.EndDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Invalid date range"))
			return
		}

		rental, err := svc.Book(r.Context(), rentals.BookParams{
			CarID:     uuid.MustParse(body.CarID),
			UserID:    uuid.MustParse(body.UserID),
			StartDate: start,
			EndDate:   end,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"id":           rental.ID.String(),
			"total_amount": rental.TotalAmount,
		})
	}
}

// ActiveRentals lists running rentals with their car and renter.
func ActiveRentals(svc rentals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListActive(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// RentalHistory lists every rental with a review flag.
func RentalHistory(svc rentals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListHistory(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// UserRentals lists one renter's rentals.
func UserRentals(svc rentals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}

		rows, err := svc.ListByUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
