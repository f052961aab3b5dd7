package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Wizhill05/car-rental/api/responses"
	"github.com/Wizhill05/car-rental/api/validators"
	"github.com/Wizhill05/car-rental/internal/reviews"
	pkgerrors "github.com/Wizhill05/car-rental/pkg/errors"
	"github.com/Wizhill05/car-rental/pkg/logger"
)

type createReviewRequest struct {
	RentalID string  `json:"rental_id" validate:"required,uuid"`
	Rating   int     `json:"rating" validate:"required"`
	Comment  *string `json:"comment"`
}

// CreateReview records a rating for a rental and answers {id}.
func CreateReview(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createReviewRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Invalid review data"))
			return
		}

		review, err := svc.Submit(r.Context(), reviews.SubmitParams{
			RentalID: uuid.MustParse(body.RentalID),
			Rating:   body.Rating,
			Comment:  body.Comment,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"id": review.ID.String()})
	}
}

// ListReviews returns every review with car and reviewer details.
func ListReviews(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// CarReviews returns the reviews left for one car.
func CarReviews(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		carID, err := uuid.Parse(chi.URLParam(r, "carId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid car id"))
			return
		}

		rows, err := svc.ListByCar(r.Context(), carID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
