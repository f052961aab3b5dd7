package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Wizhill05/car-rental/api/responses"
	"github.com/Wizhill05/car-rental/api/validators"
	"github.com/Wizhill05/car-rental/internal/users"
	"github.com/Wizhill05/car-rental/pkg/logger"
)

type registerUserRequest struct {
	Name      string `json:"name" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	LicenseNo string `json:"license_no" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

// RegisterUser creates a renter account and answers {id, message}.
func RegisterUser(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body registerUserRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Register(r.Context(), users.RegisterParams{
			Name:      body.Name,
			Phone:     body.Phone,
			LicenseNo: body.LicenseNo,
			Email:     body.Email,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{
			"id":      user.ID.String(),
			"message": "User registered successfully. A confirmation email has been sent.",
		})
	}
}

// GetUserByPhone looks a renter up by phone number.
func GetUserByPhone(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := svc.GetByPhone(r.Context(), chi.URLParam(r, "phone"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}
