package controllers

import (
	"fmt"
	"net/http"

	"github.com/Wizhill05/car-rental/api/responses"
	"github.com/Wizhill05/car-rental/internal/notifications"
	"github.com/Wizhill05/car-rental/pkg/logger"
)

// SendExpirationEmails triggers reminder delivery for rentals expiring today,
// tomorrow and the day after, and answers how many rentals matched.
func SendExpirationEmails(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		total := 0
		for daysAhead := 0; daysAhead <= 2; daysAhead++ {
			count, err := svc.SendReminders(r.Context(), daysAhead)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			total += count
		}
		responses.WriteSuccess(w, map[string]string{
			"message": fmt.Sprintf("Sent %d expiration reminder emails", total),
		})
	}
}
