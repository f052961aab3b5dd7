package notifications

import (
	"context"
	"fmt"
	"time"

	pkgerrors "github.com/Wizhill05/car-rental/pkg/errors"
	"github.com/Wizhill05/car-rental/pkg/logger"
	"github.com/Wizhill05/car-rental/pkg/mailer"
)

const reminderSubject = "Your car rental is expiring soon"

// Service finds expiring rentals and mails reminders for them.
type Service interface {
	ExpiringRentals(ctx context.Context, daysAhead int) ([]ExpiringRental, error)
	SendReminders(ctx context.Context, daysAhead int) (int, error)
}

type service struct {
	repo   Repository
	emails mailer.Sender
	logg   *logger.Logger
	now    func() time.Time
}

// NewService wires the notification service.
func NewService(repo Repository, emails mailer.Sender, logg *logger.Logger) Service {
	return &service{
		repo:   repo,
		emails: emails,
		logg:   logg,
		now:    time.Now,
	}
}

// dayWindow returns the UTC calendar day that lies daysAhead days from now,
// as a half-open [start, end) range.
func dayWindow(now time.Time, daysAhead int) (time.Time, time.Time) {
	target := now.UTC().AddDate(0, 0, daysAhead)
	start := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

// ExpiringRentals lists the active rentals whose end date falls on the UTC
// calendar day daysAhead days from now.
func (s *service) ExpiringRentals(ctx context.Context, daysAhead int) ([]ExpiringRental, error) {
	dayStart, dayEnd := dayWindow(s.now(), daysAhead)
	rows, err := s.repo.FindExpiringBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "querying expiring rentals")
	}
	return rows, nil
}

// SendReminders emails every renter whose rental expires on the target day.
// Delivery is best effort per recipient; the returned count is the number of
// rentals that matched the window, not the number of emails delivered.
func (s *service) SendReminders(ctx context.Context, daysAhead int) (int, error) {
	expiring, err := s.ExpiringRentals(ctx, daysAhead)
	if err != nil {
		return 0, err
	}

	for _, rental := range expiring {
		body := fmt.Sprintf(
			"Dear %s,\n\nYour rental for %s is expiring on %s. Please ensure to return the vehicle on time.\n\nThank you for using our service!",
			rental.UserName,
			rental.CarName,
			rental.EndDate.UTC().Format("2006-01-02"),
		)
		if err := s.emails.Send(ctx, rental.Email, reminderSubject, body); err != nil && s.logg != nil {
			ctx := s.logg.WithFields(ctx, map[string]any{
				"rental_id": rental.RentalID.String(),
				"to":        rental.Email,
			})
			s.logg.Error(ctx, "sending expiration reminder", err)
		}
	}

	if s.logg != nil && len(expiring) > 0 {
		s.logg.Info(s.logg.WithField(ctx, "count", len(expiring)), "expiration reminders processed")
	}
	return len(expiring), nil
}
