package cron

import (
	"context"
	"fmt"

	"github.com/Wizhill05/car-rental/pkg/logger"
)

// reminderSender is the slice of the notification service the job needs.
type reminderSender interface {
	SendReminders(ctx context.Context, daysAhead int) (int, error)
}

// ExpiringRentalsJobParams configures the daily reminder job.
type ExpiringRentalsJobParams struct {
	Logger        *logger.Logger
	Notifications reminderSender
	DaysAhead     int
}

// NewExpiringRentalsJob constructs the job that mails renters whose rental
// ends on the day DaysAhead days from now. Each daily cycle queries that one
// window, so a renter is reminded exactly once per rental.
func NewExpiringRentalsJob(params ExpiringRentalsJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Notifications == nil {
		return nil, fmt.Errorf("notification service required")
	}
	daysAhead := params.DaysAhead
	if daysAhead < 0 {
		daysAhead = 0
	}
	return &expiringRentalsJob{
		logg:          params.Logger,
		notifications: params.Notifications,
		daysAhead:     daysAhead,
	}, nil
}

type expiringRentalsJob struct {
	logg          *logger.Logger
	notifications reminderSender
	daysAhead     int
}

func (j *expiringRentalsJob) Name() string { return "expiring-rental-reminders" }

func (j *expiringRentalsJob) Run(ctx context.Context) error {
	count, err := j.notifications.SendReminders(ctx, j.daysAhead)
	if err != nil {
		return fmt.Errorf("send reminders: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{"count": count, "days_ahead": j.daysAhead})
	j.logg.Info(logCtx, "reminder run complete")
	return nil
}
