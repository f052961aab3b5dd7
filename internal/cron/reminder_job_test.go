package cron

import (
	"context"
	"errors"
	"testing"
)

type fakeReminderSender struct {
	count     int
	err       error
	daysAhead []int
}

func (f *fakeReminderSender) SendReminders(ctx context.Context, daysAhead int) (int, error) {
	f.daysAhead = append(f.daysAhead, daysAhead)
	if f.err != nil {
		return 0, f.err
	}
	return f.count, nil
}

func TestExpiringRentalsJobRequiresDependencies(t *testing.T) {
	if _, err := NewExpiringRentalsJob(ExpiringRentalsJobParams{Notifications: &fakeReminderSender{}}); err == nil {
		t.Fatal("expected error without logger")
	}
	if _, err := NewExpiringRentalsJob(ExpiringRentalsJobParams{Logger: cronLogger()}); err == nil {
		t.Fatal("expected error without notification service")
	}
}

func TestExpiringRentalsJobQueriesConfiguredWindowOnly(t *testing.T) {
	sender := &fakeReminderSender{count: 3}
	job, err := NewExpiringRentalsJob(ExpiringRentalsJobParams{
		Logger:        cronLogger(),
		Notifications: sender,
		DaysAhead:     1,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if job.Name() == "" {
		t.Fatal("job must have a name")
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(sender.daysAhead) != 1 || sender.daysAhead[0] != 1 {
		t.Fatalf("expected a single daysAhead=1 query, got %v", sender.daysAhead)
	}
}

func TestExpiringRentalsJobSurfacesQueryError(t *testing.T) {
	sender := &fakeReminderSender{err: errors.New("query failed")}
	job, err := NewExpiringRentalsJob(ExpiringRentalsJobParams{
		Logger:        cronLogger(),
		Notifications: sender,
		DaysAhead:     1,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected the query error to surface")
	}
}
