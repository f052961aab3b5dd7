package cars

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/Wizhill05/car-rental/pkg/db/models"
	pkgerrors "github.com/Wizhill05/car-rental/pkg/errors"
	"github.com/Wizhill05/car-rental/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type fakeRepo struct {
	Repository

	cars       map[uuid.UUID]*models.Car
	created    []*models.Car
	markCalls  int
	markResult bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{cars: make(map[uuid.UUID]*models.Car)}
}

func (f *fakeRepo) Create(ctx context.Context, car *models.Car) error {
	if car.ID == uuid.Nil {
		car.ID = uuid.New()
	}
	f.created = append(f.created, car)
	f.cars[car.ID] = car
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Car, error) {
	car, ok := f.cars[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *car
	return &copied, nil
}

func (f *fakeRepo) MarkAvailable(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	f.markCalls++
	car, ok := f.cars[id]
	if !ok || car.Available {
		return false, nil
	}
	car.Available = true
	f.markResult = true
	return true, nil
}

type fakeRentalFinder struct {
	end *time.Time
	err error
}

func (f *fakeRentalFinder) LatestActiveEnd(ctx context.Context, carID uuid.UUID, after time.Time) (*time.Time, error) {
	return f.end, f.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func testService(repo Repository, finder rentalFinder, now time.Time) *service {
	return &service{
		repo:    repo,
		rentals: finder,
		logg:    testLogger(),
		now:     func() time.Time { return now },
	}
}

func TestCreateRejectsMissingFields(t *testing.T) {
	svc := testService(newFakeRepo(), &fakeRentalFinder{}, time.Now())

	_, err := svc.Create(context.Background(), CreateParams{Type: "SUV", RatePerDay: decimal.NewFromInt(50)})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.Create(context.Background(), CreateParams{Name: "Civic", Type: "Sedan"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for zero rate, got %v", err)
	}
}

func TestCreateStoresCarAsAvailable(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo, &fakeRentalFinder{}, time.Now())

	car, err := svc.Create(context.Background(), CreateParams{
		Name:       "Civic",
		Type:       "Sedan",
		RatePerDay: decimal.NewFromInt(50),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if car.ID == uuid.Nil {
		t.Fatal("expected id to be assigned")
	}
	if !car.Available {
		t.Fatal("new cars must start available")
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(repo.created))
	}
}

func TestNextAvailabilityUnknownCar(t *testing.T) {
	svc := testService(newFakeRepo(), &fakeRentalFinder{}, time.Now())

	_, err := svc.NextAvailability(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestNextAvailabilityAvailableCar(t *testing.T) {
	repo := newFakeRepo()
	id := uuid.New()
	repo.cars[id] = &models.Car{ID: id, Available: true}
	svc := testService(repo, &fakeRentalFinder{}, time.Now())

	got, err := svc.NextAvailability(context.Background(), id)
	if err != nil {
		t.Fatalf("next availability: %v", err)
	}
	if !got.Available || got.NextAvailableDate != nil {
		t.Fatalf("expected immediate availability, got %+v", got)
	}
	if repo.markCalls != 0 {
		t.Fatal("available cars must not be healed")
	}
}

func TestNextAvailabilityReportsFutureRentalEnd(t *testing.T) {
	repo := newFakeRepo()
	id := uuid.New()
	repo.cars[id] = &models.Car{ID: id, Available: false}
	end := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	svc := testService(repo, &fakeRentalFinder{end: &end}, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))

	got, err := svc.NextAvailability(context.Background(), id)
	if err != nil {
		t.Fatalf("next availability: %v", err)
	}
	if got.Available {
		t.Fatal("car with a future rental must stay unavailable")
	}
	if got.NextAvailableDate == nil || !got.NextAvailableDate.Equal(end) {
		t.Fatalf("expected next available %v, got %v", end, got.NextAvailableDate)
	}
}

func TestNextAvailabilityHealsStaleFlag(t *testing.T) {
	repo := newFakeRepo()
	id := uuid.New()
	repo.cars[id] = &models.Car{ID: id, Available: false}
	svc := testService(repo, &fakeRentalFinder{}, time.Now())

	got, err := svc.NextAvailability(context.Background(), id)
	if err != nil {
		t.Fatalf("next availability: %v", err)
	}
	if !got.Available {
		t.Fatal("car without active rentals must become available")
	}
	if repo.markCalls != 1 || !repo.markResult {
		t.Fatalf("expected one healing update, got %d", repo.markCalls)
	}

	// A second read finds the flag already fixed and changes nothing.
	got, err = svc.NextAvailability(context.Background(), id)
	if err != nil {
		t.Fatalf("second next availability: %v", err)
	}
	if !got.Available {
		t.Fatal("healed car must stay available")
	}
	if repo.markCalls != 1 {
		t.Fatalf("healing must be idempotent, got %d mark calls", repo.markCalls)
	}
}
