package cars

import (
	"context"
	"errors"
	"time"

	"github.com/Wizhill05/car-rental/pkg/db/models"
	pkgerrors "github.com/Wizhill05/car-rental/pkg/errors"
	"github.com/Wizhill05/car-rental/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// rentalFinder answers when the latest active rental of a car ends. It is
// implemented by the rentals repository; the indirection keeps this package
// free of a dependency on the rentals package.
type rentalFinder interface {
	LatestActiveEnd(ctx context.Context, carID uuid.UUID, after time.Time) (*time.Time, error)
}

// CreateParams carries the fields needed to add a car to the fleet.
type CreateParams struct {
	Name       string
	Type       string
	RatePerDay decimal.Decimal
}

// Availability reports whether a car can be booked right now and, if not,
// when it frees up.
type Availability struct {
	Available         bool
	NextAvailableDate *time.Time
}

// Service exposes fleet operations.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.Car, error)
	List(ctx context.Context) ([]models.Car, error)
	ListAvailable(ctx context.Context) ([]models.Car, error)
	NextAvailability(ctx context.Context, carID uuid.UUID) (*Availability, error)
}

type service struct {
	repo    Repository
	rentals rentalFinder
	logg    *logger.Logger
	now     func() time.Time
}

// NewService wires the car service with its repository and the rental lookup
// used by the availability resolver.
func NewService(repo Repository, rentals rentalFinder, logg *logger.Logger) Service {
	return &service{
		repo:    repo,
		rentals: rentals,
		logg:    logg,
		now:     time.Now,
	}
}

func (s *service) Create(ctx context.Context, params CreateParams) (*models.Car, error) {
	if params.Name == "" || params.Type == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Missing required fields")
	}
	if !params.RatePerDay.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rate_per_day must be greater than zero")
	}

	car := &models.Car{
		Name:       params.Name,
		Type:       params.Type,
		RatePerDay: params.RatePerDay,
		Available:  true,
	}
	if err := s.repo.Create(ctx, car); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating car")
	}
	return car, nil
}

func (s *service) List(ctx context.Context) ([]models.Car, error) {
	cars, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing cars")
	}
	return cars, nil
}

func (s *service) ListAvailable(ctx context.Context) ([]models.Car, error) {
	cars, err := s.repo.ListAvailable(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing available cars")
	}
	return cars, nil
}

// NextAvailability resolves when a car can next be booked. A car whose flag
// is stale (marked unavailable but with no active rental ending in the
// future) is healed back to available as a side effect, so reads converge
// even when a rental ran past its end date.
func (s *service) NextAvailability(ctx context.Context, carID uuid.UUID) (*Availability, error) {
	car, err := s.repo.FindByID(ctx, carID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Car not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading car")
	}
	if car.Available {
		return &Availability{Available: true}, nil
	}

	now := s.now()
	end, err := s.rentals.LatestActiveEnd(ctx, carID, now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving car availability")
	}
	if end != nil {
		return &Availability{Available: false, NextAvailableDate: end}, nil
	}

	// No rental holds the car anymore; flip the stale flag back.
	healed, err := s.repo.MarkAvailable(ctx, carID, now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "healing car availability")
	}
	if healed && s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "car_id", carID.String()), "healed stale availability flag")
	}
	return &Availability{Available: true}, nil
}
