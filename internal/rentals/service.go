package rentals

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

// carStore is the slice of the car repository the booking flow needs.
type carStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Car, error)
	ReserveWithTx(tx *gorm.DB, id uuid.UUID, now time.Time) (bool, error)
}

// userStore checks that the renter exists before booking.
type userStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// txRunner runs a function inside a database transaction.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// BookParams carries the fields needed to book a car.
type BookParams struct {
	CarID     uuid.UUID
	UserID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

// Service exposes booking and rental listing operations.
type Service interface {
	Book(ctx context.Context, params BookParams) (*models.Rental, error)
	ListActive(ctx context.Context) ([]ActiveRental, error)
	ListHistory(ctx context.Context) ([]HistoryRental, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]UserRental, error)
}

type service struct {
	tx    txRunner
	repo  Repository
	cars  carStore
	users userStore
	logg  *logger.Logger
	now   func() time.Time
}

// NewService wires the rental service.
func NewService(tx txRunner, repo Repository, cars carStore, users userStore, logg *logger.Logger) Service {
	return &service{
		tx:    tx,
		repo:  repo,
		cars:  cars,
		users: users,
		logg:  logg,
		now:   time.Now,
	}
}

// Fee computes the rental charge: the duration is billed in whole days, any
// started day counts as a full one.
func Fee(start, end time.Time, ratePerDay decimal.Decimal) (int64, decimal.Decimal) {
	hours := end.Sub(start).Hours()
	days := int64(hours / 24)
	if float64(days*24) < hours {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days, ratePerDay.Mul(decimal.NewFromInt(days))
}

// Book reserves the car and records the rental in one transaction. The
// availability flip is a conditional update, so two concurrent bookings for
// the same car cannot both succeed even though the earlier read saw the car
// as free.
func (s *service) Book(ctx context.Context, params BookParams) (*models.Rental, error) {
	if !params.EndDate.After(params.StartDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid date range")
	}

	car, err := s.cars.FindByID(ctx, params.CarID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Car not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading car")
	}
	if !car.Available {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Car is not available")
	}

	if _, err := s.users.FindByID(ctx, params.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "User not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading user")
	}

	_, total := Fee(params.StartDate, params.EndDate, car.RatePerDay)
	rental := &models.Rental{
		CarID:       params.CarID,
		UserID:      params.UserID,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		TotalAmount: total,
		Active:      true,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		reserved, err := s.cars.ReserveWithTx(tx, params.CarID, s.now())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reserving car")
		}
		if !reserved {
			// Another booking won the race since the read above.
			return pkgerrors.New(pkgerrors.CodeValidation, "Car is not available")
		}
		return s.repo.WithTx(tx).Create(ctx, rental)
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating rental")
	}

	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"rental_id": rental.ID.String(),
			"car_id":    rental.CarID.String(),
		})
		s.logg.Info(ctx, "rental booked")
	}
	return rental, nil
}

func (s *service) ListActive(ctx context.Context) ([]ActiveRental, error) {
	rows, err := s.repo.ListActive(ctx, s.now())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing active rentals")
	}
	return rows, nil
}

func (s *service) ListHistory(ctx context.Context) ([]HistoryRental, error) {
	rows, err := s.repo.ListHistory(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing rental history")
	}
	return rows, nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]UserRental, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "User not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading user")
	}
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing user rentals")
	}
	return rows, nil
}
