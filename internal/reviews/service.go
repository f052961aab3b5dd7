package reviews

import (
	"context"
	"errors"

	"github.com/Wizhill05/car-rental/pkg/db/models"
	pkgerrors "github.com/Wizhill05/car-rental/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// rentalStore checks that the reviewed rental exists.
type rentalStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Rental, error)
}

// carStore checks that the car exists before listing its reviews.
type carStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Car, error)
}

// SubmitParams carries the fields needed to leave a review.
type SubmitParams struct {
	RentalID uuid.UUID
	Rating   int
	Comment  *string
}

// Service exposes review operations.
type Service interface {
	Submit(ctx context.Context, params SubmitParams) (*models.Review, error)
	ListAll(ctx context.Context) ([]Review, error)
	ListByCar(ctx context.Context, carID uuid.UUID) ([]CarReview, error)
}

type service struct {
	repo    Repository
	rentals rentalStore
	cars    carStore
}

// NewService wires the review service.
func NewService(repo Repository, rentals rentalStore, cars carStore) Service {
	return &service{repo: repo, rentals: rentals, cars: cars}
}

// Submit records a review for an existing rental. Nothing stops a rental from
// collecting more than one review.
func (s *service) Submit(ctx context.Context, params SubmitParams) (*models.Review, error) {
	if params.Rating < 1 || params.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid review data")
	}

	if _, err := s.rentals.FindByID(ctx, params.RentalID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Rental not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading rental")
	}

	review := &models.Review{
		RentalID: params.RentalID,
		Rating:   params.Rating,
		Comment:  params.Comment,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating review")
	}
	return review, nil
}

func (s *service) ListAll(ctx context.Context) ([]Review, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing reviews")
	}
	return rows, nil
}

func (s *service) ListByCar(ctx context.Context, carID uuid.UUID) ([]CarReview, error) {
	if _, err := s.cars.FindByID(ctx, carID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Car not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading car")
	}
	rows, err := s.repo.ListByCar(ctx, carID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing car reviews")
	}
	return rows, nil
}
