package reviews

import (
	"context"
	"testing"

	"github.com/Wizhill05/car-rental/pkg/db/models"
	pkgerrors "github.com/Wizhill05/car-rental/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeRepo struct {
	Repository

	created []*models.Review
}

func (f *fakeRepo) Create(ctx context.Context, review *models.Review) error {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	f.created = append(f.created, review)
	return nil
}

type fakeRentalStore struct {
	rental *models.Rental
}

func (f *fakeRentalStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Rental, error) {
	if f.rental == nil || f.rental.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.rental, nil
}

type fakeCarStore struct {
	car *models.Car
}

func (f *fakeCarStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Car, error) {
	if f.car == nil || f.car.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.car, nil
}

func fixture() (Service, *fakeRepo, uuid.UUID) {
	rentalID := uuid.New()
	repo := &fakeRepo{}
	svc := NewService(repo, &fakeRentalStore{rental: &models.Rental{ID: rentalID}}, &fakeCarStore{})
	return svc, repo, rentalID
}

func TestSubmitRejectsOutOfRangeRating(t *testing.T) {
	svc, repo, rentalID := fixture()

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.Submit(context.Background(), SubmitParams{RentalID: rentalID, Rating: rating})
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("rating %d: expected validation error, got %v", rating, err)
		}
	}
	if len(repo.created) != 0 {
		t.Fatal("rejected ratings must not be stored")
	}
}

func TestSubmitAcceptsBoundaryRatings(t *testing.T) {
	svc, repo, rentalID := fixture()

	for _, rating := range []int{1, 5} {
		review, err := svc.Submit(context.Background(), SubmitParams{RentalID: rentalID, Rating: rating})
		if err != nil {
			t.Fatalf("rating %d: %v", rating, err)
		}
		if review.ID == uuid.Nil {
			t.Fatal("expected id to be assigned")
		}
	}
	if len(repo.created) != 2 {
		t.Fatalf("expected 2 reviews stored, got %d", len(repo.created))
	}
}

func TestSubmitUnknownRental(t *testing.T) {
	svc, _, _ := fixture()

	_, err := svc.Submit(context.Background(), SubmitParams{RentalID: uuid.New(), Rating: 4})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSubmitAllowsRepeatReviews(t *testing.T) {
	svc, repo, rentalID := fixture()

	for i := 0; i < 2; i++ {
		if _, err := svc.Submit(context.Background(), SubmitParams{RentalID: rentalID, Rating: 3}); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	if len(repo.created) != 2 {
		t.Fatalf("expected duplicate reviews to be allowed, got %d", len(repo.created))
	}
}

func TestListByCarUnknownCar(t *testing.T) {
	svc, _, _ := fixture()

	_, err := svc.ListByCar(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
