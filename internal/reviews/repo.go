package reviews

import (
	"context"
	"time"

	"github.com/Wizhill05/car-rental/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is one row of the full review listing, joined with the rented car
// and the reviewer.
type Review struct {
	ID        uuid.UUID `gorm:"column:id" json:"id"`
	RentalID  uuid.UUID `gorm:"column:rental_id" json:"rental_id"`
	Rating    int       `gorm:"column:rating" json:"rating"`
	Comment   *string   `gorm:"column:comment" json:"comment"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	CarName   string    `gorm:"column:car_name" json:"car_name"`
	CarType   string    `gorm:"column:car_type" json:"car_type"`
	UserName  string    `gorm:"column:user_name" json:"user_name"`
}

// CarReview is one row of a single car's review listing.
type CarReview struct {
	ID        uuid.UUID `gorm:"column:id" json:"id"`
	RentalID  uuid.UUID `gorm:"column:rental_id" json:"rental_id"`
	Rating    int       `gorm:"column:rating" json:"rating"`
	Comment   *string   `gorm:"column:comment" json:"comment"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UserName  string    `gorm:"column:user_name" json:"user_name"`
}

// Repository exposes persistence helpers for reviews.
type Repository interface {
	Create(ctx context.Context, review *models.Review) error
	ListAll(ctx context.Context) ([]Review, error)
	ListByCar(ctx context.Context, carID uuid.UUID) ([]CarReview, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a review repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, review *models.Review) error {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *repositoryImpl) ListAll(ctx context.Context) ([]Review, error) {
	var rows []Review
	err := r.db.WithContext(ctx).
		Table("reviews").
		Select("reviews.id, reviews.rental_id, reviews.rating, reviews.comment, reviews.created_at, " +
			"cars.name AS car_name, cars.type AS car_type, users.name AS user_name").
		Joins("JOIN rentals ON rentals.id = reviews.rental_id").
		Joins("JOIN cars ON cars.id = rentals.car_id").
		Joins("JOIN users ON users.id = rentals.user_id").
		Order("reviews.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repositoryImpl) ListByCar(ctx context.Context, carID uuid.UUID) ([]CarReview, error) {
	var rows []CarReview
	err := r.db.WithContext(ctx).
		Table("reviews").
		Select("reviews.id, reviews.rental_id, reviews.rating, reviews.comment, reviews.created_at, "+
			"users.name AS user_name").
		Joins("JOIN rentals ON rentals.id = reviews.rental_id").
		Joins("JOIN users ON users.id = rentals.user_id").
		Where("rentals.car_id = ?", carID).
		Order("reviews.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
