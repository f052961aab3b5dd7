package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExpiringRental carries everything a reminder email needs.
type ExpiringRental struct {
	RentalID uuid.UUID `gorm:"column:rental_id" json:"rental_id"`
	Email    string    `gorm:"column:email" json:"email"`
	UserName string    `gorm:"column:user_name" json:"user_name"`
	CarName  string    `gorm:"column:car_name" json:"car_name"`
	EndDate  time.Time `gorm:"column:end_date" json:"end_date"`
}

// Repository finds rentals whose end date falls inside a day window.
type Repository interface {
	FindExpiringBetween(ctx context.Context, dayStart, dayEnd time.Time) ([]ExpiringRental, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a notification repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

// FindExpiringBetween returns active rentals ending within [dayStart, dayEnd),
// joined with the renter and the car for the email body.
func (r *repositoryImpl) FindExpiringBetween(ctx context.Context, dayStart, dayEnd time.Time) ([]ExpiringRental, error) {
	var rows []ExpiringRental
	err := r.db.WithContext(ctx).
		Table("rentals").
		Select("rentals.id AS rental_id, users.email, users.name AS user_name, cars.name AS car_name, rentals.end_date").
		Joins("JOIN users ON users.id = rentals.user_id").
		Joins("JOIN cars ON cars.id = rentals.car_id").
		Where("rentals.active = ? AND rentals.end_date >= ? AND rentals.end_date < ?", true, dayStart, dayEnd).
		Order("rentals.end_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
