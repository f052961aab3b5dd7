package rentals

import (
	"context"
	"errors"
	"time"

	"github.com/Wizhill05/car-rental/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ActiveRental is one row of the active-rentals listing, joined with the car
// and renter it belongs to.
type ActiveRental struct {
	ID          uuid.UUID       `gorm:"column:id" json:"id"`
	CarID       uuid.UUID       `gorm:"column:car_id" json:"car_id"`
	UserID      uuid.UUID       `gorm:"column:user_id" json:"user_id"`
	StartDate   time.Time       `gorm:"column:start_date" json:"start_date"`
	EndDate     time.Time       `gorm:"column:end_date" json:"end_date"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount" json:"total_amount"`
	CarName     string          `gorm:"column:car_name" json:"car_name"`
	CarType     string          `gorm:"column:car_type" json:"car_type"`
	UserName    string          `gorm:"column:user_name" json:"user_name"`
	UserPhone   string          `gorm:"column:user_phone" json:"user_phone"`
}

// HistoryRental is one row of the full rental history, flagged with whether a
// review exists for it.
type HistoryRental struct {
	ID          uuid.UUID       `gorm:"column:id" json:"id"`
	CarID       uuid.UUID       `gorm:"column:car_id" json:"car_id"`
	UserID      uuid.UUID       `gorm:"column:user_id" json:"user_id"`
	StartDate   time.Time       `gorm:"column:start_date" json:"start_date"`
	EndDate     time.Time       `gorm:"column:end_date" json:"end_date"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount" json:"total_amount"`
	CarName     string          `gorm:"column:car_name" json:"car_name"`
	CarType     string          `gorm:"column:car_type" json:"car_type"`
	UserName    string          `gorm:"column:user_name" json:"user_name"`
	HasReview   bool            `gorm:"column:has_review" json:"has_review"`
}

// UserRental is one row of a single renter's rental list.
type UserRental struct {
	ID          uuid.UUID       `gorm:"column:id" json:"id"`
	CarID       uuid.UUID       `gorm:"column:car_id" json:"car_id"`
	StartDate   time.Time       `gorm:"column:start_date" json:"start_date"`
	EndDate     time.Time       `gorm:"column:end_date" json:"end_date"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount" json:"total_amount"`
	CarName     string          `gorm:"column:car_name" json:"car_name"`
	CarType     string          `gorm:"column:car_type" json:"car_type"`
}

// Repository exposes persistence helpers for rentals.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, rental *models.Rental) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Rental, error)
	ListActive(ctx context.Context, now time.Time) ([]ActiveRental, error)
	ListHistory(ctx context.Context) ([]HistoryRental, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]UserRental, error)
	LatestActiveEnd(ctx context.Context, carID uuid.UUID, after time.Time) (*time.Time, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a rental repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

// WithTx rebinds the repository to the given transaction handle.
func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, rental *models.Rental) error {
	if rental.ID == uuid.Nil {
		rental.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(rental).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Rental, error) {
	var rental models.Rental
	if err := r.db.WithContext(ctx).First(&rental, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rental, nil
}

// ListActive returns rentals that are still running, newest start first.
func (r *repositoryImpl) ListActive(ctx context.Context, now time.Time) ([]ActiveRental, error) {
	var rows []ActiveRental
	err := r.db.WithContext(ctx).
		Table("rentals").
		Select("rentals.id, rentals.car_id, rentals.user_id, rentals.start_date, rentals.end_date, rentals.total_amount, " +
			"cars.name AS car_name, cars.type AS car_type, users.name AS user_name, users.phone AS user_phone").
		Joins("JOIN cars ON cars.id = rentals.car_id").
		Joins("JOIN users ON users.id = rentals.user_id").
		Where("rentals.active = ? AND rentals.end_date > ?", true, now).
		Order("rentals.start_date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListHistory returns every rental ever made, newest start first. The review
// join only flags existence; review contents live in their own listing.
func (r *repositoryImpl) ListHistory(ctx context.Context) ([]HistoryRental, error) {
	var rows []HistoryRental
	err := r.db.WithContext(ctx).
		Table("rentals").
		Select("rentals.id, rentals.car_id, rentals.user_id, rentals.start_date, rentals.end_date, rentals.total_amount, " +
			"cars.name AS car_name, cars.type AS car_type, users.name AS user_name, " +
			"CASE WHEN reviews.id IS NULL THEN 0 ELSE 1 END AS has_review").
		Joins("JOIN cars ON cars.id = rentals.car_id").
		Joins("JOIN users ON users.id = rentals.user_id").
		Joins("LEFT JOIN reviews ON reviews.rental_id = rentals.id").
		Order("rentals.start_date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]UserRental, error) {
	var rows []UserRental
	err := r.db.WithContext(ctx).
		Table("rentals").
		Select("rentals.id, rentals.car_id, rentals.start_date, rentals.end_date, rentals.total_amount, " +
			"cars.name AS car_name, cars.type AS car_type").
		Joins("JOIN cars ON cars.id = rentals.car_id").
		Where("rentals.user_id = ?", userID).
		Order("rentals.start_date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// LatestActiveEnd returns the end date of the active rental of the car that
// reaches furthest into the future, or nil when no active rental ends after
// the given time.
func (r *repositoryImpl) LatestActiveEnd(ctx context.Context, carID uuid.UUID, after time.Time) (*time.Time, error) {
	var rental models.Rental
	err := r.db.WithContext(ctx).
		Where("car_id = ? AND active = ? AND end_date > ?", carID, true, after).
		Order("end_date DESC").
		First(&rental).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	end := rental.EndDate
	return &end, nil
}
