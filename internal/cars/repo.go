package cars

import (
	"context"
	"time"

	"github.com/Wizhill05/car-rental/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for cars.
type Repository interface {
	Create(ctx context.Context, car *models.Car) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Car, error)
	ListAll(ctx context.Context) ([]models.Car, error)
	ListAvailable(ctx context.Context) ([]models.Car, error)
	MarkAvailable(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)
	ReserveWithTx(tx *gorm.DB, id uuid.UUID, now time.Time) (bool, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a car repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, car *models.Car) error {
	if car.ID == uuid.Nil {
		car.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(car).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Car, error) {
	var car models.Car
	if err := r.db.WithContext(ctx).First(&car, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *repositoryImpl) ListAll(ctx context.Context) ([]models.Car, error) {
	var cars []models.Car
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}

func (r *repositoryImpl) ListAvailable(ctx context.Context) ([]models.Car, error) {
	var cars []models.Car
	err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Order("created_at DESC, id DESC").
		Find(&cars).Error
	if err != nil {
		return nil, err
	}
	return cars, nil
}

// MarkAvailable flips the availability flag back to true. The conditional
// WHERE keeps the write idempotent: once the flag is true, repeat calls touch
// zero rows.
func (r *repositoryImpl) MarkAvailable(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Car{}).
		Where("id = ? AND available = ?", id, false).
		UpdateColumns(map[string]any{"available": true, "updated_at": now})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ReserveWithTx claims the car for a booking inside the caller's transaction.
// Two concurrent bookings cannot both see RowsAffected == 1, so the
// availability check and the flag flip act as a single compare-and-set.
func (r *repositoryImpl) ReserveWithTx(tx *gorm.DB, id uuid.UUID, now time.Time) (bool, error) {
	if tx == nil {
		tx = r.db
	}
	result := tx.
		Model(&models.Car{}).
		Where("id = ? AND available = ?", id, true).
		UpdateColumns(map[string]any{"available": false, "updated_at": now})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
