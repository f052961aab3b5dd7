package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Rental records a booking of a car by a user over a date span. TotalAmount
// is derived at booking time and immutable afterwards. Active is never
// flipped to false anywhere: there is no return/closure operation, and car
// availability is healed from rental end dates instead.
type Rental struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CarID       uuid.UUID       `gorm:"column:car_id;type:uuid;not null" json:"car_id"`
	UserID      uuid.UUID       `gorm:"column:user_id;type:uuid;not null" json:"user_id"`
	StartDate   time.Time       `gorm:"column:start_date;not null" json:"start_date"`
	EndDate     time.Time       `gorm:"column:end_date;not null" json:"end_date"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2);not null" json:"total_amount"`
	Active      bool            `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Car  *Car  `gorm:"foreignKey:CarID;constraint:OnDelete:CASCADE" json:"-"`
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
