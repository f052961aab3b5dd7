package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Car represents a rentable vehicle in the fleet.
type Car struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name       string          `gorm:"column:name;not null" json:"name"`
	Type       string          `gorm:"column:type;not null" json:"type"`
	RatePerDay decimal.Decimal `gorm:"column:rate_per_day;type:numeric(12,2);not null" json:"rate_per_day"`
	Available  bool            `gorm:"column:available;not null;default:true" json:"available"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
