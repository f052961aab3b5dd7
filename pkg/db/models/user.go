package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered renter. Phone, license number and email are
// unique; email is required for expiration reminders.
type User struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Phone     string    `gorm:"column:phone;not null;uniqueIndex" json:"phone"`
	LicenseNo string    `gorm:"column:license_no;not null;uniqueIndex" json:"license_no"`
	Email     string    `gorm:"column:email;not null;uniqueIndex" json:"email"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
