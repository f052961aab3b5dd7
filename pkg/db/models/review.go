package models

import (
	"time"

	"github.com/google/uuid"
)

// Review holds a 1-5 rating left for a rental. The schema does not enforce
// one review per rental.
type Review struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	RentalID  uuid.UUID `gorm:"column:rental_id;type:uuid;not null" json:"rental_id"`
	Rating    int       `gorm:"column:rating;not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   *string   `gorm:"column:comment" json:"comment"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Rental *Rental `gorm:"foreignKey:RentalID;constraint:OnDelete:CASCADE" json:"-"`
}
