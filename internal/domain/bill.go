package domain

import (
	"time"

	"github.com/google/uuid" // UUID generation for primary keys
	"gorm.io/gorm"           // GORM ORM library
)

// Bill Model. Amount is an integer number of minor currency units (cents),
// never a float.
type Bill struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`          // Primary key
	Name        string    `gorm:"not null" json:"name"`                  // Short label, e.g. "Rent"
	Description string    `json:"description"`                           // Optional free text
	AmountCents int64     `gorm:"not null" json:"amount_cents"`          // Non-negative, minor units
	DueDate     time.Time `gorm:"not null;index" json:"due_date"`        // When the bill is due
	Paid        bool      `gorm:"not null;default:false" json:"paid"`    // Paid flag
	UserID      string    `gorm:"index;size:36;not null" json:"user_id"` // Owning user
	CategoryID  *string   `gorm:"size:36" json:"category_id"`            // Optional, must belong to the same owner
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`      // Timestamp of creation
}

// BeforeCreate assigns a UUID primary key
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
