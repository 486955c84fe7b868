package domain

import (
	"time"

	"github.com/google/uuid" // UUID generation for primary keys
	"gorm.io/gorm"           // GORM ORM library
)

// User Model
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`    // Opaque identifier, immutable once created
	Name         string    `gorm:"not null" json:"name"`            // Display name
	Email        string    `gorm:"unique;not null" json:"email"`    // Globally unique email
	PasswordHash string    `gorm:"column:password_hash" json:"-"`   // Bcrypt hash; empty on external-identity deployments
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"` // Timestamp of creation
}

// BeforeCreate assigns a UUID when none was supplied (external identities
// arrive with their provider-issued ID already set).
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
