package domain

import (
	"github.com/google/uuid" // UUID generation for primary keys
	"gorm.io/gorm"           // GORM ORM library
)

// Category Model
type Category struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`          // Primary key
	Name   string `gorm:"not null" json:"name"`                  // Display name
	Color  string `json:"color"`                                 // Display hint
	Icon   string `json:"icon"`                                  // Display hint
	UserID string `gorm:"index;size:36;not null" json:"user_id"` // Owning user
}

// BeforeCreate assigns a UUID primary key
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
