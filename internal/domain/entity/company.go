package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company pays one consolidated bill for all of its customers
type Company struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Address       *string   `gorm:"type:text" json:"address,omitempty"`
	Phone         *string   `gorm:"size:50" json:"phone,omitempty"`
	Email         *string   `gorm:"size:255" json:"email,omitempty"`
	ContactPerson *string   `gorm:"size:255" json:"contact_person,omitempty"`
	IsActive      bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new company
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Company model
func (Company) TableName() string {
	return "companies"
}
