package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Driver delivers the daily orders of the customers assigned to them
type Driver struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Phone         *string   `gorm:"size:50" json:"phone,omitempty"`
	Route         *string   `gorm:"size:255" json:"route,omitempty"`
	VehicleNumber *string   `gorm:"size:50" json:"vehicle_number,omitempty"`
	IsActive      bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new driver
func (d *Driver) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Driver model
func (Driver) TableName() string {
	return "drivers"
}
