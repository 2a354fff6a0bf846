package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/enum"
	"gorm.io/gorm"
)

// DailyFood holds the bag formats used as the template for each generated day
type DailyFood struct {
	Lunch  string `gorm:"size:100;not null;default:''" json:"lunch"`
	Dinner string `gorm:"size:100;not null;default:''" json:"dinner"`
}

// For returns the bag format of a meal
func (d DailyFood) For(meal enum.MealType) string {
	if meal == enum.MealTypeDinner {
		return d.Dinner
	}
	return d.Lunch
}

// Set replaces the bag format of a meal
func (d *DailyFood) Set(meal enum.MealType, bagFormat string) {
	if meal == enum.MealTypeDinner {
		d.Dinner = bagFormat
		return
	}
	d.Lunch = bagFormat
}

// Customer receives daily meal bags and is billed monthly
type Customer struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Name        string           `gorm:"size:255;not null" json:"name"`
	Address     string           `gorm:"type:text;not null" json:"address"`
	Phone       *string          `gorm:"size:50" json:"phone,omitempty"`
	Email       *string          `gorm:"size:255" json:"email,omitempty"`
	CompanyID   *uuid.UUID       `gorm:"type:uuid;index" json:"company_id,omitempty"`
	DriverID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"driver_id"`
	DailyFood   DailyFood        `gorm:"embedded;embeddedPrefix:daily_food_" json:"daily_food"`
	BillingType enum.BillingType `gorm:"size:20;not null;default:'individual'" json:"billing_type"`
	StartDate   time.Time        `gorm:"type:date;not null" json:"start_date"`
	EndDate     *time.Time       `gorm:"type:date" json:"end_date,omitempty"`
	IsActive    bool             `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	// Relationships
	Driver   *Driver           `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
	Company  *Company          `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Packages []CustomerPackage `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"packages"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// ResolveBillingType derives the billing type from the company link unless
// an explicit override is given.
func (c *Customer) ResolveBillingType(override *enum.BillingType) {
	if override != nil && override.IsValid() {
		c.BillingType = *override
		return
	}
	if c.CompanyID != nil {
		c.BillingType = enum.BillingTypeCompany
		return
	}
	c.BillingType = enum.BillingTypeIndividual
}

// CustomerPackage is a food category a customer subscribes to at a negotiated price
type CustomerPackage struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	UnitPrice  float64   `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relationships
	Category *FoodCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// BeforeCreate generates a UUID before creating a new package
func (p *CustomerPackage) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CustomerPackage model
func (CustomerPackage) TableName() string {
	return "customer_packages"
}
