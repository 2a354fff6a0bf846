package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/enum"
	"github.com/loop2cod/SNAZ-sub000/pkg/bagformat"
	"github.com/loop2cod/SNAZ-sub000/pkg/money"
	"gorm.io/gorm"
)

// DailyOrder holds one driver's deliveries for one calendar day
type DailyOrder struct {
	ID              uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	Date            time.Time             `gorm:"type:date;not null;uniqueIndex:idx_daily_orders_date_driver" json:"date"`
	DriverID        uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_daily_orders_date_driver" json:"driver_id"`
	TotalVegFood    int                   `gorm:"not null;default:0" json:"total_veg_food"`
	TotalNonVegFood int                   `gorm:"not null;default:0" json:"total_non_veg_food"`
	TotalFood       int                   `gorm:"not null;default:0" json:"total_food"`
	TotalAmount     float64               `gorm:"type:numeric(12,2);not null;default:0" json:"total_amount"`
	NEAStartTime    time.Time             `gorm:"not null" json:"nea_start_time"`
	NEAEndTime      time.Time             `gorm:"not null" json:"nea_end_time"`
	Status          enum.DailyOrderStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`

	// Relationships
	Driver *Driver     `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
	Items  []OrderItem `gorm:"foreignKey:DailyOrderID;constraint:OnDelete:CASCADE" json:"orders"`
}

// BeforeCreate generates a UUID before creating a new daily order
func (o *DailyOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DailyOrder model
func (DailyOrder) TableName() string {
	return "daily_orders"
}

// RecalcTotals re-sums the order totals from every item
func (o *DailyOrder) RecalcTotals() {
	var veg, nonVeg int
	amounts := make([]float64, 0, len(o.Items))
	for _, item := range o.Items {
		veg += item.VegCount
		nonVeg += item.NonVegCount
		amounts = append(amounts, item.TotalAmount)
	}
	o.TotalVegFood = veg
	o.TotalNonVegFood = nonVeg
	o.TotalFood = veg + nonVeg
	o.TotalAmount = money.Sum(amounts...)
}

// FindItem returns the item with the given id, or nil
func (o *DailyOrder) FindItem(id uuid.UUID) *OrderItem {
	for i := range o.Items {
		if o.Items[i].ID == id {
			return &o.Items[i]
		}
	}
	return nil
}

// OrderItem is one (customer, meal, package) line of a daily order
type OrderItem struct {
	ID           uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	DailyOrderID uuid.UUID     `gorm:"type:uuid;not null;index" json:"daily_order_id"`
	CustomerID   uuid.UUID     `gorm:"type:uuid;not null;index" json:"customer_id"`
	CategoryID   uuid.UUID     `gorm:"type:uuid;not null;index" json:"category_id"`
	MealType     enum.MealType `gorm:"size:20;not null" json:"meal_type"`
	BagFormat    string        `gorm:"size:100;not null;default:''" json:"bag_format"`
	NonVegCount  int           `gorm:"not null;default:0" json:"non_veg_count"`
	VegCount     int           `gorm:"not null;default:0" json:"veg_count"`
	TotalCount   int           `gorm:"not null;default:0" json:"total_count"`
	UnitPrice    float64       `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	TotalAmount  float64       `gorm:"type:numeric(12,2);not null" json:"total_amount"`

	// Relationships
	Customer *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Category *FoodCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order item
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// ApplyBagFormat sets the bag format and recomputes counts and amount
func (i *OrderItem) ApplyBagFormat(raw string) {
	counts := bagformat.Parse(raw)
	i.BagFormat = raw
	i.NonVegCount = counts.NonVeg
	i.VegCount = counts.Veg
	i.TotalCount = counts.Total
	i.TotalAmount = money.Mul(i.UnitPrice, float64(counts.Total))
}
