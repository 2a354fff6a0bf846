package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/enum"
	"github.com/loop2cod/SNAZ-sub000/pkg/money"
	"gorm.io/gorm"
)

// Bill is the monthly statement of a customer or a company
type Bill struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Number         string          `gorm:"size:50;uniqueIndex;not null" json:"number"`
	EntityType     enum.EntityType `gorm:"size:20;not null;uniqueIndex:idx_bills_entity_period" json:"entity_type"`
	EntityID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_bills_entity_period" json:"entity_id"`
	PeriodYear     int             `gorm:"not null;uniqueIndex:idx_bills_entity_period" json:"period_year"`
	PeriodMonth    int             `gorm:"not null;uniqueIndex:idx_bills_entity_period" json:"period_month"`
	StartDate      time.Time       `gorm:"not null" json:"start_date"`
	EndDate        time.Time       `gorm:"not null" json:"end_date"`
	Subtotal       float64         `gorm:"type:numeric(12,2);not null;default:0" json:"subtotal"`
	Tax            float64         `gorm:"type:numeric(12,2);not null;default:0" json:"tax"`
	TotalAmount    float64         `gorm:"type:numeric(12,2);not null;default:0" json:"total_amount"`
	PaidAmount     float64         `gorm:"type:numeric(12,2);not null;default:0" json:"paid_amount"`
	BalanceAmount  float64         `gorm:"type:numeric(12,2);not null;default:0" json:"balance_amount"`
	Status         enum.BillStatus `gorm:"size:20;not null;default:'unpaid';index" json:"status"`
	GeneratedAt    time.Time       `gorm:"not null" json:"generated_at"`
	ParentBillID   *uuid.UUID      `gorm:"type:uuid;index" json:"parent_bill_id,omitempty"`
	IsConsolidated bool            `gorm:"not null;default:false" json:"is_consolidated"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	// Relationships
	Items []BillItem `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE" json:"items"`
}

// BeforeCreate generates a UUID before creating a new bill
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// RecalcTotals derives subtotal, total, balance and status from the items,
// tax and paid amount. Bills without items (company rollups) keep their
// subtotal as set. Calling it twice yields the same result.
func (b *Bill) RecalcTotals() {
	if len(b.Items) > 0 {
		amounts := make([]float64, 0, len(b.Items))
		for _, item := range b.Items {
			amounts = append(amounts, item.Amount)
		}
		b.Subtotal = money.Sum(amounts...)
	} else {
		b.Subtotal = money.Round2(b.Subtotal)
	}
	b.Tax = money.Round2(b.Tax)
	b.TotalAmount = money.Sum(b.Subtotal, b.Tax)
	b.PaidAmount = money.Round2(b.PaidAmount)
	b.refreshBalance()
}

// ApplyPayment raises the paid amount and refreshes balance and status
func (b *Bill) ApplyPayment(amount float64) {
	b.PaidAmount = money.Sum(b.PaidAmount, amount)
	b.refreshBalance()
}

func (b *Bill) refreshBalance() {
	balance := money.Sub(b.TotalAmount, b.PaidAmount)
	if balance < 0 {
		balance = 0
	}
	b.BalanceAmount = balance

	switch {
	case b.BalanceAmount == 0:
		b.Status = enum.BillStatusPaid
	case b.PaidAmount > 0:
		b.Status = enum.BillStatusPartial
	default:
		b.Status = enum.BillStatusUnpaid
	}
}

// IsOutstanding reports whether the bill still carries a balance
func (b *Bill) IsOutstanding() bool {
	return b.BalanceAmount > 0
}

// BelongsTo reports whether the bill is owned by the given entity
func (b *Bill) BelongsTo(entityType enum.EntityType, entityID uuid.UUID) bool {
	return b.EntityType == entityType && b.EntityID == entityID
}

// BillItem is one package category line of a customer bill
type BillItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BillID       uuid.UUID `gorm:"type:uuid;not null;index" json:"bill_id"`
	CategoryID   uuid.UUID `gorm:"type:uuid;not null" json:"category_id"`
	CategoryName string    `gorm:"size:255;not null" json:"category_name"`
	UnitPrice    float64   `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	Amount       float64   `gorm:"type:numeric(12,2);not null" json:"amount"`
}

// BeforeCreate generates a UUID before creating a new bill item
func (i *BillItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillItem model
func (BillItem) TableName() string {
	return "bill_items"
}

// BillSequence is the last issued bill number per prefix and month
type BillSequence struct {
	Prefix    string `gorm:"size:20;primaryKey"`
	Year      int    `gorm:"primaryKey;autoIncrement:false"`
	Month     int    `gorm:"primaryKey;autoIncrement:false"`
	LastValue int    `gorm:"not null;default:0"`
}

// TableName returns the table name for the BillSequence model
func (BillSequence) TableName() string {
	return "bill_sequences"
}
