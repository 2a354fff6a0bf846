package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/enum"
	"github.com/loop2cod/SNAZ-sub000/pkg/money"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AdvanceReference marks a payment recorded before any bill could absorb it
const AdvanceReference = "ADVANCE"

// Audit events
const (
	AuditEventPaymentRecorded = "payment_recorded"
	AuditEventAdvanceApplied  = "advance_applied"
	AuditEventPropagated      = "consolidated_propagation"
)

// Payment is a manually recorded ledger entry from a customer or company
type Payment struct {
	ID         uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	EntityType enum.EntityType    `gorm:"size:20;not null;index:idx_payments_entity" json:"entity_type"`
	EntityID   uuid.UUID          `gorm:"type:uuid;not null;index:idx_payments_entity" json:"entity_id"`
	Date       time.Time          `gorm:"type:date;not null" json:"date"`
	Amount     float64            `gorm:"type:numeric(12,2);not null" json:"amount"`
	Method     enum.PaymentMethod `gorm:"size:30;not null;default:'cash'" json:"method"`
	Reference  string             `gorm:"size:100;not null;default:''" json:"reference"`
	Notes      *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`

	// Relationships
	Allocations []PaymentAllocation `gorm:"foreignKey:PaymentID;constraint:OnDelete:CASCADE" json:"allocations"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

// AllocatedAmount sums the amounts already applied to bills
func (p *Payment) AllocatedAmount() float64 {
	amounts := make([]float64, 0, len(p.Allocations))
	for _, a := range p.Allocations {
		amounts = append(amounts, a.Amount)
	}
	return money.Sum(amounts...)
}

// Unallocated returns the advance portion not yet applied to any bill
func (p *Payment) Unallocated() float64 {
	rest := money.Sub(p.Amount, p.AllocatedAmount())
	if rest < 0 {
		return 0
	}
	return rest
}

// PaymentAllocation is the part of a payment applied to one bill
type PaymentAllocation struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PaymentID uuid.UUID `gorm:"type:uuid;not null;index" json:"payment_id"`
	BillID    uuid.UUID `gorm:"type:uuid;not null;index" json:"bill_id"`
	Amount    float64   `gorm:"type:numeric(12,2);not null" json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new allocation
func (a *PaymentAllocation) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PaymentAllocation model
func (PaymentAllocation) TableName() string {
	return "payment_allocations"
}

// AuditEntry is the before/after snapshot of one bill touched by a payment
type AuditEntry struct {
	BillID        uuid.UUID       `json:"bill_id"`
	BillNumber    string          `json:"bill_number"`
	Amount        float64         `json:"amount"`
	BalanceBefore float64         `json:"balance_before"`
	BalanceAfter  float64         `json:"balance_after"`
	StatusAfter   enum.BillStatus `json:"status_after"`
}

// PaymentAudit is an append-only record of one payment processing event
type PaymentAudit struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	PaymentID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"payment_id"`
	EntityType enum.EntityType `gorm:"size:20;not null" json:"entity_type"`
	EntityID   uuid.UUID       `gorm:"type:uuid;not null" json:"entity_id"`
	Event      string          `gorm:"size:50;not null" json:"event"`
	Amount     float64         `gorm:"type:numeric(12,2);not null" json:"amount"`
	Entries    datatypes.JSON  `json:"entries"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new audit record
func (a *PaymentAudit) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PaymentAudit model
func (PaymentAudit) TableName() string {
	return "payment_audits"
}
