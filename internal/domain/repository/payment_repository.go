package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/entity"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/enum"
	"github.com/loop2cod/SNAZ-sub000/pkg/pagination"
)

// PaymentFilter narrows payment listings
type PaymentFilter struct {
	EntityType *enum.EntityType
	EntityID   *uuid.UUID
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	// Create stores the payment with its allocations
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	// ListByEntity returns the entity's payments oldest first with allocations
	ListByEntity(ctx context.Context, entityType enum.EntityType, entityID uuid.UUID) ([]entity.Payment, error)
	AddAllocation(ctx context.Context, allocation *entity.PaymentAllocation) error
	UpdateReference(ctx context.Context, id uuid.UUID, reference string) error
	List(ctx context.Context, params *pagination.PaginationParams, filter PaymentFilter) ([]entity.Payment, int64, error)
}

// PaymentAuditRepository is the append-only store of payment audit records
type PaymentAuditRepository interface {
	Create(ctx context.Context, audit *entity.PaymentAudit) error
	// ListByBill returns the audit records that touched the bill, oldest first
	ListByBill(ctx context.Context, billID uuid.UUID) ([]entity.PaymentAudit, error)
}
