package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/entity"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/enum"
	"github.com/loop2cod/SNAZ-sub000/pkg/pagination"
)

// BillFilter narrows bill listings
type BillFilter struct {
	EntityType *enum.EntityType
	EntityID   *uuid.UUID
	Year       *int
	Month      *int
	Status     *enum.BillStatus
}

// BillRepository defines the interface for bill data operations
type BillRepository interface {
	// Create stores the bill with its items
	Create(ctx context.Context, bill *entity.Bill) error
	// Update saves the bill and replaces its items
	Update(ctx context.Context, bill *entity.Bill) error
	// UpdateBalance saves paid amount, balance and status only
	UpdateBalance(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	GetByNumber(ctx context.Context, number string) (*entity.Bill, error)
	GetByPeriod(ctx context.Context, entityType enum.EntityType, entityID uuid.UUID, year, month int) (*entity.Bill, error)
	// ListOutstanding returns unpaid and partial bills, oldest period first
	ListOutstanding(ctx context.Context, entityType enum.EntityType, entityID uuid.UUID) ([]entity.Bill, error)
	// ListCustomerBillsForCompany returns the period's customer bills whose customer belongs to the company
	ListCustomerBillsForCompany(ctx context.Context, companyID uuid.UUID, year, month int) ([]entity.Bill, error)
	// LinkToParent points the bills at a consolidated parent bill
	LinkToParent(ctx context.Context, billIDs []uuid.UUID, parentID uuid.UUID) error
	// ListLinked returns the bills of a consolidated parent ordered by number
	ListLinked(ctx context.Context, parentID uuid.UUID) ([]entity.Bill, error)
	// NextSequence atomically increments and returns the counter for the prefix and month
	NextSequence(ctx context.Context, prefix string, year, month int) (int, error)
	List(ctx context.Context, params *pagination.PaginationParams, filter BillFilter) ([]entity.Bill, int64, error)
}
