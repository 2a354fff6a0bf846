package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/entity"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/enum"
	"github.com/loop2cod/SNAZ-sub000/pkg/pagination"
)

// DailyOrderFilter narrows daily order listings
type DailyOrderFilter struct {
	From     *time.Time
	To       *time.Time
	DriverID *uuid.UUID
	Status   *enum.DailyOrderStatus
}

// DailyOrderRepository defines the interface for daily order data operations
type DailyOrderRepository interface {
	// ExistsForDate reports whether any driver already has an order on the date
	ExistsForDate(ctx context.Context, date time.Time) (bool, error)
	// CreateBatch stores the orders and their items
	CreateBatch(ctx context.Context, orders []entity.DailyOrder) error
	// GetByID loads the order with its items and driver
	GetByID(ctx context.Context, id uuid.UUID) (*entity.DailyOrder, error)
	// SaveItem persists one item and the order's totals
	SaveItem(ctx context.Context, order *entity.DailyOrder, item *entity.OrderItem) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DailyOrderStatus) error
	// ListBetween returns orders dated within [start, end] with their driver
	ListBetween(ctx context.Context, start, end time.Time) ([]entity.DailyOrder, error)
	List(ctx context.Context, params *pagination.PaginationParams, filter DailyOrderFilter) ([]entity.DailyOrder, int64, error)
	// ListCustomerItems returns a customer's order items dated within [start, end]
	ListCustomerItems(ctx context.Context, customerID uuid.UUID, start, end time.Time) ([]entity.OrderItem, error)
}
