package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/entity"
	"github.com/loop2cod/SNAZ-sub000/pkg/pagination"
)

// CustomerFilter narrows customer listings
type CustomerFilter struct {
	ListFilter
	DriverID  *uuid.UUID
	CompanyID *uuid.UUID
}

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	// Create stores the customer together with its packages
	Create(ctx context.Context, customer *entity.Customer) error
	// GetByID loads the customer with packages, categories, driver and company
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	// Update saves the customer and replaces its packages
	Update(ctx context.Context, customer *entity.Customer) error
	UpdateDailyFood(ctx context.Context, id uuid.UUID, food entity.DailyFood) error
	List(ctx context.Context, params *pagination.PaginationParams, filter CustomerFilter) ([]entity.Customer, int64, error)
	// ListActive returns every active customer with packages and categories loaded
	ListActive(ctx context.Context) ([]entity.Customer, error)
	CountActive(ctx context.Context) (int64, error)
}
