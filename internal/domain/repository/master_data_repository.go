package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/entity"
	"github.com/loop2cod/SNAZ-sub000/pkg/pagination"
)

// ListFilter narrows master data listings
type ListFilter struct {
	Search   string
	IsActive *bool
}

// DriverRepository defines the interface for driver data operations
type DriverRepository interface {
	Create(ctx context.Context, driver *entity.Driver) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Driver, error)
	Update(ctx context.Context, driver *entity.Driver) error
	List(ctx context.Context, params *pagination.PaginationParams, filter ListFilter) ([]entity.Driver, int64, error)
	CountActive(ctx context.Context) (int64, error)
}

// FoodCategoryRepository defines the interface for food category data operations
type FoodCategoryRepository interface {
	Create(ctx context.Context, category *entity.FoodCategory) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.FoodCategory, error)
	GetByName(ctx context.Context, name string) (*entity.FoodCategory, error)
	Update(ctx context.Context, category *entity.FoodCategory) error
	List(ctx context.Context, params *pagination.PaginationParams, filter ListFilter) ([]entity.FoodCategory, int64, error)
}

// CompanyRepository defines the interface for company data operations
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	List(ctx context.Context, params *pagination.PaginationParams, filter ListFilter) ([]entity.Company, int64, error)
	// ListActive returns every active company ordered by name
	ListActive(ctx context.Context) ([]entity.Company, error)
	CountActive(ctx context.Context) (int64, error)
}
