package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/entity"
	domainRepo "github.com/loop2cod/SNAZ-sub000/internal/domain/repository"
	"github.com/loop2cod/SNAZ-sub000/pkg/pagination"
	"gorm.io/gorm"
)

type driverRepository struct {
	db *gorm.DB
}

// NewDriverRepository creates a new driver repository
func NewDriverRepository(db *gorm.DB) domainRepo.DriverRepository {
	return &driverRepository{db: db}
}

func (r *driverRepository) Create(ctx context.Context, driver *entity.Driver) error {
	return conn(ctx, r.db).Create(driver).Error
}

func (r *driverRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Driver, error) {
	var driver entity.Driver
	err := conn(ctx, r.db).First(&driver, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &driver, err
}

func (r *driverRepository) Update(ctx context.Context, driver *entity.Driver) error {
	return conn(ctx, r.db).Save(driver).Error
}

func (r *driverRepository) List(ctx context.Context, params *pagination.PaginationParams, filter domainRepo.ListFilter) ([]entity.Driver, int64, error) {
	var drivers []entity.Driver
	var total int64

	query := conn(ctx, r.db).Model(&entity.Driver{}).
		Scopes(ActiveScope(filter.IsActive), SearchScope(filter.Search, "name", "phone", "route", "vehicle_number"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).Order("name ASC").Find(&drivers).Error
	return drivers, total, err
}

func (r *driverRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.Driver{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

type foodCategoryRepository struct {
	db *gorm.DB
}

// NewFoodCategoryRepository creates a new food category repository
func NewFoodCategoryRepository(db *gorm.DB) domainRepo.FoodCategoryRepository {
	return &foodCategoryRepository{db: db}
}

func (r *foodCategoryRepository) Create(ctx context.Context, category *entity.FoodCategory) error {
	return conn(ctx, r.db).Create(category).Error
}

func (r *foodCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FoodCategory, error) {
	var category entity.FoodCategory
	err := conn(ctx, r.db).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *foodCategoryRepository) GetByName(ctx context.Context, name string) (*entity.FoodCategory, error) {
	var category entity.FoodCategory
	err := conn(ctx, r.db).First(&category, "LOWER(name) = LOWER(?)", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *foodCategoryRepository) Update(ctx context.Context, category *entity.FoodCategory) error {
	return conn(ctx, r.db).Save(category).Error
}

func (r *foodCategoryRepository) List(ctx context.Context, params *pagination.PaginationParams, filter domainRepo.ListFilter) ([]entity.FoodCategory, int64, error) {
	var categories []entity.FoodCategory
	var total int64

	query := conn(ctx, r.db).Model(&entity.FoodCategory{}).
		Scopes(ActiveScope(filter.IsActive), SearchScope(filter.Search, "name", "description"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).Order("name ASC").Find(&categories).Error
	return categories, total, err
}

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *gorm.DB) domainRepo.CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *entity.Company) error {
	return conn(ctx, r.db).Create(company).Error
}

func (r *companyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	var company entity.Company
	err := conn(ctx, r.db).First(&company, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &company, err
}

func (r *companyRepository) Update(ctx context.Context, company *entity.Company) error {
	return conn(ctx, r.db).Save(company).Error
}

func (r *companyRepository) List(ctx context.Context, params *pagination.PaginationParams, filter domainRepo.ListFilter) ([]entity.Company, int64, error) {
	var companies []entity.Company
	var total int64

	query := conn(ctx, r.db).Model(&entity.Company{}).
		Scopes(ActiveScope(filter.IsActive), SearchScope(filter.Search, "name", "email", "phone", "contact_person"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).Order("name ASC").Find(&companies).Error
	return companies, total, err
}

func (r *companyRepository) ListActive(ctx context.Context) ([]entity.Company, error) {
	var companies []entity.Company
	err := conn(ctx, r.db).Where("is_active = ?", true).Order("name ASC").Find(&companies).Error
	return companies, err
}

func (r *companyRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.Company{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
