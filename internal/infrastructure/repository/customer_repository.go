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

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return conn(ctx, r.db).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := conn(ctx, r.db).
		Preload("Packages.Category").
		Preload("Driver").
		Preload("Company").
		First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

// Update saves the customer row and replaces its package set in one transaction
func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Packages", "Driver", "Company").Save(customer).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", customer.ID).Delete(&entity.CustomerPackage{}).Error; err != nil {
			return err
		}
		if len(customer.Packages) == 0 {
			return nil
		}
		for i := range customer.Packages {
			customer.Packages[i].ID = uuid.Nil
			customer.Packages[i].CustomerID = customer.ID
		}
		return tx.Omit("Category").Create(&customer.Packages).Error
	})
}

func (r *customerRepository) UpdateDailyFood(ctx context.Context, id uuid.UUID, food entity.DailyFood) error {
	result := conn(ctx, r.db).Model(&entity.Customer{}).Where("id = ?", id).Updates(map[string]interface{}{
		"daily_food_lunch":  food.Lunch,
		"daily_food_dinner": food.Dinner,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams, filter domainRepo.CustomerFilter) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := conn(ctx, r.db).Model(&entity.Customer{}).
		Scopes(ActiveScope(filter.IsActive), SearchScope(filter.Search, "name", "email", "phone", "address"))
	if filter.DriverID != nil {
		query = query.Where("driver_id = ?", *filter.DriverID)
	}
	if filter.CompanyID != nil {
		query = query.Where("company_id = ?", *filter.CompanyID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).
		Preload("Packages.Category").
		Preload("Driver").
		Order("name ASC").
		Find(&customers).Error

	return customers, total, err
}

func (r *customerRepository) ListActive(ctx context.Context) ([]entity.Customer, error) {
	var customers []entity.Customer
	err := conn(ctx, r.db).
		Preload("Packages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Packages.Category").
		Where("is_active = ?", true).
		Order("name ASC, id ASC").
		Find(&customers).Error
	return customers, err
}

func (r *customerRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.Customer{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
