package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/entity"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/enum"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/repository"
	"github.com/loop2cod/SNAZ-sub000/pkg/apperror"
	"github.com/loop2cod/SNAZ-sub000/pkg/bagformat"
	"github.com/loop2cod/SNAZ-sub000/pkg/pagination"
	"github.com/loop2cod/SNAZ-sub000/pkg/utils"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
	driverRepo   repository.DriverRepository
	categoryRepo repository.FoodCategoryRepository
	companyRepo  repository.CompanyRepository
	tx           repository.Transactor
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	driverRepo repository.DriverRepository,
	categoryRepo repository.FoodCategoryRepository,
	companyRepo repository.CompanyRepository,
	tx repository.Transactor,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		driverRepo:   driverRepo,
		categoryRepo: categoryRepo,
		companyRepo:  companyRepo,
		tx:           tx,
	}
}

// PackageInput is a subscribed category and its negotiated price
type PackageInput struct {
	CategoryID uuid.UUID
	UnitPrice  float64
}

// CustomerInput represents the create/update customer input. Nil fields are
// left unchanged on update; ClearCompany detaches the customer from its company.
type CustomerInput struct {
	Name         *string
	Address      *string
	Phone        *string
	Email        *string
	CompanyID    *uuid.UUID
	ClearCompany bool
	DriverID     *uuid.UUID
	Packages     []PackageInput
	SetPackages  bool
	Lunch        *string
	Dinner       *string
	BillingType  *enum.BillingType
	StartDate    *time.Time
	EndDate      *time.Time
	IsActive     *bool
}

// CreateCustomer creates a new active customer with packages
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CustomerInput) (*entity.Customer, error) {
	var fieldErrors []apperror.FieldError
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "is required"})
	}
	if input.Address == nil || strings.TrimSpace(*input.Address) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "address", Message: "is required"})
	}
	if input.DriverID == nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "driver_id", Message: "is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	customer := &entity.Customer{
		IsActive:  true,
		StartDate: utils.StartOfDay(time.Now()),
	}
	input.SetPackages = true
	if err := s.apply(ctx, customer, input); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return s.GetCustomer(ctx, customer.ID)
}

// GetCustomer retrieves a customer with packages, driver and company
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers with pagination
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, filter repository.CustomerFilter) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, filter)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(customers, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *CustomerInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, customer, input); err != nil {
		return nil, err
	}

	customer.Driver = nil
	customer.Company = nil
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return s.GetCustomer(ctx, id)
}

// DeactivateCustomer soft-deletes a customer
func (s *CustomerService) DeactivateCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return err
	}
	customer.IsActive = false
	customer.Driver = nil
	customer.Company = nil
	return s.customerRepo.Update(ctx, customer)
}

func (s *CustomerService) apply(ctx context.Context, customer *entity.Customer, input *CustomerInput) error {
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return apperror.NewFieldError("name", "cannot be blank")
		}
		customer.Name = strings.TrimSpace(*input.Name)
	}
	if input.Address != nil {
		if strings.TrimSpace(*input.Address) == "" {
			return apperror.NewFieldError("address", "cannot be blank")
		}
		customer.Address = strings.TrimSpace(*input.Address)
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Email != nil {
		customer.Email = input.Email
	}

	if input.DriverID != nil {
		driver, err := s.driverRepo.GetByID(ctx, *input.DriverID)
		if err != nil {
			return err
		}
		if driver == nil {
			return apperror.NewNotFoundError("Driver")
		}
		if !driver.IsActive {
			return apperror.NewFieldError("driver_id", "driver is inactive")
		}
		customer.DriverID = driver.ID
	}

	if input.ClearCompany {
		customer.CompanyID = nil
	} else if input.CompanyID != nil {
		company, err := s.companyRepo.GetByID(ctx, *input.CompanyID)
		if err != nil {
			return err
		}
		if company == nil {
			return apperror.NewNotFoundError("Company")
		}
		id := company.ID
		customer.CompanyID = &id
	}

	if input.SetPackages {
		packages, err := s.buildPackages(ctx, input.Packages)
		if err != nil {
			return err
		}
		customer.Packages = packages
	}

	food, err := mergeDailyFood(customer.DailyFood, input.Lunch, input.Dinner, "")
	if err != nil {
		return err
	}
	customer.DailyFood = food

	if input.StartDate != nil {
		customer.StartDate = utils.StartOfDay(*input.StartDate)
	}
	if input.EndDate != nil {
		end := utils.StartOfDay(*input.EndDate)
		customer.EndDate = &end
	}
	if customer.EndDate != nil && customer.EndDate.Before(customer.StartDate) {
		return apperror.NewFieldError("end_date", "end date is before start date")
	}
	if input.IsActive != nil {
		customer.IsActive = *input.IsActive
	}

	if input.BillingType != nil && !input.BillingType.IsValid() {
		return apperror.NewFieldError("billing_type", "must be individual or company")
	}
	if input.BillingType != nil || input.CompanyID != nil || input.ClearCompany || customer.BillingType == "" {
		customer.ResolveBillingType(input.BillingType)
	}

	return nil
}

func (s *CustomerService) buildPackages(ctx context.Context, inputs []PackageInput) ([]entity.CustomerPackage, error) {
	packages := make([]entity.CustomerPackage, 0, len(inputs))
	seen := make(map[uuid.UUID]bool, len(inputs))
	for i, in := range inputs {
		field := fmt.Sprintf("packages[%d]", i)
		if in.UnitPrice < 0 {
			return nil, apperror.NewFieldError(field+".unit_price", "cannot be negative")
		}
		if seen[in.CategoryID] {
			return nil, apperror.NewFieldError(field+".category_id", "category listed twice")
		}
		seen[in.CategoryID] = true

		category, err := s.categoryRepo.GetByID(ctx, in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Food category")
		}
		packages = append(packages, entity.CustomerPackage{
			CategoryID: category.ID,
			UnitPrice:  in.UnitPrice,
		})
	}
	return packages, nil
}

// mergeDailyFood overlays the given bag formats on current. Blank values
// mean the meal is skipped; anything else must parse to at least one bag.
func mergeDailyFood(current entity.DailyFood, lunch, dinner *string, fieldPrefix string) (entity.DailyFood, error) {
	var fieldErrors []apperror.FieldError
	next := current
	for _, meal := range enum.MealTypes {
		value := lunch
		if meal == enum.MealTypeDinner {
			value = dinner
		}
		if value == nil {
			continue
		}
		raw := strings.TrimSpace(*value)
		if raw != "" {
			if v := bagformat.ValidateAndParse(raw); !v.IsValid {
				fieldErrors = append(fieldErrors, apperror.FieldError{
					Field:   fieldPrefix + "daily_food." + string(meal),
					Message: v.Error.Error(),
				})
				continue
			}
		}
		next.Set(meal, raw)
	}
	if len(fieldErrors) > 0 {
		return current, apperror.NewValidationError(fieldErrors)
	}
	return next, nil
}

// DailyFoodInput patches one customer's bag formats
type DailyFoodInput struct {
	CustomerID uuid.UUID
	Lunch      *string
	Dinner     *string
}

// UpdateDailyFood changes the bag formats future generations start from
func (s *CustomerService) UpdateDailyFood(ctx context.Context, input *DailyFoodInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}

	food, err := mergeDailyFood(customer.DailyFood, input.Lunch, input.Dinner, "")
	if err != nil {
		return nil, err
	}

	if err := s.customerRepo.UpdateDailyFood(ctx, customer.ID, food); err != nil {
		return nil, err
	}
	customer.DailyFood = food
	return customer, nil
}

// BulkUpdateDailyFood validates every patch first and then applies all of
// them in one transaction.
func (s *CustomerService) BulkUpdateDailyFood(ctx context.Context, inputs []DailyFoodInput) (int, error) {
	if len(inputs) == 0 {
		return 0, apperror.NewFieldError("updates", "at least one update is required")
	}

	var fieldErrors []apperror.FieldError
	for i, in := range inputs {
		prefix := fmt.Sprintf("updates[%d].", i)
		if in.CustomerID == uuid.Nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: prefix + "customer_id", Message: "is required"})
			continue
		}
		if _, err := mergeDailyFood(entity.DailyFood{}, in.Lunch, in.Dinner, prefix); err != nil {
			fieldErrors = append(fieldErrors, apperror.GetAppError(err).Errors...)
		}
	}
	if len(fieldErrors) > 0 {
		return 0, apperror.NewValidationError(fieldErrors)
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, in := range inputs {
			customer, err := s.customerRepo.GetByID(ctx, in.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return apperror.NewNotFoundError("Customer " + in.CustomerID.String())
			}
			food, err := mergeDailyFood(customer.DailyFood, in.Lunch, in.Dinner, "")
			if err != nil {
				return err
			}
			if err := s.customerRepo.UpdateDailyFood(ctx, customer.ID, food); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(inputs), nil
}
