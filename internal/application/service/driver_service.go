package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/entity"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/repository"
	"github.com/loop2cod/SNAZ-sub000/pkg/apperror"
	"github.com/loop2cod/SNAZ-sub000/pkg/pagination"
)

// DriverService handles driver-related operations
type DriverService struct {
	driverRepo repository.DriverRepository
}

// NewDriverService creates a new driver service
func NewDriverService(driverRepo repository.DriverRepository) *DriverService {
	return &DriverService{driverRepo: driverRepo}
}

// DriverInput represents the create/update driver input. Nil fields are left unchanged on update.
type DriverInput struct {
	Name          *string
	Phone         *string
	Route         *string
	VehicleNumber *string
	IsActive      *bool
}

// CreateDriver creates a new active driver
func (s *DriverService) CreateDriver(ctx context.Context, input *DriverInput) (*entity.Driver, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, apperror.NewFieldError("name", "is required")
	}

	driver := &entity.Driver{IsActive: true}
	applyDriverInput(driver, input)

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// GetDriver retrieves a driver by ID
func (s *DriverService) GetDriver(ctx context.Context, id uuid.UUID) (*entity.Driver, error) {
	driver, err := s.driverRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, apperror.NewNotFoundError("Driver")
	}
	return driver, nil
}

// ListDrivers lists drivers with pagination
func (s *DriverService) ListDrivers(ctx context.Context, params *pagination.PaginationParams, filter repository.ListFilter) (*pagination.PaginatedResult[entity.Driver], error) {
	drivers, total, err := s.driverRepo.List(ctx, params, filter)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(drivers, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// UpdateDriver updates a driver
func (s *DriverService) UpdateDriver(ctx context.Context, id uuid.UUID, input *DriverInput) (*entity.Driver, error) {
	driver, err := s.GetDriver(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, apperror.NewFieldError("name", "cannot be blank")
	}

	applyDriverInput(driver, input)

	if err := s.driverRepo.Update(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// DeactivateDriver soft-deletes a driver
func (s *DriverService) DeactivateDriver(ctx context.Context, id uuid.UUID) error {
	driver, err := s.GetDriver(ctx, id)
	if err != nil {
		return err
	}
	driver.IsActive = false
	return s.driverRepo.Update(ctx, driver)
}

func applyDriverInput(driver *entity.Driver, input *DriverInput) {
	if input.Name != nil {
		driver.Name = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		driver.Phone = input.Phone
	}
	if input.Route != nil {
		driver.Route = input.Route
	}
	if input.VehicleNumber != nil {
		driver.VehicleNumber = input.VehicleNumber
	}
	if input.IsActive != nil {
		driver.IsActive = *input.IsActive
	}
}
