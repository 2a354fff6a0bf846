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

// CompanyService handles company-related operations
type CompanyService struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyService creates a new company service
func NewCompanyService(companyRepo repository.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

// CompanyInput represents the create/update company input
type CompanyInput struct {
	Name          *string
	Address       *string
	Phone         *string
	Email         *string
	ContactPerson *string
	IsActive      *bool
}

// CreateCompany creates a new active company
func (s *CompanyService) CreateCompany(ctx context.Context, input *CompanyInput) (*entity.Company, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, apperror.NewFieldError("name", "is required")
	}

	company := &entity.Company{IsActive: true}
	applyCompanyInput(company, input)

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// GetCompany retrieves a company by ID
func (s *CompanyService) GetCompany(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}
	return company, nil
}

// ListCompanies lists companies with pagination
func (s *CompanyService) ListCompanies(ctx context.Context, params *pagination.PaginationParams, filter repository.ListFilter) (*pagination.PaginatedResult[entity.Company], error) {
	companies, total, err := s.companyRepo.List(ctx, params, filter)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(companies, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// UpdateCompany updates a company
func (s *CompanyService) UpdateCompany(ctx context.Context, id uuid.UUID, input *CompanyInput) (*entity.Company, error) {
	company, err := s.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, apperror.NewFieldError("name", "cannot be blank")
	}

	applyCompanyInput(company, input)

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// DeactivateCompany soft-deletes a company
func (s *CompanyService) DeactivateCompany(ctx context.Context, id uuid.UUID) error {
	company, err := s.GetCompany(ctx, id)
	if err != nil {
		return err
	}
	company.IsActive = false
	return s.companyRepo.Update(ctx, company)
}

func applyCompanyInput(company *entity.Company, input *CompanyInput) {
	if input.Name != nil {
		company.Name = strings.TrimSpace(*input.Name)
	}
	if input.Address != nil {
		company.Address = input.Address
	}
	if input.Phone != nil {
		company.Phone = input.Phone
	}
	if input.Email != nil {
		company.Email = input.Email
	}
	if input.ContactPerson != nil {
		company.ContactPerson = input.ContactPerson
	}
	if input.IsActive != nil {
		company.IsActive = *input.IsActive
	}
}
