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

// FoodCategoryService handles food category operations
type FoodCategoryService struct {
	categoryRepo repository.FoodCategoryRepository
}

// NewFoodCategoryService creates a new food category service
func NewFoodCategoryService(categoryRepo repository.FoodCategoryRepository) *FoodCategoryService {
	return &FoodCategoryService{categoryRepo: categoryRepo}
}

// FoodCategoryInput represents the create/update category input
type FoodCategoryInput struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// CreateCategory creates a new category with a unique name
func (s *FoodCategoryService) CreateCategory(ctx context.Context, input *FoodCategoryInput) (*entity.FoodCategory, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, apperror.NewFieldError("name", "is required")
	}
	name := strings.TrimSpace(*input.Name)

	if err := s.ensureUniqueName(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}

	category := &entity.FoodCategory{
		Name:        name,
		Description: input.Description,
		IsActive:    true,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategory retrieves a category by ID
func (s *FoodCategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.FoodCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Food category")
	}
	return category, nil
}

// ListCategories lists categories with pagination
func (s *FoodCategoryService) ListCategories(ctx context.Context, params *pagination.PaginationParams, filter repository.ListFilter) (*pagination.PaginatedResult[entity.FoodCategory], error) {
	categories, total, err := s.categoryRepo.List(ctx, params, filter)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(categories, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// UpdateCategory updates a category
func (s *FoodCategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, input *FoodCategoryInput) (*entity.FoodCategory, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewFieldError("name", "cannot be blank")
		}
		if !strings.EqualFold(name, category.Name) {
			if err := s.ensureUniqueName(ctx, name, category.ID); err != nil {
				return nil, err
			}
		}
		category.Name = name
	}
	if input.Description != nil {
		category.Description = input.Description
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeactivateCategory soft-deletes a category
func (s *FoodCategoryService) DeactivateCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	category.IsActive = false
	return s.categoryRepo.Update(ctx, category)
}

func (s *FoodCategoryService) ensureUniqueName(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return apperror.NewConflictError("Food category with this name already exists")
	}
	return nil
}
