package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/loop2cod/SNAZ-sub000/internal/application/service"
	"github.com/loop2cod/SNAZ-sub000/internal/presentation/http/dto/request"
	"github.com/loop2cod/SNAZ-sub000/internal/presentation/http/dto/response"
)

// FoodCategoryHandler handles food category-related HTTP requests
type FoodCategoryHandler struct {
	categoryService *service.FoodCategoryService
}

// NewFoodCategoryHandler creates a new food category handler
func NewFoodCategoryHandler(categoryService *service.FoodCategoryService) *FoodCategoryHandler {
	return &FoodCategoryHandler{categoryService: categoryService}
}

// Create handles food category creation
func (h *FoodCategoryHandler) Create(c *gin.Context) {
	var req request.FoodCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.categoryService.CreateCategory(c.Request.Context(), toFoodCategoryInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Food category created successfully", result)
}

// Get handles getting a food category by ID
func (h *FoodCategoryHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid food category ID")
		return
	}

	result, err := h.categoryService.GetCategory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Food category retrieved successfully", result)
}

// List handles listing food categories
func (h *FoodCategoryHandler) List(c *gin.Context) {
	result, err := h.categoryService.ListCategories(c.Request.Context(), pageParams(c), listFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Food categories retrieved successfully", result)
}

// Update handles updating a food category
func (h *FoodCategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid food category ID")
		return
	}

	var req request.FoodCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.categoryService.UpdateCategory(c.Request.Context(), id, toFoodCategoryInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Food category updated successfully", result)
}

// Delete handles deactivating a food category
func (h *FoodCategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid food category ID")
		return
	}

	if err := h.categoryService.DeactivateCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Food category deactivated successfully", nil)
}

func toFoodCategoryInput(req *request.FoodCategoryRequest) *service.FoodCategoryInput {
	return &service.FoodCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	}
}
