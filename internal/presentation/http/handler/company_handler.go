package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/loop2cod/SNAZ-sub000/internal/application/service"
	"github.com/loop2cod/SNAZ-sub000/internal/presentation/http/dto/request"
	"github.com/loop2cod/SNAZ-sub000/internal/presentation/http/dto/response"
)

// CompanyHandler handles company-related HTTP requests
type CompanyHandler struct {
	companyService *service.CompanyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// Create handles company creation
func (h *CompanyHandler) Create(c *gin.Context) {
	var req request.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.companyService.CreateCompany(c.Request.Context(), toCompanyInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Company created successfully", result)
}

// Get handles getting a company by ID
func (h *CompanyHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid company ID")
		return
	}

	result, err := h.companyService.GetCompany(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company retrieved successfully", result)
}

// List handles listing companies
func (h *CompanyHandler) List(c *gin.Context) {
	result, err := h.companyService.ListCompanies(c.Request.Context(), pageParams(c), listFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Companies retrieved successfully", result)
}

// Update handles updating a company
func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid company ID")
		return
	}

	var req request.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.companyService.UpdateCompany(c.Request.Context(), id, toCompanyInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company updated successfully", result)
}

// Delete handles deactivating a company
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid company ID")
		return
	}

	if err := h.companyService.DeactivateCompany(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company deactivated successfully", nil)
}

func toCompanyInput(req *request.CompanyRequest) *service.CompanyInput {
	return &service.CompanyInput{
		Name:          req.Name,
		Address:       req.Address,
		Phone:         req.Phone,
		Email:         req.Email,
		ContactPerson: req.ContactPerson,
		IsActive:      req.IsActive,
	}
}
