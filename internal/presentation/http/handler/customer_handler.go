package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/loop2cod/SNAZ-sub000/internal/application/service"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/enum"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/repository"
	"github.com/loop2cod/SNAZ-sub000/internal/presentation/http/dto/request"
	"github.com/loop2cod/SNAZ-sub000/internal/presentation/http/dto/response"
	"github.com/loop2cod/SNAZ-sub000/pkg/apperror"
	"github.com/loop2cod/SNAZ-sub000/pkg/utils"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles listing customers
func (h *CustomerHandler) List(c *gin.Context) {
	filter := repository.CustomerFilter{
		ListFilter: listFilter(c),
		DriverID:   queryUUID(c, "driver_id"),
		CompanyID:  queryUUID(c, "company_id"),
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), pageParams(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// Create handles customer creation
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input, fieldErrors := toCustomerInput(&req)
	if len(fieldErrors) > 0 {
		response.ValidationError(c, fieldErrors)
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// Get handles getting a customer by ID
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Update handles updating a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req request.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input, fieldErrors := toCustomerInput(&req)
	if len(fieldErrors) > 0 {
		response.ValidationError(c, fieldErrors)
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// Delete handles deactivating a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.DeactivateCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer deactivated successfully", nil)
}

// UpdateDailyFood changes one customer's lunch and dinner bag formats
func (h *CustomerHandler) UpdateDailyFood(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req request.DailyFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.UpdateDailyFood(c.Request.Context(), &service.DailyFoodInput{
		CustomerID: id,
		Lunch:      req.Lunch,
		Dinner:     req.Dinner,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily food updated successfully", customer)
}

// BulkUpdateDailyFood changes the bag formats of many customers in one transaction
func (h *CustomerHandler) BulkUpdateDailyFood(c *gin.Context) {
	var req request.BulkDailyFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	inputs := make([]service.DailyFoodInput, 0, len(req.Updates))
	var fieldErrors []apperror.FieldError
	for i, u := range req.Updates {
		id, err := uuid.Parse(u.CustomerID)
		if err != nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("updates[%d].customer_id", i),
				Message: "must be a valid UUID",
			})
			continue
		}
		inputs = append(inputs, service.DailyFoodInput{CustomerID: id, Lunch: u.Lunch, Dinner: u.Dinner})
	}
	if len(fieldErrors) > 0 {
		response.ValidationError(c, fieldErrors)
		return
	}

	updated, err := h.customerService.BulkUpdateDailyFood(c.Request.Context(), inputs)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily food updated successfully", gin.H{"updated": updated})
}

func toCustomerInput(req *request.CustomerRequest) (*service.CustomerInput, []apperror.FieldError) {
	var fieldErrors []apperror.FieldError
	invalid := func(field, msg string) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: field, Message: msg})
	}

	input := &service.CustomerInput{
		Name:         req.Name,
		Address:      req.Address,
		Phone:        req.Phone,
		Email:        req.Email,
		ClearCompany: req.ClearCompany,
		IsActive:     req.IsActive,
	}

	if req.CompanyID != nil && *req.CompanyID != "" {
		if id, err := uuid.Parse(*req.CompanyID); err == nil {
			input.CompanyID = &id
		} else {
			invalid("company_id", "must be a valid UUID")
		}
	}
	if req.DriverID != nil {
		if id, err := uuid.Parse(*req.DriverID); err == nil {
			input.DriverID = &id
		} else {
			invalid("driver_id", "must be a valid UUID")
		}
	}
	if req.Packages != nil {
		input.SetPackages = true
		for i, p := range *req.Packages {
			id, err := uuid.Parse(p.CategoryID)
			if err != nil {
				invalid(fmt.Sprintf("packages[%d].category_id", i), "must be a valid UUID")
				continue
			}
			input.Packages = append(input.Packages, service.PackageInput{CategoryID: id, UnitPrice: p.UnitPrice})
		}
	}
	if req.DailyFood != nil {
		input.Lunch = req.DailyFood.Lunch
		input.Dinner = req.DailyFood.Dinner
	}
	if req.BillingType != nil {
		bt := enum.BillingType(*req.BillingType)
		input.BillingType = &bt
	}
	if req.StartDate != nil {
		if d, err := utils.ParseDate(*req.StartDate); err == nil {
			input.StartDate = &d
		} else {
			invalid("start_date", "must be a date in YYYY-MM-DD format")
		}
	}
	if req.EndDate != nil && *req.EndDate != "" {
		if d, err := utils.ParseDate(*req.EndDate); err == nil {
			input.EndDate = &d
		} else {
			invalid("end_date", "must be a date in YYYY-MM-DD format")
		}
	}

	return input, fieldErrors
}
