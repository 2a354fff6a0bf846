package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/loop2cod/SNAZ-sub000/internal/application/service"
	"github.com/loop2cod/SNAZ-sub000/internal/presentation/http/dto/request"
	"github.com/loop2cod/SNAZ-sub000/internal/presentation/http/dto/response"
)

// DriverHandler handles driver-related HTTP requests
type DriverHandler struct {
	driverService *service.DriverService
}

// NewDriverHandler creates a new driver handler
func NewDriverHandler(driverService *service.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

// Create handles driver creation
func (h *DriverHandler) Create(c *gin.Context) {
	var req request.DriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.driverService.CreateDriver(c.Request.Context(), toDriverInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Driver created successfully", result)
}

// Get handles getting a driver by ID
func (h *DriverHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid driver ID")
		return
	}

	result, err := h.driverService.GetDriver(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Driver retrieved successfully", result)
}

// List handles listing drivers
func (h *DriverHandler) List(c *gin.Context) {
	result, err := h.driverService.ListDrivers(c.Request.Context(), pageParams(c), listFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Drivers retrieved successfully", result)
}

// Update handles updating a driver
func (h *DriverHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid driver ID")
		return
	}

	var req request.DriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.driverService.UpdateDriver(c.Request.Context(), id, toDriverInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Driver updated successfully", result)
}

// Delete handles deactivating a driver
func (h *DriverHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid driver ID")
		return
	}

	if err := h.driverService.DeactivateDriver(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Driver deactivated successfully", nil)
}

func toDriverInput(req *request.DriverRequest) *service.DriverInput {
	return &service.DriverInput{
		Name:          req.Name,
		Phone:         req.Phone,
		Route:         req.Route,
		VehicleNumber: req.VehicleNumber,
		IsActive:      req.IsActive,
	}
}
