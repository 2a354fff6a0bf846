package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/loop2cod/SNAZ-sub000/internal/application/service"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/enum"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/repository"
	"github.com/loop2cod/SNAZ-sub000/internal/presentation/http/dto/request"
	"github.com/loop2cod/SNAZ-sub000/internal/presentation/http/dto/response"
	"github.com/loop2cod/SNAZ-sub000/pkg/utils"
)

// OrderHandler handles daily order HTTP requests
type OrderHandler struct {
	orderService     *service.OrderService
	dashboardService *service.DashboardService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, dashboardService *service.DashboardService) *OrderHandler {
	return &OrderHandler{orderService: orderService, dashboardService: dashboardService}
}

// Generate handles daily order generation for a date
// @Summary Generate daily orders
// @Tags daily-orders
// @Accept json
// @Produce json
// @Param request body request.GenerateDailyOrdersRequest true "Generation date"
// @Success 201 {object} response.APIResponse
// @Router /daily-orders/generate [post]
func (h *OrderHandler) Generate(c *gin.Context) {
	var req request.GenerateDailyOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	var windowStart time.Time
	if req.MealWindowStart != nil && *req.MealWindowStart != "" {
		windowStart, err = time.Parse(time.RFC3339, *req.MealWindowStart)
		if err != nil {
			response.BadRequest(c, "Invalid nea_start_time, expected RFC3339")
			return
		}
	}

	orders, err := h.orderService.GenerateDailyOrders(c.Request.Context(), date, windowStart)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.dashboardService.Invalidate(c.Request.Context())

	response.Created(c, "Daily orders generated successfully", orders)
}

// List handles listing daily orders
func (h *OrderHandler) List(c *gin.Context) {
	filter := repository.DailyOrderFilter{
		From:     queryDate(c, "start_date"),
		To:       queryDate(c, "end_date"),
		DriverID: queryUUID(c, "driver_id"),
	}
	if date := queryDate(c, "date"); date != nil {
		filter.From, filter.To = date, date
	}
	if status := c.Query("status"); status != "" {
		s := enum.DailyOrderStatus(status)
		filter.Status = &s
	}

	result, err := h.orderService.ListDailyOrders(c.Request.Context(), pageParams(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Daily orders retrieved successfully", result)
}

// Get handles getting a daily order with its items
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid daily order ID")
		return
	}

	order, err := h.orderService.GetDailyOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily order retrieved successfully", order)
}

// UpdateItem corrects the bag format of one order item
func (h *OrderHandler) UpdateItem(c *gin.Context) {
	orderID, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid daily order ID")
		return
	}
	itemID, ok := parseID(c, "itemId")
	if !ok {
		response.BadRequest(c, "Invalid order item ID")
		return
	}

	var req request.UpdateOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.UpdateOrderItem(c.Request.Context(), orderID, itemID, req.BagFormat)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.dashboardService.Invalidate(c.Request.Context())

	response.OK(c, "Order item updated successfully", order)
}

// UpdateStatus moves a daily order through its lifecycle
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid daily order ID")
		return
	}

	var req request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, enum.DailyOrderStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily order status updated successfully", order)
}
