package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/loop2cod/SNAZ-sub000/internal/application/service"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/enum"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/repository"
	"github.com/loop2cod/SNAZ-sub000/internal/presentation/http/dto/request"
	"github.com/loop2cod/SNAZ-sub000/internal/presentation/http/dto/response"
	"github.com/loop2cod/SNAZ-sub000/pkg/utils"
)

// PaymentHandler handles payment recording and lookup
type PaymentHandler struct {
	paymentService   *service.PaymentService
	dashboardService *service.DashboardService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService, dashboardService *service.DashboardService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, dashboardService: dashboardService}
}

// Record handles recording a payment and allocating it to open bills
// @Summary Record payment
// @Tags payments
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param request body request.RecordPaymentRequest true "Payment"
// @Success 201 {object} response.APIResponse
// @Router /payments [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	var req request.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	input := &service.RecordPaymentInput{
		EntityType: enum.EntityType(req.EntityType),
		EntityID:   uuid.MustParse(req.EntityID),
		Amount:     req.Amount,
		Date:       date,
		Method:     enum.PaymentMethod(req.Method),
		Reference:  req.Reference,
		Notes:      req.Notes,
	}
	if req.BillID != nil && *req.BillID != "" {
		billID := uuid.MustParse(*req.BillID)
		input.BillID = &billID
	}

	result, err := h.paymentService.RecordPayment(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.dashboardService.Invalidate(c.Request.Context())

	response.Created(c, result.Message, result)
}

// List handles listing payments
func (h *PaymentHandler) List(c *gin.Context) {
	filter := repository.PaymentFilter{EntityID: queryUUID(c, "entity_id")}
	if raw := c.Query("entity_type"); raw != "" {
		et := enum.EntityType(raw)
		filter.EntityType = &et
	}

	result, err := h.paymentService.ListPayments(c.Request.Context(), pageParams(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Payments retrieved successfully", result)
}

// Get handles getting a payment with its allocations
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment retrieved successfully", payment)
}
