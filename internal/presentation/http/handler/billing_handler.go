package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/loop2cod/SNAZ-sub000/internal/application/service"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/enum"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/repository"
	"github.com/loop2cod/SNAZ-sub000/internal/presentation/http/dto/request"
	"github.com/loop2cod/SNAZ-sub000/internal/presentation/http/dto/response"
)

// BillingHandler handles bill generation and lookup
type BillingHandler struct {
	billingService   *service.BillingService
	paymentService   *service.PaymentService
	dashboardService *service.DashboardService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(
	billingService *service.BillingService,
	paymentService *service.PaymentService,
	dashboardService *service.DashboardService,
) *BillingHandler {
	return &BillingHandler{
		billingService:   billingService,
		paymentService:   paymentService,
		dashboardService: dashboardService,
	}
}

// GenerateCustomerBill builds or refreshes a customer's monthly bill
// @Summary Generate customer bill
// @Tags bills
// @Accept json
// @Produce json
// @Param request body request.GenerateBillRequest true "Customer and period"
// @Success 201 {object} response.APIResponse
// @Router /bills/customer [post]
func (h *BillingHandler) GenerateCustomerBill(c *gin.Context) {
	var req request.GenerateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	bill, err := h.billingService.GenerateCustomerBill(c.Request.Context(), uuid.MustParse(req.EntityID), req.Year, req.Month)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.dashboardService.Invalidate(c.Request.Context())

	response.Created(c, "Customer bill generated successfully", bill)
}

// GenerateCompanyBill builds or refreshes a company's consolidated bill
// @Summary Generate company bill
// @Tags bills
// @Accept json
// @Produce json
// @Param request body request.GenerateBillRequest true "Company and period"
// @Success 201 {object} response.APIResponse
// @Router /bills/company [post]
func (h *BillingHandler) GenerateCompanyBill(c *gin.Context) {
	var req request.GenerateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	bill, err := h.billingService.GenerateCompanyBill(c.Request.Context(), uuid.MustParse(req.EntityID), req.Year, req.Month)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.dashboardService.Invalidate(c.Request.Context())

	response.Created(c, "Company bill generated successfully", bill)
}

// GenerateMonthly bills every customer and company for a month
func (h *BillingHandler) GenerateMonthly(c *gin.Context) {
	var req request.BillPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.billingService.GenerateMonthlyBills(c.Request.Context(), req.Year, req.Month)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.dashboardService.Invalidate(c.Request.Context())

	response.OK(c, "Monthly bills generated", result)
}

// List handles listing bills
func (h *BillingHandler) List(c *gin.Context) {
	filter := repository.BillFilter{
		EntityID: queryUUID(c, "entity_id"),
		Year:     queryInt(c, "year"),
		Month:    queryInt(c, "month"),
	}
	if raw := c.Query("entity_type"); raw != "" {
		et := enum.EntityType(raw)
		filter.EntityType = &et
	}
	if raw := c.Query("status"); raw != "" {
		st := enum.BillStatus(raw)
		filter.Status = &st
	}

	result, err := h.billingService.ListBills(c.Request.Context(), pageParams(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", result)
}

// Get handles getting a bill with its items
// GetByNumber handles GET /bills/number/:number
func (h *BillingHandler) GetByNumber(c *gin.Context) {
	bill, err := h.billingService.GetBillByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

func (h *BillingHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billingService.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// GetByPeriod finds the bill of an entity for a month
func (h *BillingHandler) GetByPeriod(c *gin.Context) {
	entityID, ok := parseID(c, "entityId")
	if !ok {
		response.BadRequest(c, "Invalid entity ID")
		return
	}
	year, errY := strconv.Atoi(c.Param("year"))
	month, errM := strconv.Atoi(c.Param("month"))
	if errY != nil || errM != nil {
		response.BadRequest(c, "Invalid billing period")
		return
	}

	bill, err := h.billingService.GetBillByPeriod(c.Request.Context(), enum.EntityType(c.Param("entityType")), entityID, year, month)
	if err != nil {
		response.Error(c, err)
		return
	}
	if bill == nil {
		response.NotFound(c, "Bill not found")
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// Audits lists the payment audit trail of a bill
func (h *BillingHandler) Audits(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	audits, err := h.paymentService.ListBillAudits(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment audits retrieved successfully", audits)
}
