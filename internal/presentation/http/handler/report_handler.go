package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/loop2cod/SNAZ-sub000/internal/application/service"
	"github.com/loop2cod/SNAZ-sub000/internal/presentation/http/dto/response"
	"github.com/loop2cod/SNAZ-sub000/pkg/utils"
)

// ReportHandler serves the order and revenue reports
type ReportHandler struct {
	calculationService *service.CalculationService
	offsetMinutes      int
}

// NewReportHandler creates a new report handler. offsetMinutes decides which
// calendar day "today" is when no date is given.
func NewReportHandler(calculationService *service.CalculationService, offsetMinutes int) *ReportHandler {
	return &ReportHandler{calculationService: calculationService, offsetMinutes: offsetMinutes}
}

// Daily returns the order totals for one day
func (h *ReportHandler) Daily(c *gin.Context) {
	date := utils.BusinessToday(time.Now(), h.offsetMinutes)
	if raw := c.Query("date"); raw != "" {
		d, err := utils.ParseDate(raw)
		if err != nil {
			response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		date = d
	}

	totals, err := h.calculationService.DailyTotals(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily report retrieved successfully", totals)
}

// Range returns the order totals between two dates
func (h *ReportHandler) Range(c *gin.Context) {
	start, end, ok := h.dateRange(c)
	if !ok {
		return
	}

	totals, err := h.calculationService.RangeTotals(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Range report retrieved successfully", totals)
}

// CustomerMonthly returns one customer's charges for a month
func (h *ReportHandler) CustomerMonthly(c *gin.Context) {
	customerID, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		response.BadRequest(c, "year and month are required")
		return
	}

	taxRate := h.calculationService.ReportTaxRate()
	if raw := c.Query("tax_rate"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			response.BadRequest(c, "Invalid tax_rate")
			return
		}
		taxRate = v
	}

	start, end := utils.MonthRange(year, month)
	calc, err := h.calculationService.CustomerMonthly(c.Request.Context(), customerID, start, end, taxRate)
	if err != nil {
		response.Error(c, err)
		return
	}
	if calc == nil {
		response.NotFound(c, "Customer not found")
		return
	}

	response.OK(c, "Customer monthly report retrieved successfully", calc)
}

// Profit returns revenue against estimated meal cost for a date range
func (h *ReportHandler) Profit(c *gin.Context) {
	start, end, ok := h.dateRange(c)
	if !ok {
		return
	}

	var costPerMeal float64
	if raw := c.Query("cost_per_meal"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			response.BadRequest(c, "Invalid cost_per_meal")
			return
		}
		costPerMeal = v
	}

	analysis, err := h.calculationService.ProfitAnalysis(c.Request.Context(), start, end, costPerMeal)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profit analysis retrieved successfully", analysis)
}

func (h *ReportHandler) dateRange(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := utils.ParseDate(c.Query("start_date"))
	if err != nil {
		response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	end, err := utils.ParseDate(c.Query("end_date"))
	if err != nil {
		response.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
