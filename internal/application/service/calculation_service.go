package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/repository"
	"github.com/loop2cod/SNAZ-sub000/pkg/apperror"
	"github.com/loop2cod/SNAZ-sub000/pkg/money"
	"github.com/loop2cod/SNAZ-sub000/pkg/utils"
)

// Reporting defaults when configuration leaves them unset
const (
	DefaultReportTaxRate = 0.18
	DefaultCostPerMeal   = 25.0
)

// CalculationService aggregates stored daily orders into reports
type CalculationService struct {
	dailyOrderRepo repository.DailyOrderRepository
	customerRepo   repository.CustomerRepository
	analyticsRepo  repository.AnalyticsRepository
	reportTaxRate  float64
	costPerMeal    float64
}

// NewCalculationService creates a new calculation service
func NewCalculationService(
	dailyOrderRepo repository.DailyOrderRepository,
	customerRepo repository.CustomerRepository,
	analyticsRepo repository.AnalyticsRepository,
	reportTaxRate float64,
	costPerMeal float64,
) *CalculationService {
	if reportTaxRate < 0 {
		reportTaxRate = DefaultReportTaxRate
	}
	if costPerMeal <= 0 {
		costPerMeal = DefaultCostPerMeal
	}
	return &CalculationService{
		dailyOrderRepo: dailyOrderRepo,
		customerRepo:   customerRepo,
		analyticsRepo:  analyticsRepo,
		reportTaxRate:  reportTaxRate,
		costPerMeal:    costPerMeal,
	}
}

// ReportTaxRate is the tax rate applied to customer reports by default
func (s *CalculationService) ReportTaxRate() float64 {
	return s.reportTaxRate
}

// DriverDayTotals is one driver's stored daily order figures
type DriverDayTotals struct {
	DailyOrderID    uuid.UUID `json:"daily_order_id"`
	DriverID        uuid.UUID `json:"driver_id"`
	DriverName      string    `json:"driver_name"`
	Route           *string   `json:"route,omitempty"`
	Status          string    `json:"status"`
	TotalVegFood    int       `json:"total_veg_food"`
	TotalNonVegFood int       `json:"total_non_veg_food"`
	TotalFood       int       `json:"total_food"`
	TotalAmount     float64   `json:"total_amount"`
}

// DailyTotals sums every driver's order for one day
type DailyTotals struct {
	Date            string            `json:"date"`
	TotalVegFood    int               `json:"total_veg_food"`
	TotalNonVegFood int               `json:"total_non_veg_food"`
	TotalFood       int               `json:"total_food"`
	TotalAmount     float64           `json:"total_amount"`
	DriverBreakdown []DriverDayTotals `json:"driver_breakdown"`
}

// DailyTotals trusts the stored per-driver aggregates of the day's orders
func (s *CalculationService) DailyTotals(ctx context.Context, date time.Time) (*DailyTotals, error) {
	day := utils.StartOfDay(date)
	orders, err := s.dailyOrderRepo.ListBetween(ctx, day, utils.EndOfDay(day))
	if err != nil {
		return nil, err
	}

	totals := &DailyTotals{
		Date:            day.Format(utils.DateLayout),
		DriverBreakdown: make([]DriverDayTotals, 0, len(orders)),
	}
	amounts := make([]float64, 0, len(orders))
	for _, o := range orders {
		row := DriverDayTotals{
			DailyOrderID:    o.ID,
			DriverID:        o.DriverID,
			Status:          string(o.Status),
			TotalVegFood:    o.TotalVegFood,
			TotalNonVegFood: o.TotalNonVegFood,
			TotalFood:       o.TotalFood,
			TotalAmount:     o.TotalAmount,
		}
		if o.Driver != nil {
			row.DriverName = o.Driver.Name
			row.Route = o.Driver.Route
		}
		totals.DriverBreakdown = append(totals.DriverBreakdown, row)

		totals.TotalVegFood += o.TotalVegFood
		totals.TotalNonVegFood += o.TotalNonVegFood
		totals.TotalFood += o.TotalFood
		amounts = append(amounts, o.TotalAmount)
	}
	totals.TotalAmount = money.Sum(amounts...)

	return totals, nil
}

// RangeSummary aggregates all daily orders of a period
type RangeSummary struct {
	TotalOrders       int64   `json:"total_orders"`
	TotalVegFood      int64   `json:"total_veg_food"`
	TotalNonVegFood   int64   `json:"total_non_veg_food"`
	TotalFood         int64   `json:"total_food"`
	TotalAmount       float64 `json:"total_amount"`
	AverageOrderValue float64 `json:"average_order_value"`
}

// DriverRangeSummary aggregates one driver's daily orders over a period
type DriverRangeSummary struct {
	DriverID        uuid.UUID `json:"driver_id"`
	DriverName      string    `json:"driver_name"`
	TotalOrders     int64     `json:"total_orders"`
	TotalVegFood    int64     `json:"total_veg_food"`
	TotalNonVegFood int64     `json:"total_non_veg_food"`
	TotalFood       int64     `json:"total_food"`
	TotalRevenue    float64   `json:"total_revenue"`
}

// RangeTotals is the period report across drivers
type RangeTotals struct {
	StartDate     string               `json:"start_date"`
	EndDate       string               `json:"end_date"`
	Summary       RangeSummary         `json:"summary"`
	DriverSummary []DriverRangeSummary `json:"driver_summary"`
}

// RangeTotals summarizes daily orders dated within [start, end]. The average
// order value is per daily order, and drivers are ranked by revenue.
func (s *CalculationService) RangeTotals(ctx context.Context, start, end time.Time) (*RangeTotals, error) {
	start, end, err := normalizeRange(start, end)
	if err != nil {
		return nil, err
	}

	summary, err := s.analyticsRepo.SummarizeOrders(ctx, start, end)
	if err != nil {
		return nil, err
	}
	drivers, err := s.analyticsRepo.SummarizeOrdersByDriver(ctx, start, end)
	if err != nil {
		return nil, err
	}

	result := &RangeTotals{
		StartDate: start.Format(utils.DateLayout),
		EndDate:   end.Format(utils.DateLayout),
		Summary: RangeSummary{
			TotalOrders:       summary.TotalOrders,
			TotalVegFood:      summary.TotalVegFood,
			TotalNonVegFood:   summary.TotalNonVegFood,
			TotalFood:         summary.TotalFood,
			TotalAmount:       money.Round2(summary.TotalAmount),
			AverageOrderValue: money.Round2(summary.AverageOrderValue),
		},
		DriverSummary: make([]DriverRangeSummary, 0, len(drivers)),
	}
	for _, d := range drivers {
		result.DriverSummary = append(result.DriverSummary, DriverRangeSummary{
			DriverID:        d.DriverID,
			DriverName:      d.DriverName,
			TotalOrders:     d.TotalOrders,
			TotalVegFood:    d.TotalVegFood,
			TotalNonVegFood: d.TotalNonVegFood,
			TotalFood:       d.TotalFood,
			TotalRevenue:    money.Round2(d.TotalRevenue),
		})
	}

	return result, nil
}

// PackageBreakdown is a customer's consumption of one package category
type PackageBreakdown struct {
	CategoryID    uuid.UUID `json:"category_id"`
	CategoryName  string    `json:"category_name"`
	UnitPrice     float64   `json:"unit_price"`
	TotalQuantity int       `json:"total_quantity"`
	TotalAmount   float64   `json:"total_amount"`
}

// MonthlyCalculation is a customer's consumption and charges for a period
type MonthlyCalculation struct {
	CustomerID       uuid.UUID          `json:"customer_id"`
	CustomerName     string             `json:"customer_name"`
	StartDate        time.Time          `json:"start_date"`
	EndDate          time.Time          `json:"end_date"`
	TotalDays        int                `json:"total_days"`
	DaysWithOrders   int                `json:"days_with_orders"`
	PackageBreakdown []PackageBreakdown `json:"package_breakdown"`
	Subtotal         float64            `json:"subtotal"`
	TaxRate          float64            `json:"tax_rate"`
	Tax              float64            `json:"tax"`
	TotalAmount      float64            `json:"total_amount"`
	VegCount         int                `json:"veg_count"`
	NonVegCount      int                `json:"non_veg_count"`
	TotalFood        int                `json:"total_food"`
}

// CustomerMonthly breaks a customer's order items down by package category
// and applies taxRate. It returns nil without error when the customer does
// not exist.
func (s *CalculationService) CustomerMonthly(ctx context.Context, customerID uuid.UUID, start, end time.Time, taxRate float64) (*MonthlyCalculation, error) {
	if end.Before(start) {
		return nil, apperror.NewFieldError("end_date", "end date is before start date")
	}
	if taxRate < 0 {
		return nil, apperror.NewFieldError("tax_rate", "tax rate cannot be negative")
	}

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}

	items, err := s.dailyOrderRepo.ListCustomerItems(ctx, customerID, start, end)
	if err != nil {
		return nil, err
	}

	calc := &MonthlyCalculation{
		CustomerID:       customer.ID,
		CustomerName:     customer.Name,
		StartDate:        start,
		EndDate:          end,
		TotalDays:        utils.WeekdaysBetween(start, end),
		PackageBreakdown: make([]PackageBreakdown, 0, len(customer.Packages)),
		TaxRate:          taxRate,
	}

	subtotals := make([]float64, 0, len(customer.Packages))
	for _, pkg := range customer.Packages {
		row := PackageBreakdown{
			CategoryID: pkg.CategoryID,
			UnitPrice:  pkg.UnitPrice,
		}
		if pkg.Category != nil {
			row.CategoryName = pkg.Category.Name
		}

		amounts := make([]float64, 0)
		for _, item := range items {
			if item.CategoryID != pkg.CategoryID {
				continue
			}
			row.TotalQuantity += item.TotalCount
			amounts = append(amounts, item.TotalAmount)
		}
		row.TotalAmount = money.Sum(amounts...)

		calc.PackageBreakdown = append(calc.PackageBreakdown, row)
		subtotals = append(subtotals, row.TotalAmount)
	}

	days := make(map[uuid.UUID]struct{})
	for _, item := range items {
		calc.VegCount += item.VegCount
		calc.NonVegCount += item.NonVegCount
		days[item.DailyOrderID] = struct{}{}
	}
	calc.TotalFood = calc.VegCount + calc.NonVegCount
	calc.DaysWithOrders = len(days)

	calc.Subtotal = money.Sum(subtotals...)
	calc.Tax = money.Mul(calc.Subtotal, taxRate)
	calc.TotalAmount = money.Sum(calc.Subtotal, calc.Tax)

	return calc, nil
}

// ProfitAnalysis estimates profit from a flat cost per meal
type ProfitAnalysis struct {
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	TotalRevenue float64 `json:"total_revenue"`
	TotalFood    int64   `json:"total_food"`
	CostPerMeal  float64 `json:"cost_per_meal"`
	TotalCost    float64 `json:"total_cost"`
	GrossProfit  float64 `json:"gross_profit"`
	ProfitMargin float64 `json:"profit_margin"`
}

// ProfitAnalysis estimates cost and margin for daily orders within [start, end].
// A non-positive costPerMeal falls back to the configured cost.
func (s *CalculationService) ProfitAnalysis(ctx context.Context, start, end time.Time, costPerMeal float64) (*ProfitAnalysis, error) {
	start, end, err := normalizeRange(start, end)
	if err != nil {
		return nil, err
	}
	if costPerMeal <= 0 {
		costPerMeal = s.costPerMeal
	}

	summary, err := s.analyticsRepo.SummarizeOrders(ctx, start, end)
	if err != nil {
		return nil, err
	}

	revenue := money.Round2(summary.TotalAmount)
	cost := money.Mul(costPerMeal, float64(summary.TotalFood))
	gross := money.Sub(revenue, cost)

	return &ProfitAnalysis{
		StartDate:    start.Format(utils.DateLayout),
		EndDate:      end.Format(utils.DateLayout),
		TotalRevenue: revenue,
		TotalFood:    summary.TotalFood,
		CostPerMeal:  costPerMeal,
		TotalCost:    cost,
		GrossProfit:  gross,
		ProfitMargin: money.Percent(gross, revenue),
	}, nil
}

func normalizeRange(start, end time.Time) (time.Time, time.Time, error) {
	if end.Before(start) {
		return start, end, apperror.NewFieldError("end_date", "end date is before start date")
	}
	return utils.StartOfDay(start), utils.EndOfDay(end), nil
}

