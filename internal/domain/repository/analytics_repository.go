package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OrderSummaryResult aggregates daily orders over a period
type OrderSummaryResult struct {
	TotalOrders       int64
	TotalVegFood      int64
	TotalNonVegFood   int64
	TotalFood         int64
	TotalAmount       float64
	AverageOrderValue float64
}

// DriverSummaryResult aggregates one driver's daily orders over a period
type DriverSummaryResult struct {
	DriverID        uuid.UUID
	DriverName      string
	TotalOrders     int64
	TotalVegFood    int64
	TotalNonVegFood int64
	TotalFood       int64
	TotalRevenue    float64
}

// AnalyticsRepository defines the grouping queries behind reports and the dashboard
type AnalyticsRepository interface {
	// SummarizeOrders aggregates daily orders dated within [start, end]
	SummarizeOrders(ctx context.Context, start, end time.Time) (*OrderSummaryResult, error)

	// SummarizeOrdersByDriver groups daily orders by driver, highest revenue first
	SummarizeOrdersByDriver(ctx context.Context, start, end time.Time) ([]DriverSummaryResult, error)

	// GetOutstandingBalance sums the balance of all unpaid and partial bills
	GetOutstandingBalance(ctx context.Context) (float64, error)

	// GetBilledRevenue sums the totals of customer bills for a period
	GetBilledRevenue(ctx context.Context, year, month int) (float64, error)

	// GetCollectedAmount sums payments dated within [start, end]
	GetCollectedAmount(ctx context.Context, start, end time.Time) (float64, error)
}
