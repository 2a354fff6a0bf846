package repository

import (
	"context"
	"time"

	"github.com/loop2cod/SNAZ-sub000/internal/domain/enum"
	domainRepo "github.com/loop2cod/SNAZ-sub000/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) SummarizeOrders(ctx context.Context, start, end time.Time) (*domainRepo.OrderSummaryResult, error) {
	var result domainRepo.OrderSummaryResult

	err := conn(ctx, r.db).Raw(`
		SELECT
			COUNT(*) as total_orders,
			COALESCE(SUM(total_veg_food), 0) as total_veg_food,
			COALESCE(SUM(total_non_veg_food), 0) as total_non_veg_food,
			COALESCE(SUM(total_food), 0) as total_food,
			COALESCE(SUM(total_amount), 0) as total_amount,
			COALESCE(AVG(total_amount), 0) as average_order_value
		FROM daily_orders
		WHERE date BETWEEN ? AND ?
	`, start.Format("2006-01-02"), end.Format("2006-01-02")).Scan(&result).Error

	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *analyticsRepository) SummarizeOrdersByDriver(ctx context.Context, start, end time.Time) ([]domainRepo.DriverSummaryResult, error) {
	var results []domainRepo.DriverSummaryResult

	err := conn(ctx, r.db).Raw(`
		SELECT
			d.id as driver_id,
			d.name as driver_name,
			COUNT(o.id) as total_orders,
			COALESCE(SUM(o.total_veg_food), 0) as total_veg_food,
			COALESCE(SUM(o.total_non_veg_food), 0) as total_non_veg_food,
			COALESCE(SUM(o.total_food), 0) as total_food,
			COALESCE(SUM(o.total_amount), 0) as total_revenue
		FROM daily_orders o
		JOIN drivers d ON d.id = o.driver_id
		WHERE o.date BETWEEN ? AND ?
		GROUP BY d.id, d.name
		ORDER BY total_revenue DESC, d.name ASC
	`, start.Format("2006-01-02"), end.Format("2006-01-02")).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetOutstandingBalance(ctx context.Context) (float64, error) {
	var total float64
	err := conn(ctx, r.db).Raw(`
		SELECT COALESCE(SUM(balance_amount), 0)
		FROM bills
		WHERE status IN ?
	`, enum.OutstandingBillStatuses).Scan(&total).Error
	return total, err
}

func (r *analyticsRepository) GetBilledRevenue(ctx context.Context, year, month int) (float64, error) {
	var total float64
	err := conn(ctx, r.db).Raw(`
		SELECT COALESCE(SUM(total_amount), 0)
		FROM bills
		WHERE entity_type = ? AND period_year = ? AND period_month = ?
	`, enum.EntityTypeCustomer, year, month).Scan(&total).Error
	return total, err
}

func (r *analyticsRepository) GetCollectedAmount(ctx context.Context, start, end time.Time) (float64, error) {
	var total float64
	err := conn(ctx, r.db).Raw(`
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE date BETWEEN ? AND ?
	`, start.Format("2006-01-02"), end.Format("2006-01-02")).Scan(&total).Error
	return total, err
}
