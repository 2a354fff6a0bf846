package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/entity"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/enum"
	domainRepo "github.com/loop2cod/SNAZ-sub000/internal/domain/repository"
	"github.com/loop2cod/SNAZ-sub000/pkg/pagination"
	"gorm.io/gorm"
)

type dailyOrderRepository struct {
	db *gorm.DB
}

// NewDailyOrderRepository creates a new daily order repository
func NewDailyOrderRepository(db *gorm.DB) domainRepo.DailyOrderRepository {
	return &dailyOrderRepository{db: db}
}

func (r *dailyOrderRepository) ExistsForDate(ctx context.Context, date time.Time) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.DailyOrder{}).
		Where("date = ?", date.Format("2006-01-02")).
		Count(&count).Error
	return count > 0, err
}

func (r *dailyOrderRepository) CreateBatch(ctx context.Context, orders []entity.DailyOrder) error {
	if len(orders) == 0 {
		return nil
	}
	err := conn(ctx, r.db).Omit("Driver", "Items.Customer", "Items.Category").Create(&orders).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainRepo.ErrDuplicate
	}
	return err
}

func (r *dailyOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.DailyOrder, error) {
	var order entity.DailyOrder
	err := conn(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("customer_id ASC, meal_type ASC")
		}).
		Preload("Driver").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *dailyOrderRepository) SaveItem(ctx context.Context, order *entity.DailyOrder, item *entity.OrderItem) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.OrderItem{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
			"bag_format":    item.BagFormat,
			"non_veg_count": item.NonVegCount,
			"veg_count":     item.VegCount,
			"total_count":   item.TotalCount,
			"total_amount":  item.TotalAmount,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&entity.DailyOrder{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
			"total_veg_food":     order.TotalVegFood,
			"total_non_veg_food": order.TotalNonVegFood,
			"total_food":         order.TotalFood,
			"total_amount":       order.TotalAmount,
		}).Error
	})
}

func (r *dailyOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DailyOrderStatus) error {
	return conn(ctx, r.db).Model(&entity.DailyOrder{}).Where("id = ?", id).Update("status", status).Error
}

func (r *dailyOrderRepository) ListBetween(ctx context.Context, start, end time.Time) ([]entity.DailyOrder, error) {
	var orders []entity.DailyOrder
	err := conn(ctx, r.db).
		Preload("Driver").
		Where("date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("date ASC, driver_id ASC").
		Find(&orders).Error
	return orders, err
}

func (r *dailyOrderRepository) List(ctx context.Context, params *pagination.PaginationParams, filter domainRepo.DailyOrderFilter) ([]entity.DailyOrder, int64, error) {
	var orders []entity.DailyOrder
	var total int64

	query := conn(ctx, r.db).Model(&entity.DailyOrder{})
	if filter.From != nil {
		query = query.Where("date >= ?", filter.From.Format("2006-01-02"))
	}
	if filter.To != nil {
		query = query.Where("date <= ?", filter.To.Format("2006-01-02"))
	}
	if filter.DriverID != nil {
		query = query.Where("driver_id = ?", *filter.DriverID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).
		Preload("Driver").
		Order("date DESC, driver_id ASC").
		Find(&orders).Error

	return orders, total, err
}

func (r *dailyOrderRepository) ListCustomerItems(ctx context.Context, customerID uuid.UUID, start, end time.Time) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := conn(ctx, r.db).
		Joins("JOIN daily_orders ON daily_orders.id = order_items.daily_order_id").
		Where("order_items.customer_id = ?", customerID).
		Where("daily_orders.date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("daily_orders.date ASC").
		Find(&items).Error
	return items, err
}
