package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/entity"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/enum"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/repository"
	"github.com/loop2cod/SNAZ-sub000/pkg/apperror"
	"github.com/loop2cod/SNAZ-sub000/pkg/bagformat"
	"github.com/loop2cod/SNAZ-sub000/pkg/pagination"
	"github.com/loop2cod/SNAZ-sub000/pkg/utils"
)

// OrderService generates and maintains drivers' daily orders
type OrderService struct {
	dailyOrderRepo  repository.DailyOrderRepository
	customerRepo    repository.CustomerRepository
	driverRepo      repository.DriverRepository
	tx              repository.Transactor
	locker          repository.Locker
	mealWindowHours int
	lockTTL         time.Duration
}

// NewOrderService creates a new order service
func NewOrderService(
	dailyOrderRepo repository.DailyOrderRepository,
	customerRepo repository.CustomerRepository,
	driverRepo repository.DriverRepository,
	tx repository.Transactor,
	locker repository.Locker,
	mealWindowHours int,
	lockTTL time.Duration,
) *OrderService {
	if lockTTL <= 0 {
		lockTTL = time.Minute
	}
	return &OrderService{
		dailyOrderRepo:  dailyOrderRepo,
		customerRepo:    customerRepo,
		driverRepo:      driverRepo,
		tx:              tx,
		locker:          locker,
		mealWindowHours: mealWindowHours,
		lockTTL:         lockTTL,
	}
}

// GenerateDailyOrders expands every active customer's daily food into one
// pending order per driver for the date. A date is generated at most once.
func (s *OrderService) GenerateDailyOrders(ctx context.Context, date, mealWindowStart time.Time) ([]entity.DailyOrder, error) {
	day := utils.StartOfDay(date)
	dayKey := day.Format(utils.DateLayout)
	if mealWindowStart.IsZero() {
		mealWindowStart = day
	}

	lockKey := "daily-orders:" + dayKey
	token, acquired, err := s.locker.Acquire(ctx, lockKey, s.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire generation lock: %w", err)
	}
	if !acquired {
		return nil, apperror.NewConflictError("Daily order generation for " + dayKey + " is already running")
	}
	defer func() {
		if err := s.locker.Release(context.Background(), lockKey, token); err != nil {
			log.Printf("Warning: failed to release generation lock %s: %v", lockKey, err)
		}
	}()

	exists, err := s.dailyOrderRepo.ExistsForDate(ctx, day)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.NewDuplicateGenerationError(dayKey)
	}

	customers, err := s.customerRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	orders := buildDailyOrders(customers, day, mealWindowStart, s.mealWindowHours)
	if len(orders) == 0 {
		return []entity.DailyOrder{}, nil
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.dailyOrderRepo.CreateBatch(ctx, orders)
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, apperror.NewDuplicateGenerationError(dayKey)
	}
	if err != nil {
		return nil, err
	}

	for i := range orders {
		driver, err := s.driverRepo.GetByID(ctx, orders[i].DriverID)
		if err != nil {
			log.Printf("Warning: failed to load driver %s: %v", orders[i].DriverID, err)
			continue
		}
		orders[i].Driver = driver
	}

	log.Printf("Generated %d daily orders for %s", len(orders), dayKey)
	return orders, nil
}

// buildDailyOrders emits one item per customer, meal and package, including
// items whose bag format is blank, and groups them into one order per driver.
func buildDailyOrders(customers []entity.Customer, day, windowStart time.Time, windowHours int) []entity.DailyOrder {
	byDriver := make(map[uuid.UUID]*entity.DailyOrder)
	var driverOrder []uuid.UUID

	for _, customer := range customers {
		order, ok := byDriver[customer.DriverID]
		if !ok {
			order = &entity.DailyOrder{
				ID:           uuid.New(),
				Date:         day,
				DriverID:     customer.DriverID,
				NEAStartTime: windowStart,
				NEAEndTime:   bagformat.MealWindow(windowStart, windowHours),
				Status:       enum.DailyOrderStatusPending,
			}
			byDriver[customer.DriverID] = order
			driverOrder = append(driverOrder, customer.DriverID)
		}

		for _, meal := range enum.MealTypes {
			raw := customer.DailyFood.For(meal)
			for _, pkg := range customer.Packages {
				item := entity.OrderItem{
					ID:           uuid.New(),
					DailyOrderID: order.ID,
					CustomerID:   customer.ID,
					CategoryID:   pkg.CategoryID,
					MealType:     meal,
					UnitPrice:    pkg.UnitPrice,
				}
				item.ApplyBagFormat(raw)
				order.Items = append(order.Items, item)
			}
		}
	}

	orders := make([]entity.DailyOrder, 0, len(driverOrder))
	for _, driverID := range driverOrder {
		order := byDriver[driverID]
		order.RecalcTotals()
		orders = append(orders, *order)
	}
	return orders
}

// UpdateOrderItem corrects one item's bag format and re-sums the whole order
func (s *OrderService) UpdateOrderItem(ctx context.Context, dailyOrderID, orderItemID uuid.UUID, bagFormat string) (*entity.DailyOrder, error) {
	bagFormat = strings.TrimSpace(bagFormat)
	if v := bagformat.ValidateAndParse(bagFormat); !v.IsValid {
		return nil, apperror.NewFieldError("bag_format", v.Error.Error())
	}

	order, err := s.dailyOrderRepo.GetByID(ctx, dailyOrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Daily order")
	}

	item := order.FindItem(orderItemID)
	if item == nil {
		return nil, apperror.NewNotFoundError("Order item")
	}

	item.ApplyBagFormat(bagFormat)
	order.RecalcTotals()

	if err := s.dailyOrderRepo.SaveItem(ctx, order, item); err != nil {
		return nil, err
	}

	return order, nil
}

// UpdateStatus moves a daily order along its delivery lifecycle
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DailyOrderStatus) (*entity.DailyOrder, error) {
	if !status.IsValid() {
		return nil, apperror.NewFieldError("status", "unknown status "+string(status))
	}

	order, err := s.dailyOrderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Daily order")
	}

	if order.Status == status {
		return order, nil
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, apperror.NewFieldError("status",
			fmt.Sprintf("cannot move a %s order to %s", order.Status, status))
	}

	if err := s.dailyOrderRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	order.Status = status

	return order, nil
}

// GetDailyOrder retrieves a daily order with its items
func (s *OrderService) GetDailyOrder(ctx context.Context, id uuid.UUID) (*entity.DailyOrder, error) {
	order, err := s.dailyOrderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Daily order")
	}
	return order, nil
}

// ListDailyOrders retrieves daily orders with pagination
func (s *OrderService) ListDailyOrders(ctx context.Context, params *pagination.PaginationParams, filter repository.DailyOrderFilter) (*pagination.PaginatedResult[entity.DailyOrder], error) {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, apperror.NewFieldError("to", "end date is before start date")
	}

	orders, total, err := s.dailyOrderRepo.List(ctx, params, filter)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(orders, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}
