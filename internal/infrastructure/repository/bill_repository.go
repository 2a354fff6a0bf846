package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/entity"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/enum"
	domainRepo "github.com/loop2cod/SNAZ-sub000/internal/domain/repository"
	"github.com/loop2cod/SNAZ-sub000/pkg/pagination"
	"gorm.io/gorm"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) Create(ctx context.Context, bill *entity.Bill) error {
	err := conn(ctx, r.db).Create(bill).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainRepo.ErrDuplicate
	}
	return err
}

// Update saves the bill row and replaces its items in one transaction
func (r *billRepository) Update(ctx context.Context, bill *entity.Bill) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(bill).Error; err != nil {
			return err
		}
		if err := tx.Where("bill_id = ?", bill.ID).Delete(&entity.BillItem{}).Error; err != nil {
			return err
		}
		if len(bill.Items) == 0 {
			return nil
		}
		for i := range bill.Items {
			bill.Items[i].ID = uuid.Nil
			bill.Items[i].BillID = bill.ID
		}
		return tx.Create(&bill.Items).Error
	})
}

func (r *billRepository) UpdateBalance(ctx context.Context, bill *entity.Bill) error {
	return conn(ctx, r.db).Model(&entity.Bill{}).Where("id = ?", bill.ID).Updates(map[string]interface{}{
		"paid_amount":    bill.PaidAmount,
		"balance_amount": bill.BalanceAmount,
		"status":         bill.Status,
	}).Error
}

func (r *billRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *billRepository) GetByNumber(ctx context.Context, number string) (*entity.Bill, error) {
	return r.first(ctx, "number = ?", number)
}

func (r *billRepository) GetByPeriod(ctx context.Context, entityType enum.EntityType, entityID uuid.UUID, year, month int) (*entity.Bill, error) {
	return r.first(ctx, "entity_type = ? AND entity_id = ? AND period_year = ? AND period_month = ?",
		entityType, entityID, year, month)
}

func (r *billRepository) first(ctx context.Context, query string, args ...interface{}) (*entity.Bill, error) {
	var bill entity.Bill
	err := conn(ctx, r.db).Scopes(ForUpdate(ctx)).Preload("Items").Where(query, args...).First(&bill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) ListOutstanding(ctx context.Context, entityType enum.EntityType, entityID uuid.UUID) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := conn(ctx, r.db).Scopes(ForUpdate(ctx)).
		Where("entity_type = ? AND entity_id = ? AND status IN ?", entityType, entityID, enum.OutstandingBillStatuses).
		Order("period_year ASC, period_month ASC, created_at ASC").
		Find(&bills).Error
	return bills, err
}

func (r *billRepository) ListCustomerBillsForCompany(ctx context.Context, companyID uuid.UUID, year, month int) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := conn(ctx, r.db).
		Joins("JOIN customers ON customers.id = bills.entity_id").
		Where("bills.entity_type = ?", enum.EntityTypeCustomer).
		Where("bills.period_year = ? AND bills.period_month = ?", year, month).
		Where("customers.company_id = ?", companyID).
		Order("bills.number ASC").
		Find(&bills).Error
	return bills, err
}

func (r *billRepository) LinkToParent(ctx context.Context, billIDs []uuid.UUID, parentID uuid.UUID) error {
	if len(billIDs) == 0 {
		return nil
	}
	return conn(ctx, r.db).Model(&entity.Bill{}).
		Where("id IN ?", billIDs).
		Update("parent_bill_id", parentID).Error
}

func (r *billRepository) ListLinked(ctx context.Context, parentID uuid.UUID) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := conn(ctx, r.db).Scopes(ForUpdate(ctx)).
		Where("parent_bill_id = ?", parentID).
		Order("number ASC").
		Find(&bills).Error
	return bills, err
}

// NextSequence bumps the counter row with a single upsert so concurrent
// generators never observe the same value.
func (r *billRepository) NextSequence(ctx context.Context, prefix string, year, month int) (int, error) {
	var next int
	err := conn(ctx, r.db).Raw(`
		INSERT INTO bill_sequences (prefix, year, month, last_value)
		VALUES (?, ?, ?, 1)
		ON CONFLICT (prefix, year, month)
		DO UPDATE SET last_value = bill_sequences.last_value + 1
		RETURNING last_value
	`, prefix, year, month).Scan(&next).Error
	return next, err
}

func (r *billRepository) List(ctx context.Context, params *pagination.PaginationParams, filter domainRepo.BillFilter) ([]entity.Bill, int64, error) {
	var bills []entity.Bill
	var total int64

	query := conn(ctx, r.db).Model(&entity.Bill{})
	if filter.EntityType != nil {
		query = query.Where("entity_type = ?", *filter.EntityType)
	}
	if filter.EntityID != nil {
		query = query.Where("entity_id = ?", *filter.EntityID)
	}
	if filter.Year != nil {
		query = query.Where("period_year = ?", *filter.Year)
	}
	if filter.Month != nil {
		query = query.Where("period_month = ?", *filter.Month)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).
		Order("period_year DESC, period_month DESC, number ASC").
		Find(&bills).Error

	return bills, total, err
}
