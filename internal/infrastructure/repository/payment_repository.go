package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/entity"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/enum"
	domainRepo "github.com/loop2cod/SNAZ-sub000/internal/domain/repository"
	"github.com/loop2cod/SNAZ-sub000/pkg/pagination"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return conn(ctx, r.db).Create(payment).Error
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := conn(ctx, r.db).Preload("Allocations").First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) ListByEntity(ctx context.Context, entityType enum.EntityType, entityID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := conn(ctx, r.db).
		Preload("Allocations").
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("date ASC, created_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) AddAllocation(ctx context.Context, allocation *entity.PaymentAllocation) error {
	return conn(ctx, r.db).Create(allocation).Error
}

func (r *paymentRepository) UpdateReference(ctx context.Context, id uuid.UUID, reference string) error {
	return conn(ctx, r.db).Model(&entity.Payment{}).Where("id = ?", id).Update("reference", reference).Error
}

func (r *paymentRepository) List(ctx context.Context, params *pagination.PaginationParams, filter domainRepo.PaymentFilter) ([]entity.Payment, int64, error) {
	var payments []entity.Payment
	var total int64

	query := conn(ctx, r.db).Model(&entity.Payment{})
	if filter.EntityType != nil {
		query = query.Where("entity_type = ?", *filter.EntityType)
	}
	if filter.EntityID != nil {
		query = query.Where("entity_id = ?", *filter.EntityID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).
		Preload("Allocations").
		Order("date DESC, created_at DESC").
		Find(&payments).Error

	return payments, total, err
}

type paymentAuditRepository struct {
	db *gorm.DB
}

// NewPaymentAuditRepository creates a new payment audit repository
func NewPaymentAuditRepository(db *gorm.DB) domainRepo.PaymentAuditRepository {
	return &paymentAuditRepository{db: db}
}

// Create ignores any transaction carried by ctx.
func (r *paymentAuditRepository) Create(ctx context.Context, audit *entity.PaymentAudit) error {
	return r.db.WithContext(ctx).Create(audit).Error
}

func (r *paymentAuditRepository) ListByBill(ctx context.Context, billID uuid.UUID) ([]entity.PaymentAudit, error) {
	filter, err := json.Marshal([]map[string]string{{"bill_id": billID.String()}})
	if err != nil {
		return nil, err
	}

	var audits []entity.PaymentAudit
	err = r.db.WithContext(ctx).
		Where("entries @> ?::jsonb", string(filter)).
		Order("created_at ASC").
		Find(&audits).Error
	return audits, err
}
