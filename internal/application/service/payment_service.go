package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/entity"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/enum"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/repository"
	"github.com/loop2cod/SNAZ-sub000/pkg/apperror"
	"github.com/loop2cod/SNAZ-sub000/pkg/money"
	"github.com/loop2cod/SNAZ-sub000/pkg/pagination"
	"github.com/loop2cod/SNAZ-sub000/pkg/utils"
	"gorm.io/datatypes"
)

// PaymentService records payments and allocates them to outstanding bills
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	billRepo    repository.BillRepository
	auditRepo   repository.PaymentAuditRepository
	tx          repository.Transactor
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	billRepo repository.BillRepository,
	auditRepo repository.PaymentAuditRepository,
	tx repository.Transactor,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		billRepo:    billRepo,
		auditRepo:   auditRepo,
		tx:          tx,
	}
}

// RecordPaymentInput represents a manually recorded payment
type RecordPaymentInput struct {
	EntityType enum.EntityType
	EntityID   uuid.UUID
	Amount     float64
	Date       time.Time
	Method     enum.PaymentMethod
	Reference  string
	Notes      *string
	BillID     *uuid.UUID
}

// RecordPaymentOutput is the stored payment and an informational message
type RecordPaymentOutput struct {
	Payment *entity.Payment `json:"payment"`
	Advance float64         `json:"advance"`
	Message string          `json:"message"`
}

func (in *RecordPaymentInput) validate() error {
	var fieldErrors []apperror.FieldError
	if !in.EntityType.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "entity_type", Message: "must be customer or company"})
	}
	if in.EntityID == uuid.Nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "entity_id", Message: "is required"})
	}
	if !money.Positive(in.Amount) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "amount", Message: "must be greater than zero"})
	}
	if in.Date.IsZero() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "date", Message: "is required"})
	}
	if in.Method == "" {
		in.Method = enum.PaymentMethodCash
	}
	if !in.Method.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "method", Message: "unknown payment method"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// RecordPayment applies the amount to the targeted bill, or to the entity's
// outstanding bills oldest first. Whatever is left stays on the payment as an
// advance for future bills.
func (s *PaymentService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*RecordPaymentOutput, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	amount := money.Round2(input.Amount)
	payment := &entity.Payment{
		EntityType:  input.EntityType,
		EntityID:    input.EntityID,
		Date:        utils.StartOfDay(input.Date),
		Amount:      amount,
		Method:      input.Method,
		Reference:   strings.TrimSpace(input.Reference),
		Notes:       input.Notes,
		Allocations: []entity.PaymentAllocation{},
	}

	var entries []entity.AuditEntry
	remaining := amount

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		targets, err := s.targetBills(ctx, input, amount)
		if err != nil {
			return err
		}

		for i := range targets {
			if !money.Positive(remaining) {
				break
			}
			bill := &targets[i]
			toApply := money.Min(remaining, bill.BalanceAmount)
			if !money.Positive(toApply) {
				continue
			}

			entry, err := s.applyToBill(ctx, bill, toApply)
			if err != nil {
				return err
			}
			entries = append(entries, entry)
			payment.Allocations = append(payment.Allocations, entity.PaymentAllocation{
				BillID: bill.ID,
				Amount: toApply,
			})
			remaining = money.Sub(remaining, toApply)

			if bill.IsConsolidated {
				linked, err := s.propagate(ctx, bill, toApply)
				if err != nil {
					return err
				}
				entries = append(entries, linked...)
			}
		}

		if len(payment.Allocations) == 0 && payment.Reference == "" {
			payment.Reference = entity.AdvanceReference
		}

		return s.paymentRepo.Create(ctx, payment)
	})
	if err != nil {
		return nil, err
	}

	s.writeAudit(ctx, payment, entity.AuditEventPaymentRecorded, amount, entries)

	output := &RecordPaymentOutput{Payment: payment, Message: "Payment recorded successfully"}
	if money.Positive(remaining) {
		output.Advance = remaining
		output.Message = "Advance recorded: " + strconv.FormatFloat(remaining, 'f', -1, 64)
	}
	return output, nil
}

func (s *PaymentService) targetBills(ctx context.Context, input *RecordPaymentInput, amount float64) ([]entity.Bill, error) {
	if input.BillID == nil {
		return s.billRepo.ListOutstanding(ctx, input.EntityType, input.EntityID)
	}

	bill, err := s.billRepo.GetByID(ctx, *input.BillID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	if !bill.BelongsTo(input.EntityType, input.EntityID) {
		return nil, apperror.NewFieldError("bill_id", "bill does not belong to this "+string(input.EntityType))
	}
	if input.EntityType == enum.EntityTypeCompany && !money.Equal(amount, bill.BalanceAmount) {
		return nil, apperror.NewPartialCompanyPaymentError(amount, bill.BalanceAmount)
	}
	return []entity.Bill{*bill}, nil
}

func (s *PaymentService) applyToBill(ctx context.Context, bill *entity.Bill, amount float64) (entity.AuditEntry, error) {
	before := bill.BalanceAmount
	bill.ApplyPayment(amount)
	if err := s.billRepo.UpdateBalance(ctx, bill); err != nil {
		return entity.AuditEntry{}, fmt.Errorf("failed to update bill %s: %w", bill.Number, err)
	}
	return entity.AuditEntry{
		BillID:        bill.ID,
		BillNumber:    bill.Number,
		Amount:        amount,
		BalanceBefore: before,
		BalanceAfter:  bill.BalanceAmount,
		StatusAfter:   bill.Status,
	}, nil
}

// propagate spreads an amount paid on a consolidated bill over its linked
// customer bills by their share of the total, in bill number order. Each
// share is capped at that bill's balance.
func (s *PaymentService) propagate(ctx context.Context, parent *entity.Bill, amount float64) ([]entity.AuditEntry, error) {
	linked, err := s.billRepo.ListLinked(ctx, parent.ID)
	if err != nil {
		return nil, err
	}

	weights := make([]float64, len(linked))
	for i, b := range linked {
		weights[i] = b.TotalAmount
	}
	totalWeight := money.Sum(weights...)

	var entries []entity.AuditEntry
	for i := range linked {
		bill := &linked[i]
		share := money.Min(money.Share(amount, bill.TotalAmount, totalWeight), bill.BalanceAmount)
		if !money.Positive(share) {
			continue
		}
		entry, err := s.applyToBill(ctx, bill, share)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ApplyAdvancePayments consumes the entity's unallocated payment remainders,
// oldest payment first, until the bill is settled. A payment that had no
// allocations and is used up entirely by this bill takes the bill number as
// its reference when its reference was blank or ADVANCE.
func (s *PaymentService) ApplyAdvancePayments(ctx context.Context, entityType enum.EntityType, entityID uuid.UUID, bill *entity.Bill) error {
	audits, err := s.applyAdvancePayments(ctx, entityType, entityID, bill)
	if err != nil {
		return err
	}
	s.writeAudits(ctx, audits)
	return nil
}

// pendingAudit is an audit row held back until the allocations it describes
// are committed.
type pendingAudit struct {
	payment *entity.Payment
	event   string
	entries []entity.AuditEntry
	amount  float64
}

// applyAdvancePayments does the allocation work of ApplyAdvancePayments and
// returns the audits for the caller to write once its transaction commits.
func (s *PaymentService) applyAdvancePayments(ctx context.Context, entityType enum.EntityType, entityID uuid.UUID, bill *entity.Bill) ([]pendingAudit, error) {
	if bill == nil || !bill.IsOutstanding() {
		return nil, nil
	}

	var audits []pendingAudit
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		payments, err := s.paymentRepo.ListByEntity(ctx, entityType, entityID)
		if err != nil {
			return err
		}

		for i := range payments {
			if !bill.IsOutstanding() {
				break
			}
			p := &payments[i]
			unallocated := p.Unallocated()
			if !money.Positive(unallocated) {
				continue
			}
			hadAllocations := len(p.Allocations) > 0
			toApply := money.Min(unallocated, bill.BalanceAmount)

			entry, err := s.applyToBill(ctx, bill, toApply)
			if err != nil {
				return err
			}
			allocation := entity.PaymentAllocation{PaymentID: p.ID, BillID: bill.ID, Amount: toApply}
			if err := s.paymentRepo.AddAllocation(ctx, &allocation); err != nil {
				return err
			}
			p.Allocations = append(p.Allocations, allocation)

			if !hadAllocations && !money.Positive(p.Unallocated()) &&
				(p.Reference == "" || p.Reference == entity.AdvanceReference) {
				if err := s.paymentRepo.UpdateReference(ctx, p.ID, bill.Number); err != nil {
					return err
				}
				p.Reference = bill.Number
			}

			entries := []entity.AuditEntry{entry}
			if bill.IsConsolidated {
				linked, err := s.propagate(ctx, bill, toApply)
				if err != nil {
					return err
				}
				entries = append(entries, linked...)
			}
			audits = append(audits, pendingAudit{payment: p, event: entity.AuditEventAdvanceApplied, entries: entries, amount: toApply})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return audits, nil
}

func (s *PaymentService) writeAudits(ctx context.Context, audits []pendingAudit) {
	for _, a := range audits {
		s.writeAudit(ctx, a.payment, a.event, a.amount, a.entries)
	}
}

// writeAudit is best-effort: failures are logged, never returned
func (s *PaymentService) writeAudit(ctx context.Context, payment *entity.Payment, event string, amount float64, entries []entity.AuditEntry) {
	if entries == nil {
		entries = []entity.AuditEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		log.Printf("Warning: failed to encode payment audit for %s: %v", payment.ID, err)
		return
	}

	audit := &entity.PaymentAudit{
		PaymentID:  payment.ID,
		EntityType: payment.EntityType,
		EntityID:   payment.EntityID,
		Event:      event,
		Amount:     amount,
		Entries:    datatypes.JSON(data),
	}
	if err := s.auditRepo.Create(ctx, audit); err != nil {
		log.Printf("Warning: failed to write payment audit for %s: %v", payment.ID, err)
	}
}

// GetPayment retrieves a payment with its allocations
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return payment, nil
}

// ListPayments retrieves payments with pagination
func (s *PaymentService) ListPayments(ctx context.Context, params *pagination.PaginationParams, filter repository.PaymentFilter) (*pagination.PaginatedResult[entity.Payment], error) {
	payments, total, err := s.paymentRepo.List(ctx, params, filter)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(payments, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// ListBillAudits returns the audit trail of a bill
func (s *PaymentService) ListBillAudits(ctx context.Context, billID uuid.UUID) ([]entity.PaymentAudit, error) {
	bill, err := s.billRepo.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return s.auditRepo.ListByBill(ctx, billID)
}
