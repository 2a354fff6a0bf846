package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/entity"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/enum"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/repository"
	"github.com/loop2cod/SNAZ-sub000/pkg/apperror"
	"github.com/loop2cod/SNAZ-sub000/pkg/money"
	"github.com/loop2cod/SNAZ-sub000/pkg/pagination"
	"github.com/loop2cod/SNAZ-sub000/pkg/utils"
)

// BillingService generates monthly customer and company bills
type BillingService struct {
	billRepo     repository.BillRepository
	customerRepo repository.CustomerRepository
	companyRepo  repository.CompanyRepository
	calculations *CalculationService
	payments     *PaymentService
	tx           repository.Transactor
	now          func() time.Time
}

// NewBillingService creates a new billing service
func NewBillingService(
	billRepo repository.BillRepository,
	customerRepo repository.CustomerRepository,
	companyRepo repository.CompanyRepository,
	calculations *CalculationService,
	payments *PaymentService,
	tx repository.Transactor,
) *BillingService {
	return &BillingService{
		billRepo:     billRepo,
		customerRepo: customerRepo,
		companyRepo:  companyRepo,
		calculations: calculations,
		payments:     payments,
		tx:           tx,
		now:          time.Now,
	}
}

func validatePeriod(year, month int) error {
	if month < 1 || month > 12 {
		return apperror.NewFieldError("month", "must be between 1 and 12")
	}
	if year < 2000 || year > 9999 {
		return apperror.NewFieldError("year", "must be a four digit year")
	}
	return nil
}

// GenerateCustomerBill bills a customer's order items for the month, without
// tax, creating the bill or recomputing it in place. Existing advance
// payments are applied right after.
func (s *BillingService) GenerateCustomerBill(ctx context.Context, customerID uuid.UUID, year, month int) (*entity.Bill, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}
	start, end := utils.MonthRange(year, month)

	calc, err := s.calculations.CustomerMonthly(ctx, customerID, start, end, 0)
	if err != nil {
		return nil, err
	}
	if calc == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	items := make([]entity.BillItem, 0, len(calc.PackageBreakdown))
	amounts := make([]float64, 0, len(calc.PackageBreakdown))
	for _, row := range calc.PackageBreakdown {
		items = append(items, entity.BillItem{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			UnitPrice:    row.UnitPrice,
			Quantity:     row.TotalQuantity,
			Amount:       row.TotalAmount,
		})
		amounts = append(amounts, row.TotalAmount)
	}

	draft := &entity.Bill{
		EntityType:  enum.EntityTypeCustomer,
		EntityID:    customerID,
		PeriodYear:  year,
		PeriodMonth: month,
		StartDate:   start,
		EndDate:     end,
		Items:       items,
		Subtotal:    money.Sum(amounts...),
	}
	return s.upsert(ctx, draft, utils.CustomerBillPrefix)
}

// GenerateCompanyBill rolls up the month's customer bills of the company's
// customers into one consolidated bill and links them to it.
func (s *BillingService) GenerateCompanyBill(ctx context.Context, companyID uuid.UUID, year, month int) (*entity.Bill, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}

	customerBills, err := s.billRepo.ListCustomerBillsForCompany(ctx, companyID, year, month)
	if err != nil {
		return nil, err
	}
	if len(customerBills) == 0 {
		return nil, apperror.NewNoBillableCustomersError(year, month)
	}

	subtotals := make([]float64, len(customerBills))
	linked := make([]uuid.UUID, len(customerBills))
	for i, b := range customerBills {
		subtotals[i] = b.Subtotal
		linked[i] = b.ID
	}

	start, end := utils.MonthRange(year, month)
	draft := &entity.Bill{
		EntityType:     enum.EntityTypeCompany,
		EntityID:       companyID,
		PeriodYear:     year,
		PeriodMonth:    month,
		StartDate:      start,
		EndDate:        end,
		Items:          []entity.BillItem{},
		Subtotal:       money.Sum(subtotals...),
		IsConsolidated: true,
	}

	var (
		bill   *entity.Bill
		audits []pendingAudit
	)
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		bill, err = s.save(ctx, draft, utils.CompanyBillPrefix)
		if err != nil {
			return err
		}
		if err := s.billRepo.LinkToParent(ctx, linked, bill.ID); err != nil {
			return err
		}
		audits, err = s.payments.applyAdvancePayments(ctx, enum.EntityTypeCompany, companyID, bill)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.payments.writeAudits(ctx, audits)
	return bill, nil
}

func (s *BillingService) upsert(ctx context.Context, draft *entity.Bill, prefix string) (*entity.Bill, error) {
	var (
		bill   *entity.Bill
		audits []pendingAudit
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		bill, err = s.save(ctx, draft, prefix)
		if err != nil {
			return err
		}
		audits, err = s.payments.applyAdvancePayments(ctx, draft.EntityType, draft.EntityID, bill)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.payments.writeAudits(ctx, audits)
	return bill, nil
}

// save recomputes an existing bill for the period, keeping what was already
// paid, or creates a new numbered bill.
func (s *BillingService) save(ctx context.Context, draft *entity.Bill, prefix string) (*entity.Bill, error) {
	existing, err := s.billRepo.GetByPeriod(ctx, draft.EntityType, draft.EntityID, draft.PeriodYear, draft.PeriodMonth)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if existing != nil {
		existing.Items = draft.Items
		existing.Subtotal = draft.Subtotal
		existing.Tax = 0
		existing.StartDate = draft.StartDate
		existing.EndDate = draft.EndDate
		existing.IsConsolidated = draft.IsConsolidated
		existing.GeneratedAt = now
		existing.RecalcTotals()
		if err := s.billRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	seq, err := s.billRepo.NextSequence(ctx, prefix, draft.PeriodYear, draft.PeriodMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate bill number: %w", err)
	}

	draft.Number = utils.FormatBillNumber(prefix, draft.PeriodYear, draft.PeriodMonth, seq)
	draft.Tax = 0
	draft.PaidAmount = 0
	draft.GeneratedAt = now
	draft.RecalcTotals()

	if err := s.billRepo.Create(ctx, draft); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError("Bill for this period is being generated concurrently")
		}
		return nil, err
	}
	return draft, nil
}

// BatchFailure names an entity the monthly run could not bill
type BatchFailure struct {
	EntityType enum.EntityType `json:"entity_type"`
	EntityID   uuid.UUID       `json:"entity_id"`
	Name       string          `json:"name"`
	Reason     string          `json:"reason"`
}

// BatchResult reports a monthly billing run
type BatchResult struct {
	Year          int            `json:"year"`
	Month         int            `json:"month"`
	CustomerBills int            `json:"customer_bills"`
	CompanyBills  int            `json:"company_bills"`
	Skipped       []BatchFailure `json:"skipped"`
	Failures      []BatchFailure `json:"failures"`
}

// GenerateMonthlyBills bills every active customer, then every active company.
// A failing entity is recorded and the run continues.
func (s *BillingService) GenerateMonthlyBills(ctx context.Context, year, month int) (*BatchResult, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}

	customers, err := s.customerRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	companies, err := s.companyRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{Year: year, Month: month, Skipped: []BatchFailure{}, Failures: []BatchFailure{}}

	for _, c := range customers {
		if _, err := s.GenerateCustomerBill(ctx, c.ID, year, month); err != nil {
			log.Printf("Warning: failed to bill customer %s for %04d-%02d: %v", c.ID, year, month, err)
			result.Failures = append(result.Failures, BatchFailure{
				EntityType: enum.EntityTypeCustomer, EntityID: c.ID, Name: c.Name, Reason: err.Error(),
			})
			continue
		}
		result.CustomerBills++
	}

	for _, c := range companies {
		if _, err := s.GenerateCompanyBill(ctx, c.ID, year, month); err != nil {
			failure := BatchFailure{EntityType: enum.EntityTypeCompany, EntityID: c.ID, Name: c.Name, Reason: err.Error()}
			if errors.Is(err, apperror.ErrNoBillableCustomers) {
				result.Skipped = append(result.Skipped, failure)
				continue
			}
			log.Printf("Warning: failed to bill company %s for %04d-%02d: %v", c.ID, year, month, err)
			result.Failures = append(result.Failures, failure)
			continue
		}
		result.CompanyBills++
	}

	log.Printf("Monthly billing %04d-%02d: %d customer bills, %d company bills, %d skipped, %d failed",
		year, month, result.CustomerBills, result.CompanyBills, len(result.Skipped), len(result.Failures))
	return result, nil
}

// GetBill retrieves a bill with its items
func (s *BillingService) GetBill(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// GetBillByNumber looks a bill up by its printed number.
func (s *BillingService) GetBillByNumber(ctx context.Context, number string) (*entity.Bill, error) {
	if _, _, _, _, ok := utils.ParseBillNumber(number); !ok {
		return nil, apperror.NewFieldError("number", "must look like BILL-C-YYYYMM-NNNN or BILL-CO-YYYYMM-NNNN")
	}
	bill, err := s.billRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// GetBillByPeriod returns the entity's bill for the month, or nil when it has
// not been generated yet
func (s *BillingService) GetBillByPeriod(ctx context.Context, entityType enum.EntityType, entityID uuid.UUID, year, month int) (*entity.Bill, error) {
	if !entityType.IsValid() {
		return nil, apperror.NewFieldError("entity_type", "must be customer or company")
	}
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}
	return s.billRepo.GetByPeriod(ctx, entityType, entityID, year, month)
}

// ListBills retrieves bills with pagination
func (s *BillingService) ListBills(ctx context.Context, params *pagination.PaginationParams, filter repository.BillFilter) (*pagination.PaginatedResult[entity.Bill], error) {
	bills, total, err := s.billRepo.List(ctx, params, filter)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(bills, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}
