package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/entity"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/enum"
	"github.com/loop2cod/SNAZ-sub000/pkg/apperror"
)

func customerPayment(customerID uuid.UUID, amount float64) *RecordPaymentInput {
	return &RecordPaymentInput{
		EntityType: enum.EntityTypeCustomer,
		EntityID:   customerID,
		Amount:     amount,
		Date:       march(20),
	}
}

func TestRecordPayment_PartialThenFull(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	customer := f.billedCustomer("Anu", nil, "100", 10)
	bill, err := f.billingSvc.GenerateCustomerBill(ctx, customer.ID, 2025, 3)
	if err != nil {
		t.Fatal(err)
	}

	out, err := f.paymentSvc.RecordPayment(ctx, customerPayment(customer.ID, 600))
	if err != nil {
		t.Fatalf("first payment error = %v", err)
	}
	if out.Message != "Payment recorded successfully" || out.Advance != 0 {
		t.Errorf("output = %+v", out)
	}
	if len(out.Payment.Allocations) != 1 || out.Payment.Allocations[0].Amount != 600 {
		t.Errorf("allocations = %+v", out.Payment.Allocations)
	}
	if out.Payment.Method != enum.PaymentMethodCash {
		t.Errorf("Method = %s, want cash default", out.Payment.Method)
	}

	stored, _ := f.bills.GetByID(ctx, bill.ID)
	if stored.PaidAmount != 600 || stored.BalanceAmount != 400 || stored.Status != enum.BillStatusPartial {
		t.Errorf("after 600: paid/balance/status = %v/%v/%s", stored.PaidAmount, stored.BalanceAmount, stored.Status)
	}

	if _, err := f.paymentSvc.RecordPayment(ctx, customerPayment(customer.ID, 400)); err != nil {
		t.Fatalf("second payment error = %v", err)
	}
	stored, _ = f.bills.GetByID(ctx, bill.ID)
	if stored.BalanceAmount != 0 || stored.Status != enum.BillStatusPaid {
		t.Errorf("after 400: balance/status = %v/%s", stored.BalanceAmount, stored.Status)
	}

	if len(f.audits.audits) != 2 {
		t.Fatalf("audits = %d, want 2", len(f.audits.audits))
	}
	var entries []entity.AuditEntry
	if err := json.Unmarshal(f.audits.audits[0].Entries, &entries); err != nil {
		t.Fatalf("audit entries: %v", err)
	}
	if len(entries) != 1 || entries[0].BalanceBefore != 1000 || entries[0].BalanceAfter != 400 {
		t.Errorf("audit entries = %+v", entries)
	}
	if f.audits.audits[0].Event != entity.AuditEventPaymentRecorded {
		t.Errorf("Event = %s", f.audits.audits[0].Event)
	}
}

func TestRecordPayment_OldestBillFirst(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	customerID := uuid.New()
	marBill := f.bills.put(entity.Bill{Number: "BILL-C-202503-0001", EntityType: enum.EntityTypeCustomer, EntityID: customerID,
		PeriodYear: 2025, PeriodMonth: 3, Subtotal: 1000})
	febBill := f.bills.put(entity.Bill{Number: "BILL-C-202502-0001", EntityType: enum.EntityTypeCustomer, EntityID: customerID,
		PeriodYear: 2025, PeriodMonth: 2, Subtotal: 1000})
	for _, b := range []*entity.Bill{marBill, febBill} {
		b.RecalcTotals()
		_ = f.bills.Update(ctx, b)
	}

	out, err := f.paymentSvc.RecordPayment(ctx, customerPayment(customerID, 1200))
	if err != nil {
		t.Fatalf("RecordPayment() error = %v", err)
	}
	if len(out.Payment.Allocations) != 2 || out.Payment.Allocations[0].BillID != febBill.ID {
		t.Fatalf("allocations = %+v, want February first", out.Payment.Allocations)
	}

	gotFeb, _ := f.bills.GetByID(ctx, febBill.ID)
	gotMarch, _ := f.bills.GetByID(ctx, marBill.ID)
	if gotFeb.Status != enum.BillStatusPaid || gotMarch.BalanceAmount != 800 {
		t.Errorf("feb status = %s, march balance = %v", gotFeb.Status, gotMarch.BalanceAmount)
	}
}

func TestRecordPayment_AdvanceConsumedByNextBill(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	customer := f.billedCustomer("Anu", nil, "50", 10)

	out, err := f.paymentSvc.RecordPayment(ctx, customerPayment(customer.ID, 500))
	if err != nil {
		t.Fatalf("RecordPayment() error = %v", err)
	}
	if len(out.Payment.Allocations) != 0 || out.Payment.Reference != entity.AdvanceReference {
		t.Errorf("payment = %+v, want unallocated ADVANCE", out.Payment)
	}
	if out.Message != "Advance recorded: 500" || out.Advance != 500 {
		t.Errorf("message/advance = %q/%v", out.Message, out.Advance)
	}

	bill, err := f.billingSvc.GenerateCustomerBill(ctx, customer.ID, 2025, 3)
	if err != nil {
		t.Fatalf("GenerateCustomerBill() error = %v", err)
	}
	if bill.Status != enum.BillStatusPaid || bill.BalanceAmount != 0 {
		t.Errorf("bill status/balance = %s/%v, want paid/0", bill.Status, bill.BalanceAmount)
	}

	payment, _ := f.payments.GetByID(ctx, out.Payment.ID)
	if payment.Reference != bill.Number {
		t.Errorf("Reference = %s, want %s", payment.Reference, bill.Number)
	}
	if len(payment.Allocations) != 1 || payment.Unallocated() != 0 {
		t.Errorf("allocations = %+v", payment.Allocations)
	}

	last := f.audits.audits[len(f.audits.audits)-1]
	if last.Event != entity.AuditEventAdvanceApplied || last.Amount != 500 {
		t.Errorf("last audit = %s/%v", last.Event, last.Amount)
	}
}

func TestApplyAdvancePayments_ReferenceBackfill(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		advance   float64
		wantRef   string
	}{
		{"advance fully consumed", entity.AdvanceReference, 500, "BILL-C-202503-0001"},
		{"blank reference fully consumed", "", 300, "BILL-C-202503-0001"},
		{"advance partly consumed", entity.AdvanceReference, 800, entity.AdvanceReference},
		{"custom reference kept", "CHQ-1001", 500, "CHQ-1001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			ctx := context.Background()
			customerID := uuid.New()
			payment := &entity.Payment{EntityType: enum.EntityTypeCustomer, EntityID: customerID,
				Amount: tt.advance, Reference: tt.reference, Date: march(1)}
			_ = f.payments.Create(ctx, payment)

			bill := f.bills.put(entity.Bill{Number: "BILL-C-202503-0001", EntityType: enum.EntityTypeCustomer,
				EntityID: customerID, PeriodYear: 2025, PeriodMonth: 3, Subtotal: 500})
			bill.RecalcTotals()
			_ = f.bills.Update(ctx, bill)

			if err := f.paymentSvc.ApplyAdvancePayments(ctx, enum.EntityTypeCustomer, customerID, bill); err != nil {
				t.Fatalf("ApplyAdvancePayments() error = %v", err)
			}
			got, _ := f.payments.GetByID(ctx, payment.ID)
			if got.Reference != tt.wantRef {
				t.Errorf("Reference = %q, want %q", got.Reference, tt.wantRef)
			}
			wantPaid := tt.advance
			if wantPaid > 500 {
				wantPaid = 500
			}
			if bill.PaidAmount != wantPaid {
				t.Errorf("PaidAmount = %v, want %v", bill.PaidAmount, wantPaid)
			}
		})
	}
}

func TestApplyAdvancePayments_PreviouslyAllocatedKeepsReference(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	customerID := uuid.New()
	payment := &entity.Payment{EntityType: enum.EntityTypeCustomer, EntityID: customerID, Amount: 700,
		Reference: entity.AdvanceReference, Date: march(1),
		Allocations: []entity.PaymentAllocation{{BillID: uuid.New(), Amount: 200}}}
	_ = f.payments.Create(ctx, payment)

	bill := f.bills.put(entity.Bill{Number: "BILL-C-202503-0001", EntityType: enum.EntityTypeCustomer,
		EntityID: customerID, PeriodYear: 2025, PeriodMonth: 3, Subtotal: 500})
	bill.RecalcTotals()
	_ = f.bills.Update(ctx, bill)

	if err := f.paymentSvc.ApplyAdvancePayments(ctx, enum.EntityTypeCustomer, customerID, bill); err != nil {
		t.Fatal(err)
	}
	got, _ := f.payments.GetByID(ctx, payment.ID)
	if got.Reference != entity.AdvanceReference {
		t.Errorf("Reference = %q, want unchanged", got.Reference)
	}
	if bill.Status != enum.BillStatusPaid {
		t.Errorf("Status = %s, want paid", bill.Status)
	}
}

func companyBill(f *fixture, companyID uuid.UUID, total float64) *entity.Bill {
	bill := f.bills.put(entity.Bill{Number: "BILL-CO-202503-0001", EntityType: enum.EntityTypeCompany,
		EntityID: companyID, PeriodYear: 2025, PeriodMonth: 3, Subtotal: total})
	bill.RecalcTotals()
	_ = f.bills.Update(context.Background(), bill)
	return bill
}

func TestRecordPayment_CompanyMustPayInFull(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	companyID := uuid.New()
	bill := companyBill(f, companyID, 1000)
	input := &RecordPaymentInput{EntityType: enum.EntityTypeCompany, EntityID: companyID,
		Amount: 300, Date: march(20), BillID: &bill.ID}

	if _, err := f.paymentSvc.RecordPayment(ctx, input); !errors.Is(err, apperror.ErrPartialCompanyPay) {
		t.Fatalf("partial payment error = %v, want partial company payment", err)
	}
	if len(f.payments.payments) != 0 {
		t.Error("rejected payment must not be stored")
	}

	input.Amount = 1000
	if _, err := f.paymentSvc.RecordPayment(ctx, input); err != nil {
		t.Fatalf("full payment error = %v", err)
	}
	got, _ := f.bills.GetByID(ctx, bill.ID)
	if got.Status != enum.BillStatusPaid || got.BalanceAmount != 0 {
		t.Errorf("status/balance = %s/%v", got.Status, got.BalanceAmount)
	}
}

func TestRecordPayment_DirectedBillChecks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := uuid.New()
	bill := companyBill(f, owner, 1000)
	unknown := uuid.New()

	tests := []struct {
		name  string
		input *RecordPaymentInput
		want  error
	}{
		{"bill of another entity", &RecordPaymentInput{EntityType: enum.EntityTypeCompany, EntityID: uuid.New(),
			Amount: 1000, Date: march(1), BillID: &bill.ID}, apperror.ErrValidation},
		{"bill of another entity type", &RecordPaymentInput{EntityType: enum.EntityTypeCustomer, EntityID: owner,
			Amount: 1000, Date: march(1), BillID: &bill.ID}, apperror.ErrValidation},
		{"unknown bill", &RecordPaymentInput{EntityType: enum.EntityTypeCompany, EntityID: owner,
			Amount: 1000, Date: march(1), BillID: &unknown}, apperror.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.paymentSvc.RecordPayment(ctx, tt.input); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRecordPayment_Validation(t *testing.T) {
	f := newFixture()
	tests := []struct {
		name  string
		input RecordPaymentInput
		field string
	}{
		{"missing entity type", RecordPaymentInput{EntityID: uuid.New(), Amount: 10, Date: march(1)}, "entity_type"},
		{"missing entity id", RecordPaymentInput{EntityType: enum.EntityTypeCustomer, Amount: 10, Date: march(1)}, "entity_id"},
		{"zero amount", RecordPaymentInput{EntityType: enum.EntityTypeCustomer, EntityID: uuid.New(), Date: march(1)}, "amount"},
		{"negative amount", RecordPaymentInput{EntityType: enum.EntityTypeCustomer, EntityID: uuid.New(), Amount: -5, Date: march(1)}, "amount"},
		{"missing date", RecordPaymentInput{EntityType: enum.EntityTypeCustomer, EntityID: uuid.New(), Amount: 10}, "date"},
		{"unknown method", RecordPaymentInput{EntityType: enum.EntityTypeCustomer, EntityID: uuid.New(), Amount: 10, Date: march(1), Method: "barter"}, "method"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			_, err := f.paymentSvc.RecordPayment(context.Background(), &input)
			appErr := apperror.GetAppError(err)
			if appErr.Kind != apperror.KindValidation {
				t.Fatalf("error = %v, want validation", err)
			}
			if len(appErr.Errors) != 1 || appErr.Errors[0].Field != tt.field {
				t.Errorf("field errors = %+v, want %s", appErr.Errors, tt.field)
			}
		})
	}
}

func TestRecordPayment_ConsolidatedPropagation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	company := f.addCompany("Acme")
	a := f.billedCustomer("Anu", &company.ID, "60", 10)
	b := f.billedCustomer("Biju", &company.ID, "40", 10)
	billA, _ := f.billingSvc.GenerateCustomerBill(ctx, a.ID, 2025, 3)
	billB, _ := f.billingSvc.GenerateCustomerBill(ctx, b.ID, 2025, 3)
	parent, err := f.billingSvc.GenerateCompanyBill(ctx, company.ID, 2025, 3)
	if err != nil {
		t.Fatalf("GenerateCompanyBill() error = %v", err)
	}

	out, err := f.paymentSvc.RecordPayment(ctx, &RecordPaymentInput{
		EntityType: enum.EntityTypeCompany, EntityID: company.ID, Amount: 500, Date: march(25),
	})
	if err != nil {
		t.Fatalf("undirected payment error = %v", err)
	}
	if len(out.Payment.Allocations) != 1 || out.Payment.Allocations[0].BillID != parent.ID {
		t.Errorf("allocations = %+v, want only the company bill", out.Payment.Allocations)
	}

	gotA, _ := f.bills.GetByID(ctx, billA.ID)
	gotB, _ := f.bills.GetByID(ctx, billB.ID)
	if gotA.PaidAmount != 300 || gotB.PaidAmount != 200 {
		t.Errorf("linked paid = %v/%v, want 300/200", gotA.PaidAmount, gotB.PaidAmount)
	}
	if gotA.Status != enum.BillStatusPartial || gotB.Status != enum.BillStatusPartial {
		t.Errorf("linked status = %s/%s", gotA.Status, gotB.Status)
	}

	var entries []entity.AuditEntry
	_ = json.Unmarshal(f.audits.audits[len(f.audits.audits)-1].Entries, &entries)
	if len(entries) != 3 || entries[1].BillID != billA.ID || entries[2].BillID != billB.ID {
		t.Errorf("audit entries = %+v, want parent then linked bills by number", entries)
	}

	if _, err := f.paymentSvc.RecordPayment(ctx, &RecordPaymentInput{
		EntityType: enum.EntityTypeCompany, EntityID: company.ID, Amount: 500, Date: march(26), BillID: &parent.ID,
	}); err != nil {
		t.Fatalf("settling payment error = %v", err)
	}
	for _, id := range []uuid.UUID{parent.ID, billA.ID, billB.ID} {
		got, _ := f.bills.GetByID(ctx, id)
		if got.Status != enum.BillStatusPaid {
			t.Errorf("bill %s status = %s, want paid", got.Number, got.Status)
		}
	}
}

func TestGenerateCompanyBill_ConsumesCompanyAdvance(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	company := f.addCompany("Acme")
	a := f.billedCustomer("Anu", &company.ID, "60", 10)
	b := f.billedCustomer("Biju", &company.ID, "40", 10)

	if _, err := f.paymentSvc.RecordPayment(ctx, &RecordPaymentInput{
		EntityType: enum.EntityTypeCompany, EntityID: company.ID, Amount: 1000, Date: march(2),
	}); err != nil {
		t.Fatal(err)
	}
	billA, _ := f.billingSvc.GenerateCustomerBill(ctx, a.ID, 2025, 3)
	billB, _ := f.billingSvc.GenerateCustomerBill(ctx, b.ID, 2025, 3)

	parent, err := f.billingSvc.GenerateCompanyBill(ctx, company.ID, 2025, 3)
	if err != nil {
		t.Fatalf("GenerateCompanyBill() error = %v", err)
	}
	if parent.Status != enum.BillStatusPaid {
		t.Errorf("company bill status = %s, want paid", parent.Status)
	}
	for _, id := range []uuid.UUID{billA.ID, billB.ID} {
		got, _ := f.bills.GetByID(ctx, id)
		if got.Status != enum.BillStatusPaid {
			t.Errorf("linked bill %s status = %s, want paid", got.Number, got.Status)
		}
	}
}

func TestRecordPayment_AuditFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	f.audits.err = errFake

	out, err := f.paymentSvc.RecordPayment(context.Background(), customerPayment(uuid.New(), 100))
	if err != nil {
		t.Fatalf("RecordPayment() error = %v", err)
	}
	if out.Payment.ID == uuid.Nil {
		t.Error("payment should be stored")
	}
}

func TestRecordPayment_RoundsAmount(t *testing.T) {
	f := newFixture()

	out, err := f.paymentSvc.RecordPayment(context.Background(), &RecordPaymentInput{
		EntityType: enum.EntityTypeCustomer, EntityID: uuid.New(), Amount: 100.456,
		Date: time.Date(2025, 3, 5, 18, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Payment.Amount != 100.46 {
		t.Errorf("Amount = %v, want 100.46", out.Payment.Amount)
	}
	if !out.Payment.Date.Equal(march(5)) {
		t.Errorf("Date = %v, want start of day", out.Payment.Date)
	}
	if out.Message != "Advance recorded: 100.46" {
		t.Errorf("Message = %q", out.Message)
	}
}
