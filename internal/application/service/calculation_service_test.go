package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/entity"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/repository"
	"github.com/loop2cod/SNAZ-sub000/pkg/apperror"
	"github.com/loop2cod/SNAZ-sub000/pkg/utils"
)

func TestDailyTotals(t *testing.T) {
	f := newFixture()
	driver := f.addDriver("Ravi")
	route := "North"
	driver.Route = &route
	f.drivers.drivers[driver.ID] = driver

	f.orders.orders = []entity.DailyOrder{
		{ID: uuid.New(), Date: orderDate, DriverID: driver.ID, TotalVegFood: 4, TotalNonVegFood: 6, TotalFood: 10, TotalAmount: 500.10, Driver: &driver},
		{ID: uuid.New(), Date: orderDate, DriverID: uuid.New(), TotalVegFood: 1, TotalNonVegFood: 2, TotalFood: 3, TotalAmount: 150.20},
		{ID: uuid.New(), Date: orderDate.AddDate(0, 0, 1), DriverID: driver.ID, TotalFood: 99, TotalAmount: 9999},
	}

	totals, err := f.calcSvc.DailyTotals(context.Background(), orderDate.Add(15*time.Hour))
	if err != nil {
		t.Fatalf("DailyTotals() error = %v", err)
	}
	if totals.Date != "2025-03-10" {
		t.Errorf("Date = %s", totals.Date)
	}
	if totals.TotalFood != 13 || totals.TotalVegFood != 5 || totals.TotalNonVegFood != 8 {
		t.Errorf("food totals = %d/%d/%d", totals.TotalFood, totals.TotalVegFood, totals.TotalNonVegFood)
	}
	if totals.TotalAmount != 650.30 {
		t.Errorf("TotalAmount = %v, want 650.30", totals.TotalAmount)
	}
	if len(totals.DriverBreakdown) != 2 {
		t.Fatalf("breakdown rows = %d, want 2", len(totals.DriverBreakdown))
	}
	if row := totals.DriverBreakdown[0]; row.DriverName != "Ravi" || row.Route == nil || *row.Route != "North" {
		t.Errorf("first row = %+v, want driver details", row)
	}
}

func TestRangeTotals(t *testing.T) {
	f := newFixture()
	top, second := uuid.New(), uuid.New()
	f.analytics.summary = repository.OrderSummaryResult{
		TotalOrders: 3, TotalVegFood: 10, TotalNonVegFood: 20, TotalFood: 30,
		TotalAmount: 1000.004, AverageOrderValue: 333.334667,
	}
	f.analytics.drivers = []repository.DriverSummaryResult{
		{DriverID: top, DriverName: "Ravi", TotalOrders: 2, TotalFood: 20, TotalRevenue: 700.005},
		{DriverID: second, DriverName: "Sam", TotalOrders: 1, TotalFood: 10, TotalRevenue: 300},
	}

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	got, err := f.calcSvc.RangeTotals(context.Background(), start, end)
	if err != nil {
		t.Fatalf("RangeTotals() error = %v", err)
	}
	if got.StartDate != "2025-03-01" || got.EndDate != "2025-03-31" {
		t.Errorf("range = %s..%s", got.StartDate, got.EndDate)
	}
	if got.Summary.TotalAmount != 1000 || got.Summary.AverageOrderValue != 333.33 {
		t.Errorf("summary = %+v", got.Summary)
	}
	if len(got.DriverSummary) != 2 || got.DriverSummary[0].DriverID != top {
		t.Fatalf("driver summary = %+v", got.DriverSummary)
	}
	if got.DriverSummary[0].TotalRevenue != 700.01 {
		t.Errorf("TotalRevenue = %v, want 700.01", got.DriverSummary[0].TotalRevenue)
	}
}

func TestRangeTotals_InvalidRange(t *testing.T) {
	f := newFixture()
	_, err := f.calcSvc.RangeTotals(context.Background(), orderDate, orderDate.AddDate(0, 0, -1))
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("error = %v, want validation", err)
	}
}

func TestCustomerMonthly(t *testing.T) {
	f := newFixture()
	driver := f.addDriver("Ravi")
	standard := f.addCategory("Standard")
	premium := f.addCategory("Premium")
	customer := f.addCustomer("Anu", driver.ID, nil, entity.DailyFood{},
		entity.CustomerPackage{CategoryID: standard.ID, UnitPrice: 10, Category: &standard},
		entity.CustomerPackage{CategoryID: premium.ID, UnitPrice: 20, Category: &premium},
	)

	f.addOrderItem(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), customer, standard.ID, 10, "3+2")
	f.addOrderItem(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), customer, premium.ID, 20, "4")
	f.addOrderItem(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), customer, standard.ID, 10, "1")
	f.addOrderItem(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), customer, standard.ID, 10, "50")

	start, end := utils.MonthRange(2025, 3)
	calc, err := f.calcSvc.CustomerMonthly(context.Background(), customer.ID, start, end, 0.18)
	if err != nil {
		t.Fatalf("CustomerMonthly() error = %v", err)
	}

	if calc.TotalDays != 21 {
		t.Errorf("TotalDays = %d, want 21", calc.TotalDays)
	}
	if calc.DaysWithOrders != 3 {
		t.Errorf("DaysWithOrders = %d, want 3", calc.DaysWithOrders)
	}
	if len(calc.PackageBreakdown) != 2 {
		t.Fatalf("breakdown rows = %d, want 2", len(calc.PackageBreakdown))
	}
	std := calc.PackageBreakdown[0]
	if std.CategoryName != "Standard" || std.TotalQuantity != 6 || std.TotalAmount != 60 {
		t.Errorf("standard row = %+v", std)
	}
	if prm := calc.PackageBreakdown[1]; prm.TotalQuantity != 4 || prm.TotalAmount != 80 {
		t.Errorf("premium row = %+v", prm)
	}
	if calc.Subtotal != 140 || calc.Tax != 25.2 || calc.TotalAmount != 165.2 {
		t.Errorf("subtotal/tax/total = %v/%v/%v, want 140/25.2/165.2", calc.Subtotal, calc.Tax, calc.TotalAmount)
	}
	if calc.VegCount != 2 || calc.NonVegCount != 8 || calc.TotalFood != 10 {
		t.Errorf("veg/non-veg/total = %d/%d/%d", calc.VegCount, calc.NonVegCount, calc.TotalFood)
	}
}

func TestCustomerMonthly_MissingCustomer(t *testing.T) {
	f := newFixture()
	start, end := utils.MonthRange(2025, 3)

	calc, err := f.calcSvc.CustomerMonthly(context.Background(), uuid.New(), start, end, 0)
	if err != nil || calc != nil {
		t.Fatalf("CustomerMonthly() = %v, %v; want nil, nil", calc, err)
	}
}

func TestCustomerMonthly_Validation(t *testing.T) {
	f := newFixture()
	start, end := utils.MonthRange(2025, 3)

	if _, err := f.calcSvc.CustomerMonthly(context.Background(), uuid.New(), end, start, 0); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("reversed range error = %v", err)
	}
	if _, err := f.calcSvc.CustomerMonthly(context.Background(), uuid.New(), start, end, -0.1); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("negative tax error = %v", err)
	}
}

func TestProfitAnalysis(t *testing.T) {
	f := newFixture()
	f.analytics.summary = repository.OrderSummaryResult{TotalFood: 30, TotalAmount: 1500}

	tests := []struct {
		name        string
		costPerMeal float64
		wantCost    float64
		wantGross   float64
		wantMargin  float64
	}{
		{"configured default", 0, 750, 750, 50},
		{"explicit cost", 30, 900, 600, 40},
		{"loss", 60, 1800, -300, -20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.calcSvc.ProfitAnalysis(context.Background(), orderDate, orderDate, tt.costPerMeal)
			if err != nil {
				t.Fatalf("ProfitAnalysis() error = %v", err)
			}
			if got.TotalCost != tt.wantCost || got.GrossProfit != tt.wantGross || got.ProfitMargin != tt.wantMargin {
				t.Errorf("cost/gross/margin = %v/%v/%v, want %v/%v/%v",
					got.TotalCost, got.GrossProfit, got.ProfitMargin, tt.wantCost, tt.wantGross, tt.wantMargin)
			}
		})
	}
}

func TestProfitAnalysis_RepositoryError(t *testing.T) {
	f := newFixture()
	f.analytics.err = errFake

	if _, err := f.calcSvc.ProfitAnalysis(context.Background(), orderDate, orderDate, 25); !errors.Is(err, errFake) {
		t.Fatalf("error = %v, want repository error", err)
	}
}
