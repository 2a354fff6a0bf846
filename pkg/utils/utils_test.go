package utils

import (
	"testing"
	"time"
)

func TestFormatBillNumber(t *testing.T) {
	tests := []struct {
		prefix string
		year   int
		month  int
		seq    int
		want   string
	}{
		{CustomerBillPrefix, 2024, 1, 1, "BILL-C-202401-0001"},
		{CompanyBillPrefix, 2024, 1, 7, "BILL-CO-202401-0007"},
		{CustomerBillPrefix, 2023, 12, 123, "BILL-C-202312-0123"},
	}

	for _, tt := range tests {
		if got := FormatBillNumber(tt.prefix, tt.year, tt.month, tt.seq); got != tt.want {
			t.Errorf("FormatBillNumber() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseBillNumber(t *testing.T) {
	prefix, year, month, seq, ok := ParseBillNumber("BILL-CO-202402-0011")
	if !ok || prefix != CompanyBillPrefix || year != 2024 || month != 2 || seq != 11 {
		t.Errorf("unexpected parse: %s %d %d %d %v", prefix, year, month, seq, ok)
	}

	if _, _, _, _, ok := ParseBillNumber("INV-123"); ok {
		t.Error("expected foreign number to be rejected")
	}
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(2024, 2)
	if !start.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", start)
	}
	if end.Day() != 29 || end.Month() != time.February || end.Hour() != 23 {
		t.Errorf("end = %v", end)
	}
}

func TestWeekdaysBetween(t *testing.T) {
	// January 2024 has 23 weekdays.
	start, end := MonthRange(2024, 1)
	if got := WeekdaysBetween(start, end); got != 23 {
		t.Errorf("WeekdaysBetween(Jan 2024) = %d, want 23", got)
	}

	sat := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	if got := WeekdaysBetween(sat, sat.AddDate(0, 0, 1)); got != 0 {
		t.Errorf("weekend only = %d, want 0", got)
	}
}

func TestBusinessToday(t *testing.T) {
	now := time.Date(2024, 3, 31, 20, 0, 0, 0, time.UTC)
	got := BusinessToday(now, 330)
	if !got.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("BusinessToday = %v", got)
	}
}
