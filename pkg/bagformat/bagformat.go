// Package bagformat parses the compact meal-bag notation used for daily food
// templates, e.g. "5,5+7": non-veg sub-counts separated by commas, an
// optional "+" and a single veg count.
package bagformat

import (
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// DefaultWindowHours is the default length of a meal consume-by window.
const DefaultWindowHours = 4

// MaxCount bounds a single token and each parsed count. Larger tokens are
// treated like any other invalid token.
const MaxCount = 100000

var (
	// ErrEmpty is returned for a missing or blank bag format.
	ErrEmpty = errors.New("bag format is required")
	// ErrZeroTotal is returned when a bag format parses to no bags at all.
	ErrZeroTotal = errors.New("bag format must contain at least one bag")
)

// Counts is a parsed bag format.
type Counts struct {
	NonVeg int `json:"non_veg_count"`
	Veg    int `json:"veg_count"`
	Total  int `json:"total_count"`
}

// Validation is the result of ValidateAndParse.
type Validation struct {
	IsValid bool
	Parsed  Counts
	Error   error
}

// Parse never fails: tokens that are not non-negative integers count as 0.
// The non-veg sum saturates at MaxCount.
// With more than one "+" only the first two segments are read.
func Parse(raw string) (c Counts) {
	defer func() {
		if r := recover(); r != nil {
			c = Counts{}
		}
	}()

	normalized := strings.ToLower(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw))
	if normalized == "" {
		return Counts{}
	}

	parts := strings.Split(normalized, "+")
	c.NonVeg = sumList(parts[0])
	if len(parts) > 1 {
		c.Veg = number(parts[1])
	}
	c.Total = c.NonVeg + c.Veg
	return c
}

// Format renders counts back into the notation.
func Format(nonVeg, veg int) string {
	if veg == 0 {
		return strconv.Itoa(nonVeg)
	}
	return strconv.Itoa(nonVeg) + "+" + strconv.Itoa(veg)
}

// MealWindow returns the end of a meal window starting at start.
// A non-positive duration falls back to DefaultWindowHours.
func MealWindow(start time.Time, durationHours int) time.Time {
	if durationHours <= 0 {
		durationHours = DefaultWindowHours
	}
	return start.Add(time.Duration(durationHours) * time.Hour)
}

// ValidateAndParse is the gate for bag formats entered by staff.
func ValidateAndParse(raw string) Validation {
	if strings.TrimSpace(raw) == "" {
		return Validation{Error: ErrEmpty}
	}
	parsed := Parse(raw)
	if parsed.Total <= 0 {
		return Validation{Parsed: parsed, Error: ErrZeroTotal}
	}
	return Validation{IsValid: true, Parsed: parsed}
}

func sumList(s string) int {
	total := 0
	for _, token := range strings.Split(s, ",") {
		total += number(token)
		if total > MaxCount {
			return MaxCount
		}
	}
	return total
}

func number(token string) int {
	n, err := strconv.Atoi(token)
	if err != nil || n < 0 || n > MaxCount {
		return 0
	}
	return n
}
