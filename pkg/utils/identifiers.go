package utils

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/google/uuid"
)

// Bill number prefixes per billed entity type.
const (
	CustomerBillPrefix = "BILL-C"
	CompanyBillPrefix  = "BILL-CO"
)

var billNumberPattern = regexp.MustCompile(`^(BILL-C|BILL-CO)-(\d{4})(\d{2})-(\d{4,})$`)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// FormatBillNumber renders "{prefix}-{YYYYMM}-{NNNN}".
func FormatBillNumber(prefix string, year, month, sequence int) string {
	return fmt.Sprintf("%s-%04d%02d-%04d", prefix, year, month, sequence)
}

// ParseBillNumber splits a bill number into its parts.
func ParseBillNumber(number string) (prefix string, year, month, sequence int, ok bool) {
	m := billNumberPattern.FindStringSubmatch(number)
	if m == nil {
		return "", 0, 0, 0, false
	}
	year, _ = strconv.Atoi(m[2])
	month, _ = strconv.Atoi(m[3])
	sequence, _ = strconv.Atoi(m[4])
	return m[1], year, month, sequence, true
}
