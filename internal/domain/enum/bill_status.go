package enum

// BillStatus is derived from a bill's paid and balance amounts
type BillStatus string

const (
	BillStatusUnpaid  BillStatus = "unpaid"
	BillStatusPartial BillStatus = "partial"
	BillStatusPaid    BillStatus = "paid"
)

// OutstandingBillStatuses are the statuses that still carry a balance
var OutstandingBillStatuses = []BillStatus{BillStatusUnpaid, BillStatusPartial}

// IsValid reports whether s is a known status
func (s BillStatus) IsValid() bool {
	return s == BillStatusUnpaid || s == BillStatusPartial || s == BillStatusPaid
}
