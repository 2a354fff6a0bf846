package enum

// DailyOrderStatus is the delivery lifecycle of a driver's daily order
type DailyOrderStatus string

const (
	DailyOrderStatusPending    DailyOrderStatus = "pending"
	DailyOrderStatusProcessing DailyOrderStatus = "processing"
	DailyOrderStatusDelivered  DailyOrderStatus = "delivered"
	DailyOrderStatusCancelled  DailyOrderStatus = "cancelled"
)

var dailyOrderTransitions = map[DailyOrderStatus][]DailyOrderStatus{
	DailyOrderStatusPending:    {DailyOrderStatusProcessing, DailyOrderStatusDelivered, DailyOrderStatusCancelled},
	DailyOrderStatusProcessing: {DailyOrderStatusDelivered, DailyOrderStatusCancelled},
}

// IsValid reports whether s is a known status
func (s DailyOrderStatus) IsValid() bool {
	switch s {
	case DailyOrderStatusPending, DailyOrderStatusProcessing, DailyOrderStatusDelivered, DailyOrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a daily order may move from s to next
func (s DailyOrderStatus) CanTransitionTo(next DailyOrderStatus) bool {
	for _, allowed := range dailyOrderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
