package request

// BillPeriodRequest names a billing month
type BillPeriodRequest struct {
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required"`
}

// GenerateBillRequest bills one customer or company for a month
type GenerateBillRequest struct {
	EntityID string `json:"entity_id" binding:"required,uuid"`
	Year     int    `json:"year" binding:"required"`
	Month    int    `json:"month" binding:"required"`
}

// RecordPaymentRequest represents a manually recorded payment
type RecordPaymentRequest struct {
	EntityType string  `json:"entity_type" binding:"required"`
	EntityID   string  `json:"entity_id" binding:"required,uuid"`
	Amount     float64 `json:"amount"`
	Date       string  `json:"date" binding:"required"`
	Method     string  `json:"method"`
	Reference  string  `json:"reference"`
	Notes      *string `json:"notes"`
	BillID     *string `json:"bill_id" binding:"omitempty,uuid"`
}
