package request

// PackageRequest is one subscribed category and its unit price
type PackageRequest struct {
	CategoryID string  `json:"category_id" binding:"required,uuid"`
	UnitPrice  float64 `json:"unit_price" binding:"gte=0"`
}

// DailyFoodRequest carries the lunch and dinner bag formats
type DailyFoodRequest struct {
	Lunch  *string `json:"lunch"`
	Dinner *string `json:"dinner"`
}

// CustomerRequest represents a customer create or update request
type CustomerRequest struct {
	Name         *string           `json:"name"`
	Address      *string           `json:"address"`
	Phone        *string           `json:"phone"`
	Email        *string           `json:"email"`
	CompanyID    *string           `json:"company_id"`
	ClearCompany bool              `json:"clear_company"`
	DriverID     *string           `json:"driver_id"`
	Packages     *[]PackageRequest `json:"packages" binding:"omitempty,dive"`
	DailyFood    *DailyFoodRequest `json:"daily_food"`
	BillingType  *string           `json:"billing_type"`
	StartDate    *string           `json:"start_date"`
	EndDate      *string           `json:"end_date"`
	IsActive     *bool             `json:"is_active"`
}

// BulkDailyFoodItem is one customer's daily food change
type BulkDailyFoodItem struct {
	CustomerID string  `json:"customer_id"`
	Lunch      *string `json:"lunch"`
	Dinner     *string `json:"dinner"`
}

// BulkDailyFoodRequest updates many customers' daily food at once
type BulkDailyFoodRequest struct {
	Updates []BulkDailyFoodItem `json:"updates" binding:"required"`
}
