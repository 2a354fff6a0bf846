package request

// GenerateDailyOrdersRequest represents a daily order generation request
type GenerateDailyOrdersRequest struct {
	Date            string  `json:"date" binding:"required"`
	MealWindowStart *string `json:"nea_start_time"`
}

// UpdateOrderItemRequest corrects one order item's bag format
type UpdateOrderItemRequest struct {
	BagFormat string `json:"bag_format" binding:"required"`
}

// UpdateOrderStatusRequest moves a daily order to another status
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
