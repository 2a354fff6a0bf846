package request

// DriverRequest represents a driver create or update request
type DriverRequest struct {
	Name          *string `json:"name"`
	Phone         *string `json:"phone"`
	Route         *string `json:"route"`
	VehicleNumber *string `json:"vehicle_number"`
	IsActive      *bool   `json:"is_active"`
}

// FoodCategoryRequest represents a food category create or update request
type FoodCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// CompanyRequest represents a company create or update request
type CompanyRequest struct {
	Name          *string `json:"name"`
	Address       *string `json:"address"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	ContactPerson *string `json:"contact_person"`
	IsActive      *bool   `json:"is_active"`
}
