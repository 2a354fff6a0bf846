package enum

// EntityType discriminates who a bill or payment belongs to
type EntityType string

const (
	EntityTypeCustomer EntityType = "customer"
	EntityTypeCompany  EntityType = "company"
)

// IsValid reports whether t is a known entity type
func (t EntityType) IsValid() bool {
	return t == EntityTypeCustomer || t == EntityTypeCompany
}
