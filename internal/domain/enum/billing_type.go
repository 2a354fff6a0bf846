package enum

// BillingType tells whether a customer is billed directly or through a company
type BillingType string

const (
	BillingTypeIndividual BillingType = "individual"
	BillingTypeCompany    BillingType = "company"
)

// IsValid reports whether t is a known billing type
func (t BillingType) IsValid() bool {
	return t == BillingTypeIndividual || t == BillingTypeCompany
}
