package enum

// MealType identifies a daily meal slot
type MealType string

const (
	MealTypeLunch  MealType = "lunch"
	MealTypeDinner MealType = "dinner"
)

// MealTypes lists the meals generated for every day, in generation order
var MealTypes = []MealType{MealTypeLunch, MealTypeDinner}

// IsValid reports whether m is a known meal type
func (m MealType) IsValid() bool {
	return m == MealTypeLunch || m == MealTypeDinner
}
