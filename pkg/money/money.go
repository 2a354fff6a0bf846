package money

import "github.com/shopspring/decimal"

// Tolerance is the smallest amount treated as a real difference between two
// currency values.
const Tolerance = 0.01

// Round2 rounds a currency value to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Sum adds the values exactly and rounds the result to 2 decimal places.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	f, _ := total.Round(2).Float64()
	return f
}

// Sub returns a - b rounded to 2 decimal places.
func Sub(a, b float64) float64 {
	f, _ := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Round(2).Float64()
	return f
}

// Mul multiplies an amount by a factor (quantity, rate) and rounds to 2 decimal places.
func Mul(amount, factor float64) float64 {
	f, _ := decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(factor)).Round(2).Float64()
	return f
}

// Min returns the smaller of two amounts.
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Positive reports whether v is above the rounding tolerance.
func Positive(v float64) bool {
	return Round2(v) > 0
}

// Equal reports whether a and b differ by no more than Tolerance.
func Equal(a, b float64) bool {
	return decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Abs().
		LessThanOrEqual(decimal.NewFromFloat(Tolerance))
}

// Share splits amount proportionally to weight/totalWeight, rounded to 2 decimal places.
// A zero totalWeight yields 0.
func Share(amount, weight, totalWeight float64) float64 {
	if totalWeight == 0 {
		return 0
	}
	f, _ := decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(weight)).
		Div(decimal.NewFromFloat(totalWeight)).
		Round(2).Float64()
	return f
}

// Percent returns part/whole*100 rounded to 2 decimal places, or 0 when whole is not positive.
func Percent(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	f, _ := decimal.NewFromFloat(part).
		Div(decimal.NewFromFloat(whole)).
		Mul(decimal.NewFromInt(100)).
		Round(2).Float64()
	return f
}
