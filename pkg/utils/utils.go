package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round1 rounds to 1 decimal place, used for averaged scores.
func Round1(f float64) float64 {
	return math.Round(f*10) / 10
}

// AverageDecimal returns the mean of the values rounded to 2 decimal
// places. An empty input averages to zero.
func AverageDecimal(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}

	var sum decimal.Decimal
	for _, v := range values {
		sum = sum.Add(v)
	}

	return sum.Div(decimal.NewFromInt(int64(len(values)))).Round(2)
}

// DecimalFromFloat converts float64 to decimal.Decimal
func DecimalFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// DecimalFromString converts string to decimal.Decimal
func DecimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
