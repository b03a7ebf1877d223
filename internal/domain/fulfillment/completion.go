package fulfillment

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// CompletionPercentage completed/total*100 redondeado a 2 decimales; 0 si total es 0.
func CompletionPercentage(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	pct := decimal.NewFromInt(int64(completed)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(hundred).
		Round(2)
	return pct.InexactFloat64()
}
