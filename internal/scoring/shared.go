package scoring

import "github.com/shopspring/decimal"

func decimalPct(pct int64) decimal.Decimal {
	return decimal.NewFromInt(pct).Div(decimal.NewFromInt(100))
}
