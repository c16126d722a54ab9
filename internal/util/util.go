package util

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func Pprint(i interface{}) {
	bytes, err := json.MarshalIndent(i, "", "    ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(bytes))
}

func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// FormatMoney renders a rounded amount with thousands separators, e.g.
// 1234567.8 -> "1,234,568". Currency symbols are left to the caller.
func FormatMoney(d decimal.Decimal) string {
	whole := d.Round(0).String()

	negative := strings.HasPrefix(whole, "-")
	digits := strings.TrimPrefix(whole, "-")

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if negative {
		return "-" + b.String()
	}
	return b.String()
}

// FormatMoneyFloat is FormatMoney for simulation balances, which stay in
// float64.
func FormatMoneyFloat(v float64) string {
	return FormatMoney(decimal.NewFromFloat(v))
}
