package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntityMetrics is the trailing-window view of one entity's ledger. It is
// recomputed on every scoring call and never persisted.
type EntityMetrics struct {
	EntityID    string    `json:"entityId"`
	WindowStart time.Time `json:"windowStart"`
	WindowEnd   time.Time `json:"windowEnd"`

	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetResult    decimal.Decimal `json:"netResult"`

	// MarginPct is 0 when TotalIncome is 0.
	MarginPct float64 `json:"marginPct"`

	// GrowthPct compares income in the most recent 90 days against the
	// preceding 90 days. When the prior quarter had no income, growth is 0
	// if the recent quarter is also empty, else 100.
	GrowthPct      float64 `json:"growthPct"`
	GrowthFromZero bool    `json:"growthFromZero"`

	ExpenseByCategory map[string]decimal.Decimal `json:"expenseByCategory"`

	MonthlyIncome  decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpense decimal.Decimal `json:"monthlyExpense"`
	MonthlySavings decimal.Decimal `json:"monthlySavings"`

	// SampleSize counts transactions inside the window. IncomeVariabilityPct
	// is the coefficient of variation of monthly income sums, a rough
	// confidence signal for the growth figures.
	SampleSize           int     `json:"sampleSize"`
	IncomeVariabilityPct float64 `json:"incomeVariabilityPct"`
}

// LargestExpenseCategory returns the category absorbing the most spend in the
// window. ok is false when there were no expenses at all.
func (m EntityMetrics) LargestExpenseCategory() (category string, total decimal.Decimal, ok bool) {
	for cat, amount := range m.ExpenseByCategory {
		if !ok || amount.GreaterThan(total) || (amount.Equal(total) && cat < category) {
			category = cat
			total = amount
			ok = true
		}
	}
	return category, total, ok
}
