package metrics

import (
	"finhealth/internal/domain"
	"finhealth/internal/ledger"
	"fmt"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

const (
	trailingWindowDays = 365
	quarterDays        = 90

	// MinSampleSize is the transaction count below which scoring carries a
	// low-confidence alert instead of failing.
	MinSampleSize = 12
)

var twelve = decimal.NewFromInt(12)

type AggregatorHandler struct {
	Ledger ledger.Repository
}

func NewAggregator(repo ledger.Repository) AggregatorHandler {
	return AggregatorHandler{Ledger: repo}
}

// Compute derives the trailing-window metrics for one entity. Windows are
// anchored to the entity's last observed transaction date, not the wall
// clock, so stale historical fixtures still produce meaningful numbers.
func (h AggregatorHandler) Compute(entityID string) (*domain.EntityMetrics, error) {
	asOf, err := h.Ledger.LatestDate(entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve as-of date: %w", err)
	}

	windowStart := asOf.AddDate(0, 0, -trailingWindowDays)
	window, err := h.Ledger.TransactionsFor(entityID, windowStart, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to load trailing window: %w", err)
	}

	m := &domain.EntityMetrics{
		EntityID:          entityID,
		WindowStart:       windowStart,
		WindowEnd:         asOf,
		TotalIncome:       decimal.Zero,
		TotalExpense:      decimal.Zero,
		ExpenseByCategory: map[string]decimal.Decimal{},
		SampleSize:        len(window),
	}

	monthlyIncome := map[string]decimal.Decimal{}
	for _, t := range window {
		switch t.Flow {
		case domain.FlowIncome:
			m.TotalIncome = m.TotalIncome.Add(t.Amount)
			bucket := t.Date.Format("2006-01")
			monthlyIncome[bucket] = monthlyIncome[bucket].Add(t.Amount)
		case domain.FlowExpense:
			m.TotalExpense = m.TotalExpense.Add(t.Amount)
			m.ExpenseByCategory[t.Category] = m.ExpenseByCategory[t.Category].Add(t.Amount)
		}
	}

	m.NetResult = m.TotalIncome.Sub(m.TotalExpense)
	if m.TotalIncome.IsPositive() {
		m.MarginPct = m.NetResult.Div(m.TotalIncome).InexactFloat64() * 100
	}

	m.MonthlyIncome = m.TotalIncome.Div(twelve)
	m.MonthlyExpense = m.TotalExpense.Div(twelve)
	m.MonthlySavings = m.NetResult.Div(twelve)

	m.GrowthPct, m.GrowthFromZero = h.quarterGrowth(window, asOf)
	m.IncomeVariabilityPct = incomeVariability(monthlyIncome)

	return m, nil
}

// quarterGrowth compares income in (asOf-90d, asOf] against the preceding
// non-overlapping 90-day bucket. A zero prior quarter yields 0 when the
// recent quarter is also empty, else 100.
func (h AggregatorHandler) quarterGrowth(window []domain.Transaction, asOf time.Time) (float64, bool) {
	recentStart := asOf.AddDate(0, 0, -quarterDays)
	priorStart := asOf.AddDate(0, 0, -2*quarterDays)

	recent := decimal.Zero
	prior := decimal.Zero
	for _, t := range window {
		if t.Flow != domain.FlowIncome {
			continue
		}
		switch {
		case t.Date.After(recentStart):
			recent = recent.Add(t.Amount)
		case t.Date.After(priorStart):
			prior = prior.Add(t.Amount)
		}
	}

	if !prior.IsPositive() {
		if recent.IsZero() {
			return 0, true
		}
		return 100, true
	}
	growth := recent.Sub(prior).Div(prior).InexactFloat64() * 100
	return growth, false
}

// incomeVariability is the coefficient of variation of monthly income sums,
// in percent. Fewer than two income months gives 0.
func incomeVariability(monthlyIncome map[string]decimal.Decimal) float64 {
	if len(monthlyIncome) < 2 {
		return 0
	}
	values := make([]float64, 0, len(monthlyIncome))
	for _, v := range monthlyIncome {
		values = append(values, v.InexactFloat64())
	}

	mean, err := stats.Mean(values)
	if err != nil || mean == 0 {
		return 0
	}
	stdev, err := stats.StandardDeviationSample(values)
	if err != nil {
		return 0
	}
	return stdev / mean * 100
}
