package recommend

import (
	"finhealth/internal/benchmark"
	"finhealth/internal/domain"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func metricsFixture(income, expense int64, byCategory map[string]int64) domain.EntityMetrics {
	totalIncome := decimal.NewFromInt(income)
	totalExpense := decimal.NewFromInt(expense)
	net := totalIncome.Sub(totalExpense)

	margin := 0.0
	if totalIncome.IsPositive() {
		margin = net.Div(totalIncome).InexactFloat64() * 100
	}
	categories := map[string]decimal.Decimal{}
	for cat, amount := range byCategory {
		categories[cat] = decimal.NewFromInt(amount)
	}
	return domain.EntityMetrics{
		EntityID:          "acme",
		TotalIncome:       totalIncome,
		TotalExpense:      totalExpense,
		NetResult:         net,
		MarginPct:         margin,
		ExpenseByCategory: categories,
		MonthlyIncome:     totalIncome.Div(decimal.NewFromInt(12)),
		MonthlyExpense:    totalExpense.Div(decimal.NewFromInt(12)),
		MonthlySavings:    net.Div(decimal.NewFromInt(12)),
	}
}

func scoreWithState(state domain.HealthState) domain.ScoreResult {
	return domain.ScoreResult{
		EntityID: "acme",
		Kind:     domain.EntityBusiness,
		State:    state,
	}
}

func TestForBusiness_StateDispatch(t *testing.T) {
	m := metricsFixture(1_200_000, 900_000, map[string]int64{"rent": 500_000, "payroll": 400_000})

	t.Run("excellent gets growth recommendations", func(t *testing.T) {
		recs := ForBusiness(scoreWithState(domain.StateExcellent), m)
		require.NotEmpty(t, recs)
		require.Equal(t, "Business Expansion", recs[0].Title)
		require.Equal(t, domain.PriorityHigh, recs[0].Priority)
		// marketing budget = 15% of the 300k net result
		require.Contains(t, recs[0].Actions[0], "45,000")
	})

	t.Run("margin over 15 adds diversification", func(t *testing.T) {
		recs := ForBusiness(scoreWithState(domain.StateGood), m) // margin 25
		found := false
		for _, rec := range recs {
			if rec.Title == "Revenue Diversification" {
				found = true
				// R&D budget = 5% of income
				require.Contains(t, rec.Actions[2], "60,000")
			}
		}
		require.True(t, found)
	})

	t.Run("regular targets the largest expense category", func(t *testing.T) {
		recs := ForBusiness(scoreWithState(domain.StateRegular), m)

		var target *domain.Recommendation
		for i := range recs {
			if recs[i].Title == "Optimize Rent Spending" {
				target = &recs[i]
			}
		}
		require.NotNil(t, target)
		// 15% of the 500k rent total
		require.Contains(t, target.Actions[2], "75,000")
	})

	t.Run("critical leads with the rescue plan", func(t *testing.T) {
		recs := ForBusiness(scoreWithState(domain.StateCritical), m)
		require.Equal(t, "Financial Rescue Plan", recs[0].Title)
		require.Equal(t, domain.PriorityCritical, recs[0].Priority)
		// 30% of annual expenses
		require.Contains(t, recs[0].Actions[1], "270,000")
	})

	t.Run("services category triggers digitalization", func(t *testing.T) {
		withServices := metricsFixture(1_200_000, 900_000, map[string]int64{"services": 100_000})
		recs := ForBusiness(scoreWithState(domain.StateExcellent), withServices)
		require.Equal(t, "Process Digitalization", recs[len(recs)-1].Title)

		withoutServices := ForBusiness(scoreWithState(domain.StateExcellent), m)
		for _, rec := range withoutServices {
			require.NotEqual(t, "Process Digitalization", rec.Title)
		}
	})
}

func TestForBusiness_Deterministic(t *testing.T) {
	m := metricsFixture(1_200_000, 900_000, map[string]int64{"rent": 500_000, "services": 100_000})
	score := scoreWithState(domain.StateRegular)

	first := ForBusiness(score, m)
	second := ForBusiness(score, m)
	require.Empty(t, cmp.Diff(first, second))
}

func TestForPersonal_StateDispatch(t *testing.T) {
	personalNorms := benchmark.Default().Personal

	t.Run("excellent allocates the monthly savings", func(t *testing.T) {
		m := metricsFixture(600_000, 420_000, map[string]int64{"rent": 300_000, "savings": 80_000})
		score := domain.ScoreResult{EntityID: "user-1", Kind: domain.EntityPersonal, State: domain.StateExcellent}

		recs := ForPersonal(score, m, personalNorms)
		require.Equal(t, "Diversified Investment Portfolio", recs[0].Title)
		// 30% of the 15k monthly savings
		require.Contains(t, recs[0].Actions[0], "4,500")
	})

	t.Run("regular includes discretionary cuts only when above the norm", func(t *testing.T) {
		heavySpender := metricsFixture(600_000, 500_000, map[string]int64{
			"entertainment": 90_000,
			"restaurants":   60_000,
			"rent":          350_000,
		})
		score := domain.ScoreResult{State: domain.StateRegular, Kind: domain.EntityPersonal}

		recs := ForPersonal(score, heavySpender, personalNorms)
		found := false
		for _, rec := range recs {
			if rec.Title == "Cut Discretionary Spending" {
				found = true
			}
		}
		require.True(t, found)

		frugal := metricsFixture(600_000, 500_000, map[string]int64{"rent": 500_000})
		recs = ForPersonal(score, frugal, personalNorms)
		for _, rec := range recs {
			require.NotEqual(t, "Cut Discretionary Spending", rec.Title)
		}
	})

	t.Run("critical leads with the rescue plan", func(t *testing.T) {
		m := metricsFixture(300_000, 360_000, map[string]int64{"rent": 300_000})
		score := domain.ScoreResult{State: domain.StateCritical, Kind: domain.EntityPersonal}

		recs := ForPersonal(score, m, personalNorms)
		require.Equal(t, "Personal Financial Rescue Plan", recs[0].Title)
		require.Equal(t, domain.PriorityCritical, recs[0].Priority)
	})

	t.Run("retirement rec only without formal savings", func(t *testing.T) {
		noSavings := metricsFixture(600_000, 400_000, map[string]int64{"rent": 400_000})
		score := domain.ScoreResult{State: domain.StateGood, Kind: domain.EntityPersonal}

		recs := ForPersonal(score, noSavings, personalNorms)
		require.Equal(t, "Retirement Contributions", recs[len(recs)-1].Title)

		// formal savings at 10%+ of income suppress it
		wellSaved := metricsFixture(600_000, 400_000, map[string]int64{"rent": 300_000, "savings": 100_000})
		recs = ForPersonal(score, wellSaved, personalNorms)
		for _, rec := range recs {
			require.NotEqual(t, "Retirement Contributions", rec.Title)
		}
	})
}
