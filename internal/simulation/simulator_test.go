package simulation

import (
	"errors"
	"finhealth/internal/domain"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func fixedStrategy(returnPct, volatility float64) domain.PortfolioStrategy {
	return domain.PortfolioStrategy{
		Name:                    "fixed",
		AssetWeights:            map[string]float64{"short_term_bonds": 1.0},
		ExpectedAnnualReturnPct: returnPct,
		AnnualVolatility:        volatility,
	}
}

func TestSimulate_Validation(t *testing.T) {
	valid := SimulateInput{
		InitialAmount: 10_000,
		HorizonMonths: 12,
		Strategy:      fixedStrategy(10, 0.05),
		Rng:           rand.New(rand.NewSource(1)),
	}

	tests := []struct {
		name   string
		mutate func(*SimulateInput)
	}{
		{"nil rng", func(in *SimulateInput) { in.Rng = nil }},
		{"zero horizon", func(in *SimulateInput) { in.HorizonMonths = 0 }},
		{"negative horizon", func(in *SimulateInput) { in.HorizonMonths = -3 }},
		{"negative initial amount", func(in *SimulateInput) { in.InitialAmount = -1 }},
		{"negative contribution", func(in *SimulateInput) { in.MonthlyContribution = -1 }},
		{"weights not summing to one", func(in *SimulateInput) {
			in.Strategy.AssetWeights = map[string]float64{"short_term_bonds": 0.5}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			_, err := Simulate(in)
			require.True(t, errors.Is(err, domain.ErrInvalidParameter), "got %v", err)
		})
	}
}

func TestSimulate_ZeroVolatilityCompoundsExactly(t *testing.T) {
	// without perturbation, 12 months at the monthly equivalent of 10%
	// annual must land on exactly 10% growth
	got, err := Simulate(SimulateInput{
		InitialAmount: 10_000,
		HorizonMonths: 12,
		Strategy:      fixedStrategy(10, 0),
		Rng:           rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)

	require.Len(t, got.MonthlyTrace, 12)
	require.InDelta(t, 11_000, got.FinalNominal, 1e-6)
	require.InDelta(t, 10.0, got.NominalROIPct, 1e-9)
	require.InDelta(t, 10.0, got.AnnualizedReturnPct, 1e-9)

	// inflation adjustment off: real equals nominal everywhere
	for _, entry := range got.MonthlyTrace {
		require.Equal(t, entry.NominalBalance, entry.RealBalance)
	}
}

func TestSimulate_ContributionAccounting(t *testing.T) {
	// 0% return isolates the contribution schedule: every month except
	// the last adds to the balance
	got, err := Simulate(SimulateInput{
		InitialAmount:       1_000,
		MonthlyContribution: 100,
		HorizonMonths:       3,
		Strategy:            fixedStrategy(0, 0),
		Rng:                 rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)

	require.InDelta(t, 1_200, got.FinalNominal, 1e-9)
	require.InDelta(t, 1_200, got.TotalContributed, 1e-9)
	require.InDelta(t, 0.0, got.NominalROIPct, 1e-9)

	require.InDelta(t, 1_100, got.MonthlyTrace[0].ContributionToDate, 1e-9)
	require.InDelta(t, 1_200, got.MonthlyTrace[1].ContributionToDate, 1e-9)
	require.InDelta(t, 1_200, got.MonthlyTrace[2].ContributionToDate, 1e-9)
}

func TestSimulate_InflationDeflatesRealBalance(t *testing.T) {
	got, err := Simulate(SimulateInput{
		InitialAmount:      10_000,
		HorizonMonths:      24,
		Strategy:           fixedStrategy(10, 0),
		AdjustForInflation: true,
		AnnualInflationPct: 4.5,
		Rng:                rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)

	require.Less(t, got.FinalReal, got.FinalNominal)
	require.Less(t, got.RealROIPct, got.NominalROIPct)
	for _, entry := range got.MonthlyTrace {
		require.Less(t, entry.RealBalance, entry.NominalBalance)
	}
}

func TestSimulate_ZeroInitialAmountIsFlagged(t *testing.T) {
	got, err := Simulate(SimulateInput{
		InitialAmount:       0,
		MonthlyContribution: 500,
		HorizonMonths:       12,
		Strategy:            fixedStrategy(10, 0),
		Rng:                 rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)

	require.NotEmpty(t, got.Flags)
	require.Zero(t, got.AnnualizedReturnPct)
	require.Positive(t, got.FinalNominal)
}

func TestSimulate_SeedDeterminism(t *testing.T) {
	run := func(seed int64) *domain.SimulationResult {
		got, err := Simulate(SimulateInput{
			InitialAmount:       10_000,
			MonthlyContribution: 250,
			HorizonMonths:       36,
			Strategy:            fixedStrategy(11, 0.08),
			AdjustForInflation:  true,
			AnnualInflationPct:  4.5,
			Rng:                 rand.New(rand.NewSource(seed)),
		})
		require.NoError(t, err)
		return got
	}

	require.Empty(t, cmp.Diff(run(42), run(42)))
	require.NotEmpty(t, cmp.Diff(run(42), run(43)))
}

func TestSimulate_HigherReturnDominatesOnAverage(t *testing.T) {
	mean := func(returnPct float64) float64 {
		total := 0.0
		const paths = 40
		for seed := int64(0); seed < paths; seed++ {
			got, err := Simulate(SimulateInput{
				InitialAmount: 10_000,
				HorizonMonths: 24,
				Strategy:      fixedStrategy(returnPct, 0.04),
				Rng:           rand.New(rand.NewSource(seed)),
			})
			require.NoError(t, err)
			total += got.FinalNominal
		}
		return total / paths
	}

	// identical seeds pair the perturbation draws, so only the expected
	// return differs between the two runs
	require.Greater(t, mean(12), mean(6))
}

func TestAnalyze_ViabilityBands(t *testing.T) {
	run := func(returnPct float64, horizon int) domain.SimulationAnalysis {
		got, err := Simulate(SimulateInput{
			InitialAmount: 10_000,
			HorizonMonths: horizon,
			Strategy:      fixedStrategy(returnPct, 0),
			Rng:           rand.New(rand.NewSource(1)),
		})
		require.NoError(t, err)
		return got.Analysis
	}

	require.Equal(t, "LOW", run(2, 12).Viability)
	require.Equal(t, "MEDIUM", run(8, 12).Viability)
	require.Equal(t, "HIGH", run(15, 12).Viability)

	// every analysis carries exactly one horizon note
	short := run(10, 6)
	require.Contains(t, short.Notes[len(short.Notes)-1], "Short horizon")
	long := run(10, 48)
	require.Contains(t, long.Notes[len(long.Notes)-1], "Long horizon")
}
