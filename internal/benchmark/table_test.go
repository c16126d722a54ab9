package benchmark

import (
	"errors"
	"finhealth/internal/domain"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestTierFor(t *testing.T) {
	table := Default()

	tests := []struct {
		name         string
		annualIncome int64
		wantTier     string
	}{
		{"just below small threshold", 49_999_999, "small"},
		{"at small threshold", 50_000_000, "mid"},
		{"just below mid threshold", 499_999_999, "mid"},
		{"at mid threshold", 500_000_000, "large"},
		{"tiny", 1, "small"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tier := table.TierFor(decimal.NewFromInt(tc.annualIncome))
			require.Equal(t, tc.wantTier, tier.TierID)
		})
	}
}

func TestDefault(t *testing.T) {
	table := Default()

	require.Equal(t, 12.0, table.Small.MarginAvg)
	require.Equal(t, 15.0, table.Mid.MarginAvg)
	require.Equal(t, 18.0, table.Large.MarginAvg)
	require.Equal(t, 6, table.Personal.EmergencyFundMonths)
	require.Equal(t, 4.5, table.Market.AnnualInflationPct)
}

func TestLoadFile(t *testing.T) {
	t.Run("partial config overlays defaults", func(t *testing.T) {
		path := writeConfig(t, `
small:
  tierId: small
  marginMin: 6
  marginAvg: 14
  marginMax: 22
  growthGood: 9
  growthExcellent: 18
market:
  annualInflationPct: 7.25
`)
		table, err := LoadFile(path)
		require.NoError(t, err)

		require.Equal(t, 14.0, table.Small.MarginAvg)
		require.Equal(t, 7.25, table.Market.AnnualInflationPct)
		// untouched sections keep their defaults
		require.Equal(t, 15.0, table.Mid.MarginAvg)
		require.Equal(t, 25.0, table.Personal.SavingsExcellentPct)
	})

	t.Run("rejects out-of-order thresholds", func(t *testing.T) {
		path := writeConfig(t, "smallIncomeMax: 1000\nmidIncomeMax: 500\n")
		_, err := LoadFile(path)
		require.True(t, errors.Is(err, domain.ErrInvalidParameter))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "benchmarks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
