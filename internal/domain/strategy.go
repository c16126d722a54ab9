package domain

import (
	"fmt"
	"math"
)

const weightEpsilon = 1e-6

type RiskTier string

const (
	RiskTierLow    RiskTier = "LOW"
	RiskTierMedium RiskTier = "MEDIUM"
	RiskTierHigh   RiskTier = "HIGH"
)

// PortfolioStrategy is one entry of the fixed strategy catalog.
// AnnualVolatility is the standard deviation applied to each simulated
// monthly return.
type PortfolioStrategy struct {
	Name                    string             `json:"name" yaml:"name"`
	AssetWeights            map[string]float64 `json:"assetWeights" yaml:"assetWeights"`
	ExpectedAnnualReturnPct float64            `json:"expectedAnnualReturnPct" yaml:"expectedAnnualReturnPct"`
	AnnualVolatility        float64            `json:"annualVolatility" yaml:"annualVolatility"`
}

func (s PortfolioStrategy) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("strategy has no name: %w", ErrInvalidParameter)
	}
	if s.AnnualVolatility < 0 {
		return fmt.Errorf("strategy %s has negative volatility: %w", s.Name, ErrInvalidParameter)
	}
	sum := 0.0
	for asset, w := range s.AssetWeights {
		if w < 0 {
			return fmt.Errorf("strategy %s has negative weight for %s: %w", s.Name, asset, ErrInvalidParameter)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightEpsilon {
		return fmt.Errorf("strategy %s weights sum to %.6f, want 1.0: %w", s.Name, sum, ErrInvalidParameter)
	}
	return nil
}

// RiskTier buckets the strategy by volatility. Bands follow the advisory
// thresholds used across the scoring engine.
func (s PortfolioStrategy) RiskTier() RiskTier {
	switch {
	case s.AnnualVolatility < 0.05:
		return RiskTierLow
	case s.AnnualVolatility < 0.12:
		return RiskTierMedium
	default:
		return RiskTierHigh
	}
}
