package simulation

import (
	"finhealth/internal/benchmark"
	"finhealth/internal/domain"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// StrategyOutcome summarizes one catalog entry's simulation for ranking.
type StrategyOutcome struct {
	StrategyName            string          `json:"strategyName"`
	RiskTier                domain.RiskTier `json:"riskTier"`
	FinalReal               float64         `json:"finalReal"`
	GainReal                float64         `json:"gainReal"`
	RealROIPct              float64         `json:"realRoiPct"`
	AnnualizedReturnPct     float64         `json:"annualizedReturnPct"`
	RealizedVolatilityPct   float64         `json:"realizedVolatilityPct"`
	ExpectedAnnualReturnPct float64         `json:"expectedAnnualReturnPct"`
	AnnualVolatility        float64         `json:"annualVolatility"`
	Viability               string          `json:"viability"`
}

type RecommendedChoice struct {
	StrategyName string `json:"strategyName"`
	Reason       string `json:"reason"`
	Alternative  string `json:"alternative,omitempty"`
}

type ComparisonResult struct {
	RunID         uuid.UUID         `json:"runId"`
	HorizonMonths int               `json:"horizonMonths"`
	Outcomes      []StrategyOutcome `json:"outcomes"`
	Recommended   RecommendedChoice `json:"recommended"`
}

type ComparatorService interface {
	Compare(initialAmount, monthlyContribution float64, horizonMonths int, rng *rand.Rand) (*ComparisonResult, error)
}

type comparatorHandler struct {
	Catalog []domain.PortfolioStrategy
	Market  benchmark.MarketAssumptions
	Log     *zap.SugaredLogger
}

func NewComparator(catalog []domain.PortfolioStrategy, market benchmark.MarketAssumptions, log *zap.SugaredLogger) ComparatorService {
	return comparatorHandler{
		Catalog: catalog,
		Market:  market,
		Log:     log,
	}
}

// Compare simulates every catalog entry with inflation adjustment enabled
// and ranks outcomes by real ROI descending. Each strategy runs on its own
// seeded sub-stream derived from the caller's rng, so draws are independent
// across strategies yet the whole comparison is reproducible.
func (h comparatorHandler) Compare(initialAmount, monthlyContribution float64, horizonMonths int, rng *rand.Rand) (*ComparisonResult, error) {
	if rng == nil {
		return nil, fmt.Errorf("rng must be provided: %w", domain.ErrInvalidParameter)
	}
	if len(h.Catalog) == 0 {
		return nil, fmt.Errorf("strategy catalog is empty: %w", domain.ErrInvalidParameter)
	}

	runID := uuid.New()

	// sub-seeds are drawn up front so goroutine scheduling cannot affect
	// the streams
	seeds := make([]int64, len(h.Catalog))
	for i := range seeds {
		seeds[i] = rng.Int63()
	}

	outcomes := make([]StrategyOutcome, len(h.Catalog))
	var group errgroup.Group
	for i, strategy := range h.Catalog {
		i, strategy := i, strategy
		group.Go(func() error {
			result, err := Simulate(SimulateInput{
				InitialAmount:       initialAmount,
				MonthlyContribution: monthlyContribution,
				HorizonMonths:       horizonMonths,
				Strategy:            strategy,
				AdjustForInflation:  true,
				AnnualInflationPct:  h.Market.AnnualInflationPct,
				Rng:                 rand.New(rand.NewSource(seeds[i])),
			})
			if err != nil {
				return fmt.Errorf("failed to simulate strategy %s: %w", strategy.Name, err)
			}
			outcomes[i] = newOutcome(strategy, result)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(outcomes, func(i, j int) bool {
		if outcomes[i].RealROIPct != outcomes[j].RealROIPct {
			return outcomes[i].RealROIPct > outcomes[j].RealROIPct
		}
		return outcomes[i].StrategyName < outcomes[j].StrategyName
	})

	comparison := &ComparisonResult{
		RunID:         runID,
		HorizonMonths: horizonMonths,
		Outcomes:      outcomes,
		Recommended:   h.recommend(outcomes, horizonMonths),
	}

	if h.Log != nil {
		h.Log.Infow("strategy comparison complete",
			"runId", runID,
			"horizonMonths", horizonMonths,
			"strategies", len(outcomes),
			"recommended", comparison.Recommended.StrategyName,
		)
	}
	return comparison, nil
}

func newOutcome(strategy domain.PortfolioStrategy, result *domain.SimulationResult) StrategyOutcome {
	return StrategyOutcome{
		StrategyName:            strategy.Name,
		RiskTier:                strategy.RiskTier(),
		FinalReal:               result.FinalReal,
		GainReal:                result.FinalReal - result.TotalContributed,
		RealROIPct:              result.RealROIPct,
		AnnualizedReturnPct:     result.AnnualizedReturnPct,
		RealizedVolatilityPct:   realizedVolatility(result),
		ExpectedAnnualReturnPct: strategy.ExpectedAnnualReturnPct,
		AnnualVolatility:        strategy.AnnualVolatility,
		Viability:               result.Analysis.Viability,
	}
}

// realizedVolatility annualizes the sample stdev of the applied monthly
// returns, in percent.
func realizedVolatility(result *domain.SimulationResult) float64 {
	if len(result.MonthlyTrace) < 2 {
		return 0
	}
	returns := make([]float64, 0, len(result.MonthlyTrace))
	for _, entry := range result.MonthlyTrace {
		returns = append(returns, entry.GrowthPct)
	}
	stdev, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return 0
	}
	return stdev * math.Sqrt(12)
}

// recommend applies the horizon-aware risk policy. Outcomes arrive sorted by
// real ROI descending and the choice is always a catalog member.
func (h comparatorHandler) recommend(outcomes []StrategyOutcome, horizonMonths int) RecommendedChoice {
	switch {
	case horizonMonths < 12:
		best := outcomes[0]
		for _, o := range outcomes[1:] {
			if o.AnnualVolatility < best.AnnualVolatility {
				best = o
			}
		}
		choice := RecommendedChoice{
			StrategyName: best.StrategyName,
			Reason:       "A short horizon requires the lowest-volatility option to protect capital.",
		}
		if outcomes[0].StrategyName != best.StrategyName {
			choice.Alternative = outcomes[0].StrategyName
		}
		return choice

	case horizonMonths < 36:
		eligible := []StrategyOutcome{}
		for _, o := range outcomes {
			if o.RiskTier == domain.RiskTierLow || o.RiskTier == domain.RiskTierMedium {
				eligible = append(eligible, o)
			}
		}
		if len(eligible) == 0 {
			eligible = outcomes
		}
		choice := RecommendedChoice{
			StrategyName: eligible[0].StrategyName,
			Reason:       "A medium horizon allows balancing return against safety.",
		}
		if len(eligible) > 1 {
			choice.Alternative = eligible[1].StrategyName
		}
		return choice

	default:
		choice := RecommendedChoice{
			StrategyName: outcomes[0].StrategyName,
			Reason:       "A long horizon can ride out volatility for the highest expected outcome.",
		}
		if len(outcomes) > 1 {
			choice.Alternative = outcomes[1].StrategyName
		}
		return choice
	}
}
