package simulation

import (
	"finhealth/internal/domain"
	"fmt"
	"math"
	"math/rand"
)

type SimulateInput struct {
	InitialAmount       float64
	MonthlyContribution float64
	HorizonMonths       int
	Strategy            domain.PortfolioStrategy
	AdjustForInflation  bool
	AnnualInflationPct  float64

	// Rng drives the stochastic monthly perturbation. It is always
	// caller-supplied so runs are reproducible under a fixed seed and
	// concurrent simulations never share state.
	Rng *rand.Rand
}

func (in SimulateInput) validate() error {
	if in.Rng == nil {
		return fmt.Errorf("rng must be provided: %w", domain.ErrInvalidParameter)
	}
	if in.HorizonMonths < 1 {
		return fmt.Errorf("horizon must be >= 1 month, got %d: %w", in.HorizonMonths, domain.ErrInvalidParameter)
	}
	if in.InitialAmount < 0 {
		return fmt.Errorf("initial amount must be non-negative, got %f: %w", in.InitialAmount, domain.ErrInvalidParameter)
	}
	if in.MonthlyContribution < 0 {
		return fmt.Errorf("monthly contribution must be non-negative, got %f: %w", in.MonthlyContribution, domain.ErrInvalidParameter)
	}
	return in.Strategy.Validate()
}

// monthlyRate converts an annual percentage to the equivalent monthly
// compounding rate.
func monthlyRate(annualPct float64) float64 {
	return math.Pow(1+annualPct/100, 1.0/12) - 1
}

// Simulate projects a portfolio month by month: each month draws a
// perturbation from N(0, volatility), compounds the balance, then adds the
// contribution (every month except the last). Real balances deflate the
// nominal ones by the cumulative monthly inflation factor.
func Simulate(in SimulateInput) (*domain.SimulationResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	rate := monthlyRate(in.Strategy.ExpectedAnnualReturnPct)
	inflation := monthlyRate(in.AnnualInflationPct)

	result := &domain.SimulationResult{
		StrategyName:  in.Strategy.Name,
		HorizonMonths: in.HorizonMonths,
		MonthlyTrace:  make([]domain.TraceEntry, 0, in.HorizonMonths),
	}

	balance := in.InitialAmount
	contributed := in.InitialAmount

	for month := 1; month <= in.HorizonMonths; month++ {
		perturbation := in.Rng.NormFloat64() * in.Strategy.AnnualVolatility
		growth := rate + perturbation
		balance += balance * growth

		if month < in.HorizonMonths {
			balance += in.MonthlyContribution
			contributed += in.MonthlyContribution
		}

		real := balance
		if in.AdjustForInflation {
			real = balance / math.Pow(1+inflation, float64(month))
		}

		result.MonthlyTrace = append(result.MonthlyTrace, domain.TraceEntry{
			Month:              month,
			NominalBalance:     balance,
			RealBalance:        real,
			ContributionToDate: contributed,
			GrowthPct:          growth * 100,
		})
	}

	final := result.MonthlyTrace[len(result.MonthlyTrace)-1]
	result.TotalContributed = contributed
	result.FinalNominal = final.NominalBalance
	result.FinalReal = final.RealBalance

	if contributed > 0 {
		result.NominalROIPct = (result.FinalNominal - contributed) / contributed * 100
		result.RealROIPct = (result.FinalReal - contributed) / contributed * 100
	}

	if in.InitialAmount > 0 {
		result.AnnualizedReturnPct = (math.Pow(result.FinalNominal/in.InitialAmount, 12/float64(in.HorizonMonths)) - 1) * 100
	} else {
		result.Flags = append(result.Flags, "annualized return undefined for a zero initial amount")
	}

	result.Analysis = analyze(result, in.Strategy, in.HorizonMonths)
	return result, nil
}

// analyze attaches the advisory read of a finished run: viability by ROI
// band, risk by volatility tier, plus horizon guidance.
func analyze(result *domain.SimulationResult, strategy domain.PortfolioStrategy, horizonMonths int) domain.SimulationAnalysis {
	analysis := domain.SimulationAnalysis{
		Risk:  strategy.RiskTier(),
		Notes: []string{},
	}

	switch {
	case result.NominalROIPct < 5:
		analysis.Viability = "LOW"
		analysis.Notes = append(analysis.Notes, "Projected return runs below inflation. Consider more profitable options.")
	case result.NominalROIPct < 10:
		analysis.Viability = "MEDIUM"
		analysis.Notes = append(analysis.Notes, "Moderate return. Consider diversifying to improve it.")
	default:
		analysis.Viability = "HIGH"
		analysis.Notes = append(analysis.Notes, "Solid projected return. Keep up the saving discipline.")
	}

	if analysis.Risk == domain.RiskTierHigh {
		analysis.Notes = append(analysis.Notes, "High volatility. Only recommended with a long horizon (5+ years).")
	}

	switch {
	case horizonMonths < 12:
		analysis.Notes = append(analysis.Notes, "Short horizon: prefer low-risk instruments such as treasury bills.")
	case horizonMonths < 36:
		analysis.Notes = append(analysis.Notes, "Medium horizon: consider a balance of fixed income and equity.")
	default:
		analysis.Notes = append(analysis.Notes, "Long horizon: more risk is acceptable for higher potential return.")
	}

	return analysis
}
