package scoring

import (
	"finhealth/internal/benchmark"
	"finhealth/internal/domain"
	"finhealth/internal/metrics"
	"fmt"
)

// ScoreBusiness converts trailing-window metrics plus the entity's benchmark
// tier into a score, a health state and advisory flags. Pure function, no
// retained state between calls.
func ScoreBusiness(m domain.EntityMetrics, tier benchmark.Tier) domain.ScoreResult {
	result := domain.ScoreResult{
		EntityID:       m.EntityID,
		Kind:           domain.EntityBusiness,
		Alerts:         []string{},
		CoherenceFlags: []string{},
	}

	if m.SampleSize < metrics.MinSampleSize {
		result.Alerts = append(result.Alerts,
			fmt.Sprintf("low confidence: only %d transactions in the trailing window (minimum %d)", m.SampleSize, metrics.MinSampleSize))
	}
	if m.GrowthFromZero {
		result.Alerts = append(result.Alerts,
			"low confidence: quarterly growth computed from an empty prior quarter")
	}

	score := 0

	// margin component, 0-40
	margin := m.MarginPct
	switch {
	case margin >= tier.MarginMax:
		score += 40
	case margin >= tier.MarginAvg:
		score += 30
	case margin >= tier.MarginMin:
		score += 20
	case margin >= 0:
		score += 10
		result.Alerts = append(result.Alerts,
			fmt.Sprintf("margin of %.1f%% is below the %s-tier average (%.0f%%)", margin, tier.TierID, tier.MarginAvg))
	default:
		result.Alerts = append(result.Alerts,
			fmt.Sprintf("CRITICAL: operating at a loss with a margin of %.1f%%", margin))
	}

	// growth component, 0-30
	growth := m.GrowthPct
	switch {
	case growth >= tier.GrowthExcellent:
		score += 30
	case growth >= tier.GrowthGood:
		score += 20
	case growth >= 0:
		score += 10
	case growth >= -10:
		score += 5
		result.Alerts = append(result.Alerts,
			fmt.Sprintf("quarterly decline of %.1f%% needs attention", growth))
	default:
		result.Alerts = append(result.Alerts,
			fmt.Sprintf("CRITICAL: severe quarterly decline of %.1f%%", growth))
	}

	// absolute profitability component, 0-20
	net := m.NetResult
	income := m.TotalIncome
	switch {
	case net.GreaterThan(income.Mul(decimalPct(15))):
		score += 20
	case net.GreaterThan(income.Mul(decimalPct(10))):
		score += 15
	case net.GreaterThan(income.Mul(decimalPct(5))):
		score += 10
	case net.IsPositive():
		score += 5
	default:
		result.Alerts = append(result.Alerts, "net result is zero or negative over the trailing year")
	}

	// coherence component, +/-10. Implausible combinations are flagged and
	// penalized, never silently corrected.
	switch {
	case margin > 30 && growth < -15:
		score -= 10
		result.CoherenceFlags = append(result.CoherenceFlags,
			"incoherent metrics: high margin combined with a steep quarterly decline, verify the ledger")
	case margin < 0 && growth > 20:
		score -= 10
		result.CoherenceFlags = append(result.CoherenceFlags,
			"incoherent metrics: losses combined with strong growth (possible investment phase)")
	default:
		score += 10
	}

	result.CoherenceFlags = append(result.CoherenceFlags, plausibilityFlags(m)...)

	result.Score = domain.ClampScore(score)
	result.State = businessState(result.Score, m, tier)
	result.Description = businessDescription(result.State, m, tier)
	return result
}

// businessState applies the margin gates on top of the raw score bands: point
// totals alone cannot promote a weak-margin entity to EXCELLENT or GOOD.
func businessState(score int, m domain.EntityMetrics, tier benchmark.Tier) domain.HealthState {
	switch {
	case score >= 70 && m.GrowthPct >= 0 && m.MarginPct >= tier.MarginAvg:
		return domain.StateExcellent
	case score >= 50 && m.MarginPct >= tier.MarginMin:
		return domain.StateGood
	case score >= 30:
		return domain.StateRegular
	default:
		return domain.StateCritical
	}
}

func businessDescription(state domain.HealthState, m domain.EntityMetrics, tier benchmark.Tier) string {
	switch state {
	case domain.StateExcellent:
		return fmt.Sprintf("Outstanding performance for a %s-tier business. Margin of %.1f%% beats the sector average (%.0f%%).",
			tier.TierID, m.MarginPct, tier.MarginAvg)
	case domain.StateGood:
		return fmt.Sprintf("Solid performance for a %s-tier business. Margin of %.1f%% is within healthy ranges.",
			tier.TierID, m.MarginPct)
	case domain.StateRegular:
		return fmt.Sprintf("A %s-tier business in need of optimization. Margin of %.1f%% against a sector average of %.0f%%.",
			tier.TierID, m.MarginPct, tier.MarginAvg)
	default:
		return fmt.Sprintf("Critical situation for this %s-tier business. Immediate action required.", tier.TierID)
	}
}

// plausibilityFlags marks metric values that are possible but statistically
// implausible. They stay advisory: small samples produce extreme ratios
// without the data being wrong.
func plausibilityFlags(m domain.EntityMetrics) []string {
	flags := []string{}
	if m.MarginPct > 50 {
		flags = append(flags,
			fmt.Sprintf("margin of %.1f%% is implausibly high (expected at most 30%%)", m.MarginPct))
	}
	if m.MarginPct < -50 {
		flags = append(flags,
			fmt.Sprintf("losses of %.1f%% of income are unsustainable", -m.MarginPct))
	}
	if m.NetResult.Abs().GreaterThan(m.TotalIncome) && m.TotalIncome.IsPositive() {
		flags = append(flags, "net result exceeds total income, the ledger is likely incomplete")
	}
	return flags
}
