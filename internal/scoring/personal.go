package scoring

import (
	"finhealth/internal/benchmark"
	"finhealth/internal/domain"
	"finhealth/internal/metrics"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PersonalProfile is derived from EntityMetrics and the personal norms; it
// feeds both the classifier and the recommendation generator.
type PersonalProfile struct {
	SavingsRatePct       float64         `json:"savingsRatePct"`
	DiscretionaryPct     float64         `json:"discretionaryPct"`
	EmergencyFundActual  decimal.Decimal `json:"emergencyFundActual"`
	EmergencyFundTarget  decimal.Decimal `json:"emergencyFundTarget"`
	EmergencyCoveragePct float64         `json:"emergencyCoveragePct"`
	HasFormalSavings     bool            `json:"hasFormalSavings"`
	HasEducationSpend    bool            `json:"hasEducationSpend"`
}

func BuildPersonalProfile(m domain.EntityMetrics, norms benchmark.PersonalNorms) PersonalProfile {
	p := PersonalProfile{
		SavingsRatePct:      m.MarginPct,
		EmergencyFundActual: decimal.Zero,
		EmergencyFundTarget: m.MonthlyExpense.Mul(decimal.NewFromInt(int64(norms.EmergencyFundMonths))),
	}
	if m.NetResult.IsPositive() {
		p.EmergencyFundActual = m.NetResult
	}
	if p.EmergencyFundTarget.IsPositive() {
		p.EmergencyCoveragePct = p.EmergencyFundActual.Div(p.EmergencyFundTarget).InexactFloat64() * 100
	}

	discretionary := decimal.Zero
	for category, total := range m.ExpenseByCategory {
		if categoryIn(category, norms.DiscretionaryCategories) {
			discretionary = discretionary.Add(total)
		}
		if strings.EqualFold(category, norms.SavingsCategory) {
			p.HasFormalSavings = true
		}
		if strings.EqualFold(category, norms.EducationCategory) {
			p.HasEducationSpend = true
		}
	}
	if m.TotalIncome.IsPositive() {
		p.DiscretionaryPct = discretionary.Div(m.TotalIncome).InexactFloat64() * 100
	}
	return p
}

// ScorePersonal is the personal-finance counterpart of ScoreBusiness:
// savings rate 0-40, emergency fund 0-30, discretionary control 0-20,
// diversification 0-10.
func ScorePersonal(m domain.EntityMetrics, norms benchmark.PersonalNorms) domain.ScoreResult {
	profile := BuildPersonalProfile(m, norms)

	result := domain.ScoreResult{
		EntityID:       m.EntityID,
		Kind:           domain.EntityPersonal,
		Alerts:         []string{},
		CoherenceFlags: []string{},
	}

	if m.SampleSize < metrics.MinSampleSize {
		result.Alerts = append(result.Alerts,
			fmt.Sprintf("low confidence: only %d transactions in the trailing window (minimum %d)", m.SampleSize, metrics.MinSampleSize))
	}

	score := 0

	// savings rate, 0-40
	rate := profile.SavingsRatePct
	switch {
	case rate >= norms.SavingsExcellentPct:
		score += 40
	case rate >= norms.SavingsGoodPct:
		score += 30
	case rate >= norms.SavingsMinPct:
		score += 20
	case rate >= 0:
		score += 10
		result.Alerts = append(result.Alerts,
			fmt.Sprintf("savings rate of %.1f%% is below the recommended minimum (%.0f%%)", rate, norms.SavingsMinPct))
	default:
		result.Alerts = append(result.Alerts,
			fmt.Sprintf("CRITICAL: spending more than you earn (%.1f%%)", rate))
	}

	// emergency fund coverage, 0-30
	coverage := profile.EmergencyCoveragePct
	switch {
	case coverage >= 100:
		score += 30
	case coverage >= 50:
		score += 20
	case coverage >= 25:
		score += 10
	default:
		result.Alerts = append(result.Alerts,
			fmt.Sprintf("emergency fund covers only %.0f%% of the %d-month target", coverage, norms.EmergencyFundMonths))
	}

	// discretionary spending control, 0-20
	disc := profile.DiscretionaryPct
	switch {
	case disc <= 10:
		score += 20
	case disc <= norms.DiscretionaryMaxPct:
		score += 15
	case disc <= 30:
		score += 10
		result.Alerts = append(result.Alerts,
			fmt.Sprintf("discretionary spending is high: %.1f%% of income (recommended under %.0f%%)", disc, norms.DiscretionaryMaxPct))
	default:
		result.Alerts = append(result.Alerts,
			fmt.Sprintf("discretionary spending is excessive: %.1f%% of income", disc))
	}

	// diversification, 0-10
	switch {
	case profile.HasFormalSavings && profile.HasEducationSpend:
		score += 10
	case profile.HasFormalSavings || profile.HasEducationSpend:
		score += 5
	}

	if rate > 50 {
		result.CoherenceFlags = append(result.CoherenceFlags,
			fmt.Sprintf("savings rate of %.1f%% is implausibly high, verify the ledger", rate))
	}

	result.Score = domain.ClampScore(score)
	result.State = personalState(result.Score, rate, norms)
	result.Description = personalDescription(result.State, rate)
	return result
}

// personalState mirrors the business margin gates with the savings-rate
// norms: top states require the rate to clear good/minimum respectively.
func personalState(score int, savingsRate float64, norms benchmark.PersonalNorms) domain.HealthState {
	switch {
	case score >= 70 && savingsRate >= norms.SavingsGoodPct:
		return domain.StateExcellent
	case score >= 50 && savingsRate >= norms.SavingsMinPct:
		return domain.StateGood
	case score >= 30:
		return domain.StateRegular
	default:
		return domain.StateCritical
	}
}

func personalDescription(state domain.HealthState, savingsRate float64) string {
	switch state {
	case domain.StateExcellent:
		return fmt.Sprintf("Personal finances in excellent shape with a savings rate of %.1f%%.", savingsRate)
	case domain.StateGood:
		return fmt.Sprintf("Good financial health with a savings rate of %.1f%%.", savingsRate)
	case domain.StateRegular:
		return fmt.Sprintf("Finances need attention. Savings rate: %.1f%%.", savingsRate)
	default:
		return "Critical financial situation. Urgent action required."
	}
}

func categoryIn(category string, set []string) bool {
	for _, s := range set {
		if strings.EqualFold(category, s) {
			return true
		}
	}
	return false
}
