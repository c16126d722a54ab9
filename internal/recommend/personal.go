package recommend

import (
	"finhealth/internal/benchmark"
	"finhealth/internal/domain"
	"finhealth/internal/scoring"
	"finhealth/internal/util"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ForPersonal is the personal-finance counterpart of ForBusiness. The norms
// supply category names and the emergency-fund sizing rule.
func ForPersonal(score domain.ScoreResult, m domain.EntityMetrics, norms benchmark.PersonalNorms) []domain.Recommendation {
	profile := scoring.BuildPersonalProfile(m, norms)
	recs := []domain.Recommendation{}

	switch score.State {
	case domain.StateExcellent, domain.StateGood:
		recs = append(recs, personalGrowthRecs(m, profile)...)
	case domain.StateRegular:
		recs = append(recs, personalOptimizationRecs(m, profile, norms)...)
	default:
		recs = append(recs, personalRescueRecs(m)...)
	}

	if rec, ok := retirementRec(m, norms, score.State); ok {
		recs = append(recs, rec)
	}
	return recs
}

func personalGrowthRecs(m domain.EntityMetrics, profile scoring.PersonalProfile) []domain.Recommendation {
	savings := m.MonthlySavings

	recs := []domain.Recommendation{
		{
			Category:    "investment",
			Priority:    domain.PriorityHigh,
			Title:       "Diversified Investment Portfolio",
			Description: fmt.Sprintf("With a savings rate of %.1f%%, you can start building wealth.", profile.SavingsRatePct),
			Actions: []string{
				fmt.Sprintf("Treasury bills: %s/month (30%%, liquidity)", util.FormatMoney(savings.Mul(pct(30)))),
				fmt.Sprintf("Index funds: %s/month (40%%, growth)", util.FormatMoney(savings.Mul(pct(40)))),
				fmt.Sprintf("Real-estate funds: %s/month (30%%, passive income)", util.FormatMoney(savings.Mul(pct(30)))),
			},
			ExpectedBenefit: "Projected annual return of 8-12%",
			Risk:            domain.RiskMedium,
		},
		{
			Category:    "investment",
			Priority:    domain.PriorityHigh,
			Title:       "Complete Emergency Fund",
			Description: "Secure your financial stability.",
			Actions: []string{
				fmt.Sprintf("Target: %s (%s already covered)", util.FormatMoney(profile.EmergencyFundTarget), util.FormatMoney(profile.EmergencyFundActual)),
				fmt.Sprintf("Projected savings this year: %s", util.FormatMoney(savings.Mul(decimal.NewFromInt(12)))),
				"Keep it in treasury bills or a high-yield savings account",
			},
			ExpectedBenefit: "Peace of mind against the unexpected",
			Risk:            domain.RiskNone,
		},
	}

	if profile.SavingsRatePct > 20 {
		recs = append(recs, domain.Recommendation{
			Category:    "investment",
			Priority:    domain.PriorityMedium,
			Title:       "Real-Estate Investment",
			Description: "Consider property to diversify further.",
			Actions: []string{
				fmt.Sprintf("Savings over 3 years: %s", util.FormatMoney(savings.Mul(decimal.NewFromInt(36)))),
				"Enough for a property down payment",
				"Take advantage of low-rate mortgage credit",
			},
			ExpectedBenefit: "Equity, appreciation and rental income",
			Risk:            domain.RiskMedium,
		})
	}
	return recs
}

func personalOptimizationRecs(m domain.EntityMetrics, profile scoring.PersonalProfile, norms benchmark.PersonalNorms) []domain.Recommendation {
	monthlyIncome := m.MonthlyIncome
	savingsTarget := monthlyIncome.Mul(pct(15))

	recs := []domain.Recommendation{
		{
			Category:    "optimization",
			Priority:    domain.PriorityHigh,
			Title:       "Systematic Savings Plan",
			Description: fmt.Sprintf("A savings rate of %.1f%% should be raised.", profile.SavingsRatePct),
			Actions: []string{
				"Target: save 15% of income",
				fmt.Sprintf("That means %s/month", util.FormatMoney(savingsTarget)),
				"Automate the transfer on payday",
			},
			ExpectedBenefit: fmt.Sprintf("Accumulation of %s in one year", util.FormatMoney(savingsTarget.Mul(decimal.NewFromInt(12)))),
			Risk:            domain.RiskNone,
		},
	}

	if profile.DiscretionaryPct > norms.DiscretionaryMaxPct {
		discretionary := m.TotalIncome.Mul(decimal.NewFromFloat(profile.DiscretionaryPct / 100))
		recs = append(recs, domain.Recommendation{
			Category:    "optimization",
			Priority:    domain.PriorityHigh,
			Title:       "Cut Discretionary Spending",
			Description: fmt.Sprintf("Entertainment and dining out total %s per year.", util.FormatMoney(discretionary)),
			Actions: []string{
				fmt.Sprintf("Cut 30%%: saves %s per year", util.FormatMoney(discretionary.Mul(pct(30)))),
				"Set a monthly budget for optional spending",
				"Look for free or low-cost alternatives",
			},
			ExpectedBenefit: "Capital freed up for saving and investing",
			Risk:            domain.RiskNone,
		})
	}

	recs = append(recs, domain.Recommendation{
		Category:    "education",
		Priority:    domain.PriorityMedium,
		Title:       "Grow Your Income",
		Description: "The best investment is in yourself.",
		Actions: []string{
			"Professional certification or technical course",
			fmt.Sprintf("Suggested budget: %s", util.FormatMoney(monthlyIncome.Mul(decimal.NewFromFloat(1.5)))),
			"Expected payoff: 20-30% higher income within 12 months",
		},
		ExpectedBenefit: fmt.Sprintf("Income increase of %s/month", util.FormatMoney(monthlyIncome.Mul(pct(25)))),
		Risk:            domain.RiskLow,
	})
	return recs
}

func personalRescueRecs(m domain.EntityMetrics) []domain.Recommendation {
	monthlyIncome := m.MonthlyIncome

	return []domain.Recommendation{
		{
			Category:    "urgent",
			Priority:    domain.PriorityCritical,
			Title:       "Personal Financial Rescue Plan",
			Description: "Immediate action is needed.",
			Actions: []string{
				"Build a strict survival budget",
				"Eliminate every non-essential expense",
				fmt.Sprintf("Minimum savings goal: %s/month (5%%)", util.FormatMoney(monthlyIncome.Mul(pct(5)))),
			},
			ExpectedBenefit: "Stabilization within 6 months",
			Risk:            domain.RiskHigh,
		},
		{
			Category:    "financing",
			Priority:    domain.PriorityHigh,
			Title:       "Debt Consolidation",
			Description: "If you carry debt, consolidate it at a lower rate.",
			Actions: []string{
				"Negotiate rate reductions with your banks",
				"Consider a consolidation loan",
				"Pay off the highest-interest debt first",
			},
			ExpectedBenefit: "Lower interest and monthly pressure",
			Risk:            domain.RiskMedium,
		},
		{
			Category:    "income",
			Priority:    domain.PriorityHigh,
			Title:       "Additional Income Source",
			Description: "Consider temporary extra work.",
			Actions: []string{
				"Freelance in your area of expertise",
				"Sell non-essential items",
				"Part-time work on weekends",
			},
			ExpectedBenefit: fmt.Sprintf("Extra income of %s/month", util.FormatMoney(monthlyIncome.Mul(pct(30)))),
			Risk:            domain.RiskLow,
		},
	}
}

// retirementRec applies when formal savings run under 10% of annual income.
func retirementRec(m domain.EntityMetrics, norms benchmark.PersonalNorms, state domain.HealthState) (domain.Recommendation, bool) {
	formalSavings := decimal.Zero
	for category, total := range m.ExpenseByCategory {
		if categoryEqual(category, norms.SavingsCategory) {
			formalSavings = formalSavings.Add(total)
		}
	}
	if formalSavings.GreaterThanOrEqual(m.TotalIncome.Mul(pct(10))) {
		return domain.Recommendation{}, false
	}

	priority := domain.PriorityHigh
	if state == domain.StateCritical {
		priority = domain.PriorityMedium
	}
	return domain.Recommendation{
		Category:    "savings",
		Priority:    priority,
		Title:       "Retirement Contributions",
		Description: "It is never too late to plan for retirement.",
		Actions: []string{
			fmt.Sprintf("Voluntary monthly contribution: %s (5%% of income)", util.FormatMoney(m.MonthlyIncome.Mul(pct(5)))),
			"Usually tax-deductible",
			"Compounds over decades",
		},
		ExpectedBenefit: "Future security plus tax savings",
		Risk:            domain.RiskNone,
	}, true
}

func categoryEqual(a, b string) bool {
	return strings.EqualFold(a, b)
}
