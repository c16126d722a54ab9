package recommend

import (
	"finhealth/internal/domain"
	"finhealth/internal/util"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ForBusiness maps a scoring result plus the underlying metrics to a
// prioritized action list. Dispatch is on the health state, never on free
// text, and the output is fully deterministic for identical inputs.
func ForBusiness(score domain.ScoreResult, m domain.EntityMetrics) []domain.Recommendation {
	recs := []domain.Recommendation{}

	switch score.State {
	case domain.StateExcellent, domain.StateGood:
		recs = append(recs, businessGrowthRecs(m)...)
	case domain.StateRegular:
		recs = append(recs, businessOptimizationRecs(m)...)
	default:
		recs = append(recs, businessRescueRecs(m)...)
	}

	if rec, ok := digitalizationRec(m); ok {
		recs = append(recs, rec)
	}
	return recs
}

func businessGrowthRecs(m domain.EntityMetrics) []domain.Recommendation {
	marketingBudget := m.NetResult.Mul(pct(15))
	reserve := m.TotalExpense.Mul(pct(25))

	recs := []domain.Recommendation{
		{
			Category:    "investment",
			Priority:    domain.PriorityHigh,
			Title:       "Business Expansion",
			Description: fmt.Sprintf("With a margin of %.1f%% and positive momentum, this is the moment to expand.", m.MarginPct),
			Actions: []string{
				fmt.Sprintf("Invest in digital marketing: %s (15%% of net result)", util.FormatMoney(marketingBudget)),
				"Hire strategic staff for growth areas",
				"Open a new sales channel or location",
			},
			ExpectedBenefit: "Projected revenue increase of 20-30% within 12 months",
			Risk:            domain.RiskLow,
		},
		{
			Category:    "investment",
			Priority:    domain.PriorityMedium,
			Title:       "Corporate Emergency Fund",
			Description: "Build a financial cushion for the unexpected.",
			Actions: []string{
				fmt.Sprintf("Reserve %s (3 months of operating expenses)", util.FormatMoney(reserve)),
				"Keep the reserve in short-term treasury bills for liquidity",
				"Maintain an unused credit line as a backstop",
			},
			ExpectedBenefit: "Financial resilience and a better credit rating",
			Risk:            domain.RiskNone,
		},
	}

	if m.MarginPct > 15 {
		rdBudget := m.TotalIncome.Mul(pct(5))
		recs = append(recs, domain.Recommendation{
			Category:    "investment",
			Priority:    domain.PriorityMedium,
			Title:       "Revenue Diversification",
			Description: "Healthy margins leave room to diversify income sources.",
			Actions: []string{
				"Develop a complementary product or service",
				"Explore adjacent markets",
				fmt.Sprintf("R&D budget: %s (5%% of income)", util.FormatMoney(rdBudget)),
			},
			ExpectedBenefit: "Lower concentration risk and new income streams",
			Risk:            domain.RiskMedium,
		})
	}
	return recs
}

func businessOptimizationRecs(m domain.EntityMetrics) []domain.Recommendation {
	costTarget := m.TotalExpense.Mul(pct(10))
	creditLine := m.TotalIncome.Mul(pct(15))

	recs := []domain.Recommendation{
		{
			Category:    "optimization",
			Priority:    domain.PriorityHigh,
			Title:       "Operating Cost Reduction",
			Description: fmt.Sprintf("A margin of %.1f%% calls for cost optimization.", m.MarginPct),
			Actions: []string{
				"Renegotiate contracts with main suppliers",
				fmt.Sprintf("Reduction target: %s (10%% of annual expenses)", util.FormatMoney(costTarget)),
				"Automate repetitive processes",
			},
			ExpectedBenefit: fmt.Sprintf("Margin improvement towards %.1f%%", m.MarginPct+10),
			Risk:            domain.RiskLow,
		},
	}

	if category, total, ok := m.LargestExpenseCategory(); ok {
		recs = append(recs, domain.Recommendation{
			Category:    "optimization",
			Priority:    domain.PriorityHigh,
			Title:       fmt.Sprintf("Optimize %s Spending", title(category)),
			Description: fmt.Sprintf("%s is the largest expense category: %s per year.", title(category), util.FormatMoney(total)),
			Actions: []string{
				fmt.Sprintf("Evaluate cheaper alternatives for %s", category),
				"Put spend controls in place",
				fmt.Sprintf("Reduction target: %s (15%%)", util.FormatMoney(total.Mul(pct(15)))),
			},
			ExpectedBenefit: "Capital freed up for strategic areas",
			Risk:            domain.RiskLow,
		})
	}

	recs = append(recs, domain.Recommendation{
		Category:    "financing",
		Priority:    domain.PriorityMedium,
		Title:       "Working Capital Credit Line",
		Description: "Smooth cash flow with strategic financing.",
		Actions: []string{
			fmt.Sprintf("Credit line of %s (15%% of annual income)", util.FormatMoney(creditLine)),
			"Draw only to cover cash-flow gaps",
			"Keep utilization under 30%",
		},
		ExpectedBenefit: "Better cash flow and access to early-payment discounts",
		Risk:            domain.RiskMedium,
	})
	return recs
}

func businessRescueRecs(m domain.EntityMetrics) []domain.Recommendation {
	fixedCostCut := m.TotalExpense.Mul(pct(30))

	return []domain.Recommendation{
		{
			Category:    "urgent",
			Priority:    domain.PriorityCritical,
			Title:       "Financial Rescue Plan",
			Description: "A critical state demands immediate action.",
			Actions: []string{
				"Renegotiate existing debt",
				fmt.Sprintf("Cut fixed costs by %s (30%% of annual expenses)", util.FormatMoney(fixedCostCut)),
				"Accelerate collections, offer early-payment discounts",
			},
			ExpectedBenefit: "Stabilization within 3-6 months",
			Risk:            domain.RiskHigh,
		},
		{
			Category:    "financing",
			Priority:    domain.PriorityHigh,
			Title:       "Debt Restructuring",
			Description: "Consolidate obligations to relieve cash flow.",
			Actions: []string{
				"Negotiate longer terms with creditors",
				"Seek a consolidation loan at a better rate",
				"Run a structured repayment plan",
			},
			ExpectedBenefit: "Lower monthly cash-flow pressure",
			Risk:            domain.RiskMedium,
		},
	}
}

// digitalizationRec applies when the ledger shows a services category,
// regardless of state.
func digitalizationRec(m domain.EntityMetrics) (domain.Recommendation, bool) {
	hasServices := false
	for category := range m.ExpenseByCategory {
		if strings.EqualFold(category, "services") {
			hasServices = true
			break
		}
	}
	if !hasServices {
		return domain.Recommendation{}, false
	}

	investment := m.TotalIncome.Mul(pct(3))
	return domain.Recommendation{
		Category:    "technology",
		Priority:    domain.PriorityMedium,
		Title:       "Process Digitalization",
		Description: "Technology investment for operating efficiency.",
		Actions: []string{
			"Adopt an ERP/CRM sized to the business",
			fmt.Sprintf("Initial investment: %s (3%% of income)", util.FormatMoney(investment)),
			"Expect payback within 18-24 months",
		},
		ExpectedBenefit: "20-30% reduction in administrative costs",
		Risk:            domain.RiskLow,
	}, true
}

func pct(p int64) decimal.Decimal {
	return decimal.NewFromInt(p).Div(decimal.NewFromInt(100))
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
