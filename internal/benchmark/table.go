package benchmark

import (
	"finhealth/internal/domain"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Tier holds the reference margins and growth rates for one business size
// class. Values are percentages.
type Tier struct {
	TierID          string  `json:"tierId" yaml:"tierId"`
	MarginMin       float64 `json:"marginMin" yaml:"marginMin"`
	MarginAvg       float64 `json:"marginAvg" yaml:"marginAvg"`
	MarginMax       float64 `json:"marginMax" yaml:"marginMax"`
	GrowthGood      float64 `json:"growthGood" yaml:"growthGood"`
	GrowthExcellent float64 `json:"growthExcellent" yaml:"growthExcellent"`
}

// PersonalNorms holds personal-finance reference values. Category names are
// matched case-insensitively against expense categories.
type PersonalNorms struct {
	SavingsMinPct           float64  `json:"savingsMinPct" yaml:"savingsMinPct"`
	SavingsGoodPct          float64  `json:"savingsGoodPct" yaml:"savingsGoodPct"`
	SavingsExcellentPct     float64  `json:"savingsExcellentPct" yaml:"savingsExcellentPct"`
	DiscretionaryMaxPct     float64  `json:"discretionaryMaxPct" yaml:"discretionaryMaxPct"`
	EmergencyFundMonths     int      `json:"emergencyFundMonths" yaml:"emergencyFundMonths"`
	DiscretionaryCategories []string `json:"discretionaryCategories" yaml:"discretionaryCategories"`
	SavingsCategory         string   `json:"savingsCategory" yaml:"savingsCategory"`
	EducationCategory       string   `json:"educationCategory" yaml:"educationCategory"`
}

type MarketAssumptions struct {
	AnnualInflationPct float64 `json:"annualInflationPct" yaml:"annualInflationPct"`
}

// Table is the full reference dataset: loaded once at startup, read-only,
// shared by every scoring call.
type Table struct {
	// Income thresholds separating the business tiers, in ledger currency
	// units.
	SmallIncomeMax float64 `json:"smallIncomeMax" yaml:"smallIncomeMax"`
	MidIncomeMax   float64 `json:"midIncomeMax" yaml:"midIncomeMax"`

	Small Tier `json:"small" yaml:"small"`
	Mid   Tier `json:"mid" yaml:"mid"`
	Large Tier `json:"large" yaml:"large"`

	Personal PersonalNorms     `json:"personal" yaml:"personal"`
	Market   MarketAssumptions `json:"market" yaml:"market"`
}

func Default() *Table {
	return &Table{
		SmallIncomeMax: 50_000_000,
		MidIncomeMax:   500_000_000,
		Small: Tier{
			TierID:          "small",
			MarginMin:       5,
			MarginAvg:       12,
			MarginMax:       20,
			GrowthGood:      10,
			GrowthExcellent: 20,
		},
		Mid: Tier{
			TierID:          "mid",
			MarginMin:       8,
			MarginAvg:       15,
			MarginMax:       25,
			GrowthGood:      8,
			GrowthExcellent: 15,
		},
		Large: Tier{
			TierID:          "large",
			MarginMin:       10,
			MarginAvg:       18,
			MarginMax:       30,
			GrowthGood:      5,
			GrowthExcellent: 12,
		},
		Personal: PersonalNorms{
			SavingsMinPct:           5,
			SavingsGoodPct:          15,
			SavingsExcellentPct:     25,
			DiscretionaryMaxPct:     20,
			EmergencyFundMonths:     6,
			DiscretionaryCategories: []string{"entertainment", "restaurants"},
			SavingsCategory:         "savings",
			EducationCategory:       "education",
		},
		Market: MarketAssumptions{
			AnnualInflationPct: 4.5,
		},
	}
}

// LoadFile overlays a YAML document on top of the defaults, so partial
// configs only override what they name.
func LoadFile(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read benchmark config: %w", err)
	}

	table := Default()
	if err := yaml.Unmarshal(raw, table); err != nil {
		return nil, fmt.Errorf("failed to parse benchmark config: %w", err)
	}
	if err := table.validate(); err != nil {
		return nil, err
	}
	return table, nil
}

func (t *Table) validate() error {
	if t.SmallIncomeMax >= t.MidIncomeMax {
		return fmt.Errorf("tier thresholds out of order (%.0f >= %.0f): %w",
			t.SmallIncomeMax, t.MidIncomeMax, domain.ErrInvalidParameter)
	}
	if t.Personal.EmergencyFundMonths < 1 {
		return fmt.Errorf("emergency fund months must be >= 1: %w", domain.ErrInvalidParameter)
	}
	return nil
}

// TierFor classifies a business by trailing-12-month income.
func (t *Table) TierFor(annualIncome decimal.Decimal) Tier {
	income := annualIncome.InexactFloat64()
	switch {
	case income < t.SmallIncomeMax:
		return t.Small
	case income < t.MidIncomeMax:
		return t.Mid
	default:
		return t.Large
	}
}
