package simulation

import (
	"finhealth/internal/domain"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultCatalog returns the fixed strategy set: three blended profiles plus
// the single-asset strategies they are built from. Weights always sum to 1.
func DefaultCatalog() []domain.PortfolioStrategy {
	return []domain.PortfolioStrategy{
		{
			Name: "conservative",
			AssetWeights: map[string]float64{
				"short_term_bonds": 0.60,
				"mid_term_bonds":   0.30,
				"real_estate":      0.10,
			},
			ExpectedAnnualReturnPct: 9.5,
			AnnualVolatility:        0.02,
		},
		{
			Name: "moderate",
			AssetWeights: map[string]float64{
				"short_term_bonds": 0.30,
				"real_estate":      0.40,
				"domestic_equity":  0.20,
				"global_equity":    0.10,
			},
			ExpectedAnnualReturnPct: 10.8,
			AnnualVolatility:        0.08,
		},
		{
			Name: "aggressive",
			AssetWeights: map[string]float64{
				"global_equity":   0.50,
				"domestic_equity": 0.30,
				"real_estate":     0.15,
				"mid_term_bonds":  0.05,
			},
			ExpectedAnnualReturnPct: 11.5,
			AnnualVolatility:        0.15,
		},
		{
			Name:                    "treasury_bills",
			AssetWeights:            map[string]float64{"short_term_bonds": 1.0},
			ExpectedAnnualReturnPct: 10.5,
			AnnualVolatility:        0.01,
		},
		{
			Name:                    "real_estate",
			AssetWeights:            map[string]float64{"real_estate": 1.0},
			ExpectedAnnualReturnPct: 8.5,
			AnnualVolatility:        0.05,
		},
		{
			Name:                    "global_equity",
			AssetWeights:            map[string]float64{"global_equity": 1.0},
			ExpectedAnnualReturnPct: 10.5,
			AnnualVolatility:        0.18,
		},
	}
}

// LoadCatalogFile replaces the default catalog with a YAML-defined one.
func LoadCatalogFile(path string) ([]domain.PortfolioStrategy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read strategy catalog: %w", err)
	}

	catalog := []domain.PortfolioStrategy{}
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse strategy catalog: %w", err)
	}
	if len(catalog) == 0 {
		return nil, fmt.Errorf("strategy catalog is empty: %w", domain.ErrInvalidParameter)
	}
	for _, s := range catalog {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// StrategyByName looks up a catalog entry.
func StrategyByName(catalog []domain.PortfolioStrategy, name string) (domain.PortfolioStrategy, error) {
	for _, s := range catalog {
		if s.Name == name {
			return s, nil
		}
	}
	return domain.PortfolioStrategy{}, fmt.Errorf("unknown strategy %q: %w", name, domain.ErrInvalidParameter)
}
