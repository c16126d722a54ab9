package domain

// TraceEntry is one month of a simulation run.
type TraceEntry struct {
	Month              int     `json:"month"`
	NominalBalance     float64 `json:"nominalBalance"`
	RealBalance        float64 `json:"realBalance"`
	ContributionToDate float64 `json:"contributionToDate"`
	// GrowthPct is the stochastic monthly return applied this month,
	// in percent.
	GrowthPct float64 `json:"growthPct"`
}

type SimulationAnalysis struct {
	Viability string   `json:"viability"`
	Risk      RiskTier `json:"risk"`
	Notes     []string `json:"notes"`
}

// SimulationResult is the full projection for one strategy. MonthlyTrace
// always has exactly HorizonMonths entries.
type SimulationResult struct {
	StrategyName        string             `json:"strategyName"`
	HorizonMonths       int                `json:"horizonMonths"`
	MonthlyTrace        []TraceEntry       `json:"monthlyTrace"`
	TotalContributed    float64            `json:"totalContributed"`
	FinalNominal        float64            `json:"finalNominal"`
	FinalReal           float64            `json:"finalReal"`
	NominalROIPct       float64            `json:"nominalRoiPct"`
	RealROIPct          float64            `json:"realRoiPct"`
	AnnualizedReturnPct float64            `json:"annualizedReturnPct"`
	Flags               []string           `json:"flags,omitempty"`
	Analysis            SimulationAnalysis `json:"analysis"`
}
