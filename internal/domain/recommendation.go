package domain

type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

type RiskLevel string

const (
	RiskNone   RiskLevel = "NONE"
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Recommendation is one prioritized action item. Actions may embed monetary
// targets computed from the entity's own metrics.
type Recommendation struct {
	Category        string    `json:"category"`
	Priority        Priority  `json:"priority"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Actions         []string  `json:"actions"`
	ExpectedBenefit string    `json:"expectedBenefit"`
	Risk            RiskLevel `json:"risk"`
}
