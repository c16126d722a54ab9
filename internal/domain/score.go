package domain

type HealthState string

const (
	StateExcellent HealthState = "EXCELLENT"
	StateGood      HealthState = "GOOD"
	StateRegular   HealthState = "REGULAR"
	StateCritical  HealthState = "CRITICAL"
)

// StateForScore maps a clamped score to its base state. Classifiers may
// demote the result afterwards when margin gates are not met.
func StateForScore(score int) HealthState {
	switch {
	case score >= 70:
		return StateExcellent
	case score >= 50:
		return StateGood
	case score >= 30:
		return StateRegular
	default:
		return StateCritical
	}
}

type ScoreResult struct {
	EntityID    string      `json:"entityId"`
	Kind        EntityKind  `json:"kind"`
	Score       int         `json:"score"`
	State       HealthState `json:"state"`
	Description string      `json:"description"`

	// Alerts are actionable warnings. CoherenceFlags mark metric
	// combinations that are mathematically possible but implausible; they
	// are advisory and never fail the call.
	Alerts         []string `json:"alerts"`
	CoherenceFlags []string `json:"coherenceFlags"`
}

func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
