package app

import (
	"finhealth/internal/benchmark"
	"finhealth/internal/domain"
	"finhealth/internal/ledger"
	"finhealth/internal/metrics"
	"finhealth/internal/recommend"
	"finhealth/internal/scoring"
	"fmt"

	"go.uber.org/zap"
)

// AdvisorService ties the pipeline together: ledger -> aggregator ->
// classifier -> recommendation generator. It holds only immutable reference
// data, so concurrent calls need no locking.
type AdvisorService interface {
	AnalyzeBusiness(entityID string) (*BusinessReport, error)
	AnalyzePersonal(entityID string) (*PersonalReport, error)
	Entities() []ledger.EntitySummary
}

type advisorHandler struct {
	Aggregator metrics.AggregatorHandler
	Ledger     ledger.Repository
	Benchmarks *benchmark.Table
	Log        *zap.SugaredLogger
}

func NewAdvisorService(repo ledger.Repository, benchmarks *benchmark.Table, log *zap.SugaredLogger) AdvisorService {
	return advisorHandler{
		Aggregator: metrics.NewAggregator(repo),
		Ledger:     repo,
		Benchmarks: benchmarks,
		Log:        log,
	}
}

type BusinessReport struct {
	EntityID        string                  `json:"entityId"`
	Tier            benchmark.Tier          `json:"tier"`
	Metrics         domain.EntityMetrics    `json:"metrics"`
	Score           domain.ScoreResult      `json:"score"`
	Recommendations []domain.Recommendation `json:"recommendations"`
}

type PersonalReport struct {
	EntityID        string                  `json:"entityId"`
	Metrics         domain.EntityMetrics    `json:"metrics"`
	Profile         scoring.PersonalProfile `json:"profile"`
	Score           domain.ScoreResult      `json:"score"`
	Recommendations []domain.Recommendation `json:"recommendations"`
}

func (h advisorHandler) AnalyzeBusiness(entityID string) (*BusinessReport, error) {
	m, err := h.Aggregator.Compute(entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute metrics for %s: %w", entityID, err)
	}

	tier := h.Benchmarks.TierFor(m.TotalIncome)
	score := scoring.ScoreBusiness(*m, tier)
	recs := recommend.ForBusiness(score, *m)

	if h.Log != nil {
		h.Log.Infow("business analysis complete",
			"entityId", entityID,
			"tier", tier.TierID,
			"score", score.Score,
			"state", score.State,
			"recommendations", len(recs),
		)
	}

	return &BusinessReport{
		EntityID:        entityID,
		Tier:            tier,
		Metrics:         *m,
		Score:           score,
		Recommendations: recs,
	}, nil
}

func (h advisorHandler) AnalyzePersonal(entityID string) (*PersonalReport, error) {
	m, err := h.Aggregator.Compute(entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute metrics for %s: %w", entityID, err)
	}

	norms := h.Benchmarks.Personal
	score := scoring.ScorePersonal(*m, norms)
	recs := recommend.ForPersonal(score, *m, norms)

	if h.Log != nil {
		h.Log.Infow("personal analysis complete",
			"entityId", entityID,
			"score", score.Score,
			"state", score.State,
			"recommendations", len(recs),
		)
	}

	return &PersonalReport{
		EntityID:        entityID,
		Metrics:         *m,
		Profile:         scoring.BuildPersonalProfile(*m, norms),
		Score:           score,
		Recommendations: recs,
	}, nil
}

func (h advisorHandler) Entities() []ledger.EntitySummary {
	return h.Ledger.Entities()
}
