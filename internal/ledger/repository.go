package ledger

import (
	"finhealth/internal/domain"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Repository answers windowed queries over an immutable transaction
// snapshot. Implementations must be safe for concurrent readers.
type Repository interface {
	// TransactionsFor returns the entity's transactions with start <= date
	// <= end, in no particular order. It fails with domain.ErrNotFound when
	// the entity has zero transactions in the full history.
	TransactionsFor(entityID string, start, end time.Time) ([]domain.Transaction, error)

	// LatestDate is the last observed transaction date for the entity,
	// used to anchor trailing windows.
	LatestDate(entityID string) (time.Time, error)

	Entities() []EntitySummary
}

type EntitySummary struct {
	EntityID    string          `json:"entityId"`
	Records     int             `json:"records"`
	TotalIncome decimal.Decimal `json:"totalIncome"`
}

type snapshotRepository struct {
	byEntity map[string][]domain.Transaction
}

// NewSnapshotRepository copies the given transactions into an immutable
// per-entity index.
func NewSnapshotRepository(transactions []domain.Transaction) Repository {
	byEntity := map[string][]domain.Transaction{}
	for _, t := range transactions {
		byEntity[t.EntityID] = append(byEntity[t.EntityID], t)
	}
	for _, txns := range byEntity {
		sort.Slice(txns, func(i, j int) bool {
			return txns[i].Date.Before(txns[j].Date)
		})
	}
	return snapshotRepository{byEntity: byEntity}
}

func (r snapshotRepository) TransactionsFor(entityID string, start, end time.Time) ([]domain.Transaction, error) {
	history, ok := r.byEntity[entityID]
	if !ok {
		return nil, fmt.Errorf("entity %q: %w", entityID, domain.ErrNotFound)
	}

	out := []domain.Transaction{}
	for _, t := range history {
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r snapshotRepository) LatestDate(entityID string) (time.Time, error) {
	history, ok := r.byEntity[entityID]
	if !ok {
		return time.Time{}, fmt.Errorf("entity %q: %w", entityID, domain.ErrNotFound)
	}
	// history is sorted ascending
	return history[len(history)-1].Date, nil
}

func (r snapshotRepository) Entities() []EntitySummary {
	summaries := []EntitySummary{}
	for entityID, txns := range r.byEntity {
		income := decimal.Zero
		for _, t := range txns {
			if t.Flow == domain.FlowIncome {
				income = income.Add(t.Amount)
			}
		}
		summaries = append(summaries, EntitySummary{
			EntityID:    entityID,
			Records:     len(txns),
			TotalIncome: income,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].TotalIncome.Equal(summaries[j].TotalIncome) {
			return summaries[i].TotalIncome.GreaterThan(summaries[j].TotalIncome)
		}
		return summaries[i].EntityID < summaries[j].EntityID
	})
	return summaries
}
