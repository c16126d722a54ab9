package ledger

import (
	"errors"
	"finhealth/internal/domain"
	"finhealth/internal/util"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTransaction(entityID string, year, month, day int, flow domain.FlowType, amount int64) domain.Transaction {
	return domain.Transaction{
		EntityID: entityID,
		Date:     util.NewDate(year, month, day),
		Flow:     flow,
		Category: "general",
		Amount:   decimal.NewFromInt(amount),
	}
}

func TestSnapshotRepository_TransactionsFor(t *testing.T) {
	repo := NewSnapshotRepository([]domain.Transaction{
		newTransaction("acme", 2024, 1, 15, domain.FlowIncome, 100),
		newTransaction("acme", 2024, 2, 15, domain.FlowIncome, 200),
		newTransaction("acme", 2024, 3, 15, domain.FlowExpense, 50),
		newTransaction("other", 2024, 2, 1, domain.FlowIncome, 999),
	})

	t.Run("filters by entity and inclusive range", func(t *testing.T) {
		got, err := repo.TransactionsFor("acme", util.NewDate(2024, 1, 15), util.NewDate(2024, 2, 15))
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, txn := range got {
			require.Equal(t, "acme", txn.EntityID)
		}
	})

	t.Run("empty window for a known entity is valid", func(t *testing.T) {
		got, err := repo.TransactionsFor("acme", util.NewDate(2020, 1, 1), util.NewDate(2020, 12, 31))
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("unknown entity fails with ErrNotFound", func(t *testing.T) {
		_, err := repo.TransactionsFor("ghost", util.NewDate(2024, 1, 1), util.NewDate(2024, 12, 31))
		require.Error(t, err)
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestSnapshotRepository_LatestDate(t *testing.T) {
	repo := NewSnapshotRepository([]domain.Transaction{
		newTransaction("acme", 2024, 3, 15, domain.FlowExpense, 50),
		newTransaction("acme", 2024, 1, 15, domain.FlowIncome, 100),
	})

	got, err := repo.LatestDate("acme")
	require.NoError(t, err)
	require.Equal(t, util.NewDate(2024, 3, 15), got)

	_, err = repo.LatestDate("ghost")
	require.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSnapshotRepository_Entities(t *testing.T) {
	repo := NewSnapshotRepository([]domain.Transaction{
		newTransaction("small-co", 2024, 1, 1, domain.FlowIncome, 100),
		newTransaction("big-co", 2024, 1, 1, domain.FlowIncome, 5000),
		newTransaction("big-co", 2024, 2, 1, domain.FlowExpense, 1000),
	})

	got := repo.Entities()
	require.Len(t, got, 2)
	require.Equal(t, "big-co", got[0].EntityID)
	require.Equal(t, 2, got[0].Records)
	require.True(t, got[0].TotalIncome.Equal(decimal.NewFromInt(5000)))
	require.Equal(t, "small-co", got[1].EntityID)
}
