package ledger

import (
	"finhealth/internal/domain"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// csvRow matches the tabular ingestion boundary: entity_id, ISO-8601 date,
// flow_type, category, non-negative amount.
type csvRow struct {
	EntityID string `csv:"entity_id"`
	Date     string `csv:"date"`
	FlowType string `csv:"flow_type"`
	Category string `csv:"category"`
	Amount   string `csv:"amount"`
}

func LoadCSVFile(path string) ([]domain.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger file: %w", err)
	}
	defer f.Close()

	return LoadCSV(f)
}

// LoadCSV parses a ledger record stream into transactions, rejecting rows
// that violate the ingestion contract.
func LoadCSV(r io.Reader) ([]domain.Transaction, error) {
	rows := []csvRow{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse ledger csv: %w", err)
	}

	transactions := make([]domain.Transaction, 0, len(rows))
	for i, row := range rows {
		t, err := row.toTransaction()
		if err != nil {
			return nil, fmt.Errorf("ledger row %d: %w", i+1, err)
		}
		transactions = append(transactions, t)
	}
	return transactions, nil
}

func (row csvRow) toTransaction() (domain.Transaction, error) {
	if row.EntityID == "" {
		return domain.Transaction{}, fmt.Errorf("missing entity_id: %w", domain.ErrInvalidParameter)
	}

	date, err := time.Parse(time.DateOnly, row.Date)
	if err != nil {
		date, err = time.Parse(time.RFC3339, row.Date)
	}
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("bad date %q: %w", row.Date, domain.ErrInvalidParameter)
	}

	flow := domain.FlowType(row.FlowType)
	if !flow.Valid() {
		return domain.Transaction{}, fmt.Errorf("bad flow_type %q: %w", row.FlowType, domain.ErrInvalidParameter)
	}

	amount, err := decimal.NewFromString(row.Amount)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("bad amount %q: %w", row.Amount, domain.ErrInvalidParameter)
	}
	if amount.IsNegative() {
		return domain.Transaction{}, fmt.Errorf("negative amount %s (sign is carried by flow_type): %w", amount, domain.ErrInvalidParameter)
	}

	return domain.Transaction{
		EntityID: row.EntityID,
		Date:     date,
		Flow:     flow,
		Category: row.Category,
		Amount:   amount,
	}, nil
}
