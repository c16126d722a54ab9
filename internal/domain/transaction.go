package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type FlowType string

const (
	FlowIncome  FlowType = "income"
	FlowExpense FlowType = "expense"
)

func (f FlowType) Valid() bool {
	return f == FlowIncome || f == FlowExpense
}

type EntityKind string

const (
	EntityBusiness EntityKind = "business"
	EntityPersonal EntityKind = "personal"
)

// Transaction is one dated ledger record. Amounts are always non-negative;
// direction is carried by Flow.
type Transaction struct {
	EntityID string          `json:"entityId"`
	Date     time.Time       `json:"date"`
	Flow     FlowType        `json:"flowType"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}
