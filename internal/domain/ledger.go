package domain

import (
	"time"

	"github.com/google/uuid"
)

// Transaction types recorded in the audit ledger
const (
	TransactionTypeCaseOpening = "case_opening"
	TransactionTypeLiquidation = "item_liquidation"
)

// WonItem is the JSONB summary of a single win inside a CaseTransaction.
type WonItem struct {
	Name   string `json:"name"`
	Rarity string `json:"rarity"`
	Value  int64  `json:"value"`
}

// CaseTransaction is an append-only audit record. Write-once.
type CaseTransaction struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	CaseID          uuid.UUID `json:"case_id"`
	TransactionType string    `json:"transaction_type"`
	ItemsWon        []WonItem `json:"items_won"`
	TotalValue      int64     `json:"total_value"`
	CreatedAt       time.Time `json:"created_at"`
}

// CaseOpening records the price actually paid for a single open.
type CaseOpening struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	CaseID    uuid.UUID `json:"case_id"`
	PricePaid int64     `json:"price_paid"`
	WonItemID uuid.UUID `json:"won_item_id"`
	CreatedAt time.Time `json:"created_at"`
}
