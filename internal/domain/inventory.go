package domain

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem is a reward a user has won. Rows are created by the open
// flow and never deleted; liquidation only flips the sold flag.
// Currency rewards are also written here for audit parity with item wins.
type InventoryItem struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	Name           string     `json:"name"`
	Reward         Reward     `json:"reward"`
	Rarity         string     `json:"rarity"`
	EstimatedValue int64      `json:"estimated_value"`
	WonFromCaseID  uuid.UUID  `json:"won_from_case_id"`
	WonAt          time.Time  `json:"won_at"`
	Sold           bool       `json:"sold"`
	SoldAt         *time.Time `json:"sold_at,omitempty"`
}
