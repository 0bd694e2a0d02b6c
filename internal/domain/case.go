package domain

import (
	"time"

	"github.com/google/uuid"
)

// Case is a purchasable container with a configured reward pool.
// Cases are authored by administrators and read-only to the open flow.
type Case struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"` // smallest currency unit
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// RewardKind discriminates the reward variants of a case item
type RewardKind string

const (
	RewardBadge RewardKind = "badge"
	RewardCoins RewardKind = "coins"
)

// Reward is the tagged payload a case item grants. Exactly one of the
// variant fields is meaningful, selected by Kind.
type Reward struct {
	Kind       RewardKind `json:"kind"`
	BadgeID    string     `json:"badge_id,omitempty"`
	CoinAmount int64      `json:"coin_amount,omitempty"`
}

// BadgeReward constructs a badge-variant reward
func BadgeReward(badgeID string) Reward {
	return Reward{Kind: RewardBadge, BadgeID: badgeID}
}

// CoinsReward constructs a coins-variant reward
func CoinsReward(amount int64) Reward {
	return Reward{Kind: RewardCoins, CoinAmount: amount}
}

// IsCoins reports whether the reward credits currency
func (r Reward) IsCoins() bool {
	return r.Kind == RewardCoins
}

// CaseItem is a single entry in a case's drop table.
// DropRate is a relative weight; weights are not required to sum to 1 or 100.
type CaseItem struct {
	ID           uuid.UUID `json:"id"`
	CaseID       uuid.UUID `json:"case_id"`
	Name         string    `json:"name"`
	Reward       Reward    `json:"reward"`
	Rarity       string    `json:"rarity"`
	DropRate     float64   `json:"drop_rate"`
	DisplayValue int64     `json:"display_value"` // UI value and resale price
}
