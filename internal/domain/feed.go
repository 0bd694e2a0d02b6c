package domain

import (
	"time"

	"github.com/google/uuid"
)

// FeedEntry is a public record of a recent win, shown for social proof.
// Storage is append-only; consumers cap the visible feed to the most
// recent N entries.
type FeedEntry struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	CaseName    string    `json:"case_name"`
	ItemName    string    `json:"item_name"`
	Rarity      string    `json:"rarity"`
	ItemValue   int64     `json:"item_value"`
	CreatedAt   time.Time `json:"created_at"`
}
