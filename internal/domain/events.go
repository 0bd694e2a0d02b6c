package domain

// Event type name constants
const (
	EventTypeCaseOpened      = "case.opened"
	EventTypeItemsLiquidated = "items.liquidated"
)

// CaseOpenedPayload is the typed payload for case-opened events
type CaseOpenedPayload struct {
	FeedEntryID string `json:"feed_entry_id"` // id of the live_feed row written in the opening transaction
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	CaseID      string `json:"case_id"`
	CaseName    string `json:"case_name"`
	ItemName    string `json:"item_name"`
	Rarity      string `json:"rarity"`
	ItemValue   int64  `json:"item_value"`
	CoinAmount  int64  `json:"coin_amount,omitempty"` // set for currency wins
	PricePaid   int64  `json:"price_paid"`
	Timestamp   int64  `json:"timestamp"`
}

// ItemsLiquidatedPayload is the typed payload for liquidation events
type ItemsLiquidatedPayload struct {
	UserID      string `json:"user_id"`
	ItemsSold   int    `json:"items_sold"`
	CoinsEarned string `json:"coins_earned"`
	Timestamp   int64  `json:"timestamp"`
}
