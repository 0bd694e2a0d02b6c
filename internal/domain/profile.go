package domain

import (
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// Profile is the subset of a user profile the minigame touches.
// Balance is a decimal string holding an arbitrary-precision non-negative
// integer; it is only mutated through the case-opening and liquidation
// transactions (purchase flows live in an external service).
type Profile struct {
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Balance     string    `json:"uc_balance"`
}

// ParseBalance converts a stored decimal-string balance into a big.Int.
func ParseBalance(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBalance, s)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative value %q", ErrInvalidBalance, s)
	}
	return v, nil
}

// FormatBalance renders a balance for storage and API responses.
func FormatBalance(v *big.Int) string {
	return v.String()
}
