// Package droptable implements weighted random selection over a case's
// item pool. Selection probability of an item is drop_rate / total in the
// limit, subject to the rng's uniformity.
package droptable

import (
	"github.com/dotbio/dotbio-api/internal/domain"
)

// RandFunc returns a uniformly distributed value in [0, 1).
type RandFunc func() float64

// TotalWeight sums the drop rates of a pool.
func TotalWeight(pool []domain.CaseItem) float64 {
	var total float64
	for _, item := range pool {
		total += item.DropRate
	}
	return total
}

// Validate checks that a pool can produce a defined draw. Callers must
// fail the surrounding transaction on error rather than proceed.
func Validate(pool []domain.CaseItem) error {
	if len(pool) == 0 {
		return domain.ErrEmptyPool
	}
	for _, item := range pool {
		if item.DropRate < 0 {
			return domain.ErrInvalidWeight
		}
	}
	if TotalWeight(pool) <= 0 {
		return domain.ErrInvalidWeight
	}
	return nil
}

// Draw selects exactly one item from the pool, proportionally to each
// item's drop rate. The pool must already be in its fixed stable order
// (drop_rate descending, ties broken by item id) - the walk order is part
// of the contract, not an artifact of how the rows were fetched.
//
// When floating-point rounding leaves the drawn point just past the last
// cumulative boundary, the last item is returned. That fallback slightly
// biases toward the last item in pathological float cases and is kept on
// purpose: the alternative is failing a paid open.
func Draw(pool []domain.CaseItem, rng RandFunc) (domain.CaseItem, error) {
	if err := Validate(pool); err != nil {
		return domain.CaseItem{}, err
	}

	r := rng() * TotalWeight(pool)

	var cumulative float64
	for _, item := range pool {
		cumulative += item.DropRate
		if r <= cumulative {
			return item, nil
		}
	}

	return pool[len(pool)-1], nil
}
