package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Auth errors
	ErrMsgUnauthenticated = "invalid or missing credentials"

	// Case errors
	ErrMsgCaseNotFound  = "case not found"
	ErrMsgEmptyPool     = "case has no items configured"
	ErrMsgInvalidWeight = "drop table has no positive drop rate"

	// Profile errors
	ErrMsgProfileNotFound = "profile not found"

	// Ledger errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgInvalidBalance    = "invalid balance value"

	// Inventory errors
	ErrMsgNoItemsToSell = "no items to sell"

	// Validation errors
	ErrMsgInvalidSellRequest = "exactly one of item_ids or sell_all must be provided"
	ErrMsgInvalidInput       = "invalid input"

	// Concurrency errors
	ErrMsgConflict = "balance update conflict"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Auth errors
	ErrUnauthenticated = errors.New(ErrMsgUnauthenticated)

	// Case errors
	ErrCaseNotFound  = errors.New(ErrMsgCaseNotFound)
	ErrEmptyPool     = errors.New(ErrMsgEmptyPool)
	ErrInvalidWeight = errors.New(ErrMsgInvalidWeight)

	// Profile errors
	ErrProfileNotFound = errors.New(ErrMsgProfileNotFound)

	// Ledger errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrInvalidBalance    = errors.New(ErrMsgInvalidBalance)

	// Inventory errors
	ErrNoItemsToSell = errors.New(ErrMsgNoItemsToSell)

	// Validation errors
	ErrInvalidSellRequest = errors.New(ErrMsgInvalidSellRequest)
	ErrInvalidInput       = errors.New(ErrMsgInvalidInput)

	// Concurrency errors
	ErrConflict = errors.New(ErrMsgConflict)

	// Database/System errors
	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
)
