package cases

import "time"

// Retry configuration for the open transaction. Conflicting balance
// updates are retried with exponential backoff before surfacing a
// conflict to the caller.
const (
	// MaxOpenAttempts is the total number of attempts per open, including the first
	MaxOpenAttempts = 3

	// RetryBaseDelay is the initial backoff delay; doubles per attempt
	RetryBaseDelay = 50 * time.Millisecond
)

// Case/pool definition cache. Definitions are admin-authored and
// read-mostly; a short TTL keeps edits visible without a reload endpoint.
const (
	DefinitionCacheSize = 256
	DefinitionCacheTTL  = 30 * time.Second
)

// DefaultHistoryLimit caps opening-history reads when no limit is given
const DefaultHistoryLimit = 50

// Log message constants
const (
	LogMsgOpenCalled       = "OpenCase called"
	LogMsgCaseOpened       = "Case opened"
	LogMsgOpenRetry        = "Open transaction conflicted, retrying"
	LogMsgOpenConflict     = "Open transaction failed after retries"
	LogMsgBeginTxFailed    = "failed to begin transaction: %w"
	LogMsgCommitTxFailed   = "failed to commit transaction: %w"
	LogMsgDefinitionCached = "Case definition cached"
)
