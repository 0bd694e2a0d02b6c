package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"
	ErrMsgInvalidCaseID     = "Invalid case id"

	// Case operation error messages
	ErrMsgOpenCaseFailed   = "Failed to open case"
	ErrMsgListCasesFailed  = "Failed to list cases"
	ErrMsgGetCaseFailed    = "Failed to get case"
	ErrMsgGetHistoryFailed = "Failed to get opening history"

	// Inventory operation error messages
	ErrMsgGetInventoryFailed = "Failed to get inventory"
	ErrMsgSellItemsFailed    = "Failed to sell items"

	// Feed error messages
	ErrMsgGetFeedFailed = "Failed to get live feed"
)

// Success messages for API responses
const (
	MsgCaseOpenedSuccess = "Case opened!"
	MsgItemsSoldSuccess  = "Items sold successfully"
)
