package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query/path parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidPathParam  = "Invalid %s path parameter"
)

// Success messages for API responses. Create and update handlers respond
// with the entity itself; these cover the message-only responses.
const (
	MsgAccountDeletedSuccess  = "Account deleted successfully"
	MsgServantsUpdatedSuccess = "Servants updated successfully"
	MsgItemsUpdatedSuccess    = "Items updated successfully"

	MsgPlanDeletedSuccess      = "Plan deleted successfully"
	MsgPlanGroupDeletedSuccess = "Plan group deleted successfully"
)
