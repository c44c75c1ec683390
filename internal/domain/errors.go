package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Account errors
	ErrMsgAccountNotFound = "account not found"
	ErrMsgServantNotFound = "servant not found"

	// Plan errors
	ErrMsgPlanNotFound      = "plan not found"
	ErrMsgPlanGroupNotFound = "plan group not found"
	ErrMsgPlanNotInGroup    = "plan does not belong to group"

	// Game data errors
	ErrMsgGameServantNotFound = "game servant not found"
	ErrMsgGameItemNotFound    = "game item not found"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrAccountNotFound = errors.New(ErrMsgAccountNotFound)
	ErrServantNotFound = errors.New(ErrMsgServantNotFound)

	ErrPlanNotFound      = errors.New(ErrMsgPlanNotFound)
	ErrPlanGroupNotFound = errors.New(ErrMsgPlanGroupNotFound)
	ErrPlanNotInGroup    = errors.New(ErrMsgPlanNotInGroup)

	ErrGameServantNotFound = errors.New(ErrMsgGameServantNotFound)
	ErrGameItemNotFound    = errors.New(ErrMsgGameItemNotFound)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
