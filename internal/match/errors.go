package match

import "fmt"

// ErrorCode classifies action-validation failures for the API boundary.
type ErrorCode string

const (
	ErrInvalidState          ErrorCode = "INVALID_STATE"
	ErrInvalidPhase          ErrorCode = "INVALID_PHASE"
	ErrNotPlayerTurn         ErrorCode = "NOT_PLAYER_TURN"
	ErrInsufficientResources ErrorCode = "INSUFFICIENT_RESOURCES"
	ErrInvalidTarget         ErrorCode = "INVALID_TARGET"
	ErrRuleViolation         ErrorCode = "RULE_VIOLATION"
	ErrInvalidAction         ErrorCode = "INVALID_ACTION"
)

// ActionError is a typed action-validation failure. A failed action never
// mutates state and never appends history.
type ActionError struct {
	Code    ErrorCode
	Message string
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func actionErrorf(code ErrorCode, format string, args ...any) *ActionError {
	return &ActionError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsActionError unwraps an error into an ActionError, or nil.
func AsActionError(err error) *ActionError {
	if ae, ok := err.(*ActionError); ok {
		return ae
	}
	return nil
}
