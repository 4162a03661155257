package serrors

import "fmt"

// Base is an error with a stable machine-readable code alongside the
// human-readable message.
type Base struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *Base) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code, message, details string) *Base {
	return &Base{Code: code, Message: message, Details: details}
}
