package agent

import "fmt"

// ErrorKind tells the execution loop whether retrying the same call can help.
type ErrorKind string

const (
	// ErrorKindRetryable marks transient faults (timeouts, rate limits).
	ErrorKindRetryable ErrorKind = "retryable"

	// ErrorKindTerminal marks faults retrying cannot fix (bad params,
	// unknown tool, nothing found).
	ErrorKindTerminal ErrorKind = "terminal"
)

// ToolError is a typed tool fault. It crosses the registry boundary inside a
// ToolResult, never as a bare error.
type ToolError struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *ToolError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *ToolError) Unwrap() error {
	return e.cause
}

// Retryable reports whether the loop may try the same call again.
func (e *ToolError) Retryable() bool {
	return e.Kind == ErrorKindRetryable
}

// NewRetryableError builds a transient fault.
func NewRetryableError(message string, cause error) *ToolError {
	return &ToolError{Kind: ErrorKindRetryable, Message: message, cause: cause}
}

// NewTerminalError builds a permanent fault.
func NewTerminalError(message string, cause error) *ToolError {
	return &ToolError{Kind: ErrorKindTerminal, Message: message, cause: cause}
}

// MissingParamError is the standard fault for an absent or mistyped
// required parameter.
func MissingParamError(name string) *ToolError {
	return NewTerminalError(fmt.Sprintf("%s parameter is required", name), nil)
}
