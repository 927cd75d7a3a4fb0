package engine

import "fmt"

const (
	CodeValidation     = "VALIDATION"
	CodeObjectNotFound = "OBJECT_NOT_FOUND"
	CodePaneNotFound   = "PANE_NOT_FOUND"
	CodeStorageFailure = "STORAGE_FAILURE"
)

// CodedError is a typed error used for stable API mapping. The core
// stores never return it for stale-id mutations (those stay silent
// no-ops); it only surfaces on API-boundary reads and validation.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *CodedError) Unwrap() error { return e.Cause }

func newError(code, msg string) error {
	return &CodedError{Code: code, Message: msg}
}
