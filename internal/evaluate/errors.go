package evaluate

import "fmt"

// Error represents a failure inside the scoring pipeline. Gating outcomes
// (wrong stroke count, blank image) are not errors; they return well-formed
// results with an ErrorCode instead.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}
