package world

import "fmt"

// ErrorKind classifies world-model failures.
type ErrorKind string

const (
	ErrUnknownObject   ErrorKind = "UNKNOWN_OBJECT"
	ErrUnknownTable    ErrorKind = "UNKNOWN_TABLE"
	ErrIndexOutOfRange ErrorKind = "TABLE_INDEX_OUT_OF_RANGE"
	ErrCyclicMove      ErrorKind = "CYCLIC_MOVE"
)

// Error is a world-model failure with its kind attached so callers can
// distinguish lookup failures from constraint violations.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
