package eval

import (
	"errors"
	"fmt"

	"github.com/keithmackay/zork1-sub000/internal/macro"
	"github.com/keithmackay/zork1-sub000/internal/world"
)

// ErrorKind classifies evaluation failures. Every kind aborts the
// current top-level invocation and is surfaced to the caller as a
// distinguishable value; effects committed before the failing form are
// not rolled back.
type ErrorKind string

const (
	ErrUnboundLocal        ErrorKind = "UNBOUND_LOCAL"
	ErrUnknownOperator     ErrorKind = "UNKNOWN_OPERATOR"
	ErrUnknownRoutine      ErrorKind = "UNKNOWN_ROUTINE"
	ErrUnknownGlobalTarget ErrorKind = "UNKNOWN_GLOBAL_TARGET"
	ErrUncaughtReturn      ErrorKind = "UNCAUGHT_RETURN"
	ErrBadOperands         ErrorKind = "BAD_OPERANDS"
	ErrDivisionByZero      ErrorKind = "DIVISION_BY_ZERO"
)

// Error is an evaluation failure with its kind attached.
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

// KindOf maps any engine error to a stable kind string so callers can
// switch on failures coming from the evaluator, the macro expander, or
// the world model without importing each package.
func KindOf(err error) (string, bool) {
	var ee *Error
	if errors.As(err, &ee) {
		return string(ee.Kind), true
	}
	var me *macro.Error
	if errors.As(err, &me) {
		return string(me.Kind), true
	}
	var we *world.Error
	if errors.As(err, &we) {
		return string(we.Kind), true
	}
	return "", false
}
