package tdif

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the failures reported by Writer.
type ErrorKind int

const (
	// KindNullValue is reported when a required reference is absent.
	KindNullValue ErrorKind = iota + 1
	// KindInvalidArgument is reported for structurally invalid input.
	KindInvalidArgument
	// KindInvalidState is reported when an operation is called in the wrong phase.
	KindInvalidState
	// KindIO is reported when the underlying sink fails.
	KindIO
)

func (k ErrorKind) String() string {
	switch k {
	case KindNullValue:
		return "null value"
	case KindInvalidArgument:
		return "invalid argument"
	case KindInvalidState:
		return "invalid state"
	case KindIO:
		return "i/o failure"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

var (
	// ErrNullValue matches every *Error of kind KindNullValue.
	ErrNullValue = errors.New("tdif: null value")
	// ErrInvalidArgument matches every *Error of kind KindInvalidArgument.
	ErrInvalidArgument = errors.New("tdif: invalid argument")
	// ErrInvalidState matches every *Error of kind KindInvalidState.
	ErrInvalidState = errors.New("tdif: invalid state")
	// ErrIO matches every *Error of kind KindIO.
	ErrIO = errors.New("tdif: i/o failure")
)

// Error is the typed failure returned by all Writer operations.
// Msg is stable and suitable for comparison.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

// Error formats the message, appending the wrapped cause if there is one.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("tdif: %s: %v", e.Msg, e.Err)
	}
	return "tdif: " + e.Msg
}

// Unwrap returns the underlying sink error, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	switch target {
	case ErrNullValue:
		return e.Kind == KindNullValue
	case ErrInvalidArgument:
		return e.Kind == KindInvalidArgument
	case ErrInvalidState:
		return e.Kind == KindInvalidState
	case ErrIO:
		return e.Kind == KindIO
	}
	return false
}

func nullValue(msg string) error {
	return &Error{Kind: KindNullValue, Msg: msg}
}

func invalidArgument(format string, args ...any) error {
	return &Error{Kind: KindInvalidArgument, Msg: fmt.Sprintf(format, args...)}
}

func invalidState(msg string) error {
	return &Error{Kind: KindInvalidState, Msg: msg}
}

func ioFailure(msg string, err error) error {
	return &Error{Kind: KindIO, Msg: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or zero.
func KindOf(err error) ErrorKind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return 0
}
