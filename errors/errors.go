package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnauthorized is used whenever a request is not signed by the
	// party that must authorize it.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound is used when a requested entity (record, account, mint)
	// does not exist.
	ErrNotFound = Register(3, "not found")

	// ErrMsg is returned whenever a message is invalid and cannot be
	// handled.
	ErrMsg = Register(4, "invalid message")

	// ErrModel is returned whenever an entity is invalid and cannot be
	// persisted.
	ErrModel = Register(5, "invalid model")

	// ErrDuplicate is returned when an entity already exists under the
	// same key.
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman is returned when application reaches a code path which
	// should not ever be reached if the code was written as expected.
	ErrHuman = Register(7, "coding error")

	// ErrMetadata is returned when the metadata of an entity or a message
	// is missing or invalid.
	ErrMetadata = Register(8, "invalid metadata")

	// ErrEmpty is returned when a value fails a not empty assertion.
	ErrEmpty = Register(9, "value is empty")

	// ErrState is returned when an object is in an invalid state for the
	// requested operation.
	ErrState = Register(10, "invalid state")

	// ErrType is returned whenever the type is not what was expected.
	ErrType = Register(11, "invalid type")

	// ErrInsufficientAmount is returned when a balance is lower than the
	// amount an operation has to move.
	ErrInsufficientAmount = Register(12, "insufficient amount")

	// ErrAmount stands for a malformed amount of whatever.
	ErrAmount = Register(13, "invalid amount")

	// ErrInput stands for general input problems indication.
	ErrInput = Register(14, "invalid input")

	// ErrOverflow is returned when a computation cannot be completed
	// because the result value exceeds the type.
	ErrOverflow = Register(16, "an operation cannot be completed due to value overflow")

	// ErrDatabase is returned when the underlying store fails.
	ErrDatabase = Register(17, "database")

	// ErrPanic is only set when we recover from a panic, so we know to
	// redact potentially sensitive system info.
	ErrPanic = Register(111222, "panic")
)

// Register declares a root error with its ABCI code. Codes are unique for
// the whole process, registering a used code panics. Call it only from
// package level variable declarations.
func Register(code uint32, description string) *Error {
	if _, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error code %d is already registered", code))
	}
	err := &Error{code: code, desc: description}
	usedCodes[code] = err
	return err
}

// Code 1 is reserved for errors that do not wrap a registered root.
var usedCodes = map[uint32]*Error{
	internalABCICode: nil,
}

// Error is a root error. Every error returned by a handler wraps one of
// them so that clients receive a stable code.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// ABCICode returns the code transmitted in ABCI responses.
func (e Error) ABCICode() uint32 {
	return e.code
}

// New is a shortcut for Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is New with formatting.
func (e *Error) Newf(description string, args ...interface{}) error {
	return Wrap(e, fmt.Sprintf(description, args...))
}

// Is returns true if err is kind or wraps kind. A nil kind matches nil
// errors only, including typed nil pointers.
func (kind *Error) Is(err error) bool {
	if kind == nil {
		return errIsNil(err)
	}
	for err != nil {
		if err == kind {
			return true
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// Wrap returns an error that prefixes err with description, keeping err as
// its cause. A stack trace is attached to the innermost wrap only. Wrapping
// nil returns nil.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{parent: err, msg: description}
}

// Wrapf is Wrap with formatting.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return fmt.Sprintf("%s: %s", e.msg, e.parent.Error())
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Recover must be deferred. It stops a panic and stores it in err as an
// ErrPanic.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// WithType prefixes err with the type name of obj.
func WithType(err error, obj interface{}) error {
	return Wrap(err, fmt.Sprintf("%T", obj))
}

type causer interface {
	Cause() error
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the first stack trace found in the cause chain of err.
func stackTrace(err error) errors.StackTrace {
	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}
