package schema

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values).
//
// Every error returned by this package matches at least one of these with
// [errors.Is], even after it has been wrapped or annotated.
var (
	ErrUnsupportedType       = NewError("unsupported field type")
	ErrInvalidField          = NewError("invalid field")
	ErrInvalidDefault        = NewError("invalid default value")
	ErrInvalidCheck          = NewError("invalid field check")
	ErrInvalidCount          = NewError("invalid instance count")
	ErrInvalidDocument       = NewError("invalid schema document")
	ErrDuplicateDestination  = NewError("destination already registered")
	ErrDuplicateFlag         = NewError("flag already defined")
	ErrUnknownFlag           = NewError("unknown flag")
	ErrDispatch              = NewError("argument dispatch failed")
	ErrMissingRequired       = NewError("missing required argument")
	ErrArity                 = NewError("wrong number of values")
	ErrInstanceCountMismatch = NewError("instance count mismatch")
	ErrCoercion              = NewError("invalid value")
	ErrCheckFailed           = NewError("field check failed")
	ErrSchemaMismatch        = NewError("instance schema does not match type")
	ErrHelp                  = NewError("help requested")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
	root  *Error      // Sentinel this error was derived from
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg> (<attrs>): <err>"
	//   2. "<msg> (<attrs>)"
	//   3. "<msg>"
	//   4. "<err>"
	var sb strings.Builder

	sb.WriteString(e.msg)

	if len(e.attrs) > 0 {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}

		sb.WriteByte('(')

		for i, a := range e.attrs {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(a.Key)
			sb.WriteByte('=')
			sb.WriteString(a.Value.String())
		}

		sb.WriteByte(')')
	}

	if e.err != nil {
		if sb.Len() > 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(e.err.Error())
	}

	return sb.String()
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e == t || e.sentinel() == t
}

func (e *Error) sentinel() *Error {
	if e.root != nil {
		return e.root
	}

	return e
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Attr returns the value of the attribute with the given key.
func (e *Error) Attr(key string) (slog.Value, bool) {
	for i := len(e.attrs) - 1; i >= 0; i-- {
		if e.attrs[i].Key == key {
			return e.attrs[i].Value, true
		}
	}

	return slog.Value{}, false
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
		root:  e.sentinel(),
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
		root:  e.sentinel(),
	}
}

// MismatchError is returned when the number of value slots given for a flag
// is neither 1 nor the number of requested instances.
type MismatchError struct {
	Dest Destination
	Flag string
	Want int // requested instance count
	Got  int // slots received
}

// Error implements the error interface.
func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s (dest=%s, flag=--%s): got %d values, want 1 or %d",
		ErrInstanceCountMismatch.msg, e.Dest, e.Flag, e.Got, e.Want)
}

// Unwrap returns [ErrInstanceCountMismatch].
func (e *MismatchError) Unwrap() error { return ErrInstanceCountMismatch }

// LogValue implements slog.LogValuer.
func (e *MismatchError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrInstanceCountMismatch.msg),
		slog.String("dest", e.Dest.String()),
		slog.String("flag", e.Flag),
		slog.Int("want", e.Want),
		slog.Int("got", e.Got),
	)
}

// annotate adds attrs to err if it is an [*Error], and returns err unchanged
// otherwise.
func annotate(err error, attrs ...slog.Attr) error {
	var e *Error
	if errors.As(err, &e) {
		// Keep the outer chain intact when the *Error is nested.
		if e == err {
			return e.With(attrs...)
		}

		return NewError("").Wrap(err).With(attrs...)
	}

	return err
}

// flagAttrs identifies a flag in error attributes.
func flagAttrs(f *Flag) []slog.Attr {
	return []slog.Attr{
		slog.String("dest", f.Dest.String()),
		slog.String("flag", "--"+f.Name),
	}
}
