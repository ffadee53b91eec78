package dictionary

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind int

const (
	// KindConstruction rejects object creation: wrong input types, missing required
	// parameters or an empty parent scope.
	KindConstruction Kind = iota + 1
	// KindConfiguration is a per-item data quality problem. The item is skipped.
	KindConfiguration
	// KindLookup is a caller contract violation such as reading a parameter that was never supplied.
	KindLookup
	// KindCache is a cache read or write failure. It never blocks returning a result.
	KindCache
)

func (k Kind) String() string {
	switch k {
	case KindConstruction:
		return "construction"
	case KindConfiguration:
		return "configuration"
	case KindLookup:
		return "lookup"
	case KindCache:
		return "cache"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the single error type of the dictionary engine.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// NewError returns an Error of the given kind.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError returns an Error of the given kind wrapping err.
func WrapError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s > %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, &Error{Kind: KindLookup}) matches any lookup error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// IsKind reports whether any error in err's chain is an *Error of kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
