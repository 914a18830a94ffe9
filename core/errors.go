// Package core holds the types shared by every layer of the driver: the
// node identifier and the kind-tagged error that every codec and the
// controller return.
package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an operation against the wire or the
// controller failed. Callers that need to branch on failure reason
// should compare via errors.Is against the sentinel Errors below rather
// than by inspecting an Error's Kind field directly.
type ErrorKind int

const (
	// Protocol marks an unknown preamble, (direction, function) pair,
	// or (class, command) pair.
	Protocol ErrorKind = iota
	// ShortRead marks input that ended before enough bytes were read.
	ShortRead
	// Corrupt marks a frame whose parity check failed.
	Corrupt
	// Io marks an underlying byte-stream failure other than a timeout.
	Io
	// Timeout marks an elapsed read deadline or reply deadline.
	Timeout
	// Nack marks a peer reply of NACK to the current request.
	Nack
	// Cancel marks a peer reply of CANCEL to the current request.
	Cancel
)

func (k ErrorKind) String() string {
	switch k {
	case Protocol:
		return "protocol error"
	case ShortRead:
		return "data is too short"
	case Corrupt:
		return "data is corrupt"
	case Io:
		return "I/O error"
	case Timeout:
		return "operation timed out"
	case Nack:
		return "request not acknowledged"
	case Cancel:
		return "request canceled"
	default:
		return "unknown error"
	}
}

// Error is the concrete error type returned by every codec, driver and
// controller operation in this module. It carries a Kind for
// programmatic dispatch (errors.Is) and, optionally, the underlying
// cause (e.g. the *os.PathError behind an Io error).
type Error struct {
	Kind  ErrorKind
	cause error
}

// New creates an Error of the given kind with no wrapped cause.
func New(kind ErrorKind) *Error {
	return &Error{Kind: kind}
}

// Wrap creates an Error of the given kind wrapping cause, which Unwrap
// and errors.As will expose.
func Wrap(kind ErrorKind, cause error) *Error {
	return &Error{Kind: kind, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.cause)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error with the same Kind, so callers
// can write errors.Is(err, core.New(core.Timeout)) or compare against
// the package-level sentinels below.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return other.Kind == e.Kind
	}
	return false
}

// Sentinels for errors.Is comparisons against a bare kind, e.g.
// errors.Is(err, core.ErrTimeout).
var (
	ErrProtocol  = New(Protocol)
	ErrShortRead = New(ShortRead)
	ErrCorrupt   = New(Corrupt)
	ErrIo        = New(Io)
	ErrTimeout   = New(Timeout)
	ErrNack      = New(Nack)
	ErrCancel    = New(Cancel)
)
