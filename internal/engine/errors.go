package engine

import "github.com/pkg/errors"

// Kind classifies engine-level failures so callers can switch on cause
// without string matching.
type Kind int

const (
	// ErrNoDevice means the backend reported no output device at all.
	ErrNoDevice Kind = iota
	// ErrDeviceQuery means enumerating device configs failed.
	ErrDeviceQuery
	// ErrNoConfig means no enumerated config could be opened, or none
	// was offered.
	ErrNoConfig
	// ErrIncompatibleChannels means new_sound was asked to wrap a source
	// whose channel count can't be reconciled with the output (neither
	// side is mono and they differ).
	ErrIncompatibleChannels
)

func (k Kind) String() string {
	switch k {
	case ErrNoDevice:
		return "no output device"
	case ErrDeviceQuery:
		return "device query failed"
	case ErrNoConfig:
		return "no supported device configuration"
	case ErrIncompatibleChannels:
		return "incompatible source channel count"
	default:
		return "unknown engine error"
	}
}

// Error wraps a Kind with an optional underlying cause, preserving both
// errors.Is/As-style unwrapping (via pkg/errors.Cause) and a stable Kind
// to switch on.
type Error struct {
	Kind  Kind
	cause error
}

func newError(kind Kind, cause error) *Error {
	if cause != nil {
		cause = errors.Wrap(cause, kind.String())
	}
	return &Error{Kind: kind, cause: cause}
}

// NewError builds an *Error for callers outside the package (the device
// Supervisor surfaces ErrDeviceQuery/ErrNoConfig this way).
func NewError(kind Kind, cause error) *Error {
	return newError(kind, cause)
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.cause.Error()
	}
	return e.Kind.String()
}

// Cause returns the wrapped error, or nil if Error was constructed
// without one.
func (e *Error) Cause() error {
	return errors.Cause(e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}
