package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the slot lifecycle the error occurred
type Phase string

const (
	PhaseProbe   Phase = "probe"   // capability and configuration check
	PhaseLoad    Phase = "load"    // creative fetch and construction
	PhaseAttach  Phase = "attach"  // binding a creative to a slot
	PhaseDispose Phase = "dispose" // creative release
	PhaseControl Phase = "control" // mount/teardown bookkeeping
)

// Kind categorizes the error
type Kind string

const (
	KindCapabilityUnavailable Kind = "capability_unavailable"
	KindConfigInvalid         Kind = "config_invalid"
	KindLoadFailed            Kind = "load_failed"
	KindTimeout               Kind = "timeout"
	KindDisposal              Kind = "disposal"
	KindDestroyed             Kind = "destroyed"
)

// Reason is the closed set of failure reasons surfaced on a slot's state.
// It is deliberately smaller than Kind: disposal and control errors are
// swallowed inside the library and never become a slot failure.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonCapabilityUnavailable
	ReasonConfigInvalid
	ReasonLoadFailed
	ReasonTimeout
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonCapabilityUnavailable:
		return "capability_unavailable"
	case ReasonConfigInvalid:
		return "config_invalid"
	case ReasonLoadFailed:
		return "load_failed"
	case ReasonTimeout:
		return "timeout"
	default:
		return fmt.Sprintf("reason(%d)", uint8(r))
	}
}

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	UnitID string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.UnitID != "" {
		b.WriteString(" unit ")
		b.WriteString(e.UnitID)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Reason collapses the error's kind into the closed failure-reason set.
func (e *Error) Reason() Reason {
	switch e.Kind {
	case KindCapabilityUnavailable:
		return ReasonCapabilityUnavailable
	case KindConfigInvalid:
		return ReasonConfigInvalid
	case KindTimeout:
		return ReasonTimeout
	default:
		return ReasonLoadFailed
	}
}

// ReasonOf extracts a Reason from an arbitrary error. Errors that did not
// originate in this library count as load failures.
func ReasonOf(err error) Reason {
	if err == nil {
		return ReasonNone
	}
	if e, ok := err.(*Error); ok {
		return e.Reason()
	}
	return ReasonLoadFailed
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// UnitID sets the ad unit identifier
func (b *Builder) UnitID(id string) *Builder {
	b.err.UnitID = id
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// CapabilityUnavailable creates an error for a process that cannot load ads
func CapabilityUnavailable(detail string) *Error {
	return &Error{
		Phase:  PhaseProbe,
		Kind:   KindCapabilityUnavailable,
		Detail: detail,
	}
}

// ConfigInvalid creates an error for missing or placeholder configuration
func ConfigInvalid(detail string) *Error {
	return &Error{
		Phase:  PhaseProbe,
		Kind:   KindConfigInvalid,
		Detail: detail,
	}
}

// LoadFailed creates a creative fetch/construction error
func LoadFailed(unitID string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindLoadFailed,
		UnitID: unitID,
		Cause:  cause,
	}
}

// Timeout creates an error for a load that did not settle in time
func Timeout(unitID string, detail string) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindTimeout,
		UnitID: unitID,
		Detail: detail,
	}
}

// DisposalFailed wraps a failed creative release. It is reported through
// observability hooks only and never surfaces as a slot failure.
func DisposalFailed(requestID string, cause error) *Error {
	return &Error{
		Phase:  PhaseDispose,
		Kind:   KindDisposal,
		Detail: fmt.Sprintf("dispose creative %s", requestID),
		Cause:  cause,
	}
}
