package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindLoadFailed,
				UnitID: "unit-42",
				Detail: "fetch creative",
				Cause:  errors.New("connection reset"),
			},
			contains: []string{"[load]", "load_failed", "unit-42", "fetch creative", "caused by", "connection reset"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseProbe,
				Kind:  KindCapabilityUnavailable,
			},
			contains: []string{"[probe]", "capability_unavailable"},
		},
		{
			name:     "disposal error",
			err:      DisposalFailed("req-1", errors.New("surface busy")),
			contains: []string{"[dispose]", "disposal", "req-1", "surface busy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := LoadFailed("unit-1", cause)

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := Timeout("unit-1", "no settlement after 5s")

	if !errors.Is(err, &Error{Phase: PhaseLoad, Kind: KindTimeout}) {
		t.Error("expected Is to match on phase and kind")
	}
	if errors.Is(err, &Error{Phase: PhaseLoad, Kind: KindLoadFailed}) {
		t.Error("expected Is to reject a different kind")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("dns failure")
	err := New(PhaseLoad, KindLoadFailed).
		UnitID("unit-7").
		Detail("attempt %d", 1).
		Cause(cause).
		Build()

	if err.UnitID != "unit-7" {
		t.Errorf("UnitID = %q", err.UnitID)
	}
	if err.Detail != "attempt 1" {
		t.Errorf("Detail = %q", err.Detail)
	}
	if !errors.Is(err, &Error{Phase: PhaseLoad, Kind: KindLoadFailed}) {
		t.Error("builder error does not match phase/kind")
	}
	if errors.Unwrap(err) != cause {
		t.Error("builder did not set cause")
	}
}

func TestReasonOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Reason
	}{
		{"nil", nil, ReasonNone},
		{"capability", CapabilityUnavailable("no backend"), ReasonCapabilityUnavailable},
		{"config", ConfigInvalid("placeholder unit id"), ReasonConfigInvalid},
		{"timeout", Timeout("unit-1", ""), ReasonTimeout},
		{"load", LoadFailed("unit-1", nil), ReasonLoadFailed},
		{"disposal collapses to load", DisposalFailed("req-1", nil), ReasonLoadFailed},
		{"foreign error", errors.New("boom"), ReasonLoadFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReasonOf(tt.err); got != tt.want {
				t.Errorf("ReasonOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReason_String(t *testing.T) {
	if ReasonTimeout.String() != "timeout" {
		t.Errorf("ReasonTimeout.String() = %q", ReasonTimeout.String())
	}
	if Reason(99).String() != "reason(99)" {
		t.Errorf("unknown reason String() = %q", Reason(99).String())
	}
}
