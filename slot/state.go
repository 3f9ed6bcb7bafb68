package slot

import (
	"fmt"

	"github.com/feedlab/adslot/errors"
	"github.com/feedlab/adslot/resource"
)

// Identity names which feed position and which logical resource request a
// controller currently serves. Mounting a live controller with a different
// identity is equivalent to tearing down the old slot and creating a new
// one.
type Identity struct {
	ResourceKey string
	Position    int
}

func (id Identity) String() string {
	return fmt.Sprintf("%d/%s", id.Position, id.ResourceKey)
}

// Token fences asynchronous load settlements. Tokens increase monotonically
// per controller; minting a new one invalidates every earlier load.
type Token uint64

// Phase enumerates the controller's lifecycle states.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseProbing
	PhaseUnsupported
	PhaseLoading
	PhaseReady
	PhaseFailed
	PhaseDestroyed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseProbing:
		return "probing"
	case PhaseUnsupported:
		return "unsupported"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	case PhaseDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// State is the controller's current lifecycle position. Exactly one phase is
// current at a time; Token is meaningful while loading, Creative while
// ready, Reason while failed.
type State struct {
	Creative *resource.Creative
	Token    Token
	Reason   errors.Reason
	Phase    Phase
}
