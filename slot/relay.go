package slot

import (
	"sync"

	"github.com/feedlab/adslot/resource"
)

// Relay forwards the creative-originated viewability signal to the
// caller-supplied observer, at most once per armed creative, however many
// times the underlying ad surfaces it. It disarms when its controller
// instance is destroyed and never fires afterwards.
type Relay struct {
	mu       sync.Mutex
	observer func()
	armed    *resource.Creative
	fired    bool
	shutdown bool
}

// NewRelay creates a disarmed relay.
func NewRelay() *Relay {
	return &Relay{}
}

// SetObserver installs the impression observer. Safe to call before or
// after the relay is armed; a nil observer drops signals without consuming
// the per-creative delivery.
func (r *Relay) SetObserver(fn func()) {
	r.mu.Lock()
	r.observer = fn
	r.mu.Unlock()
}

// Arm registers interest in signals from cr. Arming a new creative resets
// the delivery budget to one.
func (r *Relay) Arm(cr *resource.Creative) {
	r.mu.Lock()
	if r.shutdown {
		r.mu.Unlock()
		return
	}
	r.armed = cr
	r.fired = false
	r.mu.Unlock()

	cr.OnImpression(r.onSignal)
}

// Shutdown disarms the relay permanently for this controller instance.
func (r *Relay) Shutdown() {
	r.mu.Lock()
	r.armed = nil
	r.shutdown = true
	r.mu.Unlock()
}

// Reset re-enables a relay for a fresh controller instance. The registered
// observer survives; the armed creative and delivery budget do not.
func (r *Relay) Reset() {
	r.mu.Lock()
	r.armed = nil
	r.fired = false
	r.shutdown = false
	r.mu.Unlock()
}

func (r *Relay) onSignal() {
	r.mu.Lock()
	if r.shutdown || r.fired || r.armed == nil || r.observer == nil {
		r.mu.Unlock()
		return
	}
	r.fired = true
	fn := r.observer
	r.mu.Unlock()

	fn()
}
