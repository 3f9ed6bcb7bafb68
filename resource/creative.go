package resource

import (
	"sync"

	"github.com/feedlab/adslot"
	"github.com/feedlab/adslot/errors"
)

// Creative is the loaded representation of a remote ad. It is constructed by
// a loader backend via Ledger.New and owned by exactly one slot controller
// mount until disposed.
type Creative struct {
	ledger    *Ledger
	body      any
	dispose   func() error
	requestID string
	unitID    string

	mu       sync.Mutex
	sink     func()
	attached bool
	disposed bool
}

var (
	_ adslot.Disposer         = (*Creative)(nil)
	_ adslot.ImpressionSource = (*Creative)(nil)
)

// RequestID returns the load request identifier this creative answered.
func (c *Creative) RequestID() string { return c.requestID }

// UnitID returns the ad unit the creative was served for.
func (c *Creative) UnitID() string { return c.unitID }

// Body returns the backend-defined creative payload.
func (c *Creative) Body() any { return c.body }

// Attach marks the creative as bound to a rendering surface. Impression
// signals raised before Attach are dropped; the constraint that a freshly
// constructed creative has no observable side effects belongs to the caller.
func (c *Creative) Attach() {
	c.mu.Lock()
	if c.attached || c.disposed {
		c.mu.Unlock()
		return
	}
	c.attached = true
	c.mu.Unlock()

	c.ledger.notify(Event{
		Type:      EventAttached,
		RequestID: c.requestID,
		UnitID:    c.unitID,
	})
}

// Dispose releases the creative. Only the first call performs work; later
// calls return nil. A failing release is recorded on the ledger and wrapped,
// but the creative still counts as disposed.
func (c *Creative) Dispose() error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return nil
	}
	c.disposed = true
	c.sink = nil
	fn := c.dispose
	c.mu.Unlock()

	var err error
	if fn != nil {
		err = fn()
	}
	c.ledger.settle(c, err)
	if err != nil {
		return errors.DisposalFailed(c.requestID, err)
	}
	return nil
}

// OnImpression registers the single impression sink. The slot's impression
// relay is the only expected caller; registering a new sink replaces the
// previous one.
func (c *Creative) OnImpression(fn func()) {
	c.mu.Lock()
	if !c.disposed {
		c.sink = fn
	}
	c.mu.Unlock()
}

// SignalImpression surfaces a viewability signal from the underlying ad.
// Backends may call it any number of times; delivery cardinality is the
// relay's concern. Signals before Attach or after Dispose are dropped.
func (c *Creative) SignalImpression() {
	c.mu.Lock()
	fn := c.sink
	ok := c.attached && !c.disposed
	c.mu.Unlock()

	if ok && fn != nil {
		fn()
	}
}
