package resource

import (
	"sync"
)

// Event types for creative lifecycle notifications.
type EventType uint8

const (
	EventConstructed EventType = iota
	EventAttached
	EventDisposed
	EventDisposeFailed
)

// Event represents a creative lifecycle event.
type Event struct {
	Err       error
	RequestID string
	UnitID    string
	Type      EventType
}

// Observer receives notifications about creative lifecycle events.
type Observer interface {
	OnCreativeEvent(Event)
}

// Ledger accounts for every creative constructed in the process. It enforces
// nothing by itself; it is the witness that owners dispose exactly once.
type Ledger struct {
	live        map[string]*Creative
	constructed uint64
	disposed    uint64
	mu          sync.Mutex

	observers []Observer
	obsMu     sync.RWMutex
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		live: make(map[string]*Creative),
	}
}

// New constructs a creative and records it as live. dispose runs on the
// first Dispose call; it may be nil for creatives with nothing to release.
func (l *Ledger) New(requestID, unitID string, body any, dispose func() error) *Creative {
	c := &Creative{
		ledger:    l,
		body:      body,
		dispose:   dispose,
		requestID: requestID,
		unitID:    unitID,
	}

	l.mu.Lock()
	l.live[requestID] = c
	l.constructed++
	l.mu.Unlock()

	l.notify(Event{
		Type:      EventConstructed,
		RequestID: requestID,
		UnitID:    unitID,
	})

	return c
}

// Live returns the number of constructed creatives not yet disposed.
func (l *Ledger) Live() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.live)
}

// Counts returns the process-lifetime totals of constructed and disposed
// creatives. A steady-state library user expects the two to converge.
func (l *Ledger) Counts() (constructed, disposed uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.constructed, l.disposed
}

// Subscribe adds an observer for lifecycle events.
func (l *Ledger) Subscribe(o Observer) {
	l.obsMu.Lock()
	defer l.obsMu.Unlock()
	l.observers = append(l.observers, o)
}

// Unsubscribe removes an observer.
func (l *Ledger) Unsubscribe(o Observer) {
	l.obsMu.Lock()
	defer l.obsMu.Unlock()
	for i, obs := range l.observers {
		if obs == o {
			l.observers = append(l.observers[:i], l.observers[i+1:]...)
			return
		}
	}
}

// settle moves a creative off the live set after its dispose ran.
func (l *Ledger) settle(c *Creative, disposeErr error) {
	l.mu.Lock()
	delete(l.live, c.requestID)
	l.disposed++
	l.mu.Unlock()

	e := Event{
		Type:      EventDisposed,
		RequestID: c.requestID,
		UnitID:    c.unitID,
	}
	if disposeErr != nil {
		e.Type = EventDisposeFailed
		e.Err = disposeErr
	}
	l.notify(e)
}

func (l *Ledger) notify(e Event) {
	l.obsMu.RLock()
	defer l.obsMu.RUnlock()
	for _, o := range l.observers {
		o.OnCreativeEvent(e)
	}
}
