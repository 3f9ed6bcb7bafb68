package resource

import (
	"errors"
	"sync"
	"testing"
)

type testObserver struct {
	mu     sync.Mutex
	events []Event
}

func (o *testObserver) OnCreativeEvent(e Event) {
	o.mu.Lock()
	o.events = append(o.events, e)
	o.mu.Unlock()
}

func (o *testObserver) snapshot() []Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Event(nil), o.events...)
}

func TestLedger_ConstructAndDispose(t *testing.T) {
	ledger := NewLedger()

	disposed := 0
	cr := ledger.New("req-1", "unit-1", "payload", func() error {
		disposed++
		return nil
	})

	if cr.RequestID() != "req-1" || cr.UnitID() != "unit-1" {
		t.Fatalf("unexpected identity: %q %q", cr.RequestID(), cr.UnitID())
	}
	if cr.Body() != "payload" {
		t.Fatalf("Body() = %v", cr.Body())
	}
	if ledger.Live() != 1 {
		t.Fatalf("Live() = %d, want 1", ledger.Live())
	}

	if err := cr.Dispose(); err != nil {
		t.Fatalf("Dispose failed: %v", err)
	}
	if disposed != 1 {
		t.Fatalf("dispose fn ran %d times, want 1", disposed)
	}
	if ledger.Live() != 0 {
		t.Fatalf("Live() = %d after dispose, want 0", ledger.Live())
	}

	constructed, disposedN := ledger.Counts()
	if constructed != 1 || disposedN != 1 {
		t.Fatalf("Counts() = (%d, %d), want (1, 1)", constructed, disposedN)
	}
}

func TestCreative_DisposeExactlyOnce(t *testing.T) {
	ledger := NewLedger()

	disposed := 0
	cr := ledger.New("req-1", "unit-1", nil, func() error {
		disposed++
		return nil
	})

	for i := 0; i < 5; i++ {
		if err := cr.Dispose(); err != nil {
			t.Fatalf("Dispose #%d failed: %v", i, err)
		}
	}

	if disposed != 1 {
		t.Fatalf("dispose fn ran %d times, want 1", disposed)
	}
	_, disposedN := ledger.Counts()
	if disposedN != 1 {
		t.Fatalf("ledger counted %d disposals, want 1", disposedN)
	}
}

func TestCreative_DisposeFailure(t *testing.T) {
	ledger := NewLedger()
	obs := &testObserver{}
	ledger.Subscribe(obs)

	cause := errors.New("surface busy")
	cr := ledger.New("req-1", "unit-1", nil, func() error {
		return cause
	})

	err := cr.Dispose()
	if err == nil {
		t.Fatal("expected wrapped disposal error")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("disposal error does not wrap cause: %v", err)
	}

	// A failing release still counts as disposed.
	if ledger.Live() != 0 {
		t.Fatalf("Live() = %d, want 0", ledger.Live())
	}
	if err := cr.Dispose(); err != nil {
		t.Fatalf("second Dispose should be a no-op, got %v", err)
	}

	events := obs.snapshot()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[1].Type != EventDisposeFailed {
		t.Fatalf("expected EventDisposeFailed, got %v", events[1].Type)
	}
	if events[1].Err == nil {
		t.Fatal("EventDisposeFailed should carry the cause")
	}
}

func TestLedger_Observer(t *testing.T) {
	ledger := NewLedger()
	obs := &testObserver{}
	ledger.Subscribe(obs)

	cr := ledger.New("req-1", "unit-1", nil, nil)
	cr.Attach()
	if err := cr.Dispose(); err != nil {
		t.Fatalf("Dispose failed: %v", err)
	}

	events := obs.snapshot()
	want := []EventType{EventConstructed, EventAttached, EventDisposed}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i, w := range want {
		if events[i].Type != w {
			t.Errorf("event %d: got %v, want %v", i, events[i].Type, w)
		}
		if events[i].RequestID != "req-1" {
			t.Errorf("event %d: wrong request id %q", i, events[i].RequestID)
		}
	}

	ledger.Unsubscribe(obs)
	ledger.New("req-2", "unit-1", nil, nil)
	if len(obs.snapshot()) != len(want) {
		t.Fatal("should not receive events after Unsubscribe")
	}
}

func TestCreative_ImpressionGating(t *testing.T) {
	ledger := NewLedger()
	cr := ledger.New("req-1", "unit-1", nil, nil)

	fired := 0
	cr.OnImpression(func() { fired++ })

	// Not attached yet: dropped.
	cr.SignalImpression()
	if fired != 0 {
		t.Fatal("impression delivered before Attach")
	}

	cr.Attach()
	cr.SignalImpression()
	cr.SignalImpression()
	if fired != 2 {
		t.Fatalf("expected passthrough of 2 signals, got %d", fired)
	}

	if err := cr.Dispose(); err != nil {
		t.Fatalf("Dispose failed: %v", err)
	}
	cr.SignalImpression()
	if fired != 2 {
		t.Fatal("impression delivered after Dispose")
	}
}

func TestCreative_AttachAfterDispose(t *testing.T) {
	ledger := NewLedger()
	obs := &testObserver{}
	ledger.Subscribe(obs)

	cr := ledger.New("req-1", "unit-1", nil, nil)
	if err := cr.Dispose(); err != nil {
		t.Fatalf("Dispose failed: %v", err)
	}
	cr.Attach()

	for _, e := range obs.snapshot() {
		if e.Type == EventAttached {
			t.Fatal("disposed creative must not attach")
		}
	}
}
