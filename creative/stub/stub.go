package stub

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/feedlab/adslot/capability"
	"github.com/feedlab/adslot/creative"
	"github.com/feedlab/adslot/errors"
	"github.com/feedlab/adslot/resource"
)

// NativeAd is the fake creative payload served by this backend.
type NativeAd struct {
	Headline     string
	Advertiser   string
	CallToAction string
}

// Backend serves scripted creatives out of process memory.
type Backend struct {
	ledger *resource.Ledger

	mu        sync.Mutex
	latency   time.Duration
	failEvery int
	served    int
}

// Option configures a Backend.
type Option func(*Backend)

// WithLatency sets the simulated fetch latency.
func WithLatency(d time.Duration) Option {
	return func(b *Backend) { b.latency = d }
}

// WithFailEvery makes every nth fetch fail. n <= 0 disables failures.
func WithFailEvery(n int) Option {
	return func(b *Backend) { b.failEvery = n }
}

// New creates a backend constructing creatives on the given ledger.
func New(ledger *resource.Ledger, opts ...Option) *Backend {
	b := &Backend{
		ledger:  ledger,
		latency: 150 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register installs this backend as the process's loader factory. Call it
// before the first slot mounts.
func (b *Backend) Register() {
	capability.RegisterFactory(func(cfg capability.Config) creative.Loader {
		return creative.NewLoader(b.Fetch,
			creative.WithMaxConcurrent(cfg.MaxConcurrentLoads),
			creative.WithRateLimit(cfg.RequestsPerSecond),
		)
	})
}

// Fetch builds a fake native ad after the scripted latency. It does not
// honor ctx cancellation: like a real ad SDK with no abort API, a request
// that was started settles, and the caller's fence decides what happens to
// the result.
func (b *Backend) Fetch(_ context.Context, req creative.Request) (*resource.Creative, error) {
	b.mu.Lock()
	b.served++
	n := b.served
	latency := b.latency
	failEvery := b.failEvery
	b.mu.Unlock()

	time.Sleep(latency)

	if failEvery > 0 && n%failEvery == 0 {
		return nil, errors.LoadFailed(req.UnitID, fmt.Errorf("no fill for request %d", n))
	}

	body := NativeAd{
		Headline:     fmt.Sprintf("Sponsored #%d", n),
		Advertiser:   "Feedlab Coffee Co.",
		CallToAction: "Try it now",
	}
	return b.ledger.New(req.ID, req.UnitID, body, func() error { return nil }), nil
}

// Served reports how many fetches the backend has answered.
func (b *Backend) Served() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.served
}
