package creative

import (
	"context"

	"github.com/rs/xid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/feedlab/adslot"
	"github.com/feedlab/adslot/errors"
	"github.com/feedlab/adslot/resource"
)

// Request describes one creative fetch. The muted flag and resource key are
// opaque to the loader; they are carried for the backend and for logging.
type Request struct {
	ID          string
	UnitID      string
	ResourceKey string
	Position    int
	Muted       bool
}

// NewRequest mints a Request with a fresh request ID.
func NewRequest(unitID string, position int, resourceKey string, muted bool) Request {
	return Request{
		ID:          xid.New().String(),
		UnitID:      unitID,
		ResourceKey: resourceKey,
		Position:    position,
		Muted:       muted,
	}
}

// Result is the single settlement of a Load call. Exactly one of Creative
// and Err is set.
type Result struct {
	Creative *resource.Creative
	Err      error
}

// Loader fetches creatives. Implementations must deliver exactly one Result
// on the returned channel and must not drop it on cancellation.
type Loader interface {
	Load(ctx context.Context, req Request) <-chan Result
}

// FetchFunc is the backend half of a loader: it constructs the creative.
// When it returns a non-nil creative alongside an error-free settlement, the
// caller owns the creative. A backend that constructed a creative despite a
// cancelled context must still return it.
type FetchFunc func(ctx context.Context, req Request) (*resource.Creative, error)

// Option configures a loader.
type Option func(*loader)

// WithMaxConcurrent bounds in-flight fetches across all slots. n <= 0 means
// unbounded.
func WithMaxConcurrent(n int64) Option {
	return func(l *loader) {
		if n > 0 {
			l.sem = semaphore.NewWeighted(n)
		} else {
			l.sem = nil
		}
	}
}

// WithRateLimit caps fetch starts per second toward the ad server. rps <= 0
// means unlimited.
func WithRateLimit(rps float64) Option {
	return func(l *loader) {
		if rps > 0 {
			l.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		} else {
			l.limiter = nil
		}
	}
}

type loader struct {
	fetch   FetchFunc
	sem     *semaphore.Weighted
	limiter *rate.Limiter
}

// NewLoader builds a Loader around a backend fetch function. By default
// fetches are limited to four in flight and not rate limited.
func NewLoader(fetch FetchFunc, opts ...Option) Loader {
	l := &loader{
		fetch: fetch,
		sem:   semaphore.NewWeighted(4),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *loader) Load(ctx context.Context, req Request) <-chan Result {
	// Buffered so the settlement never blocks on a caller that already
	// fenced this load out.
	ch := make(chan Result, 1)

	go func() {
		log := adslot.Logger().With(
			zap.String("request_id", req.ID),
			zap.String("unit_id", req.UnitID),
			zap.Int("position", req.Position),
		)

		if l.limiter != nil {
			if err := l.limiter.Wait(ctx); err != nil {
				log.Debug("load aborted before fetch", zap.Error(err))
				ch <- Result{Err: errors.LoadFailed(req.UnitID, err)}
				return
			}
		}
		if l.sem != nil {
			if err := l.sem.Acquire(ctx, 1); err != nil {
				log.Debug("load aborted before fetch", zap.Error(err))
				ch <- Result{Err: errors.LoadFailed(req.UnitID, err)}
				return
			}
			defer l.sem.Release(1)
		}

		cr, err := l.fetch(ctx, req)
		if err != nil {
			if cr != nil {
				// A backend must not hand back both; treat the creative as
				// constructed and let the caller's fence dispose it.
				ch <- Result{Creative: cr}
				return
			}
			if _, ok := err.(*errors.Error); !ok {
				err = errors.LoadFailed(req.UnitID, err)
			}
			log.Debug("load failed", zap.Error(err))
			ch <- Result{Err: err}
			return
		}

		log.Debug("load settled")
		ch <- Result{Creative: cr}
	}()

	return ch
}
