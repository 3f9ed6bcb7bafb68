package slot

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/feedlab/adslot"
	"github.com/feedlab/adslot/capability"
	"github.com/feedlab/adslot/creative"
	"github.com/feedlab/adslot/errors"
	"github.com/feedlab/adslot/resource"
)

// Controller owns the lifecycle of one ad slot. It holds at most one
// outstanding load and at most one live creative; both are released
// deterministically when the mount ends. The zero Controller is not usable;
// construct with New.
type Controller struct {
	mu sync.Mutex

	probe     func() capability.Capability
	ledger    *resource.Ledger
	logger    *zap.Logger
	afterFunc func(time.Duration, func()) *time.Timer

	identity  Identity
	state     State
	lastToken Token
	loader    creative.Loader
	cfg       capability.Config
	cancel    context.CancelFunc
	timer     *time.Timer

	relay *Relay
	gate  Gate

	subs    []subscription
	nextSub int
}

type subscription struct {
	fn func(State)
	id int
}

// Option configures a Controller.
type Option func(*Controller)

// WithProbe replaces the capability probe. The default consults the
// process-wide cached probe.
func WithProbe(fn func() capability.Capability) Option {
	return func(c *Controller) { c.probe = fn }
}

// WithLogger sets the controller's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// New creates an idle controller whose creatives are accounted on ledger.
func New(ledger *resource.Ledger, opts ...Option) *Controller {
	c := &Controller{
		probe:     capability.Probe,
		ledger:    ledger,
		logger:    adslot.Logger(),
		afterFunc: time.AfterFunc,
		relay:     NewRelay(),
		state:     State{Phase: PhaseIdle},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MountOption adjusts a single mount.
type MountOption func(*mountConfig)

type mountConfig struct {
	muted *bool
}

// Muted overrides the configured autoplay-audio flag for this mount. The
// controller does not interpret it; it rides on the load request.
func Muted(m bool) MountOption {
	return func(mc *mountConfig) { mc.muted = &m }
}

// Mount binds the controller to an identity and starts the lifecycle.
//
// Mounting an in-progress or ready controller with the same identity is a
// no-op. Mounting it with a different identity tears the old slot down
// (subscribers observe Destroyed) and starts a fresh instance. Mounting an
// unsupported or failed controller retries with a fresh token and load.
// Mounting after an explicit Teardown is a no-op; a torn-down instance
// stays destroyed.
func (c *Controller) Mount(id Identity, opts ...MountOption) {
	var mc mountConfig
	for _, opt := range opts {
		opt(&mc)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state.Phase {
	case PhaseDestroyed:
		c.logger.Warn("mount on destroyed slot ignored", zap.Stringer("identity", id))
		return
	case PhaseProbing, PhaseLoading, PhaseReady:
		if id == c.identity {
			return
		}
		c.teardownLocked()
	}

	c.beginLocked(id, mc)
}

// Teardown ends the current instance, disposing any live creative and
// fencing any in-flight load. Idempotent; safe to call at any time.
func (c *Controller) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teardownLocked()
}

// Subscribe registers fn for every state transition, including into
// Destroyed. Transitions are delivered in order while the controller holds
// its lock; fn must not call back into the controller. The returned
// function unsubscribes.
func (c *Controller) Subscribe(fn func(State)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs = append(c.subs, subscription{fn: fn, id: id})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				break
			}
		}
		c.mu.Unlock()
	}
}

// RegisterImpressionObserver installs the at-most-once impression observer.
// Safe to call before or after the slot becomes ready.
func (c *Controller) RegisterImpressionObserver(fn func()) {
	c.relay.SetObserver(fn)
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Identity returns the identity of the current mount.
func (c *Controller) Identity() Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.identity
}

// Visible reports the presentation gate: false until the slot is ready,
// then true for the rest of the instance.
func (c *Controller) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gate.Observe(c.state)
}

// beginLocked starts a fresh instance under id. Caller holds c.mu.
func (c *Controller) beginLocked(id Identity, mc mountConfig) {
	c.identity = id
	c.gate = Gate{}
	c.relay.Reset()

	c.setStateLocked(State{Phase: PhaseProbing})

	outcome := c.probe()
	if !outcome.Available {
		c.logger.Debug("slot unsupported",
			zap.Stringer("identity", id),
			zap.Error(outcome.Err),
		)
		c.setStateLocked(State{Phase: PhaseUnsupported})
		return
	}
	c.cfg = outcome.Config
	if c.loader == nil {
		c.loader = outcome.NewLoader(outcome.Config)
	}

	c.lastToken++
	token := c.lastToken

	muted := c.cfg.Muted
	if mc.muted != nil {
		muted = *mc.muted
	}
	req := creative.NewRequest(c.cfg.UnitID, id.Position, id.ResourceKey, muted)

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.setStateLocked(State{Phase: PhaseLoading, Token: token})
	c.logger.Debug("slot loading",
		zap.Stringer("identity", id),
		zap.Uint64("token", uint64(token)),
		zap.String("request_id", req.ID),
	)

	ch := c.loader.Load(ctx, req)
	go func() {
		c.settle(token, <-ch)
	}()

	if c.cfg.LoadTimeout > 0 {
		c.timer = c.afterFunc(c.cfg.LoadTimeout, func() {
			c.timeout(token)
		})
	}
}

// settle applies a load settlement. Settlements for anything other than the
// current loading token are stale: they never mutate state, but a stale
// creative is still disposed, exactly once, by this fence.
func (c *Controller) settle(token Token, res creative.Result) {
	c.mu.Lock()
	if c.state.Phase != PhaseLoading || c.state.Token != token {
		c.mu.Unlock()
		if res.Creative != nil {
			c.logger.Debug("disposing orphaned creative",
				zap.String("request_id", res.Creative.RequestID()),
				zap.Uint64("token", uint64(token)),
			)
			c.dispose(res.Creative)
		}
		return
	}

	c.stopTimerLocked()
	c.cancelLoadLocked()

	if res.Err != nil || res.Creative == nil {
		reason := errors.ReasonOf(res.Err)
		if reason == errors.ReasonNone {
			reason = errors.ReasonLoadFailed
		}
		c.logger.Debug("slot failed",
			zap.Stringer("identity", c.identity),
			zap.Stringer("reason", reason),
			zap.Error(res.Err),
		)
		c.setStateLocked(State{Phase: PhaseFailed, Reason: reason})
		c.mu.Unlock()
		return
	}

	cr := res.Creative
	cr.Attach()
	c.relay.Arm(cr)
	c.setStateLocked(State{Phase: PhaseReady, Creative: cr})
	c.logger.Debug("slot ready",
		zap.Stringer("identity", c.identity),
		zap.String("request_id", cr.RequestID()),
	)
	c.mu.Unlock()
}

// timeout fails a load that has not settled. The eventual real settlement
// finds the phase no longer Loading and is fenced like any stale result.
func (c *Controller) timeout(token Token) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Phase != PhaseLoading || c.state.Token != token {
		return
	}
	c.cancelLoadLocked()
	c.logger.Debug("slot load timed out",
		zap.Stringer("identity", c.identity),
		zap.Uint64("token", uint64(token)),
	)
	c.setStateLocked(State{Phase: PhaseFailed, Reason: errors.ReasonTimeout})
}

func (c *Controller) teardownLocked() {
	if c.state.Phase == PhaseDestroyed {
		return
	}

	c.stopTimerLocked()
	c.cancelLoadLocked()
	c.relay.Shutdown()

	var live *resource.Creative
	if c.state.Phase == PhaseReady {
		live = c.state.Creative
	}

	c.setStateLocked(State{Phase: PhaseDestroyed})
	if live != nil {
		c.dispose(live)
	}
}

// dispose releases a creative, swallowing any failure. Disposal errors are
// logged and surface on the resource ledger, never to the host.
func (c *Controller) dispose(cr *resource.Creative) {
	if err := cr.Dispose(); err != nil {
		c.logger.Warn("creative disposal failed",
			zap.String("request_id", cr.RequestID()),
			zap.Error(err),
		)
	}
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) cancelLoadLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) setStateLocked(s State) {
	c.state = s
	for _, sub := range c.subs {
		sub.fn(s)
	}
}
