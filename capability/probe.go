package capability

import (
	"sync"

	"go.uber.org/zap"

	"github.com/feedlab/adslot"
	"github.com/feedlab/adslot/creative"
	"github.com/feedlab/adslot/errors"
)

// Factory builds the process's creative loader from the probed config.
type Factory func(Config) creative.Loader

// Capability is the probe outcome. When Available is false, Err explains
// why and NewLoader is nil; callers render nothing and never touch a loader.
type Capability struct {
	NewLoader Factory
	Err       *errors.Error
	Config    Config
	Available bool
}

var (
	regMu   sync.RWMutex
	factory Factory

	probeOnce sync.Once
	cached    Capability
)

// RegisterFactory installs the loader backend for this process. Backends
// call it from their setup path; it must happen before the first Probe,
// since later registrations are not observed.
func RegisterFactory(f Factory) {
	regMu.Lock()
	factory = f
	regMu.Unlock()
}

// Probe reports whether this process can load ads. The first call evaluates
// the registered factory and the environment; every later call returns the
// cached outcome. Probe never panics and has no side effects beyond the
// initial evaluation.
func Probe() Capability {
	probeOnce.Do(func() {
		cached = evaluate()
	})
	return cached
}

func evaluate() Capability {
	regMu.RLock()
	f := factory
	regMu.RUnlock()

	if f == nil {
		err := errors.CapabilityUnavailable("no loader backend registered")
		adslot.Logger().Debug("ad loading unavailable", zap.Error(err))
		return Capability{Err: err}
	}

	cfg, err := ParseConfig()
	if err != nil {
		perr, ok := err.(*errors.Error)
		if !ok {
			perr = errors.ConfigInvalid(err.Error())
		}
		adslot.Logger().Debug("ad loading unavailable", zap.Error(perr))
		return Capability{Err: perr}
	}

	if perr := validateUnitID(cfg.UnitID); perr != nil {
		adslot.Logger().Debug("ad loading unavailable", zap.Error(perr))
		return Capability{Err: perr}
	}

	adslot.Logger().Debug("ad loading available", zap.String("unit_id", cfg.UnitID))
	return Capability{
		NewLoader: f,
		Config:    cfg,
		Available: true,
	}
}
