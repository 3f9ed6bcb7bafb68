package capability

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/feedlab/adslot/errors"
)

// Config is the process-level ad loading configuration, read from the
// environment. The unit ID is required; everything else has workable
// defaults.
type Config struct {
	UnitID             string        `env:"ADSLOT_UNIT_ID"`
	Muted              bool          `env:"ADSLOT_MUTED" envDefault:"true"`
	LoadTimeout        time.Duration `env:"ADSLOT_LOAD_TIMEOUT" envDefault:"0"`
	MaxConcurrentLoads int64         `env:"ADSLOT_MAX_CONCURRENT_LOADS" envDefault:"4"`
	RequestsPerSecond  float64       `env:"ADSLOT_REQUESTS_PER_SECOND" envDefault:"0"`
}

// ParseConfig reads Config from the environment.
func ParseConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.New(errors.PhaseProbe, errors.KindConfigInvalid).
			Detail("parse environment").
			Cause(err).
			Build()
	}
	return cfg, nil
}

// Placeholder values that ship in templates and sample configs. Seeing one
// means the app was built without a real ad unit, so loading must not start.
var placeholderUnitIDs = []string{
	"",
	"ad_unit_id",
	"replace_me",
	"your-ad-unit-id",
	"sample-unit",
}

func validateUnitID(id string) *errors.Error {
	norm := strings.ToLower(strings.TrimSpace(id))
	for _, p := range placeholderUnitIDs {
		if norm == p {
			return errors.ConfigInvalid("ad unit id is missing or a placeholder")
		}
	}
	return nil
}
