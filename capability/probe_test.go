package capability

import (
	"context"
	"testing"
	"time"

	"github.com/feedlab/adslot/creative"
	"github.com/feedlab/adslot/errors"
)

type nopLoader struct{}

func (nopLoader) Load(context.Context, creative.Request) <-chan creative.Result {
	ch := make(chan creative.Result, 1)
	ch <- creative.Result{Err: errors.LoadFailed("", nil)}
	return ch
}

func testFactory(Config) creative.Loader { return nopLoader{} }

func withFactory(t *testing.T, f Factory) {
	t.Helper()
	RegisterFactory(f)
	t.Cleanup(func() { RegisterFactory(nil) })
}

func TestEvaluate_NoFactory(t *testing.T) {
	withFactory(t, nil)
	t.Setenv("ADSLOT_UNIT_ID", "unit-1")

	got := evaluate()
	if got.Available {
		t.Fatal("available without a registered backend")
	}
	if got.Err == nil || got.Err.Kind != errors.KindCapabilityUnavailable {
		t.Fatalf("Err = %v, want capability_unavailable", got.Err)
	}
}

func TestEvaluate_PlaceholderUnitID(t *testing.T) {
	withFactory(t, testFactory)
	t.Setenv("ADSLOT_UNIT_ID", "REPLACE_ME")

	got := evaluate()
	if got.Available {
		t.Fatal("available with a placeholder unit id")
	}
	if got.Err == nil || got.Err.Kind != errors.KindConfigInvalid {
		t.Fatalf("Err = %v, want config_invalid", got.Err)
	}
}

func TestEvaluate_BadEnvironment(t *testing.T) {
	withFactory(t, testFactory)
	t.Setenv("ADSLOT_UNIT_ID", "unit-1")
	t.Setenv("ADSLOT_LOAD_TIMEOUT", "not-a-duration")

	got := evaluate()
	if got.Available {
		t.Fatal("available with an unparseable environment")
	}
	if got.Err == nil || got.Err.Kind != errors.KindConfigInvalid {
		t.Fatalf("Err = %v, want config_invalid", got.Err)
	}
}

func TestEvaluate_Available(t *testing.T) {
	withFactory(t, testFactory)
	t.Setenv("ADSLOT_UNIT_ID", "unit-1")
	t.Setenv("ADSLOT_MUTED", "false")
	t.Setenv("ADSLOT_LOAD_TIMEOUT", "5s")
	t.Setenv("ADSLOT_MAX_CONCURRENT_LOADS", "8")

	got := evaluate()
	if !got.Available {
		t.Fatalf("not available: %v", got.Err)
	}
	if got.NewLoader == nil {
		t.Fatal("available capability without a loader factory")
	}
	if got.Config.UnitID != "unit-1" {
		t.Errorf("UnitID = %q", got.Config.UnitID)
	}
	if got.Config.Muted {
		t.Error("Muted = true, want false")
	}
	if got.Config.LoadTimeout != 5*time.Second {
		t.Errorf("LoadTimeout = %v", got.Config.LoadTimeout)
	}
	if got.Config.MaxConcurrentLoads != 8 {
		t.Errorf("MaxConcurrentLoads = %d", got.Config.MaxConcurrentLoads)
	}
}

func TestValidateUnitID(t *testing.T) {
	tests := []struct {
		id   string
		want bool // want valid
	}{
		{"unit-1", true},
		{"ca-pub-1234/5678", true},
		{"", false},
		{"  ", false},
		{"AD_UNIT_ID", false},
		{"replace_me", false},
		{"Your-Ad-Unit-Id", false},
		{"sample-unit", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := validateUnitID(tt.id)
			if valid := err == nil; valid != tt.want {
				t.Errorf("validateUnitID(%q) valid = %v, want %v", tt.id, valid, tt.want)
			}
		})
	}
}

func TestProbe_EvaluatedOncePerProcess(t *testing.T) {
	withFactory(t, nil)
	t.Setenv("ADSLOT_UNIT_ID", "unit-1")

	first := Probe()
	if first.Available {
		t.Fatal("expected unavailable on first probe")
	}

	// A factory registered after the first probe is not observed; the
	// outcome is pinned for the process lifetime.
	RegisterFactory(testFactory)
	second := Probe()
	if second.Available {
		t.Fatal("probe re-evaluated after being cached")
	}
}
