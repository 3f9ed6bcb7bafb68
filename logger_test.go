package adslot

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_DefaultIsNop(t *testing.T) {
	if Logger() == nil {
		t.Fatal("Logger() returned nil")
	}
	// Must not panic or write anywhere.
	Logger().Info("silent")
}

func TestSetLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	Logger().Debug("hello")
	if logs.Len() != 1 {
		t.Fatalf("captured %d entries, want 1", logs.Len())
	}

	SetLogger(nil)
	Logger().Debug("dropped")
	if logs.Len() != 1 {
		t.Fatal("nil logger did not silence output")
	}
}
