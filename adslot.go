package adslot

// Disposer releases a loaded creative. Implementations must tolerate being
// called more than once; only the first call performs work.
type Disposer interface {
	Dispose() error
}

// ImpressionSource exposes the creative-originated viewability signal.
// At most one sink can be registered; signals raised before a sink is
// registered are dropped.
type ImpressionSource interface {
	OnImpression(fn func())
}
