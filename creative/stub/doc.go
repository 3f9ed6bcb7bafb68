// Package stub is an in-process loader backend with scriptable latency and
// failure cadence. It serves fake native ads for the feed simulator and for
// integration tests; it deliberately ignores fetch cancellation, the way ad
// SDKs without an abort API do, so late settlements exercise the slot
// controller's fencing path.
package stub
