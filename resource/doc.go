// Package resource provides creative handle management.
//
// A Creative is the disposable, loaded representation of a remote ad. Every
// creative is exclusively owned by the slot controller mount that received
// it and is disposed exactly once; the Ledger is the process-wide account of
// that guarantee.
//
// # Creative Lifecycle
//
// A creative moves through three points on the ledger:
//
//	constructed - the loader backend built it (ledger.New)
//	attached    - a slot controller bound it to a rendering surface
//	disposed    - the owning mount (or the fence that orphaned it) released it
//
// # Ledger
//
// The Ledger tracks every creative ever constructed in the process:
//
//	ledger := resource.NewLedger()
//
//	// Backends construct creatives through the ledger
//	cr := ledger.New(requestID, unitID, body, disposeFn)
//
//	// Live creatives at any moment
//	n := ledger.Live()
//
//	// Totals over the process lifetime
//	constructed, disposed := ledger.Counts()
//
// # Observers
//
// Register observers to track creative lifecycle events:
//
//	ledger.Subscribe(observerFn)
//
// Observers see construction, attachment, disposal and disposal failures.
// Disposal failures are swallowed by owners; the observer event is the only
// place they surface, which makes the ledger the library's observability
// hook for leak and double-dispose detection.
//
// # Memory Management
//
// Creatives are not garbage collected into disposal. The owning controller
// must call Dispose when the mount ends; a creative that is never disposed
// shows up as a permanent Live() entry.
package resource
