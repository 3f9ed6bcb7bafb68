// Package slot implements the ad-slot lifecycle controller.
//
// One Controller serves one visible feed position. The hosting list mounts
// it with an Identity (position plus logical resource key), and from then on
// the controller owns the whole lifecycle: probing the process capability,
// issuing at most one load, holding at most one live creative, and disposing
// it deterministically when the position unmounts, changes identity, or is
// torn down.
//
// # State Machine
//
// A mount moves through a closed set of phases:
//
//	Idle → Probing → Unsupported                 (process cannot load ads)
//	                ↘ Loading(t) → Ready(h)      (creative attached)
//	                             ↘ Failed(r)     (no fill, error, timeout)
//	any non-destroyed phase → Destroyed          (teardown, identity change)
//
// Unsupported and Failed are terminal for the mount; the hosting list forces
// a retry only by mounting again, which mints a fresh token and a fresh
// load. Destroyed is terminal for the instance.
//
// # Fencing
//
// Every load is issued under a monotonically increasing token. A settlement
// only takes effect while the controller is still Loading under that same
// token; anything else is stale. A stale settlement never mutates state, but
// a stale settlement that carries a creative still disposes it — the
// creative was constructed and somebody must release it. A boolean
// "destroyed" flag cannot express this: a slot recycled for a new identity
// is alive and loading something else while the old load is merely stale.
//
// # Event Ordering
//
// All events — mount, teardown, settlement, timeout — are applied under a
// per-instance mutex, one at a time, in arrival order. Teardown never waits
// for an in-flight load: Destroyed is reached synchronously and the load's
// eventual settlement is fenced. Subscribers are invoked in transition order
// while the controller holds its lock, so callbacks must not call back into
// the controller.
//
// # Errors
//
// No failure escapes this package as an error return. Loads that cannot
// happen or do not succeed surface as the Unsupported or Failed phase;
// disposal failures are swallowed, logged, and reported on the resource
// ledger.
package slot
