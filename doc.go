// Package adslot manages the lifecycle of ad creatives hosted inside a
// virtualized, fast-scrolling feed.
//
// An ad slot is a single feed position that can host one asynchronously
// loaded creative at a time. The hosting list mounts a slot with an
// identity, the slot probes whether the process can load ads at all,
// issues at most one load, and owns the resulting creative until the
// position scrolls away, changes identity, or is torn down. The hard
// requirements are racing teardown against in-flight loads without
// leaking or double-disposing a creative, and degrading to "render
// nothing" when the loading capability is absent.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	adslot/           Root package with Disposer/ImpressionSource interfaces
//	├── slot/         Slot lifecycle controller, fencing tokens, presentation
//	│                 gate and impression relay
//	├── creative/     Single-shot asynchronous creative loader
//	├── creative/stub/ Scriptable in-process loader backend for tests and demos
//	├── resource/     Creative handles and the process-wide disposal ledger
//	├── capability/   Once-per-process capability and configuration probe
//	└── errors/       Structured error types and the failure taxonomy
//
// # Quick Start
//
// Mount a slot and react to its state:
//
//	ledger := resource.NewLedger()
//	ctrl := slot.New(ledger)
//	defer ctrl.Teardown()
//
//	unsub := ctrl.Subscribe(func(s slot.State) {
//	    if s.Phase == slot.PhaseReady {
//	        render(s.Creative)
//	    }
//	})
//	defer unsub()
//
//	ctrl.Mount(slot.Identity{Position: 5, ResourceKey: "feed-page-1"})
//
// # Capability
//
// Loading is optional per process. A backend registers a loader factory with
// the capability package; if none is registered, or the ad unit configuration
// is missing or a placeholder, every slot settles into PhaseUnsupported and
// renders nothing. The probe runs once per process and is cached.
//
// # Ownership Model
//
// A creative is exclusively owned by the controller mount that received it
// and is disposed exactly once, no matter how the mount ends: teardown while
// ready, teardown while the load is still in flight (the late result is
// fenced and its creative disposed as an orphan), or an identity change that
// recycles the slot for a different feed item.
//
// # Thread Safety
//
// Controllers serialize all events (mount, teardown, load settlement) under a
// per-instance mutex; state change callbacks are invoked in transition order
// and must not call back into the controller.
package adslot
