// Package capability decides, once per process, whether ad loading is
// possible at all.
//
// Loading requires two things: a loader backend registered by some package in
// the binary (the structural half — sandboxed or preview builds simply link
// none), and a usable ad unit configuration from the environment (the
// configuration half). Probe evaluates both exactly once and caches the
// outcome; slot controllers consult it on every mount and settle into an
// unsupported state when it reports Unavailable.
package capability
