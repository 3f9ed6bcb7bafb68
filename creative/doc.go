// Package creative performs the single-shot asynchronous fetch of an ad
// creative.
//
// A Loader issues exactly one outstanding fetch per Load call and never
// retries. The result channel always receives exactly one Result, even when
// the caller cancelled its context first: a creative constructed after the
// caller lost interest must still reach the caller so it can be disposed
// rather than leaked. Cancellation is therefore advisory; it lets a backend
// abort early but never silences the settlement.
//
// Process-wide fetch concurrency is bounded with a weighted semaphore and,
// optionally, a token-bucket rate limit toward the ad server.
package creative
