// Package errors provides structured error types for the adslot library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type carries a human-readable detail and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseLoad, errors.KindLoadFailed).
//		Detail("fetch creative for unit %q", unitID).
//		Cause(err).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.LoadFailed("unit-1", cause)
//	err := errors.ConfigInvalid("ad unit id is a placeholder")
//
// All errors implement the standard error interface and support errors.Is/As.
//
// The package also defines Reason, the closed set of failure reasons a slot
// controller surfaces to its subscribers. No error from this library ever
// escapes to the hosting application as anything other than a Reason on the
// controller's state; ReasonOf collapses arbitrary errors into that set.
package errors
