// Package errs provides standardized error types shared across the chat
// commerce service.
//
// Each error type follows the same pattern:
//   - a sentinel error variable (e.g. ErrObjectNotFound)
//   - a struct carrying the error details
//   - constructor functions with and without an underlying cause
//   - Error() producing a single-line message
//   - Unwrap() returning the sentinel so errors.Is works across layers
//
// Domain rules that do not fit these shapes declare their own package-level
// sentinels instead of extending this package.
package errs
