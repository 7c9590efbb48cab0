// Package errs provides the standardized error types surfaced by the
// application core.
//
// The taxonomy covers every failure the fulfillment operations can report:
//   - UnauthenticatedError: no resolvable active identity
//   - ForbiddenError: role or resource authorization failure
//   - ObjectNotFoundError: a referenced entity is absent
//   - InvalidStateError: operation against a terminal or incompatible state
//   - CapacityExceededError: a worker is at maximum workload
//   - AlreadyExistsError: uniqueness violation (e.g. duplicate rating)
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     input validation failures
//
// Each error type follows a consistent pattern:
//   - a sentinel error variable (e.g. ErrObjectNotFound)
//   - a struct type carrying the error details
//   - constructor functions with and without a cause
//   - Error() for formatting and Unwrap() so errors.Is matches the sentinel
//
// Callers branch on the sentinels, never on message text.
package errs
