// Package auth holds the static capability matrix that gates every
// operation in the application core.
//
// A Capability names an action; the Matrix maps each capability to the set
// of roles allowed to perform it. Handlers call Require before touching any
// aggregate: a missing or non-active identity yields an unauthenticated
// error, a role outside the allowed set yields a forbidden error.
// Resource-level checks (ownership, assignment) stay on the aggregates and
// run only after the matrix has passed.
package auth
