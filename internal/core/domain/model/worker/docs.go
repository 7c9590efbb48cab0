// Package worker models the production workforce: the capacity-bearing
// WorkerProfile aggregate, the immutable Rating entity customers leave
// after delivery, and the Badge set derived from rating history.
//
// Profile owns the hard capacity gate: TakeAssignment refuses to exceed
// maxWorkload, and the persistence layer serializes the check-then-
// increment per profile row. Availability is a separate self-reported flag
// and never gates assignment. Badge derivation itself lives in the
// services package; Profile only enforces the additive set semantics.
package worker
