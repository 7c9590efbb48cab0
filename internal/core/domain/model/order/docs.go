// Package order models the fulfillment lifecycle of a tailoring order.
//
// Order is the aggregate root. It owns the pricing breakdown, the
// assignment references, and the append-only progress ledger from which the
// current status is a denormalized projection: status always equals the
// stage of the most recently appended ProgressEntry, except for the initial
// pending state and the orthogonal cancelled state, which are statuses but
// never ledger stages.
//
// Status owns the transition rules, Urgency owns the pricing multiplier and
// due-date offset tables, and ProgressEntry is an immutable child entity.
package order
