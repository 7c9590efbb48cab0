package order

import (
	"fmt"

	"atelier/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// The production path runs
//
//	pending -> confirmed -> fabric_received -> cutting -> sewing
//	        -> fitting -> finishing -> ready -> delivered
//
// with cancelled reachable from any non-terminal state. Progress updates
// may target any production stage without enforcing single-step ordering;
// terminality is the only hard transition guard. Delivered and cancelled
// accept no further transitions.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending is the creation-time default before confirmation.
	StatusPending

	// StatusConfirmed through StatusDelivered are the production stages,
	// recorded in the progress ledger as they are reached.
	StatusConfirmed
	StatusFabricReceived
	StatusCutting
	StatusSewing
	StatusFitting
	StatusFinishing
	StatusReady
	StatusDelivered

	// StatusCancelled is the orthogonal terminal state.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "unknown",
		StatusPending:        "pending",
		StatusConfirmed:      "confirmed",
		StatusFabricReceived: "fabric_received",
		StatusCutting:        "cutting",
		StatusSewing:         "sewing",
		StatusFitting:        "fitting",
		StatusFinishing:      "finishing",
		StatusReady:          "ready",
		StatusDelivered:      "delivered",
		StatusCancelled:      "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:        "pending",
		StatusConfirmed:      "confirmed",
		StatusFabricReceived: "fabric_received",
		StatusCutting:        "cutting",
		StatusSewing:         "sewing",
		StatusFitting:        "fitting",
		StatusFinishing:      "finishing",
		StatusReady:          "ready",
		StatusDelivered:      "delivered",
		StatusCancelled:      "cancelled",
	}
}

// StatusFromString parses a status name as stored in persistence or
// received from external callers.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects StatusUnknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case status name used in persistence and
// transport.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status accepts no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// IsProgressStage reports whether the status may appear as a ledger stage.
// Pending and cancelled are statuses only, never recorded stages.
func (s Status) IsProgressStage() bool {
	return s >= StatusConfirmed && s <= StatusDelivered
}

// Advance validates a transition to the target production stage and returns
// the new status. Any non-terminal status may advance to any production
// stage; single-step ordering is deliberately not enforced.
func (s Status) Advance(target Status) (Status, error) {
	if s.IsTerminal() {
		return StatusUnknown, errs.NewInvalidStateError("order", s.String())
	}
	if !target.IsProgressStage() {
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"stage is invalid", fmt.Errorf("%s is not a valid progress stage", target))
	}
	return target, nil
}

// Cancel validates the transition to cancelled and returns the new status.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() {
		return StatusUnknown, errs.NewInvalidStateError("order", s.String())
	}
	return StatusCancelled, nil
}
