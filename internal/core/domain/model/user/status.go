package user

import (
	"fmt"

	"atelier/internal/pkg/errs"
)

// Status represents the account lifecycle state. Only active accounts may
// perform operations; suspended and inactive accounts fail authentication
// regardless of role.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusActive accounts may act.
	StatusActive

	// StatusSuspended accounts are temporarily blocked by an admin.
	StatusSuspended

	// StatusInactive accounts are deactivated.
	StatusInactive
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusActive:    "active",
		StatusSuspended: "suspended",
		StatusInactive:  "inactive",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusActive:    "active",
		StatusSuspended: "suspended",
		StatusInactive:  "inactive",
	}
}

// StatusFromString parses a status name as stored in persistence.
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

// String returns the lowercase status name used in persistence and transport.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsActive reports whether an account in this status may act.
func (s Status) IsActive() bool {
	return s == StatusActive
}
