package user

import (
	"fmt"

	"atelier/internal/pkg/errs"
)

// Role represents the single role a user acts in. Every user has exactly
// one role; capability checks resolve against it through the auth matrix.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer places and tracks their own orders.
	RoleCustomer

	// RoleWorker executes assigned orders and records progress.
	RoleWorker

	// RoleManager assigns workers and oversees all orders.
	RoleManager

	// RoleAdmin has full access including user management.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleCustomer: "customer",
		RoleWorker:   "worker",
		RoleManager:  "manager",
		RoleAdmin:    "admin",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleCustomer: "customer",
		RoleWorker:   "worker",
		RoleManager:  "manager",
		RoleAdmin:    "admin",
	}
}

// RoleFromString parses a role name as stored in persistence or received
// from external callers. Unrecognized names are rejected.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role is invalid", fmt.Errorf("%q is not a valid role", s))
}

// Validate rejects RoleUnknown and out-of-range values.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the lowercase role name used in persistence and transport.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}
