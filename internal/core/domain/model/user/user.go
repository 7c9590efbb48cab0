package user

import (
	"errors"
	"strings"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

// ErrUserIsNotConstructed is returned when a User instance was not created
// through NewUser or RestoreUser.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser constructor")

// User is the aggregate root for a platform identity.
//
// Invariants:
//   - id and externalID identify the user and never change
//   - role and status are always valid values
//   - a new user starts as an active customer
type User struct {
	id         kernel.UUID
	externalID string
	name       string
	email      string
	role       Role
	status     Status

	guard guard.ConstructorGuard
}

// NewUser registers a fresh identity. New users start as active customers;
// role promotion is a separate admin operation.
func NewUser(id kernel.UUID, externalID, name, email string) (*User, error) {
	u := &User{
		role:   RoleCustomer,
		status: StatusActive,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setExternalID(externalID),
		u.setName(name),
		u.setEmail(email),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser reconstructs a User from persistence with its stored role and
// status.
func RestoreUser(id kernel.UUID, externalID, name, email string, role Role, status Status) (*User, error) {
	u := &User{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setExternalID(externalID),
		u.setName(name),
		u.setEmail(email),
		u.setRole(role),
		u.setStatus(status),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// Validate ensures the User was created through a constructor.
func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

// IsEqual compares two users by identity.
func (u *User) IsEqual(other *User) bool {
	return other != nil && u.id.IsEqual(other.id)
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// ExternalID returns the identity-provider subject for this user.
func (u *User) ExternalID() string {
	return u.externalID
}

// Name returns the user's display name.
func (u *User) Name() string {
	return u.name
}

// Email returns the user's email address.
func (u *User) Email() string {
	return u.email
}

// Role returns the user's current role.
func (u *User) Role() Role {
	return u.role
}

// Status returns the account status.
func (u *User) Status() Status {
	return u.status
}

// IsActive reports whether the account may act.
func (u *User) IsActive() bool {
	return u.status.IsActive()
}

// ChangeRole moves the user to a new role. The caller is responsible for
// side effects of the move, such as provisioning a worker profile.
func (u *User) ChangeRole(role Role) error {
	return u.setRole(role)
}

// ChangeStatus activates, suspends, or deactivates the account.
func (u *User) ChangeStatus(status Status) error {
	return u.setStatus(status)
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setExternalID(externalID string) error {
	if strings.TrimSpace(externalID) == "" {
		return errs.NewValueIsRequiredError("externalID")
	}
	u.externalID = externalID
	return nil
}

func (u *User) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	u.name = name
	return nil
}

func (u *User) setEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if !strings.Contains(email, "@") {
		return errs.NewValueIsInvalidError("email")
	}
	u.email = email
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}

func (u *User) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	u.status = status
	return nil
}
