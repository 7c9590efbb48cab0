package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/user"
	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

var ErrChangeUserRoleCommandIsNotConstructed = errors.New(
	"ChangeUserRoleCommand must be created via NewChangeUserRoleCommand constructor",
)

// ChangeUserRoleCommand represents an admin's request to move a user to a
// new role.
type ChangeUserRoleCommand struct { //nolint:recvcheck //using for validation
	actorExternalID string
	userID          kernel.UUID
	role            user.Role

	guard guard.ConstructorGuard
}

// NewChangeUserRoleCommand creates a command to change a user's role.
func NewChangeUserRoleCommand(actorExternalID string, userID kernel.UUID, role user.Role) (ChangeUserRoleCommand, error) {
	cmd := ChangeUserRoleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActorExternalID(actorExternalID),
		cmd.setUserID(userID),
		cmd.setRole(role),
	); err != nil {
		return ChangeUserRoleCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeUserRoleCommand) Validate() error {
	return c.guard.Validate(ErrChangeUserRoleCommandIsNotConstructed)
}

// ActorExternalID returns the caller's external identity.
func (c ChangeUserRoleCommand) ActorExternalID() string {
	return c.actorExternalID
}

// UserID returns the user whose role changes.
func (c ChangeUserRoleCommand) UserID() kernel.UUID {
	return c.userID
}

// Role returns the target role.
func (c ChangeUserRoleCommand) Role() user.Role {
	return c.role
}

func (c *ChangeUserRoleCommand) setActorExternalID(actorExternalID string) error {
	if actorExternalID == "" {
		return errs.NewValueIsRequiredError("actorExternalID")
	}
	c.actorExternalID = actorExternalID
	return nil
}

func (c *ChangeUserRoleCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *ChangeUserRoleCommand) setRole(role user.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	c.role = role
	return nil
}
