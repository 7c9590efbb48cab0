package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/user"
	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

var ErrUpdateUserStatusCommandIsNotConstructed = errors.New(
	"UpdateUserStatusCommand must be created via NewUpdateUserStatusCommand constructor",
)

// UpdateUserStatusCommand represents an admin's request to activate,
// suspend, or deactivate an account.
type UpdateUserStatusCommand struct { //nolint:recvcheck //using for validation
	actorExternalID string
	userID          kernel.UUID
	status          user.Status

	guard guard.ConstructorGuard
}

// NewUpdateUserStatusCommand creates a command to change an account status.
func NewUpdateUserStatusCommand(actorExternalID string, userID kernel.UUID, status user.Status) (UpdateUserStatusCommand, error) {
	cmd := UpdateUserStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActorExternalID(actorExternalID),
		cmd.setUserID(userID),
		cmd.setStatus(status),
	); err != nil {
		return UpdateUserStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateUserStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateUserStatusCommandIsNotConstructed)
}

// ActorExternalID returns the caller's external identity.
func (c UpdateUserStatusCommand) ActorExternalID() string {
	return c.actorExternalID
}

// UserID returns the user whose status changes.
func (c UpdateUserStatusCommand) UserID() kernel.UUID {
	return c.userID
}

// Status returns the target account status.
func (c UpdateUserStatusCommand) Status() user.Status {
	return c.status
}

func (c *UpdateUserStatusCommand) setActorExternalID(actorExternalID string) error {
	if actorExternalID == "" {
		return errs.NewValueIsRequiredError("actorExternalID")
	}
	c.actorExternalID = actorExternalID
	return nil
}

func (c *UpdateUserStatusCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *UpdateUserStatusCommand) setStatus(status user.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}
