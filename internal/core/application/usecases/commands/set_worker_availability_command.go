package commands

import (
	"errors"

	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

var ErrSetWorkerAvailabilityCommandIsNotConstructed = errors.New(
	"SetWorkerAvailabilityCommand must be created via NewSetWorkerAvailabilityCommand constructor",
)

// SetWorkerAvailabilityCommand represents a worker's self-service update
// of their availability flag.
type SetWorkerAvailabilityCommand struct { //nolint:recvcheck //using for validation
	actorExternalID string
	isAvailable     bool

	guard guard.ConstructorGuard
}

// NewSetWorkerAvailabilityCommand creates a command to set availability.
func NewSetWorkerAvailabilityCommand(actorExternalID string, isAvailable bool) (SetWorkerAvailabilityCommand, error) {
	cmd := SetWorkerAvailabilityCommand{
		isAvailable: isAvailable,
		guard:       guard.NewConstructorGuard(),
	}

	if err := cmd.setActorExternalID(actorExternalID); err != nil {
		return SetWorkerAvailabilityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetWorkerAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetWorkerAvailabilityCommandIsNotConstructed)
}

// ActorExternalID returns the caller's external identity.
func (c SetWorkerAvailabilityCommand) ActorExternalID() string {
	return c.actorExternalID
}

// IsAvailable returns the flag value to store.
func (c SetWorkerAvailabilityCommand) IsAvailable() bool {
	return c.isAvailable
}

func (c *SetWorkerAvailabilityCommand) setActorExternalID(actorExternalID string) error {
	if actorExternalID == "" {
		return errs.NewValueIsRequiredError("actorExternalID")
	}
	c.actorExternalID = actorExternalID
	return nil
}
