package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

var ErrAssignWorkerCommandIsNotConstructed = errors.New(
	"AssignWorkerCommand must be created via NewAssignWorkerCommand constructor",
)

// AssignWorkerCommand represents a manager's or admin's request to bind an
// order to a worker.
type AssignWorkerCommand struct { //nolint:recvcheck //using for validation
	actorExternalID string
	orderID         kernel.UUID
	workerID        kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignWorkerCommand creates a command to assign a worker to an order.
func NewAssignWorkerCommand(actorExternalID string, orderID, workerID kernel.UUID) (AssignWorkerCommand, error) {
	cmd := AssignWorkerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActorExternalID(actorExternalID),
		cmd.setOrderID(orderID),
		cmd.setWorkerID(workerID),
	); err != nil {
		return AssignWorkerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignWorkerCommand) Validate() error {
	return c.guard.Validate(ErrAssignWorkerCommandIsNotConstructed)
}

// ActorExternalID returns the caller's external identity.
func (c AssignWorkerCommand) ActorExternalID() string {
	return c.actorExternalID
}

// OrderID returns the order to assign.
func (c AssignWorkerCommand) OrderID() kernel.UUID {
	return c.orderID
}

// WorkerID returns the target worker's user identifier.
func (c AssignWorkerCommand) WorkerID() kernel.UUID {
	return c.workerID
}

func (c *AssignWorkerCommand) setActorExternalID(actorExternalID string) error {
	if actorExternalID == "" {
		return errs.NewValueIsRequiredError("actorExternalID")
	}
	c.actorExternalID = actorExternalID
	return nil
}

func (c *AssignWorkerCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AssignWorkerCommand) setWorkerID(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}
	c.workerID = workerID
	return nil
}
