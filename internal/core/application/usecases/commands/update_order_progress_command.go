package commands

import (
	"errors"
	"fmt"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

var ErrUpdateOrderProgressCommandIsNotConstructed = errors.New(
	"UpdateOrderProgressCommand must be created via NewUpdateOrderProgressCommand constructor",
)

// UpdateOrderProgressCommand represents a request to record that an order
// reached a production stage.
type UpdateOrderProgressCommand struct { //nolint:recvcheck //using for validation
	actorExternalID string
	orderID         kernel.UUID
	stage           order.Status
	notes           string
	images          []string

	guard guard.ConstructorGuard
}

// NewUpdateOrderProgressCommand creates a command to append a progress
// entry. The stage must be a production stage; pending and cancelled are
// rejected up front.
func NewUpdateOrderProgressCommand(
	actorExternalID string,
	orderID kernel.UUID,
	stage order.Status,
	notes string,
	images []string,
) (UpdateOrderProgressCommand, error) {
	cmd := UpdateOrderProgressCommand{
		notes:  notes,
		images: images,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActorExternalID(actorExternalID),
		cmd.setOrderID(orderID),
		cmd.setStage(stage),
	); err != nil {
		return UpdateOrderProgressCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderProgressCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderProgressCommandIsNotConstructed)
}

// ActorExternalID returns the caller's external identity.
func (c UpdateOrderProgressCommand) ActorExternalID() string {
	return c.actorExternalID
}

// OrderID returns the order to record progress on.
func (c UpdateOrderProgressCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Stage returns the target production stage.
func (c UpdateOrderProgressCommand) Stage() order.Status {
	return c.stage
}

// Notes returns the free-text note for the ledger entry.
func (c UpdateOrderProgressCommand) Notes() string {
	return c.notes
}

// Images returns photo references for the ledger entry.
func (c UpdateOrderProgressCommand) Images() []string {
	return c.images
}

func (c *UpdateOrderProgressCommand) setActorExternalID(actorExternalID string) error {
	if actorExternalID == "" {
		return errs.NewValueIsRequiredError("actorExternalID")
	}
	c.actorExternalID = actorExternalID
	return nil
}

func (c *UpdateOrderProgressCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderProgressCommand) setStage(stage order.Status) error {
	if !stage.IsProgressStage() {
		return errs.NewValueIsInvalidErrorWithCause(
			"stage is invalid", fmt.Errorf("%s is not a valid progress stage", stage))
	}
	c.stage = stage
	return nil
}
