package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a customer's request to place an order.
// Pricing inputs (style, fabric) are referenced by identifier; the handler
// resolves them to amounts inside the transaction.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actorExternalID      string
	orderID              kernel.UUID
	styleID              *kernel.UUID
	fabricSource         order.FabricSource
	fabricInventoryID    *kernel.UUID
	measurementProfileID kernel.UUID
	urgency              order.Urgency
	notes                string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order. A nil
// styleID means a custom order priced at the flat fee.
func NewCreateOrderCommand(
	actorExternalID string,
	orderID kernel.UUID,
	styleID *kernel.UUID,
	fabricSource order.FabricSource,
	fabricInventoryID *kernel.UUID,
	measurementProfileID kernel.UUID,
	urgency order.Urgency,
	notes string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		styleID:           styleID,
		fabricInventoryID: fabricInventoryID,
		notes:             notes,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActorExternalID(actorExternalID),
		cmd.setOrderID(orderID),
		cmd.setFabricSource(fabricSource),
		cmd.setMeasurementProfileID(measurementProfileID),
		cmd.setUrgency(urgency),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// ActorExternalID returns the caller's external identity.
func (c CreateOrderCommand) ActorExternalID() string {
	return c.actorExternalID
}

// OrderID returns the identifier the new order will carry.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// StyleID returns the referenced catalog style, or nil for custom orders.
func (c CreateOrderCommand) StyleID() *kernel.UUID {
	return c.styleID
}

// FabricSource returns where the fabric comes from.
func (c CreateOrderCommand) FabricSource() order.FabricSource {
	return c.fabricSource
}

// FabricInventoryID returns the inventory item to price fabric from.
func (c CreateOrderCommand) FabricInventoryID() *kernel.UUID {
	return c.fabricInventoryID
}

// MeasurementProfileID returns the measurement profile to bind.
func (c CreateOrderCommand) MeasurementProfileID() kernel.UUID {
	return c.measurementProfileID
}

// Urgency returns the requested service tier.
func (c CreateOrderCommand) Urgency() order.Urgency {
	return c.urgency
}

// Notes returns the customer's free-text notes.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}

func (c *CreateOrderCommand) setActorExternalID(actorExternalID string) error {
	if actorExternalID == "" {
		return errs.NewValueIsRequiredError("actorExternalID")
	}
	c.actorExternalID = actorExternalID
	return nil
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setFabricSource(fabricSource order.FabricSource) error {
	if err := fabricSource.Validate(); err != nil {
		return err
	}
	c.fabricSource = fabricSource
	return nil
}

func (c *CreateOrderCommand) setMeasurementProfileID(measurementProfileID kernel.UUID) error {
	if err := measurementProfileID.Validate(); err != nil {
		return err
	}
	c.measurementProfileID = measurementProfileID
	return nil
}

func (c *CreateOrderCommand) setUrgency(urgency order.Urgency) error {
	if err := urgency.Validate(); err != nil {
		return err
	}
	c.urgency = urgency
	return nil
}
