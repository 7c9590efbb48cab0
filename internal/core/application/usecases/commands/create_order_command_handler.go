package commands

import (
	"context"
	"fmt"
	"time"

	"atelier/internal/core/domain/model/auth"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/ports"
)

// CreateOrderResult carries the identifiers the caller needs to track the
// freshly placed order.
type CreateOrderResult struct {
	OrderID     string
	OrderNumber string
}

// CreateOrderCommandHandler orchestrates order intake: pricing resolution,
// year-scoped number allocation, the initial ledger entry, and the
// customer confirmation notification.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	matrix     *auth.Matrix
	notifier   ports.Notifier
}

// NewCreateOrderCommandHandler creates a handler for order intake.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	matrix *auth.Matrix,
	notifier ports.Notifier,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		matrix:     matrix,
		notifier:   notifier,
	}
}

// Handle places the order in a single transaction. The base price comes
// from the referenced style or the flat custom fee; inventory fabric is
// priced at unit price times the standard yardage. The confirmation
// notification is emitted only after the transaction commits and its
// failure is swallowed.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) (CreateOrderResult, error) {
	if err := command.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actor, err := resolveActor(ctx, uow.UserRepository(), command.ActorExternalID())
	if err != nil {
		return CreateOrderResult{}, err
	}
	if err = h.matrix.Require(actor, auth.CreateOrder); err != nil {
		return CreateOrderResult{}, err
	}

	basePrice := order.FlatCustomOrderFee
	if command.StyleID() != nil {
		style, styleErr := uow.StyleRepository().Get(ctx, *command.StyleID())
		if styleErr != nil {
			return CreateOrderResult{}, styleErr
		}
		basePrice = style.BasePrice
	}

	fabricCost := 0.0
	if command.FabricSource() == order.FabricSourceInventory && command.FabricInventoryID() != nil {
		fabric, fabricErr := uow.FabricRepository().Get(ctx, *command.FabricInventoryID())
		if fabricErr != nil {
			return CreateOrderResult{}, fabricErr
		}
		fabricCost = fabric.PricePerMeter * order.FabricYardageMeters
	}

	sequence, err := uow.OrderRepository().NextOrderSequence(ctx, now.Year())
	if err != nil {
		return CreateOrderResult{}, err
	}
	orderNumber := order.FormatOrderNumber(now.Year(), sequence)

	aggregate, err := order.NewOrder(
		command.OrderID(),
		orderNumber,
		actor.ID(),
		command.MeasurementProfileID(),
		command.StyleID(),
		command.FabricSource(),
		command.FabricInventoryID(),
		command.Urgency(),
		basePrice,
		fabricCost,
		command.Notes(),
		now,
	)
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return CreateOrderResult{}, err
	}

	if command.StyleID() != nil {
		if err = uow.StyleRepository().IncrementOrders(ctx, *command.StyleID()); err != nil {
			return CreateOrderResult{}, err
		}
	}

	if err = writeAudit(ctx, uow.AuditRepository(), actor, "order.create", "order",
		aggregate.ID().String(), orderNumber, now); err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	orderID := aggregate.ID()
	_ = h.notifier.Publish(ctx, ports.Notification{
		UserID:    actor.ID(),
		Title:     "Order Confirmed",
		Message:   fmt.Sprintf("Your order %s has been placed.", orderNumber),
		Kind:      ports.NotificationOrderUpdate,
		RelatedID: &orderID,
	})

	return CreateOrderResult{
		OrderID:     aggregate.ID().String(),
		OrderNumber: orderNumber,
	}, nil
}
