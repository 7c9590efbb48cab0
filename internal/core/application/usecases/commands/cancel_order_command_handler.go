package commands

import (
	"context"
	"fmt"
	"time"

	"atelier/internal/core/domain/model/auth"
	"atelier/internal/core/domain/model/user"
	"atelier/internal/core/ports"
	"atelier/internal/pkg/errs"
)

// CancelOrderCommandHandler moves orders to the cancelled terminal state,
// returning the assigned worker's capacity unit in the same transaction.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	matrix     *auth.Matrix
	notifier   ports.Notifier
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory UoWFactory,
	matrix *auth.Matrix,
	notifier ports.Notifier,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		matrix:     matrix,
		notifier:   notifier,
	}
}

// Handle cancels the order. Customers may only cancel their own orders;
// admins may cancel any. Terminal orders reject cancellation.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, command CancelOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actor, err := resolveActor(ctx, uow.UserRepository(), command.ActorExternalID())
	if err != nil {
		return err
	}
	if err = h.matrix.Require(actor, auth.CancelOrder); err != nil {
		return err
	}

	aggregate, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return err
	}
	if actor.Role() == user.RoleCustomer && !aggregate.IsOwnedBy(actor.ID()) {
		return errs.NewForbiddenError("only the order's customer may cancel it")
	}

	if err = aggregate.Cancel(now); err != nil {
		return err
	}

	if aggregate.AssignedWorkerID() != nil {
		if err = releaseWorker(ctx, uow.WorkerRepository(), *aggregate.AssignedWorkerID(), now); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = writeAudit(ctx, uow.AuditRepository(), actor, "order.cancel", "order",
		aggregate.ID().String(), "", now); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	orderID := aggregate.ID()
	_ = h.notifier.Publish(ctx, ports.Notification{
		UserID:    aggregate.CustomerID(),
		Title:     "Order Cancelled",
		Message:   fmt.Sprintf("Your order %s has been cancelled.", aggregate.OrderNumber()),
		Kind:      ports.NotificationOrderUpdate,
		RelatedID: &orderID,
	})

	return nil
}
