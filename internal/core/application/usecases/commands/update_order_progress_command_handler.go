package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"atelier/internal/core/domain/model/auth"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/ports"
	"atelier/internal/pkg/errs"
)

// UpdateOrderProgressCommandHandler appends to the progress ledger and
// projects the order status, releasing worker capacity when the order
// reaches delivered.
type UpdateOrderProgressCommandHandler struct {
	uowFactory UoWFactory
	matrix     *auth.Matrix
	notifier   ports.Notifier
}

// NewUpdateOrderProgressCommandHandler creates a handler for progress updates.
func NewUpdateOrderProgressCommandHandler(
	uowFactory UoWFactory,
	matrix *auth.Matrix,
	notifier ports.Notifier,
) UpdateOrderProgressCommandHandler {
	return UpdateOrderProgressCommandHandler{
		uowFactory: uowFactory,
		matrix:     matrix,
		notifier:   notifier,
	}
}

// Handle records the stage in a single transaction. Beyond the capability
// gate, workers may only record progress on their own assignment. The
// ledger append and the status projection are one atomic unit; the
// customer notification goes out only after commit.
func (h UpdateOrderProgressCommandHandler) Handle(ctx context.Context, command UpdateOrderProgressCommand) error {
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
	if err = h.matrix.Require(actor, auth.UpdateOrderProgress); err != nil {
		return err
	}

	aggregate, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return err
	}
	if !aggregate.ProgressRecordableBy(actor) {
		return errs.NewForbiddenError("order is assigned to another worker")
	}

	actorID := actor.ID()
	if err = aggregate.RecordProgress(command.Stage(), &actorID, command.Notes(), command.Images(), now); err != nil {
		return err
	}

	// Delivery ends the assignment, so the worker's capacity unit is
	// returned in the same transaction.
	if aggregate.Status().IsTerminal() && aggregate.AssignedWorkerID() != nil {
		if err = releaseWorker(ctx, uow.WorkerRepository(), *aggregate.AssignedWorkerID(), now); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = writeAudit(ctx, uow.AuditRepository(), actor, "order.progress", "order",
		aggregate.ID().String(), command.Stage().String(), now); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	orderID := aggregate.ID()
	_ = h.notifier.Publish(ctx, ports.Notification{
		UserID:    aggregate.CustomerID(),
		Title:     "Order Update",
		Message:   fmt.Sprintf("Your order %s is now %s.", aggregate.OrderNumber(), aggregate.Status()),
		Kind:      ports.NotificationOrderUpdate,
		RelatedID: &orderID,
	})

	return nil
}

// releaseWorker returns one capacity unit under the profile row lock. A
// worker without a profile is tolerated: releasing is best effort cleanup,
// not a precondition of delivery.
func releaseWorker(ctx context.Context, workers ports.WorkerRepository, workerID kernel.UUID, now time.Time) error {
	profile, err := workers.GetProfileByUserIDForUpdate(ctx, workerID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	profile.ReleaseAssignment(now)
	return workers.UpdateProfile(ctx, profile)
}
