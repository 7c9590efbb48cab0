package commands

import (
	"context"
	"fmt"
	"time"

	"atelier/internal/core/domain/model/auth"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/user"
	"atelier/internal/core/ports"
	"atelier/internal/pkg/errs"
)

// AssignWorkerCommandHandler binds orders to workers against the hard
// capacity ceiling. The target profile row is locked for the whole
// transaction, so the capacity check and the increment act as one atomic
// step even under concurrent assignment requests.
type AssignWorkerCommandHandler struct {
	uowFactory UoWFactory
	matrix     *auth.Matrix
	notifier   ports.Notifier
}

// NewAssignWorkerCommandHandler creates a handler for worker assignment.
func NewAssignWorkerCommandHandler(
	uowFactory UoWFactory,
	matrix *auth.Matrix,
	notifier ports.Notifier,
) AssignWorkerCommandHandler {
	return AssignWorkerCommandHandler{
		uowFactory: uowFactory,
		matrix:     matrix,
		notifier:   notifier,
	}
}

// Handle assigns the worker in a single transaction: capability gate,
// target role and profile validation, capacity claim under the row lock,
// order binding with the manager stamp, and the post-commit assignment
// notification. Reassignment releases the previous worker's capacity unit
// in the same transaction.
func (h AssignWorkerCommandHandler) Handle(ctx context.Context, command AssignWorkerCommand) error {
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
	if err = h.matrix.Require(actor, auth.AssignWorker); err != nil {
		return err
	}

	target, err := uow.UserRepository().Get(ctx, command.WorkerID())
	if err != nil {
		return err
	}
	if target.Role() != user.RoleWorker {
		return errs.NewValueIsInvalidErrorWithCause(
			"workerId", fmt.Errorf("user %s has role %s", target.ID(), target.Role()))
	}

	aggregate, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if aggregate.Status().IsTerminal() {
		return errs.NewInvalidStateError("order", aggregate.Status().String())
	}

	previousWorkerID := aggregate.AssignedWorkerID()
	if previousWorkerID != nil && previousWorkerID.IsEqual(command.WorkerID()) {
		// Re-assigning the same worker holds no extra capacity.
		return uow.Commit(ctx)
	}

	profile, err := uow.WorkerRepository().GetProfileByUserIDForUpdate(ctx, command.WorkerID())
	if err != nil {
		return err
	}
	if err = profile.TakeAssignment(now); err != nil {
		return err
	}

	var managerID *kernel.UUID
	if actor.Role() == user.RoleManager {
		id := actor.ID()
		managerID = &id
	}
	if err = aggregate.AssignWorker(command.WorkerID(), managerID, now); err != nil {
		return err
	}

	if err = uow.WorkerRepository().UpdateProfile(ctx, profile); err != nil {
		return err
	}

	if previousWorkerID != nil && !previousWorkerID.IsEqual(command.WorkerID()) {
		if err = releaseWorker(ctx, uow.WorkerRepository(), *previousWorkerID, now); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = writeAudit(ctx, uow.AuditRepository(), actor, "order.assign", "order",
		aggregate.ID().String(), command.WorkerID().String(), now); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	orderID := aggregate.ID()
	_ = h.notifier.Publish(ctx, ports.Notification{
		UserID:    command.WorkerID(),
		Title:     "New Assignment",
		Message:   fmt.Sprintf("You have been assigned order %s.", aggregate.OrderNumber()),
		Kind:      ports.NotificationAssignment,
		RelatedID: &orderID,
	})

	return nil
}
