package commands

import (
	"context"
	"time"

	"atelier/internal/core/domain/model/auth"
)

// UpdateUserStatusCommandHandler performs admin account status changes.
type UpdateUserStatusCommandHandler struct {
	uowFactory UserUoWFactory
	matrix     *auth.Matrix
}

// NewUpdateUserStatusCommandHandler creates a handler for status changes.
func NewUpdateUserStatusCommandHandler(uowFactory UserUoWFactory, matrix *auth.Matrix) UpdateUserStatusCommandHandler {
	return UpdateUserStatusCommandHandler{
		uowFactory: uowFactory,
		matrix:     matrix,
	}
}

// Handle changes the target account's status under the MANAGE_USERS gate.
func (h UpdateUserStatusCommandHandler) Handle(ctx context.Context, command UpdateUserStatusCommand) error {
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
	if err = h.matrix.Require(actor, auth.ManageUsers); err != nil {
		return err
	}

	target, err := uow.UserRepository().Get(ctx, command.UserID())
	if err != nil {
		return err
	}
	if err = target.ChangeStatus(command.Status()); err != nil {
		return err
	}
	if err = uow.UserRepository().Update(ctx, target); err != nil {
		return err
	}

	if err = writeAudit(ctx, uow.AuditRepository(), actor, "user.change_status", "user",
		target.ID().String(), command.Status().String(), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
