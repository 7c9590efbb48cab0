package commands

import (
	"context"
	"errors"
	"time"

	"atelier/internal/core/domain/model/auth"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/user"
	"atelier/internal/core/domain/model/worker"
	"atelier/internal/pkg/errs"
)

// ChangeUserRoleCommandHandler performs admin role changes. Moving a user
// into the worker role provisions their profile with the standard
// defaults in the same transaction.
type ChangeUserRoleCommandHandler struct {
	uowFactory UserUoWFactory
	matrix     *auth.Matrix
}

// NewChangeUserRoleCommandHandler creates a handler for role changes.
func NewChangeUserRoleCommandHandler(uowFactory UserUoWFactory, matrix *auth.Matrix) ChangeUserRoleCommandHandler {
	return ChangeUserRoleCommandHandler{
		uowFactory: uowFactory,
		matrix:     matrix,
	}
}

// Handle changes the target user's role under the MANAGE_USERS gate.
func (h ChangeUserRoleCommandHandler) Handle(ctx context.Context, command ChangeUserRoleCommand) error {
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
	if err = target.ChangeRole(command.Role()); err != nil {
		return err
	}
	if err = uow.UserRepository().Update(ctx, target); err != nil {
		return err
	}

	if command.Role() == user.RoleWorker {
		if err = h.provisionProfile(ctx, uow, target.ID(), now); err != nil {
			return err
		}
	}

	if err = writeAudit(ctx, uow.AuditRepository(), actor, "user.change_role", "user",
		target.ID().String(), command.Role().String(), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// provisionProfile creates the worker profile unless one already exists
// from an earlier stint in the role.
func (h ChangeUserRoleCommandHandler) provisionProfile(
	ctx context.Context,
	uow UserUoW,
	userID kernel.UUID,
	now time.Time,
) error {
	_, err := uow.WorkerRepository().GetProfileByUserID(ctx, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	profile, err := worker.NewProfile(kernel.NewUUID(), userID, now)
	if err != nil {
		return err
	}
	return uow.WorkerRepository().AddProfile(ctx, profile)
}
