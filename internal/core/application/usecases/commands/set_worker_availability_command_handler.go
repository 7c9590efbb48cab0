package commands

import (
	"context"
	"fmt"
	"time"

	"atelier/internal/core/domain/model/user"
	"atelier/internal/pkg/errs"
)

// SetWorkerAvailabilityCommandHandler updates the worker's self-reported
// availability flag. The flag is informational: it never gates the hard
// capacity check.
type SetWorkerAvailabilityCommandHandler struct {
	uowFactory UserUoWFactory
}

// NewSetWorkerAvailabilityCommandHandler creates a handler for
// availability updates.
func NewSetWorkerAvailabilityCommandHandler(uowFactory UserUoWFactory) SetWorkerAvailabilityCommandHandler {
	return SetWorkerAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle stores the flag. Availability is strictly self-service: only an
// active worker may set it, and only on their own profile.
func (h SetWorkerAvailabilityCommandHandler) Handle(ctx context.Context, command SetWorkerAvailabilityCommand) error {
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
	if !actor.IsActive() {
		return errs.NewUnauthenticatedError(fmt.Sprintf("account is %s", actor.Status()))
	}
	if actor.Role() != user.RoleWorker {
		return errs.NewForbiddenError("only workers set their availability")
	}

	profile, err := uow.WorkerRepository().GetProfileByUserIDForUpdate(ctx, actor.ID())
	if err != nil {
		return err
	}
	profile.SetAvailability(command.IsAvailable(), now)

	if err = uow.WorkerRepository().UpdateProfile(ctx, profile); err != nil {
		return err
	}

	if err = writeAudit(ctx, uow.AuditRepository(), actor, "worker.set_availability", "worker_profile",
		profile.ID().String(), fmt.Sprintf("%t", command.IsAvailable()), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
