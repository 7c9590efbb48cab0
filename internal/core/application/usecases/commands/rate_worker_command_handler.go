package commands

import (
	"context"
	"errors"
	"time"

	"atelier/internal/core/domain/model/auth"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/model/worker"
	"atelier/internal/core/domain/services"
	"atelier/internal/pkg/errs"
)

// RateWorkerCommandHandler inserts the rating and recomputes the worker's
// reputation from full history in one transaction. The order row lock
// serializes the duplicate check against the insert, and the profile row
// lock serializes the reputation recompute.
type RateWorkerCommandHandler struct {
	uowFactory  UoWFactory
	matrix      *auth.Matrix
	ratingBoard services.RatingBoard
}

// NewRateWorkerCommandHandler creates a handler for rating submission.
func NewRateWorkerCommandHandler(uowFactory UoWFactory, matrix *auth.Matrix) RateWorkerCommandHandler {
	return RateWorkerCommandHandler{
		uowFactory:  uowFactory,
		matrix:      matrix,
		ratingBoard: services.NewRatingBoard(),
	}
}

// Handle rates the order's worker. Hard preconditions beyond the
// capability gate: the actor owns the order, the order is delivered with
// an assigned worker, and no rating exists yet for the order.
func (h RateWorkerCommandHandler) Handle(ctx context.Context, command RateWorkerCommand) error {
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
	if err = h.matrix.Require(actor, auth.RateWorker); err != nil {
		return err
	}

	aggregate, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return err
	}
	if !aggregate.IsOwnedBy(actor.ID()) {
		return errs.NewForbiddenError("only the order's customer may rate it")
	}
	if aggregate.Status() != order.StatusDelivered {
		return errs.NewInvalidStateError("order", aggregate.Status().String())
	}
	if aggregate.AssignedWorkerID() == nil {
		return errs.NewInvalidStateError("order", "unassigned")
	}
	workerID := *aggregate.AssignedWorkerID()

	_, err = uow.WorkerRepository().GetRatingByOrderID(ctx, command.OrderID())
	if err == nil {
		return errs.NewAlreadyExistsError("rating", command.OrderID().String())
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	rating, err := worker.NewRating(
		kernel.NewUUID(),
		command.OrderID(),
		workerID,
		actor.ID(),
		command.Score(),
		command.Accuracy(),
		command.Timeliness(),
		command.Quality(),
		command.Comment(),
		now,
	)
	if err != nil {
		return err
	}
	if err = uow.WorkerRepository().AddRating(ctx, rating); err != nil {
		return err
	}

	profile, err := uow.WorkerRepository().GetProfileByUserIDForUpdate(ctx, workerID)
	if err != nil {
		return err
	}

	history, err := uow.WorkerRepository().GetRatingsByWorkerID(ctx, workerID)
	if err != nil {
		return err
	}
	if err = h.ratingBoard.Reapply(profile, history, now); err != nil {
		return err
	}
	if err = uow.WorkerRepository().UpdateProfile(ctx, profile); err != nil {
		return err
	}

	if err = writeAudit(ctx, uow.AuditRepository(), actor, "worker.rate", "order",
		command.OrderID().String(), "", now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
