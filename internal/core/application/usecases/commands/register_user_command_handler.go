package commands

import (
	"context"
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/user"
	"atelier/internal/pkg/errs"
)

// RegisterUserCommandHandler creates fresh customer accounts. Registration
// is the one command without an actor gate: the caller is creating the
// identity it will act as.
type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
}

// NewRegisterUserCommandHandler creates a handler for registration.
func NewRegisterUserCommandHandler(uowFactory UserUoWFactory) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle registers the identity, rejecting duplicate external subjects.
// It returns the new user's identifier.
func (h RegisterUserCommandHandler) Handle(ctx context.Context, command RegisterUserCommand) (string, error) {
	if err := command.Validate(); err != nil {
		return "", err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	_, err := uow.UserRepository().GetByExternalID(ctx, command.ExternalID())
	if err == nil {
		return "", errs.NewAlreadyExistsError("externalID", command.ExternalID())
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return "", err
	}

	aggregate, err := user.NewUser(kernel.NewUUID(), command.ExternalID(), command.Name(), command.Email())
	if err != nil {
		return "", err
	}
	if err = uow.UserRepository().Add(ctx, aggregate); err != nil {
		return "", err
	}

	if err = writeAudit(ctx, uow.AuditRepository(), aggregate, "user.register", "user",
		aggregate.ID().String(), "", now); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return aggregate.ID().String(), nil
}
