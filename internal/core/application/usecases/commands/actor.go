package commands

import (
	"context"
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/user"
	"atelier/internal/core/ports"
	"atelier/internal/pkg/errs"
)

// resolveActor turns the caller's external identity into a user aggregate.
// An unresolvable identity is an authentication failure, not a not-found:
// the caller learns nothing about which identities exist.
func resolveActor(ctx context.Context, users ports.UserRepository, externalID string) (*user.User, error) {
	if externalID == "" {
		return nil, errs.NewUnauthenticatedError("no acting identity")
	}

	actor, err := users.GetByExternalID(ctx, externalID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewUnauthenticatedError("unknown identity")
	}
	if err != nil {
		return nil, err
	}

	return actor, nil
}

// writeAudit appends the command's audit row inside its transaction.
func writeAudit(
	ctx context.Context,
	audit ports.AuditRepository,
	actor *user.User,
	action, entityType, entityID, details string,
	now time.Time,
) error {
	var actorID *kernel.UUID
	if actor != nil {
		id := actor.ID()
		actorID = &id
	}

	return audit.Add(ctx, ports.AuditEntry{
		ID:         kernel.NewUUID(),
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		CreatedAt:  now,
	})
}
