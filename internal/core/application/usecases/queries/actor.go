// Package queries contains the read operations of the application core.
// Implements the Query pattern for read operations in the CQRS architecture:
// each query bypasses the aggregates and reads an optimized projection
// straight from the database, re-applying the same authorization rules the
// command side enforces.
package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"atelier/internal/core/domain/model/auth"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/user"
	"atelier/internal/pkg/errs"
)

// actorRow is the minimal identity projection needed to authorize a read.
type actorRow struct {
	ID     kernel.UUID
	Role   user.Role
	Status user.Status
}

// loadActor resolves the acting identity for a read. A missing or inactive
// identity yields an unauthenticated error, mirroring the command side.
func loadActor(ctx context.Context, db *gorm.DB, externalID string) (actorRow, error) {
	if externalID == "" {
		return actorRow{}, errs.NewUnauthenticatedError("no acting identity")
	}

	var (
		id         uuid.UUID
		roleName   string
		statusName string
	)

	row := db.WithContext(ctx).Raw(`
		SELECT id, role, status
		FROM users
		WHERE external_id = ?
	`, externalID).Row()
	if err := row.Scan(&id, &roleName, &statusName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return actorRow{}, errs.NewUnauthenticatedError("unknown identity")
		}
		return actorRow{}, err
	}

	actorID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return actorRow{}, err
	}
	role, err := user.RoleFromString(roleName)
	if err != nil {
		return actorRow{}, err
	}
	status, err := user.StatusFromString(statusName)
	if err != nil {
		return actorRow{}, err
	}
	if !status.IsActive() {
		return actorRow{}, errs.NewUnauthenticatedError(fmt.Sprintf("account is %s", status))
	}

	return actorRow{ID: actorID, Role: role, Status: status}, nil
}

// requireCapability gates a read on the capability matrix.
func requireCapability(matrix *auth.Matrix, actor actorRow, capability auth.Capability) error {
	if !matrix.Allowed(actor.Role, capability) {
		return errs.NewForbiddenError(fmt.Sprintf("role %s lacks %s", actor.Role, capability))
	}
	return nil
}
