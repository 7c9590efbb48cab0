package ports

import (
	"context"
	"time"

	"atelier/internal/core/domain/model/kernel"
)

// AuditEntry is one immutable row of the mutation audit log. Every
// command writes exactly one entry inside its transaction.
type AuditEntry struct {
	ID         kernel.UUID
	ActorID    *kernel.UUID
	Action     string
	EntityType string
	EntityID   string
	Details    string
	CreatedAt  time.Time
}

// AuditRepository appends to the audit log.
type AuditRepository interface {
	Add(ctx context.Context, entry AuditEntry) error
}
