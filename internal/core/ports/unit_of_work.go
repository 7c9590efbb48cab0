package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command, keeping
// concurrent operations isolated.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of a single command. Client code
// manages the lifecycle explicitly: Begin, mutate through the bound
// repositories, then Commit or Rollback. Every repository obtained from a
// unit of work runs inside its transaction.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. Safe to defer after a
	// commit; rolling back a finished transaction is a no-op.
	Rollback(ctx context.Context) error

	// UserRepository returns a UserRepository bound to the transaction.
	UserRepository() UserRepository

	// OrderRepository returns an OrderRepository bound to the transaction.
	OrderRepository() OrderRepository

	// WorkerRepository returns a WorkerRepository bound to the transaction.
	WorkerRepository() WorkerRepository

	// StyleRepository returns a StyleRepository bound to the transaction.
	StyleRepository() StyleRepository

	// FabricRepository returns a FabricRepository bound to the transaction.
	FabricRepository() FabricRepository

	// AuditRepository returns an AuditRepository bound to the transaction.
	AuditRepository() AuditRepository
}
