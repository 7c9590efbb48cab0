// Package commands contains the write operations of the application core.
// Each operation is a command object paired with a handler: the command
// validates its input shape, the handler resolves the actor, gates the
// operation through the authorization matrix, runs exactly one transaction,
// and emits notifications only after commit.
package commands

import (
	"context"

	"atelier/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler depends on the narrowest composition that covers
// the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// UserRepoFactory provides access to the user repository within a transaction.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// WorkerRepoFactory provides access to the worker repository within a transaction.
	WorkerRepoFactory interface {
		WorkerRepository() ports.WorkerRepository
	}

	// StyleRepoFactory provides access to the style repository within a transaction.
	StyleRepoFactory interface {
		StyleRepository() ports.StyleRepository
	}

	// FabricRepoFactory provides access to the fabric repository within a transaction.
	FabricRepoFactory interface {
		FabricRepository() ports.FabricRepository
	}

	// AuditRepoFactory provides access to the audit repository within a transaction.
	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// UserUoW manages transactions for identity and worker-profile
	// operations: registration, role and status changes, availability.
	UserUoW interface {
		TxManager
		UserRepoFactory
		WorkerRepoFactory
		AuditRepoFactory
	}

	// UserUoWFactory creates new identity unit of work instances.
	UserUoWFactory interface {
		Create() UserUoW
	}

	// OrderUoW manages transactions for order intake and lifecycle
	// operations that never touch worker capacity.
	OrderUoW interface {
		TxManager
		UserRepoFactory
		OrderRepoFactory
		StyleRepoFactory
		FabricRepoFactory
		AuditRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions spanning orders, worker capacity, and
	// rating history: assignment, progress with capacity release,
	// cancellation, and rating.
	UoW interface {
		TxManager
		UserRepoFactory
		OrderRepoFactory
		WorkerRepoFactory
		AuditRepoFactory
	}

	// UoWFactory creates new cross-aggregate unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)
