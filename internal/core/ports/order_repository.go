package ports

import (
	"context"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// including the year-scoped number sequence.
type OrderRepository interface {
	// Add persists a new order aggregate together with its ledger entries.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. Newly
	// appended ledger entries are inserted; existing entries are never
	// touched.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its full progress ledger. The row is
	// locked for the duration of the surrounding transaction so
	// check-then-insert sequences against the order serialize.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// NextOrderSequence claims the next number in the year's sequence.
	// Concurrent claims within a year never yield the same value.
	NextOrderSequence(ctx context.Context, year int) (int, error)

	// GetActiveDueBefore retrieves non-terminal orders whose estimated
	// completion date falls before the deadline. Used by the due-date
	// reminder job.
	GetActiveDueBefore(ctx context.Context, deadline time.Time) ([]*order.Order, error)
}
