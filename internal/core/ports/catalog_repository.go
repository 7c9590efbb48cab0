package ports

import (
	"context"

	"atelier/internal/core/domain/model/kernel"
)

// Style is the slice of the catalog collaborator's data that order
// creation needs: the base price and the popularity counter.
type Style struct {
	ID          kernel.UUID
	Name        string
	BasePrice   float64
	OrdersCount int
}

// FabricItem is the slice of the inventory collaborator's data that order
// creation needs: the unit price used with the standard yardage
// assumption.
type FabricItem struct {
	ID            kernel.UUID
	Name          string
	PricePerMeter float64
}

// StyleRepository reads and counts against the style catalog.
type StyleRepository interface {
	// Get retrieves a catalog style by identifier.
	Get(ctx context.Context, id kernel.UUID) (*Style, error)

	// IncrementOrders bumps the style's popularity counter by one.
	IncrementOrders(ctx context.Context, id kernel.UUID) error
}

// FabricRepository reads fabric inventory items.
type FabricRepository interface {
	// Get retrieves an inventory item by identifier.
	Get(ctx context.Context, id kernel.UUID) (*FabricItem, error)
}
