package queries

import (
	"context"

	"gorm.io/gorm"

	"atelier/internal/core/domain/model/auth"
)

// GetCustomerOrdersQueryHandler retrieves a customer's own orders from the
// database.
type GetCustomerOrdersQueryHandler struct {
	db     *gorm.DB
	matrix *auth.Matrix
}

// NewGetCustomerOrdersQueryHandler creates a handler for customer order
// listings.
func NewGetCustomerOrdersQueryHandler(db *gorm.DB, matrix *auth.Matrix) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{db: db, matrix: matrix}
}

// Handle executes the query, returning the caller's orders newest first.
func (h GetCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerOrdersQuery,
) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor, err := loadActor(ctx, h.db, query.ActorExternalID())
	if err != nil {
		return nil, err
	}
	if err = requireCapability(h.matrix, actor, auth.ViewOwnOrders); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderSummaryColumns+`
		FROM orders
		WHERE customer_id = ?
		ORDER BY created_at DESC
	`, actor.ID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderSummaries(rows)
}
