package queries

import (
	"context"

	"gorm.io/gorm"

	"atelier/internal/core/domain/model/auth"
	"atelier/internal/core/domain/model/order"
)

// GetAssignedOrdersQueryHandler retrieves a worker's open assignments from
// the database.
type GetAssignedOrdersQueryHandler struct {
	db     *gorm.DB
	matrix *auth.Matrix
}

// NewGetAssignedOrdersQueryHandler creates a handler for worker assignment
// listings.
func NewGetAssignedOrdersQueryHandler(db *gorm.DB, matrix *auth.Matrix) GetAssignedOrdersQueryHandler {
	return GetAssignedOrdersQueryHandler{db: db, matrix: matrix}
}

// Handle executes the query, returning non-terminal orders assigned to the
// caller ordered by due date.
func (h GetAssignedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAssignedOrdersQuery,
) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor, err := loadActor(ctx, h.db, query.ActorExternalID())
	if err != nil {
		return nil, err
	}
	if err = requireCapability(h.matrix, actor, auth.ViewAssignedOrders); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderSummaryColumns+`
		FROM orders
		WHERE assigned_worker_id = ?
		  AND status NOT IN (?, ?)
		ORDER BY estimated_completion_date
	`, actor.ID.String(), order.StatusDelivered.String(), order.StatusCancelled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderSummaries(rows)
}
