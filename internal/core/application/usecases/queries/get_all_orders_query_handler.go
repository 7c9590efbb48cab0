package queries

import (
	"context"

	"gorm.io/gorm"

	"atelier/internal/core/domain/model/auth"
	"atelier/internal/core/domain/model/order"
)

// GetAllOrdersQueryHandler retrieves the managerial order book from the
// database.
type GetAllOrdersQueryHandler struct {
	db     *gorm.DB
	matrix *auth.Matrix
}

// NewGetAllOrdersQueryHandler creates a handler for the full order listing.
func NewGetAllOrdersQueryHandler(db *gorm.DB, matrix *auth.Matrix) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{db: db, matrix: matrix}
}

// Handle executes the query, returning orders newest first with the
// optional status filter applied.
func (h GetAllOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAllOrdersQuery,
) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor, err := loadActor(ctx, h.db, query.ActorExternalID())
	if err != nil {
		return nil, err
	}
	if err = requireCapability(h.matrix, actor, auth.ViewAllOrders); err != nil {
		return nil, err
	}

	statement := `
		SELECT ` + orderSummaryColumns + `
		FROM orders
	`
	args := make([]any, 0, 1)
	if query.Status() != order.StatusUnknown {
		statement += ` WHERE status = ?`
		args = append(args, query.Status().String())
	}
	statement += ` ORDER BY created_at DESC`

	rows, err := h.db.WithContext(ctx).Raw(statement, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderSummaries(rows)
}
