package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"atelier/internal/core/domain/model/auth"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
)

// GetWorkerWorkloadQueryHandler builds the capacity dashboard from worker
// profiles joined with a live count of their open assignments.
type GetWorkerWorkloadQueryHandler struct {
	db     *gorm.DB
	matrix *auth.Matrix
}

// NewGetWorkerWorkloadQueryHandler creates a handler for the workload
// dashboard.
func NewGetWorkerWorkloadQueryHandler(db *gorm.DB, matrix *auth.Matrix) GetWorkerWorkloadQueryHandler {
	return GetWorkerWorkloadQueryHandler{db: db, matrix: matrix}
}

// Handle executes the query, returning one row per worker ordered by free
// capacity so the least-loaded workers surface first.
func (h GetWorkerWorkloadQueryHandler) Handle(
	ctx context.Context,
	query GetWorkerWorkloadQuery,
) ([]GetWorkerWorkloadQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor, err := loadActor(ctx, h.db, query.ActorExternalID())
	if err != nil {
		return nil, err
	}
	if err = requireCapability(h.matrix, actor, auth.ViewWorkload); err != nil {
		return nil, err
	}

	workloads := make([]GetWorkerWorkloadQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.user_id,
			u.name,
			p.current_workload,
			p.max_workload,
			COUNT(o.id) AS active_orders,
			p.rating,
			p.is_available
		FROM worker_profiles p
		JOIN users u ON u.id = p.user_id
		LEFT JOIN orders o
			ON o.assigned_worker_id = p.user_id
			AND o.status NOT IN (?, ?)
		GROUP BY p.user_id, u.name, p.current_workload, p.max_workload, p.rating, p.is_available
		ORDER BY p.max_workload - p.current_workload DESC, u.name
	`, order.StatusDelivered.String(), order.StatusCancelled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			workload GetWorkerWorkloadQueryResponse
			userID   uuid.UUID
		)

		err = rows.Scan(
			&userID,
			&workload.Name,
			&workload.CurrentWorkload,
			&workload.MaxWorkload,
			&workload.ActiveOrders,
			&workload.Rating,
			&workload.IsAvailable,
		)
		if err != nil {
			return nil, err
		}

		if workload.WorkerID, err = kernel.UUIDFromBytes(userID[:]); err != nil {
			return nil, err
		}
		workloads = append(workloads, workload)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return workloads, nil
}
