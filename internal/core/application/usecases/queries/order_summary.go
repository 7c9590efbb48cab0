package queries

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"atelier/internal/core/domain/model/kernel"
)

// OrderSummaryResponse is the list-view order read model shared by the
// customer, worker, and managerial order listings.
type OrderSummaryResponse struct {
	ID                      kernel.UUID
	OrderNumber             string
	CustomerID              kernel.UUID
	AssignedWorkerID        *kernel.UUID
	Urgency                 string
	Status                  string
	TotalAmount             float64
	AmountPaid              float64
	EstimatedCompletionDate time.Time
	CreatedAt               time.Time
}

// orderSummaryColumns is the projection behind OrderSummaryResponse.
const orderSummaryColumns = `
	id,
	order_number,
	customer_id,
	assigned_worker_id,
	urgency,
	status,
	total_amount,
	amount_paid,
	estimated_completion_date,
	created_at
`

// scanOrderSummaries drains rows produced by an orderSummaryColumns
// projection into read models.
func scanOrderSummaries(rows *sql.Rows) ([]OrderSummaryResponse, error) {
	summaries := make([]OrderSummaryResponse, 0)

	for rows.Next() {
		var (
			summary          OrderSummaryResponse
			id               uuid.UUID
			customerID       uuid.UUID
			assignedWorkerID uuid.NullUUID
		)

		err := rows.Scan(
			&id,
			&summary.OrderNumber,
			&customerID,
			&assignedWorkerID,
			&summary.Urgency,
			&summary.Status,
			&summary.TotalAmount,
			&summary.AmountPaid,
			&summary.EstimatedCompletionDate,
			&summary.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if summary.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}
		if summary.AssignedWorkerID, err = optionalUUID(assignedWorkerID); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
