package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/user"
	"atelier/internal/pkg/errs"
)

// GetOrderByIDQueryHandler retrieves one order and its ledger from the
// database. Uses direct SQL for optimal read performance in the CQRS
// pattern.
type GetOrderByIDQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderByIDQueryHandler creates a handler for single-order retrieval.
func NewGetOrderByIDQueryHandler(db *gorm.DB) GetOrderByIDQueryHandler {
	return GetOrderByIDQueryHandler{db: db}
}

// Handle executes the query. The order row is loaded first, then visibility
// is checked against the actor before the ledger is fetched.
func (h GetOrderByIDQueryHandler) Handle(
	ctx context.Context,
	query GetOrderByIDQuery,
) (GetOrderByIDQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderByIDQueryResponse{}, err
	}

	actor, err := loadActor(ctx, h.db, query.ActorExternalID())
	if err != nil {
		return GetOrderByIDQueryResponse{}, err
	}

	response, err := h.loadOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderByIDQueryResponse{}, err
	}

	if !orderVisibleTo(actor, response) {
		return GetOrderByIDQueryResponse{}, errs.NewForbiddenError("order is not visible to this account")
	}

	progress, err := h.loadProgress(ctx, query.OrderID())
	if err != nil {
		return GetOrderByIDQueryResponse{}, err
	}
	response.Progress = progress

	return response, nil
}

// orderVisibleTo applies the resource visibility rules: managers and admins
// always, customers only their own orders, workers only their assignment.
func orderVisibleTo(actor actorRow, o GetOrderByIDQueryResponse) bool {
	switch actor.Role {
	case user.RoleManager, user.RoleAdmin:
		return true
	case user.RoleCustomer:
		return o.CustomerID.IsEqual(actor.ID)
	case user.RoleWorker:
		return o.AssignedWorkerID != nil && o.AssignedWorkerID.IsEqual(actor.ID)
	default:
		return false
	}
}

func (h GetOrderByIDQueryHandler) loadOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (GetOrderByIDQueryResponse, error) {
	var (
		response           GetOrderByIDQueryResponse
		id                 uuid.UUID
		customerID         uuid.UUID
		measurementProfile uuid.UUID
		styleID            uuid.NullUUID
		fabricInventoryID  uuid.NullUUID
		assignedWorkerID   uuid.NullUUID
		assignedManagerID  uuid.NullUUID
		notes              sql.NullString
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			customer_id,
			style_id,
			fabric_source,
			fabric_inventory_id,
			measurement_profile_id,
			assigned_worker_id,
			assigned_manager_id,
			base_price,
			fabric_cost,
			additional_charges,
			discount,
			total_amount,
			amount_paid,
			urgency,
			status,
			estimated_completion_date,
			notes,
			created_at
		FROM orders
		WHERE id = ?
	`, orderID.String()).Row()

	err := row.Scan(
		&id,
		&response.OrderNumber,
		&customerID,
		&styleID,
		&response.FabricSource,
		&fabricInventoryID,
		&measurementProfile,
		&assignedWorkerID,
		&assignedManagerID,
		&response.BasePrice,
		&response.FabricCost,
		&response.AdditionalCharges,
		&response.Discount,
		&response.TotalAmount,
		&response.AmountPaid,
		&response.Urgency,
		&response.Status,
		&response.EstimatedCompletionDate,
		&notes,
		&response.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderByIDQueryResponse{}, errs.NewObjectNotFoundError("orderId", orderID.String())
	}
	if err != nil {
		return GetOrderByIDQueryResponse{}, err
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderByIDQueryResponse{}, err
	}
	if response.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return GetOrderByIDQueryResponse{}, err
	}
	if response.MeasurementProfileID, err = kernel.UUIDFromBytes(measurementProfile[:]); err != nil {
		return GetOrderByIDQueryResponse{}, err
	}
	if response.StyleID, err = optionalUUID(styleID); err != nil {
		return GetOrderByIDQueryResponse{}, err
	}
	if response.FabricInventoryID, err = optionalUUID(fabricInventoryID); err != nil {
		return GetOrderByIDQueryResponse{}, err
	}
	if response.AssignedWorkerID, err = optionalUUID(assignedWorkerID); err != nil {
		return GetOrderByIDQueryResponse{}, err
	}
	if response.AssignedManagerID, err = optionalUUID(assignedManagerID); err != nil {
		return GetOrderByIDQueryResponse{}, err
	}

	response.Notes = notes.String
	response.Balance = response.TotalAmount - response.AmountPaid
	return response, nil
}

func (h GetOrderByIDQueryHandler) loadProgress(
	ctx context.Context,
	orderID kernel.UUID,
) ([]ProgressEntryResponse, error) {
	entries := make([]ProgressEntryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, stage, completed_by, notes, images, recorded_at
		FROM order_progress
		WHERE order_id = ?
		ORDER BY recorded_at, id
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			entry       ProgressEntryResponse
			id          uuid.UUID
			completedBy uuid.NullUUID
			notes       sql.NullString
			images      pq.StringArray
		)

		if err = rows.Scan(&id, &entry.Stage, &completedBy, &notes, &images, &entry.RecordedAt); err != nil {
			return nil, err
		}

		if entry.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if entry.CompletedBy, err = optionalUUID(completedBy); err != nil {
			return nil, err
		}
		entry.Notes = notes.String
		entry.Images = images
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// optionalUUID converts a nullable database UUID to the domain type.
func optionalUUID(value uuid.NullUUID) (*kernel.UUID, error) {
	if !value.Valid {
		return nil, nil //nolint:nilnil //nil is the read-model representation of an absent reference
	}
	id, err := kernel.UUIDFromBytes(value.UUID[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
