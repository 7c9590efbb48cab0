package queries

import (
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

var ErrGetOrderByIDQueryIsNotConstructed = errors.New(
	"GetOrderByIDQuery must be created via NewGetOrderByIDQuery constructor",
)

// GetOrderByIDQuery retrieves one order with its full progress ledger.
// Visibility follows the resource rules: managers and admins see any order,
// customers their own, workers their assignment.
type GetOrderByIDQuery struct {
	actorExternalID string
	orderID         kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderByIDQuery creates a query for a single order.
func NewGetOrderByIDQuery(actorExternalID string, orderID kernel.UUID) (GetOrderByIDQuery, error) {
	if actorExternalID == "" {
		return GetOrderByIDQuery{}, errs.NewValueIsRequiredError("actorExternalID")
	}
	if err := orderID.Validate(); err != nil {
		return GetOrderByIDQuery{}, err
	}

	return GetOrderByIDQuery{
		actorExternalID: actorExternalID,
		orderID:         orderID,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderByIDQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByIDQueryIsNotConstructed)
}

// ActorExternalID returns the caller's external identity.
func (q GetOrderByIDQuery) ActorExternalID() string {
	return q.actorExternalID
}

// OrderID returns the order to retrieve.
func (q GetOrderByIDQuery) OrderID() kernel.UUID {
	return q.orderID
}

// ProgressEntryResponse is one row of the order's progress ledger in the
// read model.
type ProgressEntryResponse struct {
	ID          kernel.UUID
	Stage       string
	CompletedBy *kernel.UUID
	Notes       string
	Images      []string
	RecordedAt  time.Time
}

// GetOrderByIDQueryResponse is the detailed order read model.
type GetOrderByIDQueryResponse struct {
	ID                      kernel.UUID
	OrderNumber             string
	CustomerID              kernel.UUID
	StyleID                 *kernel.UUID
	FabricSource            string
	FabricInventoryID       *kernel.UUID
	MeasurementProfileID    kernel.UUID
	AssignedWorkerID        *kernel.UUID
	AssignedManagerID       *kernel.UUID
	BasePrice               float64
	FabricCost              float64
	AdditionalCharges       float64
	Discount                float64
	TotalAmount             float64
	AmountPaid              float64
	Balance                 float64
	Urgency                 string
	Status                  string
	EstimatedCompletionDate time.Time
	Notes                   string
	Progress                []ProgressEntryResponse
	CreatedAt               time.Time
}
