package queries

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

var ErrGetWorkerWorkloadQueryIsNotConstructed = errors.New(
	"GetWorkerWorkloadQuery must be created via NewGetWorkerWorkloadQuery constructor",
)

// GetWorkerWorkloadQuery retrieves the capacity dashboard: every worker
// profile with its open assignment count against the ceiling. Reserved for
// managers and admins planning assignments.
type GetWorkerWorkloadQuery struct {
	actorExternalID string

	guard guard.ConstructorGuard
}

// NewGetWorkerWorkloadQuery creates a query for the workload dashboard.
func NewGetWorkerWorkloadQuery(actorExternalID string) (GetWorkerWorkloadQuery, error) {
	if actorExternalID == "" {
		return GetWorkerWorkloadQuery{}, errs.NewValueIsRequiredError("actorExternalID")
	}

	return GetWorkerWorkloadQuery{
		actorExternalID: actorExternalID,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetWorkerWorkloadQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkerWorkloadQueryIsNotConstructed)
}

// ActorExternalID returns the caller's external identity.
func (q GetWorkerWorkloadQuery) ActorExternalID() string {
	return q.actorExternalID
}

// GetWorkerWorkloadQueryResponse is one worker's row on the capacity
// dashboard. ActiveOrders is counted live from the order book, while
// CurrentWorkload is the profile's claimed capacity; the two agree unless
// an operator has intervened manually.
type GetWorkerWorkloadQueryResponse struct {
	WorkerID        kernel.UUID
	Name            string
	CurrentWorkload int
	MaxWorkload     int
	ActiveOrders    int
	Rating          float64
	IsAvailable     bool
}
