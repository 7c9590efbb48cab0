package queries

import (
	"errors"

	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

var ErrGetAssignedOrdersQueryIsNotConstructed = errors.New(
	"GetAssignedOrdersQuery must be created via NewGetAssignedOrdersQuery constructor",
)

// GetAssignedOrdersQuery retrieves the acting worker's open assignments.
// Terminal orders drop out of the listing: the worker's queue shows only
// work still in flight.
type GetAssignedOrdersQuery struct {
	actorExternalID string

	guard guard.ConstructorGuard
}

// NewGetAssignedOrdersQuery creates a query for the caller's assignments.
func NewGetAssignedOrdersQuery(actorExternalID string) (GetAssignedOrdersQuery, error) {
	if actorExternalID == "" {
		return GetAssignedOrdersQuery{}, errs.NewValueIsRequiredError("actorExternalID")
	}

	return GetAssignedOrdersQuery{
		actorExternalID: actorExternalID,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAssignedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAssignedOrdersQueryIsNotConstructed)
}

// ActorExternalID returns the caller's external identity.
func (q GetAssignedOrdersQuery) ActorExternalID() string {
	return q.actorExternalID
}
