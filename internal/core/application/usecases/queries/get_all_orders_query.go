package queries

import (
	"errors"

	"atelier/internal/core/domain/model/order"
	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

var ErrGetAllOrdersQueryIsNotConstructed = errors.New(
	"GetAllOrdersQuery must be created via NewGetAllOrdersQuery constructor",
)

// GetAllOrdersQuery retrieves every order in the system, optionally
// narrowed to one status. Reserved for managers and admins.
type GetAllOrdersQuery struct {
	actorExternalID string
	status          order.Status

	guard guard.ConstructorGuard
}

// NewGetAllOrdersQuery creates a query for the full order book. Pass
// order.StatusUnknown to list every status.
func NewGetAllOrdersQuery(actorExternalID string, status order.Status) (GetAllOrdersQuery, error) {
	if actorExternalID == "" {
		return GetAllOrdersQuery{}, errs.NewValueIsRequiredError("actorExternalID")
	}
	if status != order.StatusUnknown {
		if err := status.Validate(); err != nil {
			return GetAllOrdersQuery{}, err
		}
	}

	return GetAllOrdersQuery{
		actorExternalID: actorExternalID,
		status:          status,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAllOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllOrdersQueryIsNotConstructed)
}

// ActorExternalID returns the caller's external identity.
func (q GetAllOrdersQuery) ActorExternalID() string {
	return q.actorExternalID
}

// Status returns the status filter, or order.StatusUnknown for no filter.
func (q GetAllOrdersQuery) Status() order.Status {
	return q.status
}
