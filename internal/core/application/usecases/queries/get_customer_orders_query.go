package queries

import (
	"errors"

	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

var ErrGetCustomerOrdersQueryIsNotConstructed = errors.New(
	"GetCustomerOrdersQuery must be created via NewGetCustomerOrdersQuery constructor",
)

// GetCustomerOrdersQuery retrieves the acting customer's own orders,
// newest first.
type GetCustomerOrdersQuery struct {
	actorExternalID string

	guard guard.ConstructorGuard
}

// NewGetCustomerOrdersQuery creates a query for the caller's order history.
func NewGetCustomerOrdersQuery(actorExternalID string) (GetCustomerOrdersQuery, error) {
	if actorExternalID == "" {
		return GetCustomerOrdersQuery{}, errs.NewValueIsRequiredError("actorExternalID")
	}

	return GetCustomerOrdersQuery{
		actorExternalID: actorExternalID,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerOrdersQueryIsNotConstructed)
}

// ActorExternalID returns the caller's external identity.
func (q GetCustomerOrdersQuery) ActorExternalID() string {
	return q.actorExternalID
}
