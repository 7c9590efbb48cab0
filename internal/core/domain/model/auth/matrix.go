package auth

import (
	"fmt"

	"atelier/internal/core/domain/model/user"
	"atelier/internal/pkg/errs"
)

// Matrix is the immutable capability-to-roles table. Build it once with
// NewMatrix and share it; lookups are read-only and safe for concurrent use.
type Matrix struct {
	grants map[Capability]map[user.Role]struct{}
}

// NewMatrix returns the production authorization table.
func NewMatrix() *Matrix {
	everyone := []user.Role{user.RoleCustomer, user.RoleWorker, user.RoleManager, user.RoleAdmin}
	adminOnly := []user.Role{user.RoleAdmin}
	managerial := []user.Role{user.RoleManager, user.RoleAdmin}

	table := map[Capability][]user.Role{
		ViewStyles:  everyone,
		CreateStyle: adminOnly,
		EditStyle:   adminOnly,
		DeleteStyle: adminOnly,
		LikeStyle:   everyone,

		CreateOrder:         {user.RoleCustomer},
		ViewOwnOrders:       {user.RoleCustomer},
		ViewAllOrders:       managerial,
		ViewAssignedOrders:  {user.RoleWorker},
		EditOrder:           adminOnly,
		CancelOrder:         {user.RoleCustomer, user.RoleAdmin},
		AssignWorker:        managerial,
		UpdateOrderProgress: {user.RoleWorker, user.RoleManager, user.RoleAdmin},

		MakePayment:            {user.RoleCustomer},
		ViewOwnPayments:        {user.RoleCustomer},
		ViewPaymentAmounts:     managerial,
		ViewFullFinancials:     adminOnly,
		ManagePaymentProviders: adminOnly,

		ChatWithAdmin:   {user.RoleCustomer, user.RoleManager},
		ChatWithManager: {user.RoleWorker},
		ChatWithWorker:  {user.RoleManager},
		ChatWithAnyone:  adminOnly,

		ManageUsers:        adminOnly,
		AssignManager:      adminOnly,
		ViewWorkerProfiles: managerial,
		RateWorker:         {user.RoleCustomer},
		ViewHuddles:        {user.RoleWorker, user.RoleManager, user.RoleAdmin},
		CreateHuddle:       managerial,
		ViewAnalytics:      adminOnly,
		ViewWorkload:       managerial,
	}

	grants := make(map[Capability]map[user.Role]struct{}, len(table))
	for capability, roles := range table {
		set := make(map[user.Role]struct{}, len(roles))
		for _, role := range roles {
			set[role] = struct{}{}
		}
		grants[capability] = set
	}

	return &Matrix{grants: grants}
}

// Allowed reports whether the role holds the capability. Unknown
// capabilities are denied for every role.
func (m *Matrix) Allowed(role user.Role, capability Capability) bool {
	roles, ok := m.grants[capability]
	if !ok {
		return false
	}
	_, ok = roles[role]
	return ok
}

// Require gates an operation on behalf of an actor.
//
// A nil actor or a non-active account yields an unauthenticated error: the
// caller has no acting identity, regardless of what the role would permit.
// An active actor whose role lacks the capability yields a forbidden error.
func (m *Matrix) Require(actor *user.User, capability Capability) error {
	if actor == nil {
		return errs.NewUnauthenticatedError("no acting identity")
	}
	if !actor.IsActive() {
		return errs.NewUnauthenticatedError(
			fmt.Sprintf("account is %s", actor.Status()))
	}
	if !m.Allowed(actor.Role(), capability) {
		return errs.NewForbiddenError(
			fmt.Sprintf("role %s lacks %s", actor.Role(), capability))
	}
	return nil
}
