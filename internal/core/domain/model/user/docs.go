// Package user models platform identities: who a person is, which role they
// act in, and whether the account may act at all.
//
// User is the aggregate root. Role and Status are value objects that own
// their valid sets; the aggregate exposes ChangeRole and ChangeStatus for
// admin-driven lifecycle changes. Authorization decisions live in the auth
// package, not here.
package user
