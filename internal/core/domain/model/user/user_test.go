package user_test

import (
	"testing"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/user"
	"atelier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("should create an active customer", func(t *testing.T) {
		id := kernel.NewUUID()
		u, err := user.NewUser(id, "ext-1", "Amara Diallo", "amara@example.com")

		require.NoError(t, err)
		assert.True(t, u.ID().IsEqual(id))
		assert.Equal(t, "ext-1", u.ExternalID())
		assert.Equal(t, user.RoleCustomer, u.Role())
		assert.Equal(t, user.StatusActive, u.Status())
		assert.True(t, u.IsActive())
		assert.NoError(t, u.Validate())
	})

	t.Run("should reject missing fields", func(t *testing.T) {
		tests := map[string]struct {
			externalID, name, email string
		}{
			"empty external id": {"", "Amara", "amara@example.com"},
			"empty name":        {"ext-1", "", "amara@example.com"},
			"empty email":       {"ext-1", "Amara", ""},
		}

		for name, tc := range tests {
			t.Run(name, func(t *testing.T) {
				_, err := user.NewUser(kernel.NewUUID(), tc.externalID, tc.name, tc.email)
				assert.ErrorIs(t, err, errs.ErrValueIsRequired)
			})
		}
	})

	t.Run("should reject malformed email", func(t *testing.T) {
		_, err := user.NewUser(kernel.NewUUID(), "ext-1", "Amara", "not-an-email")
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject zero UUID", func(t *testing.T) {
		_, err := user.NewUser(kernel.UUID{}, "ext-1", "Amara", "amara@example.com")
		assert.Error(t, err)
	})
}

func TestRestoreUser(t *testing.T) {
	t.Run("should restore stored role and status", func(t *testing.T) {
		u, err := user.RestoreUser(kernel.NewUUID(), "ext-2", "Bekele", "b@example.com",
			user.RoleWorker, user.StatusSuspended)

		require.NoError(t, err)
		assert.Equal(t, user.RoleWorker, u.Role())
		assert.Equal(t, user.StatusSuspended, u.Status())
		assert.False(t, u.IsActive())
	})

	t.Run("should reject unknown role", func(t *testing.T) {
		_, err := user.RestoreUser(kernel.NewUUID(), "ext-2", "Bekele", "b@example.com",
			user.RoleUnknown, user.StatusActive)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestUser_ChangeRole(t *testing.T) {
	u, err := user.NewUser(kernel.NewUUID(), "ext-3", "Chidi", "c@example.com")
	require.NoError(t, err)

	require.NoError(t, u.ChangeRole(user.RoleWorker))
	assert.Equal(t, user.RoleWorker, u.Role())

	assert.Error(t, u.ChangeRole(user.RoleUnknown))
	assert.Equal(t, user.RoleWorker, u.Role())
}

func TestUser_ChangeStatus(t *testing.T) {
	u, err := user.NewUser(kernel.NewUUID(), "ext-4", "Dara", "d@example.com")
	require.NoError(t, err)

	require.NoError(t, u.ChangeStatus(user.StatusInactive))
	assert.False(t, u.IsActive())

	assert.Error(t, u.ChangeStatus(user.StatusUnknown))
	assert.Equal(t, user.StatusInactive, u.Status())
}

func TestUser_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var u user.User
		assert.ErrorIs(t, u.Validate(), user.ErrUserIsNotConstructed)
	})

	t.Run("nil user fails validation", func(t *testing.T) {
		var u *user.User
		assert.ErrorIs(t, u.Validate(), user.ErrUserIsNotConstructed)
	})
}

func TestRoleFromString(t *testing.T) {
	for _, s := range []string{"customer", "worker", "manager", "admin"} {
		role, err := user.RoleFromString(s)
		require.NoError(t, err)
		assert.Equal(t, s, role.String())
	}

	_, err := user.RoleFromString("superuser")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatusFromString(t *testing.T) {
	for _, s := range []string{"active", "suspended", "inactive"} {
		status, err := user.StatusFromString(s)
		require.NoError(t, err)
		assert.Equal(t, s, status.String())
	}

	_, err := user.StatusFromString("banned")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
