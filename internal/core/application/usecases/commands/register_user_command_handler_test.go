package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/domain/model/user"
	"atelier/internal/pkg/errs"
)

func TestRegisterUserCommandHandler_NewUsersStartAsActiveCustomers(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	command, err := commands.NewRegisterUserCommand("auth0|fresh", "Amina Bello", "amina@example.com")
	require.NoError(t, err)

	handler := commands.NewRegisterUserCommandHandler(fakeUserUoWFactory{store})
	id, err := handler.Handle(ctx, command)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	registered, err := fakeUserRepo{store}.GetByExternalID(ctx, "auth0|fresh")
	require.NoError(t, err)
	assert.Equal(t, id, registered.ID().String())
	assert.Equal(t, user.RoleCustomer, registered.Role())
	assert.Equal(t, user.StatusActive, registered.Status())
	assert.Equal(t, "Amina Bello", registered.Name())

	require.Len(t, store.audits, 1)
	assert.Equal(t, "user.register", store.audits[0].Action)
}

func TestRegisterUserCommandHandler_DuplicateExternalIDIsRejected(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	handler := commands.NewRegisterUserCommandHandler(fakeUserUoWFactory{store})

	command, err := commands.NewRegisterUserCommand("auth0|dup", "First", "first@example.com")
	require.NoError(t, err)
	_, err = handler.Handle(ctx, command)
	require.NoError(t, err)

	command, err = commands.NewRegisterUserCommand("auth0|dup", "Second", "second@example.com")
	require.NoError(t, err)
	_, err = handler.Handle(ctx, command)
	assert.ErrorIs(t, err, errs.ErrAlreadyExists)
}

func TestRegisterUserCommand_Validation(t *testing.T) {
	_, err := commands.NewRegisterUserCommand("", "Name", "name@example.com")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewRegisterUserCommand("auth0|x", "", "name@example.com")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestRegisterUserCommandHandler_MalformedEmailIsRejected(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	handler := commands.NewRegisterUserCommandHandler(fakeUserUoWFactory{store})

	command, err := commands.NewRegisterUserCommand("auth0|bad", "Name", "not-an-email")
	require.NoError(t, err)

	_, err = handler.Handle(ctx, command)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Empty(t, store.users)
}
