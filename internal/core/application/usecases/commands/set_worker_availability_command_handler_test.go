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

func TestSetWorkerAvailabilityCommandHandler_WorkerTogglesOwnFlag(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	tailor := store.addUser(restoreUserWithRole(t, "auth0|tailor", user.RoleWorker))
	store.addProfile(buildProfile(t, tailor.ID()))

	command, err := commands.NewSetWorkerAvailabilityCommand(tailor.ExternalID(), false)
	require.NoError(t, err)

	handler := commands.NewSetWorkerAvailabilityCommandHandler(fakeUserUoWFactory{store})
	require.NoError(t, handler.Handle(ctx, command))

	profile, err := fakeWorkerRepo{store}.GetProfileByUserID(ctx, tailor.ID())
	require.NoError(t, err)
	assert.False(t, profile.IsAvailable())

	require.Len(t, store.audits, 1)
	assert.Equal(t, "worker.set_availability", store.audits[0].Action)
}

func TestSetWorkerAvailabilityCommandHandler_OnlyWorkersMaySet(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	customer := store.addUser(restoreUserWithRole(t, "auth0|customer", user.RoleCustomer))

	command, err := commands.NewSetWorkerAvailabilityCommand(customer.ExternalID(), false)
	require.NoError(t, err)

	handler := commands.NewSetWorkerAvailabilityCommandHandler(fakeUserUoWFactory{store})
	err = handler.Handle(ctx, command)
	assert.ErrorIs(t, err, errs.ErrForbidden)
}

func TestSetWorkerAvailabilityCommandHandler_SuspendedWorkerIsRejected(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	tailor := store.addUser(restoreSuspendedUser(t, "auth0|tailor", user.RoleWorker))
	store.addProfile(buildProfile(t, tailor.ID()))

	command, err := commands.NewSetWorkerAvailabilityCommand(tailor.ExternalID(), true)
	require.NoError(t, err)

	handler := commands.NewSetWorkerAvailabilityCommandHandler(fakeUserUoWFactory{store})
	err = handler.Handle(ctx, command)
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)
}
