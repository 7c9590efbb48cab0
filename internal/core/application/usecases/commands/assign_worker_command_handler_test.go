package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/domain/model/auth"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/model/user"
	"atelier/internal/core/domain/model/worker"
	"atelier/internal/core/ports"
	"atelier/internal/pkg/errs"
)

func TestAssignWorkerCommandHandler_ManagerAssignsAndClaimsCapacity(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	notifier := &fakeNotifier{}

	manager := store.addUser(restoreUserWithRole(t, "auth0|manager", user.RoleManager))
	tailor := store.addUser(restoreUserWithRole(t, "auth0|tailor", user.RoleWorker))
	store.addProfile(buildProfile(t, tailor.ID()))

	customer := store.addUser(restoreUserWithRole(t, "auth0|customer", user.RoleCustomer))
	aggregate := store.addOrder(buildOrder(t, customer.ID(), order.UrgencyStandard))

	command, err := commands.NewAssignWorkerCommand(manager.ExternalID(), aggregate.ID(), tailor.ID())
	require.NoError(t, err)

	handler := commands.NewAssignWorkerCommandHandler(fakeUoWFactory{store}, auth.NewMatrix(), notifier)
	require.NoError(t, handler.Handle(ctx, command))

	assigned, err := fakeOrderRepo{store}.Get(ctx, aggregate.ID())
	require.NoError(t, err)
	require.NotNil(t, assigned.AssignedWorkerID())
	assert.True(t, assigned.AssignedWorkerID().IsEqual(tailor.ID()))
	require.NotNil(t, assigned.AssignedManagerID())
	assert.True(t, assigned.AssignedManagerID().IsEqual(manager.ID()))

	profile, err := fakeWorkerRepo{store}.GetProfileByUserID(ctx, tailor.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, profile.CurrentWorkload())

	require.Len(t, notifier.published, 1)
	assert.Equal(t, tailor.ID(), notifier.published[0].UserID)
	assert.Equal(t, ports.NotificationAssignment, notifier.published[0].Kind)
}

func TestAssignWorkerCommandHandler_AdminAssignmentCarriesNoManagerStamp(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	notifier := &fakeNotifier{}

	admin := store.addUser(restoreUserWithRole(t, "auth0|admin", user.RoleAdmin))
	tailor := store.addUser(restoreUserWithRole(t, "auth0|tailor", user.RoleWorker))
	store.addProfile(buildProfile(t, tailor.ID()))

	customer := store.addUser(restoreUserWithRole(t, "auth0|customer", user.RoleCustomer))
	aggregate := store.addOrder(buildOrder(t, customer.ID(), order.UrgencyStandard))

	command, err := commands.NewAssignWorkerCommand(admin.ExternalID(), aggregate.ID(), tailor.ID())
	require.NoError(t, err)

	handler := commands.NewAssignWorkerCommandHandler(fakeUoWFactory{store}, auth.NewMatrix(), notifier)
	require.NoError(t, handler.Handle(ctx, command))

	assigned, err := fakeOrderRepo{store}.Get(ctx, aggregate.ID())
	require.NoError(t, err)
	assert.Nil(t, assigned.AssignedManagerID())
}

func TestAssignWorkerCommandHandler_CapacityCeilingIsHard(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	notifier := &fakeNotifier{}

	manager := store.addUser(restoreUserWithRole(t, "auth0|manager", user.RoleManager))
	tailor := store.addUser(restoreUserWithRole(t, "auth0|tailor", user.RoleWorker))

	now := time.Now().UTC()
	full, err := worker.RestoreProfile(
		kernel.NewUUID(), tailor.ID(), nil, 0, 0, nil, true,
		worker.DefaultMaxWorkload, worker.DefaultMaxWorkload, now, now)
	require.NoError(t, err)
	store.addProfile(full)

	customer := store.addUser(restoreUserWithRole(t, "auth0|customer", user.RoleCustomer))
	aggregate := store.addOrder(buildOrder(t, customer.ID(), order.UrgencyStandard))

	command, err := commands.NewAssignWorkerCommand(manager.ExternalID(), aggregate.ID(), tailor.ID())
	require.NoError(t, err)

	handler := commands.NewAssignWorkerCommandHandler(fakeUoWFactory{store}, auth.NewMatrix(), notifier)
	err = handler.Handle(ctx, command)
	assert.ErrorIs(t, err, errs.ErrCapacityExceeded)

	unchanged, err := fakeOrderRepo{store}.Get(ctx, aggregate.ID())
	require.NoError(t, err)
	assert.Nil(t, unchanged.AssignedWorkerID())
	assert.Empty(t, notifier.published)
	assert.Equal(t, 0, store.commits)
}

func TestAssignWorkerCommandHandler_ReassignmentReleasesPreviousWorker(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	notifier := &fakeNotifier{}

	manager := store.addUser(restoreUserWithRole(t, "auth0|manager", user.RoleManager))
	first := store.addUser(restoreUserWithRole(t, "auth0|first", user.RoleWorker))
	second := store.addUser(restoreUserWithRole(t, "auth0|second", user.RoleWorker))
	store.addProfile(buildProfile(t, first.ID()))
	store.addProfile(buildProfile(t, second.ID()))

	customer := store.addUser(restoreUserWithRole(t, "auth0|customer", user.RoleCustomer))
	aggregate := store.addOrder(buildOrder(t, customer.ID(), order.UrgencyStandard))

	handler := commands.NewAssignWorkerCommandHandler(fakeUoWFactory{store}, auth.NewMatrix(), notifier)

	command, err := commands.NewAssignWorkerCommand(manager.ExternalID(), aggregate.ID(), first.ID())
	require.NoError(t, err)
	require.NoError(t, handler.Handle(ctx, command))

	command, err = commands.NewAssignWorkerCommand(manager.ExternalID(), aggregate.ID(), second.ID())
	require.NoError(t, err)
	require.NoError(t, handler.Handle(ctx, command))

	firstProfile, err := fakeWorkerRepo{store}.GetProfileByUserID(ctx, first.ID())
	require.NoError(t, err)
	assert.Equal(t, 0, firstProfile.CurrentWorkload())

	secondProfile, err := fakeWorkerRepo{store}.GetProfileByUserID(ctx, second.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, secondProfile.CurrentWorkload())

	assigned, err := fakeOrderRepo{store}.Get(ctx, aggregate.ID())
	require.NoError(t, err)
	assert.True(t, assigned.AssignedWorkerID().IsEqual(second.ID()))
}

func TestAssignWorkerCommandHandler_SameWorkerReassignmentIsANoOp(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	notifier := &fakeNotifier{}

	manager := store.addUser(restoreUserWithRole(t, "auth0|manager", user.RoleManager))
	tailor := store.addUser(restoreUserWithRole(t, "auth0|tailor", user.RoleWorker))
	store.addProfile(buildProfile(t, tailor.ID()))

	customer := store.addUser(restoreUserWithRole(t, "auth0|customer", user.RoleCustomer))
	aggregate := store.addOrder(buildOrder(t, customer.ID(), order.UrgencyStandard))

	handler := commands.NewAssignWorkerCommandHandler(fakeUoWFactory{store}, auth.NewMatrix(), notifier)

	command, err := commands.NewAssignWorkerCommand(manager.ExternalID(), aggregate.ID(), tailor.ID())
	require.NoError(t, err)
	require.NoError(t, handler.Handle(ctx, command))
	require.NoError(t, handler.Handle(ctx, command))

	profile, err := fakeWorkerRepo{store}.GetProfileByUserID(ctx, tailor.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, profile.CurrentWorkload())
	assert.Len(t, notifier.published, 1)
}

func TestAssignWorkerCommandHandler_RejectsNonWorkerTarget(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	notifier := &fakeNotifier{}

	manager := store.addUser(restoreUserWithRole(t, "auth0|manager", user.RoleManager))
	customer := store.addUser(restoreUserWithRole(t, "auth0|customer", user.RoleCustomer))
	aggregate := store.addOrder(buildOrder(t, customer.ID(), order.UrgencyStandard))

	command, err := commands.NewAssignWorkerCommand(manager.ExternalID(), aggregate.ID(), customer.ID())
	require.NoError(t, err)

	handler := commands.NewAssignWorkerCommandHandler(fakeUoWFactory{store}, auth.NewMatrix(), notifier)
	err = handler.Handle(ctx, command)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestAssignWorkerCommandHandler_RejectsTerminalOrders(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	notifier := &fakeNotifier{}

	manager := store.addUser(restoreUserWithRole(t, "auth0|manager", user.RoleManager))
	tailor := store.addUser(restoreUserWithRole(t, "auth0|tailor", user.RoleWorker))
	store.addProfile(buildProfile(t, tailor.ID()))

	customer := store.addUser(restoreUserWithRole(t, "auth0|customer", user.RoleCustomer))
	aggregate := buildOrder(t, customer.ID(), order.UrgencyStandard)
	require.NoError(t, aggregate.Cancel(time.Now().UTC()))
	store.addOrder(aggregate)

	command, err := commands.NewAssignWorkerCommand(manager.ExternalID(), aggregate.ID(), tailor.ID())
	require.NoError(t, err)

	handler := commands.NewAssignWorkerCommandHandler(fakeUoWFactory{store}, auth.NewMatrix(), notifier)
	err = handler.Handle(ctx, command)
	assert.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestAssignWorkerCommandHandler_WorkersMayNotAssign(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	notifier := &fakeNotifier{}

	tailor := store.addUser(restoreUserWithRole(t, "auth0|tailor", user.RoleWorker))
	store.addProfile(buildProfile(t, tailor.ID()))

	customer := store.addUser(restoreUserWithRole(t, "auth0|customer", user.RoleCustomer))
	aggregate := store.addOrder(buildOrder(t, customer.ID(), order.UrgencyStandard))

	command, err := commands.NewAssignWorkerCommand(tailor.ExternalID(), aggregate.ID(), tailor.ID())
	require.NoError(t, err)

	handler := commands.NewAssignWorkerCommandHandler(fakeUoWFactory{store}, auth.NewMatrix(), notifier)
	err = handler.Handle(ctx, command)
	assert.ErrorIs(t, err, errs.ErrForbidden)
}
