package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	postgresadapter "atelier/internal/adapters/out/postgres"
	"atelier/internal/adapters/out/postgres/auditrepo"
	"atelier/internal/adapters/out/postgres/catalogrepo"
	"atelier/internal/adapters/out/postgres/orderrepo"
	"atelier/internal/adapters/out/postgres/userrepo"
	"atelier/internal/adapters/out/postgres/workerrepo"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/model/user"
	"atelier/internal/core/domain/model/worker"
	"atelier/internal/core/ports"
	"atelier/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes the PostgreSQL container, connects, and migrates
// the full schema the unit of work operates on.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Connect to database
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	// Run migrations
	err = db.AutoMigrate(
		&userrepo.UserDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ProgressEntryDTO{},
		&orderrepo.OrderCounterDTO{},
		&workerrepo.ProfileDTO{},
		&workerrepo.RatingDTO{},
		&catalogrepo.StyleDTO{},
		&catalogrepo.FabricDTO{},
		&auditrepo.AuditEntryDTO{},
	)
	suite.Require().NoError(err)

	// Create factory
	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE users, orders, order_progress, order_counters, " +
			"worker_profiles, worker_ratings, styles, fabrics, audit_log").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up the PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies factory creates isolated unit of
// work instances wired to every repository.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.UserRepository())
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.WorkerRepository())
	suite.NotNil(uow1.StyleRepository())
	suite.NotNil(uow1.FabricRepository())
	suite.NotNil(uow1.AuditRepository())
}

// TestUnitOfWork_TransactionLifecycle verifies begin, commit, and rollback
// behavior, including the deferred-rollback contract.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	// Handlers defer Rollback unconditionally, so rolling back after a
	// commit must be a no-op.
	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Rollback after commit should be a no-op")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_CommitWithoutBegin verifies committing with no active
// transaction is rejected.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitWithoutBegin() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")
}

// TestUnitOfWork_SingleRepositoryTransaction verifies repository operations
// within one transaction boundary persist after commit.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SingleRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testUser := suite.createTestUser("ext-single")

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.UserRepository().Add(ctx, testUser)
	suite.Require().NoError(err)

	// Visible within the transaction
	retrieved, err := uow.UserRepository().Get(ctx, testUser.ID())
	suite.Require().NoError(err)
	suite.Equal(testUser.ID(), retrieved.ID())

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Visible to a new unit of work after commit
	newUow := suite.factory.Create()
	retrieved, err = newUow.UserRepository().Get(ctx, testUser.ID())
	suite.Require().NoError(err)
	suite.Equal(testUser.ExternalID(), retrieved.ExternalID())
}

// TestUnitOfWork_MultiRepositoryTransaction verifies writes through
// different repositories inside one transaction commit atomically.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_MultiRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()
	now := suite.now()

	customer := suite.createTestUser("ext-customer")
	workerUser := suite.createTestUser("ext-worker")
	testOrder := suite.createTestOrder("ORD-2026-000001", customer.ID())

	profile, err := worker.NewProfile(kernel.NewUUID(), workerUser.ID(), now)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.UserRepository().Add(ctx, customer))
	suite.Require().NoError(uow.UserRepository().Add(ctx, workerUser))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.WorkerRepository().AddProfile(ctx, profile))

	// Assign the worker and take capacity inside the same transaction
	suite.Require().NoError(testOrder.AssignWorker(workerUser.ID(), nil, now))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, testOrder))

	suite.Require().NoError(profile.TakeAssignment(now))
	suite.Require().NoError(uow.WorkerRepository().UpdateProfile(ctx, profile))

	suite.Require().NoError(uow.AuditRepository().Add(ctx, ports.AuditEntry{
		ID:         kernel.NewUUID(),
		ActorID:    nil,
		Action:     "order.assign",
		EntityType: "order",
		EntityID:   testOrder.ID().String(),
		Details:    "integration fixture",
		CreatedAt:  now,
	}))

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Verify everything persisted together
	newUow := suite.factory.Create()

	retrievedOrder, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(retrievedOrder.AssignedWorkerID())
	suite.Equal(workerUser.ID(), *retrievedOrder.AssignedWorkerID())

	retrievedProfile, err := newUow.WorkerRepository().GetProfileByUserID(ctx, workerUser.ID())
	suite.Require().NoError(err)
	suite.Equal(1, retrievedProfile.CurrentWorkload())

	var auditCount int64
	suite.Require().NoError(suite.db.Model(&auditrepo.AuditEntryDTO{}).Count(&auditCount).Error)
	suite.Equal(int64(1), auditCount)
}

// TestUnitOfWork_TransactionRollback verifies rollback discards changes made
// through every repository.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testUser := suite.createTestUser("ext-rollback")
	testOrder := suite.createTestOrder("ORD-2026-000002", testUser.ID())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.UserRepository().Add(ctx, testUser))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	// Visible inside the transaction
	_, err = uow.UserRepository().Get(ctx, testUser.ID())
	suite.Require().NoError(err)
	_, err = uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	// Gone after rollback
	newUow := suite.factory.Create()

	_, err = newUow.UserRepository().Get(ctx, testUser.ID())
	suite.Require().Error(err, "User should not exist after rollback")

	_, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().Error(err, "Order should not exist after rollback")
}

// TestUnitOfWork_DuplicateExternalID verifies the unique index on external
// identity surfaces as an already-exists error inside a transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_DuplicateExternalID() {
	ctx := context.Background()
	uow := suite.factory.Create()

	existing := suite.createTestUser("ext-dup")
	err := uow.UserRepository().Add(ctx, existing)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	duplicate := suite.createTestUser("ext-dup")
	err = uow.UserRepository().Add(ctx, duplicate)
	suite.Require().ErrorIs(err, errs.ErrAlreadyExists)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	// The pre-transaction user survives
	newUow := suite.factory.Create()
	retrieved, err := newUow.UserRepository().GetByExternalID(ctx, "ext-dup")
	suite.Require().NoError(err)
	suite.Equal(existing.ID(), retrieved.ID())
}

// TestUnitOfWork_RepositoryIsolation verifies transactions on separate unit
// of work instances do not observe each other's uncommitted writes.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	user1 := suite.createTestUser("ext-iso-1")
	user2 := suite.createTestUser("ext-iso-2")

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	suite.Require().NoError(uow1.UserRepository().Add(ctx, user1))
	suite.Require().NoError(uow2.UserRepository().Add(ctx, user2))

	// Each transaction only sees its own changes
	_, err := uow1.UserRepository().Get(ctx, user1.ID())
	suite.Require().NoError(err, "UOW1 should see user1")

	_, err = uow1.UserRepository().Get(ctx, user2.ID())
	suite.Require().Error(err, "UOW1 should not see user2")

	_, err = uow2.UserRepository().Get(ctx, user2.ID())
	suite.Require().NoError(err, "UOW2 should see user2")

	_, err = uow2.UserRepository().Get(ctx, user1.ID())
	suite.Require().Error(err, "UOW2 should not see user1")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	// Only the committed user persists
	newUow := suite.factory.Create()
	_, err = newUow.UserRepository().Get(ctx, user1.ID())
	suite.Require().NoError(err, "User1 should persist after commit")

	_, err = newUow.UserRepository().Get(ctx, user2.ID())
	suite.Require().Error(err, "User2 should not persist after rollback")
}

// TestUnitOfWork_WithoutTransaction verifies repositories auto-commit when
// no transaction has been started.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testUser := suite.createTestUser("ext-autocommit")

	err := uow.UserRepository().Add(ctx, testUser)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrieved, err := newUow.UserRepository().Get(ctx, testUser.ID())
	suite.Require().NoError(err)
	suite.Equal(testUser.ID(), retrieved.ID())
}

// TestUnitOfWork_OrderLifecycleWorkflow walks an order from intake through
// delivery within transactions, verifying ledger growth and capacity
// release along the way.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_OrderLifecycleWorkflow() {
	ctx := context.Background()
	now := suite.now()

	customer := suite.createTestUser("ext-lifecycle-customer")
	workerUser := suite.createTestUser("ext-lifecycle-worker")
	profile, err := worker.NewProfile(kernel.NewUUID(), workerUser.ID(), now)
	suite.Require().NoError(err)

	// Intake: claim a number, create the order
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.UserRepository().Add(ctx, customer))
	suite.Require().NoError(uow.UserRepository().Add(ctx, workerUser))
	suite.Require().NoError(uow.WorkerRepository().AddProfile(ctx, profile))

	sequence, err := uow.OrderRepository().NextOrderSequence(ctx, now.Year())
	suite.Require().NoError(err)
	suite.Equal(1, sequence)

	testOrder := suite.createTestOrder(order.FormatOrderNumber(now.Year(), sequence), customer.ID())
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.Commit(ctx))

	// Assignment
	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	loadedOrder, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	loadedProfile, err := uow.WorkerRepository().GetProfileByUserIDForUpdate(ctx, workerUser.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(loadedOrder.AssignWorker(workerUser.ID(), nil, now))
	suite.Require().NoError(loadedProfile.TakeAssignment(now))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loadedOrder))
	suite.Require().NoError(uow.WorkerRepository().UpdateProfile(ctx, loadedProfile))
	suite.Require().NoError(uow.Commit(ctx))

	// Production progress through delivery
	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	loadedOrder, err = uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	workerID := workerUser.ID()
	suite.Require().NoError(loadedOrder.RecordProgress(order.StatusSewing, &workerID, "body assembled", nil, now))
	suite.Require().NoError(loadedOrder.RecordProgress(order.StatusDelivered, &workerID, "", nil, now))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loadedOrder))

	loadedProfile, err = uow.WorkerRepository().GetProfileByUserIDForUpdate(ctx, workerUser.ID())
	suite.Require().NoError(err)
	loadedProfile.ReleaseAssignment(now)
	suite.Require().NoError(uow.WorkerRepository().UpdateProfile(ctx, loadedProfile))
	suite.Require().NoError(uow.Commit(ctx))

	// Final state
	finalUow := suite.factory.Create()

	finalOrder, err := finalUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusDelivered, finalOrder.Status())
	suite.Len(finalOrder.Progress(), 3, "Confirmation plus two recorded stages")

	finalProfile, err := finalUow.WorkerRepository().GetProfileByUserID(ctx, workerUser.ID())
	suite.Require().NoError(err)
	suite.Equal(0, finalProfile.CurrentWorkload(), "Delivery should release capacity")
}

// TestUnitOfWork_SequenceSurvivesRollback verifies order numbers claimed in
// a rolled-back transaction leave a gap rather than a duplicate.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SequenceSurvivesRollback() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	first, err := uow.OrderRepository().NextOrderSequence(ctx, 2026)
	suite.Require().NoError(err)
	suite.Equal(1, first)

	suite.Require().NoError(uow.Rollback(ctx))

	// A rolled-back claim releases the counter row; the next claim may
	// reuse or skip the value, but it must never hand out a number already
	// carried by a persisted order.
	newUow := suite.factory.Create()
	next, err := newUow.OrderRepository().NextOrderSequence(ctx, 2026)
	suite.Require().NoError(err)
	suite.Positive(next)

	number := order.FormatOrderNumber(2026, next)
	var count int64
	err = suite.db.Model(&orderrepo.OrderDTO{}).Where("order_number = ?", number).Count(&count).Error
	suite.Require().NoError(err)
	suite.Zero(count)
}

// createTestUser creates an active customer for testing purposes.
func (suite *UnitOfWorkIntegrationTestSuite) createTestUser(externalID string) *user.User {
	testUser, err := user.NewUser(
		kernel.NewUUID(),
		externalID,
		fmt.Sprintf("Test %s", externalID),
		fmt.Sprintf("%s@example.com", externalID),
	)
	suite.Require().NoError(err)
	return testUser
}

// createTestOrder creates a standard customer-fabric order for testing
// purposes.
func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder(
	orderNumber string,
	customerID kernel.UUID,
) *order.Order {
	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		orderNumber,
		customerID,
		kernel.NewUUID(),
		nil,
		order.FabricSourceCustomer,
		nil,
		order.UrgencyStandard,
		8000.0,
		0.0,
		"integration fixture",
		suite.now(),
	)
	suite.Require().NoError(err)
	return testOrder
}

// now returns a timestamp that survives a round-trip through PostgreSQL,
// which stores microsecond precision.
func (suite *UnitOfWorkIntegrationTestSuite) now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
