package queries_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"atelier/internal/adapters/out/postgres/orderrepo"
	"atelier/internal/adapters/out/postgres/userrepo"
	"atelier/internal/adapters/out/postgres/workerrepo"
	"atelier/internal/core/application/usecases/queries"
	"atelier/internal/core/domain/model/auth"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/model/user"
	"atelier/internal/core/domain/model/worker"
	"atelier/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// noopTracker satisfies the repositories' aggregate tracking without
// recording anything; the read models never look at tracked aggregates.
type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// QueryHandlersIntegrationTestSuite exercises the raw-SQL read models
// against PostgreSQL: visibility rules, orderings, filters, and the
// workload projection's live assignment counts.
type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB

	getOrderByID      queries.GetOrderByIDQueryHandler
	getCustomerOrders queries.GetCustomerOrdersQueryHandler
	getAssignedOrders queries.GetAssignedOrdersQueryHandler
	getAllOrders      queries.GetAllOrdersQueryHandler
	getWorkerWorkload queries.GetWorkerWorkloadQueryHandler
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&userrepo.UserDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ProgressEntryDTO{},
		&workerrepo.ProfileDTO{},
		&workerrepo.RatingDTO{},
	))

	matrix := auth.NewMatrix()
	suite.getOrderByID = queries.NewGetOrderByIDQueryHandler(db)
	suite.getCustomerOrders = queries.NewGetCustomerOrdersQueryHandler(db, matrix)
	suite.getAssignedOrders = queries.NewGetAssignedOrdersQueryHandler(db, matrix)
	suite.getAllOrders = queries.NewGetAllOrdersQueryHandler(db, matrix)
	suite.getWorkerWorkload = queries.NewGetWorkerWorkloadQueryHandler(db, matrix)
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE users, orders, order_progress, worker_profiles, worker_ratings").Error
	suite.Require().NoError(err)
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrderByID_CustomerSeesOwnOrderWithLedger() {
	ctx := context.Background()

	customer := suite.createUser("auth0|customer", user.RoleCustomer)
	tailor := suite.createUser("auth0|tailor", user.RoleWorker)

	testOrder := suite.buildOrder(customer.ID(), order.UrgencyExpress, suite.now())
	tailorID := tailor.ID()
	err := testOrder.RecordProgress(
		order.StatusSewing, &tailorID, "sleeves attached", []string{"https://img.example/1.jpg"}, suite.now())
	suite.Require().NoError(err)
	suite.saveOrder(testOrder)

	query, err := queries.NewGetOrderByIDQuery(customer.ExternalID(), testOrder.ID())
	suite.Require().NoError(err)

	response, err := suite.getOrderByID.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(testOrder.ID(), response.ID)
	suite.Equal(testOrder.OrderNumber(), response.OrderNumber)
	suite.Equal(customer.ID(), response.CustomerID)
	suite.Equal(order.StatusSewing.String(), response.Status)
	suite.InDelta(testOrder.TotalAmount(), response.TotalAmount, 0.001)
	suite.InDelta(testOrder.Balance(), response.Balance, 0.001)

	suite.Require().Len(response.Progress, len(testOrder.Progress()))
	last := response.Progress[len(response.Progress)-1]
	suite.Equal(order.StatusSewing.String(), last.Stage)
	suite.Require().NotNil(last.CompletedBy)
	suite.Equal(tailorID, *last.CompletedBy)
	suite.Equal("sleeves attached", last.Notes)
	suite.Equal([]string{"https://img.example/1.jpg"}, []string(last.Images))
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrderByID_HiddenFromOtherCustomers() {
	ctx := context.Background()

	owner := suite.createUser("auth0|owner", user.RoleCustomer)
	other := suite.createUser("auth0|other", user.RoleCustomer)

	testOrder := suite.buildOrder(owner.ID(), order.UrgencyStandard, suite.now())
	suite.saveOrder(testOrder)

	query, err := queries.NewGetOrderByIDQuery(other.ExternalID(), testOrder.ID())
	suite.Require().NoError(err)

	_, err = suite.getOrderByID.Handle(ctx, query)
	suite.Require().ErrorIs(err, errs.ErrForbidden)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrderByID_AssignedWorkerSeesOrder() {
	ctx := context.Background()

	customer := suite.createUser("auth0|customer", user.RoleCustomer)
	tailor := suite.createUser("auth0|tailor", user.RoleWorker)

	testOrder := suite.buildOrder(customer.ID(), order.UrgencyStandard, suite.now())
	suite.Require().NoError(testOrder.AssignWorker(tailor.ID(), nil, suite.now()))
	suite.saveOrder(testOrder)

	query, err := queries.NewGetOrderByIDQuery(tailor.ExternalID(), testOrder.ID())
	suite.Require().NoError(err)

	response, err := suite.getOrderByID.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), response.ID)
	suite.Require().NotNil(response.AssignedWorkerID)
	suite.Equal(tailor.ID(), *response.AssignedWorkerID)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrderByID_NonExistent_ReturnsNotFoundError() {
	ctx := context.Background()

	manager := suite.createUser("auth0|manager", user.RoleManager)

	query, err := queries.NewGetOrderByIDQuery(manager.ExternalID(), kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.getOrderByID.Handle(ctx, query)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetAllOrders_NewestFirstWithStatusFilter() {
	ctx := context.Background()

	manager := suite.createUser("auth0|manager", user.RoleManager)
	customer := suite.createUser("auth0|customer", user.RoleCustomer)

	base := suite.now().Add(-time.Hour)
	oldest := suite.buildOrder(customer.ID(), order.UrgencyStandard, base)
	middle := suite.buildOrder(customer.ID(), order.UrgencyStandard, base.Add(time.Minute))
	newest := suite.buildOrder(customer.ID(), order.UrgencyStandard, base.Add(2*time.Minute))
	suite.Require().NoError(middle.RecordProgress(order.StatusSewing, nil, "", nil, suite.now()))
	for _, o := range []*order.Order{oldest, middle, newest} {
		suite.saveOrder(o)
	}

	query, err := queries.NewGetAllOrdersQuery(manager.ExternalID(), order.StatusUnknown)
	suite.Require().NoError(err)

	all, err := suite.getAllOrders.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(all, 3)
	suite.Equal(newest.ID(), all[0].ID)
	suite.Equal(middle.ID(), all[1].ID)
	suite.Equal(oldest.ID(), all[2].ID)

	filtered, err := queries.NewGetAllOrdersQuery(manager.ExternalID(), order.StatusSewing)
	suite.Require().NoError(err)

	sewing, err := suite.getAllOrders.Handle(ctx, filtered)
	suite.Require().NoError(err)
	suite.Require().Len(sewing, 1)
	suite.Equal(middle.ID(), sewing[0].ID)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetAllOrders_CustomersAreForbidden() {
	ctx := context.Background()

	customer := suite.createUser("auth0|customer", user.RoleCustomer)

	query, err := queries.NewGetAllOrdersQuery(customer.ExternalID(), order.StatusUnknown)
	suite.Require().NoError(err)

	_, err = suite.getAllOrders.Handle(ctx, query)
	suite.Require().ErrorIs(err, errs.ErrForbidden)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetCustomerOrders_ReturnsOnlyOwnNewestFirst() {
	ctx := context.Background()

	customer := suite.createUser("auth0|customer", user.RoleCustomer)
	neighbor := suite.createUser("auth0|neighbor", user.RoleCustomer)

	base := suite.now().Add(-time.Hour)
	older := suite.buildOrder(customer.ID(), order.UrgencyStandard, base)
	newer := suite.buildOrder(customer.ID(), order.UrgencyExpress, base.Add(time.Minute))
	foreign := suite.buildOrder(neighbor.ID(), order.UrgencyStandard, base)
	for _, o := range []*order.Order{older, newer, foreign} {
		suite.saveOrder(o)
	}

	query, err := queries.NewGetCustomerOrdersQuery(customer.ExternalID())
	suite.Require().NoError(err)

	mine, err := suite.getCustomerOrders.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(mine, 2)
	suite.Equal(newer.ID(), mine[0].ID)
	suite.Equal(older.ID(), mine[1].ID)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetAssignedOrders_SkipsTerminalAndSortsByDueDate() {
	ctx := context.Background()

	customer := suite.createUser("auth0|customer", user.RoleCustomer)
	tailor := suite.createUser("auth0|tailor", user.RoleWorker)

	now := suite.now()
	urgent := suite.buildOrder(customer.ID(), order.UrgencyExpress, now)
	relaxed := suite.buildOrder(customer.ID(), order.UrgencyStandard, now)
	finished := suite.buildOrder(customer.ID(), order.UrgencyExpress, now)

	for _, o := range []*order.Order{urgent, relaxed, finished} {
		suite.Require().NoError(o.AssignWorker(tailor.ID(), nil, now))
	}
	suite.Require().NoError(finished.RecordProgress(order.StatusDelivered, nil, "", nil, now))
	for _, o := range []*order.Order{urgent, relaxed, finished} {
		suite.saveOrder(o)
	}

	query, err := queries.NewGetAssignedOrdersQuery(tailor.ExternalID())
	suite.Require().NoError(err)

	assigned, err := suite.getAssignedOrders.Handle(ctx, query)
	suite.Require().NoError(err)

	// The delivered order drops out; the express order is due sooner and
	// sorts ahead of the standard one.
	suite.Require().Len(assigned, 2)
	suite.Equal(urgent.ID(), assigned[0].ID)
	suite.Equal(relaxed.ID(), assigned[1].ID)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetWorkerWorkload_RanksByFreeCapacityWithLiveCounts() {
	ctx := context.Background()

	manager := suite.createUser("auth0|manager", user.RoleManager)
	customer := suite.createUser("auth0|customer", user.RoleCustomer)
	busy := suite.createUser("auth0|busy", user.RoleWorker)
	idle := suite.createUser("auth0|idle", user.RoleWorker)

	now := suite.now()
	busyProfile := suite.createProfile(busy.ID())
	suite.Require().NoError(busyProfile.TakeAssignment(now))
	suite.Require().NoError(busyProfile.TakeAssignment(now))
	suite.updateProfile(busyProfile)
	suite.createProfile(idle.ID())

	active := suite.buildOrder(customer.ID(), order.UrgencyStandard, now)
	suite.Require().NoError(active.AssignWorker(busy.ID(), nil, now))
	delivered := suite.buildOrder(customer.ID(), order.UrgencyStandard, now)
	suite.Require().NoError(delivered.AssignWorker(busy.ID(), nil, now))
	suite.Require().NoError(delivered.RecordProgress(order.StatusDelivered, nil, "", nil, now))
	suite.saveOrder(active)
	suite.saveOrder(delivered)

	query, err := queries.NewGetWorkerWorkloadQuery(manager.ExternalID())
	suite.Require().NoError(err)

	workloads, err := suite.getWorkerWorkload.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(workloads, 2)
	suite.Equal(idle.ID(), workloads[0].WorkerID, "The least-loaded worker surfaces first")
	suite.Equal(0, workloads[0].CurrentWorkload)
	suite.Equal(0, workloads[0].ActiveOrders)

	suite.Equal(busy.ID(), workloads[1].WorkerID)
	suite.Equal(2, workloads[1].CurrentWorkload)
	suite.Equal(worker.DefaultMaxWorkload, workloads[1].MaxWorkload)
	suite.Equal(1, workloads[1].ActiveOrders, "Delivered orders do not count as active")
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetWorkerWorkload_CustomersAreForbidden() {
	ctx := context.Background()

	customer := suite.createUser("auth0|customer", user.RoleCustomer)

	query, err := queries.NewGetWorkerWorkloadQuery(customer.ExternalID())
	suite.Require().NoError(err)

	_, err = suite.getWorkerWorkload.Handle(ctx, query)
	suite.Require().ErrorIs(err, errs.ErrForbidden)
}

func (suite *QueryHandlersIntegrationTestSuite) TestQueries_UnknownIdentity_Unauthenticated() {
	ctx := context.Background()

	query, err := queries.NewGetCustomerOrdersQuery("auth0|nobody")
	suite.Require().NoError(err)

	_, err = suite.getCustomerOrders.Handle(ctx, query)
	suite.Require().ErrorIs(err, errs.ErrUnauthenticated)
}

var orderSequence int

// createUser persists a user with the given role and returns the aggregate.
func (suite *QueryHandlersIntegrationTestSuite) createUser(externalID string, role user.Role) *user.User {
	u, err := user.RestoreUser(
		kernel.NewUUID(), externalID,
		"Test "+externalID, externalID+"@example.com",
		role, user.StatusActive)
	suite.Require().NoError(err)

	repo := userrepo.NewGormUserRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.Add(context.Background(), u))
	return u
}

func (suite *QueryHandlersIntegrationTestSuite) buildOrder(
	customerID kernel.UUID,
	urgency order.Urgency,
	createdAt time.Time,
) *order.Order {
	orderSequence++
	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		fmt.Sprintf("ORD-2026-%06d", orderSequence),
		customerID,
		kernel.NewUUID(),
		nil,
		order.FabricSourceCustomer,
		nil,
		urgency,
		8000.0,
		0.0,
		"query fixture",
		createdAt,
	)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *QueryHandlersIntegrationTestSuite) saveOrder(o *order.Order) {
	repo := orderrepo.NewGormOrderRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.Add(context.Background(), o))
}

func (suite *QueryHandlersIntegrationTestSuite) createProfile(userID kernel.UUID) *worker.Profile {
	profile, err := worker.NewProfile(kernel.NewUUID(), userID, suite.now())
	suite.Require().NoError(err)

	repo := workerrepo.NewGormWorkerRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.AddProfile(context.Background(), profile))
	return profile
}

func (suite *QueryHandlersIntegrationTestSuite) updateProfile(profile *worker.Profile) {
	repo := workerrepo.NewGormWorkerRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.UpdateProfile(context.Background(), profile))
}

// now returns a timestamp that survives a round-trip through PostgreSQL,
// which stores microsecond precision.
func (suite *QueryHandlersIntegrationTestSuite) now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
