package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/model/user"
	"atelier/internal/core/domain/model/worker"
	"atelier/internal/core/ports"
	"atelier/internal/pkg/errs"
)

// fakeStore is a shared in-memory backing for the fake repositories. The
// repository methods mirror the persistence contracts closely enough for
// handler tests; transactional behavior is approximated by a commit
// counter and a mutex standing in for row locks.
type fakeStore struct {
	mu sync.Mutex

	users     map[string]*user.User
	orders    map[string]*order.Order
	profiles  map[string]*worker.Profile
	ratings   map[string]*worker.Rating
	styles    map[string]*ports.Style
	fabrics   map[string]*ports.FabricItem
	audits    []ports.AuditEntry
	sequences map[int]int

	inTx      bool
	commits   int
	rollbacks int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     make(map[string]*user.User),
		orders:    make(map[string]*order.Order),
		profiles:  make(map[string]*worker.Profile),
		ratings:   make(map[string]*worker.Rating),
		styles:    make(map[string]*ports.Style),
		fabrics:   make(map[string]*ports.FabricItem),
		sequences: make(map[int]int),
	}
}

func (s *fakeStore) addUser(u *user.User) *user.User {
	s.users[u.ID().String()] = u
	return u
}

func (s *fakeStore) addOrder(o *order.Order) *order.Order {
	s.orders[o.ID().String()] = o
	return o
}

func (s *fakeStore) addProfile(p *worker.Profile) *worker.Profile {
	s.profiles[p.UserID().String()] = p
	return p
}

type fakeUserRepo struct{ store *fakeStore }

func (r fakeUserRepo) Add(_ context.Context, u *user.User) error {
	r.store.users[u.ID().String()] = u
	return nil
}

func (r fakeUserRepo) Update(_ context.Context, u *user.User) error {
	r.store.users[u.ID().String()] = u
	return nil
}

func (r fakeUserRepo) Get(_ context.Context, id kernel.UUID) (*user.User, error) {
	if u, ok := r.store.users[id.String()]; ok {
		return u, nil
	}
	return nil, errs.NewObjectNotFoundError("userId", id.String())
}

func (r fakeUserRepo) GetByExternalID(_ context.Context, externalID string) (*user.User, error) {
	for _, u := range r.store.users {
		if u.ExternalID() == externalID {
			return u, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("externalId", externalID)
}

type fakeOrderRepo struct{ store *fakeStore }

func (r fakeOrderRepo) Add(_ context.Context, o *order.Order) error {
	r.store.orders[o.ID().String()] = o
	return nil
}

func (r fakeOrderRepo) Update(_ context.Context, o *order.Order) error {
	r.store.orders[o.ID().String()] = o
	return nil
}

func (r fakeOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if o, ok := r.store.orders[id.String()]; ok {
		return o, nil
	}
	return nil, errs.NewObjectNotFoundError("orderId", id.String())
}

func (r fakeOrderRepo) NextOrderSequence(_ context.Context, year int) (int, error) {
	r.store.sequences[year]++
	return r.store.sequences[year], nil
}

func (r fakeOrderRepo) GetActiveDueBefore(_ context.Context, deadline time.Time) ([]*order.Order, error) {
	var due []*order.Order
	for _, o := range r.store.orders {
		if !o.Status().IsTerminal() && o.EstimatedCompletionDate().Before(deadline) {
			due = append(due, o)
		}
	}
	return due, nil
}

type fakeWorkerRepo struct{ store *fakeStore }

func (r fakeWorkerRepo) AddProfile(_ context.Context, p *worker.Profile) error {
	r.store.profiles[p.UserID().String()] = p
	return nil
}

func (r fakeWorkerRepo) UpdateProfile(_ context.Context, p *worker.Profile) error {
	r.store.profiles[p.UserID().String()] = p
	return nil
}

func (r fakeWorkerRepo) GetProfileByUserID(_ context.Context, userID kernel.UUID) (*worker.Profile, error) {
	if p, ok := r.store.profiles[userID.String()]; ok {
		return p, nil
	}
	return nil, errs.NewObjectNotFoundError("userId", userID.String())
}

func (r fakeWorkerRepo) GetProfileByUserIDForUpdate(ctx context.Context, userID kernel.UUID) (*worker.Profile, error) {
	return r.GetProfileByUserID(ctx, userID)
}

func (r fakeWorkerRepo) AddRating(_ context.Context, rating *worker.Rating) error {
	key := rating.OrderID().String()
	if _, ok := r.store.ratings[key]; ok {
		return errs.NewAlreadyExistsError("rating", key)
	}
	r.store.ratings[key] = rating
	return nil
}

func (r fakeWorkerRepo) GetRatingByOrderID(_ context.Context, orderID kernel.UUID) (*worker.Rating, error) {
	if rating, ok := r.store.ratings[orderID.String()]; ok {
		return rating, nil
	}
	return nil, errs.NewObjectNotFoundError("orderId", orderID.String())
}

func (r fakeWorkerRepo) GetRatingsByWorkerID(_ context.Context, workerID kernel.UUID) ([]*worker.Rating, error) {
	var history []*worker.Rating
	for _, rating := range r.store.ratings {
		if rating.WorkerID().IsEqual(workerID) {
			history = append(history, rating)
		}
	}
	return history, nil
}

type fakeStyleRepo struct{ store *fakeStore }

func (r fakeStyleRepo) Get(_ context.Context, id kernel.UUID) (*ports.Style, error) {
	if s, ok := r.store.styles[id.String()]; ok {
		return s, nil
	}
	return nil, errs.NewObjectNotFoundError("styleId", id.String())
}

func (r fakeStyleRepo) IncrementOrders(_ context.Context, id kernel.UUID) error {
	if s, ok := r.store.styles[id.String()]; ok {
		s.OrdersCount++
		return nil
	}
	return errs.NewObjectNotFoundError("styleId", id.String())
}

type fakeFabricRepo struct{ store *fakeStore }

func (r fakeFabricRepo) Get(_ context.Context, id kernel.UUID) (*ports.FabricItem, error) {
	if f, ok := r.store.fabrics[id.String()]; ok {
		return f, nil
	}
	return nil, errs.NewObjectNotFoundError("fabricId", id.String())
}

type fakeAuditRepo struct{ store *fakeStore }

func (r fakeAuditRepo) Add(_ context.Context, entry ports.AuditEntry) error {
	r.store.audits = append(r.store.audits, entry)
	return nil
}

// fakeUoW satisfies every unit-of-work composition used by the handlers.
type fakeUoW struct{ store *fakeStore }

func (u fakeUoW) Begin(context.Context) error {
	u.store.mu.Lock()
	u.store.inTx = true
	return nil
}

func (u fakeUoW) Commit(context.Context) error {
	u.store.commits++
	u.store.inTx = false
	u.store.mu.Unlock()
	return nil
}

func (u fakeUoW) Rollback(context.Context) error {
	if u.store.inTx {
		u.store.rollbacks++
		u.store.inTx = false
		u.store.mu.Unlock()
	}
	return nil
}

func (u fakeUoW) UserRepository() ports.UserRepository     { return fakeUserRepo{u.store} }
func (u fakeUoW) OrderRepository() ports.OrderRepository   { return fakeOrderRepo{u.store} }
func (u fakeUoW) WorkerRepository() ports.WorkerRepository { return fakeWorkerRepo{u.store} }
func (u fakeUoW) StyleRepository() ports.StyleRepository   { return fakeStyleRepo{u.store} }
func (u fakeUoW) FabricRepository() ports.FabricRepository { return fakeFabricRepo{u.store} }
func (u fakeUoW) AuditRepository() ports.AuditRepository   { return fakeAuditRepo{u.store} }

type fakeUserUoWFactory struct{ store *fakeStore }

func (f fakeUserUoWFactory) Create() commands.UserUoW { return fakeUoW{f.store} }

type fakeOrderUoWFactory struct{ store *fakeStore }

func (f fakeOrderUoWFactory) Create() commands.OrderUoW { return fakeUoW{f.store} }

type fakeUoWFactory struct{ store *fakeStore }

func (f fakeUoWFactory) Create() commands.UoW { return fakeUoW{f.store} }

// Builders for the aggregates the handlers operate on.

func restoreUserWithRole(t *testing.T, externalID string, role user.Role) *user.User {
	t.Helper()
	u, err := user.RestoreUser(
		kernel.NewUUID(), externalID, "Test "+externalID, externalID+"@example.com", role, user.StatusActive)
	require.NoError(t, err)
	return u
}

func restoreSuspendedUser(t *testing.T, externalID string, role user.Role) *user.User {
	t.Helper()
	u, err := user.RestoreUser(
		kernel.NewUUID(), externalID, "Test "+externalID, externalID+"@example.com", role, user.StatusSuspended)
	require.NoError(t, err)
	return u
}

func buildOrder(t *testing.T, customerID kernel.UUID, urgency order.Urgency) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), "ORD-2026-000099", customerID, kernel.NewUUID(),
		nil, order.FabricSourceCustomer, nil, urgency,
		order.FlatCustomOrderFee, 0, "", time.Now().UTC())
	require.NoError(t, err)
	return o
}

func buildProfile(t *testing.T, userID kernel.UUID) *worker.Profile {
	t.Helper()
	p, err := worker.NewProfile(kernel.NewUUID(), userID, time.Now().UTC())
	require.NoError(t, err)
	return p
}

// fakeNotifier records published notifications.
type fakeNotifier struct {
	mu        sync.Mutex
	published []ports.Notification
}

func (n *fakeNotifier) Publish(_ context.Context, notification ports.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.published = append(n.published, notification)
	return nil
}
