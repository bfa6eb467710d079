//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"storefront/internal/domain/discount"
	"storefront/internal/domain/order"
	"storefront/internal/domain/product"
	"storefront/internal/infra"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

var errNoRows = errors.New("no rows in result set")

// fakeStore is an in-memory stand-in for the Postgres-backed repositories.
// Within snapshots the whole store before running the transaction body and
// restores it on error, mimicking rollback.
type fakeStore struct {
	mu        sync.Mutex
	products  map[uuid.UUID]*shared.ProductSnapshot
	orders    map[uuid.UUID]*shared.OrderSnapshot
	schedules map[uuid.UUID]*shared.ScheduleSnapshot

	createdOrders []*order.Order

	failOrderCreate bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:  make(map[uuid.UUID]*shared.ProductSnapshot),
		orders:    make(map[uuid.UUID]*shared.OrderSnapshot),
		schedules: make(map[uuid.UUID]*shared.ScheduleSnapshot),
	}
}

func (s *fakeStore) addProduct(p shared.ProductSnapshot) {
	s.products[p.ID] = &p
}

func (s *fakeStore) addSchedule(sc shared.ScheduleSnapshot) {
	s.schedules[sc.ID] = &sc
}

func (s *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, o := range s.orders {
		co := *o
		c.orders[id] = &co
	}
	for id, sc := range s.schedules {
		cs := *sc
		c.schedules[id] = &cs
	}
	c.createdOrders = append(c.createdOrders, s.createdOrders...)
	c.failOrderCreate = s.failOrderCreate
	return c
}

func (s *fakeStore) restore(from *fakeStore) {
	s.products = from.products
	s.orders = from.orders
	s.schedules = from.schedules
	s.createdOrders = from.createdOrders
}

type fakeUoW struct {
	store *fakeStore
}

func newFakeUoW(store *fakeStore) *fakeUoW {
	return &fakeUoW{store: store}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	backup := u.store.clone()
	if err := fn(ctx, &fakeTx{store: u.store}); err != nil {
		u.store.restore(backup)
		return err
	}
	return nil
}

func (u *fakeUoW) Reads() shared.CommandReads {
	return &fakeReads{store: u.store, lock: true}
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) Products() shared.ProductRepository  { return &fakeProductRepo{store: t.store} }
func (t *fakeTx) Orders() shared.OrderRepository      { return &fakeOrderRepo{store: t.store} }
func (t *fakeTx) Schedules() shared.ScheduleRepository { return &fakeScheduleRepo{store: t.store} }
func (t *fakeTx) Reads() shared.CommandReads          { return &fakeReads{store: t.store} }

type fakeProductRepo struct {
	store *fakeStore
}

func (r *fakeProductRepo) ConditionalDecrementStock(_ context.Context, productID uuid.UUID, qty int32) error {
	p, ok := r.store.products[productID]
	if !ok {
		return infra.WrapRepoErr("product not found", errNoRows, infra.KindNotFound)
	}
	if p.Stock < qty {
		return infra.WrapRepoErr("insufficient stock", errNoRows, infra.KindConflict)
	}
	p.Stock -= qty
	return nil
}

func (r *fakeProductRepo) ApplyDiscountPricing(_ context.Context, productID uuid.UUID, salePriceCents int64) error {
	p, ok := r.store.products[productID]
	if !ok {
		return infra.WrapRepoErr("product not found", errNoRows, infra.KindNotFound)
	}
	p.SalePriceCents = salePriceCents
	p.IsDiscountActive = true
	return nil
}

func (r *fakeProductRepo) ClearDiscountPricing(_ context.Context, productID uuid.UUID) error {
	p, ok := r.store.products[productID]
	if !ok {
		return infra.WrapRepoErr("product not found", errNoRows, infra.KindNotFound)
	}
	p.SalePriceCents = 0
	p.IsDiscountActive = false
	return nil
}

func (r *fakeProductRepo) UpdatePricing(_ context.Context, productID uuid.UUID, pricing product.Pricing) error {
	p, ok := r.store.products[productID]
	if !ok {
		return infra.WrapRepoErr("product not found", errNoRows, infra.KindNotFound)
	}
	p.PriceCents = pricing.PriceCents
	p.Stock = pricing.Stock
	return nil
}

type fakeOrderRepo struct {
	store *fakeStore
}

func (r *fakeOrderRepo) Create(_ context.Context, o *order.Order) (uuid.UUID, error) {
	if r.store.failOrderCreate {
		return uuid.Nil, infra.WrapRepoErr("insert failed", errors.New("boom"), infra.KindDBFailure)
	}
	r.store.orders[o.ID()] = &shared.OrderSnapshot{
		ID:     o.ID(),
		UserID: o.UserID(),
		Status: o.Status(),
	}
	r.store.createdOrders = append(r.store.createdOrders, o)
	return o.ID(), nil
}

func (r *fakeOrderRepo) SetStatus(_ context.Context, id uuid.UUID, status order.Status, _ *time.Time) error {
	o, ok := r.store.orders[id]
	if !ok {
		return infra.WrapRepoErr("order not found", errNoRows, infra.KindNotFound)
	}
	o.Status = status
	return nil
}

func (r *fakeOrderRepo) SetPaid(_ context.Context, id uuid.UUID, _ time.Time, _ *string) error {
	o, ok := r.store.orders[id]
	if !ok {
		return infra.WrapRepoErr("order not found", errNoRows, infra.KindNotFound)
	}
	o.IsPaid = true
	return nil
}

func (r *fakeOrderRepo) SetDelivered(_ context.Context, id uuid.UUID, _ time.Time) error {
	o, ok := r.store.orders[id]
	if !ok {
		return infra.WrapRepoErr("order not found", errNoRows, infra.KindNotFound)
	}
	o.IsDelivered = true
	o.Status = order.StatusDelivered
	return nil
}

type fakeScheduleRepo struct {
	store *fakeStore
}

func (r *fakeScheduleRepo) Create(_ context.Context, s *discount.Schedule) (uuid.UUID, error) {
	for _, existing := range r.store.schedules {
		if existing.ProductID != s.ProductID() {
			continue
		}
		if existing.Status != discount.StatusPending && existing.Status != discount.StatusActive {
			continue
		}
		if discount.Overlaps(s.StartTime(), s.EndTime(), existing.StartTime, existing.EndTime) {
			return uuid.Nil, infra.WrapRepoErr("exclusion violation", errors.New("overlap"), infra.KindConflict)
		}
	}

	r.store.schedules[s.ID()] = &shared.ScheduleSnapshot{
		ID:                 s.ID(),
		ProductID:          s.ProductID(),
		Kind:               s.Discount().Kind(),
		Value:              s.Discount().Value(),
		StartTime:          s.StartTime(),
		EndTime:            s.EndTime(),
		Status:             s.Status(),
		OriginalPriceCents: s.OriginalPriceCents(),
	}
	return s.ID(), nil
}

func (r *fakeScheduleRepo) TransitionStatus(_ context.Context, id uuid.UUID, from, to discount.Status) (bool, error) {
	s, ok := r.store.schedules[id]
	if !ok || s.Status != from {
		return false, nil
	}
	s.Status = to
	return true, nil
}

func (r *fakeScheduleRepo) HasOverlapping(_ context.Context, productID uuid.UUID, start, end time.Time) (bool, error) {
	for _, s := range r.store.schedules {
		if s.ProductID != productID {
			continue
		}
		if s.Status != discount.StatusPending && s.Status != discount.StatusActive {
			continue
		}
		if discount.Overlaps(start, end, s.StartTime, s.EndTime) {
			return true, nil
		}
	}
	return false, nil
}

type fakeReads struct {
	store *fakeStore
	// lock guards pool-bound reads used outside a transaction
	lock bool
}

func (r *fakeReads) ProductByID(_ context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	if r.lock {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	p, ok := r.store.products[id]
	if !ok {
		return nil, infra.WrapRepoErr("product not found", errNoRows, infra.KindNotFound)
	}
	cp := *p
	return &cp, nil
}

func (r *fakeReads) ScheduleByID(_ context.Context, id uuid.UUID) (*shared.ScheduleSnapshot, error) {
	if r.lock {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	s, ok := r.store.schedules[id]
	if !ok {
		return nil, infra.WrapRepoErr("schedule not found", errNoRows, infra.KindNotFound)
	}
	cs := *s
	return &cs, nil
}

func (r *fakeReads) OrderByID(_ context.Context, id uuid.UUID) (*shared.OrderSnapshot, error) {
	if r.lock {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	o, ok := r.store.orders[id]
	if !ok {
		return nil, infra.WrapRepoErr("order not found", errNoRows, infra.KindNotFound)
	}
	co := *o
	return &co, nil
}

func (r *fakeReads) SchedulesDueForActivation(_ context.Context, now time.Time) ([]*shared.ScheduleSnapshot, error) {
	if r.lock {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	var due []*shared.ScheduleSnapshot
	for _, s := range r.store.schedules {
		if s.Status == discount.StatusPending && !s.StartTime.After(now) {
			cs := *s
			due = append(due, &cs)
		}
	}
	return due, nil
}

func (r *fakeReads) SchedulesDueForExpiry(_ context.Context, now time.Time) ([]*shared.ScheduleSnapshot, error) {
	if r.lock {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	var due []*shared.ScheduleSnapshot
	for _, s := range r.store.schedules {
		if s.Status == discount.StatusActive && !s.EndTime.After(now) {
			cs := *s
			due = append(due, &cs)
		}
	}
	return due, nil
}

// fakeGateway records notifications instead of delivering them.
type fakeGateway struct {
	mu    sync.Mutex
	calls []fakeNotification
}

type fakeNotification struct {
	RecipientID uuid.UUID
	Kind        string
	Title       string
}

func (g *fakeGateway) Notify(_ context.Context, recipientID uuid.UUID, kind, title, _ string, _ []byte, _ *string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, fakeNotification{RecipientID: recipientID, Kind: kind, Title: title})
	return nil
}

func (g *fakeGateway) count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func (g *fakeGateway) kindCount(kind string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, call := range g.calls {
		if call.Kind == kind {
			n++
		}
	}
	return n
}

type fakeBus struct {
	mu     sync.Mutex
	topics []string
}

func (b *fakeBus) Emit(_ context.Context, topic string, _ any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.topics = append(b.topics, topic)
	return nil
}

func (b *fakeBus) emitted(topic string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range b.topics {
		if t == topic {
			return true
		}
	}
	return false
}

type fakeAdmins struct {
	ids []uuid.UUID
}

func (a *fakeAdmins) AdminIDs(_ context.Context) ([]uuid.UUID, error) {
	return a.ids, nil
}
