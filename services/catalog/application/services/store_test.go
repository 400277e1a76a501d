package services

import (
	"context"
	"sync"

	catalogdomain "github.com/victordehoyos/ProductCatalog/services/catalog/domain"
	"github.com/victordehoyos/ProductCatalog/services/catalog/domain/models"
)

// fakeStore is an in-memory stand-in for the postgres repositories and the
// unit of work. WithTx snapshots the state and restores it when fn fails, so
// rollback semantics match the real transactional boundary. A transaction
// holds txMu for its whole duration, mirroring the store serializing
// conflicting row updates.
type fakeStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	products    map[int64]*models.Product
	orders      map[int64]*models.Order
	ordersByKey map[string]int64

	nextProductID int64
	nextOrderID   int64

	// hideOrderFromKeyLookup simulates the window where a concurrent request
	// with the same idempotency key has not committed yet: the pre-transaction
	// idempotency check sees nothing, and the race is decided by the unique
	// constraint at insert time.
	hideOrderFromKeyLookup bool

	// afterGetForUpdate, when set, runs after GetForUpdate returns — used to
	// interleave a conflicting write into the optimistic update window.
	afterGetForUpdate func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:    make(map[int64]*models.Product),
		orders:      make(map[int64]*models.Order),
		ordersByKey: make(map[string]int64),
	}
}

func (f *fakeStore) addProduct(p models.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == 0 {
		f.nextProductID++
		p.ID = f.nextProductID
	} else if p.ID > f.nextProductID {
		f.nextProductID = p.ID
	}
	f.products[p.ID] = &p
}

// WithTx implements repositories.UnitOfWork with snapshot-rollback semantics.
func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()

	products, orders, byKey := f.snapshot()
	if err := fn(ctx); err != nil {
		f.restore(products, orders, byKey)
		return err
	}
	return nil
}

func (f *fakeStore) snapshot() (map[int64]*models.Product, map[int64]*models.Order, map[string]int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	products := make(map[int64]*models.Product, len(f.products))
	for id, p := range f.products {
		cp := *p
		products[id] = &cp
	}
	orders := make(map[int64]*models.Order, len(f.orders))
	for id, o := range f.orders {
		co := *o
		orders[id] = &co
	}
	byKey := make(map[string]int64, len(f.ordersByKey))
	for k, v := range f.ordersByKey {
		byKey[k] = v
	}
	return products, orders, byKey
}

func (f *fakeStore) restore(products map[int64]*models.Product, orders map[int64]*models.Order, byKey map[string]int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products = products
	f.orders = orders
	f.ordersByKey = byKey
}

// --- repositories.ProductRepository ---

func (f *fakeStore) Insert(ctx context.Context, p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextProductID++
	p.ID = f.nextProductID
	cp := *p
	f.products[cp.ID] = &cp
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, catalogdomain.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) GetForUpdate(ctx context.Context, id int64) (*models.Product, error) {
	p, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.afterGetForUpdate != nil {
		f.afterGetForUpdate()
	}
	return p, nil
}

func (f *fakeStore) List(ctx context.Context) ([]*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Product, 0, len(f.products))
	for _, p := range f.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeStore) Update(ctx context.Context, p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.products[p.ID]
	if !ok || stored.Version != p.Version {
		return catalogdomain.ErrConcurrencyConflict
	}
	cp := *p
	cp.Version = stored.Version + 1
	f.products[p.ID] = &cp
	p.Version++
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return catalogdomain.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeStore) TryDecreaseStock(ctx context.Context, id int64, qty int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	p.Version++
	return true, nil
}

func (f *fakeStore) IncreaseStock(ctx context.Context, id int64, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.products[id]; ok {
		p.Stock += qty
		p.Version++
	}
	return nil
}

// fakeOrders adapts fakeStore to repositories.OrderRepository; the method
// names collide with the product side otherwise.
type fakeOrders struct{ *fakeStore }

func (f fakeOrders) Insert(ctx context.Context, o *models.Order) error {
	return f.fakeStore.InsertOrder(ctx, o)
}

func (f fakeOrders) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	return f.fakeStore.GetOrderByID(ctx, id)
}

func (f fakeOrders) List(ctx context.Context) ([]*models.Order, error) {
	return f.fakeStore.ListOrders(ctx)
}

func (f *fakeStore) InsertOrder(ctx context.Context, o *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.ordersByKey[o.IdempotencyKey]; exists {
		return catalogdomain.ErrDuplicateIdempotencyKey
	}
	f.nextOrderID++
	o.ID = f.nextOrderID
	co := *o
	f.orders[co.ID] = &co
	f.ordersByKey[co.IdempotencyKey] = co.ID
	return nil
}

func (f *fakeStore) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, catalogdomain.ErrOrderNotFound
	}
	co := *o
	return &co, nil
}

func (f *fakeStore) GetByIdempotencyKey(ctx context.Context, key string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hideOrderFromKeyLookup {
		return nil, nil
	}
	id, ok := f.ordersByKey[key]
	if !ok {
		return nil, nil
	}
	co := *f.orders[id]
	return &co, nil
}

func (f *fakeStore) ListOrders(ctx context.Context) ([]*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Order, 0, len(f.orders))
	for _, o := range f.orders {
		co := *o
		out = append(out, &co)
	}
	return out, nil
}

func (f *fakeStore) stock(id int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.products[id]; ok {
		return p.Stock
	}
	return -1
}

func (f *fakeStore) version(id int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.products[id]; ok {
		return p.Version
	}
	return -1
}

func (f *fakeStore) orderCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}
