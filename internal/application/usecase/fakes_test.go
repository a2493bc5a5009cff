package usecase_test

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Dobles en memoria: solo lo que usan los casos de uso CRUD, dashboard y reportes.

type products struct{ m map[string]*entity.Product }

func (r *products) Create(_ context.Context, p *entity.Product) error {
	c := *p
	r.m[p.ID] = &c
	return nil
}

func (r *products) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if p, ok := r.m[id]; ok {
		c := *p
		return &c, nil
	}
	return nil, nil
}

func (r *products) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.m {
		if p.SKU == sku {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *products) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *products) Update(ctx context.Context, p *entity.Product) error { return r.Create(ctx, p) }

func (r *products) SaveStock(ctx context.Context, p *entity.Product) error { return r.Create(ctx, p) }

func (r *products) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	ids := make([]string, 0, len(r.m))
	for id := range r.m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var out []*entity.Product
	for _, id := range ids {
		p := r.m[id]
		if f.LowStock && !p.IsLowStock() {
			continue
		}
		out = append(out, p)
	}
	if f.Offset >= len(out) {
		return nil, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *products) Count(ctx context.Context, f repository.ProductFilter) (int, error) {
	f.Limit, f.Offset = 0, 0
	list, err := r.List(ctx, f)
	return len(list), err
}

func (r *products) Delete(_ context.Context, id string) error {
	delete(r.m, id)
	return nil
}

type warehouses struct {
	m    map[string]*entity.Warehouse
	refs int
}

func (r *warehouses) Create(_ context.Context, w *entity.Warehouse) error {
	c := *w
	r.m[w.ID] = &c
	return nil
}

func (r *warehouses) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	if w, ok := r.m[id]; ok {
		c := *w
		return &c, nil
	}
	return nil, nil
}

func (r *warehouses) GetByName(_ context.Context, name string) (*entity.Warehouse, error) {
	for _, w := range r.m {
		if w.Name == name {
			c := *w
			return &c, nil
		}
	}
	return nil, nil
}

func (r *warehouses) Update(ctx context.Context, w *entity.Warehouse) error { return r.Create(ctx, w) }

func (r *warehouses) List(_ context.Context, f repository.WarehouseFilter) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.m {
		if f.IsActive != nil && w.IsActive != *f.IsActive {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

func (r *warehouses) Count(ctx context.Context, f repository.WarehouseFilter) (int, error) {
	list, err := r.List(ctx, f)
	return len(list), err
}

func (r *warehouses) StockReferences(_ context.Context, _ entity.WarehouseRef) (int, error) {
	return r.refs, nil
}

func (r *warehouses) Delete(_ context.Context, id string) error {
	delete(r.m, id)
	return nil
}

type history struct{ entries []*entity.HistoryEntry }

func (r *history) Append(_ context.Context, e *entity.HistoryEntry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *history) List(_ context.Context, f repository.HistoryFilter) ([]*entity.HistoryEntry, error) {
	var out []*entity.HistoryEntry
	for i := len(r.entries) - 1; i >= 0 && (f.Limit == 0 || len(out) < f.Limit); i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

func (r *history) PurgeBefore(_ context.Context, _ time.Time) (int64, error) { return 0, nil }

// pendingCounter implementa CountByStatus para recepciones, entregas y traslados.
type pendingCounter struct{ n int }

func (c pendingCounter) CountByStatus(_ context.Context, statuses ...entity.Status) (int, error) {
	if len(statuses) != len(entity.PendingStatuses) {
		return 0, nil
	}
	return c.n, nil
}

type receipts struct {
	pendingCounter
	m map[string]*entity.Receipt
}

func (r *receipts) Create(context.Context, *entity.Receipt) error { return nil }
func (r *receipts) GetByID(_ context.Context, id string) (*entity.Receipt, error) {
	return r.m[id], nil
}
func (r *receipts) GetForUpdate(ctx context.Context, id string) (*entity.Receipt, error) {
	return r.GetByID(ctx, id)
}
func (r *receipts) UpdateStatus(context.Context, *entity.Receipt) error { return nil }
func (r *receipts) List(context.Context, repository.DocumentFilter) ([]*entity.Receipt, error) {
	return nil, nil
}
func (r *receipts) Delete(context.Context, string) error { return nil }

type deliveries struct{ pendingCounter }

func (deliveries) Create(context.Context, *entity.Delivery) error { return nil }
func (deliveries) GetByID(context.Context, string) (*entity.Delivery, error) {
	return nil, nil
}
func (deliveries) GetForUpdate(context.Context, string) (*entity.Delivery, error) {
	return nil, nil
}
func (deliveries) UpdateStatus(context.Context, *entity.Delivery) error { return nil }
func (deliveries) List(context.Context, repository.DocumentFilter) ([]*entity.Delivery, error) {
	return nil, nil
}
func (deliveries) Delete(context.Context, string) error { return nil }

type transfers struct {
	pendingCounter
	m map[string]*entity.Transfer
}

func (r *transfers) Create(context.Context, *entity.Transfer) error { return nil }
func (r *transfers) GetByID(_ context.Context, id string) (*entity.Transfer, error) {
	return r.m[id], nil
}
func (r *transfers) GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error) {
	return r.GetByID(ctx, id)
}
func (r *transfers) UpdateStatus(context.Context, *entity.Transfer) error { return nil }
func (r *transfers) List(context.Context, repository.DocumentFilter) ([]*entity.Transfer, error) {
	return nil, nil
}
func (r *transfers) Delete(context.Context, string) error { return nil }

// txRunner ejecuta fn sobre los mismos repositorios, sin rollback.
type txRunner struct{ repos inventory.TxRepos }

func (r txRunner) Run(_ context.Context, fn func(tx inventory.TxRepos) error) error {
	return fn(r.repos)
}

type env struct {
	products   *products
	warehouses *warehouses
	history    *history
	tx         txRunner
}

func newEnv() *env {
	e := &env{
		products:   &products{m: map[string]*entity.Product{}},
		warehouses: &warehouses{m: map[string]*entity.Warehouse{}},
		history:    &history{},
	}
	e.tx = txRunner{repos: inventory.TxRepos{
		Products:   e.products,
		Warehouses: e.warehouses,
		History:    e.history,
	}}
	return e
}
