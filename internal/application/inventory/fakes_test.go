package inventory_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// memStore simula la BD en memoria. Guarda copias para que los cambios en memoria del caso de uso
// no se vean hasta que el repositorio los persiste, igual que con Postgres.
type memStore struct {
	products    map[string]*entity.Product
	warehouses  map[string]*entity.Warehouse
	receipts    map[string]*entity.Receipt
	deliveries  map[string]*entity.Delivery
	transfers   map[string]*entity.Transfer
	adjustments map[string]*entity.Adjustment
	seq         map[entity.DocumentType]int64
	history     []*entity.HistoryEntry

	// fallas inyectadas
	failAppend bool
}

func newMemStore() *memStore {
	return &memStore{
		products:    map[string]*entity.Product{},
		warehouses:  map[string]*entity.Warehouse{},
		receipts:    map[string]*entity.Receipt{},
		deliveries:  map[string]*entity.Delivery{},
		transfers:   map[string]*entity.Transfer{},
		adjustments: map[string]*entity.Adjustment{},
		seq:         map[entity.DocumentType]int64{},
	}
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	c.Warehouses = append([]entity.WarehouseStock(nil), p.Warehouses...)
	return &c
}

func cloneReceipt(r *entity.Receipt) *entity.Receipt {
	c := *r
	c.Items = append([]entity.OperationItem(nil), r.Items...)
	return &c
}

func cloneDelivery(d *entity.Delivery) *entity.Delivery {
	c := *d
	c.Items = append([]entity.OperationItem(nil), d.Items...)
	return &c
}

func cloneTransfer(t *entity.Transfer) *entity.Transfer {
	c := *t
	return &c
}

// snapshot copia profunda del estado; el runner la restaura si la función falla.
func (s *memStore) snapshot() *memStore {
	c := newMemStore()
	for k, v := range s.products {
		c.products[k] = cloneProduct(v)
	}
	for k, v := range s.warehouses {
		w := *v
		c.warehouses[k] = &w
	}
	for k, v := range s.receipts {
		c.receipts[k] = cloneReceipt(v)
	}
	for k, v := range s.deliveries {
		c.deliveries[k] = cloneDelivery(v)
	}
	for k, v := range s.transfers {
		c.transfers[k] = cloneTransfer(v)
	}
	for k, v := range s.adjustments {
		a := *v
		c.adjustments[k] = &a
	}
	for k, v := range s.seq {
		c.seq[k] = v
	}
	c.history = append([]*entity.HistoryEntry(nil), s.history...)
	c.failAppend = s.failAppend
	return c
}

func (s *memStore) restore(from *memStore) {
	*s = *from
}

func (s *memStore) repos() inventory.TxRepos {
	return inventory.TxRepos{
		Products:    productRepo{s},
		Warehouses:  warehouseRepo{s},
		Receipts:    receiptRepo{s},
		Deliveries:  deliveryRepo{s},
		Transfers:   transferRepo{s},
		Adjustments: adjustmentRepo{s},
		Sequences:   sequenceRepo{s},
		History:     historyRepo{s},
	}
}

func (s *memStore) historyActions() []entity.HistoryAction {
	out := make([]entity.HistoryAction, 0, len(s.history))
	for _, e := range s.history {
		out = append(out, e.Action)
	}
	return out
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

type memTxRunner struct {
	s     *memStore
	calls int
}

func (r *memTxRunner) Run(_ context.Context, fn func(tx inventory.TxRepos) error) error {
	r.calls++
	snap := r.s.snapshot()
	if err := fn(r.s.repos()); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// ── Productos ────────────────────────────────────────────────────────────────

type productRepo struct{ s *memStore }

var _ repository.ProductRepository = productRepo{}

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.products[p.ID] = cloneProduct(p)
	return nil
}

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if p, ok := r.s.products[id]; ok {
		return cloneProduct(p), nil
	}
	return nil, nil
}

func (r productRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

func (r productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r productRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.products[p.ID] = cloneProduct(p)
	return nil
}

func (r productRepo) SaveStock(_ context.Context, p *entity.Product) error {
	cur, ok := r.s.products[p.ID]
	if !ok {
		return nil
	}
	cur.Warehouses = append([]entity.WarehouseStock(nil), p.Warehouses...)
	cur.UpdatedAt = p.UpdatedAt
	return nil
}

func (r productRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	ids := make([]string, 0, len(r.s.products))
	for id := range r.s.products {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var out []*entity.Product
	for _, id := range ids {
		p := r.s.products[id]
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.SKU), strings.ToLower(f.Search)) {
			continue
		}
		if f.LowStock && !p.IsLowStock() {
			continue
		}
		out = append(out, cloneProduct(p))
	}
	return out, nil
}

func (r productRepo) Count(ctx context.Context, f repository.ProductFilter) (int, error) {
	list, _ := r.List(ctx, f)
	return len(list), nil
}

func (r productRepo) Delete(_ context.Context, id string) error {
	delete(r.s.products, id)
	return nil
}

// ── Bodegas ──────────────────────────────────────────────────────────────────

type warehouseRepo struct{ s *memStore }

var _ repository.WarehouseRepository = warehouseRepo{}

func (r warehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	c := *w
	r.s.warehouses[w.ID] = &c
	return nil
}

func (r warehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	if w, ok := r.s.warehouses[id]; ok {
		c := *w
		return &c, nil
	}
	return nil, nil
}

func (r warehouseRepo) GetByName(_ context.Context, name string) (*entity.Warehouse, error) {
	for _, w := range r.s.warehouses {
		if w.Name == name {
			c := *w
			return &c, nil
		}
	}
	return nil, nil
}

func (r warehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	return r.Create(ctx, w)
}

func (r warehouseRepo) List(_ context.Context, _ repository.WarehouseFilter) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.s.warehouses {
		c := *w
		out = append(out, &c)
	}
	return out, nil
}

func (r warehouseRepo) Count(_ context.Context, _ repository.WarehouseFilter) (int, error) {
	return len(r.s.warehouses), nil
}

func (r warehouseRepo) StockReferences(_ context.Context, ref entity.WarehouseRef) (int, error) {
	n := 0
	for _, p := range r.s.products {
		for _, ws := range p.Warehouses {
			if ws.Matches(ref) && ws.Stock > 0 {
				n++
			}
		}
	}
	return n, nil
}

func (r warehouseRepo) Delete(_ context.Context, id string) error {
	delete(r.s.warehouses, id)
	return nil
}

// ── Documentos ───────────────────────────────────────────────────────────────

type receiptRepo struct{ s *memStore }

var _ repository.ReceiptRepository = receiptRepo{}

func (r receiptRepo) Create(_ context.Context, d *entity.Receipt) error {
	r.s.receipts[d.ID] = cloneReceipt(d)
	return nil
}

func (r receiptRepo) GetByID(_ context.Context, id string) (*entity.Receipt, error) {
	if d, ok := r.s.receipts[id]; ok {
		return cloneReceipt(d), nil
	}
	return nil, nil
}

func (r receiptRepo) GetForUpdate(ctx context.Context, id string) (*entity.Receipt, error) {
	return r.GetByID(ctx, id)
}

func (r receiptRepo) UpdateStatus(ctx context.Context, d *entity.Receipt) error {
	return r.Create(ctx, d)
}

func (r receiptRepo) List(_ context.Context, f repository.DocumentFilter) ([]*entity.Receipt, error) {
	var out []*entity.Receipt
	for _, d := range r.s.receipts {
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		if f.WarehouseID != "" && d.Warehouse.ID != f.WarehouseID {
			continue
		}
		out = append(out, cloneReceipt(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number > out[j].Number })
	return out, nil
}

func (r receiptRepo) CountByStatus(_ context.Context, statuses ...entity.Status) (int, error) {
	n := 0
	for _, d := range r.s.receipts {
		if hasStatus(d.Status, statuses) {
			n++
		}
	}
	return n, nil
}

func (r receiptRepo) Delete(_ context.Context, id string) error {
	delete(r.s.receipts, id)
	return nil
}

type deliveryRepo struct{ s *memStore }

var _ repository.DeliveryRepository = deliveryRepo{}

func (r deliveryRepo) Create(_ context.Context, d *entity.Delivery) error {
	r.s.deliveries[d.ID] = cloneDelivery(d)
	return nil
}

func (r deliveryRepo) GetByID(_ context.Context, id string) (*entity.Delivery, error) {
	if d, ok := r.s.deliveries[id]; ok {
		return cloneDelivery(d), nil
	}
	return nil, nil
}

func (r deliveryRepo) GetForUpdate(ctx context.Context, id string) (*entity.Delivery, error) {
	return r.GetByID(ctx, id)
}

func (r deliveryRepo) UpdateStatus(ctx context.Context, d *entity.Delivery) error {
	return r.Create(ctx, d)
}

func (r deliveryRepo) List(_ context.Context, f repository.DocumentFilter) ([]*entity.Delivery, error) {
	var out []*entity.Delivery
	for _, d := range r.s.deliveries {
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		out = append(out, cloneDelivery(d))
	}
	return out, nil
}

func (r deliveryRepo) CountByStatus(_ context.Context, statuses ...entity.Status) (int, error) {
	n := 0
	for _, d := range r.s.deliveries {
		if hasStatus(d.Status, statuses) {
			n++
		}
	}
	return n, nil
}

func (r deliveryRepo) Delete(_ context.Context, id string) error {
	delete(r.s.deliveries, id)
	return nil
}

type transferRepo struct{ s *memStore }

var _ repository.TransferRepository = transferRepo{}

func (r transferRepo) Create(_ context.Context, t *entity.Transfer) error {
	r.s.transfers[t.ID] = cloneTransfer(t)
	return nil
}

func (r transferRepo) GetByID(_ context.Context, id string) (*entity.Transfer, error) {
	if t, ok := r.s.transfers[id]; ok {
		return cloneTransfer(t), nil
	}
	return nil, nil
}

func (r transferRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error) {
	return r.GetByID(ctx, id)
}

func (r transferRepo) UpdateStatus(ctx context.Context, t *entity.Transfer) error {
	return r.Create(ctx, t)
}

func (r transferRepo) List(_ context.Context, f repository.DocumentFilter) ([]*entity.Transfer, error) {
	var out []*entity.Transfer
	for _, t := range r.s.transfers {
		if f.WarehouseID != "" && t.From.ID != f.WarehouseID && t.To.ID != f.WarehouseID {
			continue
		}
		out = append(out, cloneTransfer(t))
	}
	return out, nil
}

func (r transferRepo) CountByStatus(_ context.Context, statuses ...entity.Status) (int, error) {
	n := 0
	for _, t := range r.s.transfers {
		if hasStatus(t.Status, statuses) {
			n++
		}
	}
	return n, nil
}

func (r transferRepo) Delete(_ context.Context, id string) error {
	delete(r.s.transfers, id)
	return nil
}

func hasStatus(s entity.Status, in []entity.Status) bool {
	for _, x := range in {
		if s == x {
			return true
		}
	}
	return false
}

// ── Ajustes, secuencias e historial ─────────────────────────────────────────

type adjustmentRepo struct{ s *memStore }

var _ repository.AdjustmentRepository = adjustmentRepo{}

func (r adjustmentRepo) Create(_ context.Context, a *entity.Adjustment) error {
	c := *a
	r.s.adjustments[a.ID] = &c
	return nil
}

func (r adjustmentRepo) GetByID(_ context.Context, id string) (*entity.Adjustment, error) {
	if a, ok := r.s.adjustments[id]; ok {
		c := *a
		return &c, nil
	}
	return nil, nil
}

func (r adjustmentRepo) List(_ context.Context, f repository.AdjustmentFilter) ([]*entity.Adjustment, error) {
	var out []*entity.Adjustment
	for _, a := range r.s.adjustments {
		if f.ProductID != "" && a.ProductID != f.ProductID {
			continue
		}
		c := *a
		out = append(out, &c)
	}
	return out, nil
}

func (r adjustmentRepo) Delete(_ context.Context, id string) error {
	delete(r.s.adjustments, id)
	return nil
}

type sequenceRepo struct{ s *memStore }

func (r sequenceRepo) Next(_ context.Context, t entity.DocumentType) (int64, error) {
	r.s.seq[t]++
	return r.s.seq[t], nil
}

type historyRepo struct{ s *memStore }

var _ repository.HistoryRepository = historyRepo{}

func (r historyRepo) Append(_ context.Context, e *entity.HistoryEntry) error {
	if r.s.failAppend {
		return errAppend
	}
	r.s.history = append(r.s.history, e)
	return nil
}

func (r historyRepo) List(_ context.Context, f repository.HistoryFilter) ([]*entity.HistoryEntry, error) {
	var out []*entity.HistoryEntry
	for i := len(r.s.history) - 1; i >= 0; i-- {
		e := r.s.history[i]
		if f.EntityType != "" && e.EntityType != f.EntityType {
			continue
		}
		if f.Action != "" && e.Action != f.Action {
			continue
		}
		out = append(out, e)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (r historyRepo) PurgeBefore(_ context.Context, cutoff time.Time) (int64, error) {
	kept := r.s.history[:0]
	var n int64
	for _, e := range r.s.history {
		if e.Timestamp.Before(cutoff) {
			n++
			continue
		}
		kept = append(kept, e)
	}
	r.s.history = kept
	return n, nil
}
