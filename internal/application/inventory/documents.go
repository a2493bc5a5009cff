package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ResolveWarehouse busca la bodega por ID (si key es UUID) o por nombre. ErrNotFound si no existe.
func ResolveWarehouse(ctx context.Context, repo repository.WarehouseRepository, key string) (*entity.Warehouse, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("%w: bodega requerida", domain.ErrInvalidInput)
	}
	var (
		wh  *entity.Warehouse
		err error
	)
	if _, perr := uuid.Parse(key); perr == nil {
		wh, err = repo.GetByID(ctx, key)
	} else {
		wh, err = repo.GetByName(ctx, key)
	}
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, fmt.Errorf("%w: bodega %q", domain.ErrNotFound, key)
	}
	return wh, nil
}

// NextDocumentNumber toma el siguiente valor del contador del tipo y lo formatea (RCP-0001).
func NextDocumentNumber(ctx context.Context, seq repository.SequenceRepository, t entity.DocumentType) (string, error) {
	n, err := seq.Next(ctx, t)
	if err != nil {
		return "", fmt.Errorf("next %s number: %w", t, err)
	}
	return inventory.FormatNumber(t, n), nil
}

// lockDocument toma el lock distribuido del documento si hay locker configurado.
func lockDocument(ctx context.Context, locker DocumentLocker, t entity.DocumentType, id string) (func(), error) {
	if locker == nil {
		return func() {}, nil
	}
	return locker.Lock(ctx, "almacen:doc:"+string(t)+":"+id)
}

// parseStatus rechaza estados desconocidos antes de abrir la transacción.
func parseStatus(s string) (entity.Status, error) {
	st := entity.Status(strings.TrimSpace(s))
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidStatus, s)
	}
	return st, nil
}

// beginTransition valida y aplica el cambio de estado sobre la cabecera en memoria.
// changed=false indica no-op (mismo estado): no se toca el ledger ni el historial.
func beginTransition(h *entity.DocumentHeader, next entity.Status, actor Actor, now time.Time) (prev entity.Status, changed bool, err error) {
	prev = h.Status
	changed, err = inventory.CheckTransition(h.Status, next)
	if err != nil || !changed {
		return prev, false, err
	}
	h.Status = next
	h.ProcessedBy = actor.UserID
	h.UpdatedAt = now
	return prev, true, nil
}

// transitionAction acción de historial para la transición: validate/move al completar, update en el resto.
func transitionAction(t entity.DocumentType, next entity.Status) entity.HistoryAction {
	if next != entity.StatusDone {
		return entity.ActionUpdate
	}
	if t == entity.DocumentTransfer {
		return entity.ActionMove
	}
	return entity.ActionValidate
}

type statusChange struct {
	From entity.Status `json:"from"`
	To   entity.Status `json:"to"`
}

// recordTransition agrega {id, number, statusChange} al historial.
func recordTransition(ctx context.Context, repo repository.HistoryRepository, t entity.DocumentType, h *entity.DocumentHeader, prev entity.Status, actor Actor) error {
	data := map[string]any{
		"id":           h.ID,
		"number":       h.Number,
		"statusChange": statusChange{From: prev, To: h.Status},
	}
	return Record(ctx, repo, transitionAction(t, h.Status), t.EntityType(), h.ID, data, actor)
}

// lockProducts bloquea (FOR UPDATE) cada producto una sola vez, en orden de ID para evitar deadlocks.
func lockProducts(ctx context.Context, repo repository.ProductRepository, ids []string) (map[string]*entity.Product, error) {
	uniq := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			uniq = append(uniq, id)
		}
	}
	sort.Strings(uniq)

	locked := make(map[string]*entity.Product, len(uniq))
	for _, id := range uniq {
		p, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		locked[id] = p
	}
	return locked, nil
}

// saveProducts persiste el stock de los productos bloqueados.
func saveProducts(ctx context.Context, repo repository.ProductRepository, locked map[string]*entity.Product, now time.Time) error {
	ids := make([]string, 0, len(locked))
	for id := range locked {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		p := locked[id]
		p.UpdatedAt = now
		if err := repo.SaveStock(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func itemProductIDs(items []entity.OperationItem) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	return ids
}

// buildItems valida las líneas y toma la instantánea de nombre y unidad del producto.
func buildItems(ctx context.Context, repo repository.ProductRepository, in []itemInput) ([]entity.OperationItem, map[string]*entity.Product, error) {
	if len(in) == 0 {
		return nil, nil, fmt.Errorf("%w: al menos una línea", domain.ErrInvalidInput)
	}
	products := make(map[string]*entity.Product, len(in))
	items := make([]entity.OperationItem, 0, len(in))
	for i, it := range in {
		if it.ProductID == "" {
			return nil, nil, fmt.Errorf("%w: línea %d sin producto", domain.ErrInvalidInput, i+1)
		}
		if it.Quantity < 1 {
			return nil, nil, fmt.Errorf("%w: línea %d cantidad debe ser al menos 1", domain.ErrInvalidInput, i+1)
		}
		p, ok := products[it.ProductID]
		if !ok {
			var err error
			p, err = repo.GetByID(ctx, it.ProductID)
			if err != nil {
				return nil, nil, err
			}
			if p == nil {
				return nil, nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, it.ProductID)
			}
			products[it.ProductID] = p
		}
		items = append(items, entity.OperationItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    it.Quantity,
			Unit:        p.UnitOfMeasure,
		})
	}
	return items, products, nil
}

type itemInput struct {
	ProductID string
	Quantity  int
}

func newHeader(number string, date *time.Time, notes string, actor Actor, now time.Time) entity.DocumentHeader {
	d := now
	if date != nil && !date.IsZero() {
		d = *date
	}
	return entity.DocumentHeader{
		ID:            uuid.New().String(),
		Number:        number,
		Status:        entity.StatusDraft,
		Notes:         strings.TrimSpace(notes),
		Date:          d,
		CreatedBy:     actor.UserID,
		CreatedByName: actor.Name,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func documentFilter(status, warehouseID string, limit, offset int) repository.DocumentFilter {
	return repository.DocumentFilter{
		Status:      entity.Status(status),
		WarehouseID: warehouseID,
		Limit:       limit,
		Offset:      offset,
	}
}

// filterWarehouseID resuelve el filtro opcional de bodega de los listados.
func filterWarehouseID(ctx context.Context, repo repository.WarehouseRepository, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	wh, err := ResolveWarehouse(ctx, repo, key)
	if err != nil {
		return "", err
	}
	return wh.ID, nil
}
