package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// DeliveryUseCase entregas a clientes. Al pasar a done descuenta stock de la bodega de la entrega.
type DeliveryUseCase struct {
	txRunner      TxRunner
	deliveryRepo  repository.DeliveryRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	locker        DocumentLocker
	log           *logger.Logger
}

// NewDeliveryUseCase construye el caso de uso. locker puede ser nil.
func NewDeliveryUseCase(
	txRunner TxRunner,
	deliveryRepo repository.DeliveryRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	locker DocumentLocker,
	log *logger.Logger,
) *DeliveryUseCase {
	return &DeliveryUseCase{
		txRunner:      txRunner,
		deliveryRepo:  deliveryRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		locker:        locker,
		log:           log,
	}
}

// Create crea la entrega en draft. Verifica que la bodega tenga stock para cada producto (sumando líneas repetidas).
func (uc *DeliveryUseCase) Create(ctx context.Context, in dto.CreateDeliveryRequest, actor Actor) (*dto.DeliveryResponse, error) {
	customer := strings.TrimSpace(in.Customer)
	if customer == "" {
		return nil, fmt.Errorf("%w: customer es requerido", domain.ErrInvalidInput)
	}
	wh, err := ResolveWarehouse(ctx, uc.warehouseRepo, in.Warehouse)
	if err != nil {
		return nil, err
	}
	items, products, err := buildItems(ctx, uc.productRepo, toItemInputs(in.Items))
	if err != nil {
		return nil, err
	}
	if err := checkAvailable(items, products, wh.Ref()); err != nil {
		return nil, err
	}

	now := time.Now()
	d := &entity.Delivery{
		Customer:        customer,
		Warehouse:       wh.Ref(),
		ShippingAddress: strings.TrimSpace(in.ShippingAddress),
		Items:           items,
	}
	err = uc.txRunner.Run(ctx, func(tx TxRepos) error {
		number, err := NextDocumentNumber(ctx, tx.Sequences, entity.DocumentDelivery)
		if err != nil {
			return err
		}
		d.DocumentHeader = newHeader(number, in.Date, in.Notes, actor, now)
		if err := tx.Deliveries.Create(ctx, d); err != nil {
			return err
		}
		return Record(ctx, tx.History, entity.ActionCreate, entity.EntityDelivery, d.ID, map[string]any{
			"id":        d.ID,
			"number":    d.Number,
			"customer":  d.Customer,
			"warehouse": d.Warehouse.Name,
			"items":     len(d.Items),
		}, actor)
	})
	if err != nil {
		return nil, err
	}
	return toDeliveryResponse(d), nil
}

// checkAvailable valida la demanda total por producto contra el stock actual de la bodega.
func checkAvailable(items []entity.OperationItem, products map[string]*entity.Product, ref entity.WarehouseRef) error {
	demand := make(map[string]int, len(items))
	for _, it := range items {
		demand[it.ProductID] += it.Quantity
		p := products[it.ProductID]
		if available := inventory.GetStock(p, ref); available < demand[it.ProductID] {
			return inventory.InsufficientStock(p, ref, available, demand[it.ProductID])
		}
	}
	return nil
}

// GetByID obtiene una entrega; domain.ErrNotFound si no existe.
func (uc *DeliveryUseCase) GetByID(ctx context.Context, id string) (*dto.DeliveryResponse, error) {
	d, err := uc.deliveryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("%w: entrega %s", domain.ErrNotFound, id)
	}
	return toDeliveryResponse(d), nil
}

// List lista entregas con filtros de estado y bodega.
func (uc *DeliveryUseCase) List(ctx context.Context, in dto.DocumentListRequest) (*dto.DeliveryListResponse, error) {
	in.DefaultPage()
	whID, err := filterWarehouseID(ctx, uc.warehouseRepo, in.Warehouse)
	if err != nil {
		return nil, err
	}
	list, err := uc.deliveryRepo.List(ctx, documentFilter(in.Status, whID, in.Limit, in.Offset))
	if err != nil {
		return nil, err
	}
	items := make([]dto.DeliveryResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDeliveryResponse(d))
	}
	return &dto.DeliveryListResponse{Items: items, Page: dto.PageResponse{Limit: in.Limit, Offset: in.Offset}}, nil
}

// SetStatus aplica la máquina de estados. Al entrar en done vuelve a verificar el stock
// de cada línea con los productos bloqueados y descuenta; si una línea no alcanza se revierte todo.
func (uc *DeliveryUseCase) SetStatus(ctx context.Context, id, status string, actor Actor) (*dto.DeliveryResponse, error) {
	next, err := parseStatus(status)
	if err != nil {
		return nil, err
	}
	release, err := lockDocument(ctx, uc.locker, entity.DocumentDelivery, id)
	if err != nil {
		return nil, err
	}
	defer release()

	var (
		out     *entity.Delivery
		prev    entity.Status
		changed bool
	)
	err = uc.txRunner.Run(ctx, func(tx TxRepos) error {
		d, err := tx.Deliveries.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if d == nil {
			return fmt.Errorf("%w: entrega %s", domain.ErrNotFound, id)
		}
		out = d
		now := time.Now()
		prev, changed, err = beginTransition(&d.DocumentHeader, next, actor, now)
		if err != nil || !changed {
			return err
		}
		if next == entity.StatusDone {
			locked, err := lockProducts(ctx, tx.Products, itemProductIDs(d.Items))
			if err != nil {
				return err
			}
			for _, it := range d.Items {
				p := locked[it.ProductID]
				if available := inventory.GetStock(p, d.Warehouse); available < it.Quantity {
					return inventory.InsufficientStock(p, d.Warehouse, available, it.Quantity)
				}
				inventory.Decrease(p, d.Warehouse, it.Quantity)
			}
			if err := saveProducts(ctx, tx.Products, locked, now); err != nil {
				return err
			}
		}
		if err := tx.Deliveries.UpdateStatus(ctx, d); err != nil {
			return err
		}
		return recordTransition(ctx, tx.History, entity.DocumentDelivery, &d.DocumentHeader, prev, actor)
	})
	if err != nil {
		return nil, err
	}
	if changed {
		uc.log.Info().Str("delivery", out.Number).Str("from", string(prev)).Str("to", string(next)).
			Str("user_id", actor.UserID).Msg("estado de entrega actualizado")
	}
	return toDeliveryResponse(out), nil
}

// Delete elimina la entrega. No devuelve stock si ya estaba en done.
func (uc *DeliveryUseCase) Delete(ctx context.Context, id string, actor Actor) error {
	return uc.txRunner.Run(ctx, func(tx TxRepos) error {
		d, err := tx.Deliveries.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if d == nil {
			return fmt.Errorf("%w: entrega %s", domain.ErrNotFound, id)
		}
		if err := tx.Deliveries.Delete(ctx, id); err != nil {
			return err
		}
		return Record(ctx, tx.History, entity.ActionDelete, entity.EntityDelivery, d.ID,
			map[string]any{"id": d.ID, "number": d.Number, "status": d.Status}, actor)
	})
}
