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

// ReceiptUseCase recepciones de proveedor: creación, cambios de estado y consulta.
// Al pasar a done suma las cantidades en la bodega de la recepción, todo en una transacción.
type ReceiptUseCase struct {
	txRunner      TxRunner
	receiptRepo   repository.ReceiptRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	locker        DocumentLocker
	log           *logger.Logger
}

// NewReceiptUseCase construye el caso de uso. locker puede ser nil (sin lock distribuido).
func NewReceiptUseCase(
	txRunner TxRunner,
	receiptRepo repository.ReceiptRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	locker DocumentLocker,
	log *logger.Logger,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		txRunner:      txRunner,
		receiptRepo:   receiptRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		locker:        locker,
		log:           log,
	}
}

// Create crea la recepción en draft con número RCP-NNNN.
func (uc *ReceiptUseCase) Create(ctx context.Context, in dto.CreateReceiptRequest, actor Actor) (*dto.ReceiptResponse, error) {
	supplier := strings.TrimSpace(in.Supplier)
	if supplier == "" {
		return nil, fmt.Errorf("%w: supplier es requerido", domain.ErrInvalidInput)
	}
	wh, err := ResolveWarehouse(ctx, uc.warehouseRepo, in.Warehouse)
	if err != nil {
		return nil, err
	}
	items, _, err := buildItems(ctx, uc.productRepo, toItemInputs(in.Items))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	r := &entity.Receipt{Supplier: supplier, Warehouse: wh.Ref(), Items: items}
	err = uc.txRunner.Run(ctx, func(tx TxRepos) error {
		number, err := NextDocumentNumber(ctx, tx.Sequences, entity.DocumentReceipt)
		if err != nil {
			return err
		}
		r.DocumentHeader = newHeader(number, in.Date, in.Notes, actor, now)
		if err := tx.Receipts.Create(ctx, r); err != nil {
			return err
		}
		return Record(ctx, tx.History, entity.ActionCreate, entity.EntityReceipt, r.ID, map[string]any{
			"id":        r.ID,
			"number":    r.Number,
			"supplier":  r.Supplier,
			"warehouse": r.Warehouse.Name,
			"items":     len(r.Items),
		}, actor)
	})
	if err != nil {
		return nil, err
	}
	return toReceiptResponse(r), nil
}

// GetByID obtiene una recepción; domain.ErrNotFound si no existe.
func (uc *ReceiptUseCase) GetByID(ctx context.Context, id string) (*dto.ReceiptResponse, error) {
	r, err := uc.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: recepción %s", domain.ErrNotFound, id)
	}
	return toReceiptResponse(r), nil
}

// List lista recepciones con filtros de estado y bodega.
func (uc *ReceiptUseCase) List(ctx context.Context, in dto.DocumentListRequest) (*dto.ReceiptListResponse, error) {
	in.DefaultPage()
	whID, err := filterWarehouseID(ctx, uc.warehouseRepo, in.Warehouse)
	if err != nil {
		return nil, err
	}
	list, err := uc.receiptRepo.List(ctx, documentFilter(in.Status, whID, in.Limit, in.Offset))
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReceiptResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toReceiptResponse(r))
	}
	return &dto.ReceiptListResponse{Items: items, Page: dto.PageResponse{Limit: in.Limit, Offset: in.Offset}}, nil
}

// SetStatus aplica la máquina de estados. Al entrar en done incrementa el stock de cada línea.
// Reenviar el estado final actual es no-op: devuelve el documento sin tocar el ledger.
func (uc *ReceiptUseCase) SetStatus(ctx context.Context, id, status string, actor Actor) (*dto.ReceiptResponse, error) {
	next, err := parseStatus(status)
	if err != nil {
		return nil, err
	}
	release, err := lockDocument(ctx, uc.locker, entity.DocumentReceipt, id)
	if err != nil {
		return nil, err
	}
	defer release()

	var (
		out     *entity.Receipt
		prev    entity.Status
		changed bool
	)
	err = uc.txRunner.Run(ctx, func(tx TxRepos) error {
		r, err := tx.Receipts.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if r == nil {
			return fmt.Errorf("%w: recepción %s", domain.ErrNotFound, id)
		}
		out = r
		now := time.Now()
		prev, changed, err = beginTransition(&r.DocumentHeader, next, actor, now)
		if err != nil || !changed {
			return err
		}
		if next == entity.StatusDone {
			locked, err := lockProducts(ctx, tx.Products, itemProductIDs(r.Items))
			if err != nil {
				return err
			}
			for _, it := range r.Items {
				inventory.Increase(locked[it.ProductID], r.Warehouse, it.Quantity)
			}
			if err := saveProducts(ctx, tx.Products, locked, now); err != nil {
				return err
			}
		}
		if err := tx.Receipts.UpdateStatus(ctx, r); err != nil {
			return err
		}
		return recordTransition(ctx, tx.History, entity.DocumentReceipt, &r.DocumentHeader, prev, actor)
	})
	if err != nil {
		return nil, err
	}
	if changed {
		uc.log.Info().Str("receipt", out.Number).Str("from", string(prev)).Str("to", string(next)).
			Str("user_id", actor.UserID).Msg("estado de recepción actualizado")
	}
	return toReceiptResponse(out), nil
}

// Delete elimina la recepción. No revierte stock si ya estaba en done.
func (uc *ReceiptUseCase) Delete(ctx context.Context, id string, actor Actor) error {
	return uc.txRunner.Run(ctx, func(tx TxRepos) error {
		r, err := tx.Receipts.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if r == nil {
			return fmt.Errorf("%w: recepción %s", domain.ErrNotFound, id)
		}
		if err := tx.Receipts.Delete(ctx, id); err != nil {
			return err
		}
		return Record(ctx, tx.History, entity.ActionDelete, entity.EntityReceipt, r.ID,
			map[string]any{"id": r.ID, "number": r.Number, "status": r.Status}, actor)
	})
}

func toItemInputs(in []dto.OperationItemRequest) []itemInput {
	out := make([]itemInput, 0, len(in))
	for _, it := range in {
		out = append(out, itemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return out
}
