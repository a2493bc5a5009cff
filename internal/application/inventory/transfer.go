package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// TransferUseCase traslados internos de un producto entre dos bodegas.
type TransferUseCase struct {
	txRunner      TxRunner
	transferRepo  repository.TransferRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	locker        DocumentLocker
	log           *logger.Logger
}

// NewTransferUseCase construye el caso de uso. locker puede ser nil.
func NewTransferUseCase(
	txRunner TxRunner,
	transferRepo repository.TransferRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	locker DocumentLocker,
	log *logger.Logger,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:      txRunner,
		transferRepo:  transferRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		locker:        locker,
		log:           log,
	}
}

// Create crea el traslado en draft. El stock de origen se verifica al validar.
func (uc *TransferUseCase) Create(ctx context.Context, in dto.CreateTransferRequest, actor Actor) (*dto.TransferResponse, error) {
	if in.ProductID == "" {
		return nil, fmt.Errorf("%w: product_id es requerido", domain.ErrInvalidInput)
	}
	if in.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity debe ser al menos 1", domain.ErrInvalidInput)
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
	}
	from, err := ResolveWarehouse(ctx, uc.warehouseRepo, in.FromLocation)
	if err != nil {
		return nil, err
	}
	to, err := ResolveWarehouse(ctx, uc.warehouseRepo, in.ToLocation)
	if err != nil {
		return nil, err
	}
	if from.ID == to.ID {
		return nil, fmt.Errorf("%w: origen y destino deben ser distintos", domain.ErrInvalidInput)
	}

	now := time.Now()
	t := &entity.Transfer{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    in.Quantity,
		From:        from.Ref(),
		To:          to.Ref(),
	}
	err = uc.txRunner.Run(ctx, func(tx TxRepos) error {
		number, err := NextDocumentNumber(ctx, tx.Sequences, entity.DocumentTransfer)
		if err != nil {
			return err
		}
		t.DocumentHeader = newHeader(number, in.Date, in.Notes, actor, now)
		if err := tx.Transfers.Create(ctx, t); err != nil {
			return err
		}
		return Record(ctx, tx.History, entity.ActionCreate, entity.EntityTransfer, t.ID, map[string]any{
			"id":       t.ID,
			"number":   t.Number,
			"product":  t.ProductName,
			"from":     t.From.Name,
			"to":       t.To.Name,
			"quantity": t.Quantity,
		}, actor)
	})
	if err != nil {
		return nil, err
	}
	return toTransferResponse(t), nil
}

// GetByID obtiene un traslado; domain.ErrNotFound si no existe.
func (uc *TransferUseCase) GetByID(ctx context.Context, id string) (*dto.TransferResponse, error) {
	t, err := uc.transferRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: traslado %s", domain.ErrNotFound, id)
	}
	return toTransferResponse(t), nil
}

// List lista traslados; el filtro de bodega aplica a origen o destino.
func (uc *TransferUseCase) List(ctx context.Context, in dto.DocumentListRequest) (*dto.TransferListResponse, error) {
	in.DefaultPage()
	whID, err := filterWarehouseID(ctx, uc.warehouseRepo, in.Warehouse)
	if err != nil {
		return nil, err
	}
	list, err := uc.transferRepo.List(ctx, documentFilter(in.Status, whID, in.Limit, in.Offset))
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTransferResponse(t))
	}
	return &dto.TransferListResponse{Items: items, Page: dto.PageResponse{Limit: in.Limit, Offset: in.Offset}}, nil
}

// SetStatus aplica la máquina de estados. Al entrar en done mueve la cantidad de origen a destino;
// si el origen no alcanza el cambio de estado se rechaza y el documento queda como estaba.
func (uc *TransferUseCase) SetStatus(ctx context.Context, id, status string, actor Actor) (*dto.TransferResponse, error) {
	next, err := parseStatus(status)
	if err != nil {
		return nil, err
	}
	release, err := lockDocument(ctx, uc.locker, entity.DocumentTransfer, id)
	if err != nil {
		return nil, err
	}
	defer release()

	var (
		out     *entity.Transfer
		prev    entity.Status
		changed bool
	)
	err = uc.txRunner.Run(ctx, func(tx TxRepos) error {
		t, err := tx.Transfers.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("%w: traslado %s", domain.ErrNotFound, id)
		}
		out = t
		now := time.Now()
		prev, changed, err = beginTransition(&t.DocumentHeader, next, actor, now)
		if err != nil || !changed {
			return err
		}
		if next == entity.StatusDone {
			locked, err := lockProducts(ctx, tx.Products, []string{t.ProductID})
			if err != nil {
				return err
			}
			if err := inventory.Transfer(locked[t.ProductID], t.From, t.To, t.Quantity); err != nil {
				return err
			}
			if err := saveProducts(ctx, tx.Products, locked, now); err != nil {
				return err
			}
		}
		if err := tx.Transfers.UpdateStatus(ctx, t); err != nil {
			return err
		}
		return recordTransition(ctx, tx.History, entity.DocumentTransfer, &t.DocumentHeader, prev, actor)
	})
	if err != nil {
		return nil, err
	}
	if changed {
		uc.log.Info().Str("transfer", out.Number).Str("from", string(prev)).Str("to", string(next)).
			Str("user_id", actor.UserID).Msg("estado de traslado actualizado")
	}
	return toTransferResponse(out), nil
}

// Delete elimina el traslado. No revierte el movimiento si ya estaba en done.
func (uc *TransferUseCase) Delete(ctx context.Context, id string, actor Actor) error {
	return uc.txRunner.Run(ctx, func(tx TxRepos) error {
		t, err := tx.Transfers.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("%w: traslado %s", domain.ErrNotFound, id)
		}
		if err := tx.Transfers.Delete(ctx, id); err != nil {
			return err
		}
		return Record(ctx, tx.History, entity.ActionDelete, entity.EntityTransfer, t.ID,
			map[string]any{"id": t.ID, "number": t.Number, "status": t.Status}, actor)
	})
}
