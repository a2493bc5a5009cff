package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// AdjustmentUseCase ajustes de inventario: fijan el stock de una bodega al conteo físico.
type AdjustmentUseCase struct {
	txRunner       TxRunner
	adjustmentRepo repository.AdjustmentRepository
	warehouseRepo  repository.WarehouseRepository
	log            *logger.Logger
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(
	txRunner TxRunner,
	adjustmentRepo repository.AdjustmentRepository,
	warehouseRepo repository.WarehouseRepository,
	log *logger.Logger,
) *AdjustmentUseCase {
	return &AdjustmentUseCase{
		txRunner:       txRunner,
		adjustmentRepo: adjustmentRepo,
		warehouseRepo:  warehouseRepo,
		log:            log,
	}
}

// Apply registra el ajuste y fija el stock en una sola transacción. El ajuste nace en done,
// aprobado por quien lo crea. OldQuantity es el stock leído con la fila del producto bloqueada.
func (uc *AdjustmentUseCase) Apply(ctx context.Context, in dto.CreateAdjustmentRequest, actor Actor) (*dto.AdjustmentResponse, error) {
	if in.ProductID == "" {
		return nil, fmt.Errorf("%w: product_id es requerido", domain.ErrInvalidInput)
	}
	if in.NewQuantity == nil || *in.NewQuantity < 0 {
		return nil, fmt.Errorf("%w: new_quantity debe ser mayor o igual a 0", domain.ErrInvalidInput)
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason es requerido", domain.ErrInvalidInput)
	}
	wh, err := ResolveWarehouse(ctx, uc.warehouseRepo, in.Warehouse)
	if err != nil {
		return nil, err
	}
	ref := wh.Ref()

	var a *entity.Adjustment
	err = uc.txRunner.Run(ctx, func(tx TxRepos) error {
		locked, err := lockProducts(ctx, tx.Products, []string{in.ProductID})
		if err != nil {
			return err
		}
		p := locked[in.ProductID]
		now := time.Now()
		old := inventory.GetStock(p, ref)
		inventory.Set(p, ref, *in.NewQuantity)
		if err := saveProducts(ctx, tx.Products, locked, now); err != nil {
			return err
		}

		number, err := NextDocumentNumber(ctx, tx.Sequences, entity.DocumentAdjustment)
		if err != nil {
			return err
		}
		a = &entity.Adjustment{
			ID:            uuid.New().String(),
			Number:        number,
			ProductID:     p.ID,
			ProductName:   p.Name,
			Warehouse:     ref,
			OldQuantity:   old,
			NewQuantity:   *in.NewQuantity,
			Reason:        reason,
			Status:        entity.StatusDone,
			Date:          now,
			CreatedBy:     actor.UserID,
			CreatedByName: actor.Name,
			ApprovedBy:    actor.UserID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := tx.Adjustments.Create(ctx, a); err != nil {
			return err
		}
		return Record(ctx, tx.History, entity.ActionCreate, entity.EntityAdjustment, a.ID, map[string]any{
			"id":        a.ID,
			"number":    a.Number,
			"product":   a.ProductName,
			"warehouse": a.Warehouse.Name,
			"change":    map[string]int{"from": a.OldQuantity, "to": a.NewQuantity},
			"reason":    a.Reason,
		}, actor)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("adjustment", a.Number).Str("product_id", a.ProductID).Str("warehouse", ref.Name).
		Int("from", a.OldQuantity).Int("to", a.NewQuantity).Msg("ajuste aplicado")
	return toAdjustmentResponse(a), nil
}

// GetByID obtiene un ajuste; domain.ErrNotFound si no existe.
func (uc *AdjustmentUseCase) GetByID(ctx context.Context, id string) (*dto.AdjustmentResponse, error) {
	a, err := uc.adjustmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("%w: ajuste %s", domain.ErrNotFound, id)
	}
	return toAdjustmentResponse(a), nil
}

// List lista ajustes filtrando por producto y bodega.
func (uc *AdjustmentUseCase) List(ctx context.Context, in dto.AdjustmentListRequest) (*dto.AdjustmentListResponse, error) {
	in.DefaultPage()
	whID, err := filterWarehouseID(ctx, uc.warehouseRepo, in.Warehouse)
	if err != nil {
		return nil, err
	}
	list, err := uc.adjustmentRepo.List(ctx, repository.AdjustmentFilter{
		ProductID:   in.ProductID,
		WarehouseID: whID,
		Limit:       in.Limit,
		Offset:      in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.AdjustmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAdjustmentResponse(a))
	}
	return &dto.AdjustmentListResponse{Items: items, Page: dto.PageResponse{Limit: in.Limit, Offset: in.Offset}}, nil
}

// Delete elimina el registro del ajuste. El stock fijado no se revierte.
func (uc *AdjustmentUseCase) Delete(ctx context.Context, id string, actor Actor) error {
	return uc.txRunner.Run(ctx, func(tx TxRepos) error {
		a, err := tx.Adjustments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return fmt.Errorf("%w: ajuste %s", domain.ErrNotFound, id)
		}
		if err := tx.Adjustments.Delete(ctx, id); err != nil {
			return err
		}
		return Record(ctx, tx.History, entity.ActionDelete, entity.EntityAdjustment, a.ID,
			map[string]any{"id": a.ID, "number": a.Number}, actor)
	})
}
