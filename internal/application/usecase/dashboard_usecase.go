package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

const dashboardRecentActivity = 10 // entradas del historial en el widget del dashboard

// DashboardUseCase genera el resumen del almacén.
//
// Fuente de datos: repositorios de lectura; las consultas son independientes y se lanzan en paralelo.
type DashboardUseCase struct {
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	receiptRepo   repository.ReceiptRepository
	deliveryRepo  repository.DeliveryRepository
	transferRepo  repository.TransferRepository
	historyRepo   repository.HistoryRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	receiptRepo repository.ReceiptRepository,
	deliveryRepo repository.DeliveryRepository,
	transferRepo repository.TransferRepository,
	historyRepo repository.HistoryRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		receiptRepo:   receiptRepo,
		deliveryRepo:  deliveryRepo,
		transferRepo:  transferRepo,
		historyRepo:   historyRepo,
	}
}

// GetStats construye el DashboardStatsDTO.
//
// Siete consultas en paralelo:
//  1. total de productos y productos con stock bajo
//  2. recepciones, entregas y traslados pendientes (draft, waiting, ready)
//  3. bodegas activas
//  4. últimas 10 entradas del historial
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	var (
		out    dto.DashboardStatsDTO
		recent []*entity.HistoryEntry
		active = true
	)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		out.TotalProducts, err = uc.productRepo.Count(gctx, repository.ProductFilter{})
		return wrap("total de productos", err)
	})
	g.Go(func() (err error) {
		out.LowStockProducts, err = uc.productRepo.Count(gctx, repository.ProductFilter{LowStock: true})
		return wrap("productos con stock bajo", err)
	})
	g.Go(func() (err error) {
		out.Pending.Receipts, err = uc.receiptRepo.CountByStatus(gctx, entity.PendingStatuses...)
		return wrap("recepciones pendientes", err)
	})
	g.Go(func() (err error) {
		out.Pending.Deliveries, err = uc.deliveryRepo.CountByStatus(gctx, entity.PendingStatuses...)
		return wrap("entregas pendientes", err)
	})
	g.Go(func() (err error) {
		out.Pending.Transfers, err = uc.transferRepo.CountByStatus(gctx, entity.PendingStatuses...)
		return wrap("traslados pendientes", err)
	})
	g.Go(func() (err error) {
		out.ActiveWarehouses, err = uc.warehouseRepo.Count(gctx, repository.WarehouseFilter{IsActive: &active})
		return wrap("bodegas activas", err)
	})
	g.Go(func() (err error) {
		recent, err = uc.historyRepo.List(gctx, repository.HistoryFilter{Limit: dashboardRecentActivity})
		return wrap("actividad reciente", err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	out.RecentActivity = inventory.ToHistoryResponses(recent)
	return &out, nil
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("dashboard: %s: %w", what, err)
	}
	return nil
}
