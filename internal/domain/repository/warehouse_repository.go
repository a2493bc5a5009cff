package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// WarehouseFilter filtros del listado de bodegas.
type WarehouseFilter struct {
	Type     entity.WarehouseType
	IsActive *bool
	Limit    int
	Offset   int
}

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	GetByName(ctx context.Context, name string) (*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	List(ctx context.Context, f WarehouseFilter) ([]*entity.Warehouse, error)
	Count(ctx context.Context, f WarehouseFilter) (int, error)
	// StockReferences cuenta entradas de stock > 0 y documentos no finales que apuntan a la bodega.
	StockReferences(ctx context.Context, ref entity.WarehouseRef) (int, error)
	Delete(ctx context.Context, id string) error
}
