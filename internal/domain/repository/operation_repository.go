package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// DocumentFilter filtros comunes de listados de recepciones, entregas y traslados.
type DocumentFilter struct {
	Status      entity.Status
	WarehouseID string // recepción/entrega: bodega; traslado: origen o destino
	Limit       int
	Offset      int
}

// ReceiptRepository puerto de persistencia de recepciones (con sus líneas).
type ReceiptRepository interface {
	Create(ctx context.Context, r *entity.Receipt) error
	GetByID(ctx context.Context, id string) (*entity.Receipt, error)
	// GetForUpdate bloquea la fila del documento hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Receipt, error)
	UpdateStatus(ctx context.Context, r *entity.Receipt) error
	List(ctx context.Context, f DocumentFilter) ([]*entity.Receipt, error)
	CountByStatus(ctx context.Context, statuses ...entity.Status) (int, error)
	Delete(ctx context.Context, id string) error
}

// DeliveryRepository puerto de persistencia de entregas (con sus líneas).
type DeliveryRepository interface {
	Create(ctx context.Context, d *entity.Delivery) error
	GetByID(ctx context.Context, id string) (*entity.Delivery, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Delivery, error)
	UpdateStatus(ctx context.Context, d *entity.Delivery) error
	List(ctx context.Context, f DocumentFilter) ([]*entity.Delivery, error)
	CountByStatus(ctx context.Context, statuses ...entity.Status) (int, error)
	Delete(ctx context.Context, id string) error
}

// TransferRepository puerto de persistencia de traslados.
type TransferRepository interface {
	Create(ctx context.Context, t *entity.Transfer) error
	GetByID(ctx context.Context, id string) (*entity.Transfer, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error)
	UpdateStatus(ctx context.Context, t *entity.Transfer) error
	List(ctx context.Context, f DocumentFilter) ([]*entity.Transfer, error)
	CountByStatus(ctx context.Context, statuses ...entity.Status) (int, error)
	Delete(ctx context.Context, id string) error
}

// AdjustmentFilter filtros del listado de ajustes.
type AdjustmentFilter struct {
	ProductID   string
	WarehouseID string
	Limit       int
	Offset      int
}

// AdjustmentRepository puerto de persistencia de ajustes.
type AdjustmentRepository interface {
	Create(ctx context.Context, a *entity.Adjustment) error
	GetByID(ctx context.Context, id string) (*entity.Adjustment, error)
	List(ctx context.Context, f AdjustmentFilter) ([]*entity.Adjustment, error)
	Delete(ctx context.Context, id string) error
}

// SequenceRepository contador atómico por tipo de documento.
// Next incrementa y devuelve el siguiente valor; la primera vez parte del mayor número existente.
type SequenceRepository interface {
	Next(ctx context.Context, docType entity.DocumentType) (int64, error)
}
