package inventory

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Products    repository.ProductRepository
	Warehouses  repository.WarehouseRepository
	Receipts    repository.ReceiptRepository
	Deliveries  repository.DeliveryRepository
	Transfers   repository.TransferRepository
	Adjustments repository.AdjustmentRepository
	Sequences   repository.SequenceRepository
	History     repository.HistoryRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback de todo: ledger, documento, secuencia e historial.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx TxRepos) error) error
}

// DocumentLocker serializa cambios de estado sobre un mismo documento entre instancias.
// release nunca es nil cuando err es nil.
type DocumentLocker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}

// Actor usuario autenticado que ejecuta la operación.
type Actor struct {
	UserID string
	Name   string
	Role   string
}
