package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(tx inventory.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepos construye el juego completo de repositorios sobre q (pool o tx).
func NewRepos(q Querier) inventory.TxRepos {
	return inventory.TxRepos{
		Products:    NewProductRepository(q),
		Warehouses:  NewWarehouseRepository(q),
		Receipts:    NewReceiptRepository(q),
		Deliveries:  NewDeliveryRepository(q),
		Transfers:   NewTransferRepository(q),
		Adjustments: NewAdjustmentRepository(q),
		Sequences:   NewSequenceRepository(q),
		History:     NewHistoryRepository(q),
	}
}
