package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

const transferColumns = headerColumns +
	", product_id, product_name, quantity, from_warehouse_id, from_warehouse_name, to_warehouse_id, to_warehouse_name"

type transferRow struct {
	headerRow
	ProductID         string `db:"product_id"`
	ProductName       string `db:"product_name"`
	Quantity          int    `db:"quantity"`
	FromWarehouseID   string `db:"from_warehouse_id"`
	FromWarehouseName string `db:"from_warehouse_name"`
	ToWarehouseID     string `db:"to_warehouse_id"`
	ToWarehouseName   string `db:"to_warehouse_name"`
}

func (r transferRow) toEntity() *entity.Transfer {
	return &entity.Transfer{
		DocumentHeader: r.headerRow.toEntity(),
		ProductID:      r.ProductID,
		ProductName:    r.ProductName,
		Quantity:       r.Quantity,
		From:           entity.WarehouseRef{ID: r.FromWarehouseID, Name: r.FromWarehouseName},
		To:             entity.WarehouseRef{ID: r.ToWarehouseID, Name: r.ToWarehouseName},
	}
}

// TransferRepo implementación del puerto TransferRepository sobre PostgreSQL. Un traslado mueve un solo producto.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador de persistencia para traslados.
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create persiste el traslado.
func (r *TransferRepo) Create(ctx context.Context, t *entity.Transfer) error {
	query := `
		INSERT INTO transfers (id, number, status, notes, date, created_by, created_by_name, processed_by, created_at, updated_at,
			product_id, product_name, quantity, from_warehouse_id, from_warehouse_name, to_warehouse_id, to_warehouse_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Number, t.Status, t.Notes, t.Date, t.CreatedBy, t.CreatedByName, t.ProcessedBy, t.CreatedAt, t.UpdatedAt,
		t.ProductID, t.ProductName, t.Quantity, t.From.ID, t.From.Name, t.To.ID, t.To.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado por ID.
func (r *TransferRepo) GetByID(ctx context.Context, id string) (*entity.Transfer, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate obtiene el traslado bloqueando su fila.
func (r *TransferRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error) {
	return r.get(ctx, id, true)
}

func (r *TransferRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.Transfer, error) {
	var row transferRow
	found, err := getDocument(ctx, r.q, &row, "transfers", transferColumns, id, forUpdate)
	if err != nil || !found {
		return nil, err
	}
	return row.toEntity(), nil
}

// UpdateStatus persiste estado, processed_by y updated_at.
func (r *TransferRepo) UpdateStatus(ctx context.Context, t *entity.Transfer) error {
	return updateDocumentStatus(ctx, r.q, "transfers", t.DocumentHeader)
}

// List lista traslados; el filtro de bodega aplica a origen o destino.
func (r *TransferRepo) List(ctx context.Context, f repository.DocumentFilter) ([]*entity.Transfer, error) {
	var rows []transferRow
	byWarehouse := func(id string) squirrel.Sqlizer {
		return squirrel.Or{squirrel.Eq{"from_warehouse_id": id}, squirrel.Eq{"to_warehouse_id": id}}
	}
	if err := listDocuments(ctx, r.q, &rows, "transfers", transferColumns, byWarehouse, f); err != nil {
		return nil, err
	}
	list := make([]*entity.Transfer, len(rows))
	for i, row := range rows {
		list[i] = row.toEntity()
	}
	return list, nil
}

// CountByStatus cuenta traslados en alguno de los estados dados.
func (r *TransferRepo) CountByStatus(ctx context.Context, statuses ...entity.Status) (int, error) {
	return countByStatus(ctx, r.q, "transfers", statuses)
}

// Delete elimina el traslado.
func (r *TransferRepo) Delete(ctx context.Context, id string) error {
	return deleteDocument(ctx, r.q, "transfers", id)
}
