package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

const receiptColumns = headerColumns + ", supplier, warehouse_id, warehouse_name"

type receiptRow struct {
	headerRow
	Supplier      string `db:"supplier"`
	WarehouseID   string `db:"warehouse_id"`
	WarehouseName string `db:"warehouse_name"`
}

func (r receiptRow) toEntity(items []entity.OperationItem) *entity.Receipt {
	return &entity.Receipt{
		DocumentHeader: r.headerRow.toEntity(),
		Supplier:       r.Supplier,
		Warehouse:      entity.WarehouseRef{ID: r.WarehouseID, Name: r.WarehouseName},
		Items:          items,
	}
}

// ReceiptRepo implementación del puerto ReceiptRepository sobre PostgreSQL. Las líneas van en operation_items.
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador de persistencia para recepciones.
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

// Create persiste la recepción y sus líneas.
func (r *ReceiptRepo) Create(ctx context.Context, rc *entity.Receipt) error {
	query := `
		INSERT INTO receipts (id, number, status, notes, date, created_by, created_by_name, processed_by, created_at, updated_at,
			supplier, warehouse_id, warehouse_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		rc.ID, rc.Number, rc.Status, rc.Notes, rc.Date, rc.CreatedBy, rc.CreatedByName, rc.ProcessedBy, rc.CreatedAt, rc.UpdatedAt,
		rc.Supplier, rc.Warehouse.ID, rc.Warehouse.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert receipt: %w", err)
	}
	return insertItems(ctx, r.q, entity.DocumentReceipt, rc.ID, rc.Items)
}

// GetByID obtiene una recepción con sus líneas.
func (r *ReceiptRepo) GetByID(ctx context.Context, id string) (*entity.Receipt, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate obtiene la recepción bloqueando su fila.
func (r *ReceiptRepo) GetForUpdate(ctx context.Context, id string) (*entity.Receipt, error) {
	return r.get(ctx, id, true)
}

func (r *ReceiptRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.Receipt, error) {
	var row receiptRow
	found, err := getDocument(ctx, r.q, &row, "receipts", receiptColumns, id, forUpdate)
	if err != nil || !found {
		return nil, err
	}
	items, err := loadItems(ctx, r.q, entity.DocumentReceipt, []string{row.ID})
	if err != nil {
		return nil, err
	}
	return row.toEntity(items[row.ID]), nil
}

// UpdateStatus persiste estado, processed_by y updated_at.
func (r *ReceiptRepo) UpdateStatus(ctx context.Context, rc *entity.Receipt) error {
	return updateDocumentStatus(ctx, r.q, "receipts", rc.DocumentHeader)
}

// List lista recepciones (más recientes primero) con sus líneas.
func (r *ReceiptRepo) List(ctx context.Context, f repository.DocumentFilter) ([]*entity.Receipt, error) {
	var rows []receiptRow
	byWarehouse := func(id string) squirrel.Sqlizer { return squirrel.Eq{"warehouse_id": id} }
	if err := listDocuments(ctx, r.q, &rows, "receipts", receiptColumns, byWarehouse, f); err != nil {
		return nil, err
	}
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	items, err := loadItems(ctx, r.q, entity.DocumentReceipt, ids)
	if err != nil {
		return nil, err
	}
	list := make([]*entity.Receipt, len(rows))
	for i, row := range rows {
		list[i] = row.toEntity(items[row.ID])
	}
	return list, nil
}

// CountByStatus cuenta recepciones en alguno de los estados dados.
func (r *ReceiptRepo) CountByStatus(ctx context.Context, statuses ...entity.Status) (int, error) {
	return countByStatus(ctx, r.q, "receipts", statuses)
}

// Delete elimina la recepción y sus líneas. No revierte stock.
func (r *ReceiptRepo) Delete(ctx context.Context, id string) error {
	if err := deleteItems(ctx, r.q, entity.DocumentReceipt, id); err != nil {
		return err
	}
	return deleteDocument(ctx, r.q, "receipts", id)
}
