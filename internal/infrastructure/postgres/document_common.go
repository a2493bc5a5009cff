package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

const headerColumns = "id, number, status, notes, date, created_by, created_by_name, processed_by, created_at, updated_at"

// headerRow cabecera común de recepciones, entregas y traslados. pgxscan aplana el struct embebido.
type headerRow struct {
	ID            string    `db:"id"`
	Number        string    `db:"number"`
	Status        string    `db:"status"`
	Notes         string    `db:"notes"`
	Date          time.Time `db:"date"`
	CreatedBy     string    `db:"created_by"`
	CreatedByName string    `db:"created_by_name"`
	ProcessedBy   string    `db:"processed_by"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (h headerRow) toEntity() entity.DocumentHeader {
	return entity.DocumentHeader{
		ID:            h.ID,
		Number:        h.Number,
		Status:        entity.Status(h.Status),
		Notes:         h.Notes,
		Date:          h.Date,
		CreatedBy:     h.CreatedBy,
		CreatedByName: h.CreatedByName,
		ProcessedBy:   h.ProcessedBy,
		CreatedAt:     h.CreatedAt,
		UpdatedAt:     h.UpdatedAt,
	}
}

type itemRow struct {
	DocumentID  string `db:"document_id"`
	ProductID   string `db:"product_id"`
	ProductName string `db:"product_name"`
	Quantity    int    `db:"quantity"`
	Unit        string `db:"unit"`
}

func insertItems(ctx context.Context, q Querier, t entity.DocumentType, docID string, items []entity.OperationItem) error {
	if len(items) == 0 {
		return nil
	}
	b := psql.Insert("operation_items").
		Columns("document_type", "document_id", "line", "product_id", "product_name", "quantity", "unit")
	for i, it := range items {
		b = b.Values(t, docID, i+1, it.ProductID, it.ProductName, it.Quantity, it.Unit)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build insert items: %w", err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s items: %w", t, err)
	}
	return nil
}

// loadItems devuelve las líneas de los documentos agrupadas por ID, en orden de línea.
func loadItems(ctx context.Context, q Querier, t entity.DocumentType, ids []string) (map[string][]entity.OperationItem, error) {
	out := make(map[string][]entity.OperationItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := psql.Select("document_id", "product_id", "product_name", "quantity", "unit").
		From("operation_items").
		Where(squirrel.Eq{"document_type": t, "document_id": ids}).
		OrderBy("document_id", "line").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build load items: %w", err)
	}
	var rows []itemRow
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("load %s items: %w", t, err)
	}
	for _, r := range rows {
		out[r.DocumentID] = append(out[r.DocumentID], entity.OperationItem{
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			Quantity:    r.Quantity,
			Unit:        r.Unit,
		})
	}
	return out, nil
}

func deleteItems(ctx context.Context, q Querier, t entity.DocumentType, docID string) error {
	if _, err := q.Exec(ctx, `DELETE FROM operation_items WHERE document_type = $1 AND document_id = $2`, t, docID); err != nil {
		return fmt.Errorf("delete %s items: %w", t, err)
	}
	return nil
}

// getDocument lee una fila de documento en dst; forUpdate bloquea la fila hasta el fin de la tx.
// found=false si no existe.
func getDocument(ctx context.Context, q Querier, dst any, table, columns, id string, forUpdate bool) (found bool, err error) {
	if !validID(id) {
		return false, nil
	}
	b := psql.Select(columns).From(table).Where(squirrel.Eq{"id": id})
	if forUpdate {
		b = b.Suffix("FOR UPDATE")
	}
	query, args, err := b.ToSql()
	if err != nil {
		return false, fmt.Errorf("build get %s: %w", table, err)
	}
	if err := pgxscan.Get(ctx, q, dst, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("get %s: %w", table, err)
	}
	return true, nil
}

// listDocuments aplica estado, bodega y paginación; orden más recientes primero.
func listDocuments(ctx context.Context, q Querier, dst any, table, columns string, warehouseCond func(id string) squirrel.Sqlizer, f repository.DocumentFilter) error {
	b := psql.Select(columns).From(table)
	if f.Status != "" {
		b = b.Where(squirrel.Eq{"status": f.Status})
	}
	if f.WarehouseID != "" {
		b = b.Where(warehouseCond(f.WarehouseID))
	}
	query, args, err := paginate(b.OrderBy("created_at DESC", "number DESC"), f.Limit, f.Offset).ToSql()
	if err != nil {
		return fmt.Errorf("build list %s: %w", table, err)
	}
	if err := pgxscan.Select(ctx, q, dst, query, args...); err != nil {
		return fmt.Errorf("list %s: %w", table, err)
	}
	return nil
}

func countByStatus(ctx context.Context, q Querier, table string, statuses []entity.Status) (int, error) {
	b := psql.Select("COUNT(*)").From(table)
	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, s := range statuses {
			values[i] = string(s)
		}
		b = b.Where(squirrel.Eq{"status": values})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count %s: %w", table, err)
	}
	var n int
	if err := q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

func updateDocumentStatus(ctx context.Context, q Querier, table string, h entity.DocumentHeader) error {
	query := `UPDATE ` + table + ` SET status = $2, processed_by = $3, updated_at = $4 WHERE id = $1`
	if _, err := q.Exec(ctx, query, h.ID, h.Status, h.ProcessedBy, h.UpdatedAt); err != nil {
		return fmt.Errorf("update %s status: %w", table, err)
	}
	return nil
}

func deleteDocument(ctx context.Context, q Querier, table, id string) error {
	if !validID(id) {
		return nil
	}
	if _, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}
