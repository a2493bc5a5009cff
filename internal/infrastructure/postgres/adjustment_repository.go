package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

const adjustmentColumns = "id, number, product_id, product_name, warehouse_id, warehouse_name, old_quantity, new_quantity, " +
	"reason, status, date, created_by, created_by_name, approved_by, created_at, updated_at"

type adjustmentRow struct {
	ID            string    `db:"id"`
	Number        string    `db:"number"`
	ProductID     string    `db:"product_id"`
	ProductName   string    `db:"product_name"`
	WarehouseID   string    `db:"warehouse_id"`
	WarehouseName string    `db:"warehouse_name"`
	OldQuantity   int       `db:"old_quantity"`
	NewQuantity   int       `db:"new_quantity"`
	Reason        string    `db:"reason"`
	Status        string    `db:"status"`
	Date          time.Time `db:"date"`
	CreatedBy     string    `db:"created_by"`
	CreatedByName string    `db:"created_by_name"`
	ApprovedBy    string    `db:"approved_by"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (r adjustmentRow) toEntity() *entity.Adjustment {
	return &entity.Adjustment{
		ID:            r.ID,
		Number:        r.Number,
		ProductID:     r.ProductID,
		ProductName:   r.ProductName,
		Warehouse:     entity.WarehouseRef{ID: r.WarehouseID, Name: r.WarehouseName},
		OldQuantity:   r.OldQuantity,
		NewQuantity:   r.NewQuantity,
		Reason:        r.Reason,
		Status:        entity.Status(r.Status),
		Date:          r.Date,
		CreatedBy:     r.CreatedBy,
		CreatedByName: r.CreatedByName,
		ApprovedBy:    r.ApprovedBy,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// AdjustmentRepo implementación del puerto AdjustmentRepository sobre PostgreSQL.
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador de persistencia para ajustes.
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

// Create persiste un ajuste ya aplicado.
func (r *AdjustmentRepo) Create(ctx context.Context, a *entity.Adjustment) error {
	query := `
		INSERT INTO adjustments (id, number, product_id, product_name, warehouse_id, warehouse_name, old_quantity, new_quantity,
			reason, status, date, created_by, created_by_name, approved_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Number, a.ProductID, a.ProductName, a.Warehouse.ID, a.Warehouse.Name, a.OldQuantity, a.NewQuantity,
		a.Reason, a.Status, a.Date, a.CreatedBy, a.CreatedByName, a.ApprovedBy, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert adjustment: %w", err)
	}
	return nil
}

// GetByID obtiene un ajuste por ID.
func (r *AdjustmentRepo) GetByID(ctx context.Context, id string) (*entity.Adjustment, error) {
	var row adjustmentRow
	found, err := getDocument(ctx, r.q, &row, "adjustments", adjustmentColumns, id, false)
	if err != nil || !found {
		return nil, err
	}
	return row.toEntity(), nil
}

// List lista ajustes (más recientes primero) filtrando por producto y bodega.
func (r *AdjustmentRepo) List(ctx context.Context, f repository.AdjustmentFilter) ([]*entity.Adjustment, error) {
	b := psql.Select(adjustmentColumns).From("adjustments")
	if f.ProductID != "" {
		b = b.Where(squirrel.Eq{"product_id": f.ProductID})
	}
	if f.WarehouseID != "" {
		b = b.Where(squirrel.Eq{"warehouse_id": f.WarehouseID})
	}
	query, args, err := paginate(b.OrderBy("created_at DESC", "number DESC"), f.Limit, f.Offset).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list adjustments: %w", err)
	}
	var rows []adjustmentRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	list := make([]*entity.Adjustment, len(rows))
	for i, row := range rows {
		list[i] = row.toEntity()
	}
	return list, nil
}

// Delete elimina el registro del ajuste. El stock queda como está.
func (r *AdjustmentRepo) Delete(ctx context.Context, id string) error {
	return deleteDocument(ctx, r.q, "adjustments", id)
}
