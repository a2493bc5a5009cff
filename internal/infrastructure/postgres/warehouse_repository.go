package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

const warehouseColumns = "id, name, location, address, city, state, zip_code, country, capacity, type, contact, phone, email, is_active, created_at, updated_at"

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
// Las columnas coinciden en snake_case con entity.Warehouse, pgxscan mapea directo.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una nueva bodega. Nombre repetido devuelve domain.ErrDuplicate.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, name, location, address, city, state, zip_code, country, capacity, type, contact, phone, email, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		w.ID, w.Name, w.Location, w.Address, w.City, w.State, w.ZipCode, w.Country, w.Capacity,
		w.Type, w.Contact, w.Phone, w.Email, w.IsActive, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID.
func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+warehouseColumns+` FROM warehouses WHERE id = $1`, id)
}

// GetByName obtiene una bodega por nombre exacto.
func (r *WarehouseRepo) GetByName(ctx context.Context, name string) (*entity.Warehouse, error) {
	return r.getOne(ctx, `SELECT `+warehouseColumns+` FROM warehouses WHERE name = $1`, name)
}

func (r *WarehouseRepo) getOne(ctx context.Context, query string, arg any) (*entity.Warehouse, error) {
	var w entity.Warehouse
	if err := pgxscan.Get(ctx, r.q, &w, query, arg); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// Update actualiza una bodega existente.
func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	query := `
		UPDATE warehouses SET name = $2, location = $3, address = $4, city = $5, state = $6, zip_code = $7, country = $8,
			capacity = $9, type = $10, contact = $11, phone = $12, email = $13, is_active = $14, updated_at = $15
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		w.ID, w.Name, w.Location, w.Address, w.City, w.State, w.ZipCode, w.Country,
		w.Capacity, w.Type, w.Contact, w.Phone, w.Email, w.IsActive, w.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update warehouse: %w", err)
	}
	return nil
}

// List lista bodegas ordenadas por nombre.
func (r *WarehouseRepo) List(ctx context.Context, f repository.WarehouseFilter) ([]*entity.Warehouse, error) {
	b := paginate(warehouseWhere(psql.Select(warehouseColumns).From("warehouses"), f).OrderBy("name"), f.Limit, f.Offset)
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list warehouses: %w", err)
	}
	var list []*entity.Warehouse
	if err := pgxscan.Select(ctx, r.q, &list, query, args...); err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	return list, nil
}

// Count cuenta las bodegas que cumplen el filtro.
func (r *WarehouseRepo) Count(ctx context.Context, f repository.WarehouseFilter) (int, error) {
	query, args, err := warehouseWhere(psql.Select("COUNT(*)").From("warehouses"), f).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count warehouses: %w", err)
	}
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count warehouses: %w", err)
	}
	return n, nil
}

// StockReferences suma entradas con stock > 0 (por ID, o por nombre en entradas sin ID)
// y documentos no finales cuya bodega (origen o destino en traslados) es ref.
func (r *WarehouseRepo) StockReferences(ctx context.Context, ref entity.WarehouseRef) (int, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM product_stocks
				WHERE stock > 0 AND (warehouse_id = $1 OR (warehouse_id = '' AND warehouse_name = $2)))
			+ (SELECT COUNT(*) FROM receipts WHERE warehouse_id = $1 AND status NOT IN ('done', 'canceled'))
			+ (SELECT COUNT(*) FROM deliveries WHERE warehouse_id = $1 AND status NOT IN ('done', 'canceled'))
			+ (SELECT COUNT(*) FROM transfers
				WHERE (from_warehouse_id = $1 OR to_warehouse_id = $1) AND status NOT IN ('done', 'canceled'))`
	var n int
	if err := r.q.QueryRow(ctx, query, ref.ID, ref.Name).Scan(&n); err != nil {
		return 0, fmt.Errorf("warehouse references: %w", err)
	}
	return n, nil
}

// Delete elimina una bodega por ID.
func (r *WarehouseRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM warehouses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete warehouse: %w", err)
	}
	return nil
}

func warehouseWhere(b squirrel.SelectBuilder, f repository.WarehouseFilter) squirrel.SelectBuilder {
	if f.Type != "" {
		b = b.Where(squirrel.Eq{"type": f.Type})
	}
	if f.IsActive != nil {
		b = b.Where(squirrel.Eq{"is_active": *f.IsActive})
	}
	return b
}
