package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = "id, name, sku, category, unit_of_measure, description, price, created_by, created_at, updated_at"

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
// El stock por bodega vive en product_stocks, una fila por entrada en el orden del producto.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto con sus entradas de stock iniciales.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, sku, category, unit_of_measure, description, price, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.SKU, p.Category, p.UnitOfMeasure, p.Description, p.Price, p.CreatedBy, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return r.insertStocks(ctx, p)
}

// GetByID obtiene un producto por ID con su stock por bodega.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetBySKU obtiene un producto por SKU (ya normalizado en mayúsculas).
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

// GetForUpdate obtiene el producto bloqueando su fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	stocks, err := r.loadStocks(ctx, []string{p.ID})
	if err != nil {
		return nil, err
	}
	p.Warehouses = stocks[p.ID]
	return p, nil
}

// Update actualiza los datos descriptivos y el mínimo de cada entrada. Nunca escribe el stock.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, sku = $3, category = $4, unit_of_measure = $5, description = $6, price = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.SKU, p.Category, p.UnitOfMeasure, p.Description, p.Price, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	for i, ws := range p.Warehouses {
		_, err := r.q.Exec(ctx,
			`UPDATE product_stocks SET min_stock = $3 WHERE product_id = $1 AND position = $2`,
			p.ID, i, ws.MinStock,
		)
		if err != nil {
			return fmt.Errorf("update min stock: %w", err)
		}
	}
	return nil
}

// SaveStock reemplaza las entradas de stock del producto. Se usa dentro de la tx del ledger.
func (r *ProductRepo) SaveStock(ctx context.Context, p *entity.Product) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM product_stocks WHERE product_id = $1`, p.ID); err != nil {
		return fmt.Errorf("delete product stocks: %w", err)
	}
	if err := r.insertStocks(ctx, p); err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, `UPDATE products SET updated_at = $2 WHERE id = $1`, p.ID, p.UpdatedAt); err != nil {
		return fmt.Errorf("touch product: %w", err)
	}
	return nil
}

func (r *ProductRepo) insertStocks(ctx context.Context, p *entity.Product) error {
	if len(p.Warehouses) == 0 {
		return nil
	}
	b := psql.Insert("product_stocks").
		Columns("product_id", "position", "warehouse_id", "warehouse_name", "stock", "min_stock")
	for i, ws := range p.Warehouses {
		b = b.Values(p.ID, i, ws.WarehouseID, ws.WarehouseName, ws.Stock, ws.MinStock)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build insert stocks: %w", err)
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert product stocks: %w", err)
	}
	return nil
}

// loadStocks devuelve las entradas de stock agrupadas por producto, en su orden original.
func (r *ProductRepo) loadStocks(ctx context.Context, ids []string) (map[string][]entity.WarehouseStock, error) {
	out := make(map[string][]entity.WarehouseStock, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := psql.Select("product_id", "warehouse_id", "warehouse_name", "stock", "min_stock").
		From("product_stocks").
		Where(squirrel.Eq{"product_id": ids}).
		OrderBy("product_id", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build load stocks: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load product stocks: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var productID string
		var ws entity.WarehouseStock
		if err := rows.Scan(&productID, &ws.WarehouseID, &ws.WarehouseName, &ws.Stock, &ws.MinStock); err != nil {
			return nil, fmt.Errorf("scan product stock: %w", err)
		}
		out[productID] = append(out[productID], ws)
	}
	return out, rows.Err()
}

// List lista productos con filtros, ordenados por nombre.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	b := paginate(productWhere(psql.Select(productColumns).From("products"), f).OrderBy("name", "id"), f.Limit, f.Offset)
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list products: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	var list []*entity.Product
	var ids []string
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
		ids = append(ids, p.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	stocks, err := r.loadStocks(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		p.Warehouses = stocks[p.ID]
	}
	return list, nil
}

// Count cuenta los productos que cumplen el filtro (sin paginación).
func (r *ProductRepo) Count(ctx context.Context, f repository.ProductFilter) (int, error) {
	query, args, err := productWhere(psql.Select("COUNT(*)").From("products"), f).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count products: %w", err)
	}
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// Delete elimina el producto; sus entradas de stock caen en cascada.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func productWhere(b squirrel.SelectBuilder, f repository.ProductFilter) squirrel.SelectBuilder {
	if f.Category != "" {
		b = b.Where(squirrel.Eq{"category": f.Category})
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		b = b.Where(squirrel.Or{squirrel.ILike{"name": like}, squirrel.ILike{"sku": like}})
	}
	if f.WarehouseID != "" {
		b = b.Where(`EXISTS (SELECT 1 FROM product_stocks ps WHERE ps.product_id = products.id AND ps.warehouse_id = ?)`, f.WarehouseID)
	}
	if f.LowStock {
		b = b.Where(`EXISTS (SELECT 1 FROM product_stocks ps WHERE ps.product_id = products.id AND ps.stock < ps.min_stock)`)
	}
	return b
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Category, &p.UnitOfMeasure, &p.Description, &p.Price,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
