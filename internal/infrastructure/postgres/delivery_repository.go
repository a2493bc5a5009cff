package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

const deliveryColumns = headerColumns + ", customer, warehouse_id, warehouse_name, shipping_address"

type deliveryRow struct {
	headerRow
	Customer        string `db:"customer"`
	WarehouseID     string `db:"warehouse_id"`
	WarehouseName   string `db:"warehouse_name"`
	ShippingAddress string `db:"shipping_address"`
}

func (r deliveryRow) toEntity(items []entity.OperationItem) *entity.Delivery {
	return &entity.Delivery{
		DocumentHeader:  r.headerRow.toEntity(),
		Customer:        r.Customer,
		Warehouse:       entity.WarehouseRef{ID: r.WarehouseID, Name: r.WarehouseName},
		ShippingAddress: r.ShippingAddress,
		Items:           items,
	}
}

// DeliveryRepo implementación del puerto DeliveryRepository sobre PostgreSQL.
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador de persistencia para entregas.
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

// Create persiste la entrega y sus líneas.
func (r *DeliveryRepo) Create(ctx context.Context, d *entity.Delivery) error {
	query := `
		INSERT INTO deliveries (id, number, status, notes, date, created_by, created_by_name, processed_by, created_at, updated_at,
			customer, warehouse_id, warehouse_name, shipping_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.Number, d.Status, d.Notes, d.Date, d.CreatedBy, d.CreatedByName, d.ProcessedBy, d.CreatedAt, d.UpdatedAt,
		d.Customer, d.Warehouse.ID, d.Warehouse.Name, d.ShippingAddress,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert delivery: %w", err)
	}
	return insertItems(ctx, r.q, entity.DocumentDelivery, d.ID, d.Items)
}

// GetByID obtiene una entrega con sus líneas.
func (r *DeliveryRepo) GetByID(ctx context.Context, id string) (*entity.Delivery, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate obtiene la entrega bloqueando su fila.
func (r *DeliveryRepo) GetForUpdate(ctx context.Context, id string) (*entity.Delivery, error) {
	return r.get(ctx, id, true)
}

func (r *DeliveryRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.Delivery, error) {
	var row deliveryRow
	found, err := getDocument(ctx, r.q, &row, "deliveries", deliveryColumns, id, forUpdate)
	if err != nil || !found {
		return nil, err
	}
	items, err := loadItems(ctx, r.q, entity.DocumentDelivery, []string{row.ID})
	if err != nil {
		return nil, err
	}
	return row.toEntity(items[row.ID]), nil
}

// UpdateStatus persiste estado, processed_by y updated_at.
func (r *DeliveryRepo) UpdateStatus(ctx context.Context, d *entity.Delivery) error {
	return updateDocumentStatus(ctx, r.q, "deliveries", d.DocumentHeader)
}

// List lista entregas (más recientes primero) con sus líneas.
func (r *DeliveryRepo) List(ctx context.Context, f repository.DocumentFilter) ([]*entity.Delivery, error) {
	var rows []deliveryRow
	byWarehouse := func(id string) squirrel.Sqlizer { return squirrel.Eq{"warehouse_id": id} }
	if err := listDocuments(ctx, r.q, &rows, "deliveries", deliveryColumns, byWarehouse, f); err != nil {
		return nil, err
	}
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	items, err := loadItems(ctx, r.q, entity.DocumentDelivery, ids)
	if err != nil {
		return nil, err
	}
	list := make([]*entity.Delivery, len(rows))
	for i, row := range rows {
		list[i] = row.toEntity(items[row.ID])
	}
	return list, nil
}

// CountByStatus cuenta entregas en alguno de los estados dados.
func (r *DeliveryRepo) CountByStatus(ctx context.Context, statuses ...entity.Status) (int, error) {
	return countByStatus(ctx, r.q, "deliveries", statuses)
}

// Delete elimina la entrega y sus líneas.
func (r *DeliveryRepo) Delete(ctx context.Context, id string) error {
	if err := deleteItems(ctx, r.q, entity.DocumentDelivery, id); err != nil {
		return err
	}
	return deleteDocument(ctx, r.q, "deliveries", id)
}
