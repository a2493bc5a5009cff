package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para bodegas.
type WarehouseUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(txRunner inventory.TxRunner, repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{txRunner: txRunner, repo: repo}
}

// Create crea una bodega. Type por defecto main, Country por defecto USA, activa salvo que se indique.
func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.CreateWarehouseRequest, actor inventory.Actor) (*dto.WarehouseResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || strings.TrimSpace(in.Location) == "" {
		return nil, fmt.Errorf("%w: name y location son requeridos", domain.ErrInvalidInput)
	}
	whType := entity.WarehouseMain
	if in.Type != "" {
		whType = entity.WarehouseType(in.Type)
		if !whType.Valid() {
			return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, in.Type)
		}
	}
	country := strings.TrimSpace(in.Country)
	if country == "" {
		country = entity.DefaultCountry
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: bodega %s", domain.ErrDuplicate, name)
	}

	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      name,
		Location:  strings.TrimSpace(in.Location),
		Address:   in.Address,
		City:      in.City,
		State:     in.State,
		ZipCode:   in.ZipCode,
		Country:   country,
		Capacity:  in.Capacity,
		Type:      whType,
		Contact:   in.Contact,
		Phone:     in.Phone,
		Email:     in.Email,
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = uc.txRunner.Run(ctx, func(tx inventory.TxRepos) error {
		if err := tx.Warehouses.Create(ctx, warehouse); err != nil {
			return err
		}
		return inventory.Record(ctx, tx.History, entity.ActionCreate, entity.EntityWarehouse, warehouse.ID,
			map[string]any{"id": warehouse.ID, "name": warehouse.Name, "type": warehouse.Type}, actor)
	})
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, id)
	}
	return toWarehouseResponse(warehouse), nil
}

// Update actualiza una bodega. Renombrar no reescribe las entradas de stock: se emparejan por ID.
func (uc *WarehouseUseCase) Update(ctx context.Context, id string, in dto.UpdateWarehouseRequest, actor inventory.Actor) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, id)
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name != warehouse.Name {
			other, err := uc.repo.GetByName(ctx, name)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != warehouse.ID {
				return nil, fmt.Errorf("%w: bodega %s", domain.ErrDuplicate, name)
			}
			warehouse.Name = name
		}
	}
	if in.Type != nil {
		t := entity.WarehouseType(*in.Type)
		if !t.Valid() {
			return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, *in.Type)
		}
		warehouse.Type = t
	}
	setString(&warehouse.Location, in.Location)
	setString(&warehouse.Address, in.Address)
	setString(&warehouse.City, in.City)
	setString(&warehouse.State, in.State)
	setString(&warehouse.ZipCode, in.ZipCode)
	setString(&warehouse.Country, in.Country)
	setString(&warehouse.Contact, in.Contact)
	setString(&warehouse.Phone, in.Phone)
	setString(&warehouse.Email, in.Email)
	if in.Capacity != nil {
		warehouse.Capacity = *in.Capacity
	}
	if in.IsActive != nil {
		warehouse.IsActive = *in.IsActive
	}
	warehouse.UpdatedAt = time.Now()

	err = uc.txRunner.Run(ctx, func(tx inventory.TxRepos) error {
		if err := tx.Warehouses.Update(ctx, warehouse); err != nil {
			return err
		}
		return inventory.Record(ctx, tx.History, entity.ActionUpdate, entity.EntityWarehouse, warehouse.ID,
			map[string]any{"id": warehouse.ID, "name": warehouse.Name, "isActive": warehouse.IsActive}, actor)
	})
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

// List lista bodegas con filtros y total.
func (uc *WarehouseUseCase) List(ctx context.Context, in dto.WarehouseListRequest) (*dto.WarehouseListResponse, error) {
	in.DefaultPage()
	f := repository.WarehouseFilter{
		Type:     entity.WarehouseType(in.Type),
		IsActive: in.IsActive,
		Limit:    in.Limit,
		Offset:   in.Offset,
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Delete elimina una bodega. Si algún producto tiene stock en ella o hay documentos
// pendientes que la usan devuelve ErrConflict.
func (uc *WarehouseUseCase) Delete(ctx context.Context, id string, actor inventory.Actor) error {
	return uc.txRunner.Run(ctx, func(tx inventory.TxRepos) error {
		warehouse, err := tx.Warehouses.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, id)
		}
		refs, err := tx.Warehouses.StockReferences(ctx, warehouse.Ref())
		if err != nil {
			return err
		}
		if refs > 0 {
			return fmt.Errorf("%w: la bodega %s tiene %d referencias de stock o documentos pendientes", domain.ErrConflict, warehouse.Name, refs)
		}
		if err := tx.Warehouses.Delete(ctx, id); err != nil {
			return err
		}
		return inventory.Record(ctx, tx.History, entity.ActionDelete, entity.EntityWarehouse, id,
			map[string]any{"id": id, "name": warehouse.Name}, actor)
	})
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Location:  w.Location,
		Address:   w.Address,
		City:      w.City,
		State:     w.State,
		ZipCode:   w.ZipCode,
		Country:   w.Country,
		Capacity:  w.Capacity,
		Type:      string(w.Type),
		Contact:   w.Contact,
		Phone:     w.Phone,
		Email:     w.Email,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
