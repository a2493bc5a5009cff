package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

var skuCaser = cases.Upper(language.Und)

// normalizeSKU recorta y pasa a mayúsculas. El SKU es único sin distinguir mayúsculas.
func normalizeSKU(s string) string {
	return skuCaser.String(strings.TrimSpace(s))
}

// ProductUseCase casos de uso CRUD para productos. El stock solo cambia vía documentos y ajustes;
// aquí se fija únicamente el stock inicial al crear.
type ProductUseCase struct {
	txRunner      inventory.TxRunner
	repo          repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	log           *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner inventory.TxRunner, repo repository.ProductRepository, warehouseRepo repository.WarehouseRepository, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo, warehouseRepo: warehouseRepo, log: log}
}

// Create crea un producto con su stock inicial por bodega.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest, actor inventory.Actor) (*dto.ProductResponse, error) {
	sku := normalizeSKU(in.SKU)
	name := strings.TrimSpace(in.Name)
	if sku == "" || name == "" {
		return nil, fmt.Errorf("%w: sku y name son requeridos", domain.ErrInvalidInput)
	}
	category := entity.Category(in.Category)
	if !category.Valid() {
		return nil, fmt.Errorf("%w: categoría %q", domain.ErrInvalidInput, in.Category)
	}
	if len(in.Warehouses) == 0 {
		return nil, fmt.Errorf("%w: al menos una bodega", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: sku %s", domain.ErrDuplicate, sku)
	}

	entries := make([]entity.WarehouseStock, 0, len(in.Warehouses))
	seen := make(map[string]bool, len(in.Warehouses))
	for _, w := range in.Warehouses {
		if w.Stock < 0 {
			return nil, fmt.Errorf("%w: stock no puede ser negativo", domain.ErrInvalidInput)
		}
		wh, err := inventory.ResolveWarehouse(ctx, uc.warehouseRepo, w.Warehouse)
		if err != nil {
			return nil, err
		}
		if seen[wh.ID] {
			return nil, fmt.Errorf("%w: bodega %s repetida", domain.ErrInvalidInput, wh.Name)
		}
		seen[wh.ID] = true
		minStock := entity.DefaultMinStock
		if w.MinStock != nil {
			minStock = *w.MinStock
		}
		entries = append(entries, entity.WarehouseStock{
			WarehouseID:   wh.ID,
			WarehouseName: wh.Name,
			Stock:         w.Stock,
			MinStock:      minStock,
		})
	}

	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          name,
		SKU:           sku,
		Category:      category,
		UnitOfMeasure: strings.TrimSpace(in.UnitOfMeasure),
		Description:   in.Description,
		Price:         in.Price,
		Warehouses:    entries,
		CreatedBy:     actor.UserID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err = uc.txRunner.Run(ctx, func(tx inventory.TxRepos) error {
		if err := tx.Products.Create(ctx, product); err != nil {
			return err
		}
		return inventory.Record(ctx, tx.History, entity.ActionCreate, entity.EntityProduct, product.ID, map[string]any{
			"id":         product.ID,
			"sku":        product.SKU,
			"name":       product.Name,
			"totalStock": product.TotalStock(),
		}, actor)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", product.ID).Str("sku", product.SKU).Msg("producto creado")
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return toProductResponse(product), nil
}

// Update actualiza datos descriptivos y mínimos por bodega. No modifica el stock.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest, actor inventory.Actor) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	changes := map[string]any{}
	if in.SKU != nil {
		sku := normalizeSKU(*in.SKU)
		if sku != product.SKU {
			other, err := uc.repo.GetBySKU(ctx, sku)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != product.ID {
				return nil, fmt.Errorf("%w: sku %s", domain.ErrDuplicate, sku)
			}
			product.SKU = sku
			changes["sku"] = sku
		}
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
		changes["name"] = product.Name
	}
	if in.Category != nil {
		c := entity.Category(*in.Category)
		if !c.Valid() {
			return nil, fmt.Errorf("%w: categoría %q", domain.ErrInvalidInput, *in.Category)
		}
		product.Category = c
		changes["category"] = c
	}
	if in.UnitOfMeasure != nil {
		product.UnitOfMeasure = strings.TrimSpace(*in.UnitOfMeasure)
		changes["unitOfMeasure"] = product.UnitOfMeasure
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
		}
		product.Price = *in.Price
		changes["price"] = product.Price
	}
	for key, minStock := range in.MinStocks {
		if minStock < 0 {
			return nil, fmt.Errorf("%w: min_stock no puede ser negativo", domain.ErrInvalidInput)
		}
		wh, err := inventory.ResolveWarehouse(ctx, uc.warehouseRepo, key)
		if err != nil {
			return nil, err
		}
		found := false
		for i := range product.Warehouses {
			if product.Warehouses[i].Matches(wh.Ref()) {
				product.Warehouses[i].MinStock = minStock
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: el producto no tiene stock en %s", domain.ErrInvalidInput, wh.Name)
		}
		changes["minStock:"+wh.Name] = minStock
	}
	product.UpdatedAt = time.Now()

	err = uc.txRunner.Run(ctx, func(tx inventory.TxRepos) error {
		if err := tx.Products.Update(ctx, product); err != nil {
			return err
		}
		return inventory.Record(ctx, tx.History, entity.ActionUpdate, entity.EntityProduct, product.ID,
			map[string]any{"id": product.ID, "sku": product.SKU, "changes": changes}, actor)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con filtros y total.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	f := repository.ProductFilter{
		Category: entity.Category(in.Category),
		Search:   strings.TrimSpace(in.Search),
		LowStock: in.LowStock,
		Limit:    in.Limit,
		Offset:   in.Offset,
	}
	if in.Warehouse != "" {
		wh, err := inventory.ResolveWarehouse(ctx, uc.warehouseRepo, in.Warehouse)
		if err != nil {
			return nil, err
		}
		f.WarehouseID = wh.ID
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Delete elimina un producto. Los documentos conservan la instantánea de nombre.
func (uc *ProductUseCase) Delete(ctx context.Context, id string, actor inventory.Actor) error {
	return uc.txRunner.Run(ctx, func(tx inventory.TxRepos) error {
		product, err := tx.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		if err := tx.Products.Delete(ctx, id); err != nil {
			return err
		}
		return inventory.Record(ctx, tx.History, entity.ActionDelete, entity.EntityProduct, id,
			map[string]any{"id": id, "sku": product.SKU, "name": product.Name}, actor)
	})
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	stocks := make([]dto.WarehouseStockResponse, 0, len(p.Warehouses))
	for _, ws := range p.Warehouses {
		stocks = append(stocks, dto.WarehouseStockResponse{
			WarehouseID:   ws.WarehouseID,
			WarehouseName: ws.WarehouseName,
			Stock:         ws.Stock,
			MinStock:      ws.MinStock,
			IsLow:         ws.IsLow(),
		})
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Category:      string(p.Category),
		UnitOfMeasure: p.UnitOfMeasure,
		Description:   p.Description,
		Price:         p.Price,
		Warehouses:    stocks,
		TotalStock:    p.TotalStock(),
		IsLowStock:    p.IsLowStock(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
