package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// WarehouseStockRequest stock inicial de un producto en una bodega (por ID o nombre).
type WarehouseStockRequest struct {
	Warehouse string `json:"warehouse" validate:"required"`
	Stock     int    `json:"stock" validate:"min=0"`
	MinStock  *int   `json:"min_stock" validate:"omitempty,min=0"`
}

// CreateProductRequest entrada para crear un producto. Al menos una bodega.
type CreateProductRequest struct {
	SKU           string                  `json:"sku" validate:"required,min=1,max=100"`
	Name          string                  `json:"name" validate:"required,min=1,max=200"`
	Category      string                  `json:"category" validate:"required,oneof=raw finished consumables"`
	UnitOfMeasure string                  `json:"unit_of_measure" validate:"required"`
	Description   string                  `json:"description"`
	Price         decimal.Decimal         `json:"price"`
	Warehouses    []WarehouseStockRequest `json:"warehouses" validate:"required,min=1,dive"`
}

// UpdateProductRequest entrada para actualizar un producto. El stock solo cambia vía documentos y ajustes.
type UpdateProductRequest struct {
	SKU           *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category      *string          `json:"category" validate:"omitempty,oneof=raw finished consumables"`
	UnitOfMeasure *string          `json:"unit_of_measure" validate:"omitempty,min=1"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	// MinStocks nuevo mínimo por bodega (clave: ID o nombre de bodega).
	MinStocks map[string]int `json:"min_stocks" validate:"omitempty,dive,min=0"`
}

// WarehouseStockResponse stock del producto en una bodega.
type WarehouseStockResponse struct {
	WarehouseID   string `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
	Stock         int    `json:"stock"`
	MinStock      int    `json:"min_stock"`
	IsLow         bool   `json:"is_low"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string                   `json:"id"`
	SKU           string                   `json:"sku"`
	Name          string                   `json:"name"`
	Category      string                   `json:"category"`
	UnitOfMeasure string                   `json:"unit_of_measure"`
	Description   string                   `json:"description"`
	Price         decimal.Decimal          `json:"price"`
	Warehouses    []WarehouseStockResponse `json:"warehouses"`
	TotalStock    int                      `json:"total_stock"`
	IsLowStock    bool                     `json:"is_low_stock"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

// ProductListRequest filtros de GET /api/products.
type ProductListRequest struct {
	Category  string `query:"category" validate:"omitempty,oneof=raw finished consumables"`
	Search    string `query:"search"`
	Warehouse string `query:"warehouse"`
	LowStock  bool   `query:"low_stock"`
	PageRequest
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
