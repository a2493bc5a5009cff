package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMinStock es el stock mínimo asignado a una entrada de bodega creada por un movimiento.
const DefaultMinStock = 10

// Category clasifica el producto.
type Category string

const (
	CategoryRaw         Category = "raw"
	CategoryFinished    Category = "finished"
	CategoryConsumables Category = "consumables"
)

// Valid indica si la categoría pertenece al conjunto cerrado.
func (c Category) Valid() bool {
	switch c {
	case CategoryRaw, CategoryFinished, CategoryConsumables:
		return true
	}
	return false
}

// WarehouseRef identifica una bodega por ID (preferido) o por nombre (registros antiguos).
type WarehouseRef struct {
	ID   string
	Name string
}

// WarehouseStock es la entrada de stock de un producto en una bodega.
// Invariante: Stock >= 0 y una sola entrada por bodega dentro del producto.
type WarehouseStock struct {
	WarehouseID   string
	WarehouseName string
	Stock         int
	MinStock      int
}

// Ref devuelve la referencia de bodega de la entrada.
func (ws WarehouseStock) Ref() WarehouseRef {
	return WarehouseRef{ID: ws.WarehouseID, Name: ws.WarehouseName}
}

// Matches compara por ID cuando ambos lo tienen; si no, por nombre exacto.
func (ws WarehouseStock) Matches(ref WarehouseRef) bool {
	if ws.WarehouseID != "" && ref.ID != "" {
		return ws.WarehouseID == ref.ID
	}
	return ref.Name != "" && ws.WarehouseName == ref.Name
}

// IsLow indica si la entrada está por debajo de su mínimo.
func (ws WarehouseStock) IsLow() bool {
	return ws.Stock < ws.MinStock
}

// Product representa un producto del inventario con stock por bodega.
// El stock solo cambia vía el ledger (recepciones, entregas, traslados, ajustes).
type Product struct {
	ID            string
	Name          string
	SKU           string // único, en mayúsculas
	Category      Category
	UnitOfMeasure string
	Description   string
	Price         decimal.Decimal
	Warehouses    []WarehouseStock
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TotalStock suma el stock de todas las bodegas.
func (p *Product) TotalStock() int {
	total := 0
	for _, ws := range p.Warehouses {
		total += ws.Stock
	}
	return total
}

// IsLowStock indica si alguna bodega del producto está por debajo de su mínimo.
func (p *Product) IsLowStock() bool {
	for _, ws := range p.Warehouses {
		if ws.IsLow() {
			return true
		}
	}
	return false
}
