package entity

import "time"

// DefaultCountry país asignado cuando la bodega no lo especifica.
const DefaultCountry = "USA"

// WarehouseType tipo operativo de la bodega.
type WarehouseType string

const (
	WarehouseMain         WarehouseType = "main"
	WarehouseDistribution WarehouseType = "distribution"
	WarehouseProduction   WarehouseType = "production"
)

// Valid indica si el tipo pertenece al conjunto cerrado.
func (t WarehouseType) Valid() bool {
	switch t {
	case WarehouseMain, WarehouseDistribution, WarehouseProduction:
		return true
	}
	return false
}

// Warehouse representa una bodega física. Name es único.
type Warehouse struct {
	ID        string
	Name      string
	Location  string
	Address   string
	City      string
	State     string
	ZipCode   string
	Country   string
	Capacity  int
	Type      WarehouseType
	Contact   string
	Phone     string
	Email     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Ref devuelve la referencia usada por las entradas de stock.
func (w *Warehouse) Ref() WarehouseRef {
	return WarehouseRef{ID: w.ID, Name: w.Name}
}
