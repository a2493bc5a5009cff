package entity

import "time"

// Adjustment corrección directa del stock de un producto en una bodega.
// Se aplica al crearse y queda en estado done.
type Adjustment struct {
	ID            string
	Number        string // ADJ-0001
	ProductID     string
	ProductName   string
	Warehouse     WarehouseRef
	OldQuantity   int
	NewQuantity   int
	Reason        string
	Status        Status
	Date          time.Time
	CreatedBy     string
	CreatedByName string
	ApprovedBy    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Difference devuelve NewQuantity - OldQuantity.
func (a *Adjustment) Difference() int {
	return a.NewQuantity - a.OldQuantity
}
