package inventory

import (
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// Ledger de stock por bodega: funciones puras sobre el producto en memoria.
// La persistencia y el bloqueo de filas los hace el caso de uso dentro de la transacción.

func findEntry(p *entity.Product, ref entity.WarehouseRef) int {
	for i := range p.Warehouses {
		if p.Warehouses[i].Matches(ref) {
			return i
		}
	}
	return -1
}

// GetStock devuelve el stock del producto en la bodega; 0 si no hay entrada.
func GetStock(p *entity.Product, ref entity.WarehouseRef) int {
	if i := findEntry(p, ref); i >= 0 {
		return p.Warehouses[i].Stock
	}
	return 0
}

// Increase suma amount al stock de la bodega. Si no existe la entrada la crea con MinStock por defecto.
func Increase(p *entity.Product, ref entity.WarehouseRef, amount int) {
	if i := findEntry(p, ref); i >= 0 {
		p.Warehouses[i].Stock += amount
		backfillRef(&p.Warehouses[i], ref)
		return
	}
	p.Warehouses = append(p.Warehouses, entity.WarehouseStock{
		WarehouseID:   ref.ID,
		WarehouseName: ref.Name,
		Stock:         amount,
		MinStock:      entity.DefaultMinStock,
	})
}

// Decrease resta amount sin bajar de 0 y devuelve la cantidad que no pudo descontarse.
// Sin entrada para la bodega no hace nada.
func Decrease(p *entity.Product, ref entity.WarehouseRef, amount int) (shortfall int) {
	i := findEntry(p, ref)
	if i < 0 {
		return amount
	}
	ws := &p.Warehouses[i]
	if ws.Stock < amount {
		shortfall = amount - ws.Stock
		ws.Stock = 0
		return shortfall
	}
	ws.Stock -= amount
	return 0
}

// Set fija el stock de la bodega (ajustes). Crea la entrada si no existe.
func Set(p *entity.Product, ref entity.WarehouseRef, qty int) {
	if i := findEntry(p, ref); i >= 0 {
		p.Warehouses[i].Stock = qty
		backfillRef(&p.Warehouses[i], ref)
		return
	}
	p.Warehouses = append(p.Warehouses, entity.WarehouseStock{
		WarehouseID:   ref.ID,
		WarehouseName: ref.Name,
		Stock:         qty,
		MinStock:      entity.DefaultMinStock,
	})
}

// Transfer mueve amount de from a to. Si from no alcanza devuelve ErrInsufficientStock sin modificar el producto.
func Transfer(p *entity.Product, from, to entity.WarehouseRef, amount int) error {
	if available := GetStock(p, from); available < amount {
		return InsufficientStock(p, from, available, amount)
	}
	Decrease(p, from, amount)
	Increase(p, to, amount)
	return nil
}

// InsufficientStock construye el error con el detalle de producto, bodega y disponible.
func InsufficientStock(p *entity.Product, ref entity.WarehouseRef, available, requested int) error {
	return fmt.Errorf("%w: %s en %s. Disponible: %d, solicitado: %d",
		domain.ErrInsufficientStock, p.Name, refLabel(ref), available, requested)
}

// backfillRef completa el ID de entradas antiguas que solo guardaban el nombre.
func backfillRef(ws *entity.WarehouseStock, ref entity.WarehouseRef) {
	if ws.WarehouseID == "" {
		ws.WarehouseID = ref.ID
	}
	if ws.WarehouseName == "" {
		ws.WarehouseName = ref.Name
	}
}

func refLabel(ref entity.WarehouseRef) string {
	if ref.Name != "" {
		return ref.Name
	}
	return ref.ID
}
