package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
)

var (
	whA = entity.WarehouseRef{ID: "wh-a", Name: "Main Warehouse"}
	whB = entity.WarehouseRef{ID: "wh-b", Name: "Warehouse B"}
)

func widget(entries ...entity.WarehouseStock) *entity.Product {
	return &entity.Product{ID: "p-1", Name: "Widget", SKU: "WID-001", Warehouses: entries}
}

func TestGetStock_SinEntradaEsCero(t *testing.T) {
	p := widget(entity.WarehouseStock{WarehouseID: whA.ID, WarehouseName: whA.Name, Stock: 5, MinStock: 10})

	assert.Equal(t, 5, inventory.GetStock(p, whA))
	assert.Equal(t, 0, inventory.GetStock(p, whB))
}

func TestGetStock_EntradaAntiguaPorNombre(t *testing.T) {
	// Entradas guardadas antes de existir la referencia por ID.
	p := widget(entity.WarehouseStock{WarehouseName: "Main Warehouse", Stock: 7, MinStock: 10})

	assert.Equal(t, 7, inventory.GetStock(p, whA))
}

func TestIncrease_CreaEntradaConMinStockPorDefecto(t *testing.T) {
	p := widget()

	inventory.Increase(p, whB, 20)

	require.Len(t, p.Warehouses, 1)
	assert.Equal(t, 20, p.Warehouses[0].Stock)
	assert.Equal(t, entity.DefaultMinStock, p.Warehouses[0].MinStock)
	assert.Equal(t, "wh-b", p.Warehouses[0].WarehouseID)
	assert.Equal(t, "Warehouse B", p.Warehouses[0].WarehouseName)
}

func TestIncrease_SumaSobreEntradaExistente(t *testing.T) {
	p := widget(entity.WarehouseStock{WarehouseName: "Main Warehouse", Stock: 3, MinStock: 4})

	inventory.Increase(p, whA, 7)

	require.Len(t, p.Warehouses, 1, "no debe duplicar la entrada de la bodega")
	assert.Equal(t, 10, p.Warehouses[0].Stock)
	assert.Equal(t, 4, p.Warehouses[0].MinStock, "MinStock existente se conserva")
	assert.Equal(t, "wh-a", p.Warehouses[0].WarehouseID, "la entrada antigua recibe el ID")
}

func TestDecrease_NoBajaDeCero(t *testing.T) {
	p := widget(entity.WarehouseStock{WarehouseID: whA.ID, Stock: 4})

	shortfall := inventory.Decrease(p, whA, 6)

	assert.Equal(t, 0, inventory.GetStock(p, whA))
	assert.Equal(t, 2, shortfall)
}

func TestDecrease_SinEntradaNoCrea(t *testing.T) {
	p := widget()

	inventory.Decrease(p, whA, 3)

	assert.Empty(t, p.Warehouses)
}

func TestSet_FijaYCrea(t *testing.T) {
	p := widget(entity.WarehouseStock{WarehouseID: whA.ID, WarehouseName: whA.Name, Stock: 70, MinStock: 10})

	inventory.Set(p, whA, 65)
	inventory.Set(p, whB, 0)

	assert.Equal(t, 65, inventory.GetStock(p, whA))
	require.Len(t, p.Warehouses, 2)
	assert.Equal(t, 0, p.Warehouses[1].Stock)
	assert.Equal(t, entity.DefaultMinStock, p.Warehouses[1].MinStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transfer
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_MueveYCreaDestino(t *testing.T) {
	p := widget(entity.WarehouseStock{WarehouseID: whA.ID, WarehouseName: whA.Name, Stock: 50, MinStock: 10})

	require.NoError(t, inventory.Transfer(p, whA, whB, 20))

	assert.Equal(t, 30, inventory.GetStock(p, whA))
	assert.Equal(t, 20, inventory.GetStock(p, whB))
	assert.Equal(t, 50, p.TotalStock(), "el traslado conserva el total")
}

func TestTransfer_InsuficienteNoModifica(t *testing.T) {
	p := widget(entity.WarehouseStock{WarehouseID: whA.ID, WarehouseName: whA.Name, Stock: 5, MinStock: 10})

	err := inventory.Transfer(p, whA, whB, 6)

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Disponible: 5")
	assert.Equal(t, 5, inventory.GetStock(p, whA))
	assert.Len(t, p.Warehouses, 1, "no debe crear la entrada destino")
}

func TestTransfer_ExactoAlLimite(t *testing.T) {
	p := widget(entity.WarehouseStock{WarehouseID: whA.ID, Stock: 5})

	require.NoError(t, inventory.Transfer(p, whA, whB, 5))
	assert.Equal(t, 0, inventory.GetStock(p, whA))
	assert.Equal(t, 5, inventory.GetStock(p, whB))
}

func TestIsLowStock(t *testing.T) {
	p := widget(
		entity.WarehouseStock{WarehouseID: whA.ID, Stock: 20, MinStock: 10},
		entity.WarehouseStock{WarehouseID: whB.ID, Stock: 9, MinStock: 10},
	)
	assert.True(t, p.IsLowStock())

	p.Warehouses[1].Stock = 10
	assert.False(t, p.IsLowStock())
}
