package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "RCP-0001", inventory.FormatNumber(entity.DocumentReceipt, 1))
	assert.Equal(t, "DEL-0042", inventory.FormatNumber(entity.DocumentDelivery, 42))
	assert.Equal(t, "TRF-9999", inventory.FormatNumber(entity.DocumentTransfer, 9999))
	assert.Equal(t, "ADJ-10000", inventory.FormatNumber(entity.DocumentAdjustment, 10000), "no se trunca desde 5 dígitos")
}

func TestParseNumber(t *testing.T) {
	n, ok := inventory.ParseNumber(entity.DocumentReceipt, "RCP-0007")
	assert.True(t, ok)
	assert.Equal(t, int64(7), n)

	n, ok = inventory.ParseNumber(entity.DocumentAdjustment, "ADJ-12345")
	assert.True(t, ok)
	assert.Equal(t, int64(12345), n)

	_, ok = inventory.ParseNumber(entity.DocumentReceipt, "DEL-0007")
	assert.False(t, ok, "prefijo de otro tipo")

	_, ok = inventory.ParseNumber(entity.DocumentReceipt, "RCP-")
	assert.False(t, ok)

	_, ok = inventory.ParseNumber(entity.DocumentReceipt, "RCP-00x1")
	assert.False(t, ok)
}
