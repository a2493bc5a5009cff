package report_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/infrastructure/report"
)

func TestWriteStockReport(t *testing.T) {
	rows := []usecase.StockReportRow{
		{SKU: "B-1", Product: "Bolt", Category: "raw", Unit: "pcs", Warehouse: "Main Warehouse", Stock: 2, MinStock: 10, Low: true},
		{SKU: "W-1", Product: "Widget", Category: "finished", Unit: "pcs", Warehouse: "Warehouse B", Stock: 40, MinStock: 10},
	}

	out, err := report.NewExcelStockReport().WriteStockReport(context.Background(), time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC), rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(report.SheetName)
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, "Reporte de existencias - 2026-05-01 09:30", got[0][0])
	assert.Equal(t, "SKU", got[2][0])
	assert.Equal(t, []string{"B-1", "Bolt", "raw", "pcs", "Main Warehouse", "2", "10", "Sí"}, got[3])
	assert.Equal(t, "No", got[4][7])
}
