// Package report escribe el reporte de existencias en formato xlsx.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

var _ usecase.StockReportWriter = (*ExcelStockReport)(nil)

// SheetName hoja donde se escriben las filas del reporte.
const SheetName = "Existencias"

var stockHeaders = []any{"SKU", "Producto", "Categoría", "Unidad", "Bodega", "Stock", "Mínimo", "Bajo mínimo"}

// ExcelStockReport implementa usecase.StockReportWriter con excelize.
type ExcelStockReport struct{}

// NewExcelStockReport construye el escritor.
func NewExcelStockReport() *ExcelStockReport { return &ExcelStockReport{} }

// WriteStockReport arma el libro: fila 1 con la fecha de generación, fila 3 encabezados, luego una fila por entrada.
// Las filas bajo mínimo se resaltan.
func (w *ExcelStockReport) WriteStockReport(_ context.Context, generatedAt time.Time, rows []usecase.StockReportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}
	if err := f.SetCellValue(SheetName, "A1", "Reporte de existencias - "+generatedAt.Format("2006-01-02 15:04")); err != nil {
		return nil, fmt.Errorf("excel: título: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A3", &stockHeaders); err != nil {
		return nil, fmt.Errorf("excel: encabezados: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}
	low, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FCE4E4"}},
		Font: &excelize.Font{Color: "#9C0006"},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}
	_ = f.SetCellStyle(SheetName, "A1", "A1", bold)
	_ = f.SetCellStyle(SheetName, "A3", "H3", bold)

	for i, r := range rows {
		line := i + 4
		cell, err := excelize.CoordinatesToCellName(1, line)
		if err != nil {
			return nil, err
		}
		lowLabel := "No"
		if r.Low {
			lowLabel = "Sí"
		}
		values := []any{r.SKU, r.Product, r.Category, r.Unit, r.Warehouse, r.Stock, r.MinStock, lowLabel}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", line, err)
		}
		if r.Low {
			end, _ := excelize.CoordinatesToCellName(len(values), line)
			_ = f.SetCellStyle(SheetName, cell, end, low)
		}
	}
	_ = f.SetColWidth(SheetName, "A", "A", 14)
	_ = f.SetColWidth(SheetName, "B", "B", 32)
	_ = f.SetColWidth(SheetName, "C", "H", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
