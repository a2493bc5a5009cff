package usecase

import (
	"context"
	"time"
)

// SlipLine línea de un comprobante imprimible.
type SlipLine struct {
	ProductName string
	Quantity    int
	Unit        string
}

// DocumentSlip datos de un comprobante de recepción, entrega o traslado listo para renderizar.
type DocumentSlip struct {
	Title         string // "RECEPCIÓN", "ENTREGA", "TRASLADO"
	Number        string
	Status        string
	Date          time.Time
	PartyLabel    string // Proveedor / Cliente / Origen
	Party         string
	Warehouse     string // bodega (o destino en traslados)
	Address       string
	Notes         string
	CreatedByName string
	Lines         []SlipLine
}

// DocumentPDFGenerator puerto de salida: renderiza el comprobante como PDF.
type DocumentPDFGenerator interface {
	GenerateSlip(ctx context.Context, slip DocumentSlip) ([]byte, error)
}

// StockReportRow fila del reporte de existencias: un producto en una bodega.
type StockReportRow struct {
	SKU       string
	Product   string
	Category  string
	Unit      string
	Warehouse string
	Stock     int
	MinStock  int
	Low       bool
}

// StockReportWriter puerto de salida: escribe el reporte de existencias (xlsx).
type StockReportWriter interface {
	WriteStockReport(ctx context.Context, generatedAt time.Time, rows []StockReportRow) ([]byte, error)
}
