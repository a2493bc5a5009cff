package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

const reportPageSize = 500

// ReportUseCase comprobantes PDF de documentos y reporte de existencias en Excel.
type ReportUseCase struct {
	productRepo  repository.ProductRepository
	receiptRepo  repository.ReceiptRepository
	deliveryRepo repository.DeliveryRepository
	transferRepo repository.TransferRepository
	pdf          DocumentPDFGenerator
	xlsx         StockReportWriter
}

// NewReportUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReportUseCase(
	productRepo repository.ProductRepository,
	receiptRepo repository.ReceiptRepository,
	deliveryRepo repository.DeliveryRepository,
	transferRepo repository.TransferRepository,
	pdf DocumentPDFGenerator,
	xlsx StockReportWriter,
) *ReportUseCase {
	return &ReportUseCase{
		productRepo:  productRepo,
		receiptRepo:  receiptRepo,
		deliveryRepo: deliveryRepo,
		transferRepo: transferRepo,
		pdf:          pdf,
		xlsx:         xlsx,
	}
}

// DocumentPDF genera el comprobante del documento indicado.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el documento no existe.
//   - domain.ErrInvalidInput     si el tipo no tiene comprobante (ajustes).
func (uc *ReportUseCase) DocumentPDF(ctx context.Context, docType entity.DocumentType, id string) ([]byte, string, error) {
	slip, err := uc.loadSlip(ctx, docType, id)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.pdf.GenerateSlip(ctx, *slip)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, slip.Number + ".pdf", nil
}

func (uc *ReportUseCase) loadSlip(ctx context.Context, docType entity.DocumentType, id string) (*DocumentSlip, error) {
	notFound := fmt.Errorf("%w: %s %s", domain.ErrNotFound, docType, id)
	switch docType {
	case entity.DocumentReceipt:
		r, err := uc.receiptRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if r == nil {
			return nil, notFound
		}
		slip := headerSlip("RECEPCIÓN", r.DocumentHeader)
		slip.PartyLabel, slip.Party = "Proveedor", r.Supplier
		slip.Warehouse = r.Warehouse.Name
		slip.Lines = slipLines(r.Items)
		return slip, nil
	case entity.DocumentDelivery:
		d, err := uc.deliveryRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if d == nil {
			return nil, notFound
		}
		slip := headerSlip("ENTREGA", d.DocumentHeader)
		slip.PartyLabel, slip.Party = "Cliente", d.Customer
		slip.Warehouse = d.Warehouse.Name
		slip.Address = d.ShippingAddress
		slip.Lines = slipLines(d.Items)
		return slip, nil
	case entity.DocumentTransfer:
		t, err := uc.transferRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, notFound
		}
		slip := headerSlip("TRASLADO", t.DocumentHeader)
		slip.PartyLabel, slip.Party = "Origen", t.From.Name
		slip.Warehouse = t.To.Name
		slip.Lines = []SlipLine{{ProductName: t.ProductName, Quantity: t.Quantity}}
		return slip, nil
	}
	return nil, fmt.Errorf("%w: tipo de documento %q sin comprobante", domain.ErrInvalidInput, docType)
}

func headerSlip(title string, h entity.DocumentHeader) *DocumentSlip {
	return &DocumentSlip{
		Title:         title,
		Number:        h.Number,
		Status:        string(h.Status),
		Date:          h.Date,
		Notes:         h.Notes,
		CreatedByName: h.CreatedByName,
	}
}

func slipLines(items []entity.OperationItem) []SlipLine {
	out := make([]SlipLine, 0, len(items))
	for _, it := range items {
		out = append(out, SlipLine{ProductName: it.ProductName, Quantity: it.Quantity, Unit: it.Unit})
	}
	return out
}

// StockReport exporta las existencias por producto y bodega. warehouseID vacío = todas.
func (uc *ReportUseCase) StockReport(ctx context.Context, warehouseID string) ([]byte, string, error) {
	var rows []StockReportRow
	for offset := 0; ; offset += reportPageSize {
		page, err := uc.productRepo.List(ctx, repository.ProductFilter{WarehouseID: warehouseID, Limit: reportPageSize, Offset: offset})
		if err != nil {
			return nil, "", fmt.Errorf("reporte: listar productos: %w", err)
		}
		for _, p := range page {
			for _, ws := range p.Warehouses {
				if warehouseID != "" && ws.WarehouseID != warehouseID {
					continue
				}
				rows = append(rows, StockReportRow{
					SKU:       p.SKU,
					Product:   p.Name,
					Category:  string(p.Category),
					Unit:      p.UnitOfMeasure,
					Warehouse: ws.WarehouseName,
					Stock:     ws.Stock,
					MinStock:  ws.MinStock,
					Low:       ws.IsLow(),
				})
			}
		}
		if len(page) < reportPageSize {
			break
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].SKU != rows[j].SKU {
			return rows[i].SKU < rows[j].SKU
		}
		return rows[i].Warehouse < rows[j].Warehouse
	})

	now := time.Now()
	data, err := uc.xlsx.WriteStockReport(ctx, now, rows)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: escribir xlsx: %w", err)
	}
	return data, "existencias_" + now.Format("20060102") + ".xlsx", nil
}
