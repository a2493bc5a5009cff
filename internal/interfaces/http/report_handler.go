package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler descargas: comprobantes PDF y reporte de existencias.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// DocumentPDF devuelve el handler de descarga del comprobante para el tipo de documento.
//
// @Summary      Comprobante PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/pdf [get]
// @Router       /api/deliveries/{id}/pdf [get]
// @Router       /api/transfers/{id}/pdf [get]
func (h *ReportHandler) DocumentPDF(docType entity.DocumentType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, filename, err := h.uc.DocumentPDF(c.UserContext(), docType, c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
		return c.Send(data)
	}
}

// StockReport godoc
// @Summary      Reporte de existencias (xlsx)
// @Description  Una fila por producto y bodega; resalta las entradas bajo mínimo.
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Success      200  {file}  file
// @Router       /api/reports/stock [get]
func (h *ReportHandler) StockReport(c *fiber.Ctx) error {
	data, filename, err := h.uc.StockReport(c.UserContext(), c.Query("warehouse_id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
