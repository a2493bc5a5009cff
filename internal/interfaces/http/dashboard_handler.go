package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// HistoryHandler expone el historial y las métricas del dashboard.
type HistoryHandler struct {
	history   *inventory.HistoryUseCase
	dashboard *usecase.DashboardUseCase
}

// NewHistoryHandler construye el handler.
func NewHistoryHandler(history *inventory.HistoryUseCase, dashboard *usecase.DashboardUseCase) *HistoryHandler {
	return &HistoryHandler{history: history, dashboard: dashboard}
}

// List godoc
// @Summary      Listar historial
// @Description  Más recientes primero. Las entradas se conservan 90 días por defecto.
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        type     query  string  false  "Tipo de entidad"
// @Param        action   query  string  false  "create | update | delete | move | validate"
// @Param        user_id  query  string  false  "Usuario"
// @Param        limit    query  int     false  "Límite"  default(100)
// @Success      200      {array}   dto.HistoryEntryResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/history [get]
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	var in dto.HistoryListRequest
	if err := bindQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.history.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DashboardStats godoc
// @Summary      Métricas del dashboard
// @Description  Productos, bajo mínimo, documentos pendientes, bodegas activas y últimas 10 acciones.
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsDTO
// @Router       /api/history/dashboard/stats [get]
func (h *HistoryHandler) DashboardStats(c *fiber.Ctx) error {
	stats, err := h.dashboard.GetStats(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}
