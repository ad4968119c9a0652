package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-pro/internal/application/analytics"
	"github.com/tu-usuario/pos-pro/internal/application/dto"
)

// DashboardHandler expone las estadísticas agregadas del día.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats godoc
// @Summary      Estadísticas del dashboard
// @Description  Ingresos de hoy, total de productos, productos con stock bajo, usuarios activos y pendientes.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsDTO
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.GetStats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
