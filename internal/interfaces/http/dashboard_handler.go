package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/aurexia-api/internal/application/analytics"
	"github.com/jhoicas/aurexia-api/internal/application/dto"
)

// DashboardHandler maneja los endpoints del tablero de planta.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats devuelve los contadores del tablero.
// GET /api/dashboard/stats
//
// Respuesta: DashboardStatsDTO (órdenes abiertas, completadas, embarcadas,
// en producción y el semáforo delayed/at_risk/on_time).
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	out, err := h.uc.GetStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ProductionBoard GET /api/dashboard/production?status=&risk_status=&customer_id=
func (h *DashboardHandler) ProductionBoard(c *fiber.Ctx) error {
	out, err := h.uc.ProductionBoard(c.Context(), dto.ProductionBoardFilter{
		Status:      c.Query("status"),
		RiskStatus:  c.Query("risk_status"),
		CustomerID:  c.Query("customer_id"),
		PageRequest: pageFrom(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// WorkCenterLoad GET /api/dashboard/work-center-load
func (h *DashboardHandler) WorkCenterLoad(c *fiber.Ctx) error {
	out, err := h.uc.WorkCenterLoad(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DailyProduction GET /api/dashboard/daily-production?days=7
func (h *DashboardHandler) DailyProduction(c *fiber.Ctx) error {
	out, err := h.uc.DailyProduction(c.Context(), c.QueryInt("days", 7))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
