package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/armory-api/internal/application/analytics"
)

// DashboardHandler serves the aggregated metrics view.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler builds the handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get godoc
// @Summary      Dashboard metrics for the filter window
// @Description  Counters, net movement and per-base opening/closing
//
//	balances replayed from the movement ledger.
//
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        date           query  string  false  "event day (YYYY-MM-DD) or RFC3339 instant"
// @Param        time           query  string  false  "upper bound clock (HH:MM) within date"
// @Param        base           query  string  false  "base id"
// @Param        equipmentType  query  string  false  "asset type or name"
// @Success      200  {object}  dto.DashboardMetrics
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	f, err := eventFilterFromQuery(c)
	if err != nil {
		return errorJSON(c, err)
	}
	metrics, err := h.uc.GetMetrics(c.Context(), f)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(metrics)
}
