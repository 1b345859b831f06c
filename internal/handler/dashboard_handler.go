package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-stockbill/internal/service"
	"go-stockbill/internal/ws"
)

type DashboardHandler struct {
	dashboard service.DashboardService
	notifier  ws.Notifier
}

func NewDashboardHandler(dashboard service.DashboardService, notifier ws.Notifier) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, notifier: notifier}
}

// GetSummary returns the aggregate dashboard figures.
// GET /api/v1/dashboard
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.dashboard.Summary(c.Context())
	if err != nil {
		return remoteFailure(c, h.notifier, err)
	}
	return c.JSON(summary)
}
