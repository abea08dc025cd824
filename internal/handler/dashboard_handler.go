package handler

import (
	"waterpark-pos/internal/middleware"
	"waterpark-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetStats returns today's counter overview
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats(middleware.Auth(c))
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(stats)
}

// GetSales returns the per-day revenue chart data
// Query params: startDate, endDate (YYYY-MM-DD)
// GET /api/v1/dashboard/sales
func (h *DashboardHandler) GetSales(c *fiber.Ctx) error {
	report, err := h.service.GetSales(c.Query("startDate"), c.Query("endDate"), middleware.Auth(c))
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
