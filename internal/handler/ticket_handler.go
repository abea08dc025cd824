package handler

import (
	"waterpark-pos/internal/middleware"
	"waterpark-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TicketHandler struct {
	service service.TicketService
}

func NewTicketHandler(s service.TicketService) *TicketHandler {
	return &TicketHandler{service: s}
}

// Create records an entry-ticket sale
// POST /api/v1/ticket-transactions
func (h *TicketHandler) Create(c *fiber.Ctx) error {
	var req service.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	t, err := h.service.Create(&req, middleware.Auth(c))
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Ticket transaction created", "data": t})
}

// List returns ticket sales, filtered and scoped to the caller
// GET /api/v1/ticket-transactions
func (h *TicketHandler) List(c *fiber.Ctx) error {
	filter := service.TicketListFilter{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Search:    c.Query("search"),
		CashierID: c.Query("cashierId"),
	}

	transactions, err := h.service.List(filter, middleware.Auth(c))
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(transactions)
}
