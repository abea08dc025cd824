package handler

import (
	"waterpark-pos/internal/middleware"
	"waterpark-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TransactionHandler struct {
	service service.TransactionService
}

func NewTransactionHandler(s service.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

// Create records a clothes-counter sale
// POST /api/v1/transactions
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var req service.CreateRentalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	t, err := h.service.Create(&req, middleware.Auth(c))
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Transaction created", "data": t})
}

// List returns rental transactions, filtered and scoped to the caller
// GET /api/v1/transactions
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	filter := service.RentalListFilter{
		StartDate:     c.Query("startDate"),
		EndDate:       c.Query("endDate"),
		Status:        c.Query("status"),
		Search:        c.Query("search"),
		CashierID:     c.Query("cashierId"),
		IncludeLinked: c.QueryBool("includeLinked"),
	}

	transactions, err := h.service.List(filter, middleware.Auth(c))
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(transactions)
}

// Get returns a single transaction with its linked child
// GET /api/v1/transactions/:id
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	t, err := h.service.Get(id, middleware.Auth(c))
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(t)
}

// ReturnAdvance settles a held deposit with itemized deductions
// PATCH /api/v1/transactions
func (h *TransactionHandler) ReturnAdvance(c *fiber.Ctx) error {
	var req service.ReturnAdvanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.TransactionID == uuid.Nil {
		return c.Status(400).JSON(fiber.Map{"error": "transaction_id is required"})
	}

	t, err := h.service.ReturnAdvance(&req, middleware.Auth(c))
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Advance returned", "data": t})
}
