package handler

import (
	"waterpark-pos/internal/middleware"
	"waterpark-pos/internal/repository"
	"waterpark-pos/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type PriceHandler struct {
	priceRepo repository.PriceRepository
}

func NewPriceHandler(priceRepo repository.PriceRepository) *PriceHandler {
	return &PriceHandler{priceRepo: priceRepo}
}

// List returns active prices. Public: the checkout UI reads this before
// anyone signs in.
// GET /api/v1/prices
func (h *PriceHandler) List(c *fiber.Ctx) error {
	prices, err := h.priceRepo.FindActive()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch prices"})
	}
	return c.JSON(prices)
}

// UpdatePriceRequest edits one price row by item key
type UpdatePriceRequest struct {
	ItemKey  string   `json:"item_key" validate:"required"`
	ItemName *string  `json:"item_name"`
	Price    *float64 `json:"price"`
	IsActive *bool    `json:"is_active"`
}

// Update edits a price (admin only)
// PUT /api/v1/prices
func (h *PriceHandler) Update(c *fiber.Ctx) error {
	var req UpdatePriceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := validator.FirstError(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Price != nil && *req.Price < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "price must not be negative"})
	}

	price, err := h.priceRepo.FindByKey(req.ItemKey)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Price not found"})
	}

	if req.ItemName != nil {
		price.ItemName = *req.ItemName
	}
	if req.Price != nil {
		price.Price = *req.Price
	}
	if req.IsActive != nil {
		price.IsActive = *req.IsActive
	}
	price.UpdatedBy = middleware.Auth(c).UserID.String()

	if err := h.priceRepo.Update(price); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update price"})
	}

	return c.JSON(fiber.Map{"message": "Price updated", "data": price})
}
