package handler

import (
	"waterpark-pos/internal/middleware"
	"waterpark-pos/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type SettingHandler struct {
	settingRepo repository.SettingRepository
}

func NewSettingHandler(settingRepo repository.SettingRepository) *SettingHandler {
	return &SettingHandler{settingRepo: settingRepo}
}

// List returns all settings as a key/value map. Public read.
// GET /api/v1/settings
func (h *SettingHandler) List(c *fiber.Ctx) error {
	settings, err := h.settingRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch settings"})
	}

	out := map[string]string{}
	for _, s := range settings {
		out[s.Key] = s.Value
	}
	return c.JSON(out)
}

// Update upserts one or more settings (admin only)
// PUT /api/v1/settings
func (h *SettingHandler) Update(c *fiber.Ctx) error {
	var req map[string]string
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if len(req) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "At least one setting is required"})
	}

	updatedBy := middleware.Auth(c).UserID.String()
	for key, value := range req {
		if key == "" {
			return c.Status(400).JSON(fiber.Map{"error": "Setting keys must not be empty"})
		}
		if err := h.settingRepo.Upsert(key, value, updatedBy); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to update setting '" + key + "'"})
		}
	}

	return c.JSON(fiber.Map{"message": "Settings updated"})
}
