package middleware

import (
	"strings"

	"waterpark-pos/internal/model"
	"waterpark-pos/internal/repository"
	"waterpark-pos/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

const authLocal = "auth"

// RequireAuth validates the bearer token, re-reads the user row, and stores
// an AuthContext for downstream handlers. Role checks happen separately so
// a signed-in user with no role still gets a clean 403 rather than 401.
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// Role comes from the live row, not the token, so revocations take
		// effect immediately.
		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}
		if !user.IsActive {
			return c.Status(401).JSON(fiber.Map{"error": "User account is inactive"})
		}

		c.Locals(authLocal, model.AuthContext{
			UserID: user.ID,
			Email:  user.Email,
			Name:   user.FullName,
			Role:   user.Role,
		})

		return c.Next()
	}
}

// Auth returns the AuthContext stored by RequireAuth
func Auth(c *fiber.Ctx) model.AuthContext {
	if auth, ok := c.Locals(authLocal).(model.AuthContext); ok {
		return auth
	}
	return model.AuthContext{}
}

// RequireRole rejects callers whose role is still unassigned
func RequireRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !Auth(c).HasRole() {
			return c.Status(403).JSON(fiber.Map{"error": "Forbidden: no counter access assigned"})
		}
		return c.Next()
	}
}

// RequireAdmin rejects everyone but admins
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !Auth(c).IsAdmin() {
			return c.Status(403).JSON(fiber.Map{"error": "Forbidden: requires admin role"})
		}
		return c.Next()
	}
}
