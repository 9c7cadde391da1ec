package middleware

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/session"
	"github.com/gofiber/fiber/v2"
)

// Require lets the request through only when the session's role holds capability.
func Require(capability auth.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := session.FromContext(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized: please log in",
			})
		}
		if !p.Can(capability) {
			slog.Warn("capability denied", "user_id", p.UserID, "role", p.Role, "capability", capability)
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "You do not have access to this page",
			})
		}
		return c.Next()
	}
}
