package middleware

import (
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/session"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// SessionRequired accepts the session token from the Authorization header
// or the session cookie.
func SessionRequired(mgr *session.Manager) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: mgr.Secret()},
		ContextKey:  session.ContextKey,
		TokenLookup: "header:Authorization,cookie:" + session.CookieName,
		AuthScheme:  "Bearer",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: please log in",
			})
		},
	})
}
