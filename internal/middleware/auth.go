package middleware

import (
	"context"
	"strings"

	"taskhub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// TokenValidator resolves a raw bearer token to a live user and the exact
// matched token string. Implemented by auth.TokenService.
type TokenValidator interface {
	Validate(ctx context.Context, raw string) (*models.User, string, error)
}

// Locals keys set by AuthRequired for downstream handlers.
const (
	LocalUserID = "userID"
	LocalUser   = "user"
	LocalToken  = "token"
)

// AuthRequired enforces authentication for protected routes. A token passes
// only if its signature verifies AND it is still present in the user's
// session list; revoked tokens fail the second check. The matched token is
// stored in locals so logout can revoke exactly the credential presented.
func AuthRequired(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization header required"))
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid authorization header format"))
		}

		user, token, err := validator.Validate(c.UserContext(), parts[1])
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Please authenticate"))
		}

		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalUser, user)
		c.Locals(LocalToken, token)

		// Re-inject the user ID for the context-aware logger.
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, user.ID))

		return c.Next()
	}
}
