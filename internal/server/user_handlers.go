package server

import (
	"taskhub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMe handles GET /users/me
func (s *Server) GetMe(c *fiber.Ctx) error {
	user, err := s.userService.GetProfile(c.UserContext(), authedUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

// UpdateMe handles PATCH /users/me. The body is parsed as a raw field map
// so unknown keys can reject the whole update.
func (s *Server) UpdateMe(c *fiber.Ctx) error {
	var fields map[string]any
	if err := c.BodyParser(&fields); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), authedUserID(c), fields)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

// DeleteMe handles DELETE /users/me, cascading to the user's tasks and
// sessions.
func (s *Server) DeleteMe(c *fiber.Ctx) error {
	if err := s.userService.DeleteAccount(c.UserContext(), authedUserID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
