package server

import (
	"io"

	"taskhub/internal/models"
	"taskhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadAvatar handles POST /users/me/avatar with a multipart "avatar" field.
func (s *Server) UploadAvatar(c *fiber.Ctx) error {
	file, err := c.FormFile("avatar")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}
	if file.Size > service.MaxAvatarBytes {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("File too large (max 1MB)"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}

	if err := s.avatarService.Upload(c.UserContext(), authedUserID(c), content); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// DeleteAvatar handles DELETE /users/me/avatar
func (s *Server) DeleteAvatar(c *fiber.Ctx) error {
	if err := s.avatarService.Remove(c.UserContext(), authedUserID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// GetAvatar handles GET /users/:id/avatar. The route is public; avatars
// are the one piece of user data served without authentication.
func (s *Server) GetAvatar(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	blob, err := s.avatarService.Get(c.UserContext(), userID)
	if err != nil {
		return fail(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(blob)
}
