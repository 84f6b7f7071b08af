package server

import (
	"errors"

	"devconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetGithubRepos handles GET /api/profile/github/:username. Public.
func (s *Server) GetGithubRepos(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid username"))
	}

	repos, err := s.githubClient.ListRepos(c.UserContext(), username)
	if err != nil {
		// A missing GitHub user is reported as a bad request, not a 404,
		// so the client can distinguish it from an unknown API route.
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		}
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(repos)
}
