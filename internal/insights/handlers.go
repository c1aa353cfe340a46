package insights

import (
	"github.com/gofiber/fiber/v2"
	"github.com/moodlog-app/moodlog-backend/internal/auth"
	"github.com/moodlog-app/moodlog-backend/internal/dto"
)

// Handler handles HTTP requests for mood insights.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetSummary handles GET /api/insights
func (h *Handler) GetSummary(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	summary, err := h.service.Summary(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to analyze mood data",
		})
	}

	return c.JSON(summary)
}

// GetSuggestions handles GET /api/insights/suggestions
func (h *Handler) GetSuggestions(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	summary, text, err := h.service.Suggestions(c.UserContext(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to generate suggestions",
		})
	}

	return c.JSON(fiber.Map{
		"summary":     summary,
		"suggestions": text,
	})
}
