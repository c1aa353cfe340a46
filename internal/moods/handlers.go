package moods

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/moodlog-app/moodlog-backend/internal/auth"
	"github.com/moodlog-app/moodlog-backend/internal/dto"
)

// Handler handles HTTP requests for mood entries.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /api/moods
func (h *Handler) Create(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req struct {
		Rating *int   `json:"rating"`
		Note   string `json:"note"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	entry, err := h.service.Create(userID, req.Rating, req.Note)
	if err != nil {
		if errors.Is(err, ErrAlreadyLoggedToday) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, ErrNothingToRecord) || errors.Is(err, ErrRatingOutOfRange) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save mood",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

// Recent handles GET /api/moods/recent
func (h *Handler) Recent(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	entries, err := h.service.Recent(userID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch mood history",
		})
	}

	return c.JSON(fiber.Map{"data": entries, "count": len(entries)})
}

// Stats handles GET /api/moods/stats
func (h *Handler) Stats(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	stats, err := h.service.Stats(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch stats",
		})
	}

	return c.JSON(stats)
}

// ExportAll handles GET /api/moods/export
func (h *Handler) ExportAll(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	export, err := h.service.ExportAll(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to export data",
		})
	}

	c.Set("Content-Disposition", `attachment; filename="moodlog-export.json"`)
	return c.JSON(export)
}

// DeleteAll handles DELETE /api/moods
func (h *Handler) DeleteAll(c *fiber.Ctx) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	deleted, err := h.service.DeleteAll(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete data",
		})
	}

	return c.JSON(fiber.Map{"message": "All mood data deleted", "deleted": deleted})
}
