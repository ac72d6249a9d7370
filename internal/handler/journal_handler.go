package handler

import (
	"tenang/internal/dto"
	"tenang/internal/middleware"
	"tenang/internal/service"

	"github.com/gofiber/fiber/v2"
)

// JournalHandler handles journaling HTTP requests
type JournalHandler struct {
	service service.JournalService
}

// NewJournalHandler creates a new JournalHandler instance
func NewJournalHandler(service service.JournalService) *JournalHandler {
	return &JournalHandler{
		service: service,
	}
}

// Save godoc
// @Summary Save today's journal entry
// @Description Creates today's entry, or overwrites it when one exists.
// @Tags journal
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body dto.SaveJournalRequest true "Journal payload"
// @Success 200 {object} dto.SaveJournalResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /journal [post]
func (h *JournalHandler) Save(c *fiber.Ctx) error {
	var req dto.SaveJournalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}

	userID, _ := c.Locals(middleware.UserIDKey).(string)
	resp, err := h.service.SaveToday(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetToday godoc
// @Summary Today's journal entry
// @Description Returns today's entry, or 404 when none exists yet.
// @Tags journal
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /journal/today [get]
func (h *JournalHandler) GetToday(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)
	resp, err := h.service.GetToday(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetHistory godoc
// @Summary Journal history
// @Description Lists past entries, newest first.
// @Tags journal
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Maximum entries to return"
// @Success 200 {object} dto.JournalHistoryResponse
// @Router /journal/history [get]
func (h *JournalHandler) GetHistory(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)
	resp, err := h.service.GetHistory(c.Context(), userID, c.QueryInt("limit"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
