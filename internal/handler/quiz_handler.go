package handler

import (
	"tenang/internal/dto"
	"tenang/internal/middleware"
	"tenang/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles the daily check-in HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// GetQuestions godoc
// @Summary Get the check-in questions
// @Description Returns the ten questions in presentation order.
// @Tags quiz
// @Produce json
// @Success 200 {object} dto.QuestionsResponse
// @Router /quiz/questions [get]
func (h *QuizHandler) GetQuestions(c *fiber.Ctx) error {
	return c.JSON(h.service.GetQuestions(c.Context()))
}

// Submit godoc
// @Summary Submit today's check-in
// @Description Scores the ten answers, stores the result and returns recommendations plus the follow-up route.
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body dto.SubmitQuizRequest true "Ten answers, each 0 to 4"
// @Success 200 {object} dto.QuizResultResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz [post]
func (h *QuizHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}

	userID, _ := c.Locals(middleware.UserIDKey).(string)
	resp, err := h.service.Submit(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetToday godoc
// @Summary Today's check-in status
// @Description Reports whether the user already checked in today.
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.TodayQuizResponse
// @Router /quiz/today [get]
func (h *QuizHandler) GetToday(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)
	resp, err := h.service.GetToday(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetHistory godoc
// @Summary Check-in history
// @Description Lists past check-ins, newest first.
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Maximum entries to return"
// @Success 200 {object} dto.QuizHistoryResponse
// @Router /quiz/history [get]
func (h *QuizHandler) GetHistory(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)
	resp, err := h.service.GetHistory(c.Context(), userID, c.QueryInt("limit"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetStats godoc
// @Summary Score trend
// @Description Returns one data point per day over the trailing window, oldest first.
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param days query int false "Trailing window in days (default 30)"
// @Success 200 {object} dto.QuizStatsResponse
// @Router /quiz/stats [get]
func (h *QuizHandler) GetStats(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)
	resp, err := h.service.GetStats(c.Context(), userID, c.QueryInt("days"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
