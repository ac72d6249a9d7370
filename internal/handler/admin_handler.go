package handler

import (
	"tenang/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the monitoring views for administrators.
type AdminHandler struct {
	userService service.UserService
}

// NewAdminHandler creates a new AdminHandler instance
func NewAdminHandler(userService service.UserService) *AdminHandler {
	return &AdminHandler{
		userService: userService,
	}
}

// GetDashboard godoc
// @Summary Daily category breakdown
// @Description Counts one day's check-ins per stress category.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param date query string false "Day to aggregate (YYYY-MM-DD, defaults to today)"
// @Success 200 {object} dto.AdminDashboardResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /admin/dashboard [get]
func (h *AdminHandler) GetDashboard(c *fiber.Ctx) error {
	resp, err := h.userService.GetDashboard(c.Context(), c.Query("date"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListQuizzes godoc
// @Summary List one day's check-ins
// @Description Lists every check-in taken on a day, newest first.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param date query string false "Day to list (YYYY-MM-DD, defaults to today)"
// @Param limit query int false "Maximum entries to return"
// @Success 200 {object} dto.AdminQuizListResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /admin/quizzes [get]
func (h *AdminHandler) ListQuizzes(c *fiber.Ctx) error {
	resp, err := h.userService.ListQuizzesByDate(c.Context(), c.Query("date"), c.QueryInt("limit"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
