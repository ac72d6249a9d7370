package handler

import (
	"tenang/internal/domain"
	"tenang/internal/middleware"
	"tenang/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ContentHandler serves the article and audio recommendation pages.
type ContentHandler struct {
	contentService service.ContentService
	quizService    service.QuizService
}

// NewContentHandler creates a new ContentHandler instance
func NewContentHandler(contentService service.ContentService, quizService service.QuizService) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		quizService:    quizService,
	}
}

// ListArticles godoc
// @Summary List recommended articles
// @Description Lists published articles for a stress state. Without an explicit state the user's latest check-in decides.
// @Tags content
// @Produce json
// @Param state query string false "Stress state (low, medium, high, all)"
// @Success 200 {object} dto.ContentListResponse
// @Router /content/articles [get]
func (h *ContentHandler) ListArticles(c *fiber.Ctx) error {
	resp, err := h.contentService.ListArticles(c.Context(), h.resolveState(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListAudio godoc
// @Summary List recommended audio
// @Description Lists published audio tracks for a stress state. Without an explicit state the user's latest check-in decides.
// @Tags content
// @Produce json
// @Param state query string false "Stress state (low, medium, high, all)"
// @Success 200 {object} dto.ContentListResponse
// @Router /content/audio [get]
func (h *ContentHandler) ListAudio(c *fiber.Ctx) error {
	resp, err := h.contentService.ListAudio(c.Context(), h.resolveState(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// resolveState picks the stress state for filtering: an explicit query
// parameter wins, then the user's check-in from today, then "all".
func (h *ContentHandler) resolveState(c *fiber.Ctx) domain.RecommendedState {
	if state := domain.RecommendedState(c.Query("state")); state.IsValid() {
		return state
	}

	userID, _ := c.Locals(middleware.UserIDKey).(string)
	if userID != "" {
		today, err := h.quizService.GetToday(c.Context(), userID)
		if err == nil && today.Taken {
			return domain.StateForCategory(domain.Category(today.Quiz.Category))
		}
	}
	return domain.RecommendedAll
}
