package handler

import (
	"tenang/internal/dto"
	"tenang/internal/middleware"
	"tenang/internal/repository/models"
	"tenang/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user profile requests
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetProfile godoc
// @Summary Get my profile
// @Description Returns the authenticated user's profile.
// @Tags user
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.UserProfileResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)
	resp, err := h.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func toProfile(user *models.User) *dto.UserProfileResponse {
	if user == nil {
		return nil
	}
	return &dto.UserProfileResponse{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name.String,
		Role:            user.Role,
		ProfilePhotoURL: user.ProfilePhotoURL.String,
		CreatedAt:       user.CreatedAt,
	}
}
