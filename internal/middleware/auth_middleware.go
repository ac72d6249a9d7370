package middleware

import (
	"fmt"
	"strings"

	"tenang/internal/domain"
	"tenang/internal/logger"
	"tenang/internal/repository"
	"tenang/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	AccessTokenCookie   = "access_token"
	RefreshTokenCookie  = "refresh_token"
	UserIDKey           = "userID" // Key for storing UserID in fiber.Ctx locals
)

// tokenFromRequest extracts the access token from the Authorization header
// or, failing that, the access_token cookie the browser client uses.
func tokenFromRequest(c *fiber.Ctx) string {
	authHeader := c.Get(AuthorizationHeader)
	if strings.HasPrefix(authHeader, BearerSchema) {
		return strings.TrimPrefix(authHeader, BearerSchema)
	}
	return c.Cookies(AccessTokenCookie)
}

// Protected is a middleware function that protects routes by requiring a valid JWT.
// It validates the token using the provided AuthService and sets the userID in the context.
func Protected(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "MISSING_AUTH_TOKEN",
				Message: "Authentication token is missing",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := authService.ValidateJWT(c.Context(), tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: err.Error(),
				Status:  fiber.StatusUnauthorized,
			})
		}

		// Ensure it's an access token
		if claims.TokenType != "access" {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN_TYPE",
				Message: fmt.Sprintf("Invalid token type: expected access, got %s", claims.TokenType),
				Status:  fiber.StatusForbidden,
			})
		}

		c.Locals(UserIDKey, claims.UserID)

		return c.Next()
	}
}

// OptionalAuth sets the userID in the context when a valid access token is
// present, and proceeds as anonymous otherwise.
func OptionalAuth(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			return c.Next()
		}

		claims, err := authService.ValidateJWT(c.Context(), tokenString)
		if err != nil || claims.TokenType != "access" {
			logger.Get().Debug("OptionalAuth: invalid token, proceeding as anonymous", zap.Error(err))
			return c.Next()
		}

		c.Locals(UserIDKey, claims.UserID)
		return c.Next()
	}
}

// RequireAdmin must run after Protected. It rejects the request unless the
// authenticated user holds the admin role.
func RequireAdmin(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(UserIDKey).(string)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "MISSING_AUTH_TOKEN",
				Message: "Authentication token is missing",
				Status:  fiber.StatusUnauthorized,
			})
		}

		role, err := userRepo.GetUserRole(c.Context(), userID)
		if err != nil {
			return err
		}
		if role != string(domain.RoleAdmin) {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Code:    string(domain.CodeForbidden),
				Message: "Admin privileges required",
				Status:  fiber.StatusForbidden,
			})
		}
		return c.Next()
	}
}
