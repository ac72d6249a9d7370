package middleware

import (
	"net/url"
	"strings"
	"time"

	"tenang/internal/domain"
	"tenang/internal/logger"
	"tenang/internal/repository"
	"tenang/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GateConfig describes the route classes the access gate distinguishes.
// Matching is evaluated top to bottom; the first rule that applies wins.
type GateConfig struct {
	// BypassPrefixes are namespaces the gate never touches: the JSON API
	// and admin pages (which enforce auth per route), swagger, and static
	// assets.
	BypassPrefixes []string
	// PublicRoutes are reachable without a session (login, register).
	PublicRoutes []string
	// QuizFlowPrefixes are the pages of the daily check-in flow itself.
	// Gating them would lock users out of the very flow that unlocks
	// the rest of the app.
	QuizFlowPrefixes []string
	// LandingRoute is where authenticated users are sent when they hit a
	// public route or lack a valid check-in.
	LandingRoute string
	// Window is how long a submitted check-in keeps the gate open,
	// measured from its creation timestamp.
	Window time.Duration
}

// DefaultGateConfig mirrors the page layout of the web client.
func DefaultGateConfig(window time.Duration) GateConfig {
	return GateConfig{
		BypassPrefixes:   []string{"/api", "/admin", "/swagger", "/assets", "/favicon.ico"},
		PublicRoutes:     []string{domain.LoginRoute, "/register"},
		QuizFlowPrefixes: []string{domain.QuizRoute, domain.ConsultationRoute, domain.JournalRoute},
		LandingRoute:     domain.QuizRoute,
		Window:           window,
	}
}

// AccessGate decides, per request, whether a page may be served. It is
// stateless: every decision derives from the request path, the token, and
// the user's latest check-in timestamp.
type AccessGate struct {
	cfg         GateConfig
	authService service.AuthService
	userRepo    repository.UserRepository
	quizRepo    repository.DailyQuizRepository
	now         func() time.Time
}

// NewAccessGate creates the gate. A zero or negative window disables the
// check-in requirement entirely (every authenticated user passes).
func NewAccessGate(cfg GateConfig, authService service.AuthService, userRepo repository.UserRepository, quizRepo repository.DailyQuizRepository) *AccessGate {
	return &AccessGate{
		cfg:         cfg,
		authService: authService,
		userRepo:    userRepo,
		quizRepo:    quizRepo,
		now:         time.Now,
	}
}

// Handler returns the fiber middleware enforcing the gate.
func (g *AccessGate) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()

		if g.hasPrefix(path, g.cfg.BypassPrefixes) {
			return c.Next()
		}

		userID := g.identify(c)

		// Anonymous visitors may only see the public routes. Everything
		// else bounces to login, carrying the original destination so the
		// client can return after authentication.
		if userID == "" {
			if g.isPublic(path) {
				return c.Next()
			}
			return c.Redirect(domain.LoginRoute+"?redirect="+url.QueryEscape(path), fiber.StatusFound)
		}

		// A signed-in user has no business on login or register.
		if g.isPublic(path) {
			return c.Redirect(g.cfg.LandingRoute, fiber.StatusFound)
		}

		// Administrators are exempt from the check-in requirement.
		role, err := g.userRepo.GetUserRole(c.Context(), userID)
		if err != nil {
			return err
		}
		if role == string(domain.RoleAdmin) {
			return c.Next()
		}

		// The check-in flow itself must stay reachable.
		if g.hasPrefix(path, g.cfg.QuizFlowPrefixes) {
			return c.Next()
		}

		if g.cfg.Window <= 0 {
			return c.Next()
		}

		since := g.now().Add(-g.cfg.Window)
		ok, err := g.quizRepo.HasQuizSince(c.Context(), userID, since)
		if err != nil {
			return err
		}
		if !ok {
			logger.Get().Debug("Gate redirecting to check-in",
				zap.String("userID", userID),
				zap.String("path", path))
			return c.Redirect(g.cfg.LandingRoute, fiber.StatusFound)
		}
		return c.Next()
	}
}

// identify resolves the user behind the request, or "" for anonymous.
// Invalid or expired tokens count as anonymous rather than erroring; the
// gate's job is routing, not authentication.
func (g *AccessGate) identify(c *fiber.Ctx) string {
	tokenString := tokenFromRequest(c)
	if tokenString == "" {
		return ""
	}
	claims, err := g.authService.ValidateJWT(c.Context(), tokenString)
	if err != nil || claims.TokenType != "access" {
		return ""
	}
	return claims.UserID
}

func (g *AccessGate) isPublic(path string) bool {
	for _, route := range g.cfg.PublicRoutes {
		if path == route {
			return true
		}
	}
	return false
}

func (g *AccessGate) hasPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
