// @title Tenang API
// @version 1.0
// @description Daily stress check-in and journaling service.
// @host localhost:8080
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"tenang/internal/adapter"
	"tenang/internal/cache"
	"tenang/internal/config"
	"tenang/internal/database"
	"tenang/internal/handler"
	"tenang/internal/logger"
	"tenang/internal/middleware"
	"tenang/internal/repository"
	"tenang/internal/service"

	_ "tenang/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Initialize repositories
	userRepository := repository.NewSQLXUserRepository(db)
	quizRepository := repository.NewSQLXDailyQuizRepository(db)
	journalRepository := repository.NewSQLXJournalRepository(db)
	contentRepository := repository.NewSQLXContentRepository(db)

	// Initialize Redis client and cache adapter
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Initialize services
	authService, err := service.NewAuthService(userRepository, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	quizService := service.NewQuizService(quizRepository)
	journalService := service.NewJournalService(journalRepository)
	contentService := service.NewContentService(contentRepository, cacheAdapter, cfg.Cache.ContentTTL)
	userService := service.NewUserService(userRepository, quizRepository)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg)
	quizHandler := handler.NewQuizHandler(quizService)
	journalHandler := handler.NewJournalHandler(journalService)
	contentHandler := handler.NewContentHandler(contentService, quizService)
	userHandler := handler.NewUserHandler(userService)
	adminHandler := handler.NewAdminHandler(userService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	// API group
	apiGroup := app.Group("/api")

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/google/login", authHandler.GoogleLogin)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)
	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Post("/logout", authHandler.Logout)

	// User routes (all protected)
	userGroup := apiGroup.Group("/users", middleware.Protected(authService))
	userGroup.Get("/me", userHandler.GetProfile)

	// Quiz routes
	apiGroup.Get("/quiz/questions", quizHandler.GetQuestions)
	quizGroup := apiGroup.Group("/quiz", middleware.Protected(authService))
	quizGroup.Post("/", quizHandler.Submit)
	quizGroup.Get("/today", quizHandler.GetToday)
	quizGroup.Get("/history", quizHandler.GetHistory)
	quizGroup.Get("/stats", quizHandler.GetStats)

	// Journal routes
	journalGroup := apiGroup.Group("/journal", middleware.Protected(authService))
	journalGroup.Post("/", journalHandler.Save)
	journalGroup.Get("/today", journalHandler.GetToday)
	journalGroup.Get("/history", journalHandler.GetHistory)

	// Content routes; state falls back to the viewer's latest check-in
	contentGroup := apiGroup.Group("/content", middleware.OptionalAuth(authService))
	contentGroup.Get("/articles", contentHandler.ListArticles)
	contentGroup.Get("/audio", contentHandler.ListAudio)

	// Admin routes
	adminGroup := apiGroup.Group("/admin", middleware.Protected(authService), middleware.RequireAdmin(userRepository))
	adminGroup.Get("/dashboard", adminHandler.GetDashboard)
	adminGroup.Get("/quizzes", adminHandler.ListQuizzes)

	// Page gate plus SPA serving. The gate runs only on page routes since
	// /api and /swagger are in its bypass list.
	gate := middleware.NewAccessGate(middleware.DefaultGateConfig(cfg.Gate.Window), authService, userRepository, quizRepository)
	app.Use(gate.Handler())
	if cfg.Server.StaticDir != "" {
		app.Static("/", cfg.Server.StaticDir)
		// Client-side routing: unknown page paths serve the SPA shell.
		app.Get("/*", func(c *fiber.Ctx) error {
			return c.SendFile(cfg.Server.StaticDir + "/index.html")
		})
	}

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
