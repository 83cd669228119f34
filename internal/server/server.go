// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"context"
	"fmt"
	"strings"

	"taskhub/internal/auth"
	"taskhub/internal/cache"
	"taskhub/internal/config"
	"taskhub/internal/database"
	"taskhub/internal/middleware"
	"taskhub/internal/repository"
	"taskhub/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	taskRepo    repository.TaskRepository

	tokenService  *auth.TokenService
	userService   *service.UserService
	taskService   *service.TaskService
	avatarService *service.AvatarService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	tokenService := auth.NewTokenService(cfg.JWTSecret, userRepo, sessionRepo)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("taskhub-api"),
		userRepo:       userRepo,
		sessionRepo:    sessionRepo,
		taskRepo:       taskRepo,
		tokenService:   tokenService,
		userService:    service.NewUserService(userRepo, tokenService),
		taskService:    service.NewTaskService(taskRepo),
		avatarService:  service.NewAvatarService(userRepo),
	}

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Per-request OpenTelemetry span; must precede ContextMiddleware so the
	// trace ID reaches the context-aware logger
	app.Use(middleware.TracingMiddleware())

	// Propagate request ID, user ID, and trace ID into the request context
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	app.Use(cors.New(cors.Config{
		AllowOrigins: s.config.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: strings.Join([]string{
			fiber.MethodGet,
			fiber.MethodPost,
			fiber.MethodPatch,
			fiber.MethodDelete,
		}, ","),
	}))
}

// SetupRoutes registers all API routes
func (s *Server) SetupRoutes(app *fiber.App) {
	authRequired := middleware.AuthRequired(s.tokenService)

	app.Get("/health", s.Health)

	app.Post("/users", s.Signup)
	app.Post("/users/login", s.Login)
	app.Get("/users/:id/avatar", s.GetAvatar)

	app.Post("/users/logout", authRequired, s.Logout)
	app.Post("/users/logoutAll", authRequired, s.LogoutAll)
	app.Get("/users/me", authRequired, s.GetMe)
	app.Patch("/users/me", authRequired, s.UpdateMe)
	app.Delete("/users/me", authRequired, s.DeleteMe)
	app.Post("/users/me/avatar", authRequired, s.UploadAvatar)
	app.Delete("/users/me/avatar", authRequired, s.DeleteAvatar)

	app.Post("/tasks", authRequired, s.CreateTask)
	app.Get("/tasks", authRequired, s.ListTasks)
	app.Get("/tasks/:id", authRequired, s.GetTask)
	app.Patch("/tasks/:id", authRequired, s.UpdateTask)
	app.Delete("/tasks/:id", authRequired, s.DeleteTask)
}

// Health handles GET /health
func (s *Server) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Start builds the Fiber app and listens on the configured port.
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:   "taskhub",
		BodyLimit: 5 * 1024 * 1024,
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app

	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app == nil {
		return nil
	}
	return s.app.ShutdownWithContext(ctx)
}
