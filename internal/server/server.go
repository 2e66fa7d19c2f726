// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"fmt"
	"os"
	"time"

	_ "icebreaker/docs" // swagger docs
	"icebreaker/internal/config"
	"icebreaker/internal/middleware"
	"icebreaker/internal/models"
	"icebreaker/internal/repository"
	"icebreaker/internal/service"
	"icebreaker/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config          *config.Config
	promMiddleware  *fiberprometheus.FiberPrometheus
	userRepo        repository.UserRepository
	topicRepo       repository.TopicRepository
	questionRepo    repository.QuestionRepository
	answerRepo      repository.AnswerRepository
	likeRepo        repository.LikeRepository
	userService     *service.UserService
	topicService    *service.TopicService
	questionService *service.QuestionService
	answerService   *service.AnswerService
	likeService     *service.LikeService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	userStore, err := storage.NewStore[models.User](cfg.StoragePath, cfg.UsersFile, "users", cfg.WriteIndented)
	if err != nil {
		return nil, fmt.Errorf("users store: %w", err)
	}
	topicStore, err := storage.NewStore[models.Topic](cfg.StoragePath, cfg.TopicsFile, "topics", cfg.WriteIndented)
	if err != nil {
		return nil, fmt.Errorf("topics store: %w", err)
	}
	questionStore, err := storage.NewStore[models.Question](cfg.StoragePath, cfg.QuestionsFile, "questions", cfg.WriteIndented)
	if err != nil {
		return nil, fmt.Errorf("questions store: %w", err)
	}
	answerStore, err := storage.NewStore[models.Answer](cfg.StoragePath, cfg.AnswersFile, "answers", cfg.WriteIndented)
	if err != nil {
		return nil, fmt.Errorf("answers store: %w", err)
	}
	likeStore, err := storage.NewStore[models.Like](cfg.StoragePath, cfg.LikesFile, "likes", cfg.WriteIndented)
	if err != nil {
		return nil, fmt.Errorf("likes store: %w", err)
	}

	return NewServerWithRepos(cfg,
		repository.NewUserRepository(userStore),
		repository.NewTopicRepository(topicStore),
		repository.NewQuestionRepository(questionStore),
		repository.NewAnswerRepository(answerStore),
		repository.NewLikeRepository(likeStore),
	), nil
}

// NewServerWithRepos creates a Server using already-initialized repositories.
// Use this in tests or when a bootstrap layer establishes storage explicitly.
func NewServerWithRepos(
	cfg *config.Config,
	userRepo repository.UserRepository,
	topicRepo repository.TopicRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	likeRepo repository.LikeRepository,
) *Server {
	server := &Server{
		config:         cfg,
		promMiddleware: middleware.InitMetrics("icebreaker-api"),
		userRepo:       userRepo,
		topicRepo:      topicRepo,
		questionRepo:   questionRepo,
		answerRepo:     answerRepo,
		likeRepo:       likeRepo,
	}
	server.userService = service.NewUserService(userRepo)
	server.topicService = service.NewTopicService(topicRepo)
	server.questionService = service.NewQuestionService(questionRepo, userRepo, topicRepo)
	server.answerService = service.NewAnswerService(answerRepo, questionRepo, userRepo)
	server.likeService = service.NewLikeService(likeRepo, questionRepo, userRepo)
	return server
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Tracing must run before the context middleware, which copies the
	// traceID local into the user context
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Context middleware to propagate request ID and trace ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Icebreaker Metrics Dashboard",
	}))

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// User routes
	users := api.Group("/users")
	users.Get("/", s.GetUsers)
	users.Post("/", s.CreateUser)
	users.Get("/username/:username", s.GetUserByUsername)
	users.Get("/email/:email", s.GetUserByEmail)
	users.Get("/:id/questions", s.GetUserQuestions)
	users.Get("/:id/likes/count", s.CountUserLikes)
	users.Get("/:id/likes", s.GetUserLikes)
	users.Get("/:id", s.GetUser)
	users.Put("/:id", s.UpdateUser)
	users.Delete("/:id", s.DeleteUser)

	// Topic routes
	topics := api.Group("/topics")
	topics.Get("/", s.GetTopics)
	topics.Post("/", s.CreateTopic)
	topics.Get("/:id/questions", s.GetTopicQuestions)
	topics.Get("/:id", s.GetTopic)
	topics.Put("/:id", s.UpdateTopic)
	topics.Delete("/:id", s.DeleteTopic)

	// Question routes
	questions := api.Group("/questions")
	questions.Get("/", s.GetQuestions)
	questions.Post("/", s.CreateQuestion)
	questions.Post("/bulk", s.BulkCreateQuestions)
	// Specific /:id/:resource routes before the generic /:id route
	questions.Get("/:id/answers", s.GetQuestionAnswers)
	questions.Get("/:id/answers/accepted", s.GetAcceptedAnswer)
	questions.Get("/:id/likes/count", s.CountQuestionLikes)
	questions.Get("/:id/likes", s.GetQuestionLikes)
	questions.Post("/:id/likes/:userId", s.LikeQuestion)
	questions.Delete("/:id/likes/:userId", s.UnlikeQuestion)
	questions.Get("/:id/likes/:userId", s.HasLiked)
	questions.Get("/:id", s.GetQuestion)
	questions.Put("/:id", s.UpdateQuestion)
	questions.Delete("/:id", s.DeleteQuestion)

	// Answer routes
	answers := api.Group("/answers")
	answers.Get("/", s.GetAnswers)
	answers.Post("/", s.CreateAnswer)
	answers.Post("/bulk", s.BulkCreateAnswers)
	answers.Post("/:id/accept", s.AcceptAnswer)
	answers.Get("/:id", s.GetAnswer)
	answers.Put("/:id", s.UpdateAnswer)
	answers.Delete("/:id", s.DeleteAnswer)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Readiness requires the
// storage directory to exist and be usable.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	storageStatus := "healthy"
	overall := fiber.StatusOK
	if info, err := os.Stat(s.config.StoragePath); err != nil || !info.IsDir() {
		storageStatus = "unhealthy"
		overall = fiber.StatusServiceUnavailable
	}

	return c.Status(overall).JSON(fiber.Map{
		"status":  storageStatus,
		"storage": storageStatus,
		"time":    time.Now(),
	})
}
