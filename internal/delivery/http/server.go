package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/coffee-finder/internal/config"
	"github.com/coffee-finder/internal/delivery/http/handler"
	"github.com/coffee-finder/internal/delivery/http/middleware"
	"github.com/coffee-finder/internal/pkg/errors"
	"github.com/coffee-finder/internal/pkg/metrics"
	"github.com/coffee-finder/internal/pkg/utils"
)

// Handlers - набор обработчиков, которые монтирует сервер
type Handlers struct {
	Shop         *handler.ShopHandler
	Meeting      *handler.MeetingHandler
	Autocomplete *handler.AutocompleteHandler
	Location     *handler.LocationHandler
	Health       *handler.HealthHandler
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	handlers Handlers
}

// NewServer - создание нового HTTP сервера
func NewServer(cfg *config.Config, logger *zap.Logger, handlers Handlers) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Coffee Finder",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		handlers: handlers,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App возвращает fiber приложение (используется в тестах)
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	// logger и metrics снаружи Recovery, чтобы паника попала в них как 500
	s.app.Use(requestid.New())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(metrics.Middleware())
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.AllowOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Get("/metrics", metrics.Handler())

	api := s.app.Group("/api/v1")

	api.Get("/health", s.handlers.Health.Health)

	// Shops
	api.Get("/shops/:slug", s.handlers.Shop.GetBySlug)
	api.Get("/slug", s.handlers.Shop.Slug)

	// Meeting point
	api.Get("/meeting-spots", s.handlers.Meeting.FindSpots)
	api.Get("/meeting-spots/from-session", s.handlers.Meeting.FindSpotsFromSession)

	// Address autocomplete
	api.Get("/autocomplete", s.handlers.Autocomplete.Suggest)

	// Browser geolocation
	api.Put("/location/:session", s.handlers.Location.Save)
	api.Get("/location/:session", s.handlers.Location.Get)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки, не обработанные в хендлерах (404 маршрута, паника)
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			if e.Code >= fiber.StatusInternalServerError {
				logger.Error("HTTP Error", zap.String("path", c.Path()), zap.Error(err))
			}
			return c.Status(e.Code).JSON(utils.ErrorResponse{
				Error: errors.New("HTTP_ERROR", e.Message, e.Code),
			})
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return utils.SendError(c, err)
	}
}
