package handlers

import (
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

type AppConfig struct {
	BodyLimit int
	// AccessLog receives one line per request; nil disables access logging.
	AccessLog io.Writer
	// WriteTimeout must outlast the upstream AI timeout.
	WriteTimeout time.Duration
}

// NewApp builds the fiber app with middleware and all routes registered.
func NewApp(cfg AppConfig, projects *ProjectHandler, health *HealthHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Job Project Generator API",
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          cfg.WriteTimeout,
		BodyLimit:             cfg.BodyLimit,
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	if cfg.AccessLog != nil {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid}\n",
			TimeFormat: "2006-01-02 15:04:05",
			Output:     cfg.AccessLog,
		}))
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	api := app.Group("/api/v1")

	api.Get("/health", health.HandleHealth)

	api.Post("/projects", projects.HandleSubmit)
	api.Post("/projects/upload", projects.HandleUpload)
	api.Get("/projects/:id", projects.HandleGetProject)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Job Project Generator API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/projects",
				"POST /api/v1/projects/upload",
				"GET /api/v1/projects/:id",
				"GET /api/v1/health",
			},
		})
	})

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
