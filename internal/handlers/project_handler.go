package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/job-project-generator/internal/models"
	"alfredoptarigan/job-project-generator/internal/services"
)

type ProjectHandler struct {
	pipeline      services.Pipeline
	retriever     services.Retriever
	pdfParser     services.PDFParserService
	maxUploadSize int64
	logger        *slog.Logger
}

func NewProjectHandler(
	pipeline services.Pipeline,
	retriever services.Retriever,
	pdfParser services.PDFParserService,
	maxUploadSize int64,
	logger *slog.Logger,
) *ProjectHandler {
	return &ProjectHandler{
		pipeline:      pipeline,
		retriever:     retriever,
		pdfParser:     pdfParser,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

// HandleSubmit handles POST /projects
func (h *ProjectHandler) HandleSubmit(c *fiber.Ctx) error {
	var req models.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	return h.submit(c, req.Text())
}

// HandleUpload handles POST /projects/upload with a PDF job post in the "job_post" field.
func (h *ProjectHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("job_post")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_post PDF file is required",
		})
	}

	if file.Size > h.maxUploadSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large. Max size: %d bytes", h.maxUploadSize),
		})
	}

	if ext := strings.ToLower(filepath.Ext(file.Filename)); ext != ".pdf" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("invalid file extension: %s", ext),
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to open uploaded file",
		})
	}
	defer src.Close()

	content, err := h.pdfParser.ExtractText(src, file.Size)
	if err != nil {
		h.logger.Warn("pdf extraction failed", "filename", file.Filename, "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not read text from PDF",
		})
	}

	return h.submit(c, content.Text)
}

func (h *ProjectHandler) submit(c *fiber.Ctx, input string) error {
	id, err := h.pipeline.Submit(c.UserContext(), input)
	if err != nil {
		return h.pipelineError(c, err)
	}

	location := fmt.Sprintf("/api/v1/projects/%d", id)
	c.Location(location)

	return c.Status(fiber.StatusCreated).JSON(models.SubmitResponse{
		ID:  id,
		URL: location,
	})
}

func (h *ProjectHandler) pipelineError(c *fiber.Ctx, err error) error {
	var pErr *services.PipelineError
	if !errors.As(err, &pErr) {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate project")
	}

	status := fiber.StatusInternalServerError
	switch {
	case pErr.IsClientError():
		status = fiber.StatusBadRequest
	case pErr.Kind == services.KindUpstreamFailure:
		status = fiber.StatusBadGateway
		h.logger.Error("upstream failure", "detail", pErr.Detail, "error", pErr.Err, "request_id", c.Locals("requestid"))
	default:
		h.logger.Error("submit failed", "kind", pErr.Kind, "error", pErr.Err, "request_id", c.Locals("requestid"))
	}

	return c.Status(status).JSON(fiber.Map{
		"error": pErr.UserMessage(),
		"kind":  pErr.Kind,
	})
}

// HandleGetProject handles GET /projects/:id
func (h *ProjectHandler) HandleGetProject(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, strconv.IntSize)
	if err != nil || id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID format",
		})
	}

	artifact, err := h.retriever.Retrieve(c.UserContext(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Project not found",
			})
		}
		h.logger.Error("failed to load project", "id", id, "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load project")
	}

	return c.JSON(models.NewProjectResponse(artifact))
}
