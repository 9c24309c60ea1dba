package integrity

import (
	"errors"

	"vehicle-catalogue/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/structure", h.HandleStructureCheck)
	group.Get("/files", h.HandleFilesCheck)
	group.Get("/installation", h.HandleInstallationCheck)
}

// HandleIntegrityCheck runs all checks.
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	report := h.service.CheckAll(c.Context())
	if !report.Healthy {
		l.Warn("Integrity checks found problems")
	}
	return c.JSON(report)
}

// HandleStructureCheck checks the bucket for the required data files.
func (h *Handler) HandleStructureCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	missing, err := h.service.CheckStructure(c.Context())
	if errors.Is(err, ErrNoBucket) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Structure check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if missing == nil {
		missing = []string{}
	}
	if len(missing) > 0 {
		l.Warn("Missing data files detected", zap.Strings("missing", missing))
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleFilesCheck parses every data file.
func (h *Handler) HandleFilesCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckFiles(c.Context())
	if err != nil {
		l.Error("Data file check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Data file check completed",
		zap.Int("total", report.Total),
		zap.Int("invalid", len(report.Invalid)),
		zap.Int("skipped", len(report.Skipped)))

	return c.JSON(report)
}

// HandleInstallationCheck reports the detected game client.
func (h *Handler) HandleInstallationCheck(c *fiber.Ctx) error {
	return c.JSON(h.service.CheckInstallation())
}
