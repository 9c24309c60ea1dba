package catalogue

import (
	"errors"
	"strconv"

	"vehicle-catalogue/core/dataerr"
	"vehicle-catalogue/core/logger"
	"vehicle-catalogue/core/override"
	"vehicle-catalogue/core/snapshot"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CurrentVersion is the :version path value that selects the installed
// game version.
const CurrentVersion = "current"

var errBadVersion = errors.New("game version must be a positive number or \"current\"")

// Handler handles HTTP requests for the catalogue.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service, logger: service.logger}
}

// RegisterRoutes registers the catalogue routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalogue/:version")
	group.Get("/vehicles", h.HandleListVehicles)
	group.Get("/vehicles/:id", h.HandleGetVehicle)
	group.Get("/properties", h.HandleListProperties)
	group.Get("/warnings", h.HandleListWarnings)
}

// HandleListVehicles returns every resolved vehicle. The country, class and
// tier query parameters filter the list.
func (h *Handler) HandleListVehicles(c *fiber.Ctx) error {
	snap, err := h.snapshot(c)
	if err != nil {
		return h.fail(c, err)
	}

	country := c.Query("country")
	class := c.Query("class")
	tier := c.QueryInt("tier", 0)

	vehicles := make([]snapshot.VehicleDoc, 0)
	for _, v := range snap.Vehicles() {
		if country != "" && string(v.Country()) != country {
			continue
		}
		if class != "" && string(v.Class()) != class {
			continue
		}
		if tier != 0 && v.Tier() != tier {
			continue
		}
		vehicles = append(vehicles, snapshot.NewVehicleDoc(v))
	}

	return c.JSON(fiber.Map{
		"game_version": snap.GameVersion(),
		"count":        len(vehicles),
		"vehicles":     vehicles,
	})
}

// HandleGetVehicle returns one vehicle with all of its extra values.
func (h *Handler) HandleGetVehicle(c *fiber.Ctx) error {
	snap, err := h.snapshot(c)
	if err != nil {
		return h.fail(c, err)
	}

	id := c.Params("id")
	v, ok := snap.Vehicle(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "vehicle not found: " + id,
		})
	}
	doc := snapshot.NewVehicleDoc(v)

	if name := c.Query("property"); name != "" {
		value, ok := v.ExtraByName(name)
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "property has no value for this vehicle: " + name,
			})
		}
		return c.JSON(fiber.Map{"id": doc.ID, "property": name, "value": value})
	}

	return c.JSON(doc)
}

// HandleListProperties returns the resolved extra properties.
func (h *Handler) HandleListProperties(c *fiber.Ctx) error {
	snap, err := h.snapshot(c)
	if err != nil {
		return h.fail(c, err)
	}

	props := make([]snapshot.PropertyDoc, 0)
	for _, p := range snap.Properties() {
		props = append(props, snapshot.NewPropertyDoc(p))
	}
	for _, id := range []override.PropertyID{override.TierArabic, override.TierRoman} {
		props = append(props, snapshot.NewPropertyDoc(snapshot.PropertyInfo{ID: id}))
	}
	return c.JSON(props)
}

// HandleListWarnings returns the warnings of the resolution.
func (h *Handler) HandleListWarnings(c *fiber.Ctx) error {
	snap, err := h.snapshot(c)
	if err != nil {
		return h.fail(c, err)
	}

	warnings := snap.Warnings()
	if warnings == nil {
		warnings = []string{}
	}
	return c.JSON(fiber.Map{
		"game_version": snap.GameVersion(),
		"count":        len(warnings),
		"warnings":     warnings,
	})
}

func (h *Handler) snapshot(c *fiber.Ctx) (*snapshot.Snapshot, error) {
	version, err := parseVersionParam(c.Params("version"))
	if err != nil {
		return nil, err
	}
	return h.service.Snapshot(c.Context(), version)
}

func parseVersionParam(s string) (int, error) {
	if s == CurrentVersion {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return 0, errBadVersion
	}
	return v, nil
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, errBadVersion):
		status = fiber.StatusBadRequest
	case dataerr.IsUserError(err):
		status = fiber.StatusUnprocessableEntity
	}

	l := logger.WithRayID(h.logger, c)
	l.Error("Catalogue request failed", zap.Int("status", status), zap.Error(err))
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
