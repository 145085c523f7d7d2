package integrity

import (
	"table-pack-maker/core/apperr"
	"table-pack-maker/core/logger"

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
	group.Get("/songdb", h.HandleSongDBCheck)
	group.Get("/storage", h.HandleStorageCheck)
	group.Get("/destination", h.HandleDestinationCheck)
}

// HandleIntegrityCheck runs every check and combines the results.
// The song database check only runs when db_path is given.
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	report := make(map[string]interface{})

	if dbPath := c.Query("db_path"); dbPath != "" {
		if songReport, err := h.service.CheckSongDB(dbPath); err != nil {
			report["songdb"] = map[string]interface{}{"status": "error", "error": err.Error()}
		} else {
			report["songdb"] = songReport
		}
	}

	if storeReport, err := h.service.CheckStorage(c.Context()); err != nil {
		status := "error"
		if apperr.Is(err, apperr.KindValidation) {
			status = "disabled"
		}
		report["storage"] = map[string]interface{}{"status": status, "error": err.Error()}
	} else {
		report["storage"] = storeReport
	}

	if destReport, err := h.service.CheckDestination(); err != nil {
		report["destination"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["destination"] = destReport
	}

	return c.JSON(report)
}

// HandleSongDBCheck checks the song database schema.
// Query: db_path (optional with the mysql driver).
func (h *Handler) HandleSongDBCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSongDB(c.Query("db_path"))
	if err != nil {
		l.Error("Song database check failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	if !report.Matched {
		l.Warn("Song database schema differs",
			zap.Strings("missing", report.MissingColumns),
			zap.Strings("mismatches", report.TypeMismatches))
	}
	return c.JSON(report)
}

// HandleStorageCheck checks the publishing bucket.
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckStorage(c.Context())
	if err != nil {
		l.Error("Storage check failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleDestinationCheck checks the pack destination directory.
func (h *Handler) HandleDestinationCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckDestination()
	if err != nil {
		l.Error("Destination check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

func statusFor(err error) int {
	if apperr.Is(err, apperr.KindValidation) {
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}
