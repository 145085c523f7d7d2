package pack

import (
	"errors"
	"fmt"

	"table-pack-maker/core/apperr"
	"table-pack-maker/core/logger"
	"table-pack-maker/core/observer"
	"table-pack-maker/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Response carries an operation's result together with the lines it reported.
type Response struct {
	Status []string `json:"status"`
	Log    []string `json:"log"`
	Result any      `json:"result,omitempty"`
	Error  string   `json:"error,omitempty"`
	Kind   string   `json:"kind,omitempty"`
}

// Handler handles HTTP requests for packs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the pack routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/pack")
	group.Post("/find", h.HandleFind)
	group.Post("/build", h.HandleBuild)
	group.Get("/session", h.HandleSession)
}

// HandleFind matches a table against a song database.
// Body: {"db_path": "...", "table_url": "..."}.
func (h *Handler) HandleFind(c *fiber.Ctx) error {
	in, err := parseInputs(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(Response{
			Error: err.Error(),
			Kind:  string(apperr.KindValidation),
		})
	}
	l := logger.WithRayID(h.service.logger, c)
	rec := observer.NewRecorder()
	obs := observer.Multi(rec, observer.NewZap(l))

	res, err := h.service.FindSongs(c.Context(), in, obs)
	return respond(c, rec, res, err)
}

// HandleBuild builds a pack from the last find for the same inputs.
func (h *Handler) HandleBuild(c *fiber.Ctx) error {
	in, err := parseInputs(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(Response{
			Error: err.Error(),
			Kind:  string(apperr.KindValidation),
		})
	}
	l := logger.WithRayID(h.service.logger, c)
	rec := observer.NewRecorder()
	obs := observer.Multi(rec, observer.NewZap(l))

	res, err := h.service.MakePack(c.Context(), in, obs)
	if err != nil {
		l.Error("Pack build failed", zap.Error(err))
	}
	return respond(c, rec, res, err)
}

// HandleSession returns the remembered find result.
func (h *Handler) HandleSession(c *fiber.Ctx) error {
	return c.JSON(h.service.Session())
}

func parseInputs(c *fiber.Ctx) (reconcile.Inputs, error) {
	var in reconcile.Inputs
	if err := c.BodyParser(&in); err != nil {
		return in, fmt.Errorf("invalid request body: %w", err)
	}
	return in, nil
}

func respond[T any](c *fiber.Ctx, rec *observer.Recorder, result *T, err error) error {
	resp := Response{Status: rec.Statuses(), Log: rec.Logs()}
	if result != nil {
		resp.Result = result
	}
	if err != nil {
		resp.Error = err.Error()
		resp.Kind = string(apperr.KindOf(err))
		return c.Status(StatusCode(err)).JSON(resp)
	}
	return c.JSON(resp)
}

// StatusCode maps an operation error to an HTTP status.
func StatusCode(err error) int {
	if errors.Is(err, ErrBusy) {
		return fiber.StatusConflict
	}
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return fiber.StatusBadRequest
	case apperr.KindParse:
		return fiber.StatusUnprocessableEntity
	case apperr.KindFetch:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
