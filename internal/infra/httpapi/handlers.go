package httpapi

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"enscal/internal/app"
	"enscal/internal/domain/event"
	idb "enscal/internal/infra/database"
)

const dateLayout = "2006-01-02"

// Handler bundles the calendar services behind the HTTP surface.
type Handler struct {
	calendars *app.CalendarService
	events    *app.EventService
	exports   *app.ExportService
	logger    *logrus.Logger
}

func NewHandler(cs *app.CalendarService, es *app.EventService, xs *app.ExportService, logger *logrus.Logger) *Handler {
	return &Handler{calendars: cs, events: es, exports: xs, logger: logger}
}

// GetEvents handles GET /api/calendar/events?start=...&end=...&team_id=...
// Malformed or missing range parameters degrade to an empty result, not an
// error, so the grid simply renders no events.
func (h *Handler) GetEvents(c *fiber.Ctx) error {
	v, ok := viewerFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no viewer context"})
	}

	start, errS := time.Parse(dateLayout, c.Query("start"))
	end, errE := time.Parse(dateLayout, c.Query("end"))
	if errS != nil || errE != nil {
		return c.JSON([]any{})
	}
	teamOverride := int64(c.QueryInt("team_id", 0))

	items, err := h.calendars.EventsInRange(c.Context(), v, start, end, teamOverride)
	if err != nil {
		h.logger.WithError(err).Error("Failed to query events in range")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load events"})
	}
	return c.JSON(items)
}

// GetUpcoming handles GET /api/calendar/upcoming?days=N.
func (h *Handler) GetUpcoming(c *fiber.Ctx) error {
	v, ok := viewerFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no viewer context"})
	}

	days := c.QueryInt("days", 30)
	if days < 0 {
		return c.JSON([]any{})
	}

	items, err := h.calendars.Upcoming(c.Context(), v, days)
	if err != nil {
		h.logger.WithError(err).Error("Failed to query upcoming events")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load events"})
	}
	return c.JSON(items)
}

// CreateEvent handles POST /api/calendar/events.
func (h *Handler) CreateEvent(c *fiber.Ctx) error {
	v, ok := viewerFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no viewer context"})
	}

	var in app.EventInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}

	created, err := h.events.Create(c.Context(), v, in)
	if err != nil {
		return h.mutationError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": created.ID, "uid": created.UID})
}

// UpdateEvent handles PUT /api/calendar/events/:id.
func (h *Handler) UpdateEvent(c *fiber.Ctx) error {
	v, ok := viewerFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no viewer context"})
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid event id"})
	}

	var in app.EventInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}

	updated, err := h.events.Update(c.Context(), v, int64(id), in)
	if err != nil {
		return h.mutationError(c, err)
	}
	return c.JSON(fiber.Map{"id": updated.ID})
}

// DeleteEvent handles DELETE /api/calendar/events/:id.
func (h *Handler) DeleteEvent(c *fiber.Ctx) error {
	v, ok := viewerFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no viewer context"})
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid event id"})
	}

	if err := h.events.Delete(c.Context(), v, int64(id)); err != nil {
		return h.mutationError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RescheduleEvent handles PATCH /api/calendar/events/:id/reschedule. The raw
// id is passed through so synthetic occurrence ids are rejected cleanly.
func (h *Handler) RescheduleEvent(c *fiber.Ctx) error {
	v, ok := viewerFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no viewer context"})
	}

	var in app.RescheduleInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}

	updated, err := h.events.Reschedule(c.Context(), v, c.Params("id"), in)
	if err != nil {
		return h.mutationError(c, err)
	}
	return c.JSON(fiber.Map{"id": updated.ID})
}

// ExportICS handles GET /api/calendar/export.ics?start=...&end=...
// Absent or malformed dates fall back to the service's default window.
func (h *Handler) ExportICS(c *fiber.Ctx) error {
	v, ok := viewerFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no viewer context"})
	}

	var start, end time.Time
	if s, err := time.Parse(dateLayout, c.Query("start")); err == nil {
		start = s
	}
	if e, err := time.Parse(dateLayout, c.Query("end")); err == nil {
		end = e
	}

	filename, ics, err := h.exports.Export(c.Context(), v, start, end)
	if err != nil {
		return h.mutationError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.SendString(ics)
}

// mutationError maps service errors onto HTTP responses. Validation failures
// come back field-scoped so the UI can attach them to inputs.
func (h *Handler) mutationError(c *fiber.Ctx, err error) error {
	var ve *event.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": fiber.Map{ve.Field: ve.Message}})
	case errors.Is(err, app.ErrNotPermitted):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not permitted"})
	case errors.Is(err, app.ErrProtectedItem):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": fiber.Map{"id": "computed items cannot be modified"}})
	case errors.Is(err, idb.ErrEventNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "event not found"})
	default:
		h.logger.WithError(err).Error("Unexpected error handling calendar mutation")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
