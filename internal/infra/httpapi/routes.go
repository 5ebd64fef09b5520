package httpapi

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts the calendar API under /api/calendar.
func RegisterRoutes(f *fiber.App, h *Handler, viewerMW fiber.Handler) {
	api := f.Group("/api")

	cal := api.Group("/calendar", viewerMW)
	cal.Get("/events", h.GetEvents)
	cal.Get("/upcoming", h.GetUpcoming)
	cal.Post("/events", h.CreateEvent)
	cal.Put("/events/:id", h.UpdateEvent)
	cal.Delete("/events/:id", h.DeleteEvent)
	cal.Patch("/events/:id/reschedule", h.RescheduleEvent)
	cal.Get("/export.ics", h.ExportICS)
}
