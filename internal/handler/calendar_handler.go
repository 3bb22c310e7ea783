package handler

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/fairyhunter13/keepup-loyalty/internal/calendar"
	"github.com/fairyhunter13/keepup-loyalty/internal/model"
)

// Calendar sources selectable with ?source=
const (
	sourceActivities   = "activities"
	sourceReservations = "reservations"
)

// CalendarServiceInterface defines the interface for calendar grids and activities.
type CalendarServiceInterface interface {
	Today() time.Time
	ActivityMonth(ctx context.Context, ref time.Time) ([]calendar.Cell[model.Activity], error)
	ActivityWeek(ctx context.Context, ref time.Time) ([]calendar.Cell[model.Activity], error)
	ReservationMonth(ctx context.Context, ref time.Time) ([]calendar.Cell[model.Reservation], error)
	ReservationWeek(ctx context.Context, ref time.Time) ([]calendar.Cell[model.Reservation], error)
	Navigate(ref time.Time, view calendar.View, direction calendar.Direction) (time.Time, error)
	ListActivities(ctx context.Context) ([]model.Activity, error)
	CreateActivity(ctx context.Context, req *model.ActivityRequest) (*model.Activity, error)
	UpdateActivity(ctx context.Context, id string, req *model.ActivityRequest) (*model.Activity, error)
	DeleteActivity(ctx context.Context, id string) error
}

// CalendarHandler handles HTTP requests for calendar pages and activities.
type CalendarHandler struct {
	service   CalendarServiceInterface
	validator *validator.Validate
}

// NewCalendarHandler creates a new CalendarHandler with the given service and validator.
func NewCalendarHandler(svc CalendarServiceInterface, v *validator.Validate) *CalendarHandler {
	return &CalendarHandler{service: svc, validator: v}
}

// Register mounts the calendar and activity routes on r.
func (h *CalendarHandler) Register(r fiber.Router) {
	r.Get("/calendar/month", h.Month)
	r.Get("/calendar/week", h.Week)
	r.Get("/calendar/navigate", h.Navigate)
	r.Get("/activities", h.ListActivities)
	r.Post("/activities", h.CreateActivity)
	r.Put("/activities/:id", h.UpdateActivity)
	r.Delete("/activities/:id", h.DeleteActivity)
}

// Month handles GET /api/calendar/month?date=YYYY-MM-DD&source=activities|reservations
func (h *CalendarHandler) Month(c *fiber.Ctx) error {
	return h.grid(c, calendar.ViewMonth)
}

// Week handles GET /api/calendar/week?date=YYYY-MM-DD&source=activities|reservations
func (h *CalendarHandler) Week(c *fiber.Ctx) error {
	return h.grid(c, calendar.ViewWeek)
}

func (h *CalendarHandler) grid(c *fiber.Ctx, view calendar.View) error {
	ref, err := h.refDate(c)
	if err != nil {
		return badRequest(c, "invalid request: date must be a date in YYYY-MM-DD format")
	}

	source := c.Query("source", sourceActivities)
	ctx := c.Context()

	var cells any
	switch {
	case source == sourceActivities && view == calendar.ViewMonth:
		cells, err = h.service.ActivityMonth(ctx, ref)
	case source == sourceActivities:
		cells, err = h.service.ActivityWeek(ctx, ref)
	case source == sourceReservations && view == calendar.ViewMonth:
		cells, err = h.service.ReservationMonth(ctx, ref)
	case source == sourceReservations:
		cells, err = h.service.ReservationWeek(ctx, ref)
	default:
		return badRequest(c, "invalid request: source must be one of activities reservations")
	}
	if err != nil {
		return respondError(c, err, func(e *zerolog.Event) *zerolog.Event {
			return e.Str("source", source).Str("view", string(view))
		}, "failed to build calendar")
	}

	return c.JSON(fiber.Map{
		"date":   calendar.FormatDate(ref),
		"view":   view,
		"source": source,
		"cells":  cells,
	})
}

// Navigate handles GET /api/calendar/navigate?date=YYYY-MM-DD&view=month|week|day&direction=prev|next
func (h *CalendarHandler) Navigate(c *fiber.Ctx) error {
	ref, err := h.refDate(c)
	if err != nil {
		return badRequest(c, "invalid request: date must be a date in YYYY-MM-DD format")
	}

	view := calendar.View(c.Query("view", string(calendar.ViewMonth)))
	direction := calendar.Direction(c.Query("direction"))

	next, err := h.service.Navigate(ref, view, direction)
	if err != nil {
		return respondError(c, err, nil, "failed to navigate calendar")
	}
	return c.JSON(fiber.Map{
		"date": calendar.FormatDate(next),
		"view": view,
	})
}

// ListActivities handles GET /api/activities
func (h *CalendarHandler) ListActivities(c *fiber.Ctx) error {
	activities, err := h.service.ListActivities(c.Context())
	if err != nil {
		return respondError(c, err, nil, "failed to list activities")
	}
	return c.JSON(activities)
}

// CreateActivity handles POST /api/activities
func (h *CalendarHandler) CreateActivity(c *fiber.Ctx) error {
	var req model.ActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, formatValidationError(err))
	}

	activity, err := h.service.CreateActivity(c.Context(), &req)
	if err != nil {
		return respondError(c, err, func(e *zerolog.Event) *zerolog.Event {
			return e.Str("title", req.Title)
		}, "failed to create activity")
	}
	return c.Status(fiber.StatusCreated).JSON(activity)
}

// UpdateActivity handles PUT /api/activities/:id
func (h *CalendarHandler) UpdateActivity(c *fiber.Ctx) error {
	id := c.Params("id")

	var req model.ActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, formatValidationError(err))
	}

	activity, err := h.service.UpdateActivity(c.Context(), id, &req)
	if err != nil {
		return respondError(c, err, func(e *zerolog.Event) *zerolog.Event {
			return e.Str("activity_id", id)
		}, "failed to update activity")
	}
	return c.JSON(activity)
}

// DeleteActivity handles DELETE /api/activities/:id
func (h *CalendarHandler) DeleteActivity(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteActivity(c.Context(), id); err != nil {
		return respondError(c, err, func(e *zerolog.Event) *zerolog.Event {
			return e.Str("activity_id", id)
		}, "failed to delete activity")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// refDate reads ?date=, defaulting to today.
func (h *CalendarHandler) refDate(c *fiber.Ctx) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		return h.service.Today(), nil
	}
	return calendar.ParseDate(raw)
}
