package handler

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/fairyhunter13/keepup-loyalty/internal/model"
)

const defaultUpcomingLimit = 5

// ReservationServiceInterface defines the interface for reservation business logic.
type ReservationServiceInterface interface {
	ListReservations(ctx context.Context) ([]model.Reservation, error)
	CreateReservation(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error)
	UpdateReservation(ctx context.Context, id string, req *model.ReservationRequest) (*model.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id string, status model.ReservationStatus) error
	DeleteReservation(ctx context.Context, id string) error
	UpcomingReservations(ctx context.Context, limit int) ([]model.Reservation, error)
	TodaysReservations(ctx context.Context) ([]model.Reservation, error)
	StatusCounts(ctx context.Context) (map[model.ReservationStatus]int, error)
}

// ReservationHandler handles HTTP requests for table reservations.
type ReservationHandler struct {
	service   ReservationServiceInterface
	validator *validator.Validate
}

// NewReservationHandler creates a new ReservationHandler with the given service and validator.
func NewReservationHandler(svc ReservationServiceInterface, v *validator.Validate) *ReservationHandler {
	return &ReservationHandler{service: svc, validator: v}
}

// Register mounts the reservation routes on r. Fixed paths are registered before :id.
func (h *ReservationHandler) Register(r fiber.Router) {
	r.Get("/reservations/upcoming", h.Upcoming)
	r.Get("/reservations/today", h.Today)
	r.Get("/reservations/status-counts", h.StatusCounts)
	r.Get("/reservations", h.List)
	r.Post("/reservations", h.Create)
	r.Put("/reservations/:id", h.Update)
	r.Delete("/reservations/:id", h.Delete)
	r.Patch("/reservations/:id/status", h.UpdateStatus)
}

// List handles GET /api/reservations
func (h *ReservationHandler) List(c *fiber.Ctx) error {
	reservations, err := h.service.ListReservations(c.Context())
	if err != nil {
		return respondError(c, err, nil, "failed to list reservations")
	}
	return c.JSON(reservations)
}

// Create handles POST /api/reservations
func (h *ReservationHandler) Create(c *fiber.Ctx) error {
	var req model.ReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, formatValidationError(err))
	}

	reservation, err := h.service.CreateReservation(c.Context(), &req)
	if err != nil {
		return respondError(c, err, func(e *zerolog.Event) *zerolog.Event {
			return e.Str("date", req.Date).Str("activity_id", req.ActivityID)
		}, "failed to create reservation")
	}
	return c.Status(fiber.StatusCreated).JSON(reservation)
}

// Update handles PUT /api/reservations/:id
func (h *ReservationHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")

	var req model.ReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, formatValidationError(err))
	}

	reservation, err := h.service.UpdateReservation(c.Context(), id, &req)
	if err != nil {
		return respondError(c, err, func(e *zerolog.Event) *zerolog.Event {
			return e.Str("reservation_id", id)
		}, "failed to update reservation")
	}
	return c.JSON(reservation)
}

// Delete handles DELETE /api/reservations/:id
func (h *ReservationHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteReservation(c.Context(), id); err != nil {
		return respondError(c, err, func(e *zerolog.Event) *zerolog.Event {
			return e.Str("reservation_id", id)
		}, "failed to delete reservation")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateStatus handles PATCH /api/reservations/:id/status
func (h *ReservationHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	var req model.UpdateReservationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, formatValidationError(err))
	}

	if err := h.service.UpdateReservationStatus(c.Context(), id, req.Status); err != nil {
		return respondError(c, err, func(e *zerolog.Event) *zerolog.Event {
			return e.Str("reservation_id", id)
		}, "failed to update reservation status")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Upcoming handles GET /api/reservations/upcoming?limit=N
func (h *ReservationHandler) Upcoming(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultUpcomingLimit)
	if limit < 1 {
		return badRequest(c, "invalid request: limit must be at least 1")
	}

	reservations, err := h.service.UpcomingReservations(c.Context(), limit)
	if err != nil {
		return respondError(c, err, nil, "failed to list upcoming reservations")
	}
	return c.JSON(reservations)
}

// Today handles GET /api/reservations/today
func (h *ReservationHandler) Today(c *fiber.Ctx) error {
	reservations, err := h.service.TodaysReservations(c.Context())
	if err != nil {
		return respondError(c, err, nil, "failed to list today's reservations")
	}
	return c.JSON(reservations)
}

// StatusCounts handles GET /api/reservations/status-counts
func (h *ReservationHandler) StatusCounts(c *fiber.Ctx) error {
	counts, err := h.service.StatusCounts(c.Context())
	if err != nil {
		return respondError(c, err, nil, "failed to count reservations")
	}
	return c.JSON(counts)
}
