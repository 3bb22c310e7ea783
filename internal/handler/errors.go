package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/keepup-loyalty/internal/calendar"
	"github.com/fairyhunter13/keepup-loyalty/internal/loyalty"
	"github.com/fairyhunter13/keepup-loyalty/internal/service"
)

// formatValidationError converts validator errors into a single client-facing message.
// Field names are the JSON names registered by the validator package.
func formatValidationError(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return "invalid request"
	}

	fe := ve[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return "invalid request: " + field + " is required"
	case "required_if":
		return "invalid request: " + field + " is required when " + strings.Replace(fe.Param(), " ", " is ", 1)
	case "email":
		return "invalid request: " + field + " must be a valid email address"
	case "notblank":
		return "invalid request: " + field + " cannot be whitespace only"
	case "max":
		return "invalid request: " + field + " exceeds maximum length of " + fe.Param()
	case "gte":
		return "invalid request: " + field + " must be at least " + fe.Param()
	case "lte":
		return "invalid request: " + field + " must be at most " + fe.Param()
	case "oneof":
		return "invalid request: " + field + " must be one of " + fe.Param()
	case "isodate":
		return "invalid request: " + field + " must be a date in YYYY-MM-DD format"
	case "hhmm":
		return "invalid request: " + field + " must be a time in HH:MM format"
	case "audience":
		return "invalid request: " + field + " must be All or a tier name"
	default:
		return "invalid request: " + field + " is invalid"
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// respondError maps service and engine errors onto HTTP responses.
// Unexpected errors are logged with the fields carried by event.
func respondError(c *fiber.Ctx, err error, event func(*zerolog.Event) *zerolog.Event, msg string) error {
	var vErr *loyalty.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": vErr.Detail,
			"code":  vErr.Code,
		})
	}

	switch {
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, calendar.ErrInvalidDate),
		errors.Is(err, calendar.ErrInvalidView),
		errors.Is(err, calendar.ErrInvalidDirection):
		return badRequest(c, err.Error())
	case errors.Is(err, service.ErrTierNotFound),
		errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrRewardNotFound),
		errors.Is(err, service.ErrActivityNotFound),
		errors.Is(err, service.ErrReservationNotFound),
		errors.Is(err, service.ErrTemplateNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	e := log.Error().Err(err).Str("request_id", requestID(c))
	var cfgErr *loyalty.ConfigurationError
	if errors.As(err, &cfgErr) {
		e = e.Str("code", cfgErr.Code)
	}
	if event != nil {
		e = event(e)
	}
	e.Msg(msg)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
