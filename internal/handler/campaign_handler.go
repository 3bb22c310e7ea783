package handler

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/fairyhunter13/keepup-loyalty/internal/model"
)

// CampaignServiceInterface defines the interface for campaign template management.
type CampaignServiceInterface interface {
	ListTemplates(ctx context.Context) ([]model.CampaignTemplate, error)
	CreateTemplate(ctx context.Context, req *model.CampaignTemplateRequest) (*model.CampaignTemplate, error)
	UpdateTemplate(ctx context.Context, id string, req *model.CampaignTemplateRequest) (*model.CampaignTemplate, error)
	DeleteTemplate(ctx context.Context, id string) error
}

// CampaignHandler handles HTTP requests for campaign templates.
type CampaignHandler struct {
	service   CampaignServiceInterface
	validator *validator.Validate
}

// NewCampaignHandler creates a new CampaignHandler with the given service and validator.
func NewCampaignHandler(svc CampaignServiceInterface, v *validator.Validate) *CampaignHandler {
	return &CampaignHandler{service: svc, validator: v}
}

// Register mounts the template routes on r.
func (h *CampaignHandler) Register(r fiber.Router) {
	r.Get("/templates", h.ListTemplates)
	r.Post("/templates", h.CreateTemplate)
	r.Put("/templates/:id", h.UpdateTemplate)
	r.Delete("/templates/:id", h.DeleteTemplate)
}

// ListTemplates handles GET /api/campaigns/templates
func (h *CampaignHandler) ListTemplates(c *fiber.Ctx) error {
	templates, err := h.service.ListTemplates(c.Context())
	if err != nil {
		return respondError(c, err, nil, "failed to list campaign templates")
	}
	return c.JSON(templates)
}

// CreateTemplate handles POST /api/campaigns/templates
func (h *CampaignHandler) CreateTemplate(c *fiber.Ctx) error {
	req, ok := h.parseTemplate(c)
	if !ok {
		return nil
	}

	template, err := h.service.CreateTemplate(c.Context(), req)
	if err != nil {
		return respondError(c, err, func(e *zerolog.Event) *zerolog.Event {
			return e.Str("channel", string(req.Channel))
		}, "failed to create campaign template")
	}
	return c.Status(fiber.StatusCreated).JSON(template)
}

// UpdateTemplate handles PUT /api/campaigns/templates/:id
func (h *CampaignHandler) UpdateTemplate(c *fiber.Ctx) error {
	id := c.Params("id")
	req, ok := h.parseTemplate(c)
	if !ok {
		return nil
	}

	template, err := h.service.UpdateTemplate(c.Context(), id, req)
	if err != nil {
		return respondError(c, err, func(e *zerolog.Event) *zerolog.Event {
			return e.Str("template_id", id)
		}, "failed to update campaign template")
	}
	return c.JSON(template)
}

// DeleteTemplate handles DELETE /api/campaigns/templates/:id
func (h *CampaignHandler) DeleteTemplate(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteTemplate(c.Context(), id); err != nil {
		return respondError(c, err, func(e *zerolog.Event) *zerolog.Event {
			return e.Str("template_id", id)
		}, "failed to delete campaign template")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CampaignHandler) parseTemplate(c *fiber.Ctx) (*model.CampaignTemplateRequest, bool) {
	var req model.CampaignTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		_ = badRequest(c, "invalid request body")
		return nil, false
	}
	if err := h.validator.Struct(req); err != nil {
		_ = badRequest(c, formatValidationError(err))
		return nil, false
	}
	return &req, true
}
