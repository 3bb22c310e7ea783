package handler

import (
	"context"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/fairyhunter13/keepup-loyalty/internal/model"
)

const defaultTopMembers = 5

// LoyaltyServiceInterface defines the interface for loyalty business logic.
type LoyaltyServiceInterface interface {
	Tiers(ctx context.Context) ([]model.TierConfig, error)
	UpdateTier(ctx context.Context, name model.Tier, req *model.UpdateTierRequest) (model.TierConfig, error)
	StatusForPoints(ctx context.Context, points int) (*model.LoyaltyStatus, error)
	CustomerStatus(ctx context.Context, id string) (*model.LoyaltyStatus, error)
	TopMembers(ctx context.Context, limit int) ([]model.TopLoyaltyMember, error)
	Engagement(ctx context.Context) ([]model.TierEngagement, error)
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	CreateCustomer(ctx context.Context, req *model.CustomerRequest) (*model.Customer, error)
	UpdateCustomer(ctx context.Context, id string, req *model.CustomerRequest) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
	EarningRule(ctx context.Context) (model.EarningRule, error)
	UpdateEarningRule(ctx context.Context, req *model.EarningRuleRequest) (model.EarningRule, error)
	ListRewards(ctx context.Context) ([]model.Reward, error)
	CreateReward(ctx context.Context, req *model.RewardRequest) (*model.Reward, error)
	UpdateReward(ctx context.Context, id string, req *model.RewardRequest) (*model.Reward, error)
	DeleteReward(ctx context.Context, id string) error
}

// LoyaltyHandler handles HTTP requests for tiers, members and rewards.
type LoyaltyHandler struct {
	service   LoyaltyServiceInterface
	validator *validator.Validate
}

// NewLoyaltyHandler creates a new LoyaltyHandler with the given service and validator.
func NewLoyaltyHandler(svc LoyaltyServiceInterface, v *validator.Validate) *LoyaltyHandler {
	return &LoyaltyHandler{service: svc, validator: v}
}

// Register mounts the loyalty routes on r.
func (h *LoyaltyHandler) Register(r fiber.Router) {
	r.Get("/tiers", h.GetTiers)
	r.Put("/tiers/:name", h.UpdateTier)
	r.Get("/status", h.GetStatus)
	r.Get("/customers", h.ListCustomers)
	r.Post("/customers", h.CreateCustomer)
	r.Put("/customers/:id", h.UpdateCustomer)
	r.Delete("/customers/:id", h.DeleteCustomer)
	r.Get("/customers/:id/status", h.GetCustomerStatus)
	r.Get("/top-members", h.GetTopMembers)
	r.Get("/engagement", h.GetEngagement)
	r.Get("/earning-rule", h.GetEarningRule)
	r.Put("/earning-rule", h.UpdateEarningRule)
	r.Get("/rewards", h.ListRewards)
	r.Post("/rewards", h.CreateReward)
	r.Put("/rewards/:id", h.UpdateReward)
	r.Delete("/rewards/:id", h.DeleteReward)
}

// GetTiers handles GET /api/loyalty/tiers
func (h *LoyaltyHandler) GetTiers(c *fiber.Ctx) error {
	tiers, err := h.service.Tiers(c.Context())
	if err != nil {
		return respondError(c, err, nil, "failed to load tier configuration")
	}
	return c.JSON(tiers)
}

// UpdateTier handles PUT /api/loyalty/tiers/:name
func (h *LoyaltyHandler) UpdateTier(c *fiber.Ctx) error {
	tier, err := model.ParseTier(c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "tier not found"})
	}

	var req model.UpdateTierRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, formatValidationError(err))
	}

	updated, err := h.service.UpdateTier(c.Context(), tier, &req)
	if err != nil {
		return respondError(c, err, func(e *zerolog.Event) *zerolog.Event {
			return e.Str("tier", string(tier))
		}, "failed to update tier")
	}

	return c.JSON(updated)
}

// GetStatus handles GET /api/loyalty/status?points=N
func (h *LoyaltyHandler) GetStatus(c *fiber.Ctx) error {
	points, err := strconv.Atoi(c.Query("points"))
	if err != nil {
		return badRequest(c, "invalid request: points must be an integer")
	}

	status, err := h.service.StatusForPoints(c.Context(), points)
	if err != nil {
		return respondError(c, err, func(e *zerolog.Event) *zerolog.Event {
			return e.Int("points", points)
		}, "failed to resolve loyalty status")
	}
	return c.JSON(status)
}

// GetCustomerStatus handles GET /api/loyalty/customers/:id/status
func (h *LoyaltyHandler) GetCustomerStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	status, err := h.service.CustomerStatus(c.Context(), id)
	if err != nil {
		return respondError(c, err, func(e *zerolog.Event) *zerolog.Event {
			return e.Str("customer_id", id)
		}, "failed to resolve customer status")
	}
	return c.JSON(status)
}

// GetTopMembers handles GET /api/loyalty/top-members?limit=N
func (h *LoyaltyHandler) GetTopMembers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultTopMembers)
	if limit < 1 {
		return badRequest(c, "invalid request: limit must be at least 1")
	}

	members, err := h.service.TopMembers(c.Context(), limit)
	if err != nil {
		return respondError(c, err, nil, "failed to list top members")
	}
	return c.JSON(members)
}

// GetEngagement handles GET /api/loyalty/engagement
func (h *LoyaltyHandler) GetEngagement(c *fiber.Ctx) error {
	engagement, err := h.service.Engagement(c.Context())
	if err != nil {
		return respondError(c, err, nil, "failed to count members per tier")
	}
	return c.JSON(engagement)
}

// ListCustomers handles GET /api/loyalty/customers
func (h *LoyaltyHandler) ListCustomers(c *fiber.Ctx) error {
	customers, err := h.service.ListCustomers(c.Context())
	if err != nil {
		return respondError(c, err, nil, "failed to list customers")
	}
	return c.JSON(customers)
}

// CreateCustomer handles POST /api/loyalty/customers
func (h *LoyaltyHandler) CreateCustomer(c *fiber.Ctx) error {
	var req model.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, formatValidationError(err))
	}

	customer, err := h.service.CreateCustomer(c.Context(), &req)
	if err != nil {
		return respondError(c, err, func(e *zerolog.Event) *zerolog.Event {
			return e.Str("tier", string(req.Tier))
		}, "failed to create customer")
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// UpdateCustomer handles PUT /api/loyalty/customers/:id
func (h *LoyaltyHandler) UpdateCustomer(c *fiber.Ctx) error {
	id := c.Params("id")

	var req model.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, formatValidationError(err))
	}

	customer, err := h.service.UpdateCustomer(c.Context(), id, &req)
	if err != nil {
		return respondError(c, err, func(e *zerolog.Event) *zerolog.Event {
			return e.Str("customer_id", id)
		}, "failed to update customer")
	}
	return c.JSON(customer)
}

// DeleteCustomer handles DELETE /api/loyalty/customers/:id
func (h *LoyaltyHandler) DeleteCustomer(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteCustomer(c.Context(), id); err != nil {
		return respondError(c, err, func(e *zerolog.Event) *zerolog.Event {
			return e.Str("customer_id", id)
		}, "failed to delete customer")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetEarningRule handles GET /api/loyalty/earning-rule
func (h *LoyaltyHandler) GetEarningRule(c *fiber.Ctx) error {
	rule, err := h.service.EarningRule(c.Context())
	if err != nil {
		return respondError(c, err, nil, "failed to load earning rule")
	}
	return c.JSON(rule)
}

// UpdateEarningRule handles PUT /api/loyalty/earning-rule
func (h *LoyaltyHandler) UpdateEarningRule(c *fiber.Ctx) error {
	var req model.EarningRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, formatValidationError(err))
	}

	rule, err := h.service.UpdateEarningRule(c.Context(), &req)
	if err != nil {
		return respondError(c, err, nil, "failed to update earning rule")
	}

	return c.JSON(rule)
}

// ListRewards handles GET /api/loyalty/rewards
func (h *LoyaltyHandler) ListRewards(c *fiber.Ctx) error {
	rewards, err := h.service.ListRewards(c.Context())
	if err != nil {
		return respondError(c, err, nil, "failed to list rewards")
	}
	return c.JSON(rewards)
}

// CreateReward handles POST /api/loyalty/rewards
func (h *LoyaltyHandler) CreateReward(c *fiber.Ctx) error {
	req, ok := h.parseReward(c)
	if !ok {
		return nil
	}

	reward, err := h.service.CreateReward(c.Context(), req)
	if err != nil {
		return respondError(c, err, func(e *zerolog.Event) *zerolog.Event {
			return e.Str("reward_name", req.Name)
		}, "failed to create reward")
	}
	return c.Status(fiber.StatusCreated).JSON(reward)
}

// UpdateReward handles PUT /api/loyalty/rewards/:id
func (h *LoyaltyHandler) UpdateReward(c *fiber.Ctx) error {
	id := c.Params("id")
	req, ok := h.parseReward(c)
	if !ok {
		return nil
	}

	reward, err := h.service.UpdateReward(c.Context(), id, req)
	if err != nil {
		return respondError(c, err, func(e *zerolog.Event) *zerolog.Event {
			return e.Str("reward_id", id)
		}, "failed to update reward")
	}
	return c.JSON(reward)
}

// DeleteReward handles DELETE /api/loyalty/rewards/:id
func (h *LoyaltyHandler) DeleteReward(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteReward(c.Context(), id); err != nil {
		return respondError(c, err, func(e *zerolog.Event) *zerolog.Event {
			return e.Str("reward_id", id)
		}, "failed to delete reward")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseReward decodes and validates a reward body. When it returns false the
// error response has already been written.
func (h *LoyaltyHandler) parseReward(c *fiber.Ctx) (*model.RewardRequest, bool) {
	var req model.RewardRequest
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
