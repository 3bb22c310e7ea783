package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/keepup-loyalty/internal/calendar"
	"github.com/fairyhunter13/keepup-loyalty/internal/loyalty"
	"github.com/fairyhunter13/keepup-loyalty/internal/model"
)

// LoyaltyService provides business logic for tiers, member status and rewards.
// Tier configuration is read from the repository on every call.
type LoyaltyService struct {
	tierRepo     TierRepositoryInterface
	ruleRepo     EarningRuleRepositoryInterface
	customerRepo CustomerRepositoryInterface
	rewardRepo   RewardRepositoryInterface
	now          func() time.Time
	newID        func() string
}

// NewLoyaltyService creates a new LoyaltyService with the given repositories.
func NewLoyaltyService(
	tierRepo TierRepositoryInterface,
	ruleRepo EarningRuleRepositoryInterface,
	customerRepo CustomerRepositoryInterface,
	rewardRepo RewardRepositoryInterface,
) *LoyaltyService {
	return NewLoyaltyServiceWithClock(tierRepo, ruleRepo, customerRepo, rewardRepo, time.Now)
}

// NewLoyaltyServiceWithClock creates a LoyaltyService with a custom clock.
// The clock stamps the last-seen date of new members.
func NewLoyaltyServiceWithClock(
	tierRepo TierRepositoryInterface,
	ruleRepo EarningRuleRepositoryInterface,
	customerRepo CustomerRepositoryInterface,
	rewardRepo RewardRepositoryInterface,
	now func() time.Time,
) *LoyaltyService {
	return &LoyaltyService{
		tierRepo:     tierRepo,
		ruleRepo:     ruleRepo,
		customerRepo: customerRepo,
		rewardRepo:   rewardRepo,
		now:          now,
		newID:        uuid.NewString,
	}
}

// Tiers returns the tier configuration after checking its invariants.
// Returns a *loyalty.ConfigurationError if the stored configuration is broken.
func (s *LoyaltyService) Tiers(ctx context.Context) ([]model.TierConfig, error) {
	tiers, err := s.tierRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := loyalty.ValidateTiers(tiers); err != nil {
		return nil, err
	}
	return tiers, nil
}

// UpdateTier validates and stores a partial tier update, returning the stored tier.
// Returns ErrTierNotFound for a tier that is not configured and a *loyalty.ValidationError
// when the update breaks a tier invariant.
func (s *LoyaltyService) UpdateTier(ctx context.Context, name model.Tier, req *model.UpdateTierRequest) (model.TierConfig, error) {
	if req == nil {
		return model.TierConfig{}, ErrInvalidRequest
	}

	patch, err := req.Patch()
	if err != nil {
		return model.TierConfig{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	tiers, err := s.Tiers(ctx)
	if err != nil {
		return model.TierConfig{}, err
	}

	var current *model.TierConfig
	for i := range tiers {
		if tiers[i].Name == name {
			current = &tiers[i]
			break
		}
	}
	if current == nil {
		return model.TierConfig{}, ErrTierNotFound
	}

	normalized, err := loyalty.ValidateTierUpdate(name, patch, tiers)
	if err != nil {
		return model.TierConfig{}, err
	}

	updated := normalized.Apply(*current)
	if err := s.tierRepo.Update(ctx, updated); err != nil {
		return model.TierConfig{}, err
	}

	log.Info().
		Str("tier", string(name)).
		Int("points_threshold", updated.PointsThreshold).
		Int("benefits", len(updated.Benefits)).
		Msg("tier updated")
	return updated, nil
}

// StatusForPoints derives the loyalty status of a points balance.
func (s *LoyaltyService) StatusForPoints(ctx context.Context, points int) (*model.LoyaltyStatus, error) {
	tiers, err := s.Tiers(ctx)
	if err != nil {
		return nil, err
	}
	return statusFor(points, tiers)
}

// CustomerStatus derives the loyalty status of a member from their points.
// Returns ErrCustomerNotFound if the customer doesn't exist.
func (s *LoyaltyService) CustomerStatus(ctx context.Context, id string) (*model.LoyaltyStatus, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	tiers, err := s.Tiers(ctx)
	if err != nil {
		return nil, err
	}
	status, err := statusFor(customer.Points, tiers)
	if err != nil {
		return nil, err
	}
	status.CustomerID = customer.ID
	status.StoredTier = customer.Tier

	if status.StoredTier != status.Tier {
		log.Debug().
			Str("customer_id", customer.ID).
			Str("stored_tier", string(customer.Tier)).
			Str("resolved_tier", string(status.Tier)).
			Msg("stored tier lags behind points")
	}
	return status, nil
}

// TopMembers returns the members with the most points, highest first.
// Ties are broken by name. A limit <= 0 returns every member.
func (s *LoyaltyService) TopMembers(ctx context.Context, limit int) ([]model.TopLoyaltyMember, error) {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	tiers, err := s.Tiers(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(customers, func(i, j int) bool {
		if customers[i].Points != customers[j].Points {
			return customers[i].Points > customers[j].Points
		}
		return customers[i].Name < customers[j].Name
	})
	if limit > 0 && len(customers) > limit {
		customers = customers[:limit]
	}

	members := make([]model.TopLoyaltyMember, 0, len(customers))
	for _, c := range customers {
		tier, err := loyalty.ResolveTier(c.Points, tiers)
		if err != nil {
			return nil, fmt.Errorf("customer %s: %w", c.ID, err)
		}
		members = append(members, model.TopLoyaltyMember{
			ID:     c.ID,
			Name:   c.Name,
			Points: c.Points,
			Tier:   tier.Name,
		})
	}
	return members, nil
}

// Engagement counts members per tier, resolving each member from their points rather than
// the stored tier. Every configured tier is listed, highest threshold first.
func (s *LoyaltyService) Engagement(ctx context.Context) ([]model.TierEngagement, error) {
	tiers, err := s.Tiers(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[model.Tier]int, len(tiers))
	for _, c := range customers {
		tier, err := loyalty.ResolveTier(c.Points, tiers)
		if err != nil {
			return nil, fmt.Errorf("customer %s: %w", c.ID, err)
		}
		counts[tier.Name]++
	}

	ordered := make([]model.TierConfig, len(tiers))
	copy(ordered, tiers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].PointsThreshold > ordered[j].PointsThreshold
	})

	out := make([]model.TierEngagement, 0, len(ordered))
	for _, t := range ordered {
		out = append(out, model.TierEngagement{Tier: t.Name, MemberCount: counts[t.Name]})
	}
	return out, nil
}

// ListCustomers returns every member.
func (s *LoyaltyService) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	return s.customerRepo.List(ctx)
}

// CreateCustomer enrols a member with zero points, last seen today.
// An empty tier enrols the member in the entry tier of the current configuration.
func (s *LoyaltyService) CreateCustomer(ctx context.Context, req *model.CustomerRequest) (*model.Customer, error) {
	if err := checkCustomerRequest(req); err != nil {
		return nil, err
	}

	tier := req.Tier
	if tier == "" {
		tiers, err := s.Tiers(ctx)
		if err != nil {
			return nil, err
		}
		entry, err := loyalty.ResolveTier(0, tiers)
		if err != nil {
			return nil, err
		}
		tier = entry.Name
	}

	customer := &model.Customer{
		ID:       s.newID(),
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		DOB:      req.DOB,
		Tier:     tier,
		LastSeen: calendar.FormatDate(calendar.DateOf(s.now())),
		Points:   0,
	}
	if err := s.customerRepo.Insert(ctx, customer); err != nil {
		return nil, err
	}

	log.Info().Str("customer_id", customer.ID).Str("tier", string(customer.Tier)).Msg("customer created")
	return customer, nil
}

// UpdateCustomer replaces the profile of a member. Points and last-seen date are kept,
// and an empty tier keeps the stored one.
// Returns ErrCustomerNotFound if the customer doesn't exist.
func (s *LoyaltyService) UpdateCustomer(ctx context.Context, id string, req *model.CustomerRequest) (*model.Customer, error) {
	if err := checkCustomerRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCustomerNotFound
	}

	existing.Name = req.Name
	existing.Email = req.Email
	existing.Phone = req.Phone
	existing.DOB = req.DOB
	if req.Tier != "" {
		existing.Tier = req.Tier
	}
	if err := s.customerRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	log.Info().Str("customer_id", existing.ID).Msg("customer updated")
	return existing, nil
}

// DeleteCustomer removes a member.
// Returns ErrCustomerNotFound if the customer doesn't exist.
func (s *LoyaltyService) DeleteCustomer(ctx context.Context, id string) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("customer_id", id).Msg("customer deleted")
	return nil
}

// EarningRule returns the global earning rule.
func (s *LoyaltyService) EarningRule(ctx context.Context) (model.EarningRule, error) {
	return s.ruleRepo.Get(ctx)
}

// UpdateEarningRule validates and stores the global earning rule.
func (s *LoyaltyService) UpdateEarningRule(ctx context.Context, req *model.EarningRuleRequest) (model.EarningRule, error) {
	if req == nil || req.PointsPerDollar == nil {
		return model.EarningRule{}, ErrInvalidRequest
	}

	rule := model.EarningRule{PointsPerDollar: *req.PointsPerDollar}
	if err := loyalty.ValidateEarningRule(rule); err != nil {
		return model.EarningRule{}, err
	}
	if err := s.ruleRepo.Update(ctx, rule); err != nil {
		return model.EarningRule{}, err
	}

	log.Info().Float64("points_per_dollar", rule.PointsPerDollar).Msg("earning rule updated")
	return rule, nil
}

// ListRewards returns the reward catalog.
func (s *LoyaltyService) ListRewards(ctx context.Context) ([]model.Reward, error) {
	return s.rewardRepo.List(ctx)
}

// CreateReward adds a reward with a generated ID.
func (s *LoyaltyService) CreateReward(ctx context.Context, req *model.RewardRequest) (*model.Reward, error) {
	if req == nil || req.Points == nil {
		return nil, ErrInvalidRequest
	}

	reward := &model.Reward{
		ID:     s.newID(),
		Name:   req.Name,
		Points: *req.Points,
		Status: req.Status,
	}
	if err := s.rewardRepo.Insert(ctx, reward); err != nil {
		return nil, err
	}

	log.Info().Str("reward_id", reward.ID).Int("points", reward.Points).Msg("reward created")
	return reward, nil
}

// UpdateReward replaces a reward.
// Returns ErrRewardNotFound if the reward doesn't exist.
func (s *LoyaltyService) UpdateReward(ctx context.Context, id string, req *model.RewardRequest) (*model.Reward, error) {
	if req == nil || req.Points == nil {
		return nil, ErrInvalidRequest
	}

	existing, err := s.rewardRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrRewardNotFound
	}

	existing.Name = req.Name
	existing.Points = *req.Points
	existing.Status = req.Status
	if err := s.rewardRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	log.Info().Str("reward_id", existing.ID).Str("status", string(existing.Status)).Msg("reward updated")
	return existing, nil
}

// DeleteReward removes a reward.
// Returns ErrRewardNotFound if the reward doesn't exist.
func (s *LoyaltyService) DeleteReward(ctx context.Context, id string) error {
	if err := s.rewardRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("reward_id", id).Msg("reward deleted")
	return nil
}

func checkCustomerRequest(req *model.CustomerRequest) error {
	if req == nil {
		return ErrInvalidRequest
	}
	if req.Tier != "" && !req.Tier.Valid() {
		return fmt.Errorf("%w: unknown tier %q", ErrInvalidRequest, req.Tier)
	}
	if req.DOB != "" {
		if _, err := calendar.ParseDate(req.DOB); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	}
	return nil
}

func statusFor(points int, tiers []model.TierConfig) (*model.LoyaltyStatus, error) {
	progress, err := loyalty.ProgressToNextTier(points, tiers)
	if err != nil {
		return nil, err
	}
	discount, err := loyalty.ActiveDiscountPercent(progress.Current.Name, tiers)
	if err != nil {
		return nil, err
	}
	return &model.LoyaltyStatus{
		Points:          points,
		Tier:            progress.Current.Name,
		NextTier:        progress.NextTier,
		PointsRemaining: progress.PointsRemaining,
		PercentComplete: progress.PercentComplete,
		DiscountPercent: discount,
	}, nil
}
