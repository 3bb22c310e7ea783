package memory

import (
	"context"

	"github.com/fairyhunter13/keepup-loyalty/internal/model"
	"github.com/fairyhunter13/keepup-loyalty/internal/service"
)

// TierRepository serves the tier configuration from a Store.
type TierRepository struct{ s *Store }

// List returns the tiers in their configured order.
func (r *TierRepository) List(_ context.Context) ([]model.TierConfig, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return cloneTiers(r.s.tiers), nil
}

// Update replaces the threshold and benefits of an existing tier.
func (r *TierRepository) Update(_ context.Context, tier model.TierConfig) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.tiers {
		if r.s.tiers[i].Name == tier.Name {
			r.s.tiers[i] = cloneTier(tier)
			return nil
		}
	}
	return service.ErrTierNotFound
}

// EarningRuleRepository serves the earning rule from a Store.
type EarningRuleRepository struct{ s *Store }

// Get returns the earning rule.
func (r *EarningRuleRepository) Get(_ context.Context) (model.EarningRule, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.earningRule, nil
}

// Update stores the earning rule.
func (r *EarningRuleRepository) Update(_ context.Context, rule model.EarningRule) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.earningRule = rule
	return nil
}

// CustomerRepository serves customers from a Store.
type CustomerRepository struct{ s *Store }

// List returns all customers in seed order.
func (r *CustomerRepository) List(_ context.Context) ([]model.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.customers.list(), nil
}

// GetByID returns nil, nil when the customer does not exist.
func (r *CustomerRepository) GetByID(_ context.Context, id string) (*model.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.customers.get(id)
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// Insert appends a customer.
func (r *CustomerRepository) Insert(_ context.Context, customer *model.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.customers.index(customer.ID) >= 0 {
		return service.ErrAlreadyExists
	}
	r.s.customers.put(*customer)
	return nil
}

// Update replaces an existing customer.
func (r *CustomerRepository) Update(_ context.Context, customer *model.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.customers.index(customer.ID) < 0 {
		return service.ErrCustomerNotFound
	}
	r.s.customers.put(*customer)
	return nil
}

// Delete removes a customer.
func (r *CustomerRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.customers.remove(id) {
		return service.ErrCustomerNotFound
	}
	return nil
}

// RewardRepository serves the reward catalog from a Store.
type RewardRepository struct{ s *Store }

// List returns all rewards in insertion order.
func (r *RewardRepository) List(_ context.Context) ([]model.Reward, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.rewards.list(), nil
}

// GetByID returns nil, nil when the reward does not exist.
func (r *RewardRepository) GetByID(_ context.Context, id string) (*model.Reward, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rw, ok := r.s.rewards.get(id)
	if !ok {
		return nil, nil
	}
	return &rw, nil
}

// Insert appends a reward.
func (r *RewardRepository) Insert(_ context.Context, reward *model.Reward) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.rewards.index(reward.ID) >= 0 {
		return service.ErrAlreadyExists
	}
	r.s.rewards.put(*reward)
	return nil
}

// Update replaces an existing reward.
func (r *RewardRepository) Update(_ context.Context, reward *model.Reward) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.rewards.index(reward.ID) < 0 {
		return service.ErrRewardNotFound
	}
	r.s.rewards.put(*reward)
	return nil
}

// Delete removes a reward.
func (r *RewardRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.rewards.remove(id) {
		return service.ErrRewardNotFound
	}
	return nil
}

// ActivityRepository serves activities from a Store.
type ActivityRepository struct{ s *Store }

// List returns all activities in insertion order.
func (r *ActivityRepository) List(_ context.Context) ([]model.Activity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.activities.list(), nil
}

// GetByID returns nil, nil when the activity does not exist.
func (r *ActivityRepository) GetByID(_ context.Context, id string) (*model.Activity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.activities.get(id)
	if !ok {
		return nil, nil
	}
	return &a, nil
}

// Insert appends an activity.
func (r *ActivityRepository) Insert(_ context.Context, activity *model.Activity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.activities.index(activity.ID) >= 0 {
		return service.ErrAlreadyExists
	}
	r.s.activities.put(*activity)
	return nil
}

// Update replaces an existing activity.
func (r *ActivityRepository) Update(_ context.Context, activity *model.Activity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.activities.index(activity.ID) < 0 {
		return service.ErrActivityNotFound
	}
	r.s.activities.put(*activity)
	return nil
}

// Delete removes an activity.
func (r *ActivityRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.activities.remove(id) {
		return service.ErrActivityNotFound
	}
	return nil
}

// ReservationRepository serves reservations from a Store.
type ReservationRepository struct{ s *Store }

// List returns all reservations in insertion order.
func (r *ReservationRepository) List(_ context.Context) ([]model.Reservation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := r.s.reservations.list()
	for i := range out {
		out[i] = cloneReservation(out[i])
	}
	return out, nil
}

// GetByID returns nil, nil when the reservation does not exist.
func (r *ReservationRepository) GetByID(_ context.Context, id string) (*model.Reservation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	res, ok := r.s.reservations.get(id)
	if !ok {
		return nil, nil
	}
	res = cloneReservation(res)
	return &res, nil
}

// Insert appends a reservation.
func (r *ReservationRepository) Insert(_ context.Context, reservation *model.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.reservations.index(reservation.ID) >= 0 {
		return service.ErrAlreadyExists
	}
	r.s.reservations.put(cloneReservation(*reservation))
	return nil
}

// Update replaces an existing reservation.
func (r *ReservationRepository) Update(_ context.Context, reservation *model.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.reservations.index(reservation.ID) < 0 {
		return service.ErrReservationNotFound
	}
	r.s.reservations.put(cloneReservation(*reservation))
	return nil
}

// UpdateStatus changes the status of a reservation.
func (r *ReservationRepository) UpdateStatus(_ context.Context, id string, status model.ReservationStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res, ok := r.s.reservations.get(id)
	if !ok {
		return service.ErrReservationNotFound
	}
	res.Status = status
	r.s.reservations.put(res)
	return nil
}

// Delete removes a reservation.
func (r *ReservationRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.reservations.remove(id) {
		return service.ErrReservationNotFound
	}
	return nil
}

// CampaignTemplateRepository serves campaign templates from a Store.
type CampaignTemplateRepository struct{ s *Store }

// List returns all templates in insertion order.
func (r *CampaignTemplateRepository) List(_ context.Context) ([]model.CampaignTemplate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.templates.list(), nil
}

// GetByID returns nil, nil when the template does not exist.
func (r *CampaignTemplateRepository) GetByID(_ context.Context, id string) (*model.CampaignTemplate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.templates.get(id)
	if !ok {
		return nil, nil
	}
	return &t, nil
}

// Insert appends a template.
func (r *CampaignTemplateRepository) Insert(_ context.Context, template *model.CampaignTemplate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.templates.index(template.ID) >= 0 {
		return service.ErrAlreadyExists
	}
	r.s.templates.put(*template)
	return nil
}

// Update replaces an existing template.
func (r *CampaignTemplateRepository) Update(_ context.Context, template *model.CampaignTemplate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.templates.index(template.ID) < 0 {
		return service.ErrTemplateNotFound
	}
	r.s.templates.put(*template)
	return nil
}

// Delete removes a template.
func (r *CampaignTemplateRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.templates.remove(id) {
		return service.ErrTemplateNotFound
	}
	return nil
}
