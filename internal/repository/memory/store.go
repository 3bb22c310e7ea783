// Package memory holds an in-process implementation of every repository, seeded from a
// seed.Dataset. It backs the service when no database is configured and in tests.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/fairyhunter13/keepup-loyalty/internal/model"
	"github.com/fairyhunter13/keepup-loyalty/internal/seed"
)

// Store holds all state in memory. Reads return copies, so callers never alias stored data.
type Store struct {
	mu sync.RWMutex

	tiers        []model.TierConfig
	earningRule  model.EarningRule
	customers    *table[model.Customer]
	rewards      *table[model.Reward]
	activities   *table[model.Activity]
	reservations *table[model.Reservation]
	templates    *table[model.CampaignTemplate]
}

// New creates a Store populated with ds. A nil dataset yields an empty store.
func New(ds *seed.Dataset) *Store {
	s := &Store{
		customers:    newTable(func(c model.Customer) string { return c.ID }),
		rewards:      newTable(func(r model.Reward) string { return r.ID }),
		activities:   newTable(func(a model.Activity) string { return a.ID }),
		reservations: newTable(func(r model.Reservation) string { return r.ID }),
		templates:    newTable(func(t model.CampaignTemplate) string { return t.ID }),
	}
	if ds == nil {
		return s
	}

	s.tiers = cloneTiers(ds.Tiers)
	s.earningRule = ds.EarningRule
	for _, c := range ds.Customers {
		s.customers.put(c)
	}
	for _, r := range ds.Rewards {
		s.rewards.put(r)
	}
	for _, a := range ds.Activities {
		s.activities.put(a)
	}
	for _, r := range ds.Reservations {
		s.reservations.put(cloneReservation(r))
	}
	for _, t := range ds.Templates {
		s.templates.put(t)
	}
	return s
}

// Ping always succeeds; it lets the store stand in for a database in health checks.
func (s *Store) Ping(context.Context) error { return nil }

// Tiers returns the tier repository view of the store.
func (s *Store) Tiers() *TierRepository { return &TierRepository{s: s} }

// EarningRule returns the earning rule repository view of the store.
func (s *Store) EarningRule() *EarningRuleRepository { return &EarningRuleRepository{s: s} }

// Customers returns the customer repository view of the store.
func (s *Store) Customers() *CustomerRepository { return &CustomerRepository{s: s} }

// Rewards returns the reward repository view of the store.
func (s *Store) Rewards() *RewardRepository { return &RewardRepository{s: s} }

// Activities returns the activity repository view of the store.
func (s *Store) Activities() *ActivityRepository { return &ActivityRepository{s: s} }

// Reservations returns the reservation repository view of the store.
func (s *Store) Reservations() *ReservationRepository { return &ReservationRepository{s: s} }

// Templates returns the campaign template repository view of the store.
func (s *Store) Templates() *CampaignTemplateRepository { return &CampaignTemplateRepository{s: s} }

// table is an insertion-ordered collection keyed by ID. Callers hold Store.mu.
type table[T any] struct {
	idOf  func(T) string
	items []T
}

func newTable[T any](idOf func(T) string) *table[T] {
	return &table[T]{idOf: idOf}
}

func (t *table[T]) index(id string) int {
	return slices.IndexFunc(t.items, func(v T) bool { return t.idOf(v) == id })
}

func (t *table[T]) get(id string) (T, bool) {
	if i := t.index(id); i >= 0 {
		return t.items[i], true
	}
	var zero T
	return zero, false
}

// put replaces the item with the same ID, or appends it.
func (t *table[T]) put(v T) {
	if i := t.index(t.idOf(v)); i >= 0 {
		t.items[i] = v
		return
	}
	t.items = append(t.items, v)
}

func (t *table[T]) remove(id string) bool {
	i := t.index(id)
	if i < 0 {
		return false
	}
	t.items = slices.Delete(t.items, i, i+1)
	return true
}

func (t *table[T]) list() []T {
	out := make([]T, len(t.items))
	copy(out, t.items)
	return out
}

func cloneTiers(in []model.TierConfig) []model.TierConfig {
	out := make([]model.TierConfig, len(in))
	for i, t := range in {
		out[i] = cloneTier(t)
	}
	return out
}

func cloneTier(t model.TierConfig) model.TierConfig {
	benefits := make([]model.Benefit, len(t.Benefits))
	copy(benefits, t.Benefits)
	t.Benefits = benefits
	return t
}

func cloneReservation(r model.Reservation) model.Reservation {
	if r.TableNumber != nil {
		n := *r.TableNumber
		r.TableNumber = &n
	}
	return r
}
