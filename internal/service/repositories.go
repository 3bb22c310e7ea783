package service

import (
	"context"

	"github.com/fairyhunter13/keepup-loyalty/internal/model"
)

// TierRepositoryInterface defines the interface for tier configuration access.
type TierRepositoryInterface interface {
	List(ctx context.Context) ([]model.TierConfig, error)
	Update(ctx context.Context, tier model.TierConfig) error
}

// EarningRuleRepositoryInterface defines the interface for the global earning rule.
type EarningRuleRepositoryInterface interface {
	Get(ctx context.Context) (model.EarningRule, error)
	Update(ctx context.Context, rule model.EarningRule) error
}

// CustomerRepositoryInterface defines the interface for customer data access.
// GetByID returns nil, nil when the customer does not exist.
type CustomerRepositoryInterface interface {
	List(ctx context.Context) ([]model.Customer, error)
	GetByID(ctx context.Context, id string) (*model.Customer, error)
	Insert(ctx context.Context, customer *model.Customer) error
	Update(ctx context.Context, customer *model.Customer) error
	Delete(ctx context.Context, id string) error
}

// RewardRepositoryInterface defines the interface for reward catalog access.
// GetByID returns nil, nil when the reward does not exist.
type RewardRepositoryInterface interface {
	List(ctx context.Context) ([]model.Reward, error)
	GetByID(ctx context.Context, id string) (*model.Reward, error)
	Insert(ctx context.Context, reward *model.Reward) error
	Update(ctx context.Context, reward *model.Reward) error
	Delete(ctx context.Context, id string) error
}

// ActivityRepositoryInterface defines the interface for activity data access.
// GetByID returns nil, nil when the activity does not exist.
type ActivityRepositoryInterface interface {
	List(ctx context.Context) ([]model.Activity, error)
	GetByID(ctx context.Context, id string) (*model.Activity, error)
	Insert(ctx context.Context, activity *model.Activity) error
	Update(ctx context.Context, activity *model.Activity) error
	Delete(ctx context.Context, id string) error
}

// ReservationRepositoryInterface defines the interface for reservation data access.
// GetByID returns nil, nil when the reservation does not exist.
type ReservationRepositoryInterface interface {
	List(ctx context.Context) ([]model.Reservation, error)
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	Insert(ctx context.Context, reservation *model.Reservation) error
	Update(ctx context.Context, reservation *model.Reservation) error
	UpdateStatus(ctx context.Context, id string, status model.ReservationStatus) error
	Delete(ctx context.Context, id string) error
}

// CampaignTemplateRepositoryInterface defines the interface for campaign template access.
// GetByID returns nil, nil when the template does not exist.
type CampaignTemplateRepositoryInterface interface {
	List(ctx context.Context) ([]model.CampaignTemplate, error)
	GetByID(ctx context.Context, id string) (*model.CampaignTemplate, error)
	Insert(ctx context.Context, template *model.CampaignTemplate) error
	Update(ctx context.Context, template *model.CampaignTemplate) error
	Delete(ctx context.Context, id string) error
}
