package service

import (
	"context"

	"github.com/fairyhunter13/keepup-loyalty/internal/model"
)

// mockTierRepository is a mock implementation of TierRepositoryInterface.
type mockTierRepository struct {
	listFn   func(ctx context.Context) ([]model.TierConfig, error)
	updateFn func(ctx context.Context, tier model.TierConfig) error
}

func (m *mockTierRepository) List(ctx context.Context) ([]model.TierConfig, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return seedTiers(), nil
}

func (m *mockTierRepository) Update(ctx context.Context, tier model.TierConfig) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, tier)
	}
	return nil
}

// mockEarningRuleRepository is a mock implementation of EarningRuleRepositoryInterface.
type mockEarningRuleRepository struct {
	getFn    func(ctx context.Context) (model.EarningRule, error)
	updateFn func(ctx context.Context, rule model.EarningRule) error
}

func (m *mockEarningRuleRepository) Get(ctx context.Context) (model.EarningRule, error) {
	if m.getFn != nil {
		return m.getFn(ctx)
	}
	return model.EarningRule{PointsPerDollar: 10}, nil
}

func (m *mockEarningRuleRepository) Update(ctx context.Context, rule model.EarningRule) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, rule)
	}
	return nil
}

// mockCustomerRepository is a mock implementation of CustomerRepositoryInterface.
type mockCustomerRepository struct {
	listFn    func(ctx context.Context) ([]model.Customer, error)
	getByIDFn func(ctx context.Context, id string) (*model.Customer, error)
	insertFn  func(ctx context.Context, customer *model.Customer) error
	updateFn  func(ctx context.Context, customer *model.Customer) error
	deleteFn  func(ctx context.Context, id string) error
}

func (m *mockCustomerRepository) List(ctx context.Context) ([]model.Customer, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []model.Customer{}, nil
}

func (m *mockCustomerRepository) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockCustomerRepository) Insert(ctx context.Context, customer *model.Customer) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, customer)
	}
	return nil
}

func (m *mockCustomerRepository) Update(ctx context.Context, customer *model.Customer) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, customer)
	}
	return nil
}

func (m *mockCustomerRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockRewardRepository is a mock implementation of RewardRepositoryInterface.
type mockRewardRepository struct {
	listFn    func(ctx context.Context) ([]model.Reward, error)
	getByIDFn func(ctx context.Context, id string) (*model.Reward, error)
	insertFn  func(ctx context.Context, reward *model.Reward) error
	updateFn  func(ctx context.Context, reward *model.Reward) error
	deleteFn  func(ctx context.Context, id string) error
}

func (m *mockRewardRepository) List(ctx context.Context) ([]model.Reward, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []model.Reward{}, nil
}

func (m *mockRewardRepository) GetByID(ctx context.Context, id string) (*model.Reward, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockRewardRepository) Insert(ctx context.Context, reward *model.Reward) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, reward)
	}
	return nil
}

func (m *mockRewardRepository) Update(ctx context.Context, reward *model.Reward) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, reward)
	}
	return nil
}

func (m *mockRewardRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockActivityRepository is a mock implementation of ActivityRepositoryInterface.
type mockActivityRepository struct {
	listFn    func(ctx context.Context) ([]model.Activity, error)
	getByIDFn func(ctx context.Context, id string) (*model.Activity, error)
	insertFn  func(ctx context.Context, activity *model.Activity) error
	updateFn  func(ctx context.Context, activity *model.Activity) error
	deleteFn  func(ctx context.Context, id string) error
}

func (m *mockActivityRepository) List(ctx context.Context) ([]model.Activity, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []model.Activity{}, nil
}

func (m *mockActivityRepository) GetByID(ctx context.Context, id string) (*model.Activity, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockActivityRepository) Insert(ctx context.Context, activity *model.Activity) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, activity)
	}
	return nil
}

func (m *mockActivityRepository) Update(ctx context.Context, activity *model.Activity) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, activity)
	}
	return nil
}

func (m *mockActivityRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockReservationRepository is a mock implementation of ReservationRepositoryInterface.
type mockReservationRepository struct {
	listFn         func(ctx context.Context) ([]model.Reservation, error)
	getByIDFn      func(ctx context.Context, id string) (*model.Reservation, error)
	insertFn       func(ctx context.Context, reservation *model.Reservation) error
	updateFn       func(ctx context.Context, reservation *model.Reservation) error
	updateStatusFn func(ctx context.Context, id string, status model.ReservationStatus) error
	deleteFn       func(ctx context.Context, id string) error
}

func (m *mockReservationRepository) List(ctx context.Context) ([]model.Reservation, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []model.Reservation{}, nil
}

func (m *mockReservationRepository) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockReservationRepository) Insert(ctx context.Context, reservation *model.Reservation) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, reservation)
	}
	return nil
}

func (m *mockReservationRepository) Update(ctx context.Context, reservation *model.Reservation) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, reservation)
	}
	return nil
}

func (m *mockReservationRepository) UpdateStatus(ctx context.Context, id string, status model.ReservationStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return nil
}

func (m *mockReservationRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockCampaignTemplateRepository is a mock implementation of CampaignTemplateRepositoryInterface.
type mockCampaignTemplateRepository struct {
	listFn    func(ctx context.Context) ([]model.CampaignTemplate, error)
	getByIDFn func(ctx context.Context, id string) (*model.CampaignTemplate, error)
	insertFn  func(ctx context.Context, template *model.CampaignTemplate) error
	updateFn  func(ctx context.Context, template *model.CampaignTemplate) error
	deleteFn  func(ctx context.Context, id string) error
}

func (m *mockCampaignTemplateRepository) List(ctx context.Context) ([]model.CampaignTemplate, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []model.CampaignTemplate{}, nil
}

func (m *mockCampaignTemplateRepository) GetByID(ctx context.Context, id string) (*model.CampaignTemplate, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockCampaignTemplateRepository) Insert(ctx context.Context, template *model.CampaignTemplate) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, template)
	}
	return nil
}

func (m *mockCampaignTemplateRepository) Update(ctx context.Context, template *model.CampaignTemplate) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, template)
	}
	return nil
}

func (m *mockCampaignTemplateRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func intPtr(i int) *int {
	return &i
}

func seedTiers() []model.TierConfig {
	return []model.TierConfig{
		{Name: model.TierDiscovery, PointsThreshold: 0, Benefits: []model.Benefit{
			model.DescriptiveBenefit{ID: "d1", Description: "Member events"},
		}},
		{Name: model.TierSilver, PointsThreshold: 1500, Benefits: []model.Benefit{}},
		{Name: model.TierGold, PointsThreshold: 5000, Benefits: []model.Benefit{
			model.RuleBenefit{ID: "g2", Description: "5% off", RuleType: model.RulePercentageDiscount, Value: 5},
		}},
		{Name: model.TierPlatinum, PointsThreshold: 10000, Benefits: []model.Benefit{
			model.RuleBenefit{ID: "p2", Description: "10% off", RuleType: model.RulePercentageDiscount, Value: 10},
		}},
	}
}
