package model

import (
	"encoding/json"
	"fmt"
)

// Tier is a loyalty membership level.
type Tier string

const (
	TierDiscovery Tier = "Discovery"
	TierSilver    Tier = "Silver"
	TierGold      Tier = "Gold"
	TierPlatinum  Tier = "Platinum"
)

// tierOrder is the unlock sequence, not alphabetical.
var tierOrder = []Tier{TierDiscovery, TierSilver, TierGold, TierPlatinum}

// Tiers returns all tiers in unlock order.
func Tiers() []Tier {
	out := make([]Tier, len(tierOrder))
	copy(out, tierOrder)
	return out
}

// Rank returns the position of t in the unlock sequence, or -1 for an unknown tier.
func (t Tier) Rank() int {
	for i, o := range tierOrder {
		if o == t {
			return i
		}
	}
	return -1
}

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	return t.Rank() >= 0
}

// ParseTier converts a tier name into a Tier.
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown tier %q", s)
	}
	return t, nil
}

// TierConfig is the configuration of a single loyalty tier.
type TierConfig struct {
	Name            Tier
	PointsThreshold int
	Benefits        []Benefit
}

type tierConfigJSON struct {
	Name            Tier            `json:"name"`
	PointsThreshold int             `json:"points_threshold"`
	Benefits        []BenefitRecord `json:"benefits"`
}

// MarshalJSON encodes benefits in their tagged wire form.
func (c TierConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(tierConfigJSON{
		Name:            c.Name,
		PointsThreshold: c.PointsThreshold,
		Benefits:        EncodeBenefits(c.Benefits),
	})
}

// UnmarshalJSON decodes benefits from their tagged wire form.
func (c *TierConfig) UnmarshalJSON(data []byte) error {
	var raw tierConfigJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	benefits, err := DecodeBenefits(raw.Benefits)
	if err != nil {
		return err
	}
	c.Name = raw.Name
	c.PointsThreshold = raw.PointsThreshold
	c.Benefits = benefits
	return nil
}

// TierPatch is a partial update of a tier. Nil fields are left unchanged.
type TierPatch struct {
	PointsThreshold *int
	Benefits        []Benefit
}

// Apply returns a copy of c with the patch merged in.
func (p TierPatch) Apply(c TierConfig) TierConfig {
	out := TierConfig{
		Name:            c.Name,
		PointsThreshold: c.PointsThreshold,
		Benefits:        c.Benefits,
	}
	if p.PointsThreshold != nil {
		out.PointsThreshold = *p.PointsThreshold
	}
	if p.Benefits != nil {
		out.Benefits = p.Benefits
	}
	return out
}

// UpdateTierRequest is the DTO for PUT /api/loyalty/tiers/:name
type UpdateTierRequest struct {
	PointsThreshold *int             `json:"points_threshold"`
	Benefits        *[]BenefitRecord `json:"benefits" validate:"omitempty,dive"`
}

// Patch converts the request into a TierPatch.
func (r UpdateTierRequest) Patch() (TierPatch, error) {
	patch := TierPatch{PointsThreshold: r.PointsThreshold}
	if r.Benefits != nil {
		benefits, err := DecodeBenefits(*r.Benefits)
		if err != nil {
			return TierPatch{}, err
		}
		if benefits == nil {
			benefits = []Benefit{}
		}
		patch.Benefits = benefits
	}
	return patch, nil
}

// EarningRule is the global points earning configuration.
type EarningRule struct {
	PointsPerDollar float64 `json:"points_per_dollar" yaml:"points_per_dollar"`
}

// EarningRuleRequest is the DTO for PUT /api/loyalty/earning-rule
type EarningRuleRequest struct {
	PointsPerDollar *float64 `json:"points_per_dollar" validate:"required"`
}
