// Package loyalty resolves tier membership and tier benefits from accumulated points.
//
// Every function here is pure: tier configuration is passed in on each call and
// never cached, inputs are never mutated, and no I/O is performed.
package loyalty

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/fairyhunter13/keepup-loyalty/internal/model"
)

// Progress describes how far a points balance is from the next tier.
type Progress struct {
	Current model.TierConfig
	// NextTier is nil when Current is already the highest tier.
	NextTier        *model.Tier
	NextThreshold   int
	PointsRemaining int
	PercentComplete float64
}

// ResolveTier returns the highest-threshold tier whose threshold is <= points.
// When two tiers share a threshold the one listed first in tiers wins.
func ResolveTier(points int, tiers []model.TierConfig) (model.TierConfig, error) {
	if points < 0 {
		return model.TierConfig{}, validationErr(CodePointsNegative, "points %d", points)
	}
	if !hasEntryTier(tiers) {
		return model.TierConfig{}, configErr(CodeEntryTierMissing, "no tier has a zero points threshold")
	}

	for _, t := range sortedDescending(tiers) {
		if t.PointsThreshold <= points {
			return t, nil
		}
	}
	// Unreachable while an entry tier exists.
	return model.TierConfig{}, configErr(CodeEntryTierMissing, "no tier reachable with %d points", points)
}

// ProgressToNextTier reports the tier after the one resolved for points.
func ProgressToNextTier(points int, tiers []model.TierConfig) (Progress, error) {
	current, err := ResolveTier(points, tiers)
	if err != nil {
		return Progress{}, err
	}

	var next *model.TierConfig
	for i := range tiers {
		t := &tiers[i]
		if t.PointsThreshold <= current.PointsThreshold {
			continue
		}
		if next == nil || t.PointsThreshold < next.PointsThreshold {
			next = t
		}
	}

	if next == nil {
		return Progress{Current: current, PercentComplete: 1}, nil
	}

	name := next.Name
	pct := float64(points) / float64(next.PointsThreshold)
	return Progress{
		Current:         current,
		NextTier:        &name,
		NextThreshold:   next.PointsThreshold,
		PointsRemaining: max(0, next.PointsThreshold-points),
		PercentComplete: min(1, max(0, pct)),
	}, nil
}

// ActiveDiscountPercent sums the PERCENTAGE_DISCOUNT rules attached to tier.
// Benefits are not inherited from lower tiers; each tier's list is authoritative.
func ActiveDiscountPercent(tier model.Tier, tiers []model.TierConfig) (int, error) {
	cfg, ok := findTier(tier, tiers)
	if !ok {
		return 0, configErr(CodeTierMissing, "tier %s is not configured", tier)
	}

	total := 0
	for _, b := range cfg.Benefits {
		switch v := b.(type) {
		case model.RuleBenefit:
			if v.RuleType == model.RulePercentageDiscount {
				total += v.Value
			}
		case model.DescriptiveBenefit:
		}
	}
	return min(100, max(0, total)), nil
}

// ApplyDiscount reduces amountCents by percent, rounding the discount half-up to the cent.
// Negative amounts are returned unchanged.
func ApplyDiscount(amountCents int64, percent int) int64 {
	if amountCents <= 0 {
		return amountCents
	}
	p := int64(min(100, max(0, percent)))
	discount := (amountCents*p + 50) / 100
	return amountCents - discount
}

// ValidateTiers checks the invariants a tier configuration must satisfy when loaded.
func ValidateTiers(tiers []model.TierConfig) error {
	seen := make(map[model.Tier]bool, len(tiers))
	entries := 0
	for _, t := range tiers {
		if !t.Name.Valid() {
			return configErr(CodeTierUnknown, "tier %q", t.Name)
		}
		if seen[t.Name] {
			return configErr(CodeTierDuplicated, "tier %s listed twice", t.Name)
		}
		seen[t.Name] = true

		if t.PointsThreshold < 0 {
			return configErr(CodeThresholdNegative, "tier %s threshold %d", t.Name, t.PointsThreshold)
		}
		if t.PointsThreshold == 0 {
			entries++
		}
		if t.Name == model.TierDiscovery && t.PointsThreshold != 0 {
			return configErr(CodeDiscoveryTierFixed, "discovery threshold %d", t.PointsThreshold)
		}
		for _, b := range t.Benefits {
			if rb, ok := b.(model.RuleBenefit); ok && (rb.Value < 0 || rb.Value > 100) {
				return configErr(CodeDiscountOutOfRange, "tier %s benefit %s value %d", t.Name, rb.ID, rb.Value)
			}
		}
	}

	switch {
	case entries == 0:
		return configErr(CodeEntryTierMissing, "no tier has a zero points threshold")
	case entries > 1:
		return configErr(CodeEntryTierDuplicated, "%d tiers have a zero points threshold", entries)
	}

	if lo, hi, bad := thresholdOrderViolation(tiers); bad {
		return configErr(CodeThresholdNotMonotonic, "%s", describeOrderViolation(lo, hi))
	}
	return nil
}

// ValidateTierUpdate checks a proposed tier update against the current configuration and
// returns the normalized patch to persist. Benefits with a blank description are dropped
// silently; benefits without an ID receive a generated one.
func ValidateTierUpdate(name model.Tier, patch model.TierPatch, allTiers []model.TierConfig) (model.TierPatch, error) {
	idx := -1
	for i, t := range allTiers {
		if t.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.TierPatch{}, validationErr(CodeTierUnknown, "tier %q", name)
	}

	normalized := model.TierPatch{}
	if p := patch.PointsThreshold; p != nil {
		if name == model.TierDiscovery && *p != 0 {
			return model.TierPatch{}, validationErr(CodeDiscoveryTierFixed, "the entry tier must stay at 0 points")
		}
		if *p < 0 {
			return model.TierPatch{}, validationErr(CodeThresholdNegative, "threshold %d", *p)
		}
		threshold := *p
		normalized.PointsThreshold = &threshold
	}

	if patch.Benefits != nil {
		benefits, err := normalizeBenefits(patch.Benefits)
		if err != nil {
			return model.TierPatch{}, err
		}
		normalized.Benefits = benefits
	}

	next := make([]model.TierConfig, len(allTiers))
	copy(next, allTiers)
	next[idx] = normalized.Apply(allTiers[idx])
	if lo, hi, bad := thresholdOrderViolation(next); bad {
		return model.TierPatch{}, validationErr(CodeThresholdNotMonotonic, "%s", describeOrderViolation(lo, hi))
	}
	return normalized, nil
}

// ValidateEarningRule checks the global earning rule before it is saved.
func ValidateEarningRule(rule model.EarningRule) error {
	if rule.PointsPerDollar < 0 {
		return validationErr(CodePointsPerDollar, "points per dollar %v", rule.PointsPerDollar)
	}
	return nil
}

func normalizeBenefits(in []model.Benefit) ([]model.Benefit, error) {
	out := make([]model.Benefit, 0, len(in))
	for _, b := range in {
		if b == nil || strings.TrimSpace(b.BenefitDescription()) == "" {
			continue
		}
		switch v := b.(type) {
		case model.DescriptiveBenefit:
			if v.ID == "" {
				v.ID = uuid.NewString()
			}
			out = append(out, v)
		case model.RuleBenefit:
			if v.RuleType != model.RulePercentageDiscount {
				return nil, validationErr(CodeRuleTypeUnsupported, "rule type %q", v.RuleType)
			}
			if v.Value < 0 || v.Value > 100 {
				return nil, validationErr(CodeDiscountOutOfRange, "discount %d%% must be between 0 and 100", v.Value)
			}
			if v.ID == "" {
				v.ID = uuid.NewString()
			}
			out = append(out, v)
		}
	}
	return out, nil
}

func hasEntryTier(tiers []model.TierConfig) bool {
	for _, t := range tiers {
		if t.PointsThreshold == 0 {
			return true
		}
	}
	return false
}

func findTier(name model.Tier, tiers []model.TierConfig) (model.TierConfig, bool) {
	for _, t := range tiers {
		if t.Name == name {
			return t, true
		}
	}
	return model.TierConfig{}, false
}

func sortedDescending(tiers []model.TierConfig) []model.TierConfig {
	out := make([]model.TierConfig, len(tiers))
	copy(out, tiers)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PointsThreshold > out[j].PointsThreshold
	})
	return out
}

// thresholdOrderViolation walks the tiers in threshold order and returns the first adjacent
// pair that shares a threshold or unlocks out of sequence (e.g. Gold below Silver).
func thresholdOrderViolation(tiers []model.TierConfig) (model.TierConfig, model.TierConfig, bool) {
	sorted := make([]model.TierConfig, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PointsThreshold < sorted[j].PointsThreshold
	})
	for i := 1; i < len(sorted); i++ {
		lo, hi := sorted[i-1], sorted[i]
		if lo.PointsThreshold == hi.PointsThreshold || lo.Name.Rank() >= hi.Name.Rank() {
			return lo, hi, true
		}
	}
	return model.TierConfig{}, model.TierConfig{}, false
}

func describeOrderViolation(lo, hi model.TierConfig) string {
	if lo.PointsThreshold == hi.PointsThreshold {
		return fmt.Sprintf("tiers %s and %s share threshold %d", lo.Name, hi.Name, lo.PointsThreshold)
	}
	return fmt.Sprintf("tier %s (%d points) must need more points than %s (%d points)",
		lo.Name, lo.PointsThreshold, hi.Name, hi.PointsThreshold)
}
