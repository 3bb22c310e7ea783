package model

import (
	"errors"
	"fmt"
)

// ErrUnknownBenefitType is returned when a benefit record carries an unrecognized type tag.
var ErrUnknownBenefitType = errors.New("unknown benefit type")

// Benefit type tags used in the wire form.
const (
	BenefitTypeDescriptive = "descriptive"
	BenefitTypeRule        = "rule"
)

// RuleType identifies the computation a rule benefit performs.
type RuleType string

const (
	RulePercentageDiscount RuleType = "PERCENTAGE_DISCOUNT"
	// RuleFreeItem is reserved; it cannot be saved yet.
	RuleFreeItem RuleType = "FREE_ITEM"
)

// Benefit is a perk attached to a tier. It is either a DescriptiveBenefit or a RuleBenefit.
type Benefit interface {
	BenefitID() string
	BenefitDescription() string
	isBenefit()
}

// DescriptiveBenefit is informational only.
type DescriptiveBenefit struct {
	ID          string
	Description string
}

func (b DescriptiveBenefit) BenefitID() string          { return b.ID }
func (b DescriptiveBenefit) BenefitDescription() string { return b.Description }
func (DescriptiveBenefit) isBenefit()                   {}

// RuleBenefit is a computable benefit. For PERCENTAGE_DISCOUNT, Value is a whole percent.
type RuleBenefit struct {
	ID          string
	Description string
	RuleType    RuleType
	Value       int
}

func (b RuleBenefit) BenefitID() string          { return b.ID }
func (b RuleBenefit) BenefitDescription() string { return b.Description }
func (RuleBenefit) isBenefit()                   {}

// BenefitRecord is the flat, tagged wire form of a Benefit.
type BenefitRecord struct {
	ID          string   `json:"id" yaml:"id"`
	Type        string   `json:"type" yaml:"type" validate:"required,oneof=descriptive rule"`
	Description string   `json:"description" yaml:"description"`
	RuleType    RuleType `json:"rule_type,omitempty" yaml:"rule_type,omitempty"`
	Value       *int     `json:"value,omitempty" yaml:"value,omitempty"`
}

// Benefit converts the record into its typed variant.
func (r BenefitRecord) Benefit() (Benefit, error) {
	switch r.Type {
	case BenefitTypeDescriptive:
		return DescriptiveBenefit{ID: r.ID, Description: r.Description}, nil
	case BenefitTypeRule:
		rb := RuleBenefit{ID: r.ID, Description: r.Description, RuleType: r.RuleType}
		if rb.RuleType == "" {
			rb.RuleType = RulePercentageDiscount
		}
		if r.Value != nil {
			rb.Value = *r.Value
		}
		return rb, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBenefitType, r.Type)
	}
}

// RecordOf converts a Benefit into its wire form.
func RecordOf(b Benefit) BenefitRecord {
	switch v := b.(type) {
	case DescriptiveBenefit:
		return BenefitRecord{ID: v.ID, Type: BenefitTypeDescriptive, Description: v.Description}
	case RuleBenefit:
		value := v.Value
		return BenefitRecord{
			ID:          v.ID,
			Type:        BenefitTypeRule,
			Description: v.Description,
			RuleType:    v.RuleType,
			Value:       &value,
		}
	default:
		panic(fmt.Sprintf("model: unhandled benefit type %T", b))
	}
}

// EncodeBenefits converts benefits into wire records. The result is never nil.
func EncodeBenefits(benefits []Benefit) []BenefitRecord {
	out := make([]BenefitRecord, 0, len(benefits))
	for _, b := range benefits {
		out = append(out, RecordOf(b))
	}
	return out
}

// DecodeBenefits converts wire records into typed benefits.
func DecodeBenefits(records []BenefitRecord) ([]Benefit, error) {
	if records == nil {
		return nil, nil
	}
	out := make([]Benefit, 0, len(records))
	for i, r := range records {
		b, err := r.Benefit()
		if err != nil {
			return nil, fmt.Errorf("benefit %d: %w", i, err)
		}
		out = append(out, b)
	}
	return out, nil
}
