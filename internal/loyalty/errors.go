package loyalty

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches any ConfigurationError via errors.Is.
	ErrConfiguration = errors.New("loyalty configuration error")

	// ErrValidation matches any ValidationError via errors.Is.
	ErrValidation = errors.New("loyalty validation error")
)

// ConfigurationError reports tier data that violates the program invariants.
// It indicates an upstream data-integrity problem and must be surfaced, not recovered.
type ConfigurationError struct {
	Code   string
	Detail string
}

func (e *ConfigurationError) Error() string {
	if e.Detail == "" {
		return "loyalty configuration: " + e.Code
	}
	return fmt.Sprintf("loyalty configuration: %s: %s", e.Code, e.Detail)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// ValidationError reports a proposed write that violates a single-field constraint.
// The caller shows it and leaves the stored data unchanged.
type ValidationError struct {
	Code   string
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return "loyalty validation: " + e.Code
	}
	return fmt.Sprintf("loyalty validation: %s: %s", e.Code, e.Detail)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Error codes.
const (
	CodeEntryTierMissing      = "entry-tier-missing"
	CodeEntryTierDuplicated   = "entry-tier-duplicated"
	CodeTierMissing           = "tier-missing"
	CodeTierUnknown           = "tier-unknown"
	CodeTierDuplicated        = "tier-duplicated"
	CodeThresholdNotMonotonic = "threshold-not-monotonic"
	CodeThresholdNegative     = "threshold-negative"
	CodeDiscoveryTierFixed    = "discovery-tier-fixed"
	CodeDiscountOutOfRange    = "discount-out-of-range"
	CodeRuleTypeUnsupported   = "rule-type-unsupported"
	CodePointsNegative        = "points-negative"
	CodePointsPerDollar       = "points-per-dollar-negative"
)

func configErr(code, format string, args ...any) error {
	return &ConfigurationError{Code: code, Detail: fmt.Sprintf(format, args...)}
}

func validationErr(code, format string, args ...any) error {
	return &ValidationError{Code: code, Detail: fmt.Sprintf(format, args...)}
}
