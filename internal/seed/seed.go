// Package seed loads the demo dataset that the in-memory store starts from and that an
// empty postgres database is populated with.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fairyhunter13/keepup-loyalty/internal/calendar"
	"github.com/fairyhunter13/keepup-loyalty/internal/loyalty"
	"github.com/fairyhunter13/keepup-loyalty/internal/model"
)

//go:embed seed.yaml
var defaultSeed []byte

// Dataset is a fully resolved seed with concrete dates.
type Dataset struct {
	Tiers        []model.TierConfig
	EarningRule  model.EarningRule
	Customers    []model.Customer
	Rewards      []model.Reward
	Activities   []model.Activity
	Reservations []model.Reservation
	Templates    []model.CampaignTemplate
}

type tierRecord struct {
	Name            model.Tier            `yaml:"name"`
	PointsThreshold int                   `yaml:"points_threshold"`
	Benefits        []model.BenefitRecord `yaml:"benefits"`
}

type activityRecord struct {
	model.Activity `yaml:",inline"`
	DayOffset      *int `yaml:"day_offset"`
}

type reservationRecord struct {
	model.Reservation `yaml:",inline"`
	DayOffset         *int `yaml:"day_offset"`
}

type document struct {
	Tiers        []tierRecord             `yaml:"tiers"`
	EarningRule  model.EarningRule        `yaml:"earning_rule"`
	Customers    []model.Customer         `yaml:"customers"`
	Rewards      []model.Reward           `yaml:"rewards"`
	Activities   []activityRecord         `yaml:"activities"`
	Reservations []reservationRecord      `yaml:"reservations"`
	Templates    []model.CampaignTemplate `yaml:"templates"`
}

// Default returns the embedded dataset with relative dates resolved against today.
func Default(today time.Time) (*Dataset, error) {
	return Parse(defaultSeed, today)
}

// LoadFile reads a YAML dataset from path.
func LoadFile(path string, today time.Time) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed %s: %w", path, err)
	}
	return Parse(data, today)
}

// Parse decodes a YAML dataset. The tier configuration must satisfy the loyalty invariants.
func Parse(data []byte, today time.Time) (*Dataset, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}

	ds := &Dataset{
		EarningRule:  doc.EarningRule,
		Customers:    doc.Customers,
		Rewards:      doc.Rewards,
		Tiers:        make([]model.TierConfig, 0, len(doc.Tiers)),
		Activities:   make([]model.Activity, 0, len(doc.Activities)),
		Reservations: make([]model.Reservation, 0, len(doc.Reservations)),
		Templates:    doc.Templates,
	}

	for _, t := range doc.Tiers {
		benefits, err := model.DecodeBenefits(t.Benefits)
		if err != nil {
			return nil, fmt.Errorf("tier %s: %w", t.Name, err)
		}
		if benefits == nil {
			benefits = []model.Benefit{}
		}
		ds.Tiers = append(ds.Tiers, model.TierConfig{
			Name:            t.Name,
			PointsThreshold: t.PointsThreshold,
			Benefits:        benefits,
		})
	}
	if err := loyalty.ValidateTiers(ds.Tiers); err != nil {
		return nil, fmt.Errorf("seed tiers: %w", err)
	}
	if err := loyalty.ValidateEarningRule(ds.EarningRule); err != nil {
		return nil, fmt.Errorf("seed earning rule: %w", err)
	}

	for _, a := range doc.Activities {
		date, err := resolveDate(a.Date, a.DayOffset, today)
		if err != nil {
			return nil, fmt.Errorf("activity %s: %w", a.ID, err)
		}
		a.Activity.Date = date
		ds.Activities = append(ds.Activities, a.Activity)
	}

	for _, r := range doc.Reservations {
		date, err := resolveDate(r.Date, r.DayOffset, today)
		if err != nil {
			return nil, fmt.Errorf("reservation %s: %w", r.ID, err)
		}
		r.Reservation.Date = date
		ds.Reservations = append(ds.Reservations, r.Reservation)
	}

	for _, t := range ds.Templates {
		if _, err := calendar.ParseDate(t.CreatedAt); err != nil {
			return nil, fmt.Errorf("template %s: %w", t.ID, err)
		}
	}

	return ds, nil
}

func resolveDate(literal string, offset *int, today time.Time) (string, error) {
	if offset != nil {
		return calendar.FormatDate(calendar.DateOf(today).AddDate(0, 0, *offset)), nil
	}
	if _, err := calendar.ParseDate(literal); err != nil {
		return "", err
	}
	return literal, nil
}
