// Package calendar builds month and week grids of dated entities.
//
// Dates are literal YYYY-MM-DD keys. All arithmetic runs on UTC midnight values so
// that a key never drifts across a time-zone boundary.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the literal date key format.
const DateLayout = "2006-01-02"

const (
	daysPerWeek    = 7
	monthGridCells = 6 * daysPerWeek
)

var (
	// ErrInvalidDate is returned when a date key is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidView is returned for a view other than month, week or day.
	ErrInvalidView = errors.New("invalid calendar view")

	// ErrInvalidDirection is returned for a direction other than prev or next.
	ErrInvalidDirection = errors.New("invalid navigation direction")
)

// View is the granularity of a calendar page.
type View string

const (
	ViewMonth View = "month"
	ViewWeek  View = "week"
	ViewDay   View = "day"
)

// Direction moves a calendar page backwards or forwards.
type Direction string

const (
	DirectionPrev Direction = "prev"
	DirectionNext Direction = "next"
)

// Dated is any entity that lands on a calendar day.
type Dated interface {
	DateKey() string
}

// Cell is one day of a grid.
type Cell[T Dated] struct {
	Date            string `json:"date"`
	IsCurrentPeriod bool   `json:"is_current_period"`
	Items           []T    `json:"items"`
}

// ParseDate parses a literal YYYY-MM-DD key into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDate returns the literal key of t's calendar date, ignoring its location.
func FormatDate(t time.Time) string {
	return DateOf(t).Format(DateLayout)
}

// DateOf returns the UTC midnight value carrying t's wall-clock calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// BuildMonthGrid returns the 42 days starting on the Sunday on or before the first of
// ref's month. Entities keep their input order inside a cell.
func BuildMonthGrid[T Dated](ref time.Time, entities []T) []Cell[T] {
	ref = DateOf(ref)
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	return buildCells(start, monthGridCells, entities, func(day time.Time) bool {
		return day.Month() == ref.Month() && day.Year() == ref.Year()
	})
}

// BuildWeekGrid returns the Sunday-start week containing ref. Every cell is in period.
func BuildWeekGrid[T Dated](ref time.Time, entities []T) []Cell[T] {
	ref = DateOf(ref)
	start := ref.AddDate(0, 0, -int(ref.Weekday()))

	return buildCells(start, daysPerWeek, entities, func(time.Time) bool { return true })
}

// ChangePeriod moves ref one page in direction. Months use normalizing date arithmetic,
// so Jan 31 + 1 month lands in early March.
func ChangePeriod(ref time.Time, view View, direction Direction) (time.Time, error) {
	var step int
	switch direction {
	case DirectionPrev:
		step = -1
	case DirectionNext:
		step = 1
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDirection, direction)
	}

	ref = DateOf(ref)
	switch view {
	case ViewMonth:
		return ref.AddDate(0, step, 0), nil
	case ViewWeek:
		return ref.AddDate(0, 0, step*daysPerWeek), nil
	case ViewDay:
		return ref.AddDate(0, 0, step), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidView, view)
	}
}

func buildCells[T Dated](start time.Time, n int, entities []T, inPeriod func(time.Time) bool) []Cell[T] {
	byDate := groupByDate(entities)

	cells := make([]Cell[T], n)
	for i := range cells {
		day := start.AddDate(0, 0, i)
		key := day.Format(DateLayout)
		items := byDate[key]
		if items == nil {
			items = []T{}
		}
		cells[i] = Cell[T]{
			Date:            key,
			IsCurrentPeriod: inPeriod(day),
			Items:           items,
		}
	}
	return cells
}

func groupByDate[T Dated](entities []T) map[string][]T {
	out := make(map[string][]T)
	for _, e := range entities {
		key := e.DateKey()
		out[key] = append(out[key], e)
	}
	return out
}
