package calendar

import (
	"sort"
	"time"

	"github.com/fairyhunter13/keepup-loyalty/internal/model"
)

// UpcomingReservations returns pending and confirmed reservations dated today or later,
// ordered by date then time, truncated to limit (no limit when limit <= 0).
func UpcomingReservations(today time.Time, reservations []model.Reservation, limit int) []model.Reservation {
	todayKey := FormatDate(today)

	out := make([]model.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r.Status != model.ReservationPending && r.Status != model.ReservationConfirmed {
			continue
		}
		if r.Date < todayKey {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TodaysReservations returns today's reservations that are still to be seated, ordered by time.
func TodaysReservations(today time.Time, reservations []model.Reservation) []model.Reservation {
	todayKey := FormatDate(today)

	out := make([]model.Reservation, 0)
	for _, r := range reservations {
		if r.Date != todayKey {
			continue
		}
		if r.Status == model.ReservationCancelled || r.Status == model.ReservationCompleted {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time < out[j].Time
	})
	return out
}

// StatusCounts counts today's reservations per status. Every status is present in the result.
func StatusCounts(today time.Time, reservations []model.Reservation) map[model.ReservationStatus]int {
	todayKey := FormatDate(today)

	counts := make(map[model.ReservationStatus]int, 4)
	for _, s := range model.ReservationStatuses() {
		counts[s] = 0
	}
	for _, r := range reservations {
		if r.Date == todayKey {
			counts[r.Status]++
		}
	}
	return counts
}
