package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/keepup-loyalty/internal/model"
)

func sampleReservations() []model.Reservation {
	return []model.Reservation{
		{ID: "res1", CustomerName: "Alice Johnson", Date: "2024-05-10", Time: "18:30", Status: model.ReservationConfirmed},
		{ID: "res2", CustomerName: "Bob Brown", Date: "2024-05-10", Time: "19:00", Status: model.ReservationConfirmed},
		{ID: "res3", CustomerName: "Charlie Davis", Date: "2024-05-10", Time: "12:15", Status: model.ReservationPending},
		{ID: "res4", CustomerName: "Diana Prince", Date: "2024-05-11", Time: "12:00", Status: model.ReservationConfirmed},
		{ID: "res5", CustomerName: "John Doe", Date: "2024-05-11", Time: "09:30", Status: model.ReservationCancelled},
		{ID: "res6", CustomerName: "Bruce Wayne", Date: "2024-05-09", Time: "21:00", Status: model.ReservationConfirmed},
		{ID: "res7", CustomerName: "Clark Kent", Date: "2024-05-10", Time: "20:00", Status: model.ReservationCompleted},
		{ID: "res8", CustomerName: "Tony Stark", Date: "2024-05-12", Time: "21:00", Status: model.ReservationPending},
		{ID: "res9", CustomerName: "Steve Rogers", Date: "2024-05-10", Time: "17:00", Status: model.ReservationCancelled},
	}
}

func ids(reservations []model.Reservation) []string {
	out := make([]string, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, r.ID)
	}
	return out
}

func TestUpcomingReservations_SortedByDateThenTime(t *testing.T) {
	got := UpcomingReservations(mustDate(t, "2024-05-10"), sampleReservations(), 0)

	assert.Equal(t, []string{"res3", "res1", "res2", "res4", "res8"}, ids(got))
}

func TestUpcomingReservations_Limit(t *testing.T) {
	got := UpcomingReservations(mustDate(t, "2024-05-10"), sampleReservations(), 2)

	assert.Equal(t, []string{"res3", "res1"}, ids(got))
}

func TestUpcomingReservations_NoneLeft(t *testing.T) {
	got := UpcomingReservations(mustDate(t, "2025-01-01"), sampleReservations(), 5)

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTodaysReservations(t *testing.T) {
	got := TodaysReservations(mustDate(t, "2024-05-10"), sampleReservations())

	assert.Equal(t, []string{"res3", "res1", "res2"}, ids(got))
}

func TestStatusCounts(t *testing.T) {
	counts := StatusCounts(mustDate(t, "2024-05-10"), sampleReservations())

	assert.Equal(t, map[model.ReservationStatus]int{
		model.ReservationPending:   1,
		model.ReservationConfirmed: 2,
		model.ReservationCancelled: 1,
		model.ReservationCompleted: 1,
	}, counts)
}

func TestStatusCounts_EmptyDayHasAllStatuses(t *testing.T) {
	counts := StatusCounts(mustDate(t, "2030-01-01"), sampleReservations())

	require.Len(t, counts, 4)
	for _, s := range model.ReservationStatuses() {
		assert.Zero(t, counts[s])
	}
}
