package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/keepup-loyalty/internal/calendar"
	"github.com/fairyhunter13/keepup-loyalty/internal/model"
)

// CalendarService provides the activity and reservation calendars and booking views.
type CalendarService struct {
	activityRepo    ActivityRepositoryInterface
	reservationRepo ReservationRepositoryInterface
	now             func() time.Time
	newID           func() string
}

// NewCalendarService creates a new CalendarService using the wall clock.
func NewCalendarService(activityRepo ActivityRepositoryInterface, reservationRepo ReservationRepositoryInterface) *CalendarService {
	return NewCalendarServiceWithClock(activityRepo, reservationRepo, time.Now)
}

// NewCalendarServiceWithClock creates a CalendarService with a custom clock.
// Primarily used for testing.
func NewCalendarServiceWithClock(
	activityRepo ActivityRepositoryInterface,
	reservationRepo ReservationRepositoryInterface,
	now func() time.Time,
) *CalendarService {
	return &CalendarService{
		activityRepo:    activityRepo,
		reservationRepo: reservationRepo,
		now:             now,
		newID:           uuid.NewString,
	}
}

// Today returns the current calendar date as a UTC midnight value.
func (s *CalendarService) Today() time.Time {
	return calendar.DateOf(s.now())
}

// ActivityMonth returns the 42-cell month grid of activities around ref.
func (s *CalendarService) ActivityMonth(ctx context.Context, ref time.Time) ([]calendar.Cell[model.Activity], error) {
	activities, err := s.activityRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return calendar.BuildMonthGrid(ref, activities), nil
}

// ActivityWeek returns the week grid of activities containing ref.
func (s *CalendarService) ActivityWeek(ctx context.Context, ref time.Time) ([]calendar.Cell[model.Activity], error) {
	activities, err := s.activityRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return calendar.BuildWeekGrid(ref, activities), nil
}

// ReservationMonth returns the 42-cell month grid of reservations around ref.
func (s *CalendarService) ReservationMonth(ctx context.Context, ref time.Time) ([]calendar.Cell[model.Reservation], error) {
	reservations, err := s.reservationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return calendar.BuildMonthGrid(ref, reservations), nil
}

// ReservationWeek returns the week grid of reservations containing ref.
func (s *CalendarService) ReservationWeek(ctx context.Context, ref time.Time) ([]calendar.Cell[model.Reservation], error) {
	reservations, err := s.reservationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return calendar.BuildWeekGrid(ref, reservations), nil
}

// Navigate moves ref one page in direction for the given view.
func (s *CalendarService) Navigate(ref time.Time, view calendar.View, direction calendar.Direction) (time.Time, error) {
	return calendar.ChangePeriod(ref, view, direction)
}

// ListActivities returns every activity.
func (s *CalendarService) ListActivities(ctx context.Context) ([]model.Activity, error) {
	return s.activityRepo.List(ctx)
}

// CreateActivity schedules a new activity with a generated ID.
func (s *CalendarService) CreateActivity(ctx context.Context, req *model.ActivityRequest) (*model.Activity, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}
	if _, err := calendar.ParseDate(req.Date); err != nil {
		return nil, ErrInvalidRequest
	}

	activity := &model.Activity{
		ID:             s.newID(),
		Title:          req.Title,
		Date:           req.Date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Description:    req.Description,
		TargetAudience: req.TargetAudience,
		Color:          req.Color,
	}
	if err := s.activityRepo.Insert(ctx, activity); err != nil {
		return nil, err
	}

	log.Info().Str("activity_id", activity.ID).Str("date", activity.Date).Msg("activity created")
	return activity, nil
}

// UpdateActivity replaces an activity.
// Returns ErrActivityNotFound if the activity doesn't exist.
func (s *CalendarService) UpdateActivity(ctx context.Context, id string, req *model.ActivityRequest) (*model.Activity, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}
	if _, err := calendar.ParseDate(req.Date); err != nil {
		return nil, ErrInvalidRequest
	}

	existing, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrActivityNotFound
	}

	existing.Title = req.Title
	existing.Date = req.Date
	existing.StartTime = req.StartTime
	existing.EndTime = req.EndTime
	existing.Description = req.Description
	existing.TargetAudience = req.TargetAudience
	existing.Color = req.Color
	if err := s.activityRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	log.Info().Str("activity_id", existing.ID).Str("date", existing.Date).Msg("activity updated")
	return existing, nil
}

// DeleteActivity removes an activity.
// Returns ErrActivityNotFound if the activity doesn't exist.
func (s *CalendarService) DeleteActivity(ctx context.Context, id string) error {
	if err := s.activityRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("activity_id", id).Msg("activity deleted")
	return nil
}

// ListReservations returns every reservation.
func (s *CalendarService) ListReservations(ctx context.Context) ([]model.Reservation, error) {
	return s.reservationRepo.List(ctx)
}

// CreateReservation books a table. Status defaults to Pending.
// Returns ErrActivityNotFound when the reservation references an unknown activity.
func (s *CalendarService) CreateReservation(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}
	if _, err := calendar.ParseDate(req.Date); err != nil {
		return nil, ErrInvalidRequest
	}

	if err := s.checkActivity(ctx, req.ActivityID); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.ReservationPending
	}

	reservation := &model.Reservation{
		ID:           s.newID(),
		CustomerName: req.CustomerName,
		Date:         req.Date,
		Time:         req.Time,
		PartySize:    req.PartySize,
		Status:       status,
		TableNumber:  req.TableNumber,
		Notes:        req.Notes,
		ActivityID:   req.ActivityID,
	}
	if err := s.reservationRepo.Insert(ctx, reservation); err != nil {
		return nil, err
	}

	log.Info().
		Str("reservation_id", reservation.ID).
		Str("date", reservation.Date).
		Int("party_size", reservation.PartySize).
		Msg("reservation created")
	return reservation, nil
}

// UpdateReservation replaces a reservation. An empty status keeps the current one.
// Returns ErrReservationNotFound if the reservation doesn't exist and ErrActivityNotFound
// when it would reference an unknown activity.
func (s *CalendarService) UpdateReservation(ctx context.Context, id string, req *model.ReservationRequest) (*model.Reservation, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}
	if _, err := calendar.ParseDate(req.Date); err != nil {
		return nil, ErrInvalidRequest
	}

	existing, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrReservationNotFound
	}
	if err := s.checkActivity(ctx, req.ActivityID); err != nil {
		return nil, err
	}

	existing.CustomerName = req.CustomerName
	existing.Date = req.Date
	existing.Time = req.Time
	existing.PartySize = req.PartySize
	if req.Status != "" {
		existing.Status = req.Status
	}
	existing.TableNumber = req.TableNumber
	existing.Notes = req.Notes
	existing.ActivityID = req.ActivityID
	if err := s.reservationRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	log.Info().
		Str("reservation_id", existing.ID).
		Str("date", existing.Date).
		Str("status", string(existing.Status)).
		Msg("reservation updated")
	return existing, nil
}

// DeleteReservation removes a reservation.
// Returns ErrReservationNotFound if the reservation doesn't exist.
func (s *CalendarService) DeleteReservation(ctx context.Context, id string) error {
	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("reservation_id", id).Msg("reservation deleted")
	return nil
}

// UpdateReservationStatus moves a reservation to a new status.
// Returns ErrReservationNotFound if the reservation doesn't exist.
func (s *CalendarService) UpdateReservationStatus(ctx context.Context, id string, status model.ReservationStatus) error {
	if !validReservationStatus(status) {
		return ErrInvalidRequest
	}
	if err := s.reservationRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	log.Info().Str("reservation_id", id).Str("status", string(status)).Msg("reservation status changed")
	return nil
}

// UpcomingReservations returns the next pending or confirmed bookings from today on.
func (s *CalendarService) UpcomingReservations(ctx context.Context, limit int) ([]model.Reservation, error) {
	reservations, err := s.reservationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return calendar.UpcomingReservations(s.Today(), reservations, limit), nil
}

// TodaysReservations returns today's bookings still to be seated.
func (s *CalendarService) TodaysReservations(ctx context.Context) ([]model.Reservation, error) {
	reservations, err := s.reservationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return calendar.TodaysReservations(s.Today(), reservations), nil
}

// StatusCounts counts today's reservations per status.
func (s *CalendarService) StatusCounts(ctx context.Context) (map[model.ReservationStatus]int, error) {
	reservations, err := s.reservationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return calendar.StatusCounts(s.Today(), reservations), nil
}

// checkActivity returns ErrActivityNotFound when id is set but names no activity.
func (s *CalendarService) checkActivity(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	activity, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if activity == nil {
		return ErrActivityNotFound
	}
	return nil
}

func validReservationStatus(status model.ReservationStatus) bool {
	for _, s := range model.ReservationStatuses() {
		if s == status {
			return true
		}
	}
	return false
}
