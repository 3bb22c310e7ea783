package handler

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/keepup-loyalty/internal/model"
	"github.com/fairyhunter13/keepup-loyalty/internal/service"
	appvalidator "github.com/fairyhunter13/keepup-loyalty/internal/validator"
)

// mockReservationService is a mock implementation of ReservationServiceInterface.
type mockReservationService struct {
	createFn       func(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error)
	updateFn       func(ctx context.Context, id string, req *model.ReservationRequest) (*model.Reservation, error)
	updateStatusFn func(ctx context.Context, id string, status model.ReservationStatus) error
	deleteFn       func(ctx context.Context, id string) error
	upcomingFn     func(ctx context.Context, limit int) ([]model.Reservation, error)
}

func (m *mockReservationService) ListReservations(ctx context.Context) ([]model.Reservation, error) {
	return []model.Reservation{{ID: "res1"}}, nil
}

func (m *mockReservationService) CreateReservation(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error) {
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return &model.Reservation{ID: "new", CustomerName: req.CustomerName, Status: model.ReservationPending}, nil
}

func (m *mockReservationService) UpdateReservation(ctx context.Context, id string, req *model.ReservationRequest) (*model.Reservation, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, req)
	}
	return &model.Reservation{ID: id, CustomerName: req.CustomerName, Status: req.Status}, nil
}

func (m *mockReservationService) UpdateReservationStatus(ctx context.Context, id string, status model.ReservationStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return nil
}

func (m *mockReservationService) DeleteReservation(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockReservationService) UpcomingReservations(ctx context.Context, limit int) ([]model.Reservation, error) {
	if m.upcomingFn != nil {
		return m.upcomingFn(ctx, limit)
	}
	return []model.Reservation{}, nil
}

func (m *mockReservationService) TodaysReservations(ctx context.Context) ([]model.Reservation, error) {
	return []model.Reservation{}, nil
}

func (m *mockReservationService) StatusCounts(ctx context.Context) (map[model.ReservationStatus]int, error) {
	return map[model.ReservationStatus]int{
		model.ReservationPending:   1,
		model.ReservationConfirmed: 2,
		model.ReservationCancelled: 0,
		model.ReservationCompleted: 0,
	}, nil
}

func setupReservationApp(mockSvc *mockReservationService) *fiber.App {
	app := fiber.New()
	NewReservationHandler(mockSvc, appvalidator.New()).Register(app.Group("/api"))
	return app
}

func TestCreateReservation(t *testing.T) {
	app := setupReservationApp(&mockReservationService{})

	resp, result := doJSON(t, app, http.MethodPost, "/api/reservations",
		`{"customer_name": "Zed", "date": "2024-02-20", "time": "20:00", "party_size": 2}`)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Pending", result["status"])

	resp, result = doJSON(t, app, http.MethodPost, "/api/reservations",
		`{"customer_name": "Zed", "date": "2024-02-20", "time": "20:00", "party_size": 0}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid request: party_size is required", result["error"])

	resp, result = doJSON(t, app, http.MethodPost, "/api/reservations",
		`{"customer_name": "Zed", "date": "20-02-2024", "time": "20:00", "party_size": 2}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid request: date must be a date in YYYY-MM-DD format", result["error"])
}

func TestCreateReservation_UnknownActivity(t *testing.T) {
	mockSvc := &mockReservationService{
		createFn: func(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error) {
			return nil, service.ErrActivityNotFound
		},
	}
	app := setupReservationApp(mockSvc)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/reservations",
		`{"customer_name": "Zed", "date": "2024-02-20", "time": "20:00", "party_size": 2, "activity_id": "act9"}`)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdateReservationStatus(t *testing.T) {
	var gotID string
	var gotStatus model.ReservationStatus
	mockSvc := &mockReservationService{
		updateStatusFn: func(ctx context.Context, id string, status model.ReservationStatus) error {
			gotID, gotStatus = id, status
			if id == "ghost" {
				return service.ErrReservationNotFound
			}
			return nil
		},
	}
	app := setupReservationApp(mockSvc)

	resp, _ := doJSON(t, app, http.MethodPatch, "/api/reservations/res1/status", `{"status": "Completed"}`)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "res1", gotID)
	assert.Equal(t, model.ReservationCompleted, gotStatus)

	resp, _ = doJSON(t, app, http.MethodPatch, "/api/reservations/ghost/status", `{"status": "Cancelled"}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPatch, "/api/reservations/res1/status", `{"status": "Lost"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateReservationStatus_SuccessIsNotLoggedByHandler(t *testing.T) {
	var buf bytes.Buffer
	original := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = original })

	app := setupReservationApp(&mockReservationService{})

	resp, _ := doJSON(t, app, http.MethodPatch, "/api/reservations/res1/status", `{"status": "Confirmed"}`)

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Empty(t, buf.String(), "writes are logged once, by the service")
}

func TestUpdateReservation(t *testing.T) {
	var gotReq *model.ReservationRequest
	mockSvc := &mockReservationService{
		updateFn: func(ctx context.Context, id string, req *model.ReservationRequest) (*model.Reservation, error) {
			gotReq = req
			switch id {
			case "ghost":
				return nil, service.ErrReservationNotFound
			case "res11":
				return nil, service.ErrActivityNotFound
			}
			return &model.Reservation{ID: id, CustomerName: req.CustomerName, PartySize: req.PartySize, Status: model.ReservationConfirmed}, nil
		},
	}
	app := setupReservationApp(mockSvc)
	body := `{"customer_name": "Alice Johnson", "date": "2024-02-14", "time": "19:00", "party_size": 3, "table_number": 6}`

	resp, result := doJSON(t, app, http.MethodPut, "/api/reservations/res1", body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "res1", result["id"])
	assert.Equal(t, float64(3), result["party_size"])
	require.NotNil(t, gotReq.TableNumber)
	assert.Equal(t, 6, *gotReq.TableNumber)
	assert.Empty(t, gotReq.Status)

	resp, _ = doJSON(t, app, http.MethodPut, "/api/reservations/ghost", body)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPut, "/api/reservations/res11", body)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, result = doJSON(t, app, http.MethodPut, "/api/reservations/res1",
		`{"customer_name": "Alice Johnson", "date": "2024-02-14", "time": "19:00", "party_size": 51}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid request: party_size must be at most 50", result["error"])
}

func TestDeleteReservation(t *testing.T) {
	mockSvc := &mockReservationService{
		deleteFn: func(ctx context.Context, id string) error {
			if id == "ghost" {
				return service.ErrReservationNotFound
			}
			return nil
		},
	}
	app := setupReservationApp(mockSvc)

	resp, _ := doJSON(t, app, http.MethodDelete, "/api/reservations/res1", "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, result := doJSON(t, app, http.MethodDelete, "/api/reservations/ghost", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "reservation not found", result["error"])
}

func TestUpcomingReservations_Limit(t *testing.T) {
	var gotLimit int
	mockSvc := &mockReservationService{
		upcomingFn: func(ctx context.Context, limit int) ([]model.Reservation, error) {
			gotLimit = limit
			return []model.Reservation{}, nil
		},
	}
	app := setupReservationApp(mockSvc)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/reservations/upcoming", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 5, gotLimit)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/reservations/upcoming?limit=3", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, gotLimit)
}

func TestStatusCounts(t *testing.T) {
	app := setupReservationApp(&mockReservationService{})

	resp, result := doJSON(t, app, http.MethodGet, "/api/reservations/status-counts", "")

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{
		"Pending": float64(1), "Confirmed": float64(2), "Cancelled": float64(0), "Completed": float64(0),
	}, result)
}

func TestTodayAndList(t *testing.T) {
	app := setupReservationApp(&mockReservationService{})

	resp, _ := doJSON(t, app, http.MethodGet, "/api/reservations/today", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/reservations", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
