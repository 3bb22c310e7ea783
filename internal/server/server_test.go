package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/keepup-loyalty/internal/repository/memory"
	"github.com/fairyhunter13/keepup-loyalty/internal/seed"
)

var testNow = time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	ds, err := seed.Default(testNow)
	require.NoError(t, err)
	return NewApp(MemoryRepositories(memory.New(ds)), Options{
		Now:              func() time.Time { return testNow },
		DisableAccessLog: true,
	})
}

func do(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestHealth(t *testing.T) {
	app := setupApp(t)

	resp, body := do(t, app, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"healthy","store":"memory"}`, string(body))
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestCORSPreflight(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/loyalty/tiers", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://dashboard.example.com")
	req.Header.Set(fiber.HeaderAccessControlRequestMethod, http.MethodPut)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}

func TestLoyaltyStatusFlow(t *testing.T) {
	app := setupApp(t)

	resp, body := do(t, app, http.MethodGet, "/api/loyalty/status?points=5250", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var status map[string]any
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, "Gold", status["tier"])
	assert.Equal(t, "Platinum", status["next_tier"])
	assert.EqualValues(t, 4750, status["points_remaining"])
	assert.EqualValues(t, 5, status["discount_percent"])
}

func TestUpdateTierThenResolve(t *testing.T) {
	app := setupApp(t)

	resp, body := do(t, app, http.MethodPut, "/api/loyalty/tiers/Silver",
		`{"points_threshold":1000}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = do(t, app, http.MethodGet, "/api/loyalty/status?points=1200", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status map[string]any
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, "Silver", status["tier"])
}

func TestUpdateTier_ThresholdClash(t *testing.T) {
	app := setupApp(t)

	resp, body := do(t, app, http.MethodPut, "/api/loyalty/tiers/Silver",
		`{"points_threshold":5000}`)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, string(body), "threshold-not-monotonic")
}

func TestUpdateTier_UnlockOrderInverted(t *testing.T) {
	app := setupApp(t)

	resp, body := do(t, app, http.MethodPut, "/api/loyalty/tiers/Silver",
		`{"points_threshold":6000}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, string(body))

	var result map[string]any
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, "threshold-not-monotonic", result["code"])

	resp, body = do(t, app, http.MethodGet, "/api/loyalty/status?points=5500", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, "Gold", result["tier"], "rejected update leaves the ladder untouched")
	assert.Equal(t, "Platinum", result["next_tier"])
}

func TestUpdateTier_LoggedOnce(t *testing.T) {
	app := setupApp(t)

	var buf bytes.Buffer
	original := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = original })

	resp, body := do(t, app, http.MethodPut, "/api/loyalty/tiers/Gold", `{"points_threshold":4500}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var lines []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry), string(line))
		lines = append(lines, entry)
	}
	require.Len(t, lines, 1)
	assert.Equal(t, "tier updated", lines[0]["message"])
	assert.Equal(t, "Gold", lines[0]["tier"])
}

func TestCustomerLifecycle(t *testing.T) {
	app := setupApp(t)

	resp, body := do(t, app, http.MethodPost, "/api/loyalty/customers",
		`{"name":"Dana Scully","email":"dana.s@example.com","dob":"1964-02-23"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var created map[string]any
	require.NoError(t, json.Unmarshal(body, &created))
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Discovery", created["tier"])
	assert.Equal(t, "2024-05-10", created["last_seen"])
	assert.EqualValues(t, 0, created["points"])

	resp, body = do(t, app, http.MethodPut, "/api/loyalty/customers/"+id,
		`{"name":"Dana Scully","email":"dana@example.com","tier":"Silver"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), `"email":"dana@example.com"`)

	resp, body = do(t, app, http.MethodGet, "/api/loyalty/customers", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var customers []map[string]any
	require.NoError(t, json.Unmarshal(body, &customers))
	assert.Len(t, customers, 9)

	resp, _ = do(t, app, http.MethodDelete, "/api/loyalty/customers/"+id, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/api/loyalty/customers/"+id+"/status", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, app, http.MethodDelete, "/api/loyalty/customers/"+id, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEngagement(t *testing.T) {
	app := setupApp(t)

	resp, body := do(t, app, http.MethodGet, "/api/loyalty/engagement", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.JSONEq(t, `[
		{"tier":"Platinum","member_count":2},
		{"tier":"Gold","member_count":2},
		{"tier":"Silver","member_count":2},
		{"tier":"Discovery","member_count":2}
	]`, string(body))

	// Raising Gold past 5250 points drops John Doe back to Silver.
	resp, body = do(t, app, http.MethodPut, "/api/loyalty/tiers/Gold", `{"points_threshold":6000}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = do(t, app, http.MethodGet, "/api/loyalty/engagement", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[
		{"tier":"Platinum","member_count":2},
		{"tier":"Gold","member_count":1},
		{"tier":"Silver","member_count":3},
		{"tier":"Discovery","member_count":2}
	]`, string(body))
}

func TestCustomerStatus_NotFound(t *testing.T) {
	app := setupApp(t)

	resp, _ := do(t, app, http.MethodGet, "/api/loyalty/customers/missing/status", "")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCalendarMonth(t *testing.T) {
	app := setupApp(t)

	resp, body := do(t, app, http.MethodGet, "/api/calendar/month", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var grid struct {
		Date   string           `json:"date"`
		View   string           `json:"view"`
		Source string           `json:"source"`
		Cells  []map[string]any `json:"cells"`
	}
	require.NoError(t, json.Unmarshal(body, &grid))
	assert.Equal(t, "2024-05-10", grid.Date)
	assert.Equal(t, "activities", grid.Source)
	assert.Len(t, grid.Cells, 42)
}

func TestReservationLifecycle(t *testing.T) {
	app := setupApp(t)

	resp, body := do(t, app, http.MethodPost, "/api/reservations",
		`{"customer_name":"Dana Scully","date":"2024-05-10","time":"19:30","party_size":2}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var created map[string]any
	require.NoError(t, json.Unmarshal(body, &created))
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Pending", created["status"])

	resp, _ = do(t, app, http.MethodPatch, "/api/reservations/"+id+"/status", `{"status":"Confirmed"}`)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = do(t, app, http.MethodGet, "/api/reservations/today", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Dana Scully")
}

func TestUpdateActivity(t *testing.T) {
	app := setupApp(t)

	resp, body := do(t, app, http.MethodPut, "/api/activities/act4",
		`{"title":"Local Band Night","date":"2024-05-20","start_time":"21:30","target_audience":"Silver","color":"purple"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = do(t, app, http.MethodGet, "/api/calendar/month?date=2024-05-20", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"color":"purple"`)

	resp, _ = do(t, app, http.MethodPut, "/api/activities/missing",
		`{"title":"x","date":"2024-05-20","target_audience":"All","color":"blue"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReservationUpdateAndDelete(t *testing.T) {
	app := setupApp(t)

	resp, body := do(t, app, http.MethodPut, "/api/reservations/res3",
		`{"customer_name":"Charlie Davis","date":"2024-05-11","time":"20:30","party_size":4,"table_number":9}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var updated map[string]any
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "2024-05-11", updated["date"])
	assert.Equal(t, "Pending", updated["status"], "an empty status keeps the current one")
	assert.EqualValues(t, 9, updated["table_number"])

	resp, _ = do(t, app, http.MethodPut, "/api/reservations/res3",
		`{"customer_name":"Charlie Davis","date":"2024-05-11","time":"20:30","party_size":4,"activity_id":"act99"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, app, http.MethodDelete, "/api/reservations/res3", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = do(t, app, http.MethodGet, "/api/reservations", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, string(body), `"id":"res3"`)

	resp, _ = do(t, app, http.MethodDelete, "/api/reservations/res3", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCampaignTemplateLifecycle(t *testing.T) {
	app := setupApp(t)

	resp, body := do(t, app, http.MethodGet, "/api/campaigns/templates", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var templates []map[string]any
	require.NoError(t, json.Unmarshal(body, &templates))
	assert.Len(t, templates, 6)

	resp, body = do(t, app, http.MethodPost, "/api/campaigns/templates",
		`{"name":"Final Watch Party","channel":"WhatsApp","whatsapp_template_name":"final_party","content":"Join us","activity_id":"act1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var created map[string]any
	require.NoError(t, json.Unmarshal(body, &created))
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "2024-05-10", created["created_at"])

	resp, body = do(t, app, http.MethodPut, "/api/campaigns/templates/"+id,
		`{"name":"Final Watch Party","channel":"Email","subject":"Final tonight","content":"Join us"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var updated map[string]any
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "2024-05-10", updated["created_at"])
	assert.Equal(t, "Final tonight", updated["subject"])
	assert.NotContains(t, updated, "whatsapp_template_name")

	resp, body = do(t, app, http.MethodPost, "/api/campaigns/templates",
		`{"name":"Orphan","channel":"Email","subject":"x","content":"x","activity_id":"act99"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, string(body))

	resp, _ = do(t, app, http.MethodDelete, "/api/campaigns/templates/"+id, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, app, http.MethodDelete, "/api/campaigns/templates/"+id, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUnknownRoute(t *testing.T) {
	app := setupApp(t)

	resp, _ := do(t, app, http.MethodGet, "/api/unknown", "")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
