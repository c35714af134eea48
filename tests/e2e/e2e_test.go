package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cabinrentals/internal/availability"
	"cabinrentals/internal/database"
	"cabinrentals/internal/modules/calendar"
	"cabinrentals/internal/modules/catalog"
	syncmod "cabinrentals/internal/modules/sync"
	"cabinrentals/internal/repository"
	"cabinrentals/internal/streamline"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testCabinID      = "11111111-1111-1111-1111-111111111111"
	testCabinSlug    = "bear-ridge-lodge"
	testCalendarID   = int64(1)
	testStreamlineID = int64(100101)
)

type E2ETestSuite struct {
	router *gin.Engine
	db     *gorm.DB
	pms    *httptest.Server
}

type TestResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorDetail    `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// fakeStreamline answers every JSON-RPC call with one blocked stay for the
// test unit: June 10-12, 2026.
func fakeStreamline() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Params map[string]interface{} `json:"params"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)

		unitID, _ := payload.Params["unit_id"].(float64)
		if int64(unitID) != testStreamlineID {
			w.Write([]byte(`{"status": {"code": 5, "description": "The property/unit id was not found"}}`))
			return
		}
		w.Write([]byte(`{
			"status": {"code": 0},
			"data": {"blocked_period": [
				{"startdate": "06/10/2026", "enddate": "06/12/2026"}
			]}
		}`))
	}))
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	require.NoError(t, repository.AutoMigrate(db))
	seedData(t, db)

	mappingRepo := repository.NewMappingRepository(db)
	stateRepo := repository.NewStateRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	rateRepo := repository.NewRateRepository(db)
	cabinRepo := repository.NewCabinRepository(db)

	pms := fakeStreamline()
	t.Cleanup(pms.Close)

	client, err := streamline.New(pms.URL, "test-key", "test-secret", 5*time.Second)
	require.NoError(t, err)

	syncService := availability.NewService(client, mappingRepo, calendarRepo, availability.ServiceConfig{
		Year: 2026,
	})

	calendarService := calendar.NewService(mappingRepo, stateRepo, calendarRepo, rateRepo, cabinRepo)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	calendar.NewHandler(calendarService).RegisterRoutes(v1)
	catalog.NewHandler(cabinRepo).RegisterRoutes(v1)
	syncmod.NewHandler(syncService).RegisterRoutes(v1)

	return &E2ETestSuite{router: r, db: db, pms: pms}
}

func seedData(t *testing.T, db *gorm.DB) {
	states := []struct {
		sid         int
		cssClass    string
		label       string
		weight      int
		isAvailable bool
	}{
		{5, "cal-available", "Available", 0, true},
		{6, "cal-in", "Check-in", 1, false},
		{7, "cal-out", "Check-out", 2, false},
		{8, "cal-inout", "Turn-around", 3, false},
		{9, "cal-booked", "Booked", 4, false},
	}
	for _, s := range states {
		err := db.Exec(
			"INSERT INTO availability_calendar_state (sid, css_class, label, weight, is_available) VALUES (?, ?, ?, ?, ?)",
			s.sid, s.cssClass, s.label, s.weight, s.isAvailable,
		).Error
		require.NoError(t, err)
	}

	now := time.Now().UTC()
	err := db.Exec(
		"INSERT INTO cabins (id, name, cabin_slug, status, streamline_id, bedrooms, bathrooms, sleeps, created_at, updated_at) VALUES (?, 'Bear Ridge Lodge', ?, 'published', ?, 3, 2, 8, ?, ?)",
		testCabinID, testCabinSlug, testStreamlineID, now, now,
	).Error
	require.NoError(t, err)

	err = db.Exec(
		"INSERT INTO cabin_calendar_mapping (cabin_id, calendar_id, streamline_id) VALUES (?, ?, ?)",
		testCabinID, testCalendarID, testStreamlineID,
	).Error
	require.NoError(t, err)

	for d := 1; d <= 30; d++ {
		date := fmt.Sprintf("2026-06-%02d", d)
		err = db.Exec(
			"INSERT INTO daily_rates (id, cabin_id, streamline_id, date, daily_rate, created_at) VALUES (?, ?, ?, ?, 249.0, ?)",
			"rate-"+date, testCabinID, testStreamlineID, date, now,
		).Error
		require.NoError(t, err)
	}
}

func (s *E2ETestSuite) request(t *testing.T, method, path string) (*httptest.ResponseRecorder, TestResponse) {
	req, err := http.NewRequest(method, path, nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "Response is not valid JSON: %s", w.Body.String())
	return w, resp
}

func TestCalendarStates(t *testing.T) {
	s := setupTestSuite(t)

	w, resp := s.request(t, http.MethodGet, "/api/v1/calendar/states")
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)

	var states []map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &states))
	require.Len(t, states, 5)
	assert.Equal(t, "cal-available", states[0]["css_class"])
	assert.Equal(t, "cal-booked", states[4]["css_class"])
}

func TestCabinCatalog(t *testing.T) {
	s := setupTestSuite(t)

	w, resp := s.request(t, http.MethodGet, "/api/v1/cabins")
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)

	var list struct {
		Cabins []struct {
			ID   string `json:"id"`
			Slug string `json:"cabin_slug"`
		} `json:"cabins"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	require.Len(t, list.Cabins, 1)
	assert.Equal(t, testCabinID, list.Cabins[0].ID)
	assert.Equal(t, 1, list.Pagination.Total)

	w, _ = s.request(t, http.MethodGet, "/api/v1/cabins/"+testCabinID)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.request(t, http.MethodGet, "/api/v1/cabins/slug/"+testCabinSlug)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp = s.request(t, http.MethodGet, "/api/v1/cabins/00000000-0000-0000-0000-000000000000")
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestSyncThenCalendar(t *testing.T) {
	s := setupTestSuite(t)

	w, resp := s.request(t, http.MethodPost, "/api/v1/sync/availability")
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)

	var sync struct {
		Summary availability.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &sync))
	assert.Equal(t, 1, sync.Summary.Total)
	assert.Equal(t, 1, sync.Summary.Successful)
	assert.Equal(t, 4, sync.Summary.Inserted)

	// June 10-12 blocked means check-in on the 10th, booked nights, and a
	// check-out on the 13th.
	w, resp = s.request(t, http.MethodGet, "/api/v1/calendar/cabin/"+testCabinID+"?start_date=2026-06-01&months=1")
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)

	var cal struct {
		CalendarID int64 `json:"calendar_id"`
		Months     []struct {
			Year         int `json:"year"`
			MonthNumber  int `json:"month"`
			Availability map[string]struct {
				SID   int `json:"sid"`
				State struct {
					CSSClass string `json:"css_class"`
				} `json:"state"`
			} `json:"availability"`
			Rates map[string]struct {
				DailyRate float64 `json:"daily_rate"`
			} `json:"rates"`
		} `json:"months"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &cal))
	assert.Equal(t, testCalendarID, cal.CalendarID)
	require.Len(t, cal.Months, 1)

	june := cal.Months[0]
	assert.Equal(t, 2026, june.Year)
	assert.Equal(t, 6, june.MonthNumber)
	require.Len(t, june.Availability, 4)
	assert.Equal(t, 6, june.Availability["2026-06-10"].SID)
	assert.Equal(t, "cal-in", june.Availability["2026-06-10"].State.CSSClass)
	assert.Equal(t, 9, june.Availability["2026-06-11"].SID)
	assert.Equal(t, 9, june.Availability["2026-06-12"].SID)
	assert.Equal(t, 7, june.Availability["2026-06-13"].SID)

	// Dates outside the blocked stay have no row: available by absence.
	_, open := june.Availability["2026-06-09"]
	assert.False(t, open)

	assert.Len(t, june.Rates, 30)
	assert.Equal(t, 249.0, june.Rates["2026-06-10"].DailyRate)
}

func TestSyncIsIdempotent(t *testing.T) {
	s := setupTestSuite(t)

	w, _ := s.request(t, http.MethodPost, "/api/v1/sync/availability")
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := s.request(t, http.MethodPost, "/api/v1/sync/availability")
	require.Equal(t, http.StatusOK, w.Code)

	var sync struct {
		Summary availability.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &sync))
	assert.Equal(t, 1, sync.Summary.Successful)
	assert.Equal(t, 0, sync.Summary.Inserted)
	assert.Equal(t, 0, sync.Summary.Updated)
}

func TestCalendarBySlugAndErrors(t *testing.T) {
	s := setupTestSuite(t)

	w, _ := s.request(t, http.MethodGet, "/api/v1/calendar/cabin-slug/"+testCabinSlug+"?start_date=2026-06-01&months=1&include_rates=false")
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp := s.request(t, http.MethodGet, "/api/v1/calendar/cabin-slug/no-such-cabin")
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, resp.Error)

	w, resp = s.request(t, http.MethodGet, "/api/v1/calendar/cabin/"+testCabinID+"?months=13")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_MONTHS", resp.Error.Code)
}
