package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jackgraver/simple-track/config"
	"github.com/jackgraver/simple-track/middlewares"
	"github.com/jackgraver/simple-track/services"
)

var dbSeq atomic.Int64

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return SetupRouter(newTestDeps(t))
}

func newTestDeps(t *testing.T) Deps {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.GormConfig()
	cfg.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:routes%d?mode=memory&cache=shared", dbSeq.Add(1))), cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, config.Migrate(db))

	hub := services.NewRealtimeHub()
	meals := services.NewMealService(db)
	alerts := services.NewAlertService(db, hub)
	days := services.NewDayService(db, meals, alerts, services.GoalDefaults{Calories: 2000, Protein: 150, Fiber: 40})

	return Deps{
		Auth:    services.NewAuthService(db, []byte("test-secret")),
		Foods:   services.NewFoodService(db),
		Meals:   meals,
		Days:    days,
		Alerts:  alerts,
		Exports: services.NewExportService(days, nil),
		Hub:     hub,
	}
}

func do(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func login(t *testing.T, r http.Handler) string {
	t.Helper()
	w := do(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"email": "ana@example.com", "password": "longenough", "full_name": "Ana",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, r, http.MethodPost, "/auth/login", "", gin.H{"email": "ana@example.com", "password": "longenough"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out struct {
		Token string `json:"token"`
	}
	decode(t, w, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func TestDietRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/diet/foods", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodGet, "/diet/foods", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodPost, "/auth/login", "", gin.H{"email": "ana@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogMealAndReadToday(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r)

	var big, small struct {
		ID uint `json:"id"`
	}
	w := do(t, r, http.MethodPost, "/diet/foods", token, gin.H{"name": "Big", "unit": "g", "calories": 100, "protein": 10})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	decode(t, w, &big)
	w = do(t, r, http.MethodPost, "/diet/foods", token, gin.H{"name": "Small", "unit": "g", "calories": 50})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	decode(t, w, &small)

	w = do(t, r, http.MethodPost, "/diet/foods", token, gin.H{"name": "Big", "unit": "g"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodPost, "/diet/logs/meal", token, gin.H{
		"name": "Lunch",
		"items": []gin.H{
			{"food_id": big.ID, "amount": 2},
			{"food_id": small.ID, "amount": 1},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var dm struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	decode(t, w, &dm)
	assert.Equal(t, "actual", dm.Status)

	w = do(t, r, http.MethodGet, "/diet/logs/today", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var today struct {
		Summary services.DaySummary `json:"summary"`
	}
	decode(t, w, &today)
	assert.Equal(t, 250.0, today.Summary.Actual.Calories)
	assert.Equal(t, 20.0, today.Summary.Actual.Protein)
	assert.Equal(t, 0.0, today.Summary.Expected.Calories)
	require.Len(t, today.Summary.Day.Meals, 1)

	w = do(t, r, http.MethodPatch, fmt.Sprintf("/diet/logs/meals/%d", dm.ID), token, gin.H{"status": "expected"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, fmt.Sprintf("/diet/logs/days/%d/summary", today.Summary.Day.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sum services.DaySummary
	decode(t, w, &sum)
	assert.Equal(t, 0.0, sum.Actual.Calories)
	assert.Equal(t, 250.0, sum.Expected.Calories)

	w = do(t, r, http.MethodPatch, fmt.Sprintf("/diet/logs/meals/%d", dm.ID), token, gin.H{"status": "eaten"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorStatuses(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"missing food", http.MethodGet, "/diet/foods/404", nil, http.StatusNotFound},
		{"bad id", http.MethodGet, "/diet/foods/abc", nil, http.StatusBadRequest},
		{"missing meal", http.MethodGet, "/diet/meals/9", nil, http.StatusNotFound},
		{"bad date", http.MethodGet, "/diet/logs/day/2024-13-40", nil, http.StatusBadRequest},
		{"bad offset", http.MethodGet, "/diet/logs/today?offset=x", nil, http.StatusBadRequest},
		{"missing day", http.MethodGet, "/diet/logs/days/77/summary", nil, http.StatusNotFound},
		{"meal with unknown food", http.MethodPost, "/diet/meals", gin.H{"name": "x", "items": []gin.H{{"food_id": 5, "amount": 1}}}, http.StatusBadRequest},
		{"export disabled", http.MethodPost, "/diet/logs/export", nil, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, tt.method, tt.path, token, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())

			var body map[string]any
			decode(t, w, &body)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestDayByDateAndGoals(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r)

	w := do(t, r, http.MethodGet, "/diet/logs/day/2024-01-01", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var sum services.DaySummary
	decode(t, w, &sum)
	assert.Equal(t, 2000.0, sum.Day.Goals.Calories)

	w = do(t, r, http.MethodPut, fmt.Sprintf("/diet/logs/days/%d/goals", sum.Day.ID), token, gin.H{"calories": 1800, "protein": 120, "fiber": 30})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, "/diet/logs/day/2024-01-01", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &sum)
	assert.Equal(t, 1800.0, sum.Day.Goals.Calories)
	assert.Equal(t, 30.0, sum.Day.Goals.Fiber)
}

func TestRequestIDHeader(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/dates/format?date=2024-01-01", "", nil)
	assert.NotEmpty(t, w.Header().Get(middlewares.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/dates/format?date=2024-01-01", nil)
	req.Header.Set(middlewares.RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(middlewares.RequestIDHeader))
}

func TestFormatDateEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/dates/format?date=2025-09-21T10:00:00Z", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var out map[string]any
	decode(t, w, &out)
	assert.Equal(t, true, out["valid"])
	assert.Equal(t, "21st", out["short"])
	assert.Equal(t, "Sep 21st", out["with_month"])
	assert.Equal(t, "Sunday September 21st, 2025", out["long"])
	assert.Equal(t, "September", out["month"])
	assert.Equal(t, "Sunday", out["day_of_week"])

	w = do(t, r, http.MethodGet, "/dates/format?date=garbage", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &out)
	assert.Equal(t, false, out["valid"])
	assert.Equal(t, "Invalid Date", out["long"])

	w = do(t, r, http.MethodGet, "/dates/format?date=2025-09-21&tz=Not/AZone", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAlertsPushedOverWebsocket(t *testing.T) {
	deps := newTestDeps(t)
	srv := httptest.NewServer(SetupRouter(deps))
	defer srv.Close()
	token := login(t, srv.Config.Handler)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/diet/ws/alerts?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return deps.Hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	h := srv.Config.Handler
	var pizza struct {
		ID uint `json:"id"`
	}
	w := do(t, h, http.MethodPost, "/diet/foods", token, gin.H{"name": "Pizza", "unit": "slice", "calories": 300})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	decode(t, w, &pizza)

	w = do(t, h, http.MethodPost, "/diet/logs/meal", token, gin.H{
		"name":  "Whole pizza",
		"items": []gin.H{{"food_id": pizza.ID, "amount": 9}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev services.AlertEvent
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "alert.created", ev.Kind)
	require.NotNil(t, ev.Alert)
	assert.Equal(t, "calories_well_over_goal", ev.Alert.Code)

	w = do(t, h, http.MethodGet, "/diet/alerts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var alerts []map[string]any
	decode(t, w, &alerts)
	assert.Len(t, alerts, 1)
}
