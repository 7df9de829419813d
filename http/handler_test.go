package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ai-strategies/config"
	"ai-strategies/domain"
	"ai-strategies/repository"
	"ai-strategies/service"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestRouter(capacity int) *mux.Router {
	return newTestRouterWithAI(capacity, config.AIConfig{Timeout: time.Second})
}

func newTestRouterWithAI(capacity int, aiCfg config.AIConfig) *mux.Router {
	log := testLogger()
	rules := service.DefaultRules()
	cache := service.NewResultCache(repository.NewMemoryCache(), time.Minute, log)
	explainer := service.NewExplanationService(aiCfg, log)

	handlers := Handlers{
		Pricing:            NewPricingHandler(service.NewPricingService(rules, cache, log), explainer, log),
		ServiceImprovement: NewServiceImprovementHandler(service.NewServiceImprovementService(rules, cache, log), explainer, log),
		Maintenance:        NewMaintenanceHandler(service.NewMaintenanceService(rules, cache, log), explainer, log),
		Simulation:         NewSimulationHandler(service.NewSimulationService(rules, log), log),
	}
	return NewRouter(handlers, NewRateLimiter(capacity, time.Minute), log)
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPricingHandler_OK(t *testing.T) {
	router := newTestRouter(10)

	w := postJSON(t, router, "/api/v1/pricing", `{
		"demand": 150,
		"competitor_price": 80,
		"sensitivity": 1.2,
		"demand_threshold": 100
	}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp pricingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 165.0, resp.BasePrice)
	assert.Equal(t, 237.6, resp.DynamicPrice)
	assert.True(t, resp.HigherThanCompetitor)
	assert.Empty(t, resp.Explanation)
}

func TestPricingHandler_Explanation(t *testing.T) {
	router := newTestRouter(10)

	w := postJSON(t, router, "/api/v1/pricing?explain=true", `{"demand": 100, "competitor_price": 80, "sensitivity": 1.2}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp pricingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Base price $110.00, dynamic price $132.00. Higher than competitor by $52.00.", resp.Explanation)
}

func TestPricingHandler_SlowExplanationWithinWriteTimeout(t *testing.T) {
	llm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(300 * time.Millisecond):
		case <-r.Context().Done():
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"too late"}}]}`))
	}))
	defer llm.Close()

	router := newTestRouterWithAI(10, config.AIConfig{
		APIKey:  "test-key",
		APIURL:  llm.URL,
		Timeout: 100 * time.Millisecond,
	})
	srv := httptest.NewUnstartedServer(router)
	srv.Config.WriteTimeout = time.Second
	srv.Start()
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/v1/pricing?explain=true", "application/json",
		strings.NewReader(`{"demand": 100, "competitor_price": 80, "sensitivity": 1.2}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body pricingResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 132.0, body.DynamicPrice)
	assert.Equal(t, "Base price $110.00, dynamic price $132.00. Higher than competitor by $52.00.", body.Explanation)
}

func TestPricingHandler_ValidationError(t *testing.T) {
	router := newTestRouter(10)

	w := postJSON(t, router, "/api/v1/pricing", `{"demand": -5, "sensitivity": 1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "demand must be at least 0")
}

func TestPricingHandler_BadRequest(t *testing.T) {
	router := newTestRouter(10)

	w := postJSON(t, router, "/api/v1/pricing", `{invalid-json}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, router, "/api/v1/pricing", `{"demand": 1, "sensitivity": 1, "surprise": true}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPricingHandler_TrailingData(t *testing.T) {
	router := newTestRouter(10)

	for _, body := range []string{
		`{"demand": 1, "sensitivity": 1} garbage`,
		`{"demand": 1, "sensitivity": 1}{"demand": 2, "sensitivity": 1}`,
		`{"demand": 1, "sensitivity": 1}]`,
	} {
		w := postJSON(t, router, "/api/v1/pricing", body)
		require.Equal(t, http.StatusBadRequest, w.Code, body)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "unexpected data after JSON object")
	}

	w := postJSON(t, router, "/api/v1/pricing", "{\"demand\": 1, \"sensitivity\": 1}\n\t ")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMaintenanceHandler_BodyTooLarge(t *testing.T) {
	router := newTestRouter(10)

	body := `{"asset_name": "` + strings.Repeat("a", maxBodyBytes) + `", "failure_probability": 0.5, "failure_threshold": 0.7}`
	w := postJSON(t, router, "/api/v1/maintenance", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	body = `{"asset_name": "Pump", "failure_probability": 0.5, "failure_threshold": 0.7}` + strings.Repeat(" ", maxBodyBytes)
	w = postJSON(t, router, "/api/v1/maintenance", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestPricingHandler_UnsupportedMediaType(t *testing.T) {
	router := newTestRouter(10)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestPricingHandler_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(10)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pricing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestServiceImprovementHandler_OK(t *testing.T) {
	router := newTestRouter(10)

	w := postJSON(t, router, "/api/v1/service-improvement", `{
		"queries_per_day": 1000,
		"response_time": 30,
		"cost_per_query": 2.5,
		"satisfaction_pct": 70
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp serviceImprovementResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 6.0, resp.AIResponseTime)
	assert.Equal(t, 0.5, resp.AICost)
	assert.Equal(t, 85.0, resp.AISatisfaction)
	assert.Equal(t, 730000.0, resp.AnnualSavings)
}

func TestMaintenanceHandler_OK(t *testing.T) {
	router := newTestRouter(10)

	w := postJSON(t, router, "/api/v1/maintenance?explain=1", `{
		"asset_name": "Taxi 1",
		"failure_probability": 0.1,
		"days_since_maintenance": 61,
		"failure_threshold": 0.7,
		"downtime_cost_per_day": 400
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp maintenanceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.NeedsMaintenance)
	assert.Equal(t, domain.RecommendationSchedule, resp.Recommendation)
	assert.Equal(t, 40.0, resp.DowntimeRiskCost)
	assert.Contains(t, resp.Explanation, "Taxi 1")
}

func TestMaintenanceHandler_MissingAsset(t *testing.T) {
	router := newTestRouter(10)

	w := postJSON(t, router, "/api/v1/maintenance", `{"failure_probability": 0.5, "failure_threshold": 0.7}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSimulationHandler_OK(t *testing.T) {
	router := newTestRouter(10)

	w := postJSON(t, router, "/api/v1/simulation", `{
		"seed": 1,
		"days": 14,
		"base_demand": 120,
		"demand_volatility": 0.1,
		"competitor_price": 90,
		"sensitivity": 1.1,
		"asset_name": "Bus 3",
		"failure_threshold": 0.7,
		"downtime_cost_per_day": 800
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp domain.SimulationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Len(t, resp.Points, 14)
}

func TestRouter_RateLimit(t *testing.T) {
	router := newTestRouter(2)
	body := `{"demand": 100, "sensitivity": 1.2}`

	assert.Equal(t, http.StatusOK, postJSON(t, router, "/api/v1/pricing", body).Code)
	assert.Equal(t, http.StatusOK, postJSON(t, router, "/api/v1/pricing", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, postJSON(t, router, "/api/v1/pricing", body).Code)
}

func TestRouter_HealthAndRequestID(t *testing.T) {
	router := newTestRouter(1)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}
