package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heybabyy/internal/database"
	"heybabyy/internal/models"
	"heybabyy/internal/nutrition"
	"heybabyy/internal/repository"
	"heybabyy/internal/security"
	"heybabyy/internal/service"
)

func setupRouter(t *testing.T, rate int) *gin.Engine {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "handlers.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations(database.MigrationSource(""), nil))

	children := service.NewChildService(repository.NewChildRepository(db), nil)
	growthService := service.NewGrowthService(children, repository.NewGrowthRepository(db), nil)
	nutritionService := service.NewNutritionService(db, children, repository.NewDailyLogRepository(db),
		nutrition.NewEntryFactory(nil, nil), nil, nil)

	limiter := security.NewRateLimiter(rate, time.Minute)
	t.Cleanup(limiter.Stop)

	return NewRouter(NewHandler(children, growthService, nutritionService, nil), limiter)
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, req)
	return recorder
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), v), recorder.Body.String())
}

func TestHealth(t *testing.T) {
	r := setupRouter(t, 10)

	rec := doJSON(t, r, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestAnalyzeGrowth(t *testing.T) {
	r := setupRouter(t, 10)

	rec := doJSON(t, r, http.MethodPost, "/api/growth/analyze", gin.H{
		"sex": "boy", "age_months": 0, "weight_kg": 3.3464,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var analysis models.GrowthAnalysis
	decode(t, rec, &analysis)
	assert.InDelta(t, 0, analysis.ZScore, 0.01)
	assert.Equal(t, 50, analysis.Percentile)
	assert.Equal(t, models.GrowthNormal, analysis.Status)
	assert.Nil(t, analysis.LengthZScore)
}

func TestAnalyzeGrowthRejectsBadInput(t *testing.T) {
	r := setupRouter(t, 10)

	tests := []struct {
		name string
		body gin.H
	}{
		{"unknown sex", gin.H{"sex": "cat", "age_months": 3, "weight_kg": 6}},
		{"zero weight", gin.H{"sex": "girl", "age_months": 3, "weight_kg": 0}},
		{"negative age", gin.H{"sex": "girl", "age_months": -1, "weight_kg": 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, r, http.MethodPost, "/api/growth/analyze", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestZScoreDefaultsToWeight(t *testing.T) {
	r := setupRouter(t, 10)

	rec := doJSON(t, r, http.MethodPost, "/api/growth/zscore", gin.H{
		"sex": "boy", "age_months": 0, "value": 3.3464,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp zScoreResponse
	decode(t, rec, &resp)
	assert.InDelta(t, 3.3464, resp.LMS.M, 1e-9)
	assert.Equal(t, 50, resp.Percentile)
}

func TestZScoreRejectsBadAge(t *testing.T) {
	r := setupRouter(t, 10)

	rec := doJSON(t, r, http.MethodPost, "/api/growth/zscore", gin.H{
		"sex": "girl", "age_months": -2, "value": 5.0,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"field":"age_months"`)
}

func TestDriftAndSparkline(t *testing.T) {
	r := setupRouter(t, 10)
	series := gin.H{
		"sex": "boy",
		"measurements": []models.Measurement{
			{Month: 0, Weight: 3.3}, {Month: 1, Weight: 4.5}, {Month: 2, Weight: 5.0},
			{Month: 3, Weight: 5.3}, {Month: 4, Weight: 5.1},
		},
	}

	rec := doJSON(t, r, http.MethodPost, "/api/growth/drift", series)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var drift models.DriftResult
	decode(t, rec, &drift)
	assert.True(t, drift.HasDrift)

	rec = doJSON(t, r, http.MethodPost, "/api/growth/sparkline", series)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var line sparklineResponse
	decode(t, rec, &line)
	assert.Len(t, line.Points, 5)
	assert.Equal(t, models.TrendDown, line.Trend)
	assert.Equal(t, 5, len([]rune(line.ASCII)))
}

func TestPercentileCurves(t *testing.T) {
	r := setupRouter(t, 10)

	rec := doJSON(t, r, http.MethodGet, "/api/growth/curves?sex=girl&type=length&max_month=6", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Percentiles []models.PercentileLine `json:"percentiles"`
	}
	decode(t, rec, &resp)
	require.Len(t, resp.Percentiles, 5)
	assert.Equal(t, 3, resp.Percentiles[0].Percentile)
	assert.Len(t, resp.Percentiles[0].Data, 7)

	rec = doJSON(t, r, http.MethodGet, "/api/growth/curves?sex=girl&max_month=-1", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &resp)
	require.Len(t, resp.Percentiles, 5)
	assert.Empty(t, resp.Percentiles[0].Data)

	rec = doJSON(t, r, http.MethodGet, "/api/growth/curves?sex=girl&max_month=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGuidelines(t *testing.T) {
	r := setupRouter(t, 10)

	rec := doJSON(t, r, http.MethodGet, "/api/nutrition/guidelines?age_months=7", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp guidelinesResponse
	decode(t, rec, &resp)
	assert.True(t, resp.Guidelines.SolidsSafe)
	assert.NotEmpty(t, resp.Tips)

	rec = doJSON(t, r, http.MethodGet, "/api/nutrition/guidelines", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParseFreeTextStampsEntries(t *testing.T) {
	r := setupRouter(t, 10)

	rec := doJSON(t, r, http.MethodPost, "/api/nutrition/parse", gin.H{
		"text": "90ml formula, 2 wet", "age_months": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result models.ParseResult
	decode(t, rec, &result)
	require.Len(t, result.Feedings, 1)
	require.Len(t, result.Diapers, 2)
	assert.NotEmpty(t, result.Feedings[0].ID)
	assert.False(t, result.Feedings[0].Timestamp.IsZero())
	assert.Equal(t, 90.0, *result.Feedings[0].Quantity)
}

func TestParseFreeTextRateLimited(t *testing.T) {
	r := setupRouter(t, 1)
	body := gin.H{"text": "2 wet", "age_months": 1}

	first := doJSON(t, r, http.MethodPost, "/api/nutrition/parse", body)
	second := doJSON(t, r, http.MethodPost, "/api/nutrition/parse", body)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))

	// other endpoints are not throttled
	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, "/health", nil).Code)
}

func TestSummarizeAndTrends(t *testing.T) {
	r := setupRouter(t, 10)

	rec := doJSON(t, r, http.MethodPost, "/api/nutrition/summary", gin.H{
		"log":        models.DailyLog{Date: "2024-06-01"},
		"age_months": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var summary models.DailySummary
	decode(t, rec, &summary)
	assert.Equal(t, "2024-06-01", summary.Date)
	assert.NotEmpty(t, summary.Alerts)

	low := models.DailySummary{TotalFeedings: 8, WetDiapers: 3}
	rec = doJSON(t, r, http.MethodPost, "/api/nutrition/trends", gin.H{
		"summaries":  []models.DailySummary{low, low, low},
		"age_months": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var trends struct {
		Alerts []models.Alert `json:"alerts"`
	}
	decode(t, rec, &trends)
	require.Len(t, trends.Alerts, 1)
	assert.Equal(t, models.CategoryHydration, trends.Alerts[0].Category)
}

func TestJournalFlow(t *testing.T) {
	r := setupRouter(t, 10)

	rec := doJSON(t, r, http.MethodPost, "/api/children", gin.H{
		"name": "Ada", "sex": "girl", "birth_date": "2024-01-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var child models.Child
	decode(t, rec, &child)
	base := "/api/children/" + child.ID

	rec = doJSON(t, r, http.MethodPost, base+"/measurements", gin.H{"measured_on": "2024-01-01", "weight_kg": 3.2})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = doJSON(t, r, http.MethodPost, base+"/measurements", gin.H{"measured_on": "2024-02-01", "weight_kg": 4.2})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, r, http.MethodGet, base+"/growth", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var growthResult models.ChildGrowth
	decode(t, rec, &growthResult)
	require.NotNil(t, growthResult.Latest)
	assert.Equal(t, 4.2, growthResult.Latest.WeightKg)
	assert.NotNil(t, growthResult.Analysis)

	rec = doJSON(t, r, http.MethodPost, base+"/logs/2024-06-01/text", gin.H{"text": "120ml formula, 3 wet, 1 poop"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, r, http.MethodPost, base+"/logs/2024-06-01/feedings", gin.H{"type": "breast", "duration": 15})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, r, http.MethodPost, base+"/logs/2024-06-01/diapers", gin.H{"wet": false, "stool": false})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "a diaper must be wet or soiled")

	rec = doJSON(t, r, http.MethodGet, base+"/logs/2024-06-01", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var log models.DailyLog
	decode(t, rec, &log)
	assert.Len(t, log.Feedings, 2)
	assert.Len(t, log.Diapers, 4)
	assert.Len(t, log.FreeTextLogs, 1)

	rec = doJSON(t, r, http.MethodGet, base+"/logs/2024-06-01/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var summary summaryResponse
	decode(t, rec, &summary)
	assert.Equal(t, "Ada", summary.ChildName)
	assert.Equal(t, 2, summary.Summary.TotalFeedings)
	assert.Equal(t, 3, summary.Summary.WetDiapers)
	assert.Contains(t, summary.Text, "2024-06-01")

	rec = doJSON(t, r, http.MethodGet, base+"/trends?end=2024-06-01&days=3", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var report models.TrendReport
	decode(t, rec, &report)
	assert.Equal(t, "2024-05-30", report.From)
	assert.Len(t, report.Summaries, 3)

	rec = doJSON(t, r, http.MethodPost, base+"/logs/2024-06-01/digest", gin.H{"email": "parent@example.com"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code, "digest needs a configured sender")

	rec = doJSON(t, r, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = doJSON(t, r, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJournalRejectsDuplicateEntryID(t *testing.T) {
	r := setupRouter(t, 10)

	rec := doJSON(t, r, http.MethodPost, "/api/children", gin.H{
		"name": "Cleo", "sex": "girl", "birth_date": "2024-01-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var child models.Child
	decode(t, rec, &child)
	base := "/api/children/" + child.ID + "/logs/2024-06-01"

	feeding := gin.H{"id": "bottle-1", "type": "formula", "quantity": 90}
	rec = doJSON(t, r, http.MethodPost, base+"/feedings", feeding)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = doJSON(t, r, http.MethodPost, base+"/feedings", feeding)
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	diaper := gin.H{"id": "diaper-1", "wet": true}
	rec = doJSON(t, r, http.MethodPost, base+"/diapers", diaper)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = doJSON(t, r, http.MethodPost, base+"/diapers", diaper)
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

func TestJournalRejectsLogBeforeBirth(t *testing.T) {
	r := setupRouter(t, 10)

	rec := doJSON(t, r, http.MethodPost, "/api/children", gin.H{
		"name": "Ben", "sex": "boy", "birth_date": "2024-03-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var child models.Child
	decode(t, rec, &child)

	rec = doJSON(t, r, http.MethodPost, "/api/children/"+child.ID+"/logs/2024-02-01/text", gin.H{"text": "2 wet"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"date"`)
}

func TestUnknownChild(t *testing.T) {
	r := setupRouter(t, 10)

	rec := doJSON(t, r, http.MethodGet, "/api/children/missing/growth", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrChildNotFound)
}
