package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/larissa-mendes/sales-dashboard-api/services"
	"github.com/larissa-mendes/sales-dashboard-api/tests/testutil"
	"github.com/stretchr/testify/assert"
)

func setupAnalyticsRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	services.SetDataset(testutil.BuildFixtureDataset(t))

	router := gin.New()
	v1 := router.Group("/api/v1")
	analytics := v1.Group("/analytics")
	{
		analytics.GET("/summary", GetAnalyticsSummary)
		analytics.GET("/daily", GetDailyReport)
		analytics.GET("/categories", GetCategoryRanking)
		analytics.GET("/states", GetTopStates)
		analytics.GET("/matrix", GetCategoryStateMatrix)
		analytics.GET("/export", ExportAnalytics)
	}
	return router
}

func doJSON(t *testing.T, router *gin.Engine, url string) (int, map[string]interface{}) {
	t.Helper()

	req, _ := http.NewRequest("GET", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err, "Response should be valid JSON")
	return w.Code, response
}

func TestGetDailyReport(t *testing.T) {
	router := setupAnalyticsRouter(t)

	status, response := doJSON(t, router, "/api/v1/analytics/daily?start_date=2017-05-01&end_date=2017-05-03")

	assert.Equal(t, http.StatusOK, status)
	assert.True(t, response["success"].(bool))

	data := response["data"].(map[string]interface{})
	assert.Equal(t, false, data["no_data"])

	days := data["days"].([]interface{})
	assert.Len(t, days, 3)

	first := days[0].(map[string]interface{})
	assert.Equal(t, "2017-05-01", first["date"])
	assert.Equal(t, float64(100), first["total_amount"])
	assert.Nil(t, first["amount_delta"], "the first day's delta is null")

	second := days[1].(map[string]interface{})
	assert.Equal(t, float64(80), second["amount_delta"])
	assert.Equal(t, float64(2), second["transaction_count"])

	summary := data["summary"].(map[string]interface{})
	assert.Equal(t, float64(4), summary["total_transactions"])
	assert.Equal(t, float64(350), summary["total_amount"])
}

func TestGetDailyReportDefaultsToFullRange(t *testing.T) {
	router := setupAnalyticsRouter(t)

	status, response := doJSON(t, router, "/api/v1/analytics/daily")

	assert.Equal(t, http.StatusOK, status)
	data := response["data"].(map[string]interface{})
	assert.Len(t, data["days"].([]interface{}), 3)
}

func TestGetDailyReportDegenerateRange(t *testing.T) {
	router := setupAnalyticsRouter(t)

	status, response := doJSON(t, router, "/api/v1/analytics/daily?start_date=2017-05-03&end_date=2017-05-01")

	// A reversed range is empty, not an error
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, response["success"].(bool))

	data := response["data"].(map[string]interface{})
	assert.Equal(t, true, data["no_data"])
	assert.Empty(t, data["days"])
	assert.Nil(t, data["summary"])
}

func TestGetDailyReportValidation(t *testing.T) {
	router := setupAnalyticsRouter(t)

	tests := []struct {
		name string
		url  string
	}{
		{name: "Malformed start_date", url: "/api/v1/analytics/daily?start_date=yesterday&end_date=2017-05-03"},
		{name: "Malformed end_date", url: "/api/v1/analytics/daily?start_date=2017-05-01&end_date=03-05-2017"},
		{name: "start_date without end_date", url: "/api/v1/analytics/daily?start_date=2017-05-01"},
		{name: "end_date without start_date", url: "/api/v1/analytics/daily?end_date=2017-05-03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, response := doJSON(t, router, tt.url)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.False(t, response["success"].(bool))
			errObj := response["error"].(map[string]interface{})
			assert.Equal(t, "VALIDATION_ERROR", errObj["code"])
		})
	}
}

func TestGetAnalyticsSummary(t *testing.T) {
	router := setupAnalyticsRouter(t)

	status, response := doJSON(t, router, "/api/v1/analytics/summary?start_date=2017-05-01&end_date=2017-05-03")

	assert.Equal(t, http.StatusOK, status)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, false, data["no_data"])
	assert.Equal(t, float64(4), data["total_transactions"])
	assert.Equal(t, float64(350), data["total_amount"])
	assert.Equal(t, float64(180), data["max_amount"])
	assert.Equal(t, float64(70), data["min_amount"])

	most := data["most_bought_category"].(map[string]interface{})
	assert.Equal(t, "bed_bath_table", most["category"])
	assert.Equal(t, float64(3), most["count"])

	least := data["least_bought_category"].(map[string]interface{})
	assert.Equal(t, "sports_leisure", least["category"])
	assert.Equal(t, float64(1), least["count"])
}

func TestGetAnalyticsSummaryNoData(t *testing.T) {
	router := setupAnalyticsRouter(t)

	status, response := doJSON(t, router, "/api/v1/analytics/summary?start_date=2020-01-01&end_date=2020-01-31")

	assert.Equal(t, http.StatusOK, status)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, true, data["no_data"])
	assert.NotContains(t, data, "total_transactions")
}

func TestGetCategoryRanking(t *testing.T) {
	router := setupAnalyticsRouter(t)

	status, response := doJSON(t, router, "/api/v1/analytics/categories?start_date=2017-05-01&end_date=2017-05-03")

	assert.Equal(t, http.StatusOK, status)
	data := response["data"].(map[string]interface{})

	categories := data["categories"].([]interface{})
	assert.Len(t, categories, 3)

	top := categories[0].(map[string]interface{})
	assert.Equal(t, "bed_bath_table", top["category"])
	assert.Equal(t, float64(3), top["count"])

	nullBucket := categories[1].(map[string]interface{})
	assert.Nil(t, nullBucket["category"], "the unresolved bucket serializes as a null category")
	assert.Equal(t, float64(2), nullBucket["count"])
}

func TestGetCategoryRankingWithCategoryFilter(t *testing.T) {
	router := setupAnalyticsRouter(t)

	status, response := doJSON(t, router, "/api/v1/analytics/categories?category=sports_leisure")

	assert.Equal(t, http.StatusOK, status)
	data := response["data"].(map[string]interface{})
	categories := data["categories"].([]interface{})
	assert.Len(t, categories, 1)
	only := categories[0].(map[string]interface{})
	assert.Equal(t, "sports_leisure", only["category"])
}

func TestGetCategoryRankingEmptyStatusSet(t *testing.T) {
	router := setupAnalyticsRouter(t)

	// status present but empty: the predicate is in scope and rejects
	// every row
	status, response := doJSON(t, router, "/api/v1/analytics/categories?status=")

	assert.Equal(t, http.StatusOK, status)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, true, data["no_data"])
	assert.Empty(t, data["categories"])
}

func TestGetTopStates(t *testing.T) {
	router := setupAnalyticsRouter(t)

	status, response := doJSON(t, router, "/api/v1/analytics/states?start_date=2017-05-01&end_date=2017-05-03")

	assert.Equal(t, http.StatusOK, status)
	data := response["data"].(map[string]interface{})

	topStates := data["top_states"].([]interface{})
	assert.Len(t, topStates, 4)

	first := topStates[0].(map[string]interface{})
	assert.Equal(t, "bed_bath_table", first["category"])
	assert.Equal(t, "SP", first["state"])
	assert.Equal(t, float64(2), first["order_count"])
	assert.InDelta(t, 200.0/3, first["percentage"].(float64), 1e-9)
}

func TestGetCategoryStateMatrix(t *testing.T) {
	router := setupAnalyticsRouter(t)

	status, response := doJSON(t, router, "/api/v1/analytics/matrix?start_date=2017-05-01&end_date=2017-05-03")

	assert.Equal(t, http.StatusOK, status)
	data := response["data"].(map[string]interface{})
	matrix := data["matrix"].(map[string]interface{})

	states := matrix["states"].([]interface{})
	assert.Equal(t, []interface{}{"RJ", "SP"}, states)

	categories := matrix["categories"].([]interface{})
	assert.Len(t, categories, 3)
	assert.Equal(t, "bed_bath_table", categories[0])
	assert.Nil(t, categories[2])

	counts := matrix["counts"].([]interface{})
	spRow := counts[1].([]interface{})
	assert.Equal(t, []interface{}{float64(2), float64(0), float64(2)}, spRow)
}

func TestExportAnalytics(t *testing.T) {
	router := setupAnalyticsRouter(t)

	req, _ := http.NewRequest("GET", "/api/v1/analytics/export?start_date=2017-05-01&end_date=2017-05-03", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), services.ExportFilename)
	assert.NotEmpty(t, w.Body.Bytes())
}
