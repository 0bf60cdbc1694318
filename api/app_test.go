package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"gotraffic/adapters/llm"
	"gotraffic/internal/config"
	"gotraffic/internal/dataset"
)

const (
	testOrdersCSV = `order_id,advertiser_name,agency_name,order_date,start_date,end_date,order_total,station
WO-01001,Toyota Regional,MediaCom Northwest,2024-12-01,2025-01-01,2025-01-28,1900.00,KHQ-TV
`
	testSpotsCSV = `spot_id,order_id,air_date,air_time,daypart,program,length,rate,status,station
SP-100001,WO-01001,2025-01-10,20:15:00,PR,Prime Feature,30,800.00,aired,KHQ-TV
SP-100002,WO-01001,2025-01-11,20:30:00,PR,Prime Feature,30,600.00,makegood,KHQ-TV
SP-100003,WO-01001,2025-01-12,20:45:00,PR,Prime Feature,30,500.00,preempted,KHQ-TV
`
	testInventoryCSV = `date,daypart,station,total_avails,booked,remaining
2025-01-10,PR,KHQ-TV,10,9,1
2024-01-10,PR,KHQ-TV,10,7,3
`
)

func testApp(t *testing.T, chat llm.Client) *App {
	t.Helper()
	dir := t.TempDir()
	for name, body := range map[string]string{
		"orders.csv":    testOrdersCSV,
		"spots.csv":     testSpotsCSV,
		"inventory.csv": testInventoryCSV,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	cfg := config.Load()
	cfg.Data.Dir = dir
	if chat == nil {
		chat = &llm.MockClient{}
	}
	return NewApp(cfg, dataset.NewLoader(dir), chat)
}

func get(t *testing.T, app *App, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	rec := get(t, testApp(t, nil), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status     string          `json:"status"`
		Mode       string          `json:"mode"`
		DataStatus map[string]bool `json:"data_status"`
	}
	decode(t, rec, &body)
	assert.Equal(t, "healthy", body.Status)
	assert.True(t, body.DataStatus["orders.csv"])
}

func TestPipelineStatus(t *testing.T) {
	rec := get(t, testApp(t, nil), "/api/pipeline/status")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]int
	decode(t, rec, &body)
	assert.Equal(t, 3, body["sample_files"])
}

func TestStations(t *testing.T) {
	rec := get(t, testApp(t, nil), "/api/data/stations")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Stations []string `json:"stations"`
	}
	decode(t, rec, &body)
	assert.Equal(t, []string{"KHQ-TV"}, body.Stations)
}

func TestRevenueByDaypart(t *testing.T) {
	rec := get(t, testApp(t, nil), "/api/data/revenue-by-daypart")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		TotalCY float64 `json:"total_cy"`
	}
	decode(t, rec, &body)
	assert.Equal(t, 1400.0, body.TotalCY) // aired + makegood only

	rec = get(t, testApp(t, nil), "/api/data/revenue-by-daypart?station=KULR-TV")
	decode(t, rec, &body)
	assert.Equal(t, 0.0, body.TotalCY)
}

func TestAURTrends(t *testing.T) {
	rec := get(t, testApp(t, nil), "/api/data/aur-trends?granularity=quarterly")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Periods []string `json:"periods"`
	}
	decode(t, rec, &body)
	assert.Equal(t, []string{"2025Q1"}, body.Periods)
}

func TestTopAdvertisers(t *testing.T) {
	rec := get(t, testApp(t, nil), "/api/data/top-advertisers?limit=5")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Advertisers []struct {
			Name string `json:"name"`
		} `json:"advertisers"`
	}
	decode(t, rec, &body)
	assert.Len(t, body.Advertisers, 1)
	assert.Equal(t, "Toyota Regional", body.Advertisers[0].Name)
}

func TestSelloutRates(t *testing.T) {
	rec := get(t, testApp(t, nil), "/api/data/sellout-rates")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Dayparts []struct {
			Daypart string  `json:"daypart"`
			CYRate  float64 `json:"cy_rate"`
		} `json:"dayparts"`
	}
	decode(t, rec, &body)
	assert.Len(t, body.Dayparts, 8)
}

func TestMakegoodSummary(t *testing.T) {
	rec := get(t, testApp(t, nil), "/api/data/makegood-summary")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Stations []struct {
			Station   string `json:"station"`
			Preempted int    `json:"preempted"`
		} `json:"stations"`
	}
	decode(t, rec, &body)
	assert.Len(t, body.Stations, 1)
	assert.Equal(t, 1, body.Stations[0].Preempted)
}

func TestChat_MockEcho(t *testing.T) {
	app := testApp(t, &llm.MockClient{Response: "advisory answer"})

	req := httptest.NewRequest(http.MethodPost, "/chat",
		strings.NewReader(`{"message":"how is prime pacing?"}`))
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	decode(t, rec, &body)
	assert.Equal(t, "advisory answer", body["response"])
	assert.NotEmpty(t, body["request_id"])
}

func TestChat_RejectsEmptyMessage(t *testing.T) {
	app := testApp(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReport_HTMLAndMarkdown(t *testing.T) {
	app := testApp(t, nil)

	rec := get(t, app, "/api/report")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<table>")

	rec = get(t, app, "/api/report?format=md")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "# Revenue Report")
	assert.Contains(t, rec.Body.String(), "| Prime (PR) |")
}

func TestDataEndpoints_MissingDataset(t *testing.T) {
	cfg := config.Load()
	dir := t.TempDir()
	cfg.Data.Dir = dir
	app := NewApp(cfg, dataset.NewLoader(dir), &llm.MockClient{})

	rec := get(t, app, "/api/data/revenue-by-daypart")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
