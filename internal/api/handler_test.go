package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fjacquet/lendtrack/internal/dashboard"
	"fjacquet/lendtrack/internal/logging"
	"fjacquet/lendtrack/internal/models"
	"fjacquet/lendtrack/internal/service"
	"fjacquet/lendtrack/internal/store"
	"fjacquet/lendtrack/internal/timeseries"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestRouter(t *testing.T, st store.SnapshotStore) (http.Handler, *logging.MockLogger) {
	t.Helper()
	logger := logging.NewMockLogger()
	ledger := service.NewLedgerService(st, timeseries.NewAggregator(),
		dashboard.NewBuilder(dashboard.DefaultOptions(), logger), models.ConventionPercentage, logger)
	h := NewHandler(ledger, logger, func() time.Time { return fixedNow })
	return NewRouter(h), logger
}

func sampleStore() *store.MockStore {
	amount := decimal.NewFromInt(100)
	one := 1
	return &store.MockStore{Snapshot: &store.Snapshot{
		Contacts: []models.Contact{{ID: "c1", Name: "Asha"}, {ID: "c2", Name: "Ravi", Disabled: true}},
		Transactions: []models.Obligation{{
			ID: "t1", Direction: models.DirectionLending, ContactID: "c1", Currency: "INR",
			Principal: decimal.NewFromInt(1000), InterestRate: decimal.NewFromInt(24),
			StartDate: day(2024, time.January, 15), Status: models.StatusActive,
			Activities: []models.Activity{
				{ID: "a1", Type: models.ActivityPayment, Amount: &amount, InterestMonths: &one, CreatedAt: day(2024, time.February, 20)},
				{ID: "a2", Type: models.ActivityComment, Content: "ok", CreatedAt: day(2024, time.March, 1)},
			},
		}},
	}}
}

func get(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body map[string]interface{}
	if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHealth(t *testing.T) {
	h, logger := newTestRouter(t, sampleStore())

	rec, body := get(t, h, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "ok", body["status"])
	assert.True(t, logger.HasEntry("DEBUG", "Handled request"))
}

func TestTotals(t *testing.T) {
	h, _ := newTestRouter(t, sampleStore())

	rec, body := get(t, h, "/transactions/t1/totals")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "t1", body["id"])
	assert.Equal(t, "Asha", body["contact_name"])
	assert.Equal(t, "100", body["paid"])
	assert.EqualValues(t, 2, body["pending_months"])
	assert.Equal(t, "40", body["pending_interest"])

	rec, body = get(t, h, "/transactions/t1/totals?as_of=2024-02-15")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2024-02-15T00:00:00Z", body["as_of"])
	assert.EqualValues(t, 0, body["pending_months"])
}

func TestTotals_Errors(t *testing.T) {
	h, _ := newTestRouter(t, sampleStore())

	rec, body := get(t, h, "/transactions/nope/totals")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, body["error"], "nope")

	rec, _ = get(t, h, "/transactions/t1/totals?as_of=yesterday-ish")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestActivities(t *testing.T) {
	h, _ := newTestRouter(t, sampleStore())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/transactions/t1/activities", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var acts []models.Activity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &acts))
	require.Len(t, acts, 2)
	assert.Equal(t, "a2", acts[0].ID)
}

func TestTransactions_Filtered(t *testing.T) {
	h, _ := newTestRouter(t, sampleStore())

	tests := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"?type=lending&status=active&contact=Asha", 1},
		{"?contact=c1&contact=c2", 1},
		{"?type=borrowing", 0},
		{"?start=2024-02-01", 0},
		{"?end=2024-01-15", 1},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/transactions"+tt.query, nil))
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var totals []map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &totals))
			assert.Len(t, totals, tt.want)
		})
	}

	rec, _ := get(t, h, "/transactions?status=closed")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = get(t, h, "/transactions?contact=nobody")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHistory(t *testing.T) {
	h, _ := newTestRouter(t, sampleStore())

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"a2", "a1"}},
		{"?contact=asha&end=2024-02-20", []string{"a1"}},
		{"?start=2024-03-01", []string{"a2"}},
		{"?contact=c2", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/activities"+tt.query, nil))
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var feed []dashboard.RecentActivity
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
			got := make([]string, 0, len(feed))
			for _, r := range feed {
				got = append(got, r.Activity.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}

	rec, _ := get(t, h, "/activities?start=2024-04-01&end=2024-03-01")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChart(t *testing.T) {
	h, _ := newTestRouter(t, sampleStore())

	rec, body := get(t, h, "/chart?start=2024-01-01&end=2024-03-31&granularity=monthly")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "month", body["granularity"])
	buckets := body["buckets"].([]interface{})
	require.Len(t, buckets, 3)
	assert.Equal(t, "900", buckets[2].(map[string]interface{})["cumulative"])

	rec, body = get(t, h, "/chart?preset=all-time&granularity=week")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "2024-01-15T00:00:00Z", body["start"])
}

func TestChart_BadParameters(t *testing.T) {
	h, _ := newTestRouter(t, sampleStore())

	for _, target := range []string{
		"/chart",
		"/chart?start=2024-01-01",
		"/chart?start=2024-03-01&end=2024-01-01",
		"/chart?start=2024-01-01&end=2024-02-01&granularity=hourly",
		"/chart?preset=forever",
		"/chart?start=jan&end=2024-02-01",
	} {
		rec, body := get(t, h, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.NotEmpty(t, body["error"], target)
	}
}

func TestContactsAndPerformance(t *testing.T) {
	h, _ := newTestRouter(t, sampleStore())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/contacts", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var contacts []models.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &contacts))
	assert.Len(t, contacts, 1)

	rec, body := get(t, h, "/contacts/performance")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["contacts"], 2)
	assert.Len(t, body["timely"], 1)
	assert.Len(t, body["delayed"], 1)
}

func TestSummary(t *testing.T) {
	h, _ := newTestRouter(t, sampleStore())

	rec, body := get(t, h, "/dashboard/summary")
	require.Equal(t, http.StatusOK, rec.Code)
	summary := body["summary"].(map[string]interface{})
	assert.Equal(t, "1000", summary["total_lent"])
	assert.EqualValues(t, 1, summary["active_transactions"])
}

func TestStoreFailureIsInternalError(t *testing.T) {
	h, logger := newTestRouter(t, &store.MockStore{LoadError: assert.AnError})

	rec, _ := get(t, h, "/dashboard/summary")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Len(t, logger.GetEntriesByLevel("ERROR"), 1)
}

func TestMethodNotAllowed(t *testing.T) {
	h, _ := newTestRouter(t, sampleStore())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
