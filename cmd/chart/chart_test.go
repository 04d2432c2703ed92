package chart_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"fjacquet/lendtrack/cmd/chart"
	"fjacquet/lendtrack/cmd/root"
	"fjacquet/lendtrack/internal/config"
	"fjacquet/lendtrack/internal/container"
	"fjacquet/lendtrack/internal/logging"
	"fjacquet/lendtrack/internal/models"
	"fjacquet/lendtrack/internal/report"
	"fjacquet/lendtrack/internal/store"
	"fjacquet/lendtrack/internal/timeseries"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.April, 15, 9, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newEnv(t *testing.T, format report.Format) *root.Env {
	t.Helper()
	paid := decimal.NewFromInt(100)
	snap := &store.Snapshot{
		Contacts: []models.Contact{{ID: "c1", Name: "Asha"}},
		Transactions: []models.Obligation{
			{
				ID: "t1", Direction: models.DirectionLending, ContactID: "c1", Currency: "INR",
				Principal: decimal.NewFromInt(1000), InterestRate: decimal.NewFromInt(24),
				StartDate: day(2024, time.January, 15), Status: models.StatusActive,
				Activities: []models.Activity{
					{ID: "a1", Type: models.ActivityPayment, Amount: &paid, CreatedAt: day(2024, time.February, 20)},
				},
			},
			{
				ID: "t2", Direction: models.DirectionBorrowing, ContactID: "c1", Currency: "INR",
				Principal: decimal.NewFromInt(500), InterestRate: decimal.NewFromInt(12),
				StartDate: day(2024, time.March, 15), Status: models.StatusActive,
			},
		},
	}
	c, err := container.NewContainer(config.Default(),
		container.WithStore(&store.MockStore{Snapshot: snap}),
		container.WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)
	return root.NewEnv(c, format, now)
}

func TestChartCommand_Metadata(t *testing.T) {
	assert.Equal(t, "chart", chart.Cmd.Use)
	assert.Contains(t, chart.Cmd.Short, "time buckets")
	assert.NotNil(t, chart.Cmd.RunE)
	assert.Contains(t, chart.Cmd.Flags().Lookup("granularity").Usage, "day, week, month, year")
}

func TestChartCommand_Flags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{"granularity", "g", "month"},
		{"start", "s", ""},
		{"end", "e", ""},
		{"preset", "p", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := chart.Cmd.Flags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.defValue, flag.DefValue)
		})
	}
	assert.Contains(t, chart.Cmd.Flags().Lookup("preset").Usage, "last-30-days")
}

func TestRun_MonthlyCSV(t *testing.T) {
	var buf bytes.Buffer
	err := chart.Run(newEnv(t, report.FormatCSV), &buf, chart.Options{
		Granularity: "month", Start: "2024-01-01", End: "2024-03-31",
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "2024-01-01T00:00:00Z,Jan 2024,1000.00,0.00,0.00,0.00,1000.00", lines[1])
	assert.Equal(t, "2024-02-01T00:00:00Z,Feb 2024,0.00,0.00,100.00,0.00,900.00", lines[2])
	assert.Equal(t, "2024-03-01T00:00:00Z,Mar 2024,0.00,500.00,0.00,0.00,400.00", lines[3])
}

func TestRun_PresetJSON(t *testing.T) {
	var buf bytes.Buffer
	err := chart.Run(newEnv(t, report.FormatJSON), &buf, chart.Options{Granularity: "year", Preset: "all-time"})
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Len(t, got, 1)
}

func TestFrame(t *testing.T) {
	env := newEnv(t, report.FormatTable)

	frame, err := chart.Frame(env, chart.Options{Granularity: "week", Start: "2024-01-01", End: "2024-01-31"})
	require.NoError(t, err)
	assert.Equal(t, timeseries.Week, frame.Granularity)
	assert.Equal(t, day(2024, time.January, 1), frame.Start)
	assert.Equal(t, 23, frame.End.Hour())

	frame, err = chart.Frame(env, chart.Options{Granularity: "day", Preset: "today"})
	require.NoError(t, err)
	assert.Equal(t, day(2024, time.April, 15), frame.Start)

	errorCases := []struct {
		name string
		opts chart.Options
	}{
		{"bad granularity", chart.Options{Granularity: "fortnight", Preset: "today"}},
		{"bad preset", chart.Options{Granularity: "month", Preset: "someday"}},
		{"preset with range", chart.Options{Granularity: "month", Preset: "today", Start: "2024-01-01"}},
		{"missing end", chart.Options{Granularity: "month", Start: "2024-01-01"}},
		{"bad start", chart.Options{Granularity: "month", Start: "first", End: "2024-01-31"}},
		{"bad end", chart.Options{Granularity: "month", Start: "2024-01-01", End: "last"}},
		{"inverted", chart.Options{Granularity: "month", Start: "2024-02-01", End: "2024-01-01"}},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := chart.Frame(env, tc.opts)
			assert.Error(t, err)
		})
	}
}
