package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		format      string
		expectLevel logrus.Level
	}{
		{name: "debug level with text format", level: "debug", format: "text", expectLevel: logrus.DebugLevel},
		{name: "info level with json format", level: "info", format: "json", expectLevel: logrus.InfoLevel},
		{name: "upper case level", level: "WARN", format: "text", expectLevel: logrus.WarnLevel},
		{name: "invalid level defaults to info", level: "invalid", format: "text", expectLevel: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogrusAdapter(tt.level, tt.format)
			require.NotNil(t, logger)

			adapter, ok := logger.(*LogrusAdapter)
			require.True(t, ok, "logger should be a LogrusAdapter")
			assert.Equal(t, tt.expectLevel, adapter.logger.Level)

			if tt.format == "json" {
				_, ok := adapter.logger.Formatter.(*logrus.JSONFormatter)
				assert.True(t, ok, "formatter should be JSONFormatter")
			} else {
				_, ok := adapter.logger.Formatter.(*logrus.TextFormatter)
				assert.True(t, ok, "formatter should be TextFormatter")
			}
		})
	}
}

func TestWithOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusAdapter("info", "text", WithOutput(&buf))

	logger.Info("snapshot loaded", F(FieldCount, 3))
	assert.Contains(t, buf.String(), "snapshot loaded")
	assert.Contains(t, buf.String(), "count=3")
}

func TestLogrusAdapter_FieldsReachOutput(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewLogrusAdapter("debug", "json", WithOutput(&buf))

	adapter.WithField(FieldObligationID, "t1").
		WithError(errors.New("boom")).
		Info("computed totals", F(FieldConvention, "percentage"))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "computed totals", line["msg"])
	assert.Equal(t, "t1", line[FieldObligationID])
	assert.Equal(t, "percentage", line[FieldConvention])
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "info", line["level"])
}

func TestLogrusAdapter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewLogrusAdapter("warn", "text", WithOutput(&buf))

	adapter.Debug("hidden")
	adapter.Info("hidden too")
	assert.Empty(t, buf.String())

	adapter.Warn("visible")
	assert.Contains(t, buf.String(), "visible")
}
