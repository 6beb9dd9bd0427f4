package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		config    *Config
		checkFunc func(t *testing.T, logger *Logger, output *bytes.Buffer)
	}{
		{
			name: "json format with debug level",
			config: &Config{
				Level:  "debug",
				Format: "json",
			},
			checkFunc: func(t *testing.T, logger *Logger, output *bytes.Buffer) {
				logger.Debug("resolving anchor", slog.String("job_id", "j-1"))

				var entry map[string]interface{}
				err := json.Unmarshal(output.Bytes(), &entry)
				require.NoError(t, err)

				assert.Equal(t, "DEBUG", entry["level"])
				assert.Equal(t, "resolving anchor", entry["msg"])
				assert.Equal(t, "j-1", entry["job_id"])
				assert.Contains(t, entry, "time")
			},
		},
		{
			name: "info level filters debug",
			config: &Config{
				Level:  "info",
				Format: "json",
			},
			checkFunc: func(t *testing.T, logger *Logger, output *bytes.Buffer) {
				logger.Debug("availability check")
				logger.Info("assignment created", slog.String("vehicle_id", "v-1"))

				lines := strings.Split(strings.TrimSpace(output.String()), "\n")
				assert.Len(t, lines, 1)

				var entry map[string]interface{}
				err := json.Unmarshal([]byte(lines[0]), &entry)
				require.NoError(t, err)

				assert.Equal(t, "INFO", entry["level"])
				assert.Equal(t, "assignment created", entry["msg"])
				assert.Equal(t, "v-1", entry["vehicle_id"])
			},
		},
		{
			name: "error level filters warn",
			config: &Config{
				Level:  "error",
				Format: "json",
			},
			checkFunc: func(t *testing.T, logger *Logger, output *bytes.Buffer) {
				logger.Warn("vehicle busy")
				logger.Error("commit failed", slog.String("job_id", "j-2"))

				lines := strings.Split(strings.TrimSpace(output.String()), "\n")
				assert.Len(t, lines, 1)

				var entry map[string]interface{}
				err := json.Unmarshal([]byte(lines[0]), &entry)
				require.NoError(t, err)

				assert.Equal(t, "ERROR", entry["level"])
				assert.Equal(t, "commit failed", entry["msg"])
			},
		},
		{
			name: "console format",
			config: &Config{
				Level:      "info",
				Format:     "console",
				TimeFormat: time.RFC3339,
			},
			checkFunc: func(t *testing.T, logger *Logger, output *bytes.Buffer) {
				logger.Info("day view built")

				// tint abbreviates the level to INF
				assert.Contains(t, output.String(), "INF")
				assert.Contains(t, output.String(), "day view built")
			},
		},
		{
			name: "source location enabled",
			config: &Config{
				Level:        "info",
				Format:       "json",
				EnableSource: true,
			},
			checkFunc: func(t *testing.T, logger *Logger, output *bytes.Buffer) {
				logger.Info("message with source")

				var entry map[string]interface{}
				err := json.Unmarshal(output.Bytes(), &entry)
				require.NoError(t, err)

				require.Contains(t, entry, "source")
				source := entry["source"].(map[string]interface{})
				assert.Contains(t, source, "file")
				assert.Contains(t, source, "line")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := &bytes.Buffer{}
			cfg := *tt.config
			cfg.writer = output

			logger, err := New(&cfg)
			require.NoError(t, err)
			require.NotNil(t, logger)

			tt.checkFunc(t, logger, output)
		})
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, parseLevel("info"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}

func TestWith(t *testing.T) {
	output := &bytes.Buffer{}
	logger, err := New(&Config{Level: "info", Format: "json", writer: output})
	require.NoError(t, err)

	logger.With("service", "dispatch").Info("ready")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(output.Bytes(), &entry))
	assert.Equal(t, "dispatch", entry["service"])
}
