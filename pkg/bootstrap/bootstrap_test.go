package bootstrap

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shared "github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"GOOGLE_CLOUD_PROJECT", "GCS_REPORT_BUCKET", "ENVIRONMENT", "ENABLE_PUBLISH", "ENABLE_PUSH"} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, shared.ProjectID, cfg.ProjectID)
	assert.Equal(t, shared.DefaultReportBucket, cfg.ReportBucket)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.EnablePublish)
	assert.False(t, cfg.EnablePush)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "huddle-prod")
	t.Setenv("GCS_REPORT_BUCKET", "reports-prod")
	t.Setenv("ENABLE_PUBLISH", "true")
	t.Setenv("ENABLE_PUSH", "true")
	t.Setenv("REPORT_THRESHOLDS_FILE", "/etc/huddle/thresholds.toml")

	cfg := LoadConfig()

	assert.Equal(t, "huddle-prod", cfg.ProjectID)
	assert.Equal(t, "reports-prod", cfg.ReportBucket)
	assert.True(t, cfg.EnablePublish)
	assert.True(t, cfg.EnablePush)
	assert.Equal(t, "/etc/huddle/thresholds.toml", cfg.ThresholdsFile)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestComponentHandler(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, GetSlogHandlerOptions(slog.LevelInfo))
	logger := slog.New(&ComponentHandler{Handler: handler}).With("component", "cycle")

	logger.Info("Created report cycle", "user_id", "u1")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "[cycle] Created report cycle", entry["message"])
	assert.Equal(t, "INFO", entry["severity"])
	assert.Equal(t, "u1", entry["user_id"])
}
