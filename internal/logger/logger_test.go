package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer

	log := New(Config{Level: slog.LevelInfo, Format: "json", Writer: &buf})
	log.Info("tag resolved", "tag_key", "hero_image")

	out := buf.String()
	assert.Contains(t, out, `"msg":"tag resolved"`)
	assert.Contains(t, out, `"tag_key":"hero_image"`)
}

func TestNew_ProductionDefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer

	log := New(Config{Level: slog.LevelInfo, Environment: "production", Writer: &buf})
	log.Info("boot")

	assert.Contains(t, buf.String(), `"msg":"boot"`)
}

func TestPrettyHandler_Output(t *testing.T) {
	var buf bytes.Buffer

	log := New(Config{Level: slog.LevelDebug, Format: "pretty", Writer: &buf})
	log.Warn("type mismatch", "expected", "image", "actual", "document")

	out := buf.String()
	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, "type mismatch")
	assert.Contains(t, out, "expected=image")
	assert.Contains(t, out, "actual=document")
}

func TestPrettyHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	log := New(Config{Level: slog.LevelWarn, Format: "pretty", Writer: &buf})
	log.Debug("hidden")
	log.Error("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.input), tt.input)
	}
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer

	log := New(Config{Level: slog.LevelInfo, Format: "json", Writer: &buf})
	log.WithError(assert.AnError).Warn("registrar failed")

	assert.Contains(t, buf.String(), assert.AnError.Error())
}
