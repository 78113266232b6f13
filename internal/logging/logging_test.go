package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerLevelThreshold(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, LevelWarn)

	logger.Debug("debug line")
	logger.Info("info line")
	logger.Warn("warn line")
	logger.Error("error line")

	out := buf.String()
	assert.NotContains(t, out, "debug line")
	assert.NotContains(t, out, "info line")
	assert.Contains(t, out, "warn line")
	assert.Contains(t, out, "error line")
}

func TestLogHTTPRequestDisabledByDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, LevelDebug)

	logger.LogHTTPRequest("POST", "/api/contact", "127.0.0.1", "req-1", 200, 17, "1ms")
	assert.Empty(t, buf.String())

	logger.LogHTTPError("POST", "/api/contact", "127.0.0.1", 502, "delivery failed", assert.AnError)
	assert.Contains(t, buf.String(), "delivery failed")
}

func TestRedactEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ana@example.com", "an***@example.com"},
		{"jo@example.com", "***@example.com"},
		{"not-an-email", "***@***"},
		{"", "***@***"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, RedactEmail(tt.in))
		})
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.File = "./logs/api.log"
	cfg.MaxSize = 0
	assert.Error(t, cfg.Validate())
}

func TestConfigureRejectsInvalidConfig(t *testing.T) {
	err := Configure(&Config{Level: "loud"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "logging")
}
