package config

import (
	"errors"
	"testing"
	"time"

	"github.com/ramosdigital/contact-api/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "re_test")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ProviderResend, cfg.EmailProvider)
	assert.Equal(t, "martim@ramosdigital.pt", cfg.ContactOwnerEmail)
	assert.True(t, cfg.ContactSendConfirmation)
	assert.Equal(t, "pt", cfg.ContactDefaultLocale)
	assert.Equal(t, 10*time.Second, cfg.EmailSendTimeout)
	assert.Equal(t, int64(65536), cfg.MaxBodyBytes)
}

func TestParseAllowedOrigins(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "re_test")
	t.Setenv("ALLOWED_ORIGINS", "https://ramosdigital.pt, https://www.ramosdigital.pt")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://ramosdigital.pt", "https://www.ramosdigital.pt"}, cfg.AllowedOrigins)
}

func TestParseTrustedProxies(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "re_test")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Empty(t, cfg.TrustedProxies)

	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1,,::1")
	cfg, err = Parse()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1", "::1"}, cfg.TrustedProxies)
}

func TestParseRejectsInvalidCombinations(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "resend without key",
			env:  map[string]string{"EMAIL_PROVIDER": "resend"},
		},
		{
			name: "unknown provider",
			env:  map[string]string{"EMAIL_PROVIDER": "carrier-pigeon"},
		},
		{
			name: "log provider in production",
			env:  map[string]string{"EMAIL_PROVIDER": "log", "ENV": "production"},
		},
		{
			name: "bad owner address",
			env:  map[string]string{"EMAIL_PROVIDER": "log", "CONTACT_OWNER_EMAIL": "not an address"},
		},
		{
			name: "unsupported locale",
			env:  map[string]string{"EMAIL_PROVIDER": "log", "CONTACT_DEFAULT_LOCALE": "fr"},
		},
		{
			name: "telegram token without chat",
			env:  map[string]string{"EMAIL_PROVIDER": "log", "TELEGRAM_BOT_TOKEN": "123:abc"},
		},
		{
			name: "trusted proxy not an address",
			env:  map[string]string{"EMAIL_PROVIDER": "log", "TRUSTED_PROXIES": "10.0.0.0/8,proxy.internal"},
		},
		{
			name: "recaptcha score out of range",
			env:  map[string]string{"EMAIL_PROVIDER": "log", "RECAPTCHA_MIN_SCORE": "1.5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("RESEND_API_KEY", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Parse()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
			assert.True(t, errors.Is(err, logging.ErrInvalidConfig))
		})
	}
}

func TestLogConfigDefaultsFile(t *testing.T) {
	cfg := &Config{Environment: "production", LogLevel: "WARN"}
	logCfg := cfg.LogConfig()
	assert.Equal(t, "/app/logs/api.log", logCfg.File)
	assert.Equal(t, logging.LevelWarn, logCfg.Level)

	cfg = &Config{Environment: "development", LogLevel: "info", LogFile: "/tmp/contact.log"}
	assert.Equal(t, "/tmp/contact.log", cfg.LogConfig().File)
}
