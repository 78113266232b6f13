package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ramosdigital/contact-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegramNotify(t *testing.T) {
	var got telegramMessage
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	svc := NewTelegramService("123:abc", "42")
	svc.baseURL = server.URL

	sub := &models.ContactSubmission{
		Name:    "Ana <b>Silva</b>",
		Email:   "ana@example.com",
		Type:    "auditoria",
		Message: "Preciso de uma auditoria & revisão",
	}
	require.NoError(t, svc.Notify(context.Background(), sub))

	assert.Equal(t, "/bot123:abc/sendMessage", path)
	assert.Equal(t, "42", got.ChatID)
	assert.Equal(t, "HTML", got.ParseMode)
	assert.Contains(t, got.Text, "Auditoria Técnica")
	assert.Contains(t, got.Text, "Ana &lt;b&gt;Silva&lt;/b&gt;")
	assert.Contains(t, got.Text, "auditoria &amp; revisão")
}

func TestTelegramNotifyTruncatesLongMessages(t *testing.T) {
	var got telegramMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	svc := NewTelegramService("123:abc", "42")
	svc.baseURL = server.URL

	sub := &models.ContactSubmission{
		Name:    strings.Repeat("N", 100),
		Email:   "ana@example.com",
		Type:    "projeto",
		Message: strings.Repeat("ã", 5000),
	}
	require.NoError(t, svc.Notify(context.Background(), sub))

	assert.LessOrEqual(t, utf8.RuneCountInString(got.Text), 4096)
	assert.True(t, strings.HasSuffix(got.Text, "…"))
	assert.Contains(t, got.Text, strings.Repeat("ã", telegramMessageRunes-1))
	assert.NotContains(t, got.Text, strings.Repeat("ã", telegramMessageRunes))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "curta", truncateRunes("curta", 10))
	assert.Equal(t, "olá…", truncateRunes("olá mundo", 4))
}

func TestTelegramNotifyErrors(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		svc := NewTelegramService("", "42")
		assert.False(t, svc.Enabled())
		err := svc.Notify(context.Background(), &models.ContactSubmission{})
		assert.True(t, errors.Is(err, ErrNotConfigured))
	})

	t.Run("api error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		svc := NewTelegramService("token", "42")
		svc.baseURL = server.URL
		err := svc.Notify(context.Background(), &models.ContactSubmission{Type: "outro"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "400")
	})
}

func TestRecaptchaVerifyToken(t *testing.T) {
	tests := []struct {
		name     string
		response string
		minScore float64
		wantOK   bool
	}{
		{"human", `{"success":true,"score":0.9}`, 0.5, true},
		{"low score", `{"success":true,"score":0.2}`, 0.5, false},
		{"failed", `{"success":false,"error-codes":["invalid-input-response"]}`, 0.5, false},
		{"malformed", `not json`, 0.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, r.ParseForm())
				assert.Equal(t, "secret", r.PostForm.Get("secret"))
				assert.Equal(t, "tok", r.PostForm.Get("response"))
				_, _ = w.Write([]byte(tt.response))
			}))
			defer server.Close()

			svc := NewRecaptchaService("secret")
			svc.verifyURL = server.URL

			ok, err := svc.VerifyToken(context.Background(), "tok", tt.minScore)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRecaptchaRequiresToken(t *testing.T) {
	svc := NewRecaptchaService("secret")
	ok, err := svc.VerifyToken(context.Background(), "", 0.5)
	assert.False(t, ok)
	assert.Error(t, err)

	ok, err = NewRecaptchaService("").VerifyToken(context.Background(), "tok", 0.5)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, ErrNotConfigured))
}
