package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/ramosdigital/contact-api/internal/config"
	"github.com/ramosdigital/contact-api/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMessage() *Message {
	return &Message{
		From:    "Ramos Digital System <system@ramosdigital.pt>",
		To:      []string{"martim@ramosdigital.pt"},
		ReplyTo: "ana@example.com",
		Subject: "[LEAD] PROJETO - Ana Silva",
		Text:    "NOVA MENSAGEM DO SITE",
		Tags:    map[string]string{"kind": "notification"},
	}
}

// rewriteTransport sends every request to target, keeping path and query.
type rewriteTransport struct {
	target *url.URL
}

func (t rewriteTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.URL.Scheme = t.target.Scheme
	r.URL.Host = t.target.Host
	r.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(r)
}

func newResendTestSender(t *testing.T, handler http.HandlerFunc) *ResendSender {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	target, err := url.Parse(srv.URL)
	require.NoError(t, err)

	return NewResendSender("re_test", &http.Client{Transport: rewriteTransport{target: target}})
}

func TestMessageValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *Message)
	}{
		{"no sender", func(m *Message) { m.From = "" }},
		{"no recipients", func(m *Message) { m.To = nil }},
		{"no subject", func(m *Message) { m.Subject = "" }},
		{"no body", func(m *Message) { m.Text = ""; m.HTML = "" }},
	}

	require.NoError(t, testMessage().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := testMessage()
			tt.mutate(msg)
			assert.Error(t, msg.Validate())
		})
	}
}

func TestResendSenderSend(t *testing.T) {
	var received map[string]interface{}
	sender := newResendTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"49a3999c-0ce1-4ea6-ab68-afcd6dc2e794"}`))
	})

	result, err := sender.Send(context.Background(), testMessage())
	require.NoError(t, err)
	assert.Equal(t, "resend", result.Provider)
	assert.Equal(t, "49a3999c-0ce1-4ea6-ab68-afcd6dc2e794", result.MessageID)

	assert.Equal(t, "Ramos Digital System <system@ramosdigital.pt>", received["from"])
	assert.Equal(t, "[LEAD] PROJETO - Ana Silva", received["subject"])
	assert.Equal(t, []interface{}{"martim@ramosdigital.pt"}, received["to"])
}

func TestResendSenderAPIError(t *testing.T) {
	sender := newResendTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"Invalid to field"}`))
	})

	_, err := sender.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resend send failed")
}

func TestResendSenderRejectsInvalidMessage(t *testing.T) {
	called := false
	sender := newResendTestSender(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	msg := testMessage()
	msg.To = nil
	_, err := sender.Send(context.Background(), msg)
	require.Error(t, err)
	assert.False(t, called)
}

func newSESTestSender(t *testing.T, handler http.HandlerFunc) *SESSender {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := sesv2.New(sesv2.Options{
		Region:           "eu-west-1",
		Credentials:      credentials.NewStaticCredentialsProvider("AKIDTEST", "SECRETTEST", ""),
		BaseEndpoint:     aws.String(srv.URL),
		RetryMaxAttempts: 1,
	})
	return NewSESSenderFromClient(client)
}

func TestSESSenderSend(t *testing.T) {
	var payload map[string]interface{}
	sender := newSESTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v2/email/outbound-emails"))

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &payload))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"MessageId":"0102018f-ses-id"}`))
	})

	result, err := sender.Send(context.Background(), testMessage())
	require.NoError(t, err)
	assert.Equal(t, "ses", result.Provider)
	assert.Equal(t, "0102018f-ses-id", result.MessageID)

	assert.Equal(t, "Ramos Digital System <system@ramosdigital.pt>", payload["FromEmailAddress"])
	assert.Equal(t, []interface{}{"ana@example.com"}, payload["ReplyToAddresses"])
}

func TestSESSenderError(t *testing.T) {
	sender := newSESTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Amzn-ErrorType", "MessageRejected")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Email address is not verified."}`))
	})

	_, err := sender.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ses send failed")
}

func TestSESSenderSingleAttempt(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"internal failure"}`))
	}))
	defer srv.Close()

	sender, err := NewSESSender(context.Background(), "eu-west-1", "AKIDTEST", "SECRETTEST",
		func(o *sesv2.Options) { o.BaseEndpoint = aws.String(srv.URL) })
	require.NoError(t, err)

	_, err = sender.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	sender := NewLogSender(logging.NewWriterLogger(&buf, logging.LevelInfo))

	result, err := sender.Send(context.Background(), testMessage())
	require.NoError(t, err)
	assert.Equal(t, "log", result.Provider)
	assert.NotEmpty(t, result.MessageID)
	assert.Contains(t, buf.String(), "ma***@ramosdigital.pt")
	assert.NotContains(t, buf.String(), "martim@ramosdigital.pt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sender.Send(ctx, testMessage())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewSelectsProvider(t *testing.T) {
	logger := logging.NewWriterLogger(io.Discard, logging.LevelInfo)

	sender, err := New(context.Background(), &config.Config{EmailProvider: config.ProviderLog}, logger)
	require.NoError(t, err)
	assert.Equal(t, "log", sender.Name())

	sender, err = New(context.Background(), &config.Config{EmailProvider: config.ProviderResend, ResendAPIKey: "re_test"}, logger)
	require.NoError(t, err)
	assert.Equal(t, "resend", sender.Name())

	_, err = New(context.Background(), &config.Config{EmailProvider: config.ProviderResend}, logger)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = New(context.Background(), &config.Config{EmailProvider: "fax"}, logger)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
