package mailer

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/resend/resend-go/v2"
)

// ResendSender sends emails through the Resend API.
type ResendSender struct {
	client *resend.Client
}

// NewResendSender creates a Resend sender. A nil httpClient gets a client
// with a 15 second timeout.
func NewResendSender(apiKey string, httpClient *http.Client) *ResendSender {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &ResendSender{client: resend.NewCustomClient(httpClient, apiKey)}
}

func (s *ResendSender) Name() string { return "resend" }

// Send delivers a single email through Resend.
func (s *ResendSender) Send(ctx context.Context, msg *Message) (*SendResult, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
	}

	keys := make([]string, 0, len(msg.Tags))
	for k := range msg.Tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		params.Tags = append(params.Tags, resend.Tag{Name: k, Value: msg.Tags[k]})
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("resend send failed: %w", err)
	}

	return &SendResult{
		Provider:  s.Name(),
		MessageID: sent.Id,
		SentAt:    time.Now(),
	}, nil
}
