package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/ramosdigital/contact-api/internal/models"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramService handles sending messages to Telegram
type TelegramService struct {
	botToken string
	chatID   string
	baseURL  string
	client   *http.Client
}

// NewTelegramService creates a new Telegram service
func NewTelegramService(botToken, chatID string) *TelegramService {
	return &TelegramService{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  telegramAPIBase,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Enabled reports whether both the bot token and chat are configured.
func (s *TelegramService) Enabled() bool {
	return s.botToken != "" && s.chatID != ""
}

func (s *TelegramService) Name() string { return "telegram" }

// Telegram rejects texts over 4096 characters; the header and contact
// fields stay well under the remainder.
const telegramMessageRunes = 3500

// truncateRunes cuts s to at most n runes, marking the cut with an ellipsis.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

// telegramMessage represents a Telegram API message
type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// Notify sends a short lead alert to the owner's Telegram chat
func (s *TelegramService) Notify(ctx context.Context, sub *models.ContactSubmission) error {
	if !s.Enabled() {
		return fmt.Errorf("telegram: %w", ErrNotConfigured)
	}

	text := fmt.Sprintf(
		"🆕 <b>Novo contacto</b> (%s)\n\n"+
			"<b>Nome:</b> %s\n"+
			"<b>Email:</b> %s\n"+
			"<b>Mensagem:</b>\n%s",
		html.EscapeString(sub.InquiryType().Label(models.LocalePT)),
		html.EscapeString(sub.Name),
		html.EscapeString(sub.Email),
		html.EscapeString(truncateRunes(sub.Message, telegramMessageRunes)),
	)

	payload := telegramMessage{
		ChatID:    s.chatID,
		Text:      text,
		ParseMode: "HTML",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal telegram message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.baseURL, s.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}

	return nil
}
