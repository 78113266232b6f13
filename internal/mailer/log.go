package mailer

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ramosdigital/contact-api/internal/logging"
)

// LogSender writes messages to the log instead of sending them. Development only.
type LogSender struct {
	logger *logging.Logger
}

func NewLogSender(logger *logging.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Name() string { return "log" }

func (s *LogSender) Send(ctx context.Context, msg *Message) (*SendResult, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	to := make([]string, len(msg.To))
	for i, addr := range msg.To {
		to[i] = logging.RedactEmail(addr)
	}

	id := uuid.NewString()
	s.logger.Info("[MAIL] id=%s to=%s subject=%q text=%d bytes html=%d bytes",
		id, strings.Join(to, ","), msg.Subject, len(msg.Text), len(msg.HTML))
	s.logger.Debug("[MAIL] id=%s body:\n%s", id, msg.Text)

	return &SendResult{Provider: s.Name(), MessageID: id, SentAt: time.Now()}, nil
}
