package server

import (
	"context"
	"fmt"

	"github.com/ramosdigital/contact-api/internal/api/middleware"
	"github.com/ramosdigital/contact-api/internal/config"
	"github.com/ramosdigital/contact-api/internal/logging"
	"github.com/ramosdigital/contact-api/internal/mailer"
	"github.com/ramosdigital/contact-api/internal/mailing"
	"github.com/ramosdigital/contact-api/internal/models"
	"github.com/ramosdigital/contact-api/internal/service"

	"github.com/redis/go-redis/v9"
)

// NewContactService wires the contact service from configuration: email
// provider, templates, and the optional Telegram and reCAPTCHA collaborators.
func NewContactService(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*service.ContactService, error) {
	sender, err := mailer.New(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("email provider: %w", err)
	}

	renderer, err := mailing.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("email templates: %w", err)
	}

	var opts []service.ContactOption

	telegram := service.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramChatID)
	if telegram.Enabled() {
		opts = append(opts, service.WithAlerts(telegram))
		logger.Info("Telegram lead alerts enabled")
	}

	recaptcha := service.NewRecaptchaService(cfg.RecaptchaSecretKey)
	if recaptcha.Enabled() {
		opts = append(opts, service.WithCaptcha(recaptcha))
		logger.Info("reCAPTCHA verification enabled (min score %.2f)", cfg.RecaptchaMinScore)
	}

	logger.Info("Email provider: %s", sender.Name())

	return service.NewContactService(service.ContactConfig{
		From:              cfg.ContactFrom,
		OwnerEmail:        cfg.ContactOwnerEmail,
		SendConfirmation:  cfg.ContactSendConfirmation,
		DefaultLocale:     models.ParseLocale(cfg.ContactDefaultLocale, models.LocalePT),
		SendTimeout:       cfg.EmailSendTimeout,
		RecaptchaMinScore: cfg.RecaptchaMinScore,
	}, sender, renderer, logger, opts...), nil
}

// NewRedis connects to REDIS_URL when set. A failed connection is logged and
// the limiter falls back to memory.
func NewRedis(ctx context.Context, cfg *config.Config, logger *logging.Logger) *redis.Client {
	if cfg.RedisURL == "" {
		logger.Info("REDIS_URL not set, submission limiter is per-instance")
		return nil
	}
	client, err := middleware.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Warn("Redis unavailable, submission limiter is per-instance: %v", err)
		return nil
	}
	logger.Info("Submission limiter backed by Redis")
	return client
}
