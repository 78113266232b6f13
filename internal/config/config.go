package config

import (
	"fmt"
	"net/mail"
	"net/netip"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	dotenv "github.com/ramosdigital/contact-api/internal/config/env"
	"github.com/ramosdigital/contact-api/internal/logging"
)

// Email providers
const (
	ProviderResend = "resend"
	ProviderSES    = "ses"
	ProviderLog    = "log"
)

// ErrInvalid marks a configuration the service cannot run with. It wraps
// logging.ErrInvalidConfig so either sentinel matches.
var ErrInvalid = fmt.Errorf("config: %w", logging.ErrInvalidConfig)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment    string        `env:"ENV" envDefault:"development"`
	Port           string        `env:"API_PORT" envDefault:"8080"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	MaxBodyBytes   int64         `env:"MAX_BODY_BYTES" envDefault:"65536"`
	ShutdownGrace  time.Duration `env:"SHUTDOWN_GRACE" envDefault:"10s"`
	// Proxies (IPs or CIDRs) whose X-Forwarded-For / X-Real-IP headers are
	// trusted. Empty trusts none and the peer address is the client.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	// Logging Configuration
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE"`
	LogRequests bool   `env:"LOG_REQUESTS" envDefault:"false"`

	// Email Configuration
	EmailProvider    string        `env:"EMAIL_PROVIDER" envDefault:"resend"`
	ResendAPIKey     string        `env:"RESEND_API_KEY"`
	AWSRegion        string        `env:"AWS_REGION" envDefault:"eu-west-1"`
	AWSAccessKey     string        `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretKey     string        `env:"AWS_SECRET_ACCESS_KEY"`
	EmailSendTimeout time.Duration `env:"EMAIL_SEND_TIMEOUT" envDefault:"10s"`

	// Contact Form Configuration
	ContactFrom             string `env:"CONTACT_FROM" envDefault:"Ramos Digital System <system@ramosdigital.pt>"`
	ContactOwnerEmail       string `env:"CONTACT_OWNER_EMAIL" envDefault:"martim@ramosdigital.pt"`
	ContactSendConfirmation bool   `env:"CONTACT_SEND_CONFIRMATION" envDefault:"true"`
	ContactDefaultLocale    string `env:"CONTACT_DEFAULT_LOCALE" envDefault:"pt"`

	// Submission Rate Limiting
	RedisURL            string `env:"REDIS_URL"`
	SubmitRatePerMinute int    `env:"SUBMIT_RATE_PER_MINUTE" envDefault:"5"`
	SubmitBurst         int    `env:"SUBMIT_BURST" envDefault:"3"`

	// Owner Alerts
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `env:"TELEGRAM_CHAT_ID"`

	// Spam Protection
	RecaptchaSecretKey string  `env:"RECAPTCHA_SECRET_KEY"`
	RecaptchaMinScore  float64 `env:"RECAPTCHA_MIN_SCORE" envDefault:"0.5"`

	// Telemetry Configuration
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"false"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	if _, err := dotenv.LoadEnv(); err != nil {
		return nil, err
	}
	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.EmailProvider = strings.ToLower(strings.TrimSpace(cfg.EmailProvider))
	cfg.ContactDefaultLocale = strings.ToLower(strings.TrimSpace(cfg.ContactDefaultLocale))
	for i, origin := range cfg.AllowedOrigins {
		cfg.AllowedOrigins[i] = strings.TrimSpace(origin)
	}
	proxies := cfg.TrustedProxies[:0]
	for _, proxy := range cfg.TrustedProxies {
		if proxy = strings.TrimSpace(proxy); proxy != "" {
			proxies = append(proxies, proxy)
		}
	}
	cfg.TrustedProxies = proxies

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	switch c.EmailProvider {
	case ProviderResend:
		if c.ResendAPIKey == "" {
			return fmt.Errorf("%w: RESEND_API_KEY is required for the resend provider", ErrInvalid)
		}
	case ProviderSES:
		if c.AWSRegion == "" {
			return fmt.Errorf("%w: AWS_REGION is required for the ses provider", ErrInvalid)
		}
	case ProviderLog:
		if c.IsProduction() {
			return fmt.Errorf("%w: the log email provider is not allowed in production", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown EMAIL_PROVIDER %q", ErrInvalid, c.EmailProvider)
	}

	if _, err := mail.ParseAddress(c.ContactFrom); err != nil {
		return fmt.Errorf("%w: CONTACT_FROM: %v", ErrInvalid, err)
	}
	if _, err := mail.ParseAddress(c.ContactOwnerEmail); err != nil {
		return fmt.Errorf("%w: CONTACT_OWNER_EMAIL: %v", ErrInvalid, err)
	}

	if c.ContactDefaultLocale != "pt" && c.ContactDefaultLocale != "en" {
		return fmt.Errorf("%w: CONTACT_DEFAULT_LOCALE must be pt or en", ErrInvalid)
	}
	if c.EmailSendTimeout <= 0 {
		return fmt.Errorf("%w: EMAIL_SEND_TIMEOUT must be positive", ErrInvalid)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: MAX_BODY_BYTES must be positive", ErrInvalid)
	}
	if c.SubmitRatePerMinute <= 0 || c.SubmitBurst < 0 {
		return fmt.Errorf("%w: submission rate limits must be positive", ErrInvalid)
	}
	if (c.TelegramBotToken == "") != (c.TelegramChatID == "") {
		return fmt.Errorf("%w: TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together", ErrInvalid)
	}
	if c.RecaptchaMinScore < 0 || c.RecaptchaMinScore > 1 {
		return fmt.Errorf("%w: RECAPTCHA_MIN_SCORE must be between 0 and 1", ErrInvalid)
	}
	for _, proxy := range c.TrustedProxies {
		if _, err := netip.ParsePrefix(proxy); err == nil {
			continue
		}
		if _, err := netip.ParseAddr(proxy); err != nil {
			return fmt.Errorf("%w: TRUSTED_PROXIES: %q is not an IP or CIDR", ErrInvalid, proxy)
		}
	}

	return nil
}

// LogConfig builds the logging configuration for this environment.
func (c *Config) LogConfig() *logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = strings.ToLower(c.LogLevel)
	cfg.Requests = c.LogRequests
	cfg.File = c.LogFile
	if cfg.File == "" {
		if c.IsProduction() {
			cfg.File = "/app/logs/api.log"
		} else {
			cfg.File = "./logs/api.log"
		}
	}
	return cfg
}
