package service

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ramosdigital/contact-api/internal/api/sanitization"
	"github.com/ramosdigital/contact-api/internal/api/validation"
	"github.com/ramosdigital/contact-api/internal/logging"
	"github.com/ramosdigital/contact-api/internal/mailer"
	"github.com/ramosdigital/contact-api/internal/mailing"
	"github.com/ramosdigital/contact-api/internal/metrics"
	"github.com/ramosdigital/contact-api/internal/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// ErrorKind classifies a failed submission.
type ErrorKind string

const (
	KindNone       ErrorKind = ""
	KindValidation ErrorKind = "validation"
	KindDelivery   ErrorKind = "delivery"
	KindInternal   ErrorKind = "internal"
)

// Email kinds, used for tags, metrics and logs
const (
	emailNotification = "notification"
	emailConfirmation = "confirmation"
)

// Result is the outcome of a submission. Err carries the cause for logging
// and is never shown to the submitter.
type Result struct {
	Success bool
	Spam    bool
	Kind    ErrorKind
	Message string
	Fields  map[string]string
	Err     error
}

// Outcome is the metric label for the result.
func (r Result) Outcome() string {
	switch {
	case r.Spam:
		return "spam"
	case r.Success:
		return "sent"
	default:
		return string(r.Kind)
	}
}

var failureMessages = map[models.Locale]map[ErrorKind]string{
	models.LocalePT: {
		KindValidation: "Dados inválidos. Verifique os campos assinalados.",
		KindDelivery:   "Erro ao enviar email. Tente novamente.",
		KindInternal:   "Erro interno do servidor.",
	},
	models.LocaleEN: {
		KindValidation: "Invalid data. Please check the highlighted fields.",
		KindDelivery:   "Failed to send email. Please try again.",
		KindInternal:   "Internal server error.",
	},
}

// FailureMessage returns the submitter-facing text for an error kind.
func FailureMessage(kind ErrorKind, locale models.Locale) string {
	table, ok := failureMessages[locale]
	if !ok {
		table = failureMessages[models.LocalePT]
	}
	return table[kind]
}

// EmailRenderer renders the two contact emails.
type EmailRenderer interface {
	RenderNotification(s *models.ContactSubmission) (*mailing.Email, error)
	RenderConfirmation(s *models.ContactSubmission) (*mailing.Email, error)
}

// Notifier is a best-effort owner alert channel besides email.
type Notifier interface {
	Notify(ctx context.Context, s *models.ContactSubmission) error
	Name() string
}

// CaptchaVerifier checks a client side challenge token.
type CaptchaVerifier interface {
	VerifyToken(ctx context.Context, token string, minScore float64) (bool, error)
}

// ContactConfig holds the fixed addresses and switches for submissions.
type ContactConfig struct {
	From              string
	OwnerEmail        string
	SendConfirmation  bool
	DefaultLocale     models.Locale
	SendTimeout       time.Duration
	RecaptchaMinScore float64
}

// ContactService validates contact submissions and forwards them by email.
type ContactService struct {
	cfg      ContactConfig
	sender   mailer.Sender
	renderer EmailRenderer
	validate *validator.Validate
	logger   *logging.Logger
	alerts   []Notifier
	captcha  CaptchaVerifier
	tracer   trace.Tracer
}

// ContactOption configures optional collaborators.
type ContactOption func(*ContactService)

// WithAlerts adds best-effort owner alert channels.
func WithAlerts(alerts ...Notifier) ContactOption {
	return func(s *ContactService) {
		s.alerts = append(s.alerts, alerts...)
	}
}

// WithCaptcha enables challenge token verification.
func WithCaptcha(v CaptchaVerifier) ContactOption {
	return func(s *ContactService) {
		s.captcha = v
	}
}

// NewContactService creates a new contact service
func NewContactService(cfg ContactConfig, sender mailer.Sender, renderer EmailRenderer, logger *logging.Logger, opts ...ContactOption) *ContactService {
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = models.LocalePT
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 10 * time.Second
	}

	s := &ContactService{
		cfg:      cfg,
		sender:   sender,
		renderer: renderer,
		validate: validation.New(),
		logger:   logger,
		tracer:   otel.Tracer("github.com/ramosdigital/contact-api/internal/service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ContactService) failure(kind ErrorKind, locale models.Locale, err error) Result {
	return Result{
		Kind:    kind,
		Message: FailureMessage(kind, locale),
		Err:     err,
	}
}

func (s *ContactService) sanitize(in models.ContactSubmission) models.ContactSubmission {
	out := in
	out.Name = sanitization.SanitizeName(in.Name)
	out.Email = sanitization.SanitizeEmail(in.Email)
	out.Type = sanitization.SanitizeString(in.Type)
	out.Message = sanitization.SanitizeMessage(in.Message)
	out.Honeypot = sanitization.SanitizeString(in.Honeypot)
	out.Locale = models.ParseLocale(string(in.Locale), s.cfg.DefaultLocale)
	out.RecaptchaToken = sanitization.SanitizeString(in.RecaptchaToken)
	return out
}

// Submit handles a single contact submission. It never panics and never
// returns an error: every failure is folded into the Result.
func (s *ContactService) Submit(ctx context.Context, in models.ContactSubmission) (res Result) {
	ctx, span := s.tracer.Start(ctx, "contact.submit")
	defer span.End()

	locale := models.ParseLocale(string(in.Locale), s.cfg.DefaultLocale)

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("[CONTACT] panic handling submission %s: %v\n%s", in.RequestID, r, debug.Stack())
			res = s.failure(KindInternal, locale, fmt.Errorf("%w: panic: %v", ErrInternal, r))
		}

		metrics.Submissions.WithLabelValues(res.Outcome()).Inc()
		span.SetAttributes(attribute.String("contact.outcome", res.Outcome()))
		if res.Err != nil {
			span.RecordError(res.Err)
		}
		if !res.Success {
			span.SetStatus(codes.Error, string(res.Kind))
		}
	}()

	sub := s.sanitize(in)

	// Filled honeypot: report success, send nothing. Whitespace counts as filled.
	if in.Honeypot != "" {
		s.logger.Warn("[CONTACT] honeypot filled, dropping submission %s from %s", sub.RequestID, sub.ClientIP)
		return Result{Success: true, Spam: true}
	}

	if err := s.validate.StructCtx(ctx, &sub); err != nil {
		details := validation.FormatValidationError(err, sub.Locale)
		if details == nil {
			return s.failure(KindInternal, locale, fmt.Errorf("%w: validator: %v", ErrInternal, err))
		}
		failed := s.failure(KindValidation, sub.Locale, fmt.Errorf("%w: %v", ErrValidation, err))
		failed.Fields = validation.FieldMessages(details)
		s.logger.Info("[CONTACT] rejected submission %s: %d invalid field(s)", sub.RequestID, len(failed.Fields))
		return failed
	}

	sub.Type = string(sub.InquiryType())

	if s.captcha != nil {
		ok, err := s.captcha.VerifyToken(ctx, sub.RecaptchaToken, s.cfg.RecaptchaMinScore)
		if err != nil || !ok {
			if err == nil {
				err = errors.New("token rejected")
			}
			failed := s.failure(KindValidation, sub.Locale, fmt.Errorf("%w: recaptcha: %v", ErrValidation, err))
			failed.Fields = map[string]string{"recaptcha_token": FailureMessage(KindValidation, sub.Locale)}
			s.logger.Warn("[CONTACT] recaptcha rejected submission %s: %v", sub.RequestID, err)
			return failed
		}
	}

	notification, err := s.renderer.RenderNotification(&sub)
	if err != nil {
		return s.failure(KindInternal, sub.Locale, fmt.Errorf("%w: render notification: %v", ErrInternal, err))
	}

	notifyMsg := &mailer.Message{
		From:    s.cfg.From,
		To:      []string{s.cfg.OwnerEmail},
		ReplyTo: sub.Email,
		Subject: notification.Subject,
		Text:    notification.Text,
		HTML:    notification.HTML,
		Tags:    map[string]string{"kind": emailNotification, "type": sub.Type},
	}

	var confirmMsg *mailer.Message
	if s.cfg.SendConfirmation {
		confirmation, err := s.renderer.RenderConfirmation(&sub)
		if err != nil {
			s.logger.Warn("[CONTACT] skipping confirmation for %s: %v", sub.RequestID, err)
		} else {
			confirmMsg = &mailer.Message{
				From:    s.cfg.From,
				To:      []string{sub.Email},
				ReplyTo: s.cfg.OwnerEmail,
				Subject: confirmation.Subject,
				Text:    confirmation.Text,
				HTML:    confirmation.HTML,
				Tags:    map[string]string{"kind": emailConfirmation, "type": sub.Type},
			}
		}
	}

	// All-settled: goroutines record their own error and always return nil.
	var notifyErr, confirmErr error
	var g errgroup.Group
	g.Go(func() error {
		notifyErr = s.safely(func() error { return s.send(ctx, emailNotification, notifyMsg) })
		return nil
	})
	if confirmMsg != nil {
		g.Go(func() error {
			confirmErr = s.safely(func() error { return s.send(ctx, emailConfirmation, confirmMsg) })
			return nil
		})
	}
	for _, alert := range s.alerts {
		g.Go(func() error {
			if err := s.safely(func() error { return s.alert(ctx, alert, &sub) }); err != nil {
				s.logger.Warn("[CONTACT] %s alert failed for %s: %v", alert.Name(), sub.RequestID, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	if confirmErr != nil {
		s.logger.Warn("[CONTACT] confirmation to %s failed for %s: %v",
			logging.RedactEmail(sub.Email), sub.RequestID, confirmErr)
	}

	if notifyErr != nil {
		s.logger.Error("[CONTACT] owner notification failed for %s: %v", sub.RequestID, notifyErr)
		return s.failure(KindDelivery, sub.Locale, fmt.Errorf("%w: %w", ErrDelivery, notifyErr))
	}

	s.logger.Info("[CONTACT] lead %s (%s) from %s forwarded", sub.RequestID, sub.Type, logging.RedactEmail(sub.Email))
	return Result{Success: true}
}

// safely turns a panic in fn into an error.
func (s *ContactService) safely(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrInternal, r)
		}
	}()
	return fn()
}

// send makes a single delivery attempt bounded by the configured timeout.
func (s *ContactService) send(ctx context.Context, kind string, msg *mailer.Message) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.SendTimeout)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "contact.send."+kind,
		trace.WithAttributes(attribute.String("email.provider", s.sender.Name())))
	defer span.End()

	start := time.Now()
	result, err := s.sender.Send(ctx, msg)
	metrics.EmailSendSeconds.WithLabelValues(s.sender.Name()).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.EmailsSent.WithLabelValues(kind, "failed").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		return err
	}

	metrics.EmailsSent.WithLabelValues(kind, "sent").Inc()
	if result != nil {
		span.SetAttributes(attribute.String("email.message_id", result.MessageID))
		s.logger.Debug("[CONTACT] %s accepted by %s as %s", kind, result.Provider, result.MessageID)
	}
	return nil
}

func (s *ContactService) alert(ctx context.Context, n Notifier, sub *models.ContactSubmission) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.SendTimeout)
	defer cancel()

	if err := n.Notify(ctx, sub); err != nil {
		metrics.EmailsSent.WithLabelValues(n.Name(), "failed").Inc()
		return err
	}
	metrics.EmailsSent.WithLabelValues(n.Name(), "sent").Inc()
	return nil
}
