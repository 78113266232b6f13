// Package mailing renders the contact form emails from embedded Liquid templates.
package mailing

import (
	"embed"
	"fmt"
	"strings"

	"github.com/osteele/liquid"
	"github.com/ramosdigital/contact-api/internal/models"
)

//go:embed templates/*.liquid
var templateFS embed.FS

const (
	tplNotificationSubject = "notification_subject"
	tplNotificationText    = "notification.txt"
)

// Email is a rendered message body with its subject.
type Email struct {
	Subject string
	Text    string
	HTML    string
}

// Renderer holds the parsed templates. Safe for concurrent use.
type Renderer struct {
	engine    *liquid.Engine
	templates map[string]*liquid.Template
}

// NewRenderer parses every embedded template up front so broken templates
// fail at startup instead of on the first submission.
func NewRenderer() (*Renderer, error) {
	engine := liquid.NewEngine()
	registerFilters(engine)

	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	r := &Renderer{engine: engine, templates: make(map[string]*liquid.Template, len(entries))}
	for _, entry := range entries {
		src, err := templateFS.ReadFile("templates/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", entry.Name(), err)
		}
		tpl, perr := engine.ParseTemplate(src)
		if perr != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", entry.Name(), perr)
		}
		r.templates[strings.TrimSuffix(entry.Name(), ".liquid")] = tpl
	}

	return r, nil
}

func registerFilters(engine *liquid.Engine) {
	// {{ type | inquiry_label: "pt" }}
	engine.RegisterFilter("inquiry_label", func(value string, locale string) string {
		t, ok := models.ParseInquiryType(value)
		if !ok {
			return value
		}
		return t.Label(models.ParseLocale(locale, models.LocalePT))
	})
}

func (r *Renderer) render(name string, bindings liquid.Bindings) (string, error) {
	tpl, ok := r.templates[name]
	if !ok {
		return "", fmt.Errorf("template %s not found", name)
	}
	out, err := tpl.RenderString(bindings)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return out, nil
}

func bindings(s *models.ContactSubmission) liquid.Bindings {
	return liquid.Bindings{
		"name":       s.Name,
		"email":      s.Email,
		"type":       string(s.InquiryType()),
		"message":    s.Message,
		"locale":     string(s.Locale),
		"client_ip":  s.ClientIP,
		"user_agent": s.UserAgent,
		"referrer":   s.Referrer,
		"request_id": s.RequestID,
	}
}

// RenderNotification renders the plain text lead email sent to the site owner.
func (r *Renderer) RenderNotification(s *models.ContactSubmission) (*Email, error) {
	b := bindings(s)

	subject, err := r.render(tplNotificationSubject, b)
	if err != nil {
		return nil, err
	}
	text, err := r.render(tplNotificationText, b)
	if err != nil {
		return nil, err
	}

	return &Email{Subject: strings.TrimSpace(subject), Text: text}, nil
}

// RenderConfirmation renders the receipt sent to the submitter in their locale.
func (r *Renderer) RenderConfirmation(s *models.ContactSubmission) (*Email, error) {
	locale := models.ParseLocale(string(s.Locale), models.LocalePT)
	b := bindings(s)

	subject, err := r.render("confirmation_subject."+string(locale), b)
	if err != nil {
		return nil, err
	}
	text, err := r.render("confirmation."+string(locale)+".txt", b)
	if err != nil {
		return nil, err
	}
	html, err := r.render("confirmation."+string(locale)+".html", b)
	if err != nil {
		return nil, err
	}

	return &Email{Subject: strings.TrimSpace(subject), Text: text, HTML: html}, nil
}
