package models

import "strings"

type InquiryType string

const (
	InquiryAudit      InquiryType = "auditoria"
	InquiryProject    InquiryType = "projeto"
	InquiryConsulting InquiryType = "consultoria"
	InquiryOther      InquiryType = "outro"
)

// InquiryTypes lists the canonical values in form order.
var InquiryTypes = []InquiryType{InquiryAudit, InquiryProject, InquiryConsulting, InquiryOther}

var inquiryAliases = map[string]InquiryType{
	"auditoria":   InquiryAudit,
	"audit":       InquiryAudit,
	"projeto":     InquiryProject,
	"project":     InquiryProject,
	"consultoria": InquiryConsulting,
	"consulting":  InquiryConsulting,
	"outro":       InquiryOther,
	"other":       InquiryOther,
}

// ParseInquiryType maps the site's Portuguese values and the English names to
// the canonical value.
func ParseInquiryType(s string) (InquiryType, bool) {
	t, ok := inquiryAliases[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

type Locale string

const (
	LocalePT Locale = "pt"
	LocaleEN Locale = "en"
)

// ParseLocale accepts "pt", "en" and regional forms such as "en-GB".
func ParseLocale(s string, fallback Locale) Locale {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	switch Locale(s) {
	case LocalePT, LocaleEN:
		return Locale(s)
	}
	return fallback
}

var inquiryLabels = map[Locale]map[InquiryType]string{
	LocalePT: {
		InquiryAudit:      "Auditoria Técnica",
		InquiryProject:    "Novo Projeto",
		InquiryConsulting: "Consultoria",
		InquiryOther:      "Outro Assunto",
	},
	LocaleEN: {
		InquiryAudit:      "Technical Audit",
		InquiryProject:    "New Project",
		InquiryConsulting: "Consulting",
		InquiryOther:      "Other Topic",
	},
}

// Label returns the human readable name of the inquiry type.
func (t InquiryType) Label(locale Locale) string {
	if labels, ok := inquiryLabels[locale]; ok {
		if label, ok := labels[t]; ok {
			return label
		}
	}
	return string(t)
}

// ContactSubmission is a contact form entry after sanitization. It is never persisted.
type ContactSubmission struct {
	Name           string `json:"name" validate:"required,min=2,max=100"`
	Email          string `json:"email" validate:"required,max=255,contact_email"`
	Type           string `json:"type" validate:"required,inquiry"`
	Message        string `json:"message" validate:"required,min=10,max=5000"`
	Honeypot       string `json:"-"`
	Locale         Locale `json:"locale"`
	RecaptchaToken string `json:"recaptcha_token"`

	ClientIP  string `json:"-"`
	UserAgent string `json:"-"`
	Referrer  string `json:"-"`
	RequestID string `json:"-"`
}

// InquiryType returns the canonical type, or the raw value when unknown.
func (s *ContactSubmission) InquiryType() InquiryType {
	if t, ok := ParseInquiryType(s.Type); ok {
		return t
	}
	return InquiryType(s.Type)
}
