package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ramosdigital/contact-api/internal/models"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	// Dotted hostname with an alphabetic TLD; no IP literals, no leading or
	// trailing hyphen in a label.
	mailDomainRegex = regexp.MustCompile(`^(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)
)

const maxMailDomainLen = 253

// New returns a validator with the custom tags registered and field names
// reported by their json tag.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate) {
	v.RegisterValidation("contact_email", validateContactEmail)
	v.RegisterValidation("inquiry", validateInquiry)
}

// validateContactEmail checks syntax and that the domain is a real hostname
func validateContactEmail(fl validator.FieldLevel) bool {
	return isContactEmail(fl.Field().String())
}

func isContactEmail(email string) bool {
	if !emailRegex.MatchString(email) {
		return false
	}
	domain := email[strings.LastIndex(email, "@")+1:]
	return len(domain) <= maxMailDomainLen && mailDomainRegex.MatchString(domain)
}

// validateInquiry checks the contact type against the known inquiry types
func validateInquiry(fl validator.FieldLevel) bool {
	_, ok := models.ParseInquiryType(fl.Field().String())
	return ok
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

var messages = map[models.Locale]map[string]string{
	models.LocalePT: {
		"required":      "Campo obrigatório",
		"name.min":      "Nome deve ter pelo menos %s caracteres",
		"message.min":   "Mensagem muito curta (mínimo %s caracteres)",
		"min":           "Mínimo %s caracteres",
		"max":           "Texto demasiado longo (máximo %s caracteres)",
		"contact_email": "Email inválido",
		"inquiry":       "Selecione um tipo válido",
		"default":       "Valor inválido",
	},
	models.LocaleEN: {
		"required":      "This field is required",
		"name.min":      "Name must be at least %s characters",
		"message.min":   "Message too short (minimum %s characters)",
		"min":           "Minimum %s characters",
		"max":           "Too long (maximum %s characters)",
		"contact_email": "Invalid email",
		"inquiry":       "Select a valid type",
		"default":       "Invalid value",
	},
}

func message(locale models.Locale, field, tag, param string) string {
	table, ok := messages[locale]
	if !ok {
		table = messages[models.LocalePT]
	}
	tpl, ok := table[field+"."+tag]
	if !ok {
		tpl, ok = table[tag]
	}
	if !ok {
		return table["default"]
	}
	if strings.Contains(tpl, "%s") {
		return fmt.Sprintf(tpl, param)
	}
	return tpl
}

// FormatValidationError turns validator errors into per-field details in the
// given locale. Errors that are not validation errors yield nil.
func FormatValidationError(err error, locale models.Locale) []ValidationError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	out := make([]ValidationError, 0, len(validationErrors))
	for _, e := range validationErrors {
		out = append(out, ValidationError{
			Field:   e.Field(),
			Tag:     e.Tag(),
			Param:   e.Param(),
			Message: message(locale, e.Field(), e.Tag(), e.Param()),
		})
	}
	return out
}

// FieldMessages flattens validation errors into field -> message, keeping the
// first message per field.
func FieldMessages(errs []ValidationError) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		if _, exists := fields[e.Field]; !exists {
			fields[e.Field] = e.Message
		}
	}
	return fields
}
