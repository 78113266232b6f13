package validation

import (
	"strings"
	"testing"

	"github.com/ramosdigital/contact-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() models.ContactSubmission {
	return models.ContactSubmission{
		Name:    "Ana Silva",
		Email:   "ana@example.com",
		Type:    "projeto",
		Message: "Quero um site novo para a minha empresa",
	}
}

func TestValidSubmissionPasses(t *testing.T) {
	v := New()
	s := validSubmission()
	require.NoError(t, v.Struct(&s))

	s.Type = "consulting"
	require.NoError(t, v.Struct(&s))
}

func TestFieldConstraints(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *models.ContactSubmission)
		field  string
		tag    string
	}{
		{"empty name", func(s *models.ContactSubmission) { s.Name = "" }, "name", "required"},
		{"short name", func(s *models.ContactSubmission) { s.Name = "A" }, "name", "min"},
		{"accented two rune name", func(s *models.ContactSubmission) { s.Name = "Zé" }, "", ""},
		{"bad email", func(s *models.ContactSubmission) { s.Email = "ana.example.com" }, "email", "contact_email"},
		{"email without tld", func(s *models.ContactSubmission) { s.Email = "ana@localhost" }, "email", "contact_email"},
		{"email with ip domain", func(s *models.ContactSubmission) { s.Email = "ana@192.168.1.1" }, "email", "contact_email"},
		{"unknown type", func(s *models.ContactSubmission) { s.Type = "spam" }, "type", "inquiry"},
		{"empty type", func(s *models.ContactSubmission) { s.Type = "" }, "type", "required"},
		{"short message", func(s *models.ContactSubmission) { s.Message = "Olá" }, "message", "min"},
		{"nine rune message", func(s *models.ContactSubmission) { s.Message = "123456789" }, "message", "min"},
		{"ten rune message", func(s *models.ContactSubmission) { s.Message = "1234567890" }, "", ""},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSubmission()
			tt.mutate(&s)
			err := v.Struct(&s)

			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			errs := FormatValidationError(err, models.LocalePT)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field)
			assert.Equal(t, tt.tag, errs[0].Tag)
			assert.NotEmpty(t, errs[0].Message)
		})
	}
}

func TestFormatValidationErrorLocales(t *testing.T) {
	v := New()
	s := models.ContactSubmission{Name: "A", Email: "nope", Type: "projeto", Message: "curta"}
	err := v.Struct(&s)
	require.Error(t, err)

	pt := FieldMessages(FormatValidationError(err, models.LocalePT))
	assert.Equal(t, map[string]string{
		"name":    "Nome deve ter pelo menos 2 caracteres",
		"email":   "Email inválido",
		"message": "Mensagem muito curta (mínimo 10 caracteres)",
	}, pt)

	en := FieldMessages(FormatValidationError(err, models.LocaleEN))
	assert.Equal(t, "Name must be at least 2 characters", en["name"])
	assert.Equal(t, "Invalid email", en["email"])
}

func TestFormatValidationErrorIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, FormatValidationError(assert.AnError, models.LocalePT))
	assert.Nil(t, FieldMessages(nil))
}

func TestIsContactEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"ana@example.com", true},
		{"ana.silva+site@mail.example.pt", true},
		{"geral@sub-domain.example.co.uk", true},
		{"info@123.com", true},
		{"ana@localhost", false},
		{"ana@192.168.1.1", false},
		{"ana@ex_ample.com", false},
		{"ana@-example.com", false},
		{"ana@example-.com", false},
		{"ana@example..com", false},
		{"ana@example.c", false},
		{"ana@@example.com", false},
		{"@example.com", false},
		{"ana@" + strings.Repeat("a", 62) + "." + strings.Repeat("b", 62) + "." + strings.Repeat("c", 62) + "." + strings.Repeat("d", 62) + ".com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, isContactEmail(tt.email))
		})
	}
}
