package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInquiryType(t *testing.T) {
	tests := []struct {
		in     string
		want   InquiryType
		wantOK bool
	}{
		{"projeto", InquiryProject, true},
		{"project", InquiryProject, true},
		{" AUDIT ", InquiryAudit, true},
		{"consultoria", InquiryConsulting, true},
		{"consulting", InquiryConsulting, true},
		{"outro", InquiryOther, true},
		{"other", InquiryOther, true},
		{"spam", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseInquiryType(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLocale(t *testing.T) {
	assert.Equal(t, LocaleEN, ParseLocale("en", LocalePT))
	assert.Equal(t, LocaleEN, ParseLocale("en-GB", LocalePT))
	assert.Equal(t, LocalePT, ParseLocale("pt_PT", LocaleEN))
	assert.Equal(t, LocalePT, ParseLocale("fr", LocalePT))
	assert.Equal(t, LocaleEN, ParseLocale("", LocaleEN))
}

func TestInquiryTypeLabel(t *testing.T) {
	assert.Equal(t, "Novo Projeto", InquiryProject.Label(LocalePT))
	assert.Equal(t, "Technical Audit", InquiryAudit.Label(LocaleEN))
	assert.Equal(t, "unknown", InquiryType("unknown").Label(LocalePT))
}
