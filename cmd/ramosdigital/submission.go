package main

import (
	"fmt"
	"strings"

	"github.com/ramosdigital/contact-api/internal/models"
	"github.com/spf13/cobra"
)

// addSubmissionFlags registers the sample submission used by preview and send-test.
func addSubmissionFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "Ana Silva", "Submitter name")
	cmd.Flags().String("email", "ana@example.com", "Submitter email")
	cmd.Flags().String("type", string(models.InquiryProject), "Inquiry type ("+inquiryList()+")")
	cmd.Flags().String("message", "Quero um site novo para a minha empresa", "Message body")
	cmd.Flags().String("locale", string(models.LocalePT), "Confirmation locale (pt or en)")
}

func inquiryList() string {
	names := make([]string, len(models.InquiryTypes))
	for i, t := range models.InquiryTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func submissionFromFlags(cmd *cobra.Command) (*models.ContactSubmission, error) {
	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	inquiry, _ := cmd.Flags().GetString("type")
	message, _ := cmd.Flags().GetString("message")
	locale, _ := cmd.Flags().GetString("locale")

	t, ok := models.ParseInquiryType(inquiry)
	if !ok {
		return nil, fmt.Errorf("unknown inquiry type %q", inquiry)
	}

	return &models.ContactSubmission{
		Name:      name,
		Email:     email,
		Type:      string(t),
		Message:   message,
		Locale:    models.ParseLocale(locale, models.LocalePT),
		ClientIP:  "127.0.0.1",
		UserAgent: "ramosdigital-cli",
		RequestID: "cli-preview",
	}, nil
}
