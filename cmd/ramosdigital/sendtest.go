package main

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/ramosdigital/contact-api/internal/config"
	"github.com/ramosdigital/contact-api/internal/mailer"
	"github.com/ramosdigital/contact-api/internal/mailing"
	"github.com/spf13/cobra"
)

func newSendTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send-test",
		Short: "Send a test owner notification through the configured provider",
		Long: `Render the owner notification for a sample submission and send it through
the provider selected by EMAIL_PROVIDER (.env files are loaded as for the server).

Example:
  ramosdigital send-test --to me@example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			to, _ := cmd.Flags().GetString("to")
			if to == "" {
				to = cfg.ContactOwnerEmail
			}

			sub, err := submissionFromFlags(cmd)
			if err != nil {
				return err
			}

			renderer, err := mailing.NewRenderer()
			if err != nil {
				return fmt.Errorf("failed to load templates: %w", err)
			}
			notification, err := renderer.RenderNotification(sub)
			if err != nil {
				return fmt.Errorf("failed to render notification: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.EmailSendTimeout)
			defer cancel()

			sender, err := mailer.New(ctx, cfg, logger)
			if err != nil {
				return err
			}

			s := spinner.New(spinner.CharSets[14], 120*time.Millisecond)
			s.Suffix = fmt.Sprintf(" Sending test email via %s...", sender.Name())
			s.Writer = cmd.ErrOrStderr()
			s.Start()
			result, err := sender.Send(ctx, &mailer.Message{
				From:    cfg.ContactFrom,
				To:      []string{to},
				ReplyTo: sub.Email,
				Subject: "[TEST] " + notification.Subject,
				Text:    notification.Text,
				Tags:    map[string]string{"kind": "test"},
			})
			s.Stop()

			if err != nil {
				return fmt.Errorf("send failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Sent via %s, message id %s\n", result.Provider, result.MessageID)
			return nil
		},
	}

	addSubmissionFlags(cmd)
	cmd.Flags().String("to", "", "Recipient (defaults to CONTACT_OWNER_EMAIL)")
	return cmd
}
