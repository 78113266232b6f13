package main

import (
	"fmt"
	"io"

	"github.com/ramosdigital/contact-api/internal/mailing"
	"github.com/spf13/cobra"
)

func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the owner notification and the confirmation email",
		Long: `Render both emails for a sample submission and print them.

Example:
  ramosdigital preview
  ramosdigital preview --type consulting --locale en --html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, err := submissionFromFlags(cmd)
			if err != nil {
				return err
			}
			withHTML, _ := cmd.Flags().GetBool("html")

			renderer, err := mailing.NewRenderer()
			if err != nil {
				return fmt.Errorf("failed to load templates: %w", err)
			}

			notification, err := renderer.RenderNotification(sub)
			if err != nil {
				return fmt.Errorf("failed to render notification: %w", err)
			}
			confirmation, err := renderer.RenderConfirmation(sub)
			if err != nil {
				return fmt.Errorf("failed to render confirmation: %w", err)
			}

			out := cmd.OutOrStdout()
			printEmail(out, "NOTIFICATION", notification, false)
			fmt.Fprintln(out)
			printEmail(out, "CONFIRMATION ("+string(sub.Locale)+")", confirmation, withHTML)
			return nil
		},
	}

	addSubmissionFlags(cmd)
	cmd.Flags().Bool("html", false, "Print the HTML part of the confirmation instead of the text part")
	return cmd
}

func printEmail(out io.Writer, title string, email *mailing.Email, withHTML bool) {
	fmt.Fprintf(out, "=== %s ===\n", title)
	fmt.Fprintf(out, "Subject: %s\n\n", email.Subject)
	if withHTML && email.HTML != "" {
		fmt.Fprintln(out, email.HTML)
		return
	}
	fmt.Fprintln(out, email.Text)
}
