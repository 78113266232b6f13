package main

import (
	"fmt"
	"os"

	"github.com/ramosdigital/contact-api/internal/logging"
	"github.com/spf13/cobra"
)

var logger = logging.NewWriterLogger(os.Stderr, logging.LevelInfo)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ramosdigital",
		Short: "Ramos Digital contact API tools",
		Long: `Tools for the Ramos Digital contact API: preview the emails sent for a
contact form submission, send a test notification through the configured
provider and inspect build versions.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				logger = logging.NewWriterLogger(cmd.ErrOrStderr(), logging.LevelDebug)
			}
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newPreviewCmd())
	rootCmd.AddCommand(newSendTestCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
