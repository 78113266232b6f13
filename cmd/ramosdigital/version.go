package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ramosdigital/contact-api/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show build information",
		Long: `Print the version of this binary. With --server, also fetch the version of a
running API and report whether it is newer.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			info := version.GetBuildInfo()
			fmt.Fprintf(out, "ramosdigital %s\n", version.Info())
			fmt.Fprintf(out, "  go:       %s\n", info.GoVersion)
			fmt.Fprintf(out, "  platform: %s\n", info.Platform)

			serverURL, _ := cmd.Flags().GetString("server")
			if serverURL == "" {
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			remote, err := version.FetchServerVersion(ctx, serverURL)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "server %s (commit %s)\n", remote.Version, remote.GitCommit)
			switch {
			case version.IsUpdateAvailable(info.Version, remote.Version):
				fmt.Fprintln(out, "The server runs a newer build than this binary.")
			case version.CompareVersions(info.Version, remote.Version) > 0:
				fmt.Fprintln(out, "This binary is newer than the server.")
			default:
				fmt.Fprintln(out, "Server and binary are on the same version.")
			}
			return nil
		},
	}

	cmd.Flags().String("server", "", "Base URL of a running contact API")
	return cmd
}
