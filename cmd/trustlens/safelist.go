package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/trustlens/trustlens/internal/bus"
	"github.com/trustlens/trustlens/internal/config"
	"github.com/trustlens/trustlens/internal/engine"
	"github.com/trustlens/trustlens/internal/log"
	"github.com/trustlens/trustlens/internal/pagesource"
	"github.com/trustlens/trustlens/internal/panel"
	"github.com/trustlens/trustlens/internal/report"
	"github.com/trustlens/trustlens/internal/store"
)

// NewSafelistCmd creates the safelist command with its subcommands.
func NewSafelistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "safelist",
		Short: "Manage the list of trusted sites",
		Long: `Safelist manages the list of trusted site URLs.

Allow-listed URLs are reported as trusted without scoring. Membership is
by exact URL match.

Examples:
  # Trust a site
  trustlens safelist add https://example.com

  # Stop trusting a site and scan it again right away
  trustlens safelist remove --rescan https://example.com

  # Show all trusted sites
  trustlens safelist list`,
	}

	cmd.PersistentFlags().String("db-dir", "",
		"Database directory (default: XDG data directory)")

	cmd.AddCommand(newSafelistAddCmd())
	cmd.AddCommand(newSafelistRemoveCmd())
	cmd.AddCommand(newSafelistListCmd())

	return cmd
}

// newSafelistAddCmd creates the safelist add subcommand.
func newSafelistAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <url>",
		Short: "Add a URL to the trusted list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer kv.Close()

			url := args[0]
			if err := store.NewAllowList(kv).Add(cmd.Context(), url); err != nil {
				return fmt.Errorf("failed to update trusted list: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added to trusted list: %s\n", url)
			return nil
		},
	}
}

// newSafelistRemoveCmd creates the safelist remove subcommand.
func newSafelistRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <url>",
		Short: "Remove a URL from the trusted list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rescan, err := cmd.Flags().GetBool("rescan")
			if err != nil {
				return err
			}

			kv, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer kv.Close()

			ctx := cmd.Context()
			url := args[0]

			if !rescan {
				if err := store.NewAllowList(kv).Remove(ctx, url); err != nil {
					return fmt.Errorf("failed to update trusted list: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed from trusted list: %s\n", url)
				return nil
			}

			// Removal with rescan goes through the panel so the fresh
			// verdict lands in history like any other scan.
			logger := log.NewLogger(os.Stderr, getVerboseFlag(cmd))
			b := bus.New(bus.WithLogger(logger))
			defer b.Close()

			source := pagesource.NewHTTPSource(
				pagesource.WithHTTPClient(&http.Client{Timeout: config.DefaultTimeout}),
			)
			p := panel.New(source, engine.New(nil), kv, b, panel.WithLogger(logger))

			result, err := p.UnmarkSafe(ctx, url)
			if err != nil {
				return fmt.Errorf("failed to remove and rescan: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed from trusted list: %s\n", url)

			b.Drain()

			recent, err := p.RecentHistory(ctx, panel.RecentDisplayLimit)
			if err != nil {
				logger.Error("failed to load history", "error", err)
			}

			w := report.NewTextWriter(cmd.OutOrStdout())
			_, err = w.Write(&report.Scan{
				URL:       result.URL,
				ScannedAt: time.Now(),
				Trusted:   result.Trusted,
				Verdict:   result.Verdict,
				Degraded:  result.Degraded,
				Signals:   result.Signals,
				History:   recent,
			})
			return err
		},
	}

	cmd.Flags().Bool("rescan", false, "Scan the URL again immediately after removal")

	return cmd
}

// newSafelistListCmd creates the safelist list subcommand.
func newSafelistListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all trusted URLs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kv, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer kv.Close()

			urls, err := store.NewAllowList(kv).All(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load trusted list: %w", err)
			}

			if len(urls) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No trusted sites yet.")
				return nil
			}
			for _, url := range urls {
				fmt.Fprintln(cmd.OutOrStdout(), url)
			}
			return nil
		},
	}
}
