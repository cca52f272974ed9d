// Package main provides the entry point for the TrustLens CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for TrustLens.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trustlens",
		Short: "Trustworthiness scanner for web pages",
		Long: `TrustLens scores web pages for trustworthiness on a 0-100 scale.

It fetches a page, inspects its visible text and outbound links, and
flags scam wording, insecure login forms, brand impersonation, link
shorteners, and high-pressure urgency tactics. Scan results are kept in
a local history, and trusted sites can be added to a safe list that
skips scoring entirely.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewSafelistCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
