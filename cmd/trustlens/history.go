package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trustlens/trustlens/internal/config"
	"github.com/trustlens/trustlens/internal/model"
	"github.com/trustlens/trustlens/internal/report"
	"github.com/trustlens/trustlens/internal/store"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent scan results",
		Long: fmt.Sprintf(`History lists recent scan results, newest first.

The history keeps at most %d records; older scans are evicted as new
ones arrive.

Examples:
  # Show the last %d scans
  trustlens history

  # Show the last 20 scans
  trustlens history --limit 20

  # Output JSON
  trustlens history --json`, model.HistoryCap, config.DefaultHistoryLimit),
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", config.DefaultHistoryLimit,
		fmt.Sprintf("Maximum number of records to show (up to %d)", model.HistoryCap))
	cmd.Flags().BoolP("json", "j", false, "Output JSON")
	cmd.Flags().String("db-dir", "",
		"Database directory (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	if limit <= 0 {
		return fmt.Errorf("invalid limit: must be positive")
	}
	if limit > model.HistoryCap {
		limit = model.HistoryCap
	}

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	kv, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer kv.Close()

	ctx := cmd.Context()
	records, err := store.NewHistory(kv).Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if asJSON {
		w := report.NewJSONWriter(cmd.OutOrStdout(), report.WithPrettyPrint())
		_, err := w.WriteHistory(records)
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No scans recorded yet.")
		return nil
	}

	w := report.NewTextWriter(cmd.OutOrStdout())
	_, err = w.WriteHistory(records)
	return err
}

// openStore opens the scan database using the --db-dir flag when given.
func openStore(cmd *cobra.Command) (*store.KV, error) {
	dataDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if dataDir == "" {
		dataDir = config.DefaultDataDir()
	}

	kv, err := store.Open(dataDir, store.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := store.InitializeDefaults(cmd.Context(), kv); err != nil {
		kv.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return kv, nil
}
