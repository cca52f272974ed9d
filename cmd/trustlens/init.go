package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/trustlens/trustlens/internal/config"
)

//go:embed templates/trustlens.yaml
var configTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new TrustLens configuration file",
		Long: `Init creates a new .trustlens configuration file in the current directory
and initializes the scan database with its default contents.

The generated file includes:
- Default scanner settings (auto scan, notifications, sensitivity)
- Commented examples for extra keyword rules
- Documentation for all available options

Examples:
  # Create .trustlens in current directory
  trustlens init

  # Create config file at a specific path
  trustlens init -o myconfig.yaml

  # Force overwrite existing file
  trustlens init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")
	cmd.Flags().String("db-dir", "",
		"Database directory (default: XDG data directory)")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	// Read template from embedded filesystem
	content, err := configTemplate.ReadFile("templates/trustlens.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write configuration file
	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	// Create the database with its default keys so the first scan
	// starts from a known state.
	kv, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer kv.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized database: %s\n", kv.Path())
	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(cmd.OutOrStdout(), "\nEdit this file to configure:")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Automatic scanning and warning banners")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Extra keyword rules merged into the built-in catalog")

	return nil
}
