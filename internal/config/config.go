package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "trustlens"

	// DefaultTimeout is the page fetch timeout. Ordinary web pages
	// respond well within this; a hung server should not hang a scan.
	DefaultTimeout = 30 * time.Second

	// DefaultHistoryLimit is how many history records the CLI shows by
	// default, matching the panel surface.
	DefaultHistoryLimit = 5

	// DefaultConcurrency is the number of pages scanned in parallel when
	// multiple targets are given.
	DefaultConcurrency = 4
)

// Config holds all configuration options for TrustLens.
// It is populated from CLI flags and passed through the application via
// dependency injection rather than global state.
type Config struct {
	// DataDir is the directory holding the SQLite database.
	// Defaults to the XDG data directory.
	DataDir string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .trustlens in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// Timeout is the page fetch timeout.
	Timeout time.Duration

	// Targets are the URLs (or local file paths with LocalFiles) to scan.
	Targets []string

	// Concurrency is the number of targets scanned in parallel.
	Concurrency int

	// LocalFiles treats targets as HTML files on disk instead of URLs.
	LocalFiles bool

	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool

	// JSONReport enables JSON report output.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// File holds the values loaded from the configuration file, if one
	// was found.
	File *File
}

// NewConfig returns a Config with default values applied.
func NewConfig() *Config {
	return &Config{
		DataDir:     DefaultDataDir(),
		Timeout:     DefaultTimeout,
		Concurrency: DefaultConcurrency,
	}
}

// DefaultDataDir returns the default database directory
// (~/.local/share/trustlens on Linux).
func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks that the configuration is internally consistent.
// It returns one of the sentinel errors defined in errors.go.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}
