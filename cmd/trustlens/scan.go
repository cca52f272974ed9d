package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/trustlens/trustlens/internal/bus"
	"github.com/trustlens/trustlens/internal/config"
	"github.com/trustlens/trustlens/internal/coordinator"
	"github.com/trustlens/trustlens/internal/engine"
	"github.com/trustlens/trustlens/internal/log"
	"github.com/trustlens/trustlens/internal/model"
	"github.com/trustlens/trustlens/internal/observer"
	"github.com/trustlens/trustlens/internal/pagesource"
	"github.com/trustlens/trustlens/internal/panel"
	"github.com/trustlens/trustlens/internal/report"
	"github.com/trustlens/trustlens/internal/rules"
	"github.com/trustlens/trustlens/internal/store"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [url...]",
		Short: "Scan web pages for trustworthiness",
		Long: `Scan fetches one or more web pages and scores them for trustworthiness.

Each page starts at a score of 100 and loses points for:
- Repeated scam wording (prizes, wire transfers, account suspensions)
- Login forms served over plain HTTP
- Hyphen-heavy outbound domains and link shorteners
- Brand mentions (e.g. PayPal) on unrelated domains
- Clusters of high-pressure urgency phrases

Allow-listed URLs are reported as trusted without scoring. Every scan is
recorded in the local history.

Examples:
  # Scan a single page
  trustlens scan https://example.com

  # Scan multiple pages concurrently
  trustlens scan https://a.example https://b.example

  # Scan URLs listed in a file (one per line, # comments allowed)
  trustlens scan --file urls.txt

  # Scan a saved HTML file
  trustlens scan --local page.html

  # Output JSON report
  trustlens scan --json https://example.com

  # Use a custom configuration file
  trustlens scan -c myconfig.yaml https://example.com`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	// Scan behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Fetch timeout for each page")
	cmd.Flags().IntP("batch", "b", config.DefaultConcurrency,
		"Number of concurrent scans")
	cmd.Flags().StringP("file", "f", "",
		"Read target URLs from a file, one per line")
	cmd.Flags().Bool("local", false,
		"Treat targets as local HTML files instead of URLs")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .trustlens in current or home directory)")

	// Storage
	cmd.Flags().String("db-dir", "",
		"Database directory (default: XDG data directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.LocalFiles, err = cmd.Flags().GetBool("local")
	if err != nil {
		return nil, err
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DataDir = dbDir
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load the config file. If the user explicitly specified a path,
	// error if not found; otherwise a missing file is fine.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.File, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	// Positional arguments plus any list file
	cfg.Targets = args

	listFile, err := cmd.Flags().GetString("file")
	if err != nil {
		return nil, err
	}
	if listFile != "" {
		fromFile, err := readTargetsFile(listFile)
		if err != nil {
			return nil, err
		}
		cfg.Targets = append(cfg.Targets, fromFile...)
	}

	if len(cfg.Targets) == 0 {
		return nil, config.ErrNoTarget
	}

	return cfg, nil
}

// readTargetsFile reads scan targets from a file, one per line.
// Blank lines and lines starting with # are skipped.
func readTargetsFile(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided list path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open target list: %w", err)
	}
	defer f.Close()

	var targets []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		targets = append(targets, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read target list: %w", err)
	}
	return targets, nil
}

// runScan executes the scan against all targets.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting scan",
		"targets", len(cfg.Targets),
		"concurrency", cfg.Concurrency,
		"local", cfg.LocalFiles,
	)

	kv, err := store.Open(cfg.DataDir, store.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer kv.Close()

	if err := store.InitializeDefaults(ctx, kv); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Info("database opened", "dir", cfg.DataDir)

	settings, err := store.NewSettingsStore(kv).Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if cfg.File != nil {
		settings = cfg.File.Settings.Apply(settings)
	}

	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	// Wire the message contexts: the coordinator relays scan results,
	// the observer may raise a warning banner on high risk.
	b := bus.New(bus.WithLogger(logger))
	defer b.Close()

	coord := coordinator.New(b, coordinator.WithLogger(logger))
	b.Subscribe(model.ContextCoordinator, coord.HandleMessage)

	banner := observer.New(
		observer.WithNotifications(settings.ShowNotifications),
		observer.WithLogger(logger),
		observer.WithShowFunc(func(risk model.RiskLevel) {
			fmt.Fprintf(os.Stderr, "\nWARNING: a scanned page was rated %s risk. Proceed with caution.\n", risk)
		}),
	)
	b.Subscribe(model.ContextObserver, banner.HandleMessage)

	// Determine output destination once so multi-target reports append
	// instead of overwriting each other.
	output, closeOutput, err := openReportOutput(cfg)
	if err != nil {
		return err
	}
	defer closeOutput()

	httpSource := pagesource.NewHTTPSource(
		pagesource.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	)

	start := time.Now()

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)

	for _, target := range cfg.Targets {
		g.Go(func() error {
			source := pagesource.SnapshotProvider(httpSource)
			url := target
			if cfg.LocalFiles {
				source = pagesource.NewFileSource(target)
				url = fileTargetURL(target)
			}

			p := panel.New(source, eng, kv, b, panel.WithLogger(logger))

			result, err := p.Scan(gctx, url)
			if err != nil {
				logger.Error("scan failed", "url", url, "error", err)
				fmt.Fprintf(os.Stderr, "Scan error for %s: %v\n", target, err)
				return nil
			}

			recent, err := p.RecentHistory(gctx, panel.RecentDisplayLimit)
			if err != nil {
				logger.Error("failed to load history", "error", err)
			}

			mu.Lock()
			defer mu.Unlock()
			return writeReport(cfg, output, result, recent)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	// Let in-flight messages (and the banner they may trigger) settle
	// before reporting completion.
	b.Drain()

	elapsed := time.Since(start)
	fmt.Fprintf(os.Stderr, "Scanned %d page(s) in %s\n", len(cfg.Targets), elapsed.Round(time.Millisecond))

	return nil
}

// buildEngine creates the scoring engine, merging extra keyword rules
// from the config file into the built-in catalog.
func buildEngine(cfg *config.Config) (*engine.Engine, error) {
	catalog := rules.Default()
	if cfg.File != nil && len(cfg.File.KeywordRules) > 0 {
		merged, err := catalog.Merge(cfg.File.KeywordRules)
		if err != nil {
			return nil, fmt.Errorf("invalid keyword rules in config file: %w", err)
		}
		catalog = merged
	}
	return engine.New(catalog), nil
}

// fileTargetURL converts a local file path into the URL recorded for it.
func fileTargetURL(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return "file://" + filepath.ToSlash(abs)
}

// openReportOutput returns the writer reports go to and a cleanup func.
func openReportOutput(cfg *config.Config) (*os.File, func(), error) {
	if cfg.ReportFile == "" {
		return os.Stdout, func() {}, nil
	}

	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// writeReport renders a single scan result in the requested format.
func writeReport(cfg *config.Config, output *os.File, result *panel.ScanResult, recent []model.HistoryRecord) error {
	scan := &report.Scan{
		URL:       result.URL,
		ScannedAt: time.Now(),
		Trusted:   result.Trusted,
		Verdict:   result.Verdict,
		Degraded:  result.Degraded,
		Signals:   result.Signals,
		History:   recent,
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(output)
	default:
		w = report.NewTextWriter(output, report.WithVerbose(cfg.Verbose))
	}

	if _, err := w.Write(scan); err != nil {
		return fmt.Errorf("failed to write report for %s: %w", result.URL, err)
	}
	return nil
}
