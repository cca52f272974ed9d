package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/trustlens/trustlens/internal/model"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected
// default values. Changes to defaults should be intentional, so the test
// names each default explicitly.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default Timeout is 30 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 30*time.Second {
			t.Errorf("expected Timeout to be 30s, got %v", cfg.Timeout)
		}
	})

	t.Run("default DataDir is under the XDG data home", func(t *testing.T) {
		t.Parallel()
		if cfg.DataDir == "" {
			t.Fatal("expected DataDir to be set")
		}
		if filepath.Base(cfg.DataDir) != AppName {
			t.Errorf("expected DataDir to end in %q, got %q", AppName, cfg.DataDir)
		}
	})

	t.Run("default Concurrency is 4", func(t *testing.T) {
		t.Parallel()
		if cfg.Concurrency != 4 {
			t.Errorf("expected Concurrency to be 4, got %d", cfg.Concurrency)
		}
	})

	t.Run("default Verbose is false", func(t *testing.T) {
		t.Parallel()
		if cfg.Verbose {
			t.Error("expected Verbose to be false")
		}
	})

	t.Run("default report formats are disabled", func(t *testing.T) {
		t.Parallel()
		if cfg.JSONReport || cfg.MarkdownReport {
			t.Error("expected report formats to be disabled")
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid config returns nil", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("zero timeout returns ErrInvalidTimeout", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.Timeout = 0
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidTimeout) {
			t.Errorf("expected ErrInvalidTimeout, got %v", err)
		}
	})

	t.Run("negative timeout returns ErrInvalidTimeout", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.Timeout = -time.Second
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidTimeout) {
			t.Errorf("expected ErrInvalidTimeout, got %v", err)
		}
	})

	t.Run("zero concurrency returns ErrInvalidConcurrency", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.Concurrency = 0
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConcurrency) {
			t.Errorf("expected ErrInvalidConcurrency, got %v", err)
		}
	})

	t.Run("both report formats returns ErrConflictingReportFormats", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.JSONReport = true
		cfg.MarkdownReport = true
		if err := cfg.Validate(); !errors.Is(err, ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})
}

// TestLoadConfigFile verifies YAML parsing of the .trustlens file.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid YAML returns an error", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("settings: [not a map"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected a parse error")
		}
	})

	t.Run("parses settings and keyword rules", func(t *testing.T) {
		t.Parallel()
		content := `settings:
  auto_scan: false
  show_notifications: true
  sensitivity: high
keyword_rules:
  - phrase: free money
    min_repeats: 1
    penalty: 5
  - phrase: guaranteed refund
`
		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cf.Settings == nil {
			t.Fatal("expected settings to be present")
		}
		if cf.Settings.AutoScan == nil || *cf.Settings.AutoScan {
			t.Error("expected auto_scan override to be false")
		}
		if cf.Settings.Sensitivity == nil || *cf.Settings.Sensitivity != model.SensitivityHigh {
			t.Errorf("expected sensitivity override 'high', got %v", cf.Settings.Sensitivity)
		}
		if len(cf.KeywordRules) != 2 {
			t.Fatalf("expected 2 keyword rules, got %d", len(cf.KeywordRules))
		}
		if cf.KeywordRules[0].Phrase != "free money" {
			t.Errorf("unexpected first rule phrase: %q", cf.KeywordRules[0].Phrase)
		}
		if cf.KeywordRules[0].Penalty != 5 {
			t.Errorf("expected penalty 5, got %d", cf.KeywordRules[0].Penalty)
		}
	})
}

// TestSettingsOverrideApply verifies that a settings block only
// overrides the keys it names.
func TestSettingsOverrideApply(t *testing.T) {
	t.Parallel()

	t.Run("nil override returns base unchanged", func(t *testing.T) {
		t.Parallel()
		var o *SettingsOverride
		got := o.Apply(model.DefaultSettings())
		if got != model.DefaultSettings() {
			t.Errorf("expected defaults, got %+v", got)
		}
	})

	t.Run("partial settings block keeps absent keys", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("settings:\n  sensitivity: high\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		got := cf.Settings.Apply(model.DefaultSettings())
		if !got.AutoScan {
			t.Error("expected AutoScan to keep its stored value")
		}
		if !got.ShowNotifications {
			t.Error("expected ShowNotifications to keep its stored value")
		}
		if got.Sensitivity != model.SensitivityHigh {
			t.Errorf("expected sensitivity 'high', got %q", got.Sensitivity)
		}
	})

	t.Run("explicit false overrides", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("settings:\n  show_notifications: false\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		got := cf.Settings.Apply(model.DefaultSettings())
		if got.ShowNotifications {
			t.Error("expected ShowNotifications to be overridden to false")
		}
		if !got.AutoScan {
			t.Error("expected AutoScan to keep its stored value")
		}
	})
}

// TestFindConfigFile verifies the search order for the configuration file.
func TestFindConfigFile(t *testing.T) {
	t.Run("explicit existing path is returned", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yml")
		if err := os.WriteFile(path, []byte("keyword_rules: []"), 0o600); err != nil {
			t.Fatal(err)
		}
		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("explicit missing path returns empty", func(t *testing.T) {
		if got := FindConfigFile(filepath.Join(t.TempDir(), "nope")); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})

	t.Run("finds file in the current directory", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		if err := os.WriteFile(path, []byte("keyword_rules: []"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Chdir(dir)

		got := FindConfigFile("")
		// Resolve symlinks because t.TempDir may live under a symlinked
		// path (notably on macOS).
		want, err := filepath.EvalSymlinks(path)
		if err != nil {
			t.Fatal(err)
		}
		resolved, err := filepath.EvalSymlinks(got)
		if err != nil {
			t.Fatalf("expected a config path, got %q: %v", got, err)
		}
		if resolved != want {
			t.Errorf("expected %q, got %q", want, resolved)
		}
	})
}
