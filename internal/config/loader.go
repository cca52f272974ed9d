package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/trustlens/trustlens/internal/model"
	"github.com/trustlens/trustlens/internal/rules"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".trustlens"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .trustlens configuration file.
type File struct {
	// Settings overrides the stored scanner settings. Only the keys
	// present in the file override; absent keys keep the stored or
	// default values.
	Settings *SettingsOverride `yaml:"settings,omitempty"`

	// KeywordRules are extra keyword rules merged into the built-in
	// catalog. They can only add flags, never remove built-in ones.
	KeywordRules []rules.KeywordRule `yaml:"keyword_rules,omitempty"`
}

// SettingsOverride holds per-key overrides for the stored scanner
// settings. Pointer fields distinguish an absent key from an explicit
// false, so a partial settings block touches only the keys it names.
type SettingsOverride struct {
	// AutoScan overrides Settings.AutoScan when present.
	AutoScan *bool `yaml:"auto_scan,omitempty"`

	// ShowNotifications overrides Settings.ShowNotifications when present.
	ShowNotifications *bool `yaml:"show_notifications,omitempty"`

	// Sensitivity overrides Settings.Sensitivity when present.
	Sensitivity *model.Sensitivity `yaml:"sensitivity,omitempty"`
}

// Apply merges the overrides onto base and returns the result.
// A nil receiver returns base unchanged.
func (o *SettingsOverride) Apply(base model.Settings) model.Settings {
	if o == nil {
		return base
	}
	if o.AutoScan != nil {
		base.AutoScan = *o.AutoScan
	}
	if o.ShowNotifications != nil {
		base.ShowNotifications = *o.ShowNotifications
	}
	if o.Sensitivity != nil {
		base.Sensitivity = *o.Sensitivity
	}
	return base
}

// LoadConfigFile loads scanner configuration from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .trustlens in the current directory
// 3. Look for .trustlens in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
