package model

import "fmt"

// Sensitivity is a reserved scan sensitivity setting.
// It is parsed and persisted but not currently wired into scoring math;
// a future requirement may use it to scale penalty weights.
type Sensitivity string

const (
	// SensitivityLow is the least aggressive setting.
	SensitivityLow Sensitivity = "low"

	// SensitivityMedium is the default setting.
	SensitivityMedium Sensitivity = "medium"

	// SensitivityHigh is the most aggressive setting.
	SensitivityHigh Sensitivity = "high"
)

// ParseSensitivity validates a sensitivity string.
func ParseSensitivity(s string) (Sensitivity, error) {
	switch Sensitivity(s) {
	case SensitivityLow, SensitivityMedium, SensitivityHigh:
		return Sensitivity(s), nil
	default:
		return SensitivityMedium, fmt.Errorf("unknown sensitivity: %q", s)
	}
}

// Settings holds the user-configurable runtime options.
// Settings live in the durable store under the "settings" key and are
// shared by all contexts.
type Settings struct {
	// AutoScan controls whether a scan fires automatically on page load.
	AutoScan bool `json:"autoScan" yaml:"auto_scan"`

	// ShowNotifications controls whether warning banners are allowed at
	// all. When false the observer never shows a banner regardless of
	// risk level.
	ShowNotifications bool `json:"showNotifications" yaml:"show_notifications"`

	// Sensitivity is reserved for future threshold tuning.
	Sensitivity Sensitivity `json:"sensitivity" yaml:"sensitivity"`
}

// DefaultSettings returns the settings written at first initialization.
func DefaultSettings() Settings {
	return Settings{
		AutoScan:          true,
		ShowNotifications: true,
		Sensitivity:       SensitivityMedium,
	}
}
