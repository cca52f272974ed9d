package model

import (
	"encoding/json"
	"fmt"
)

// RiskLevel represents the discrete risk band derived from a trust score.
// Levels are ordered: RiskSafe < RiskLow < RiskMedium < RiskHigh, which
// allows threshold comparisons such as level >= RiskMedium.
type RiskLevel int

const (
	// RiskSafe indicates no significant scam indicators were found.
	RiskSafe RiskLevel = iota

	// RiskLow indicates minor concerns that warrant ordinary caution.
	RiskLow

	// RiskMedium indicates multiple warning signs; sensitive information
	// should not be shared with the page.
	RiskMedium

	// RiskHigh indicates strong scam indicators; the page observer shows
	// an on-page warning banner at this level.
	RiskHigh
)

// Trust score thresholds mapping a score to a risk level.
// Boundaries are inclusive: a score of exactly 70 is safe, 50 is low,
// and 30 is medium.
const (
	// SafeThreshold is the minimum score considered safe.
	SafeThreshold = 70

	// LowThreshold is the minimum score considered low risk.
	LowThreshold = 50

	// MediumThreshold is the minimum score considered medium risk.
	// Anything below is high risk.
	MediumThreshold = 30
)

// RiskForScore maps a trust score to its risk level.
// The mapping is a pure step function over the fixed thresholds.
func RiskForScore(score int) RiskLevel {
	switch {
	case score >= SafeThreshold:
		return RiskSafe
	case score >= LowThreshold:
		return RiskLow
	case score >= MediumThreshold:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// String returns the wire representation of the risk level.
func (r RiskLevel) String() string {
	switch r {
	case RiskSafe:
		return "safe"
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	default:
		return "unknown"
	}
}

// ParseRiskLevel converts a wire string back to a RiskLevel.
// It returns an error for unrecognized input so that corrupted history
// records are detected at load time rather than silently misclassified.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch s {
	case "safe":
		return RiskSafe, nil
	case "low":
		return RiskLow, nil
	case "medium":
		return RiskMedium, nil
	case "high":
		return RiskHigh, nil
	default:
		return RiskSafe, fmt.Errorf("unknown risk level: %q", s)
	}
}

// MarshalJSON serializes the risk level as its string form.
func (r RiskLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON deserializes the risk level from its string form.
func (r *RiskLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	level, err := ParseRiskLevel(s)
	if err != nil {
		return err
	}
	*r = level
	return nil
}
