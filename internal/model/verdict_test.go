package model

import "testing"

// TestAnalysisForRisk tests that each risk level maps to its template.
func TestAnalysisForRisk(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		level    RiskLevel
		expected string
	}{
		{RiskSafe, AnalysisSafe},
		{RiskLow, AnalysisLow},
		{RiskMedium, AnalysisMedium},
		{RiskHigh, AnalysisHigh},
	}

	for _, tc := range testCases {
		t.Run(tc.level.String(), func(t *testing.T) {
			t.Parallel()
			if got := AnalysisForRisk(tc.level); got != tc.expected {
				t.Errorf("AnalysisForRisk(%v) = %q, expected %q", tc.level, got, tc.expected)
			}
		})
	}
}

// TestNewHistoryRecord tests that records carry the verdict data and a
// unique identifier.
func TestNewHistoryRecord(t *testing.T) {
	t.Parallel()

	verdict := Verdict{TrustScore: 70, RiskLevel: RiskSafe, RedFlags: []string{NoFlagsSentinel}, Analysis: AnalysisSafe}

	a := NewHistoryRecord("https://example.com", verdict)
	b := NewHistoryRecord("https://example.com", verdict)

	if a.Score != 70 || a.Risk != RiskSafe {
		t.Errorf("record does not reflect verdict: %+v", a)
	}
	if a.URL != "https://example.com" {
		t.Errorf("unexpected URL: %q", a.URL)
	}
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("record IDs must be unique and non-empty: %q vs %q", a.ID, b.ID)
	}
	if a.Timestamp.IsZero() {
		t.Error("timestamp must be set")
	}
}

// TestParseSensitivity tests sensitivity validation.
func TestParseSensitivity(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"low", "medium", "high"} {
		if _, err := ParseSensitivity(valid); err != nil {
			t.Errorf("ParseSensitivity(%q) returned error: %v", valid, err)
		}
	}
	if _, err := ParseSensitivity("paranoid"); err == nil {
		t.Error("expected error for unknown sensitivity, got nil")
	}
}

// TestDefaultSettings tests the documented defaults.
func TestDefaultSettings(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	if !s.AutoScan || !s.ShowNotifications || s.Sensitivity != SensitivityMedium {
		t.Errorf("unexpected defaults: %+v", s)
	}
}
