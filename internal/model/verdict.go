package model

// Trust score bounds. Cumulative penalties are clamped to this range
// once, after all rules have run.
const (
	// MinTrustScore is the floor of the trust score range.
	MinTrustScore = 0

	// MaxTrustScore is the ceiling of the trust score range and the
	// starting score before any penalty is applied.
	MaxTrustScore = 100
)

// NoFlagsSentinel is the single red flag reported when no rule fired.
// RedFlags is never empty: a clean page carries exactly this entry.
const NoFlagsSentinel = "No obvious red flags detected"

// Verdict is the complete output of one scoring pass.
// A Verdict is immutable once produced; evaluating the same snapshot
// twice yields an identical Verdict.
type Verdict struct {
	// TrustScore is the numeric trustworthiness score.
	// Invariant: MinTrustScore <= TrustScore <= MaxTrustScore.
	TrustScore int `json:"trust_score"`

	// RiskLevel is derived from TrustScore via RiskForScore.
	RiskLevel RiskLevel `json:"risk_level"`

	// RedFlags lists human-readable reasons that lowered the score, in
	// rule-evaluation order. Never empty; see NoFlagsSentinel.
	RedFlags []string `json:"red_flags"`

	// Analysis is a short summary selected by risk level from a fixed
	// set of templates.
	Analysis string `json:"analysis"`
}

// Analysis templates, one per risk level. The degraded template is used
// when the page could not be fully read.
const (
	AnalysisSafe     = "This page appears relatively safe. However, always exercise caution with personal information."
	AnalysisLow      = "Minor concerns detected. Be cautious and verify information before taking action."
	AnalysisMedium   = "Multiple warning signs detected. Exercise extreme caution. Do not share sensitive information."
	AnalysisHigh     = "HIGH RISK: This page shows multiple scam indicators. Avoid sharing any personal or financial information."
	AnalysisDegraded = "Limited scan completed. Some elements may not be accessible."
)

// AnalysisForRisk returns the fixed analysis template for a risk level.
func AnalysisForRisk(level RiskLevel) string {
	switch level {
	case RiskLow:
		return AnalysisLow
	case RiskMedium:
		return AnalysisMedium
	case RiskHigh:
		return AnalysisHigh
	default:
		return AnalysisSafe
	}
}
