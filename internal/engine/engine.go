package engine

import (
	"fmt"
	"strings"

	"github.com/trustlens/trustlens/internal/model"
	"github.com/trustlens/trustlens/internal/rules"
)

// DegradedFlag is the single red flag on a degraded verdict.
const DegradedFlag = "Unable to fully scan page"

// Engine evaluates page snapshots against a rule catalog.
// The zero value is not usable; construct with New.
type Engine struct {
	catalog *rules.Catalog
}

// New creates an Engine. A nil catalog selects the built-in defaults.
func New(catalog *rules.Catalog) *Engine {
	if catalog == nil {
		catalog = rules.Default()
	}
	return &Engine{catalog: catalog}
}

// Catalog returns the rule catalog the engine evaluates against.
func (e *Engine) Catalog() *rules.Catalog {
	return e.catalog
}

// Evaluate computes the verdict for a page snapshot.
//
// The evaluation order is fixed: keyword rules first, then the six
// structural checks. Every applicable rule contributes its penalty in
// the same pass; there is no early exit. Outbound links that do not
// parse as absolute URLs are silently excluded from the link-based
// checks rather than aborting the scan.
func (e *Engine) Evaluate(snap model.PageSnapshot) model.Verdict {
	score := model.MaxTrustScore
	flags := make([]string, 0)

	// Keyword rules: penalize phrases repeated beyond their threshold.
	for _, rule := range e.catalog.KeywordRules {
		if strings.Count(snap.VisibleText, rule.Phrase) > rule.MinRepeats {
			score -= rule.Penalty
			flags = append(flags, fmt.Sprintf("Multiple instances of suspicious phrase: %q", rule.Phrase))
		}
	}

	// Structural checks, each evaluated independently.
	for _, check := range []structuralCheck{
		e.checkInsecureLogin,
		e.checkSuspiciousDomains,
		e.checkShortenedLinks,
		e.checkBrandMismatch,
		e.checkFinancialMismatch,
		e.checkUrgencyCluster,
	} {
		if penalty, flag, fired := check(snap); fired {
			score -= penalty
			flags = append(flags, flag)
		}
	}

	score = clampScore(score)

	if len(flags) == 0 {
		flags = append(flags, model.NoFlagsSentinel)
	}

	level := model.RiskForScore(score)
	return model.Verdict{
		TrustScore: score,
		RiskLevel:  level,
		RedFlags:   flags,
		Analysis:   model.AnalysisForRisk(level),
	}
}

// DegradedVerdict returns the substitute verdict used when the page
// source fails. The user always receives a verdict for a scan attempt;
// a page-access failure degrades the result instead of surfacing an
// error.
func DegradedVerdict() model.Verdict {
	return model.Verdict{
		TrustScore: 50,
		RiskLevel:  model.RiskMedium,
		RedFlags:   []string{DegradedFlag},
		Analysis:   model.AnalysisDegraded,
	}
}

// clampScore bounds a score to [MinTrustScore, MaxTrustScore].
func clampScore(score int) int {
	if score < model.MinTrustScore {
		return model.MinTrustScore
	}
	if score > model.MaxTrustScore {
		return model.MaxTrustScore
	}
	return score
}
