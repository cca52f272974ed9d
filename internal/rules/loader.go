package rules

import (
	"fmt"

	"github.com/trustlens/trustlens/internal/model"
)

// Merge returns a copy of the catalog extended with user-supplied
// keyword rules. The merge is additive only: built-in rules are never
// removed or overridden, and a user rule whose phrase duplicates an
// existing rule is skipped.
//
// User rules with a missing phrase or non-positive penalty are rejected
// so that a broken configuration file is reported instead of silently
// weakening the catalog.
func (c *Catalog) Merge(extra []KeywordRule) (*Catalog, error) {
	merged := *c
	merged.KeywordRules = make([]KeywordRule, len(c.KeywordRules), len(c.KeywordRules)+len(extra))
	copy(merged.KeywordRules, c.KeywordRules)

	seen := make(map[string]bool, len(c.KeywordRules))
	for _, rule := range c.KeywordRules {
		seen[rule.Phrase] = true
	}

	for _, rule := range extra {
		if rule.Phrase == "" {
			return nil, fmt.Errorf("keyword rule with empty phrase")
		}
		if rule.Penalty <= 0 {
			return nil, fmt.Errorf("keyword rule %q has non-positive penalty %d", rule.Phrase, rule.Penalty)
		}
		if rule.MinRepeats < 0 {
			return nil, fmt.Errorf("keyword rule %q has negative repeat threshold %d", rule.Phrase, rule.MinRepeats)
		}

		phrase := model.Normalize(rule.Phrase)
		if seen[phrase] {
			continue
		}
		seen[phrase] = true

		minRepeats := rule.MinRepeats
		if minRepeats == 0 {
			minRepeats = defaultMinRepeats
		}
		merged.KeywordRules = append(merged.KeywordRules, KeywordRule{
			Phrase:     phrase,
			MinRepeats: minRepeats,
			Penalty:    rule.Penalty,
		})
	}

	return &merged, nil
}
