package rules

import "testing"

// TestDefaultCatalog tests the shape of the built-in catalog.
func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	catalog := Default()

	if len(catalog.KeywordRules) != 20 {
		t.Errorf("expected 20 keyword rules, got %d", len(catalog.KeywordRules))
	}
	for _, rule := range catalog.KeywordRules {
		if rule.MinRepeats != 2 || rule.Penalty != 10 {
			t.Errorf("keyword rule %q has unexpected weights: %+v", rule.Phrase, rule)
		}
	}

	if len(catalog.RegexRules) != 5 {
		t.Errorf("expected 5 regex rules, got %d", len(catalog.RegexRules))
	}
	if len(catalog.UrgencyPhrases) != 4 {
		t.Errorf("expected 4 urgency phrases, got %d", len(catalog.UrgencyPhrases))
	}
	if len(catalog.Brands) != 1 || catalog.Brands[0].Domain != "paypal.com" {
		t.Errorf("missing paypal brand domain: %v", catalog.Brands)
	}
	if len(catalog.ShortenerHosts) != 3 {
		t.Errorf("expected 3 shortener hosts, got %v", catalog.ShortenerHosts)
	}
}

// TestMatchPatterns tests informational signal matching.
func TestMatchPatterns(t *testing.T) {
	t.Parallel()

	catalog := Default()

	testCases := []struct {
		name     string
		text     string
		expected int
	}{
		{"clean text", "welcome to our site", 0},
		{"card number", "enter 1234567812345678 to continue", 1},
		{"password and ssn", "password and social security number required", 2},
		{"bank account", "wire to this bank account", 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			signals := catalog.MatchPatterns(tc.text)
			if len(signals) != tc.expected {
				t.Errorf("got %d signals (%v), expected %d", len(signals), signals, tc.expected)
			}
		})
	}
}

// TestMergeAdditive tests that user rules extend the catalog without
// touching built-in rules.
func TestMergeAdditive(t *testing.T) {
	t.Parallel()

	base := Default()
	merged, err := base.Merge([]KeywordRule{
		{Phrase: "Nigerian Prince", Penalty: 25},
		{Phrase: "urgent", Penalty: 99}, // duplicate of a built-in rule
	})
	if err != nil {
		t.Fatalf("Merge returned error: %v", err)
	}

	if len(merged.KeywordRules) != len(base.KeywordRules)+1 {
		t.Errorf("expected exactly one rule added, got %d total", len(merged.KeywordRules))
	}

	added := merged.KeywordRules[len(merged.KeywordRules)-1]
	if added.Phrase != "nigerian prince" {
		t.Errorf("phrase not normalized: %q", added.Phrase)
	}
	if added.MinRepeats != 2 {
		t.Errorf("zero repeat threshold should default to 2, got %d", added.MinRepeats)
	}

	// The base catalog must be untouched.
	if len(base.KeywordRules) != 20 {
		t.Errorf("base catalog mutated: %d rules", len(base.KeywordRules))
	}
	for _, rule := range merged.KeywordRules {
		if rule.Phrase == "urgent" && rule.Penalty != 10 {
			t.Errorf("built-in rule overridden: %+v", rule)
		}
	}
}

// TestMergeRejectsInvalidRules tests validation of user rules.
func TestMergeRejectsInvalidRules(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		rule KeywordRule
	}{
		{"empty phrase", KeywordRule{Phrase: "", Penalty: 10}},
		{"zero penalty", KeywordRule{Phrase: "scam", Penalty: 0}},
		{"negative penalty", KeywordRule{Phrase: "scam", Penalty: -5}},
		{"negative repeats", KeywordRule{Phrase: "scam", Penalty: 10, MinRepeats: -1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Default().Merge([]KeywordRule{tc.rule}); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
