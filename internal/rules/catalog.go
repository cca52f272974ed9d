package rules

import (
	"regexp"

	"github.com/trustlens/trustlens/internal/model"
)

// KeywordRule penalizes repeated occurrences of a suspicious phrase.
// The penalty applies when the occurrence count in the visible text
// strictly exceeds MinRepeats.
type KeywordRule struct {
	// Phrase is the exact phrase to match, stored case-folded.
	Phrase string `yaml:"phrase"`

	// MinRepeats is the repeat threshold. A count of MinRepeats
	// occurrences is tolerated; one more triggers the penalty.
	MinRepeats int `yaml:"min_repeats"`

	// Penalty is subtracted from the trust score when triggered.
	Penalty int `yaml:"penalty"`
}

// Brand is a payment or service brand with a known official domain.
// A page mentioning the token while hosted elsewhere is penalized by the
// brand-mismatch check.
type Brand struct {
	// Token is the case-folded token searched for in visible text.
	Token string

	// Display is the brand name as written in red flags.
	Display string

	// Domain is the brand's official domain. A page host belongs to the
	// brand when it equals the domain or is a subdomain of it.
	Domain string
}

// RegexRule describes a content pattern reported as an informational
// signal. Regex rules never affect the trust score; they surface in
// detailed reports only.
type RegexRule struct {
	// Pattern matches sensitive-looking content in the visible text.
	Pattern *regexp.Regexp

	// Description is the human-readable signal name.
	Description string
}

// Structural check penalties. Each named check subtracts its weight at
// most once per scan.
const (
	// PenaltyInsecureLogin applies when a login/account URL is served
	// without HTTPS.
	PenaltyInsecureLogin = 30

	// PenaltySuspiciousDomains applies when too many outbound links
	// point at hyphen-heavy hostnames.
	PenaltySuspiciousDomains = 15

	// PenaltyShortenedLinks applies when any outbound link uses a known
	// URL shortener.
	PenaltyShortenedLinks = 10

	// PenaltyBrandMismatch applies when a known brand is mentioned but
	// the page is not hosted on that brand's domain.
	PenaltyBrandMismatch = 20

	// PenaltyFinancialMismatch applies when generic financial content
	// appears on a URL that does not contain the term.
	PenaltyFinancialMismatch = 15

	// PenaltyUrgencyCluster applies once when at least
	// MinUrgencyPhrases distinct urgency phrases are present.
	PenaltyUrgencyCluster = 15
)

// Structural check thresholds.
const (
	// MaxHyphenSegments is the hostname hyphen-segment count above
	// which a link is considered suspicious-looking.
	MaxHyphenSegments = 3

	// MaxSuspiciousLinks is the suspicious-link count above which the
	// domain-shape penalty fires.
	MaxSuspiciousLinks = 3

	// MinUrgencyPhrases is the number of distinct urgency phrases that
	// must be present before the urgency-cluster penalty fires.
	MinUrgencyPhrases = 2
)

// Catalog is the immutable set of scoring rules.
type Catalog struct {
	// KeywordRules are the repeated-phrase rules.
	KeywordRules []KeywordRule

	// RegexRules are the informational content patterns.
	RegexRules []RegexRule

	// UrgencyPhrases are the phrases counted by the urgency-cluster
	// check. Stored case-folded.
	UrgencyPhrases []string

	// Brands are the known brand tokens and the domains pages
	// mentioning them must belong to.
	Brands []Brand

	// FinancialTerms are generic financial terms that must also appear
	// in the page URL.
	FinancialTerms []string

	// ShortenerHosts are hostnames of known URL shorteners.
	ShortenerHosts []string
}

// defaultKeywordPenalty and defaultMinRepeats are the weights used by
// every built-in keyword rule.
const (
	defaultKeywordPenalty = 10
	defaultMinRepeats     = 2
)

// defaultPhrases is the built-in suspicious-phrase list.
var defaultPhrases = []string{
	"urgent", "act now", "limited time", "guaranteed income", "work from home",
	"easy money", "click here now", "verify your account", "suspended account",
	"confirm your identity", "wire transfer", "bitcoin", "cryptocurrency investment",
	"double your money", "risk free", "no experience needed", "earn $$$",
	"congratulations you won", "claim your prize", "free money",
}

// Default returns the built-in rule catalog.
// The returned catalog is freshly allocated; callers may hold it for the
// process lifetime and must treat it as read-only.
func Default() *Catalog {
	keywords := make([]KeywordRule, 0, len(defaultPhrases))
	for _, phrase := range defaultPhrases {
		keywords = append(keywords, KeywordRule{
			Phrase:     model.Normalize(phrase),
			MinRepeats: defaultMinRepeats,
			Penalty:    defaultKeywordPenalty,
		})
	}

	return &Catalog{
		KeywordRules: keywords,
		RegexRules: []RegexRule{
			{Pattern: regexp.MustCompile(`\b\d{16}\b`), Description: "16-digit number (possible card number)"},
			{Pattern: regexp.MustCompile(`(?i)password`), Description: "password prompt"},
			{Pattern: regexp.MustCompile(`(?i)ssn|social security`), Description: "social security reference"},
			{Pattern: regexp.MustCompile(`(?i)bank account`), Description: "bank account reference"},
			{Pattern: regexp.MustCompile(`(?i)routing number`), Description: "routing number reference"},
		},
		UrgencyPhrases: []string{"urgent", "immediately", "act now", "expires today"},
		Brands: []Brand{
			{Token: "paypal", Display: "PayPal", Domain: "paypal.com"},
		},
		FinancialTerms: []string{"bank"},
		ShortenerHosts: []string{"bit.ly", "tinyurl.com", "t.co"},
	}
}

// MatchPatterns returns the descriptions of all regex rules that match
// the given visible text. The result is informational only and does not
// contribute to the trust score.
func (c *Catalog) MatchPatterns(visibleText string) []string {
	signals := make([]string, 0)
	for _, rule := range c.RegexRules {
		if rule.Pattern.MatchString(visibleText) {
			signals = append(signals, rule.Description)
		}
	}
	return signals
}
