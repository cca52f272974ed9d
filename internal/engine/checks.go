package engine

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/trustlens/trustlens/internal/model"
	"github.com/trustlens/trustlens/internal/rules"
)

// structuralCheck is a named boolean predicate over a snapshot.
// When it fires, it reports the penalty to subtract and the red flag to
// record.
type structuralCheck func(model.PageSnapshot) (penalty int, flag string, fired bool)

// loginTokens are URL substrings that mark a page as a login or account
// page for the insecure-login check.
var loginTokens = []string{"login", "signin", "account"}

// secureSchemePrefix marks a URL as served over TLS.
const secureSchemePrefix = "https://"

// checkInsecureLogin fires when a login/account URL is not HTTPS.
func (e *Engine) checkInsecureLogin(snap model.PageSnapshot) (int, string, bool) {
	isLoginPage := false
	for _, token := range loginTokens {
		if strings.Contains(snap.URL, token) {
			isLoginPage = true
			break
		}
	}
	if !isLoginPage || strings.HasPrefix(snap.URL, secureSchemePrefix) {
		return 0, "", false
	}
	return rules.PenaltyInsecureLogin, "Insecure connection (no HTTPS) on login/account page", true
}

// checkSuspiciousDomains fires when more than MaxSuspiciousLinks
// outbound links point at hyphen-heavy hostnames. Links that do not
// parse are excluded from the count.
func (e *Engine) checkSuspiciousDomains(snap model.PageSnapshot) (int, string, bool) {
	count := 0
	for _, link := range snap.OutboundLinks {
		host, ok := linkHost(link)
		if !ok {
			continue
		}
		if strings.Contains(host, "-") && len(strings.Split(host, "-")) > rules.MaxHyphenSegments {
			count++
		}
	}
	if count <= rules.MaxSuspiciousLinks {
		return 0, "", false
	}
	return rules.PenaltySuspiciousDomains,
		fmt.Sprintf("%d suspicious-looking domain names detected", count), true
}

// checkShortenedLinks fires when any outbound link resolves to a known
// URL-shortener host. Unparseable links are excluded from the count.
func (e *Engine) checkShortenedLinks(snap model.PageSnapshot) (int, string, bool) {
	count := 0
	for _, link := range snap.OutboundLinks {
		host, ok := linkHost(link)
		if !ok {
			continue
		}
		for _, shortener := range e.catalog.ShortenerHosts {
			if hostBelongs(host, shortener) {
				count++
				break
			}
		}
	}
	if count == 0 {
		return 0, "", false
	}
	return rules.PenaltyShortenedLinks,
		fmt.Sprintf("%d shortened URLs detected (may hide destination)", count), true
}

// checkBrandMismatch fires when a known brand token appears in the
// visible text but the page host does not belong to the brand's domain.
func (e *Engine) checkBrandMismatch(snap model.PageSnapshot) (int, string, bool) {
	pageHost, hostKnown := linkHost(snap.URL)
	for _, brand := range e.catalog.Brands {
		if !strings.Contains(snap.VisibleText, brand.Token) {
			continue
		}
		if hostKnown && hostBelongs(pageHost, brand.Domain) {
			continue
		}
		return rules.PenaltyBrandMismatch,
			fmt.Sprintf("Mentions %s but not on official %s domain", brand.Display, brand.Display), true
	}
	return 0, "", false
}

// checkFinancialMismatch fires when a generic financial term appears in
// the visible text but not in the page URL.
func (e *Engine) checkFinancialMismatch(snap model.PageSnapshot) (int, string, bool) {
	for _, term := range e.catalog.FinancialTerms {
		if strings.Contains(snap.VisibleText, term) && !strings.Contains(snap.URL, term) {
			return rules.PenaltyFinancialMismatch,
				"Banking-related content on non-banking domain", true
		}
	}
	return 0, "", false
}

// checkUrgencyCluster fires once when at least MinUrgencyPhrases
// distinct urgency phrases are present, regardless of how many phrases
// beyond the threshold appear.
func (e *Engine) checkUrgencyCluster(snap model.PageSnapshot) (int, string, bool) {
	distinct := 0
	for _, phrase := range e.catalog.UrgencyPhrases {
		if strings.Contains(snap.VisibleText, phrase) {
			distinct++
		}
	}
	if distinct < rules.MinUrgencyPhrases {
		return 0, "", false
	}
	return rules.PenaltyUrgencyCluster, "High-pressure urgency tactics detected", true
}

// linkHost extracts the lower-cased hostname from an absolute URL.
// It reports false for anything that does not parse as an absolute URL
// with a host, which excludes the link from host-based checks.
func linkHost(link string) (string, bool) {
	u, err := url.Parse(link)
	if err != nil || !u.IsAbs() || u.Hostname() == "" {
		return "", false
	}
	return strings.ToLower(u.Hostname()), true
}

// hostBelongs reports whether host equals domain or is a subdomain of
// it.
func hostBelongs(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}
