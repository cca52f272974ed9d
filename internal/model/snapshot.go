package model

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// MaxVisibleTextSize is the maximum size of the visible-text capture in
// bytes. Text beyond this limit is dropped to bound memory usage on
// pathological pages; keyword matching over the truncated prefix is an
// accepted approximation.
const MaxVisibleTextSize = 512 * 1024 // 512 KB

// foldCaser performs Unicode case folding for matching.
// strings.ToLower is not sufficient for all scripts; case folding gives
// stable results for phrases like "PayPal" vs "PAYPAL" in any casing.
var foldCaser = cases.Fold()

// Normalize case-folds a string for case-insensitive matching.
// Both rule phrases and page content pass through this function so that
// comparisons are performed in the same fold space.
func Normalize(s string) string {
	return foldCaser.String(s)
}

// PageSnapshot is a point-in-time capture of a single rendered page.
// It is the sole input to the scoring engine: the engine never touches
// the network or storage, only this structure.
type PageSnapshot struct {
	// URL is the absolute page URL, case-folded for matching.
	URL string `json:"url"`

	// VisibleText is the case-folded visible text content of the page.
	// Script, style, and other non-rendered content is excluded.
	VisibleText string `json:"visible_text"`

	// OutboundLinks contains the absolute URLs of all anchors found on
	// the page. Links that fail to parse are kept here and excluded
	// later by the individual structural checks that need a hostname.
	OutboundLinks []string `json:"outbound_links"`
}

// NewPageSnapshot builds a snapshot with URL and text normalized.
// VisibleText is truncated to at most MaxVisibleTextSize bytes before
// folding, cutting on a rune boundary so the fold never sees a split
// multi-byte sequence.
func NewPageSnapshot(url, visibleText string, outboundLinks []string) PageSnapshot {
	if len(visibleText) > MaxVisibleTextSize {
		cut := MaxVisibleTextSize
		for cut > 0 && !utf8.RuneStart(visibleText[cut]) {
			cut--
		}
		visibleText = visibleText[:cut]
	}
	return PageSnapshot{
		URL:           Normalize(url),
		VisibleText:   Normalize(visibleText),
		OutboundLinks: outboundLinks,
	}
}
