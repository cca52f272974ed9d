package model

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// TestNewPageSnapshotNormalizes tests that URL and text are case-folded.
func TestNewPageSnapshotNormalizes(t *testing.T) {
	t.Parallel()

	snap := NewPageSnapshot(
		"HTTPS://Example.COM/Login",
		"Verify Your ACCOUNT Now",
		[]string{"https://Example.com/a"},
	)

	if snap.URL != "https://example.com/login" {
		t.Errorf("URL not normalized: %q", snap.URL)
	}
	if snap.VisibleText != "verify your account now" {
		t.Errorf("VisibleText not normalized: %q", snap.VisibleText)
	}
	// Outbound links keep their original form; structural checks parse
	// them individually.
	if snap.OutboundLinks[0] != "https://Example.com/a" {
		t.Errorf("OutboundLinks should be unmodified, got %q", snap.OutboundLinks[0])
	}
}

// TestNewPageSnapshotTruncates tests the visible-text size bound.
func TestNewPageSnapshotTruncates(t *testing.T) {
	t.Parallel()

	huge := strings.Repeat("a", MaxVisibleTextSize+1024)
	snap := NewPageSnapshot("https://example.com", huge, nil)

	if len(snap.VisibleText) > MaxVisibleTextSize {
		t.Errorf("VisibleText not truncated: %d bytes", len(snap.VisibleText))
	}
}

// TestNewPageSnapshotTruncatesOnRuneBoundary tests that the size bound
// never splits a multi-byte rune.
func TestNewPageSnapshotTruncatesOnRuneBoundary(t *testing.T) {
	t.Parallel()

	// "é" is two bytes in UTF-8; place it so the byte limit falls in
	// the middle of the sequence.
	text := strings.Repeat("a", MaxVisibleTextSize-1) + "équence"
	snap := NewPageSnapshot("https://example.com", text, nil)

	if !utf8.ValidString(snap.VisibleText) {
		t.Error("VisibleText contains a split rune")
	}
	if len(snap.VisibleText) > MaxVisibleTextSize {
		t.Errorf("VisibleText not truncated: %d bytes", len(snap.VisibleText))
	}
	if !strings.HasSuffix(snap.VisibleText, "a") {
		t.Errorf("expected the partial rune to be dropped, got trailing %q",
			snap.VisibleText[len(snap.VisibleText)-1:])
	}
}

// TestNormalizeFoldsUnicode tests that case folding handles non-ASCII.
func TestNormalizeFoldsUnicode(t *testing.T) {
	t.Parallel()

	if Normalize("PAYPAL") != "paypal" {
		t.Errorf("ASCII folding failed: %q", Normalize("PAYPAL"))
	}
	// Kelvin sign folds to plain k under Unicode case folding.
	if Normalize("K") != "k" {
		t.Errorf("Unicode folding failed: %q", Normalize("K"))
	}
}
