package model

import (
	"time"

	"github.com/google/uuid"
)

// HistoryCap is the maximum number of records kept in the scan history.
// Appending beyond the cap evicts the oldest record (FIFO by insertion).
const HistoryCap = 50

// HistoryRecord is one persisted scan result.
// Records are stored newest-first and are never updated after insertion.
type HistoryRecord struct {
	// ID uniquely identifies the scan.
	ID string `json:"id"`

	// URL is the scanned page URL.
	URL string `json:"url"`

	// Timestamp is when the scan completed, serialized as ISO-8601.
	Timestamp time.Time `json:"timestamp"`

	// Score is the trust score of the verdict.
	Score int `json:"score"`

	// Risk is the risk level of the verdict.
	Risk RiskLevel `json:"risk"`
}

// NewHistoryRecord builds a history record for a verdict produced now.
func NewHistoryRecord(url string, verdict Verdict) HistoryRecord {
	return HistoryRecord{
		ID:        uuid.NewString(),
		URL:       url,
		Timestamp: time.Now().UTC(),
		Score:     verdict.TrustScore,
		Risk:      verdict.RiskLevel,
	}
}
