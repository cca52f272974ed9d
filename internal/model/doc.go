// Package model defines the core data structures used throughout TrustLens.
//
// This package contains the following main types:
//   - PageSnapshot: A point-in-time capture of a page's text and links
//   - Verdict: The complete output of one scoring pass
//   - RiskLevel: The discrete risk band derived from the trust score
//   - HistoryRecord: One persisted scan result
//   - Message: The cross-context message vocabulary
//
// Multiple packages (engine, store, bus, panel, report) need these types,
// so centralizing them prevents import cycles. All persisted types are
// designed to be serializable to JSON.
package model
