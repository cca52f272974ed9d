// Package report renders scan results for the user-facing surface in
// three formats: human-readable text for the terminal, JSON for tool
// integration, and Markdown for documentation and sharing.
package report
