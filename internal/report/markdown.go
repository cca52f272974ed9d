package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/trustlens/trustlens/internal/model"
)

// MarkdownWriter outputs reports in GitHub Flavored Markdown.
// This format is designed for documentation and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the scan result in Markdown format.
func (w *MarkdownWriter) Write(scan *Scan) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, scan)
	if !scan.Trusted {
		w.writeVerdict(md, scan)
		w.writeAlert(md, scan)
	}
	w.writeHistory(md, scan)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, scan *Scan) {
	md.H1("TrustLens Report")
	md.PlainText("")

	status := "Scanned"
	if scan.Trusted {
		status = "Trusted (allow-listed, not scanned)"
	} else if scan.Degraded {
		status = "Limited scan (page not fully readable)"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"URL", "`" + scan.URL + "`"},
			{"Scan Date", scan.ScannedAt.Format("2006-01-02 15:04:05 MST")},
			{"Status", status},
		},
	})
	md.PlainText("")
}

// writeVerdict writes the score, risk badge, and red flags.
func (w *MarkdownWriter) writeVerdict(md *markdown.Markdown, scan *Scan) {
	verdict := scan.Verdict

	md.H2("Verdict")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Trust Score", "Risk Level"},
		Rows: [][]string{
			{strconv.Itoa(verdict.TrustScore) + "/100", riskBadges[verdict.RiskLevel]},
		},
	})
	md.PlainText("")

	md.H2("Red Flags")
	md.BulletList(verdict.RedFlags...)
	md.PlainText("")

	if len(scan.Signals) > 0 {
		md.H2("Content Signals")
		md.PlainText("These patterns were observed but did not affect the score.")
		md.BulletList(scan.Signals...)
		md.PlainText("")
	}
}

// writeAlert writes a GitHub alert block matching the risk level.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, scan *Scan) {
	switch scan.Verdict.RiskLevel {
	case model.RiskHigh:
		md.Cautionf("%s", scan.Verdict.Analysis)
	case model.RiskMedium:
		md.Warningf("%s", scan.Verdict.Analysis)
	case model.RiskLow:
		md.Importantf("%s", scan.Verdict.Analysis)
	default:
		md.Note(scan.Verdict.Analysis)
	}
	md.PlainText("")
}

// writeHistory writes the recent-scans table when present.
func (w *MarkdownWriter) writeHistory(md *markdown.Markdown, scan *Scan) {
	if len(scan.History) == 0 {
		return
	}

	rows := make([][]string, 0, len(scan.History))
	for _, record := range scan.History {
		rows = append(rows, []string{
			record.Timestamp.Format("2006-01-02 15:04"),
			"`" + record.URL + "`",
			strconv.Itoa(record.Score),
			record.Risk.String(),
		})
	}

	md.H2("Recent Scans")
	md.Table(markdown.TableSet{
		Header: []string{"Date", "URL", "Score", "Risk"},
		Rows:   rows,
	})
}
