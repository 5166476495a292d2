// Package report renders the final review document. Render is pure and
// deterministic: identical inputs always produce byte-identical markdown.
package report

import (
	"fmt"
	"strings"

	"github.com/juparave/prsentry/internal/domain"
)

const (
	headerLine   = "# 🤖 Automated Review Report"
	separator    = "---"
	noAnomalies  = "✅ **No Anomalies Found.** Static analysis reported no issues."
	anomaliesHdr = "## ⚠️ Anomalies Detected"
)

// Render merges the summary and the suggestions into one markdown document.
// Values that already carry embedded error text are rendered as-is; the
// formatter does not distinguish success text from failure text.
func Render(rpt *domain.Report) string {
	var sb strings.Builder

	sb.WriteString(headerLine + "\n\n")
	sb.WriteString("## Summary\n\n")
	sb.WriteString(rpt.Summary + "\n\n")
	sb.WriteString(separator + "\n\n")

	if !rpt.HasSuggestions() {
		sb.WriteString(noAnomalies + "\n")
	} else {
		sb.WriteString(anomaliesHdr + "\n\n")
		for _, s := range rpt.Suggestions {
			sb.WriteString(s.Header() + "\n\n")
			sb.WriteString(s.Body + "\n\n")
			sb.WriteString(separator + "\n\n")
		}
	}

	if rpt.Model != "" {
		sb.WriteString(fmt.Sprintf("\n_Generated by prsentry (%s) at %s_\n",
			rpt.Model, rpt.Date.UTC().Format("2006-01-02 15:04 UTC")))
	}

	return sb.String()
}
