// Package render turns reports into human-readable documents.
//
// These are the thin report consumers: an HTML view for browser display or
// print-to-PDF, and a plain-text view for terminals and logs. Source
// snippets pass through a bluemonday strict policy so markup fragments from
// the audited page can never execute in the rendered report.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/pagelens/backend/internal/audit/report"
)

var snippetPolicy = bluemonday.StrictPolicy()

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"sanitize": func(s string) string { return snippetPolicy.Sanitize(s) },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Audit Report — {{.Metadata.Source}}</title>
</head>
<body>
<main>
<h1>Audit Report</h1>
<p>Source: {{.Metadata.Source}} · {{.Metadata.Length}} characters · {{.Metadata.Date.Format "2006-01-02"}}</p>
<p>Overall score: <strong>{{.OverallScore}}/100</strong></p>
{{range .Categories}}
<section>
<h2>{{.Name}} — {{.Score}}/100</h2>
{{if .Issues}}
<ul>
{{range .Issues}}
<li>
<strong>{{.Severity}}</strong>: {{.Description}}
{{if .Line}}<em>(line {{.Line}})</em>{{end}}
{{if .Context}}<code>{{sanitize .Context}}</code>{{end}}
{{if .Suggestion}}<p>{{.Suggestion}}</p>{{end}}
</li>
{{end}}
</ul>
{{else}}
<p>No issues found.</p>
{{end}}
</section>
{{end}}
</main>
</body>
</html>
`))

// HTML renders the report as a standalone HTML document.
func HTML(rep *report.Report) (string, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, rep); err != nil {
		return "", fmt.Errorf("render html report: %w", err)
	}
	return buf.String(), nil
}

// Text renders the report as plain text.
func Text(rep *report.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Audit Report — %s\n", rep.Metadata.Source)
	fmt.Fprintf(&b, "Generated %s · %d characters\n", rep.Metadata.Date.Format("2006-01-02"), rep.Metadata.Length)
	fmt.Fprintf(&b, "Overall score: %d/100\n", rep.OverallScore)

	for _, cat := range rep.Categories {
		fmt.Fprintf(&b, "\n%s — %d/100\n", cat.Name, cat.Score)
		if len(cat.Issues) == 0 {
			b.WriteString("  no issues\n")
			continue
		}
		for _, issue := range cat.Issues {
			fmt.Fprintf(&b, "  [%s] %s", strings.ToUpper(string(issue.Severity)), issue.Description)
			if issue.Line > 0 {
				fmt.Fprintf(&b, " (line %d)", issue.Line)
			}
			b.WriteByte('\n')
			if issue.Context != "" {
				fmt.Fprintf(&b, "      > %s\n", issue.Context)
			}
			if issue.Suggestion != "" {
				fmt.Fprintf(&b, "      fix: %s\n", issue.Suggestion)
			}
		}
	}
	return b.String()
}
