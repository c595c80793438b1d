package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagelens/backend/internal/audit/report"
)

const completeDoc = `<!DOCTYPE html>
<html lang="en">
<head>
<title>All there</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta property="og:title" content="All there">
<meta property="og:image" content="https://example.com/card.png">
</head>
<body><main><h1>t</h1></main></body>
</html>`

func TestCompletenessCleanDocument(t *testing.T) {
	assert.Empty(t, runCategory(t, report.CategoryCompleteness, completeDoc))
}

func TestMissingTitle(t *testing.T) {
	raw := `<html><head><meta name="viewport" content="w"></head><body></body></html>`

	issues := runCategory(t, report.CategoryCompleteness, raw)

	var found *report.Issue
	for i := range issues {
		if issues[i].Description == "Missing or empty <title> element" {
			found = &issues[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, report.SeverityCritical, found.Severity)
	assert.Zero(t, found.Line)
}

func TestEmptyTitleIsLocated(t *testing.T) {
	raw := `<html><head>
<title></title>
<meta name="viewport" content="w">
</head><body></body></html>`

	issues := runCategory(t, report.CategoryCompleteness, raw)

	require.NotEmpty(t, issues)
	title := issues[0]
	assert.Equal(t, "Missing or empty <title> element", title.Description)
	// The empty element exists, so the issue carries its position.
	assert.Equal(t, 2, title.Line)
}

func TestMissingViewport(t *testing.T) {
	raw := `<html><head><title>T</title></head><body></body></html>`

	issues := runCategory(t, report.CategoryCompleteness, raw)

	var descs []string
	for _, issue := range bySeverity(issues, report.SeverityCritical) {
		descs = append(descs, issue.Description)
	}
	assert.Contains(t, descs, `Missing <meta name="viewport"> tag`)
}

func TestOpenGraphPair(t *testing.T) {
	tests := []struct {
		name    string
		head    string
		flagged bool
	}{
		{"both present", `<meta property="og:title" content="t"><meta property="og:image" content="i">`, false},
		{"only title", `<meta property="og:title" content="t">`, true},
		{"only image", `<meta property="og:image" content="i">`, true},
		{"neither", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := `<html><head><title>T</title><meta name="viewport" content="w">` + tt.head + `</head><body></body></html>`
			issues := runCategory(t, report.CategoryCompleteness, raw)

			infos := bySeverity(issues, report.SeverityInfo)
			if tt.flagged {
				require.Len(t, infos, 1)
				assert.Equal(t, "Missing Open Graph tags (og:title, og:image)", infos[0].Description)
			} else {
				assert.Empty(t, infos)
			}
		})
	}
}

func TestDeprecatedTags(t *testing.T) {
	raw := `<html><head><title>T</title><meta name="viewport" content="w"></head><body>
<font>old</font>
<center>mid</center>
<font>again</font>
</body></html>`

	issues := runCategory(t, report.CategoryCompleteness, raw)

	warnings := bySeverity(issues, report.SeverityWarning)
	require.Len(t, warnings, 2)
	// One warning per tag name, not per instance, located at the first use.
	assert.Equal(t, "Deprecated element <font> in use", warnings[0].Description)
	assert.Equal(t, 2, warnings[0].Line)
	assert.Equal(t, "Deprecated element <center> in use", warnings[1].Description)
	assert.Equal(t, 3, warnings[1].Line)
}
