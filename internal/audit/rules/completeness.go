package rules

import (
	"fmt"

	"github.com/pagelens/backend/internal/audit/dom"
	"github.com/pagelens/backend/internal/audit/locate"
	"github.com/pagelens/backend/internal/audit/report"
)

// titlePresence requires a non-empty <title>.
type titlePresence struct {
	loc locate.Strategy
}

func (r *titlePresence) Name() string { return "title-presence" }

func (r *titlePresence) Inspect(doc *dom.Document, raw string) []report.Issue {
	node := doc.XPathOne("//title")
	if node != nil && dom.Text(node) != "" {
		return nil
	}
	issue := report.Issue{
		Severity:    report.SeverityCritical,
		Description: "Missing or empty <title> element",
		Suggestion:  "Give the document a descriptive title for tabs, bookmarks, and search results",
	}
	if node != nil {
		issue = located(r.loc, raw, locate.FromNode(node), issue)
	}
	return []report.Issue{issue}
}

// viewportMeta requires a viewport meta tag.
type viewportMeta struct{}

func (r *viewportMeta) Name() string { return "viewport-meta" }

func (r *viewportMeta) Inspect(doc *dom.Document, raw string) []report.Issue {
	if doc.XPathOne(`//meta[@name="viewport"]`) != nil {
		return nil
	}
	return []report.Issue{{
		Severity:    report.SeverityCritical,
		Description: `Missing <meta name="viewport"> tag`,
		Suggestion:  `Add <meta name="viewport" content="width=device-width, initial-scale=1"> for mobile rendering`,
	}}
}

// openGraphPair checks og:title and og:image as a pair: a single advisory
// issue fires when either is absent.
type openGraphPair struct{}

func (r *openGraphPair) Name() string { return "open-graph-pair" }

func (r *openGraphPair) Inspect(doc *dom.Document, raw string) []report.Issue {
	hasTitle := doc.XPathOne(`//meta[@property="og:title"]`) != nil
	hasImage := doc.XPathOne(`//meta[@property="og:image"]`) != nil
	if hasTitle && hasImage {
		return nil
	}
	return []report.Issue{{
		Severity:    report.SeverityInfo,
		Description: "Missing Open Graph tags (og:title, og:image)",
		Suggestion:  "Add og:title and og:image meta tags for rich link previews",
	}}
}

// deprecatedTagNames is the fixed set of obsolete elements checked for.
var deprecatedTagNames = []string{"font", "center", "strike", "marquee", "blink"}

// deprecatedTags emits one warning per deprecated tag present, located at
// its first instance.
type deprecatedTags struct {
	loc locate.Strategy
}

func (r *deprecatedTags) Name() string { return "deprecated-tags" }

func (r *deprecatedTags) Inspect(doc *dom.Document, raw string) []report.Issue {
	var issues []report.Issue
	for _, tag := range deprecatedTagNames {
		nodes := doc.XPath("//" + tag)
		if len(nodes) == 0 {
			continue
		}
		issues = append(issues, located(r.loc, raw, locate.FromNode(nodes[0]), report.Issue{
			Severity:    report.SeverityWarning,
			Description: fmt.Sprintf("Deprecated element <%s> in use", tag),
			Suggestion:  fmt.Sprintf("Replace <%s> with modern markup and CSS", tag),
		}))
	}
	return issues
}
