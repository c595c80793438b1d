package rules

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pagelens/backend/internal/audit/dom"
	"github.com/pagelens/backend/internal/audit/locate"
	"github.com/pagelens/backend/internal/audit/report"
)

// singletonTag enforces exactly-one semantics for an element. Zero matches
// emit the missing issue; more than one emits the surplus issue located at
// the second occurrence.
type singletonTag struct {
	loc     locate.Strategy
	tag     string
	missing report.Issue
	surplus func(count int) report.Issue
}

func newSingleMain(loc locate.Strategy) *singletonTag {
	return &singletonTag{
		loc: loc,
		tag: "main",
		missing: report.Issue{
			Severity:    report.SeverityCritical,
			Description: "No <main> element found",
			Suggestion:  "Wrap the page's primary content in a single <main> landmark",
		},
		surplus: func(count int) report.Issue {
			return report.Issue{
				Severity:    report.SeverityWarning,
				Description: fmt.Sprintf("Found %d <main> elements; a document should have exactly one", count),
				Suggestion:  "Keep one <main> and convert the others to <section> or <div>",
			}
		},
	}
}

func newSingleH1(loc locate.Strategy) *singletonTag {
	return &singletonTag{
		loc: loc,
		tag: "h1",
		missing: report.Issue{
			Severity:    report.SeverityCritical,
			Description: "No <h1> heading found",
			Suggestion:  "Add a single <h1> describing the page's main topic",
		},
		surplus: func(count int) report.Issue {
			return report.Issue{
				Severity:    report.SeverityWarning,
				Description: fmt.Sprintf("Found %d <h1> headings; a document should have exactly one", count),
				Suggestion:  "Demote additional <h1> headings to <h2> or below",
			}
		},
	}
}

func (r *singletonTag) Name() string { return "single-" + r.tag }

func (r *singletonTag) Inspect(doc *dom.Document, raw string) []report.Issue {
	matches := doc.Find(r.tag)
	switch count := matches.Length(); {
	case count == 0:
		return []report.Issue{r.missing}
	case count > 1:
		second := locate.FromSelection(matches.Eq(1))
		return []report.Issue{located(r.loc, raw, second, r.surplus(count))}
	}
	return nil
}

// landmarkTags are the region-marking elements checked for presence.
var landmarkTags = []string{"header", "nav", "footer", "section", "article", "aside"}

// landmarkPresence warns when no landmark element appears anywhere.
type landmarkPresence struct{}

func (r *landmarkPresence) Name() string { return "landmark-presence" }

func (r *landmarkPresence) Inspect(doc *dom.Document, raw string) []report.Issue {
	if doc.Find(strings.Join(landmarkTags, ", ")).Length() > 0 {
		return nil
	}
	return []report.Issue{{
		Severity:    report.SeverityWarning,
		Description: "No landmark elements found (header, nav, footer, section, article, aside)",
		Suggestion:  "Structure the page with semantic landmark elements instead of generic containers",
	}}
}

// duplicateIDs flags every element whose id was already seen earlier in
// document order. The seen set is updated for each element regardless of
// duplication.
type duplicateIDs struct {
	loc locate.Strategy
}

func (r *duplicateIDs) Name() string { return "duplicate-ids" }

func (r *duplicateIDs) Inspect(doc *dom.Document, raw string) []report.Issue {
	var issues []report.Issue
	seen := make(map[string]bool)

	doc.Find("[id]").Each(func(_ int, sel *goquery.Selection) {
		id := strings.TrimSpace(sel.AttrOr("id", ""))
		if id == "" {
			return
		}
		if seen[id] {
			issues = append(issues, located(r.loc, raw, locate.FromSelection(sel), report.Issue{
				Severity:    report.SeverityCritical,
				Description: fmt.Sprintf("Duplicate id %q", id),
				Suggestion:  "Element ids must be unique within a document",
			}))
		}
		seen[id] = true
	})
	return issues
}

// ariaMainDiv suggests the native landmark over div[role=main].
type ariaMainDiv struct {
	loc locate.Strategy
}

func (r *ariaMainDiv) Name() string { return "aria-main-div" }

func (r *ariaMainDiv) Inspect(doc *dom.Document, raw string) []report.Issue {
	match := doc.Find(`div[role="main"]`)
	if match.Length() == 0 {
		return nil
	}
	return []report.Issue{located(r.loc, raw, locate.FromSelection(match.First()), report.Issue{
		Severity:    report.SeverityInfo,
		Description: `<div role="main"> used instead of the native <main> element`,
		Suggestion:  "Replace the div with <main>; native landmarks need no role attribute",
	})}
}
