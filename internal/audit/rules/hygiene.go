package rules

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/pagelens/backend/internal/audit/dom"
	"github.com/pagelens/backend/internal/audit/locate"
	"github.com/pagelens/backend/internal/audit/report"
)

// inlineStyles reports the first cap elements carrying a style attribute
// individually, then a single rollup stating the remaining count.
type inlineStyles struct {
	loc locate.Strategy
	cap int
}

func (r *inlineStyles) Name() string { return "inline-styles" }

func (r *inlineStyles) Inspect(doc *dom.Document, raw string) []report.Issue {
	var issues []report.Issue
	styled := doc.Find("[style]")

	styled.Each(func(i int, sel *goquery.Selection) {
		if i >= r.cap {
			return
		}
		issues = append(issues, located(r.loc, raw, locate.FromSelection(sel), report.Issue{
			Severity:    report.SeverityWarning,
			Description: fmt.Sprintf("Inline style attribute on <%s>", goquery.NodeName(sel)),
			Suggestion:  "Move presentation rules into a stylesheet",
		}))
	})

	if extra := styled.Length() - r.cap; extra > 0 {
		issues = append(issues, report.Issue{
			Severity:    report.SeverityWarning,
			Description: fmt.Sprintf("...and %d more elements with inline style attributes", extra),
			Suggestion:  "Move presentation rules into a stylesheet",
		})
	}
	return issues
}

// nestingDepth measures the deepest element path below body (body itself is
// depth 0) and warns once when it exceeds the limit.
type nestingDepth struct {
	max int
}

func (r *nestingDepth) Name() string { return "nesting-depth" }

func (r *nestingDepth) Inspect(doc *dom.Document, raw string) []report.Issue {
	body := doc.Body()
	if body == nil {
		return nil
	}
	depth := maxElementDepth(body)
	if depth <= r.max {
		return nil
	}
	return []report.Issue{{
		Severity:    report.SeverityWarning,
		Description: fmt.Sprintf("DOM nesting reaches %d levels (limit %d)", depth, r.max),
		Suggestion:  "Flatten the markup; deep trees hurt readability and rendering cost",
	}}
}

func maxElementDepth(n *html.Node) int {
	deepest := 0
	for _, child := range dom.ElementChildren(n) {
		if d := maxElementDepth(child) + 1; d > deepest {
			deepest = d
		}
	}
	return deepest
}

// divSoup reports redundant div-wrapping-div chains. Only the first cap
// wrappers are surfaced; later ones are counted but intentionally silent.
type divSoup struct {
	loc locate.Strategy
	cap int
}

func (r *divSoup) Name() string { return "div-soup" }

func (r *divSoup) Inspect(doc *dom.Document, raw string) []report.Issue {
	var issues []report.Issue
	found := 0

	doc.Find("div").Each(func(_ int, sel *goquery.Selection) {
		node := sel.Get(0)
		children := dom.ElementChildren(node)
		if len(children) != 1 || children[0].Data != "div" {
			return
		}
		found++
		if found > r.cap {
			return
		}
		issues = append(issues, located(r.loc, raw, locate.FromSelection(sel), report.Issue{
			Severity:    report.SeverityInfo,
			Description: "Redundant wrapper: <div> whose only child is another <div>",
			Suggestion:  "Collapse wrapper divs that add no styling or semantics",
		}))
	})
	return issues
}
