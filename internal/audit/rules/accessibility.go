package rules

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pagelens/backend/internal/audit/dom"
	"github.com/pagelens/backend/internal/audit/locate"
	"github.com/pagelens/backend/internal/audit/report"
)

// imgAlt flags every image without an alt attribute. Presence is what
// counts; an empty alt marks a decorative image and passes.
type imgAlt struct {
	loc locate.Strategy
}

func (r *imgAlt) Name() string { return "img-alt" }

func (r *imgAlt) Inspect(doc *dom.Document, raw string) []report.Issue {
	var issues []report.Issue
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		if _, ok := sel.Attr("alt"); ok {
			return
		}
		src := sel.AttrOr("src", "")
		if src == "" {
			src = "unknown"
		}
		issues = append(issues, located(r.loc, raw, locate.FromSelection(sel), report.Issue{
			Severity:    report.SeverityCritical,
			Description: fmt.Sprintf(`Image missing alt attribute (src="%s")`, src),
			Suggestion:  `Add alt text describing the image, or alt="" if it is decorative`,
		}))
	})
	return issues
}

// nonTextInputTypes are the input types exempt from labeling.
var nonTextInputTypes = map[string]bool{
	"hidden": true,
	"submit": true,
	"button": true,
}

// inputLabels requires every text-entry input to be labeled via aria-label,
// aria-labelledby, a label[for] reference, or an ancestor label.
type inputLabels struct {
	loc locate.Strategy
}

func (r *inputLabels) Name() string { return "input-labels" }

func (r *inputLabels) Inspect(doc *dom.Document, raw string) []report.Issue {
	var issues []report.Issue
	doc.Find("input").Each(func(_ int, sel *goquery.Selection) {
		typ := strings.ToLower(sel.AttrOr("type", "text"))
		if nonTextInputTypes[typ] {
			return
		}
		if labeled(doc, sel) {
			return
		}
		issues = append(issues, located(r.loc, raw, locate.FromSelection(sel), report.Issue{
			Severity:    report.SeverityCritical,
			Description: fmt.Sprintf(`Form input (type="%s") has no associated label`, typ),
			Suggestion:  "Associate a <label for>, wrap the input in a <label>, or add aria-label",
		}))
	})
	return issues
}

func labeled(doc *dom.Document, sel *goquery.Selection) bool {
	if strings.TrimSpace(sel.AttrOr("aria-label", "")) != "" {
		return true
	}
	if strings.TrimSpace(sel.AttrOr("aria-labelledby", "")) != "" {
		return true
	}
	if id := strings.TrimSpace(sel.AttrOr("id", "")); id != "" {
		if doc.Find(`label[for="`+id+`"]`).Length() > 0 {
			return true
		}
	}
	return sel.Closest("label").Length() > 0
}

// htmlLang requires a non-empty lang attribute on the root element. An
// attribute that trims to nothing counts as missing.
type htmlLang struct{}

func (r *htmlLang) Name() string { return "html-lang" }

func (r *htmlLang) Inspect(doc *dom.Document, raw string) []report.Issue {
	root := doc.Find("html").First()
	if root.Length() > 0 && strings.TrimSpace(root.AttrOr("lang", "")) != "" {
		return nil
	}
	return []report.Issue{{
		Severity:    report.SeverityCritical,
		Description: "Document is missing a lang attribute on <html>",
		Suggestion:  `Declare the page language, e.g. <html lang="en">`,
	}}
}

// buttonText requires every button to have visible text or an ARIA label.
type buttonText struct {
	loc locate.Strategy
}

func (r *buttonText) Name() string { return "button-text" }

func (r *buttonText) Inspect(doc *dom.Document, raw string) []report.Issue {
	var issues []report.Issue
	doc.Find("button").Each(func(_ int, sel *goquery.Selection) {
		if strings.TrimSpace(sel.Text()) != "" {
			return
		}
		if strings.TrimSpace(sel.AttrOr("aria-label", "")) != "" ||
			strings.TrimSpace(sel.AttrOr("aria-labelledby", "")) != "" {
			return
		}
		issues = append(issues, located(r.loc, raw, locate.FromSelection(sel), report.Issue{
			Severity:    report.SeverityCritical,
			Description: "<button> has no accessible text",
			Suggestion:  "Give the button visible text or an aria-label",
		}))
	})
	return issues
}
