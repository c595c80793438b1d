// Package locate maps tree elements back to approximate positions in the
// original raw markup.
//
// Positions are heuristic, not exact: the default strategy scans the raw
// text for a token derived from the element and can match an unrelated
// element that shares the same id, class, or src earlier in the document.
// Callers must treat the result as best-effort.
package locate

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// DefaultSnippetLen is the maximum snippet length before the ellipsis.
const DefaultSnippetLen = 60

// Location is a best-effort source position.
type Location struct {
	Line    int
	Snippet string
}

// Target captures the element attributes a strategy can key on.
type Target struct {
	Tag   string
	ID    string
	Class string
	Src   string

	hasClass bool
	hasSrc   bool
}

// FromSelection builds a Target from a goquery selection.
func FromSelection(sel *goquery.Selection) Target {
	if sel == nil || sel.Length() == 0 {
		return Target{}
	}
	t := Target{
		Tag: goquery.NodeName(sel),
		ID:  strings.TrimSpace(sel.AttrOr("id", "")),
	}
	t.Class, t.hasClass = sel.Attr("class")
	t.Src, t.hasSrc = sel.Attr("src")
	return t
}

// FromNode builds a Target from a raw tree node.
func FromNode(n *html.Node) Target {
	if n == nil || n.Type != html.ElementNode {
		return Target{}
	}
	t := Target{Tag: n.Data}
	for _, a := range n.Attr {
		switch a.Key {
		case "id":
			t.ID = strings.TrimSpace(a.Val)
		case "class":
			t.Class, t.hasClass = a.Val, true
		case "src":
			t.Src, t.hasSrc = a.Val, true
		}
	}
	return t
}

// Strategy resolves a Target to a position in the raw markup. A tree service
// that tracks exact source offsets could supply its own implementation; the
// token scan below is the fallback.
type Strategy interface {
	Locate(raw string, target Target) (Location, bool)
}

// TokenSearch is the default strategy: derive a search token from the
// element (id, then class, then src, then the opening-tag prefix) and take
// the first plain-substring occurrence in the raw text. A false match on an
// earlier element sharing the token is a known, accepted limitation.
type TokenSearch struct {
	// SnippetLen overrides DefaultSnippetLen when positive.
	SnippetLen int
}

// Locate implements Strategy. Any internal failure downgrades to "not
// found"; resolution must never abort a rule.
func (t TokenSearch) Locate(raw string, target Target) (loc Location, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			loc, ok = Location{}, false
		}
	}()

	token := searchToken(target)
	if token == "" {
		return Location{}, false
	}

	idx := strings.Index(raw, token)
	if idx < 0 {
		return Location{}, false
	}

	line := 1 + strings.Count(raw[:idx], "\n")
	return Location{Line: line, Snippet: t.snippet(raw, idx)}, true
}

// snippet extracts the full line around offset, trimmed and truncated.
func (t TokenSearch) snippet(raw string, offset int) string {
	start := strings.LastIndexByte(raw[:offset], '\n') + 1
	end := strings.IndexByte(raw[offset:], '\n')
	if end < 0 {
		end = len(raw)
	} else {
		end += offset
	}

	line := strings.TrimSpace(raw[start:end])
	max := t.SnippetLen
	if max <= 0 {
		max = DefaultSnippetLen
	}
	if len(line) > max {
		line = line[:max] + "..."
	}
	return line
}

// searchToken selects the token by priority: id, class, src, tag-open.
func searchToken(target Target) string {
	if target.ID != "" {
		return fmt.Sprintf(`id="%s"`, target.ID)
	}
	if target.hasClass {
		return fmt.Sprintf(`class="%s"`, target.Class)
	}
	if target.hasSrc {
		return fmt.Sprintf(`src="%s"`, target.Src)
	}
	if target.Tag != "" {
		return "<" + strings.ToLower(target.Tag)
	}
	return ""
}
