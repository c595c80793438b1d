package rules

import (
	"github.com/pagelens/backend/internal/audit/dom"
	"github.com/pagelens/backend/internal/audit/locate"
	"github.com/pagelens/backend/internal/audit/report"
)

// Rule inspects one aspect of a parsed document.
type Rule interface {
	// Name identifies the rule for logs and tests.
	Name() string
	// Inspect returns the issues found, in deterministic order.
	Inspect(doc *dom.Document, raw string) []report.Issue
}

// Group binds a category name to its rules. Rule order within a group is the
// issue order in the report.
type Group struct {
	Category string
	Rules    []Rule
}

// Limits holds the tunable reporting caps and thresholds.
type Limits struct {
	// MaxNestingDepth is the deepest allowed element nesting below body.
	MaxNestingDepth int
	// InlineStyleCap is how many inline-style offenders are reported
	// individually before the rollup issue.
	InlineStyleCap int
	// DivSoupCap is how many redundant div wrappers are reported; wrappers
	// beyond the cap are counted but not surfaced.
	DivSoupCap int
}

// DefaultLimits returns the standard thresholds.
func DefaultLimits() Limits {
	return Limits{
		MaxNestingDepth: 8,
		InlineStyleCap:  3,
		DivSoupCap:      3,
	}
}

// Registry is the declarative mapping from categories to rules.
type Registry struct {
	groups []Group
}

// NewRegistry builds the fixed rule set. A nil locator falls back to the
// token-scan strategy; zero limits fall back to defaults.
func NewRegistry(locator locate.Strategy, limits Limits) *Registry {
	if locator == nil {
		locator = locate.TokenSearch{}
	}
	defaults := DefaultLimits()
	if limits.MaxNestingDepth <= 0 {
		limits.MaxNestingDepth = defaults.MaxNestingDepth
	}
	if limits.InlineStyleCap <= 0 {
		limits.InlineStyleCap = defaults.InlineStyleCap
	}
	if limits.DivSoupCap <= 0 {
		limits.DivSoupCap = defaults.DivSoupCap
	}

	return &Registry{groups: []Group{
		{
			Category: report.CategorySemantic,
			Rules: []Rule{
				newSingleMain(locator),
				newSingleH1(locator),
				&landmarkPresence{},
				&duplicateIDs{loc: locator},
				&ariaMainDiv{loc: locator},
			},
		},
		{
			Category: report.CategoryAccessibility,
			Rules: []Rule{
				&imgAlt{loc: locator},
				&inputLabels{loc: locator},
				&htmlLang{},
				&buttonText{loc: locator},
			},
		},
		{
			Category: report.CategoryHygiene,
			Rules: []Rule{
				&inlineStyles{loc: locator, cap: limits.InlineStyleCap},
				&nestingDepth{max: limits.MaxNestingDepth},
				&divSoup{loc: locator, cap: limits.DivSoupCap},
			},
		},
		{
			Category: report.CategoryCompleteness,
			Rules: []Rule{
				&titlePresence{loc: locator},
				&viewportMeta{},
				&openGraphPair{},
				&deprecatedTags{loc: locator},
			},
		},
	}}
}

// Groups returns the categories in report order.
func (r *Registry) Groups() []Group {
	return r.groups
}

// located attaches a best-effort source position to an issue. On a miss the
// issue keeps neither line nor context.
func located(loc locate.Strategy, raw string, target locate.Target, issue report.Issue) report.Issue {
	if pos, ok := loc.Locate(raw, target); ok {
		issue.Line = pos.Line
		issue.Context = pos.Snippet
	}
	return issue
}
