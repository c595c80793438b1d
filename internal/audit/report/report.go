package report

import "time"

// Severity classifies the impact of a finding, ordered by impact.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Fixed category names, in report order.
const (
	CategorySemantic      = "Semantic Structure"
	CategoryAccessibility = "Accessibility Basics"
	CategoryHygiene       = "UI & Markup Hygiene"
	CategoryCompleteness  = "Document Completeness"
)

// CategoryNames lists the four categories in the order they appear in a report.
var CategoryNames = []string{
	CategorySemantic,
	CategoryAccessibility,
	CategoryHygiene,
	CategoryCompleteness,
}

// SourceRawInput is the default origin label for pasted markup.
const SourceRawInput = "Raw Input"

// Issue is a single finding. Line and Context are best-effort: they are
// either both set (Line > 0) or both absent.
type Issue struct {
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Suggestion  string   `json:"suggestion,omitempty"`
	Line        int      `json:"line_number,omitempty"`
	Context     string   `json:"context,omitempty"`
}

// Category holds the findings and score of one rule group. Issue order is
// rule execution order and carries no ranking meaning.
type Category struct {
	Name   string  `json:"name"`
	Issues []Issue `json:"issues"`
	Score  int     `json:"score"`
}

// Metadata describes the audited input.
type Metadata struct {
	Length int       `json:"length"`
	Date   time.Time `json:"date"`
	Source string    `json:"source"`
}

// Report is the complete audit result. It is immutable once returned;
// a new audit produces entirely new values.
type Report struct {
	ID           string     `json:"id"`
	Digest       string     `json:"digest"`
	Metadata     Metadata   `json:"metadata"`
	OverallScore int        `json:"overall_score"`
	Categories   []Category `json:"categories"`
}

// CountBySeverity tallies issues across all categories.
func (r *Report) CountBySeverity() map[Severity]int {
	counts := make(map[Severity]int, 3)
	for _, cat := range r.Categories {
		for _, issue := range cat.Issues {
			counts[issue.Severity]++
		}
	}
	return counts
}
