// Package score converts issue lists into category and overall scores.
//
// Scoring policy lives in a Weights table rather than in rule logic, so the
// penalty per severity can be tuned and tested independently.
package score

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/pagelens/backend/internal/audit/report"
)

// Weights maps a severity to its score penalty per issue.
type Weights map[report.Severity]int

// DefaultWeights is the standard policy: Info is purely advisory and never
// affects the score.
func DefaultWeights() Weights {
	return Weights{
		report.SeverityCritical: 15,
		report.SeverityWarning:  5,
		report.SeverityInfo:     0,
	}
}

// Scorer applies a weight table to issue lists.
type Scorer struct {
	weights Weights
}

// New creates a Scorer. Missing severities in the table count as zero.
func New(weights Weights) *Scorer {
	if weights == nil {
		weights = DefaultWeights()
	}
	return &Scorer{weights: weights}
}

// Category scores a list of issues on a 0-100 scale. The score is a pure
// function of the issues: 100 minus the summed penalties, clamped at zero.
// It is never re-normalized by issue count.
func (s *Scorer) Category(issues []report.Issue) int {
	total := 100
	for _, issue := range issues {
		total -= s.weights[issue.Severity]
	}
	if total < 0 {
		return 0
	}
	return total
}

// Overall is the unweighted arithmetic mean of the category scores, rounded
// half-up.
func (s *Scorer) Overall(categories []report.Category) int {
	if len(categories) == 0 {
		return 0
	}
	scores := make([]float64, len(categories))
	for i, cat := range categories {
		scores[i] = float64(cat.Score)
	}
	return int(math.Floor(stat.Mean(scores, nil) + 0.5))
}
