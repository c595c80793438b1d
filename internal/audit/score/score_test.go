package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pagelens/backend/internal/audit/report"
)

func critical() report.Issue {
	return report.Issue{Severity: report.SeverityCritical, Description: "c"}
}

func warning() report.Issue {
	return report.Issue{Severity: report.SeverityWarning, Description: "w"}
}

func info() report.Issue {
	return report.Issue{Severity: report.SeverityInfo, Description: "i"}
}

func TestCategoryScore(t *testing.T) {
	s := New(nil)

	tests := []struct {
		name   string
		issues []report.Issue
		want   int
	}{
		{"no issues", nil, 100},
		{"one critical", []report.Issue{critical()}, 85},
		{"two critical one warning", []report.Issue{critical(), critical(), warning()}, 65},
		{"info only", []report.Issue{info(), info(), info()}, 100},
		{"clamped at zero", []report.Issue{
			critical(), critical(), critical(), critical(),
			critical(), critical(), critical(),
		}, 0},
		{"twenty warnings score zero, not an average", func() []report.Issue {
			var issues []report.Issue
			for i := 0; i < 20; i++ {
				issues = append(issues, warning())
			}
			return issues
		}(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Category(tt.issues))
		})
	}
}

func TestInfoNeverAffectsScore(t *testing.T) {
	s := New(nil)
	issues := []report.Issue{critical(), warning()}

	assert.Equal(t, s.Category(issues), s.Category(append(issues, info())))
}

func TestScoreMonotonicNonIncreasing(t *testing.T) {
	s := New(nil)

	var issues []report.Issue
	prev := s.Category(issues)
	for i := 0; i < 10; i++ {
		issues = append(issues, warning())
		next := s.Category(issues)
		assert.LessOrEqual(t, next, prev)
		prev = next
	}
}

func TestCustomWeights(t *testing.T) {
	s := New(Weights{
		report.SeverityCritical: 50,
		report.SeverityWarning:  1,
	})

	assert.Equal(t, 50, s.Category([]report.Issue{critical()}))
	assert.Equal(t, 99, s.Category([]report.Issue{warning()}))
}

func TestOverall(t *testing.T) {
	s := New(nil)

	cats := func(scores ...int) []report.Category {
		out := make([]report.Category, len(scores))
		for i, sc := range scores {
			out[i] = report.Category{Score: sc}
		}
		return out
	}

	assert.Equal(t, 100, s.Overall(cats(100, 100, 100, 100)))
	assert.Equal(t, 99, s.Overall(cats(100, 100, 100, 95)))  // 98.75 rounds up
	assert.Equal(t, 98, s.Overall(cats(90, 100, 100, 100)))  // 97.5 rounds half-up
	assert.Equal(t, 0, s.Overall(cats(0, 0, 0, 0)))
	assert.Equal(t, 0, s.Overall(nil))
}
