package audit

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pagelens/backend/internal/audit/dom"
	"github.com/pagelens/backend/internal/audit/locate"
	"github.com/pagelens/backend/internal/audit/report"
	"github.com/pagelens/backend/internal/audit/rules"
	"github.com/pagelens/backend/internal/audit/score"
	"github.com/pagelens/backend/internal/logging"
	"github.com/pagelens/backend/internal/shared/id"
)

// ErrEmptyInput is returned when the markup is empty or whitespace only.
var ErrEmptyInput = errors.New("markup input is empty")

// Options tunes engine behavior. Zero values fall back to defaults.
type Options struct {
	Weights score.Weights
	Limits  rules.Limits
	Locator locate.Strategy
}

// Engine runs audits. Safe for concurrent use.
type Engine struct {
	registry *rules.Registry
	scorer   *score.Scorer
	log      *logging.Logger
}

// NewEngine creates an engine with the given options.
func NewEngine(log *logging.Logger, opts Options) *Engine {
	if log == nil {
		log = logging.NewDefault()
	}
	locator := opts.Locator
	if locator == nil {
		locator = locate.TokenSearch{}
	}
	return &Engine{
		registry: rules.NewRegistry(locator, opts.Limits),
		scorer:   score.New(opts.Weights),
		log:      log.Named("audit"),
	}
}

// Run audits raw markup and returns the assembled report. An empty source
// label defaults to "Raw Input".
func (e *Engine) Run(raw, source string) (*report.Report, error) {
	return e.RunWithProgress(raw, source, nil)
}

// RunWithProgress is Run with a per-category callback, invoked as each
// category completes. The callback must not retain or mutate the category.
func (e *Engine) RunWithProgress(raw, source string, onCategory func(report.Category)) (*report.Report, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyInput
	}
	if source == "" {
		source = report.SourceRawInput
	}

	started := time.Now()
	doc, err := dom.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("build document tree: %w", err)
	}

	categories := make([]report.Category, 0, len(e.registry.Groups()))
	for _, group := range e.registry.Groups() {
		issues := make([]report.Issue, 0)
		for _, rule := range group.Rules {
			issues = append(issues, rule.Inspect(doc, raw)...)
		}
		cat := report.Category{
			Name:   group.Category,
			Issues: issues,
			Score:  e.scorer.Category(issues),
		}
		categories = append(categories, cat)
		if onCategory != nil {
			onCategory(cat)
		}
	}

	rep := &report.Report{
		ID:     id.NewRun(),
		Digest: id.Digest(raw),
		Metadata: report.Metadata{
			Length: utf8.RuneCountInString(raw),
			Date:   started,
			Source: source,
		},
		OverallScore: e.scorer.Overall(categories),
		Categories:   categories,
	}

	e.log.Debug("audit complete",
		zap.String("run", rep.ID),
		zap.String("source", source),
		zap.Int("overall_score", rep.OverallScore),
		zap.Duration("elapsed", time.Since(started)))
	return rep, nil
}
