// Package batch audits every HTML file under a directory root.
//
// Files are discovered with a concurrent walk filtered by a doublestar glob
// (default "**/*.html"); gzip-compressed files are decompressed
// transparently. Results carry per-file reports plus aggregate score
// statistics.
package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"github.com/gabriel-vasile/mimetype"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pagelens/backend/internal/audit"
	"github.com/pagelens/backend/internal/audit/report"
	"github.com/pagelens/backend/internal/logging"
)

// DefaultPattern matches HTML files, compressed or not, at any depth.
const DefaultPattern = "**/*.{html,htm,html.gz}"

// MaxFileSize bounds individual files at the parser's input guard.
const MaxFileSize = 10 * 1024 * 1024

// FileResult is the outcome of auditing one file.
type FileResult struct {
	Path         string         `json:"path"`
	OverallScore int            `json:"overall_score"`
	Report       *report.Report `json:"report,omitempty"`
	Error        string         `json:"error,omitempty"`
}

// Summary aggregates scores across the audited files.
type Summary struct {
	FilesMatched int     `json:"files_matched"`
	FilesAudited int     `json:"files_audited"`
	FilesFailed  int     `json:"files_failed"`
	MeanScore    float64 `json:"mean_score"`
	MinScore     float64 `json:"min_score"`
	MaxScore     float64 `json:"max_score"`
}

// Result is the full batch outcome.
type Result struct {
	Root    string       `json:"root"`
	Pattern string       `json:"pattern"`
	Files   []FileResult `json:"files"`
	Summary Summary      `json:"summary"`
}

// Auditor runs batch audits over a filesystem root.
type Auditor struct {
	engine *audit.Engine
	log    *logging.Logger
}

// New creates a batch auditor.
func New(engine *audit.Engine, log *logging.Logger) *Auditor {
	if log == nil {
		log = logging.NewDefault()
	}
	return &Auditor{engine: engine, log: log.Named("batch")}
}

// Run walks root and audits every file matching pattern (relative to root,
// slash-separated). An empty pattern uses DefaultPattern.
func (a *Auditor) Run(ctx context.Context, root, pattern string) (*Result, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q", pattern)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("batch root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("batch root %q is not a directory", root)
	}

	var (
		mu      sync.Mutex
		files   []FileResult
		matched int
	)

	conf := fastwalk.Config{Follow: false}
	walkErr := fastwalk.Walk(&conf, root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		ok, err := doublestar.Match(pattern, filepath.ToSlash(rel))
		if err != nil || !ok {
			return nil
		}

		result := a.auditFile(path, rel)

		mu.Lock()
		matched++
		files = append(files, result)
		mu.Unlock()
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", root, walkErr)
	}

	// fastwalk visits concurrently; fix a stable order for the report.
	sortFiles(files)

	return &Result{
		Root:    root,
		Pattern: pattern,
		Files:   files,
		Summary: summarize(matched, files),
	}, nil
}

// auditFile reads, optionally decompresses, sniffs, and audits one file.
func (a *Auditor) auditFile(path, rel string) FileResult {
	markup, err := readMarkup(path)
	if err != nil {
		return FileResult{Path: rel, Error: err.Error()}
	}
	if mt := mimetype.Detect([]byte(markup)); !mt.Is("text/html") {
		return FileResult{Path: rel, Error: "not an HTML document"}
	}

	rep, err := a.engine.Run(markup, rel)
	if err != nil {
		a.log.Warn("file audit failed", zap.String("path", rel), zap.Error(err))
		return FileResult{Path: rel, Error: err.Error()}
	}
	return FileResult{Path: rel, OverallScore: rep.OverallScore, Report: rep}
}

func readMarkup(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	data, err := io.ReadAll(io.LimitReader(reader, MaxFileSize+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxFileSize {
		return "", fmt.Errorf("file exceeds %d bytes", MaxFileSize)
	}
	return string(data), nil
}

func summarize(matched int, files []FileResult) Summary {
	var scores []float64
	failed := 0
	for _, f := range files {
		if f.Error != "" {
			failed++
			continue
		}
		scores = append(scores, float64(f.OverallScore))
	}

	summary := Summary{
		FilesMatched: matched,
		FilesAudited: len(scores),
		FilesFailed:  failed,
	}
	if len(scores) > 0 {
		summary.MeanScore = stat.Mean(scores, nil)
		summary.MinScore = floats.Min(scores)
		summary.MaxScore = floats.Max(scores)
	}
	return summary
}

func sortFiles(files []FileResult) {
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
}
