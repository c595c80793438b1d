package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagelens/backend/internal/audit"
	"github.com/pagelens/backend/internal/logging"
)

const goodPage = `<!DOCTYPE html>
<html lang="en">
<head>
<title>Fixture</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta property="og:title" content="Fixture">
<meta property="og:image" content="x.png">
</head>
<body><header>h</header><main><h1>t</h1></main></body>
</html>`

const badPage = `<!DOCTYPE html>
<html>
<body><p>nothing else here</p></body>
</html>`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func writeGzip(t *testing.T, dir, name, content string) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()

	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
}

func testAuditor() *Auditor {
	return New(audit.NewEngine(logging.Nop(), audit.Options{}), logging.Nop())
}

func TestRunAuditsMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.html", goodPage)
	writeFile(t, dir, "nested/bad.html", badPage)
	writeGzip(t, dir, "packed.html.gz", goodPage)
	writeFile(t, dir, "notes.txt", "not markup")

	result, err := testAuditor().Run(context.Background(), dir, "")
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	// Concurrent discovery, deterministic output order.
	assert.Equal(t, "good.html", result.Files[0].Path)
	assert.Equal(t, "nested/bad.html", result.Files[1].Path)
	assert.Equal(t, "packed.html.gz", result.Files[2].Path)

	assert.Equal(t, 100, result.Files[0].OverallScore)
	assert.Equal(t, 100, result.Files[2].OverallScore)
	assert.Less(t, result.Files[1].OverallScore, 100)

	summary := result.Summary
	assert.Equal(t, 3, summary.FilesMatched)
	assert.Equal(t, 3, summary.FilesAudited)
	assert.Equal(t, 0, summary.FilesFailed)
	assert.Equal(t, 100.0, summary.MaxScore)
	assert.Equal(t, float64(result.Files[1].OverallScore), summary.MinScore)
	assert.InDelta(t, (200+float64(result.Files[1].OverallScore))/3, summary.MeanScore, 1e-9)
}

func TestRunCustomPattern(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep/page.html", goodPage)
	writeFile(t, dir, "skip/page.html", goodPage)

	result, err := testAuditor().Run(context.Background(), dir, "keep/**/*.html")
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Equal(t, "keep/page.html", result.Files[0].Path)
}

func TestRunFlagsNonHTMLContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "fake.html", `{"json": "payload pretending to be markup"}`)
	writeFile(t, dir, "real.html", goodPage)

	result, err := testAuditor().Run(context.Background(), dir, "")
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, "not an HTML document", result.Files[0].Error)
	assert.Nil(t, result.Files[0].Report)
	assert.NotNil(t, result.Files[1].Report)

	assert.Equal(t, 2, result.Summary.FilesMatched)
	assert.Equal(t, 1, result.Summary.FilesAudited)
	assert.Equal(t, 1, result.Summary.FilesFailed)
}

func TestRunInvalidPattern(t *testing.T) {
	_, err := testAuditor().Run(context.Background(), t.TempDir(), "[broken")
	assert.ErrorContains(t, err, "invalid glob pattern")
}

func TestRunBadRoot(t *testing.T) {
	t.Run("nonexistent", func(t *testing.T) {
		_, err := testAuditor().Run(context.Background(), filepath.Join(t.TempDir(), "missing"), "")
		assert.Error(t, err)
	})

	t.Run("not a directory", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "file.html", goodPage)
		_, err := testAuditor().Run(context.Background(), filepath.Join(dir, "file.html"), "")
		assert.ErrorContains(t, err, "not a directory")
	})
}

func TestRunEmptyDirectory(t *testing.T) {
	result, err := testAuditor().Run(context.Background(), t.TempDir(), "")
	require.NoError(t, err)

	assert.Empty(t, result.Files)
	assert.Zero(t, result.Summary.FilesMatched)
	assert.Zero(t, result.Summary.MeanScore)
}
