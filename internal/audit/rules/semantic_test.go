package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagelens/backend/internal/audit/report"
)

const semanticClean = `<!DOCTYPE html>
<html lang="en">
<body>
<header>site</header>
<main><h1>Topic</h1></main>
<footer>fin</footer>
</body>
</html>`

func TestSemanticCleanDocument(t *testing.T) {
	assert.Empty(t, runCategory(t, report.CategorySemantic, semanticClean))
}

func TestMissingMainAndH1(t *testing.T) {
	issues := runCategory(t, report.CategorySemantic, `<html><body><header><p>text</p></header></body></html>`)

	criticals := bySeverity(issues, report.SeverityCritical)
	require.Len(t, criticals, 2)
	assert.Contains(t, descriptions(criticals), "No <main> element found")
	assert.Contains(t, descriptions(criticals), "No <h1> heading found")

	// Absent elements have no source location to point at.
	for _, issue := range criticals {
		assert.Zero(t, issue.Line)
	}
}

func TestMultipleMainElements(t *testing.T) {
	raw := `<html><body>
<main><h1>a</h1></main>
<main>again</main>
<footer>f</footer>
</body></html>`

	issues := runCategory(t, report.CategorySemantic, raw)

	warnings := bySeverity(issues, report.SeverityWarning)
	require.Len(t, warnings, 1)
	assert.Equal(t, "Found 2 <main> elements; a document should have exactly one", warnings[0].Description)
	// Token search resolves <main> to its first occurrence in the raw text.
	assert.Equal(t, 2, warnings[0].Line)
}

func TestMultipleH1Headings(t *testing.T) {
	raw := `<html><body><main>
<h1 id="first">a</h1>
<h1 id="second">b</h1>
<h1 id="third">c</h1>
</main><footer>f</footer></body></html>`

	issues := runCategory(t, report.CategorySemantic, raw)

	warnings := bySeverity(issues, report.SeverityWarning)
	require.Len(t, warnings, 1)
	assert.Equal(t, "Found 3 <h1> headings; a document should have exactly one", warnings[0].Description)
	// The surplus issue points at the second heading, found via its id.
	assert.Equal(t, 3, warnings[0].Line)
	assert.Contains(t, warnings[0].Context, `id="second"`)
}

func TestNoLandmarks(t *testing.T) {
	issues := runCategory(t, report.CategorySemantic, `<html><body><main><h1>t</h1></main></body></html>`)

	// main is a landmark in the ARIA sense but not in this presence check.
	require.Len(t, issues, 1)
	assert.Equal(t, report.SeverityWarning, issues[0].Severity)
	assert.Contains(t, issues[0].Description, "No landmark elements found")
}

func TestAnyLandmarkSatisfiesPresence(t *testing.T) {
	for _, tag := range landmarkTags {
		raw := `<html><body><main><h1>t</h1></main><` + tag + `>x</` + tag + `></body></html>`
		for _, issue := range runCategory(t, report.CategorySemantic, raw) {
			assert.NotContains(t, issue.Description, "No landmark elements found", "landmark %s not recognized", tag)
		}
	}
}

func TestDuplicateIDs(t *testing.T) {
	raw := `<html><body><main><h1>t</h1>
<div id="x">one</div>
<span id="x">two</span>
<p id="y">fine</p>
</main><nav>n</nav></body></html>`

	issues := runCategory(t, report.CategorySemantic, raw)

	criticals := bySeverity(issues, report.SeverityCritical)
	require.Len(t, criticals, 1)
	assert.Equal(t, `Duplicate id "x"`, criticals[0].Description)
	// id="x" first occurs on the div; the duplicate inherits that line.
	assert.Equal(t, 2, criticals[0].Line)
}

func TestTripleDuplicateIDFlagsEachRepeat(t *testing.T) {
	raw := `<html><body><main><h1>t</h1>
<div id="x">1</div><div id="x">2</div><div id="x">3</div>
</main><nav>n</nav></body></html>`

	issues := runCategory(t, report.CategorySemantic, raw)

	// Three elements share the id; the second and third are the repeats.
	assert.Len(t, bySeverity(issues, report.SeverityCritical), 2)
}

func TestAriaMainDiv(t *testing.T) {
	raw := `<html><body>
<main><h1>t</h1></main><nav>n</nav>
<div role="main">content</div>
</body></html>`

	issues := runCategory(t, report.CategorySemantic, raw)

	infos := bySeverity(issues, report.SeverityInfo)
	require.Len(t, infos, 1)
	assert.Equal(t, `<div role="main"> used instead of the native <main> element`, infos[0].Description)
	assert.Equal(t, 3, infos[0].Line)
}
