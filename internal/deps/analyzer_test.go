package deps

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajyadav1814/repoguard/internal/models"
)

func TestAnalyzer_VulnerableLodash(t *testing.T) {
	a := NewAnalyzer(zerolog.Nop())
	files := []models.RepoFile{{
		Path:    "package.json",
		Content: `{"dependencies": {"lodash": "^4.17.20"}}`,
	}}

	findings := a.Analyze(files)
	require.Len(t, findings, 1)

	f := findings[0]
	assert.Equal(t, models.CategoryDependency, f.Category)
	assert.Equal(t, models.SeverityHigh, f.Severity)
	assert.Equal(t, "package.json", f.File)
	assert.Equal(t, []string{"CVE-2021-23337"}, f.CVEIDs)
	assert.Contains(t, f.Description, "lodash 4.17.20")
	assert.Contains(t, f.Recommendation, "4.17.21")
	assert.InDelta(t, 7.2, f.Score, 0.001)
}

func TestAnalyzer_SafeVersionIsClean(t *testing.T) {
	a := NewAnalyzer(zerolog.Nop())
	files := []models.RepoFile{{
		Path:    "package.json",
		Content: `{"dependencies": {"lodash": "^4.17.21"}}`,
	}}
	assert.Empty(t, a.Analyze(files))
}

func TestAnalyzer_UnknownPackageIsIgnored(t *testing.T) {
	a := NewAnalyzer(zerolog.Nop())
	files := []models.RepoFile{{
		Path:    "package.json",
		Content: `{"dependencies": {"some-internal-lib": "0.0.1"}}`,
	}}
	assert.Empty(t, a.Analyze(files))
}

func TestAnalyzer_UnparseableVersionIsSkipped(t *testing.T) {
	a := NewAnalyzer(zerolog.Nop())
	files := []models.RepoFile{{
		Path:    "package.json",
		Content: `{"dependencies": {"lodash": "latest"}}`,
	}}
	assert.Empty(t, a.Analyze(files))
}

func TestAnalyzer_FindingsAlignWithDependencies(t *testing.T) {
	a := NewAnalyzer(zerolog.Nop())
	files := []models.RepoFile{
		{Path: "requirements.txt", Content: "pyyaml==5.3.1\ndjango==3.2.0\nrequests==2.31.0\n"},
		{Path: "Gemfile", Content: "gem 'rails', '6.1.7.2'\n"},
	}

	findings, matched := a.AnalyzeWithDependencies(files)
	require.Len(t, findings, 3)
	require.Len(t, matched, 3)
	for i := range findings {
		assert.Contains(t, findings[i].Description, matched[i].Name)
		assert.Equal(t, matched[i].ManifestPath, findings[i].File)
		assert.Equal(t, matched[i].LineNumber, findings[i].LineNumber)
	}
}
