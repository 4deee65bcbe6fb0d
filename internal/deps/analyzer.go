// Package deps analyzes declared project dependencies against a curated
// advisory table using semantic version comparison, with optional
// best-effort CVE enrichment from an external lookup service.
package deps

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rajyadav1814/repoguard/internal/models"
)

// Analyzer matches declared dependencies against the curated advisory
// table.
type Analyzer struct {
	logger zerolog.Logger
}

// NewAnalyzer creates a new dependency analyzer.
func NewAnalyzer(logger zerolog.Logger) *Analyzer {
	return &Analyzer{
		logger: logger.With().Str("component", "DependencyAnalyzer").Logger(),
	}
}

// Analyze parses every supported manifest in the file list and emits one
// finding per vulnerable dependency. Unparseable manifests and versions
// are skipped, never fatal.
func (a *Analyzer) Analyze(files []models.RepoFile) []models.Finding {
	findings, _ := a.AnalyzeWithDependencies(files)
	return findings
}

// AnalyzeWithDependencies is Analyze plus the dependency behind each
// finding, index-aligned, for use by the enrichment step.
func (a *Analyzer) AnalyzeWithDependencies(files []models.RepoFile) ([]models.Finding, []Dependency) {
	var findings []models.Finding
	var matched []Dependency
	for _, dep := range ParseManifests(files) {
		adv, ok := LookupAdvisory(dep.Ecosystem, dep.Name)
		if !ok {
			continue
		}
		cmp, err := CompareVersions(dep.Version, adv.MinSafeVersion)
		if err != nil {
			a.logger.Debug().
				Str("package", dep.Name).
				Str("version", dep.Version).
				Err(err).
				Msg("Skipping unparseable version")
			continue
		}
		if cmp >= 0 {
			continue
		}
		findings = append(findings, models.Finding{
			Severity:       adv.Severity,
			Category:       models.CategoryDependency,
			File:           dep.ManifestPath,
			LineNumber:     dep.LineNumber,
			Description:    fmt.Sprintf("%s %s is vulnerable: %s", dep.Name, dep.Version, adv.Summary),
			Recommendation: fmt.Sprintf("Upgrade %s to %s or later", dep.Name, adv.MinSafeVersion),
			CVEIDs:         []string{adv.CVEID},
			Score:          adv.Score,
		})
		matched = append(matched, dep)
	}
	if len(findings) > 0 {
		a.logger.Info().Int("count", len(findings)).Msg("Found vulnerable dependencies")
	}
	return findings, matched
}
