package deps

import (
	"encoding/json"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rajyadav1814/repoguard/internal/models"
)

// Dependency is one declared package+version pair found in a manifest.
type Dependency struct {
	Ecosystem    Ecosystem
	Name         string
	Version      string
	ManifestPath string
	LineNumber   int
}

var (
	requirementsName = regexp.MustCompile(`^requirements[\w.-]*\.txt$`)
	requirementLine  = regexp.MustCompile(`^\s*([A-Za-z0-9][A-Za-z0-9._-]*)\s*(?:==|>=|~=|===)\s*([0-9][\w.+-]*)`)
	gemLine          = regexp.MustCompile(`^\s*gem\s+['"]([\w-]+)['"]\s*,\s*['"]([^'"]+)['"]`)
)

// ParseManifests locates the supported manifest files and extracts their
// declared dependencies. Malformed manifests are skipped silently; a bad
// package.json must never abort the scan.
func ParseManifests(files []models.RepoFile) []Dependency {
	var deps []Dependency
	for _, f := range files {
		base := strings.ToLower(filepath.Base(f.Path))
		switch {
		case base == "package.json" && !strings.Contains(f.Path, "node_modules/"):
			deps = append(deps, parseNPMManifest(f)...)
		case requirementsName.MatchString(base):
			deps = append(deps, parseRequirements(f)...)
		case base == "gemfile":
			deps = append(deps, parseGemfile(f)...)
		}
	}
	return deps
}

func parseNPMManifest(f models.RepoFile) []Dependency {
	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal([]byte(f.Content), &manifest); err != nil {
		return nil
	}

	var deps []Dependency
	for _, section := range []map[string]string{manifest.Dependencies, manifest.DevDependencies} {
		for name, rawVersion := range section {
			v := NormalizeVersion(rawVersion)
			if v == "" || strings.ContainsAny(v, "*x") {
				continue
			}
			deps = append(deps, Dependency{
				Ecosystem:    EcosystemNPM,
				Name:         name,
				Version:      v,
				ManifestPath: f.Path,
			})
		}
	}
	return deps
}

func parseRequirements(f models.RepoFile) []Dependency {
	var deps []Dependency
	for i, line := range strings.Split(f.Content, "\n") {
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		m := requirementLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		deps = append(deps, Dependency{
			Ecosystem:    EcosystemPyPI,
			Name:         strings.ToLower(m[1]),
			Version:      NormalizeVersion(m[2]),
			ManifestPath: f.Path,
			LineNumber:   i + 1,
		})
	}
	return deps
}

func parseGemfile(f models.RepoFile) []Dependency {
	var deps []Dependency
	for i, line := range strings.Split(f.Content, "\n") {
		m := gemLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		v := NormalizeVersion(m[2])
		if v == "" {
			continue
		}
		deps = append(deps, Dependency{
			Ecosystem:    EcosystemRubyGems,
			Name:         m[1],
			Version:      v,
			ManifestPath: f.Path,
			LineNumber:   i + 1,
		})
	}
	return deps
}
