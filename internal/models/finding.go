package models

import "strings"

// Severity classifies how dangerous a finding is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Severities lists all severities in descending order of impact.
// Histograms must carry every entry, even when the count is zero.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// Rank returns an integer rank for comparison (low=1, critical=4).
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

// ParseSeverity parses a severity string case-insensitively.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return SeverityCritical, true
	case "high":
		return SeverityHigh, true
	case "medium", "moderate":
		return SeverityMedium, true
	case "low":
		return SeverityLow, true
	default:
		return "", false
	}
}

// Category identifies which detector family produced a finding.
type Category string

const (
	CategoryCredentials   Category = "credentials"
	CategoryDependency    Category = "dependency"
	CategoryCodePattern   Category = "code_pattern"
	CategoryConfiguration Category = "configuration"
)

// Finding is one detected security issue. Findings are immutable once
// produced; only the enrichment step may append CVE ids and raise
// severity/score before the finding is persisted.
type Finding struct {
	Severity       Severity `json:"severity"`
	Category       Category `json:"category"`
	File           string   `json:"file"`
	LineNumber     int      `json:"line_number,omitempty"`
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation"`
	CVEIDs         []string `json:"cve_ids"`
	Score          float64  `json:"score"`
}

// SeverityHistogram counts findings per severity. All four severity keys
// are always present in the result.
func SeverityHistogram(findings []Finding) map[Severity]int {
	hist := make(map[Severity]int, len(Severities))
	for _, s := range Severities {
		hist[s] = 0
	}
	for _, f := range findings {
		hist[f.Severity]++
	}
	return hist
}

// FilterBySeverity returns the findings whose severity is in the given set,
// preserving order.
func FilterBySeverity(findings []Finding, severities ...Severity) []Finding {
	want := make(map[Severity]bool, len(severities))
	for _, s := range severities {
		want[s] = true
	}
	var out []Finding
	for _, f := range findings {
		if want[f.Severity] {
			out = append(out, f)
		}
	}
	return out
}
