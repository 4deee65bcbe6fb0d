// Package detectors holds the line-oriented pattern matchers that inspect
// fetched repository files for credentials, risky code constructs, and
// insecure configuration. Each detector is a pure function over an
// immutable file list and never fails, whatever the input.
package detectors

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/rajyadav1814/repoguard/internal/models"
)

// Func is a single detector: it maps the fetched files to findings.
type Func func(files []models.RepoFile) []models.Finding

// Registry maps each detector category to its implementation. Dispatch is
// keyed by the typed category, not by string comparison at call sites.
var Registry = map[models.Category]Func{
	models.CategoryCredentials:   ScanSecrets,
	models.CategoryCodePattern:   ScanCodePatterns,
	models.CategoryConfiguration: ScanConfiguration,
}

// rule is one (regex, severity) entry of a detector's ordered rule table.
// The score is fixed per rule and monotonic with severity:
// critical 9.0-9.5, high 7.0-7.8, medium 5.0-5.5, low 3.0.
type rule struct {
	pattern        *regexp.Regexp
	description    string
	recommendation string
	severity       models.Severity
	score          float64
}

// scanLines applies an ordered rule table line by line and emits one
// finding per (line, rule) match. A line matching two rules yields two
// findings.
func scanLines(path, content string, category models.Category, rules []rule) []models.Finding {
	var findings []models.Finding

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNumber := 1
	for scanner.Scan() {
		line := scanner.Text()
		for _, r := range rules {
			if r.pattern.MatchString(line) {
				findings = append(findings, models.Finding{
					Severity:       r.severity,
					Category:       category,
					File:           path,
					LineNumber:     lineNumber,
					Description:    r.description,
					Recommendation: r.recommendation,
					Score:          r.score,
				})
			}
		}
		lineNumber++
	}

	return findings
}
