package detectors

import (
	"regexp"

	"github.com/rajyadav1814/repoguard/internal/models"
)

// codePatternRules flags risky constructs in source files. These are
// line-based heuristics, not taint analysis; each rule names the concrete
// construct that warrants review.
var codePatternRules = []rule{
	{
		pattern:        regexp.MustCompile(`(?i)\beval\s*\(`),
		description:    "Use of eval() on dynamic input",
		recommendation: "Avoid eval; parse or dispatch explicitly instead of executing strings",
		severity:       models.SeverityHigh,
		score:          7.5,
	},
	{
		pattern:        regexp.MustCompile(`(?i)\bpickle\.loads?\s*\(`),
		description:    "Deserialization of untrusted data with pickle",
		recommendation: "Use a safe serialization format such as JSON for untrusted input",
		severity:       models.SeverityHigh,
		score:          7.4,
	},
	{
		pattern:        regexp.MustCompile(`shell\s*=\s*True`),
		description:    "Subprocess invocation with shell=True",
		recommendation: "Pass an argument vector and drop shell=True to avoid shell injection",
		severity:       models.SeverityHigh,
		score:          7.2,
	},
	{
		pattern:        regexp.MustCompile(`(?i)\b(?:execute|exec|query)\s*\(\s*["'].*["']\s*(?:\+|%|\|\|)`),
		description:    "SQL statement built by string concatenation",
		recommendation: "Use parameterized queries instead of concatenating user input into SQL",
		severity:       models.SeverityHigh,
		score:          7.0,
	},
	{
		pattern:        regexp.MustCompile(`\.innerHTML\s*=`),
		description:    "Direct innerHTML assignment",
		recommendation: "Use textContent or a sanitizer to avoid DOM-based XSS",
		severity:       models.SeverityMedium,
		score:          5.5,
	},
	{
		pattern:        regexp.MustCompile(`(?i)\b(?:md5|sha1)\s*\(`),
		description:    "Weak hash function (MD5/SHA-1)",
		recommendation: "Use SHA-256 or stronger for anything security sensitive",
		severity:       models.SeverityMedium,
		score:          5.2,
	},
	{
		pattern:        regexp.MustCompile(`(?i)verify\s*[:=]\s*False|InsecureSkipVerify\s*:\s*true`),
		description:    "TLS certificate verification disabled",
		recommendation: "Enable certificate verification; pin or provision the expected CA instead",
		severity:       models.SeverityMedium,
		score:          5.4,
	},
	{
		pattern:        regexp.MustCompile(`(?i)\bdebug\s*[:=]\s*true\b`),
		description:    "Debug mode enabled in code",
		recommendation: "Disable debug mode outside development builds",
		severity:       models.SeverityLow,
		score:          3.0,
	},
}

// ScanCodePatterns detects insecure code constructs. Only files with a
// known source-code extension are inspected.
func ScanCodePatterns(files []models.RepoFile) []models.Finding {
	var findings []models.Finding
	for _, f := range files {
		if IsBinaryPath(f.Path) || !IsSourcePath(f.Path) {
			continue
		}
		findings = append(findings, scanLines(f.Path, f.Content, models.CategoryCodePattern, codePatternRules)...)
	}
	return findings
}
