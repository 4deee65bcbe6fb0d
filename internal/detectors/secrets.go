package detectors

import (
	"regexp"

	"github.com/rajyadav1814/repoguard/internal/models"
)

// secretRules is the ordered rule table for credential detection. Rules
// are written so a single hardcoded credential matches exactly one rule;
// a line carrying two different credentials still yields two findings.
var secretRules = []rule{
	{
		pattern:        regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`),
		description:    "Hardcoded AWS access key ID",
		recommendation: "Remove the key from source and rotate it; load credentials from the environment or a secret manager",
		severity:       models.SeverityCritical,
		score:          9.5,
	},
	{
		pattern:        regexp.MustCompile(`-----BEGIN(?: [A-Z]+)? PRIVATE KEY-----`),
		description:    "Private key material committed to the repository",
		recommendation: "Remove the private key from source control and rotate it",
		severity:       models.SeverityCritical,
		score:          9.5,
	},
	{
		pattern:        regexp.MustCompile(`\bghp_[A-Za-z0-9]{36}\b`),
		description:    "Hardcoded GitHub personal access token",
		recommendation: "Revoke the token and supply it via the environment",
		severity:       models.SeverityCritical,
		score:          9.0,
	},
	{
		pattern:        regexp.MustCompile(`(?i)\bpassword\s*[:=]\s*["'][^"']{4,}["']`),
		description:    "Hardcoded password assignment",
		recommendation: "Load the password from the environment or a secret manager instead of source",
		severity:       models.SeverityHigh,
		score:          7.5,
	},
	{
		pattern:        regexp.MustCompile(`(?i)\bapi[_-]?key\s*[:=]\s*["'][^"']{8,}["']`),
		description:    "Hardcoded API key assignment",
		recommendation: "Move the API key out of source into configuration injected at runtime",
		severity:       models.SeverityHigh,
		score:          7.2,
	},
	{
		pattern:        regexp.MustCompile(`(?i)\b(?:secret|token)\s*[:=]\s*["'][^"']{8,}["']`),
		description:    "Hardcoded secret or token assignment",
		recommendation: "Move the secret out of source into configuration injected at runtime",
		severity:       models.SeverityHigh,
		score:          7.0,
	},
	{
		pattern:        regexp.MustCompile(`\bxox[bpar]-[0-9a-zA-Z-]{10,48}\b`),
		description:    "Hardcoded Slack token",
		recommendation: "Revoke the Slack token and supply it via the environment",
		severity:       models.SeverityHigh,
		score:          7.8,
	},
	{
		pattern:        regexp.MustCompile(`(?i)\b[a-z][a-z0-9+.-]*://[^/\s:@'"]+:[^/\s:@'"]+@`),
		description:    "Credentials embedded in a connection URL",
		recommendation: "Strip credentials from the URL and authenticate via configuration",
		severity:       models.SeverityMedium,
		score:          5.5,
	},
	{
		pattern:        regexp.MustCompile(`\beyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}\.[A-Za-z0-9._-]*\b`),
		description:    "JWT committed to the repository",
		recommendation: "Invalidate the token; JWTs grant access until expiry and must not be committed",
		severity:       models.SeverityMedium,
		score:          5.0,
	},
}

// ScanSecrets detects hardcoded credentials across all non-binary files.
func ScanSecrets(files []models.RepoFile) []models.Finding {
	var findings []models.Finding
	for _, f := range files {
		if IsBinaryPath(f.Path) {
			continue
		}
		findings = append(findings, scanLines(f.Path, f.Content, models.CategoryCredentials, secretRules)...)
	}
	return findings
}
