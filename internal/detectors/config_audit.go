package detectors

import (
	"regexp"

	"github.com/rajyadav1814/repoguard/internal/models"
)

// configRules audits Dockerfiles, compose files and dotenv files for
// root-user execution and secret-like environment declarations.
var configRules = []rule{
	{
		pattern:        regexp.MustCompile(`(?i)^\s*USER\s+root\b`),
		description:    "Container runs as root",
		recommendation: "Create and switch to an unprivileged user in the image",
		severity:       models.SeverityMedium,
		score:          5.5,
	},
	{
		pattern:        regexp.MustCompile(`(?i)^\s*(?:ENV\s+|export\s+)?[A-Z0-9_]*(?:PASSWORD|SECRET|API_KEY|TOKEN)[A-Z0-9_]*\s*[=:]\s*\S+`),
		description:    "Secret-like environment variable declared with a literal value",
		recommendation: "Inject the value at deploy time (build args, secret mounts, or orchestrator secrets)",
		severity:       models.SeverityHigh,
		score:          7.6,
	},
	{
		pattern:        regexp.MustCompile(`(?i)^\s*privileged\s*:\s*true\b`),
		description:    "Privileged container requested",
		recommendation: "Drop privileged mode and grant only the capabilities the workload needs",
		severity:       models.SeverityHigh,
		score:          7.3,
	},
	{
		pattern:        regexp.MustCompile(`(?i)^\s*network_mode\s*:\s*["']?host["']?`),
		description:    "Host network mode enabled",
		recommendation: "Use an isolated network and publish only the required ports",
		severity:       models.SeverityMedium,
		score:          5.0,
	},
	{
		pattern:        regexp.MustCompile(`(?i)--(?:allow-root|no-sandbox)\b`),
		description:    "Sandbox or root safety flag disabled",
		recommendation: "Run the process without disabling its sandboxing",
		severity:       models.SeverityLow,
		score:          3.0,
	},
}

// ScanConfiguration audits deployment configuration files. Only
// Dockerfile/compose-like filenames are inspected.
func ScanConfiguration(files []models.RepoFile) []models.Finding {
	var findings []models.Finding
	for _, f := range files {
		if IsBinaryPath(f.Path) || !IsConfigPath(f.Path) {
			continue
		}
		findings = append(findings, scanLines(f.Path, f.Content, models.CategoryConfiguration, configRules)...)
	}
	return findings
}
