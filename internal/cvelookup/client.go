// Package cvelookup provides the optional external CVE lookup
// collaborator. Lookups are best-effort augmentation: a failed or empty
// lookup never affects scan completion.
package cvelookup

import "context"

// Client resolves known CVE identifiers for a package at a specific
// version. Implementations return an empty slice on no results; errors
// are advisory and callers must degrade gracefully.
type Client interface {
	Lookup(ctx context.Context, ecosystem, pkg, version string) ([]string, error)
}
