package deps

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rajyadav1814/repoguard/internal/cvelookup"
	"github.com/rajyadav1814/repoguard/internal/models"
)

// Enrich augments dependency findings with CVE ids from the external
// lookup collaborator, one call per package+version pair, bounded by the
// given concurrency. Enrichment mutates the in-memory findings before
// persistence and is best-effort: a failed lookup leaves its finding
// unchanged. When the lookup reveals more CVEs than the curated table
// recorded, low/medium findings are escalated one severity level.
func (a *Analyzer) Enrich(ctx context.Context, client cvelookup.Client, findings []models.Finding, dependencies []Dependency, concurrency int) {
	if client == nil || len(findings) == 0 || len(findings) != len(dependencies) {
		return
	}
	if concurrency < 1 {
		concurrency = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range findings {
		i := i
		g.Go(func() error {
			dep := dependencies[i]
			ids, err := client.Lookup(ctx, string(dep.Ecosystem), dep.Name, dep.Version)
			if err != nil {
				a.logger.Debug().
					Str("package", dep.Name).
					Err(err).
					Msg("CVE enrichment lookup failed, finding left unchanged")
				return nil
			}
			applyEnrichment(&findings[i], ids)
			return nil
		})
	}
	_ = g.Wait()
}

// applyEnrichment appends unseen CVE ids and escalates severity/score when
// the lookup surfaced additional advisories beyond the curated one.
func applyEnrichment(f *models.Finding, ids []string) {
	known := make(map[string]bool, len(f.CVEIDs))
	for _, id := range f.CVEIDs {
		known[id] = true
	}
	added := 0
	for _, id := range ids {
		if !known[id] {
			f.CVEIDs = append(f.CVEIDs, id)
			known[id] = true
			added++
		}
	}
	if added == 0 {
		return
	}
	switch f.Severity {
	case models.SeverityLow:
		f.Severity = models.SeverityMedium
		f.Score = 5.0
	case models.SeverityMedium:
		f.Severity = models.SeverityHigh
		f.Score = 7.0
	}
}
