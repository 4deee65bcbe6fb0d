// Package orchestrator drives one scan invocation through its state
// machine: fetch the repository snapshot, run the detectors, compare
// against history, and persist the result.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rajyadav1814/repoguard/internal/common"
	"github.com/rajyadav1814/repoguard/internal/config"
	"github.com/rajyadav1814/repoguard/internal/cvelookup"
	"github.com/rajyadav1814/repoguard/internal/datastore"
	"github.com/rajyadav1814/repoguard/internal/deps"
	"github.com/rajyadav1814/repoguard/internal/detectors"
	"github.com/rajyadav1814/repoguard/internal/fetcher"
	"github.com/rajyadav1814/repoguard/internal/models"
	"github.com/rajyadav1814/repoguard/internal/trend"
)

// State names the phases of a scan invocation.
type State string

const (
	StateInitialized  State = "INITIALIZED"
	StateFetching     State = "FETCHING"
	StateScanning     State = "SCANNING"
	StateHistoryCheck State = "HISTORY_CHECK"
	StateShortCircuit State = "SHORT_CIRCUIT"
	StateFullScan     State = "FULL_SCAN"
	StatePersisted    State = "PERSISTED"
)

// ScanOrchestrator runs the scan workflow. It holds no per-scan state;
// concurrent scans of different repositories are independent. Concurrent
// scans of the same repository are not serialized here and must be
// serialized by the caller when exactly-once-in-flight matters.
type ScanOrchestrator struct {
	cfg      config.ScannerConfig
	fetcher  fetcher.ContentFetcher
	store    datastore.BlobStore
	history  *datastore.History
	analyzer *deps.Analyzer
	lookup   cvelookup.Client
	logger   zerolog.Logger
}

// NewScanOrchestrator creates a ScanOrchestrator. The lookup client is
// optional; pass nil to disable CVE enrichment.
func NewScanOrchestrator(
	cfg config.ScannerConfig,
	contentFetcher fetcher.ContentFetcher,
	store datastore.BlobStore,
	lookup cvelookup.Client,
	logger zerolog.Logger,
) *ScanOrchestrator {
	return &ScanOrchestrator{
		cfg:      cfg,
		fetcher:  contentFetcher,
		store:    store,
		history:  datastore.NewHistory(store, logger),
		analyzer: deps.NewAnalyzer(logger),
		lookup:   lookup,
		logger:   logger.With().Str("component", "ScanOrchestrator").Logger(),
	}
}

// Scan runs one scan invocation for (repo, branch) and returns the
// completed, persisted result. A total failure to retrieve the repository
// is fatal; malformed history never is.
func (o *ScanOrchestrator) Scan(ctx context.Context, repo, branch string) (*models.ScanResult, error) {
	if repo == "" {
		return nil, common.WrapError(common.ErrInvalidInput, "repository name is required")
	}
	if branch == "" {
		branch = o.cfg.DefaultBranch
	}

	scanID := uuid.NewString()
	log := o.logger.With().Str("repo", repo).Str("branch", branch).Str("scan_id", scanID).Logger()
	log.Info().Str("state", string(StateFetching)).Msg("Fetching repository snapshot")

	files, err := o.fetcher.Fetch(ctx, repo, branch)
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to fetch %s@%s", repo, branch)
	}
	log.Info().Int("files", len(files)).Msg("Snapshot fetched")

	log.Debug().Str("state", string(StateHistoryCheck)).Msg("Checking scan history")
	priorScans := o.loadHistory(ctx, repo, log)

	headSHA, err := o.fetcher.HeadCommit(ctx, repo, branch)
	if err != nil {
		// No head SHA means no short-circuit, nothing worse.
		log.Warn().Err(err).Msg("Head commit unavailable, full scan forced")
		headSHA = ""
	}

	if previous := shortCircuitCandidate(priorScans, branch, headSHA); previous != nil {
		log.Info().
			Str("state", string(StateShortCircuit)).
			Str("commit", headSHA).
			Msg("Commit unchanged since previous scan, reusing findings")
		result := o.reuseScan(previous, repo, branch, scanID, headSHA)
		if err := o.persist(ctx, result, log); err != nil {
			return nil, err
		}
		return result, nil
	}

	log.Info().Str("state", string(StateFullScan)).Msg("Running detectors")
	result, err := o.fullScan(ctx, repo, branch, scanID, headSHA, files, priorScans)
	if err != nil {
		return nil, err
	}

	if err := o.persist(ctx, result, log); err != nil {
		return nil, err
	}
	log.Info().
		Str("state", string(StatePersisted)).
		Int("findings", len(result.Findings)).
		Msg("Scan complete")
	return result, nil
}

// loadHistory fetches prior scans; store trouble degrades the trend to a
// first scan rather than blocking the new scan.
func (o *ScanOrchestrator) loadHistory(ctx context.Context, repo string, log zerolog.Logger) []models.ScanResult {
	limit := o.cfg.HistoryLimit
	if limit <= 0 {
		limit = 10
	}
	priorScans, err := o.history.RecentScans(ctx, repo, limit)
	if err != nil {
		log.Warn().Err(err).Msg("History unavailable, treating as first scan")
		return nil
	}
	return priorScans
}

// shortCircuitCandidate returns the most recent prior scan of the same
// branch whose recorded head commit matches the current one. The branch is
// part of the short-circuit key: a SHA recorded for another branch never
// short-circuits this one.
func shortCircuitCandidate(priorScans []models.ScanResult, branch, headSHA string) *models.ScanResult {
	if headSHA == "" {
		return nil
	}
	var candidate *models.ScanResult
	for i := range priorScans {
		p := &priorScans[i]
		if p.Branch != branch || p.LastCommitSHA != headSHA {
			continue
		}
		if candidate == nil || p.Timestamp.After(candidate.Timestamp) {
			candidate = p
		}
	}
	return candidate
}

// reuseScan builds a fresh result from a previous scan's findings and
// statistics. The scan id and timestamp are always new, even though the
// findings are reused verbatim.
func (o *ScanOrchestrator) reuseScan(previous *models.ScanResult, repo, branch, scanID, headSHA string) *models.ScanResult {
	return &models.ScanResult{
		RepoName:      repo,
		ScanID:        scanID,
		Branch:        branch,
		Timestamp:     time.Now().UTC(),
		LastCommitSHA: headSHA,
		Findings:      previous.Findings,
		Statistics:    previous.Statistics,
	}
}

// fullScan runs all detectors concurrently over the immutable file list,
// merges findings deterministically, enriches dependency findings, and
// computes the trend.
func (o *ScanOrchestrator) fullScan(
	ctx context.Context,
	repo, branch, scanID, headSHA string,
	files []models.RepoFile,
	priorScans []models.ScanResult,
) (*models.ScanResult, error) {
	var (
		secretFindings  []models.Finding
		depFindings     []models.Finding
		configFindings  []models.Finding
		patternFindings []models.Finding
		matchedDeps     []deps.Dependency
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		secretFindings = detectors.Registry[models.CategoryCredentials](files)
		return gctx.Err()
	})
	g.Go(func() error {
		depFindings, matchedDeps = o.analyzer.AnalyzeWithDependencies(files)
		return gctx.Err()
	})
	g.Go(func() error {
		configFindings = detectors.Registry[models.CategoryConfiguration](files)
		return gctx.Err()
	})
	g.Go(func() error {
		patternFindings = detectors.Registry[models.CategoryCodePattern](files)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		// A cancelled full scan surfaces as an error: partial severity
		// statistics would be misleading.
		return nil, common.WrapError(err, "scan cancelled")
	}

	// Merge order is fixed so repeated scans of identical content produce
	// identical results.
	findings := make([]models.Finding, 0, len(secretFindings)+len(depFindings)+len(configFindings)+len(patternFindings))
	findings = append(findings, secretFindings...)
	depOffset := len(findings)
	findings = append(findings, depFindings...)
	findings = append(findings, configFindings...)
	findings = append(findings, patternFindings...)

	if o.lookup != nil && len(depFindings) > 0 {
		o.analyzer.Enrich(ctx, o.lookup, findings[depOffset:depOffset+len(depFindings)], matchedDeps, o.cfg.EnrichmentConcurrency)
	}

	result := &models.ScanResult{
		RepoName:      repo,
		ScanID:        scanID,
		Branch:        branch,
		Timestamp:     time.Now().UTC(),
		LastCommitSHA: headSHA,
		Findings:      findings,
		Statistics: models.Statistics{
			FilesScanned:     len(files),
			IssuesBySeverity: models.SeverityHistogram(findings),
		},
	}

	trendResult := trend.Compute(result, priorScans)
	result.Statistics.Trends = &trendResult
	return result, nil
}

// persist appends the scan record and each finding to the durable store.
// Failing to persist an individual finding is logged and skipped; failing
// to persist the scan record itself is an error, since history and trends
// depend on it.
func (o *ScanOrchestrator) persist(ctx context.Context, result *models.ScanResult, log zerolog.Logger) error {
	blob, err := json.Marshal(result)
	if err != nil {
		return common.WrapError(err, "failed to encode scan result")
	}
	if err := o.store.Append(ctx, datastore.BlobRecord{
		Kind: datastore.KindScan,
		Repo: result.RepoName,
		Blob: string(blob),
	}); err != nil {
		return common.WrapError(err, "failed to persist scan result")
	}

	for i := range result.Findings {
		findingBlob, err := json.Marshal(&result.Findings[i])
		if err == nil {
			err = o.store.Append(ctx, datastore.BlobRecord{
				Kind: datastore.KindFinding,
				Repo: result.RepoName,
				Blob: string(findingBlob),
			})
		}
		if err != nil {
			log.Warn().Err(err).Int("finding", i).Msg("Failed to persist finding record")
		}
	}
	return nil
}

// HighSeverityFindings returns the critical and high findings of a result,
// the conventional input to an issue-creation collaborator.
func HighSeverityFindings(result *models.ScanResult) []models.Finding {
	return models.FilterBySeverity(result.Findings, models.SeverityCritical, models.SeverityHigh)
}

// IsNotFound reports whether a scan error means the repository or branch
// does not exist, as opposed to a transient retrieval failure.
func IsNotFound(err error) bool {
	return errors.Is(err, common.ErrNotFound)
}
