// Package fetcher defines the repository content retrieval collaborator
// and its GitHub implementation. The orchestrator depends only on the
// ContentFetcher contract.
package fetcher

import (
	"context"

	"github.com/rajyadav1814/repoguard/internal/models"
)

// ContentFetcher retrieves a snapshot of a repository branch. A fetch may
// legitimately return zero files (empty repository); errors distinguish
// "not found" from transient failures via common.ErrNotFound and
// common.ErrTransient sentinels.
type ContentFetcher interface {
	// Fetch returns the file list for (repo, branch). Individual file
	// retrieval failures are skipped, not fatal; only a total failure to
	// reach the repository surfaces as an error.
	Fetch(ctx context.Context, repo, branch string) ([]models.RepoFile, error)

	// HeadCommit returns the SHA of the branch head.
	HeadCommit(ctx context.Context, repo, branch string) (string, error)
}
