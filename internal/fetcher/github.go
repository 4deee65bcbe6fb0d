package fetcher

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rajyadav1814/repoguard/internal/common"
	"github.com/rajyadav1814/repoguard/internal/config"
	"github.com/rajyadav1814/repoguard/internal/models"
)

// GitHubFetcher retrieves repository contents through the GitHub REST API.
// Per-file downloads run concurrently, bounded to respect API rate limits;
// a failed file download is logged and skipped without cancelling its
// siblings.
type GitHubFetcher struct {
	cfg        config.FetcherConfig
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewGitHubFetcher creates a fetcher from configuration.
func NewGitHubFetcher(cfg config.FetcherConfig, logger zerolog.Logger) *GitHubFetcher {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GitHubFetcher{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "GitHubFetcher").Logger(),
	}
}

type treeResponse struct {
	SHA       string      `json:"sha"`
	Truncated bool        `json:"truncated"`
	Tree      []treeEntry `json:"tree"`
}

type treeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"`
	SHA  string `json:"sha"`
	Size int    `json:"size"`
}

type contentResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

type commitResponse struct {
	SHA string `json:"sha"`
}

// Fetch lists the branch tree and downloads every blob below the size cap.
func (g *GitHubFetcher) Fetch(ctx context.Context, repo, branch string) ([]models.RepoFile, error) {
	var tree treeResponse
	path := fmt.Sprintf("/repos/%s/git/trees/%s?recursive=1", repo, url.PathEscape(branch))
	if err := g.getJSON(ctx, path, &tree); err != nil {
		return nil, common.WrapErrorf(err, "failed to list tree for %s@%s", repo, branch)
	}
	if tree.Truncated {
		g.logger.Warn().Str("repo", repo).Msg("Tree listing truncated by the API, scan covers the returned subset")
	}

	maxSize := g.cfg.MaxFileSizeKB * 1024
	var blobs []treeEntry
	for _, e := range tree.Tree {
		if e.Type != "blob" {
			continue
		}
		if maxSize > 0 && e.Size > maxSize {
			continue
		}
		blobs = append(blobs, e)
	}

	concurrency := g.cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	files := make([]models.RepoFile, 0, len(blobs))
	var mu sync.Mutex

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(concurrency)
	for _, entry := range blobs {
		entry := entry
		grp.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			content, err := g.fetchBlob(ctx, repo, branch, entry.Path)
			if err != nil {
				// Single-file failures degrade the scan, they do not abort it.
				g.logger.Warn().Str("path", entry.Path).Err(err).Msg("Skipping file, retrieval failed")
				return nil
			}
			mu.Lock()
			files = append(files, models.RepoFile{Path: entry.Path, Content: content, SHA: entry.SHA})
			mu.Unlock()
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, common.WrapError(err, "file retrieval cancelled")
	}
	return files, nil
}

// HeadCommit returns the SHA of the branch head.
func (g *GitHubFetcher) HeadCommit(ctx context.Context, repo, branch string) (string, error) {
	var commit commitResponse
	path := fmt.Sprintf("/repos/%s/commits/%s", repo, url.PathEscape(branch))
	if err := g.getJSON(ctx, path, &commit); err != nil {
		return "", common.WrapErrorf(err, "failed to resolve head commit for %s@%s", repo, branch)
	}
	return commit.SHA, nil
}

func (g *GitHubFetcher) fetchBlob(ctx context.Context, repo, branch, filePath string) (string, error) {
	var content contentResponse
	path := fmt.Sprintf("/repos/%s/contents/%s?ref=%s", repo, escapePath(filePath), url.QueryEscape(branch))
	if err := g.getJSON(ctx, path, &content); err != nil {
		return "", err
	}
	if content.Encoding == "base64" {
		decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(content.Content, "\n", ""))
		if err != nil {
			return "", common.WrapError(err, "failed to decode file content")
		}
		return string(decoded), nil
	}
	return content.Content, nil
}

func (g *GitHubFetcher) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(g.cfg.BaseURL, "/")+path, nil)
	if err != nil {
		return common.WrapError(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if g.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+g.cfg.Token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return common.TransientError("request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return common.NotFoundError(fmt.Sprintf("GET %s", path), nil)
	case resp.StatusCode != http.StatusOK:
		return common.TransientError(fmt.Sprintf("GET %s returned HTTP %d", path, resp.StatusCode), nil)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return common.TransientError("reading response body", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return common.WrapError(err, "failed to decode response")
	}
	return nil
}

// escapePath escapes each path segment while keeping the separators.
func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
