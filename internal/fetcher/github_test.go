package fetcher

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajyadav1814/repoguard/internal/common"
	"github.com/rajyadav1814/repoguard/internal/config"
)

func testFetcherConfig(baseURL string) config.FetcherConfig {
	return config.FetcherConfig{
		BaseURL:       baseURL,
		Token:         "test-token",
		Concurrency:   4,
		TimeoutSecs:   5,
		MaxFileSizeKB: 512,
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestGitHubFetcher_Fetch(t *testing.T) {
	var sawAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawAuth = r.Header.Get("Authorization")
		switch r.URL.Path {
		case "/repos/octo/widgets/git/trees/main":
			writeJSON(t, w, map[string]any{
				"sha": "tree1",
				"tree": []map[string]any{
					{"path": "main.go", "type": "blob", "sha": "b1", "size": 20},
					{"path": "docs", "type": "tree", "sha": "t2", "size": 0},
					{"path": "big.bin", "type": "blob", "sha": "b2", "size": 10 << 20},
					{"path": "sub dir/app.py", "type": "blob", "sha": "b3", "size": 15},
				},
			})
		case "/repos/octo/widgets/contents/main.go":
			writeJSON(t, w, map[string]any{
				"content":  base64.StdEncoding.EncodeToString([]byte("package main\n")),
				"encoding": "base64",
			})
		case "/repos/octo/widgets/contents/sub dir/app.py":
			writeJSON(t, w, map[string]any{
				"content":  "print('hi')\n",
				"encoding": "utf-8",
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewGitHubFetcher(testFetcherConfig(srv.URL), zerolog.Nop())
	files, err := f.Fetch(context.Background(), "octo/widgets", "main")
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", sawAuth)

	require.Len(t, files, 2)
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	assert.Equal(t, "main.go", files[0].Path)
	assert.Equal(t, "package main\n", files[0].Content)
	assert.Equal(t, "b1", files[0].SHA)
	assert.Equal(t, "sub dir/app.py", files[1].Path)
	assert.Equal(t, "print('hi')\n", files[1].Content)
}

func TestGitHubFetcher_FailedFileIsSkipped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/octo/widgets/git/trees/main":
			writeJSON(t, w, map[string]any{
				"tree": []map[string]any{
					{"path": "good.go", "type": "blob", "sha": "b1", "size": 10},
					{"path": "flaky.go", "type": "blob", "sha": "b2", "size": 10},
				},
			})
		case "/repos/octo/widgets/contents/good.go":
			writeJSON(t, w, map[string]any{"content": "package good\n", "encoding": "utf-8"})
		case "/repos/octo/widgets/contents/flaky.go":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewGitHubFetcher(testFetcherConfig(srv.URL), zerolog.Nop())
	files, err := f.Fetch(context.Background(), "octo/widgets", "main")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "good.go", files[0].Path)
}

func TestGitHubFetcher_MissingRepo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer srv.Close()

	f := NewGitHubFetcher(testFetcherConfig(srv.URL), zerolog.Nop())
	_, err := f.Fetch(context.Background(), "octo/missing", "main")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGitHubFetcher_ServerErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := NewGitHubFetcher(testFetcherConfig(srv.URL), zerolog.Nop())
	_, err := f.Fetch(context.Background(), "octo/widgets", "main")
	assert.ErrorIs(t, err, common.ErrTransient)
}

func TestGitHubFetcher_HeadCommit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/octo/widgets/commits/main", r.URL.Path)
		writeJSON(t, w, map[string]any{"sha": "abc123"})
	}))
	defer srv.Close()

	f := NewGitHubFetcher(testFetcherConfig(srv.URL), zerolog.Nop())
	sha, err := f.HeadCommit(context.Background(), "octo/widgets", "main")
	require.NoError(t, err)
	assert.Equal(t, "abc123", sha)
}

func TestEscapePath(t *testing.T) {
	assert.Equal(t, "a/b%20c/d.go", escapePath("a/b c/d.go"))
	assert.Equal(t, "plain.go", escapePath("plain.go"))
}
