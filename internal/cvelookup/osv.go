package cvelookup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rajyadav1814/repoguard/internal/common"
)

// OSVClient queries the osv.dev vulnerability database for a
// package+version pair.
type OSVClient struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewOSVClient creates a client against the given base URL (e.g.
// https://api.osv.dev).
func NewOSVClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *OSVClient {
	return &OSVClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "OSVClient").Logger(),
	}
}

type osvQuery struct {
	Version string     `json:"version"`
	Package osvPackage `json:"package"`
}

type osvPackage struct {
	Name      string `json:"name"`
	Ecosystem string `json:"ecosystem"`
}

type osvResponse struct {
	Vulns []struct {
		ID      string   `json:"id"`
		Aliases []string `json:"aliases"`
	} `json:"vulns"`
}

// Lookup implements Client against the OSV query API. CVE aliases are
// preferred over OSV-native identifiers; each id appears at most once.
func (c *OSVClient) Lookup(ctx context.Context, ecosystem, pkg, version string) ([]string, error) {
	body, err := json.Marshal(osvQuery{
		Version: version,
		Package: osvPackage{Name: pkg, Ecosystem: ecosystem},
	})
	if err != nil {
		return nil, common.WrapError(err, "failed to encode OSV query")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/query", bytes.NewReader(body))
	if err != nil {
		return nil, common.WrapError(err, "failed to build OSV request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, common.TransientError("OSV query", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, common.TransientError(fmt.Sprintf("OSV query returned HTTP %d", resp.StatusCode), nil)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, common.TransientError("reading OSV response", err)
	}

	var parsed osvResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, common.WrapError(err, "failed to decode OSV response")
	}

	seen := make(map[string]bool)
	var ids []string
	for _, v := range parsed.Vulns {
		id := v.ID
		for _, alias := range v.Aliases {
			if strings.HasPrefix(alias, "CVE-") {
				id = alias
				break
			}
		}
		if id != "" && !seen[id] {
			ids = append(ids, id)
			seen[id] = true
		}
	}
	return ids, nil
}
