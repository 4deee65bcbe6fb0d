package datastore

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rajyadav1814/repoguard/internal/models"
)

// legacyToken is the fixed leading token of the plain-text record format
// written before scans were stored as JSON documents.
const legacyToken = "SECURITY_FINDING"

// History is the read path over historical scan records. It never fails
// on malformed records: a blob that cannot be repaired is dropped, and
// only records exposing both a repository name and a scan id are accepted.
type History struct {
	store  BlobStore
	logger zerolog.Logger
}

// NewHistory creates a History over the given store.
func NewHistory(store BlobStore, logger zerolog.Logger) *History {
	return &History{
		store:  store,
		logger: logger.With().Str("component", "History").Logger(),
	}
}

// RecentScans returns up to limit prior scan records for a repository,
// newest first. The only possible error is store unavailability; malformed
// records reduce the result set, never the success of the call.
func (h *History) RecentScans(ctx context.Context, repo string, limit int) ([]models.ScanResult, error) {
	blobs, err := h.store.Query(ctx, repo, KindScan, limit)
	if err != nil {
		return nil, err
	}

	scans := make([]models.ScanResult, 0, len(blobs))
	for _, blob := range blobs {
		record, ok := DecodeScanRecord(blob)
		if !ok {
			h.logger.Warn().Str("repo", repo).Msg("Dropping unrepairable scan record")
			continue
		}
		if record.RepoName == "" || record.ScanID == "" {
			h.logger.Warn().Str("repo", repo).Msg("Dropping partial scan record")
			continue
		}
		scans = append(scans, *record)
	}
	return scans, nil
}

// DecodeScanRecord reconstructs a scan record from untrusted stored text.
// Strategies are tried in order: direct decode, legacy plain-text
// conversion, structural repair, then a lenient pass that sacrifices the
// array around the decoder's reported error offset.
func DecodeScanRecord(blob string) (*models.ScanResult, bool) {
	trimmed := strings.TrimSpace(blob)

	var record models.ScanResult
	if err := json.Unmarshal([]byte(trimmed), &record); err == nil {
		return &record, true
	}

	if strings.HasPrefix(trimmed, legacyToken) {
		return decodeLegacyRecord(trimmed)
	}

	repaired, valid := Repair(trimmed)
	if valid {
		record = models.ScanResult{}
		if err := json.Unmarshal([]byte(repaired), &record); err == nil {
			return &record, true
		}
	}

	return decodeWithLenientFallback(repaired)
}

// decodeWithLenientFallback repeatedly empties the array around the decode
// error offset until the document decodes or no enclosing array is left.
func decodeWithLenientFallback(s string) (*models.ScanResult, bool) {
	for attempt := 0; attempt < 4; attempt++ {
		var record models.ScanResult
		err := json.Unmarshal([]byte(s), &record)
		if err == nil {
			return &record, true
		}
		syntaxErr, ok := err.(*json.SyntaxError)
		if !ok {
			return nil, false
		}
		fixed, replaced := LenientArrayFallback(s, int(syntaxErr.Offset)-1)
		if !replaced {
			return nil, false
		}
		s = fixed
	}
	return nil, false
}

// decodeLegacyRecord converts a plain-text key=value finding line into a
// minimal single-finding scan record. The format is
// SECURITY_FINDING|key=value|key=value|...
func decodeLegacyRecord(line string) (*models.ScanResult, bool) {
	fields := make(map[string]string)
	for _, part := range strings.Split(line, "|")[1:] {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		fields[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}

	repo := fields["repo"]
	scanID := fields["scan_id"]
	if repo == "" || scanID == "" {
		return nil, false
	}

	severity, ok := models.ParseSeverity(fields["severity"])
	if !ok {
		severity = models.SeverityMedium
	}

	finding := models.Finding{
		Severity:    severity,
		Category:    models.Category(fields["category"]),
		File:        fields["file"],
		Description: fields["description"],
	}
	if finding.Category == "" {
		finding.Category = models.CategoryCodePattern
	}
	if n, err := strconv.Atoi(fields["line"]); err == nil {
		finding.LineNumber = n
	}

	timestamp := time.Time{}
	if ts, err := time.Parse(time.RFC3339, fields["timestamp"]); err == nil {
		timestamp = ts
	}

	findings := []models.Finding{finding}
	return &models.ScanResult{
		RepoName:  repo,
		ScanID:    scanID,
		Timestamp: timestamp,
		Findings:  findings,
		Statistics: models.Statistics{
			FilesScanned:     0,
			IssuesBySeverity: models.SeverityHistogram(findings),
		},
	}, true
}
