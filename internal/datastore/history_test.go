package datastore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajyadav1814/repoguard/internal/models"
)

type stubStore struct {
	blobs    []string
	queryErr error
	appended []BlobRecord
}

func (s *stubStore) Append(_ context.Context, record BlobRecord) error {
	s.appended = append(s.appended, record)
	return nil
}

func (s *stubStore) Query(_ context.Context, _, _ string, _ int) ([]string, error) {
	return s.blobs, s.queryErr
}

func (s *stubStore) Close() error { return nil }

func TestRecentScans_MalformedRecordsAreDroppedNotFatal(t *testing.T) {
	store := &stubStore{blobs: []string{
		`{"repo_name":"octo/widgets","scan_id":"s3","findings":[]}`,
		`%%% unsalvageable %%%`,
		`{"repo_name":"octo/widgets","scan_id":"s1","findings":[{"severity":"low","category":"code_pattern","description":"d","cve_ids":[]}`,
	}}
	h := NewHistory(store, zerolog.Nop())

	scans, err := h.RecentScans(context.Background(), "octo/widgets", 10)
	require.NoError(t, err)
	require.Len(t, scans, 2)
	assert.Equal(t, "s3", scans[0].ScanID)
	assert.Equal(t, "s1", scans[1].ScanID)
	assert.Len(t, scans[1].Findings, 1)
}

func TestRecentScans_PartialRecordsAreDropped(t *testing.T) {
	store := &stubStore{blobs: []string{
		`{"repo_name":"octo/widgets","findings":[]}`,
		`{"scan_id":"s9","findings":[]}`,
	}}
	h := NewHistory(store, zerolog.Nop())

	scans, err := h.RecentScans(context.Background(), "octo/widgets", 10)
	require.NoError(t, err)
	assert.Empty(t, scans)
}

func TestRecentScans_StoreErrorIsReturned(t *testing.T) {
	store := &stubStore{queryErr: errors.New("connection refused")}
	h := NewHistory(store, zerolog.Nop())

	_, err := h.RecentScans(context.Background(), "octo/widgets", 10)
	assert.Error(t, err)
}

func TestDecodeScanRecord_DirectJSON(t *testing.T) {
	blob := `{"repo_name":"octo/widgets","scan_id":"s1","branch":"main","last_commit_sha":"abc123","findings":[]}`
	record, ok := DecodeScanRecord(blob)
	require.True(t, ok)
	assert.Equal(t, "octo/widgets", record.RepoName)
	assert.Equal(t, "main", record.Branch)
	assert.Equal(t, "abc123", record.LastCommitSHA)
}

func TestDecodeScanRecord_LegacyPlainText(t *testing.T) {
	blob := "SECURITY_FINDING|repo=octo/widgets|scan_id=legacy-7|severity=high|category=credentials|file=config.py|line=12|description=Hardcoded password|timestamp=2024-03-01T10:00:00Z"
	record, ok := DecodeScanRecord(blob)
	require.True(t, ok)

	assert.Equal(t, "octo/widgets", record.RepoName)
	assert.Equal(t, "legacy-7", record.ScanID)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), record.Timestamp)

	require.Len(t, record.Findings, 1)
	f := record.Findings[0]
	assert.Equal(t, models.SeverityHigh, f.Severity)
	assert.Equal(t, models.CategoryCredentials, f.Category)
	assert.Equal(t, "config.py", f.File)
	assert.Equal(t, 12, f.LineNumber)
	assert.Equal(t, 1, record.Statistics.IssuesBySeverity[models.SeverityHigh])
}

func TestDecodeScanRecord_LegacyDefaults(t *testing.T) {
	blob := "SECURITY_FINDING|repo=octo/widgets|scan_id=legacy-8|severity=unknown-level|description=odd"
	record, ok := DecodeScanRecord(blob)
	require.True(t, ok)
	assert.Equal(t, models.SeverityMedium, record.Findings[0].Severity)
	assert.Equal(t, models.CategoryCodePattern, record.Findings[0].Category)
}

func TestDecodeScanRecord_LegacyMissingIdentityFails(t *testing.T) {
	_, ok := DecodeScanRecord("SECURITY_FINDING|severity=high|file=a.go")
	assert.False(t, ok)
}

func TestDecodeScanRecord_RepairsTruncatedJSON(t *testing.T) {
	blob := `{"repo_name":"octo/widgets","scan_id":"s5","findings":[{"severity":"medium","category":"dependency","description":"old lib`
	record, ok := DecodeScanRecord(blob)
	require.True(t, ok)
	assert.Equal(t, "s5", record.ScanID)
	require.Len(t, record.Findings, 1)
	assert.Equal(t, models.SeverityMedium, record.Findings[0].Severity)
}

func TestDecodeScanRecord_LenientFallbackSacrificesBadArray(t *testing.T) {
	blob := `{"repo_name":"octo/widgets","scan_id":"s6","findings":[{"severity":}]}`
	record, ok := DecodeScanRecord(blob)
	require.True(t, ok)
	assert.Equal(t, "s6", record.ScanID)
	assert.Empty(t, record.Findings)
}

func TestDecodeScanRecord_Unsalvageable(t *testing.T) {
	_, ok := DecodeScanRecord("\x00\x01 not even close")
	assert.False(t, ok)
}
