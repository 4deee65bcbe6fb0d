package datastore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	valkey "github.com/valkey-io/valkey-go"

	"github.com/rajyadav1814/repoguard/internal/common"
)

// ValkeyStore is the hosted BlobStore backend. Records are keyed
// repoguard:<kind>:<repo>:<nanotimestamp> so a pattern scan per
// (repo, kind) recovers them newest first.
type ValkeyStore struct {
	client valkey.Client
	logger zerolog.Logger
}

// NewValkeyStore connects to the given address.
func NewValkeyStore(addr string, logger zerolog.Logger) (*ValkeyStore, error) {
	client, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{addr}})
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to connect to valkey at %s", addr)
	}
	return &ValkeyStore{
		client: client,
		logger: logger.With().Str("component", "ValkeyStore").Logger(),
	}, nil
}

func recordKey(kind, repo string, ts time.Time) string {
	return fmt.Sprintf("repoguard:%s:%s:%d", kind, repo, ts.UnixNano())
}

// Append implements BlobStore.
func (s *ValkeyStore) Append(ctx context.Context, record BlobRecord) error {
	key := recordKey(record.Kind, record.Repo, time.Now())
	cmd := s.client.B().Set().Key(key).Value(record.Blob).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return common.WrapErrorf(err, "valkey SET failed for key '%s'", key)
	}
	return nil
}

// Query implements BlobStore, returning blobs newest first.
func (s *ValkeyStore) Query(ctx context.Context, repo, kindHint string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	pattern := fmt.Sprintf("repoguard:%s:%s:*", kindHint, repo)
	keysCmd := s.client.B().Keys().Pattern(pattern).Build()
	resp := s.client.Do(ctx, keysCmd)
	if err := resp.Error(); err != nil {
		return nil, common.WrapErrorf(err, "valkey KEYS failed for pattern '%s'", pattern)
	}
	keys, err := resp.AsStrSlice()
	if err != nil {
		return nil, common.WrapError(err, "failed to convert valkey KEYS reply")
	}

	// Keys embed a nanosecond timestamp suffix; reverse-sorting yields
	// newest first.
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	if len(keys) > limit {
		keys = keys[:limit]
	}

	blobs := make([]string, 0, len(keys))
	for _, key := range keys {
		getCmd := s.client.B().Get().Key(key).Build()
		getResp := s.client.Do(ctx, getCmd)
		if err := getResp.Error(); err != nil {
			if valkey.IsValkeyNil(err) {
				continue
			}
			return nil, common.WrapErrorf(err, "valkey GET failed for key '%s'", key)
		}
		blob, err := getResp.ToString()
		if err != nil {
			s.logger.Warn().Str("key", key).Err(err).Msg("Skipping non-string record value")
			continue
		}
		blobs = append(blobs, blob)
	}
	return blobs, nil
}

// Close implements BlobStore.
func (s *ValkeyStore) Close() error {
	s.client.Close()
	return nil
}
