// Package datastore persists scan records to a durable append-only blob
// store and reads them back through a defensive repair path: historical
// blobs come from a lossy text-oriented store and may be truncated,
// unbalanced, or in a legacy plain-text format.
package datastore

import "context"

// Record kinds stored in the blob store.
const (
	KindScan    = "scan"
	KindFinding = "finding"
)

// BlobRecord is one appended record. The blob is serialized text; readers
// must treat stored blobs as untrusted.
type BlobRecord struct {
	Kind string
	Repo string
	Blob string
}

// BlobStore is the durable store contract. The store is append-only from
// this module's perspective: records are never updated in place.
type BlobStore interface {
	// Append stores one record.
	Append(ctx context.Context, record BlobRecord) error

	// Query returns up to limit raw blobs for a repository, newest first,
	// filtered by a kind hint. Returned blobs are untrusted text.
	Query(ctx context.Context, repo, kindHint string, limit int) ([]string, error)

	// Close releases the underlying connection.
	Close() error
}
