package metastore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"prerender/internal/config"
	"prerender/internal/logging"
)

// keyLength is the number of hex characters kept from the digest.
const keyLength = 12

// ErrCorruptRecord indicates a stored record could not be decoded.
var ErrCorruptRecord = errors.New("corrupt metadata record")

// Record holds the validators returned with the last successful download.
// A nil field means the server did not send that header.
type Record struct {
	ETag         *string `json:"etag"`
	LastModified *string `json:"last_modified"`
}

// ETagValue returns the entity tag or an empty string.
func (r Record) ETagValue() string {
	if r.ETag == nil {
		return ""
	}
	return *r.ETag
}

// LastModifiedValue returns the Last-Modified value or an empty string.
func (r Record) LastModifiedValue() string {
	if r.LastModified == nil {
		return ""
	}
	return *r.LastModified
}

// HasValidators reports whether at least one validator is non-empty.
func (r Record) HasValidators() bool {
	return r.ETagValue() != "" || r.LastModifiedValue() != ""
}

// NewRecord builds a record from raw header values, storing empty values as
// absent.
func NewRecord(etag, lastModified string) Record {
	var rec Record
	if etag != "" {
		rec.ETag = &etag
	}
	if lastModified != "" {
		rec.LastModified = &lastModified
	}
	return rec
}

// Key derives the record key for a destination path. The path string is
// hashed verbatim.
func Key(destination string) string {
	sum := sha256.Sum256([]byte(destination))
	return hex.EncodeToString(sum[:])[:keyLength]
}

// Store is a key-value store of validator records.
type Store interface {
	// Get returns the record for key. The bool is false when no record exists.
	Get(ctx context.Context, key string) (Record, bool, error)
	// Put replaces the record for key.
	Put(ctx context.Context, key string, rec Record) error
	// Close releases backend resources.
	Close() error
}

// Open returns the store selected by assets.metadata_backend.
func Open(cfg *config.Config, logger *slog.Logger) (Store, error) {
	if cfg == nil {
		return nil, errors.New("metastore: config is nil")
	}
	logger = logging.NewComponentLogger(logger, "metastore")
	switch cfg.Assets.MetadataBackend {
	case config.BackendJSON, "":
		logger.Debug("using json sidecars", logging.String("dir", cfg.Paths.CacheDir))
		return NewJSONStore(cfg.Paths.CacheDir), nil
	case config.BackendSQLite:
		store, err := OpenSQLite(cfg.MetadataDBPath())
		if err != nil {
			return nil, err
		}
		logger.Debug("using sqlite database", logging.String("path", store.Path()))
		return store, nil
	default:
		return nil, fmt.Errorf("metastore: unsupported backend %q", cfg.Assets.MetadataBackend)
	}
}

// OpenForRead opens the configured backend without creating anything on
// disk. A sqlite database that does not exist yet reads as an empty store.
func OpenForRead(cfg *config.Config, logger *slog.Logger) (Store, error) {
	if cfg == nil {
		return nil, errors.New("metastore: config is nil")
	}
	if cfg.Assets.MetadataBackend == config.BackendSQLite {
		if _, err := os.Stat(cfg.MetadataDBPath()); errors.Is(err, fs.ErrNotExist) {
			logging.NewComponentLogger(logger, "metastore").Debug("no sqlite database yet",
				logging.String("path", cfg.MetadataDBPath()))
			return NewMemoryStore(), nil
		}
	}
	return Open(cfg, logger)
}
