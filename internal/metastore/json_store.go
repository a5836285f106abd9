package metastore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"prerender/internal/fileutil"
)

// JSONStore keeps one <key>.json sidecar per record in a directory. The
// directory is created on the first Put.
type JSONStore struct {
	dir string
}

// NewJSONStore returns a store rooted at dir.
func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{dir: strings.TrimSpace(dir)}
}

// Dir exposes the backing directory for inspection.
func (s *JSONStore) Dir() string {
	if s == nil {
		return ""
	}
	return s.dir
}

// Path returns the sidecar location for key.
func (s *JSONStore) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *JSONStore) Get(_ context.Context, key string) (Record, bool, error) {
	if s == nil || s.dir == "" {
		return Record{}, false, errors.New("metastore: json store unavailable")
	}
	path := s.Path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, false, nil
		}
		return Record{}, false, fmt.Errorf("read sidecar %s: %w", path, err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false, fmt.Errorf("%w: %s: %v", ErrCorruptRecord, path, err)
	}
	return rec, true, nil
}

func (s *JSONStore) Put(_ context.Context, key string, rec Record) error {
	if s == nil || s.dir == "" {
		return errors.New("metastore: json store unavailable")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("ensure cache dir: %w", err)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode sidecar: %w", err)
	}
	if err := fileutil.WriteFileAtomic(s.Path(key), data, 0o644); err != nil {
		return fmt.Errorf("write sidecar: %w", err)
	}
	return nil
}

func (s *JSONStore) Close() error { return nil }
