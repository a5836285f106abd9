// Package metastore persists HTTP cache validators for mirrored assets.
//
// Records are keyed by the first twelve hex characters of the SHA-256 digest
// of the destination path. The JSON backend stores one sidecar file per key
// in the cache directory; the SQLite backend keeps the same records in a
// single table. MemoryStore backs tests.
package metastore
