// Package runlock prevents overlapping pre-render runs from writing the
// same cache directory at once.
package runlock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked indicates another process holds the lock.
var ErrLocked = errors.New("another prerender run is using this cache directory")

// Lock is a held cross-process lock.
type Lock struct {
	path string
	lock *flock.Flock
}

// PathFor returns the lock file used for cacheDir. It lives in the system
// temp directory so acquiring it does not create the cache directory.
func PathFor(cacheDir string) string {
	abs, err := filepath.Abs(cacheDir)
	if err != nil {
		abs = cacheDir
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(os.TempDir(), "prerender-"+hex.EncodeToString(sum[:])[:12]+".lock")
}

// Acquire takes the lock for cacheDir without blocking.
func Acquire(cacheDir string) (*Lock, error) {
	return AcquirePath(PathFor(cacheDir))
}

// AcquirePath takes the lock at an explicit file path without blocking.
func AcquirePath(path string) (*Lock, error) {
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrLocked, path)
	}
	return &Lock{path: path, lock: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release unlocks. It is safe to call on a nil Lock.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
