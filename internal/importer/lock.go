package importer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/cosmiccatalog/cosmic-catalog/internal/errors"
)

// ErrImportRunning is returned when another process holds the import lock.
var ErrImportRunning = errors.NewStd("another import is already running")

// Lock keeps imports against one database from overlapping across
// processes.
type Lock struct {
	path string
	lock *flock.Flock
}

// NewLock returns an unlocked lock backed by the file at path.
func NewLock(path string) *Lock {
	return &Lock{path: path, lock: flock.New(path)}
}

// LockPathFor derives the lock file for a database file.
func LockPathFor(databasePath string) string {
	return databasePath + ".import.lock"
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Acquire takes the lock without waiting.
func (l *Lock) Acquire() error {
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create lock directory: %w", err)
		}
	}

	ok, err := l.lock.TryLock()
	if err != nil {
		return errors.New(fmt.Errorf("acquire import lock: %w", err)).
			Component("importer").
			Category(errors.CategoryFileIO).
			Context("path", l.path).
			Build()
	}
	if !ok {
		return errors.New(ErrImportRunning).
			Component("importer").
			Category(errors.CategoryState).
			Context("path", l.path).
			Build()
	}
	return nil
}

// Release drops the lock.
func (l *Lock) Release() error {
	return l.lock.Unlock()
}
