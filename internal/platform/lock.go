package platform

import (
	"fmt"
	"os"
)

// FileLock guards a file path against concurrent writers from other
// processes. On Unix it uses flock; elsewhere acquisition always succeeds.
type FileLock struct {
	path string
	f    *os.File
}

// NewFileLock prepares a lock on path. Nothing is acquired until Lock or
// TryLock is called.
func NewFileLock(path string) *FileLock {
	return &FileLock{path: path}
}

// Path returns the lock file's location.
func (l *FileLock) Path() string {
	return l.path
}

func (l *FileLock) open() error {
	if l.f != nil {
		return nil
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open lock file %s: %w", l.path, err)
	}
	l.f = f
	return nil
}

func (l *FileLock) close() error {
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}
