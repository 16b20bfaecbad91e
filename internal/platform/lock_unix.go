//go:build unix

package platform

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Lock blocks until an exclusive lock on the path is held.
func (l *FileLock) Lock() error {
	if err := l.open(); err != nil {
		return err
	}
	if err := unix.Flock(int(l.f.Fd()), unix.LOCK_EX); err != nil {
		l.close()
		return fmt.Errorf("lock %s: %w", l.path, err)
	}
	return nil
}

// TryLock attempts the lock without blocking. It reports false when another
// process holds it.
func (l *FileLock) TryLock() (bool, error) {
	if err := l.open(); err != nil {
		return false, err
	}
	err := unix.Flock(int(l.f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if err == nil {
		return true, nil
	}
	l.close()
	if errors.Is(err, unix.EWOULDBLOCK) {
		return false, nil
	}
	return false, fmt.Errorf("lock %s: %w", l.path, err)
}

// Unlock releases the lock and closes the underlying file.
func (l *FileLock) Unlock() error {
	if l.f == nil {
		return nil
	}
	if err := unix.Flock(int(l.f.Fd()), unix.LOCK_UN); err != nil {
		l.close()
		return fmt.Errorf("unlock %s: %w", l.path, err)
	}
	return l.close()
}
