//go:build !unix

package platform

// Lock acquires the lock. Platforms without flock get advisory no-op
// locking, which matches single-operator use on those systems.
func (l *FileLock) Lock() error {
	return l.open()
}

// TryLock always succeeds where flock is unavailable.
func (l *FileLock) TryLock() (bool, error) {
	if err := l.open(); err != nil {
		return false, err
	}
	return true, nil
}

// Unlock releases the underlying file handle.
func (l *FileLock) Unlock() error {
	return l.close()
}
