//go:build !windows

package singleinstance

// Lock is empty here; nothing stops a second overlay outside Windows
type Lock struct{}

// TryLock never fails
func TryLock(_ string) (*Lock, error) { return &Lock{}, nil }

// Release does nothing
func (l *Lock) Release() error { return nil }

// DefaultMutexName has no meaning without named mutexes
func DefaultMutexName() string { return "" }
