//go:build !windows && !linux

package osutils

// IsAdmin is a stub for platforms without a privilege check
func IsAdmin() bool {
	return false
}

// Foreground is a stub for platforms without a foreground window query
type Foreground struct{}

// NewForeground returns ErrUnsupported
func NewForeground() (*Foreground, error) {
	return nil, ErrUnsupported
}

// Title returns ErrUnsupported
func (f *Foreground) Title() (string, error) {
	return "", ErrUnsupported
}

// Close is a no-op
func (f *Foreground) Close() error {
	return nil
}

// SetTopmost returns ErrUnsupported
func SetTopmost(handle uintptr, on bool) error {
	return ErrUnsupported
}
