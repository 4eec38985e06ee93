// Package osutils wraps the operating system calls the overlay needs:
// the foreground window title, the topmost window attribute and privilege checks.
package osutils

import "errors"

// TitleBufferLen bounds the number of characters read from a window title
const TitleBufferLen = 256

var (
	// ErrUnsupported is returned when the platform has no implementation
	ErrUnsupported = errors.New("not supported on this platform")

	// ErrNoWindow is returned when no native window handle is available
	ErrNoWindow = errors.New("no native window handle")
)

// truncateTitle bounds a title to TitleBufferLen-1 characters, matching the
// terminating slot a fixed-size buffer reserves
func truncateTitle(s string) string {
	r := []rune(s)
	if len(r) >= TitleBufferLen {
		return string(r[:TitleBufferLen-1])
	}
	return s
}
