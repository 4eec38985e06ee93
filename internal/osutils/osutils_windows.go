//go:build windows

package osutils

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procGetForegroundWindow = user32.NewProc("GetForegroundWindow")
	procGetWindowTextW      = user32.NewProc("GetWindowTextW")
	procSetWindowPos        = user32.NewProc("SetWindowPos")
)

const (
	hwndTopmost   = ^uintptr(0)     // HWND_TOPMOST (-1)
	hwndNoTopmost = ^uintptr(0) - 1 // HWND_NOTOPMOST (-2)
	swpNoSize     = 0x0001
	swpNoMove     = 0x0002
	swpNoActivate = 0x0010
)

// IsAdmin checks if the current process has administrative privileges
func IsAdmin() bool {
	var token windows.Token
	h, _ := windows.GetCurrentProcess()
	err := windows.OpenProcessToken(h, windows.TOKEN_QUERY, &token)
	if err != nil {
		return false
	}
	defer token.Close()

	var sid *windows.SID
	err = windows.AllocateAndInitializeSid(
		&windows.SECURITY_NT_AUTHORITY,
		2,
		windows.SECURITY_BUILTIN_DOMAIN_RID,
		windows.DOMAIN_ALIAS_RID_ADMINS,
		0, 0, 0, 0, 0, 0,
		&sid,
	)
	if err != nil {
		return false
	}
	defer windows.FreeSid(sid)

	member, err := token.IsMember(sid)
	if err != nil {
		return false
	}

	return member
}

// Foreground reads the title of the focused top-level window
type Foreground struct{}

// NewForeground creates a foreground window reader
func NewForeground() (*Foreground, error) {
	return &Foreground{}, nil
}

// Title returns the focused window's title, or "" when there is none or it has no text
func (f *Foreground) Title() (string, error) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return "", nil
	}

	var buf [TitleBufferLen]uint16
	n, _, _ := procGetWindowTextW.Call(
		hwnd,
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
	)
	if n == 0 {
		return "", nil
	}
	return windows.UTF16ToString(buf[:n]), nil
}

// Close is a no-op on Windows
func (f *Foreground) Close() error {
	return nil
}

// SetTopmost adds or removes the always-on-top attribute of a native window (HWND)
func SetTopmost(handle uintptr, on bool) error {
	if handle == 0 {
		return fmt.Errorf("set topmost: %w", ErrNoWindow)
	}
	insertAfter := hwndNoTopmost
	if on {
		insertAfter = hwndTopmost
	}
	ret, _, err := procSetWindowPos.Call(
		handle,
		insertAfter,
		0, 0, 0, 0,
		swpNoMove|swpNoSize|swpNoActivate,
	)
	if ret == 0 {
		return fmt.Errorf("SetWindowPos failed: %w", err)
	}
	return nil
}
