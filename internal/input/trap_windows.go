//go:build windows

package input

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Windows implementation of input capture using low-level hooks

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	kernel32                = windows.NewLazySystemDLL("kernel32.dll")
	procSetWindowsHookEx    = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procGetMessage          = user32.NewProc("GetMessageW")
	procTranslateMessage    = user32.NewProc("TranslateMessage")
	procDispatchMessage     = user32.NewProc("DispatchMessageW")
	procPostThreadMessage   = user32.NewProc("PostThreadMessageW")
	procGetModuleHandle     = kernel32.NewProc("GetModuleHandleW")
)

const (
	WH_KEYBOARD_LL = 13
	WH_MOUSE_LL    = 14
	HC_ACTION      = 0
	WM_QUIT        = 0x0012

	WM_KEYDOWN    = 0x0100
	WM_KEYUP      = 0x0101
	WM_SYSKEYDOWN = 0x0104
	WM_SYSKEYUP   = 0x0105

	WM_MOUSEMOVE   = 0x0200
	WM_LBUTTONDOWN = 0x0201
	WM_LBUTTONUP   = 0x0202
	WM_RBUTTONDOWN = 0x0204
	WM_RBUTTONUP   = 0x0205
	WM_MBUTTONDOWN = 0x0207
	WM_MBUTTONUP   = 0x0208
	WM_XBUTTONDOWN = 0x020B
	WM_XBUTTONUP   = 0x020C

	LLKHF_EXTENDED = 0x01
)

type POINT struct {
	X, Y int32
}

type MSG struct {
	Hwnd    windows.Handle
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      POINT
}

type MSLLHOOKSTRUCT struct {
	Pt          POINT
	MouseData   uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type KBDLLHOOKSTRUCT struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

// Trap captures global input with WH_KEYBOARD_LL and WH_MOUSE_LL hooks
type Trap struct {
	mu        sync.Mutex
	running   bool
	events    chan Event
	stopOnce  sync.Once
	threadID  uint32
	exited    chan struct{}
	mouseHook uintptr
	keyHook   uintptr
	dropped   atomic.Uint64
}

// NewTrap creates a new input trap for Windows
func NewTrap() *Trap {
	return &Trap{
		events: make(chan Event, eventBuffer),
		exited: make(chan struct{}),
	}
}

// Start installs the hooks on a dedicated OS thread and waits until they are in place
func (t *Trap) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return ErrAlreadyRunning
	}

	ready := make(chan error, 1)
	go t.hookThread(ready)
	if err := <-ready; err != nil {
		return err
	}

	t.running = true
	slog.Info("Hook: native low-level hooks installed")
	return nil
}

// Stop unhooks, ends the hook thread and closes the event channel
func (t *Trap) Stop() error {
	t.stopOnce.Do(func() {
		t.mu.Lock()
		wasRunning := t.running
		t.running = false
		threadID := t.threadID
		t.mu.Unlock()

		if !wasRunning {
			close(t.events)
			return
		}

		procPostThreadMessage.Call(uintptr(threadID), WM_QUIT, 0, 0)
		<-t.exited
		close(t.events)
		slog.Info("Hook: native hooks removed", "dropped", t.dropped.Load())
	})
	return nil
}

// Events returns the input event channel
func (t *Trap) Events() <-chan Event {
	return t.events
}

// Dropped reports how many events were discarded because the channel was full
func (t *Trap) Dropped() uint64 {
	return t.dropped.Load()
}

// hookThread owns the hooks. Low-level hook callbacks are delivered to the
// thread that installed them, so it must stay locked and pump messages.
func (t *Trap) hookThread(ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(t.exited)

	t.threadID = windows.GetCurrentThreadId()

	if err := t.setupHooks(); err != nil {
		ready <- err
		return
	}
	ready <- nil

	var msg MSG
	for {
		ret, _, _ := procGetMessage.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
		if int32(ret) <= 0 {
			break
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&msg)))
		procDispatchMessage.Call(uintptr(unsafe.Pointer(&msg)))
	}

	t.removeHooks()
}

// setupHooks sets up low-level mouse and keyboard hooks
func (t *Trap) setupHooks() error {
	hInstance, _, _ := procGetModuleHandle.Call(0)

	mouseHook, _, err := procSetWindowsHookEx.Call(
		WH_MOUSE_LL,
		windows.NewCallback(t.mouseHookProc),
		hInstance,
		0, // all threads
	)
	if mouseHook == 0 {
		return fmt.Errorf("failed to set mouse hook: %w", err)
	}
	t.mouseHook = mouseHook

	keyHook, _, err := procSetWindowsHookEx.Call(
		WH_KEYBOARD_LL,
		windows.NewCallback(t.keyboardHookProc),
		hInstance,
		0,
	)
	if keyHook == 0 {
		procUnhookWindowsHookEx.Call(t.mouseHook)
		t.mouseHook = 0
		return fmt.Errorf("failed to set keyboard hook: %w", err)
	}
	t.keyHook = keyHook
	return nil
}

func (t *Trap) removeHooks() {
	if t.mouseHook != 0 {
		procUnhookWindowsHookEx.Call(t.mouseHook)
		t.mouseHook = 0
	}
	if t.keyHook != 0 {
		procUnhookWindowsHookEx.Call(t.keyHook)
		t.keyHook = 0
	}
}

// send never blocks; a hook callback that stalls delays input system-wide
func (t *Trap) send(e Event) {
	select {
	case t.events <- e:
	default:
		t.dropped.Add(1)
	}
}

// mouseHookProc handles mouse hook events
func (t *Trap) mouseHookProc(nCode int32, wParam uintptr, lParam uintptr) uintptr {
	if nCode == HC_ACTION {
		hs := (*MSLLHOOKSTRUCT)(unsafe.Pointer(lParam))
		x, y := int(hs.Pt.X), int(hs.Pt.Y)
		now := time.Now()

		switch uint32(wParam) {
		case WM_MOUSEMOVE:
			t.send(Event{Kind: MouseMove, X: x, Y: y, When: now})
		case WM_LBUTTONDOWN:
			t.send(Event{Kind: ButtonDown, Button: ButtonName(1), X: x, Y: y, When: now})
		case WM_LBUTTONUP:
			t.send(Event{Kind: ButtonUp, Button: ButtonName(1), X: x, Y: y, When: now})
		case WM_RBUTTONDOWN:
			t.send(Event{Kind: ButtonDown, Button: ButtonName(2), X: x, Y: y, When: now})
		case WM_RBUTTONUP:
			t.send(Event{Kind: ButtonUp, Button: ButtonName(2), X: x, Y: y, When: now})
		case WM_MBUTTONDOWN:
			t.send(Event{Kind: ButtonDown, Button: ButtonName(3), X: x, Y: y, When: now})
		case WM_MBUTTONUP:
			t.send(Event{Kind: ButtonUp, Button: ButtonName(3), X: x, Y: y, When: now})
		case WM_XBUTTONDOWN:
			t.send(Event{Kind: ButtonDown, Button: ButtonName(xButton(hs.MouseData)), X: x, Y: y, When: now})
		case WM_XBUTTONUP:
			t.send(Event{Kind: ButtonUp, Button: ButtonName(xButton(hs.MouseData)), X: x, Y: y, When: now})
		}
	}

	ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return ret
}

// keyboardHookProc handles keyboard hook events
func (t *Trap) keyboardHookProc(nCode int32, wParam uintptr, lParam uintptr) uintptr {
	if nCode == HC_ACTION {
		hs := (*KBDLLHOOKSTRUCT)(unsafe.Pointer(lParam))
		name := KeyName(scanCodeToKeyCode(hs.ScanCode, hs.Flags&LLKHF_EXTENDED != 0))

		switch uint32(wParam) {
		case WM_KEYDOWN, WM_SYSKEYDOWN:
			t.send(Event{Kind: KeyDown, Key: name, When: time.Now()})
		case WM_KEYUP, WM_SYSKEYUP:
			t.send(Event{Kind: KeyUp, Key: name, When: time.Now()})
		}
	}

	ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return ret
}

// xButton maps the XBUTTON1/XBUTTON2 high word to hook button numbers 4 and 5
func xButton(mouseData uint32) int {
	return 3 + int(mouseData>>16)
}
