package overlay

import (
	"errors"
	"log/slog"
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"

	"inputviewer/internal/testutil"
)

type applyCall struct {
	handle uintptr
	on     bool
}

func newTestTopmost(t *testing.T, applyErr error) (*Topmost, *[]applyCall) {
	t.Helper()
	app := test.NewTempApp(t)
	tm := NewTopmost(app.NewWindow("Input Viewer"))
	var calls []applyCall
	tm.handle = func() (uintptr, bool) { return 0x1234, true }
	tm.apply = func(handle uintptr, on bool) error {
		calls = append(calls, applyCall{handle, on})
		return applyErr
	}
	return tm, &calls
}

// TestTopmostSet tests that each switch change reaches the OS with the window handle
func TestTopmostSet(t *testing.T) {
	testutil.CaptureLogBuffer(t, slog.LevelWarn)
	tm, calls := newTestTopmost(t, nil)

	tm.Set(true)
	tm.Set(false)
	tm.Set(true)

	want := []applyCall{{0x1234, true}, {0x1234, false}, {0x1234, true}}
	if len(*calls) != len(want) {
		t.Fatalf("Expected %d apply calls, got %d", len(want), len(*calls))
	}
	for i, c := range *calls {
		if c != want[i] {
			t.Errorf("Call %d: expected %+v, got %+v", i, want[i], c)
		}
	}
	if !tm.On() {
		t.Error("Expected topmost on")
	}
}

// TestTopmostApplyError tests that an OS failure is only logged
func TestTopmostApplyError(t *testing.T) {
	logs := testutil.CaptureLogBuffer(t, slog.LevelWarn)
	tm, calls := newTestTopmost(t, errors.New("access denied"))

	tm.Set(true)

	if len(*calls) != 1 {
		t.Errorf("Expected 1 apply call, got %d", len(*calls))
	}
	if !strings.Contains(logs.String(), "failed to change always on top") {
		t.Errorf("Expected failure warning, got %s", logs.String())
	}
	if !strings.Contains(logs.String(), "access denied") {
		t.Errorf("Expected error in log, got %s", logs.String())
	}
}

// TestTopmostNoHandle tests that a window without a native handle is left alone
func TestTopmostNoHandle(t *testing.T) {
	logs := testutil.CaptureLogBuffer(t, slog.LevelWarn)
	tm, calls := newTestTopmost(t, nil)
	tm.handle = func() (uintptr, bool) { return 0, false }

	tm.Set(true)

	if len(*calls) != 0 {
		t.Errorf("Expected no apply calls, got %d", len(*calls))
	}
	if !strings.Contains(logs.String(), "always on top unavailable") {
		t.Errorf("Expected unavailable warning, got %s", logs.String())
	}
}
