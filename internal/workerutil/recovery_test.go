package workerutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"inputviewer/internal/testutil"
)

func TestRunWithPanicRecoveryRestarts(t *testing.T) {
	logs := testutil.CaptureLogBuffer(t, slog.LevelDebug)

	var runs atomic.Int32
	var panics atomic.Int32
	var wg sync.WaitGroup
	RunWithPanicRecovery(context.Background(), "relay", &wg, func(ctx context.Context) {
		if runs.Add(1) < 3 {
			panic("boom")
		}
	}, RecoveryOptions{
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		OnPanic:        func(string, int) { panics.Add(1) },
	})
	wg.Wait()

	if runs.Load() != 3 {
		t.Errorf("Expected 3 runs, got %d", runs.Load())
	}
	if panics.Load() != 2 {
		t.Errorf("Expected 2 panics, got %d", panics.Load())
	}
	if !strings.Contains(logs.String(), "worker=relay") {
		t.Errorf("Expected worker name in logs, got %s", logs.String())
	}
}

func TestRunWithPanicRecoveryGivesUp(t *testing.T) {
	testutil.CaptureLogBuffer(t, slog.LevelError)

	var runs atomic.Int32
	fatal := make(chan int, 1)
	var wg sync.WaitGroup
	RunWithPanicRecovery(context.Background(), "poller", &wg, func(ctx context.Context) {
		runs.Add(1)
		panic("always")
	}, RecoveryOptions{
		InitialBackoff: time.Millisecond,
		MaxRetries:     3,
		OnFatal:        func(_ string, n int) { fatal <- n },
	})
	wg.Wait()

	if runs.Load() != 3 {
		t.Errorf("Expected 3 runs, got %d", runs.Load())
	}
	select {
	case n := <-fatal:
		if n != 3 {
			t.Errorf("Expected OnFatal with 3, got %d", n)
		}
	default:
		t.Error("Expected OnFatal to be called")
	}
}

func TestRunWithPanicRecoveryStopsOnCancel(t *testing.T) {
	testutil.CaptureLogBuffer(t, slog.LevelError)

	ctx, cancel := context.WithCancel(context.Background())
	var runs atomic.Int32
	var wg sync.WaitGroup
	RunWithPanicRecovery(ctx, "ticker", &wg, func(ctx context.Context) {
		runs.Add(1)
		cancel()
		panic("after cancel")
	}, RecoveryOptions{InitialBackoff: time.Hour})
	wg.Wait()

	if runs.Load() != 1 {
		t.Errorf("Expected 1 run after cancel, got %d", runs.Load())
	}
}

func TestNextBackoff(t *testing.T) {
	tests := []struct {
		current, max, want time.Duration
	}{
		{0, time.Second, defaultInitialBackoff},
		{100 * time.Millisecond, time.Second, 200 * time.Millisecond},
		{800 * time.Millisecond, time.Second, time.Second},
		{time.Second, time.Second, time.Second},
	}
	for _, tt := range tests {
		if got := nextBackoff(tt.current, tt.max); got != tt.want {
			t.Errorf("nextBackoff(%s, %s): expected %s, got %s", tt.current, tt.max, tt.want, got)
		}
	}
}
