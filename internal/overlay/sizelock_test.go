package overlay

import (
	"slices"
	"testing"

	"fyne.io/fyne/v2"
)

// fakeGeometry records geometry calls in order
type fakeGeometry struct {
	size      fyne.Size
	resizable bool
	minSize   fyne.Size
	calls     []string
}

func (g *fakeGeometry) Size() fyne.Size { return g.size }
func (g *fakeGeometry) Resize(s fyne.Size) {
	g.size = s
	g.calls = append(g.calls, "resize")
}
func (g *fakeGeometry) Resizable() bool { return g.resizable }
func (g *fakeGeometry) SetResizable(on bool) {
	g.resizable = on
	g.calls = append(g.calls, "resizable")
}
func (g *fakeGeometry) SetMinSize(s fyne.Size) {
	g.minSize = s
	g.calls = append(g.calls, "min")
}

// TestSizeLockRoundTrip tests that unlocking restores the size from before locking
func TestSizeLockRoundTrip(t *testing.T) {
	geo := &fakeGeometry{size: fyne.NewSize(640, 480), resizable: true}
	lock := NewSizeLock(geo, DefaultSizeLockConfig())

	lock.Set(true)
	if geo.size != fyne.NewSize(250, 200) {
		t.Errorf("Expected locked size 250x200, got %v", geo.size)
	}
	if geo.minSize != fyne.NewSize(200, 150) {
		t.Errorf("Expected locked min size 200x150, got %v", geo.minSize)
	}
	if geo.resizable {
		t.Error("Expected window not resizable while locked")
	}

	lock.Set(false)
	if geo.size != fyne.NewSize(640, 480) {
		t.Errorf("Expected restored size 640x480, got %v", geo.size)
	}
	if !geo.resizable {
		t.Error("Expected resizability restored")
	}
	if geo.minSize != fyne.NewSize(100, 100) {
		t.Errorf("Expected min size 100x100 after unlock, got %v", geo.minSize)
	}
}

// TestSizeLockOrder tests the order geometry is changed in each direction
func TestSizeLockOrder(t *testing.T) {
	geo := &fakeGeometry{size: fyne.NewSize(400, 320), resizable: true}
	lock := NewSizeLock(geo, DefaultSizeLockConfig())

	lock.Set(true)
	want := []string{"min", "resize", "resizable"}
	if !slices.Equal(geo.calls, want) {
		t.Errorf("Expected lock order %v, got %v", want, geo.calls)
	}

	geo.calls = nil
	lock.Set(false)
	want = []string{"resizable", "resize", "min"}
	if !slices.Equal(geo.calls, want) {
		t.Errorf("Expected unlock order %v, got %v", want, geo.calls)
	}
}

// TestSizeLockRepeatedSet tests that setting the same state twice does nothing
func TestSizeLockRepeatedSet(t *testing.T) {
	geo := &fakeGeometry{size: fyne.NewSize(640, 480), resizable: true}
	lock := NewSizeLock(geo, DefaultSizeLockConfig())

	lock.Set(false)
	if len(geo.calls) != 0 {
		t.Errorf("Expected off to off to be a no-op, got %v", geo.calls)
	}

	lock.Set(true)
	geo.calls = nil
	lock.Set(true)
	if len(geo.calls) != 0 {
		t.Errorf("Expected on to on to be a no-op, got %v", geo.calls)
	}

	// a second lock must not overwrite the snapshot with the locked size
	lock.Set(false)
	if geo.size != fyne.NewSize(640, 480) {
		t.Errorf("Expected original size after double lock, got %v", geo.size)
	}
	if lock.Locked() {
		t.Error("Expected lock released")
	}
}

// TestSizeLockResizeWhileUnlocked tests that the snapshot is taken at lock time
func TestSizeLockResizeWhileUnlocked(t *testing.T) {
	geo := &fakeGeometry{size: fyne.NewSize(400, 320), resizable: true}
	lock := NewSizeLock(geo, DefaultSizeLockConfig())

	geo.size = fyne.NewSize(800, 600)
	lock.Set(true)
	lock.Set(false)
	if geo.size != fyne.NewSize(800, 600) {
		t.Errorf("Expected 800x600, got %v", geo.size)
	}
}
