package overlay

import "fyne.io/fyne/v2"

// Geometry is the part of a window the size lock manipulates
type Geometry interface {
	Size() fyne.Size
	Resize(fyne.Size)
	Resizable() bool
	SetResizable(bool)
	SetMinSize(fyne.Size)
}

// SizeLockConfig holds the sizes applied while locked and after unlocking
type SizeLockConfig struct {
	LockedSize      fyne.Size
	LockedMinSize   fyne.Size
	UnlockedMinSize fyne.Size
}

// DefaultSizeLockConfig returns 250x200 locked, 200x150 locked minimum and 100x100 unlocked minimum
func DefaultSizeLockConfig() SizeLockConfig {
	return SizeLockConfig{
		LockedSize:      fyne.NewSize(250, 200),
		LockedMinSize:   fyne.NewSize(200, 150),
		UnlockedMinSize: fyne.NewSize(100, 100),
	}
}

// SizeLock pins a window to a compact fixed size and restores the previous
// geometry when released. The snapshot is only taken on the off to on transition.
type SizeLock struct {
	geo    Geometry
	cfg    SizeLockConfig
	locked bool

	savedSize      fyne.Size
	savedResizable bool
}

// NewSizeLock snapshots the current geometry so an early release has something to restore
func NewSizeLock(geo Geometry, cfg SizeLockConfig) *SizeLock {
	return &SizeLock{
		geo:            geo,
		cfg:            cfg,
		savedSize:      geo.Size(),
		savedResizable: geo.Resizable(),
	}
}

// Locked reports whether the lock is engaged
func (l *SizeLock) Locked() bool {
	return l.locked
}

// Set engages or releases the lock. Setting the current state again does nothing.
func (l *SizeLock) Set(on bool) {
	if on == l.locked {
		return
	}
	l.locked = on

	if on {
		l.savedSize = l.geo.Size()
		l.savedResizable = l.geo.Resizable()

		l.geo.SetMinSize(l.cfg.LockedMinSize)
		l.geo.Resize(l.cfg.LockedSize)
		l.geo.SetResizable(false)
		return
	}

	l.geo.SetResizable(l.savedResizable)
	l.geo.Resize(l.savedSize)
	l.geo.SetMinSize(l.cfg.UnlockedMinSize)
}
