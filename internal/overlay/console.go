package overlay

import (
	"fmt"
	"io"
	"log/slog"

	"inputviewer/internal/tracker"
)

// Console writes the input state as text lines, for running without a window
type Console struct {
	out    io.Writer
	active string
}

// NewConsole creates a console presenter writing to out
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Render writes one line per state change
func (c *Console) Render(s tracker.State) {
	c.writef("keys=%s buttons=%s position=%s\n", s.Keys.Text, s.Buttons.Text, tracker.FormatPosition(s.Cursor))
}

// SetActiveWindow writes a line when the focused window changes
func (c *Console) SetActiveWindow(title string) {
	if title == c.active {
		return
	}
	c.active = title
	c.writef("window=%q\n", title)
}

func (c *Console) writef(format string, args ...any) {
	if _, err := fmt.Fprintf(c.out, format, args...); err != nil {
		slog.Debug("Console: write failed", "error", err)
	}
}
