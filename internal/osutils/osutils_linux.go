//go:build linux

package osutils

import (
	"fmt"
	"os"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"golang.org/x/text/encoding/charmap"
)

// IsAdmin reports whether the process runs as root
func IsAdmin() bool {
	return os.Geteuid() == 0
}

// Foreground reads the focused window title through EWMH properties on X11
type Foreground struct {
	mu    sync.Mutex
	conn  *xgb.Conn
	root  xproto.Window
	atoms map[string]xproto.Atom
}

// NewForeground connects to the X server named by $DISPLAY
func NewForeground() (*Foreground, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	f := &Foreground{
		conn:  conn,
		root:  xproto.Setup(conn).DefaultScreen(conn).Root,
		atoms: make(map[string]xproto.Atom),
	}
	return f, nil
}

// Title returns the focused window's title, or "" when none is reported
func (f *Foreground) Title() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.conn == nil {
		return "", ErrNoWindow
	}

	activeAtom, err := f.atom("_NET_ACTIVE_WINDOW")
	if err != nil {
		return "", err
	}
	reply, err := xproto.GetProperty(f.conn, false, f.root, activeAtom, xproto.AtomWindow, 0, 1).Reply()
	if err != nil {
		return "", fmt.Errorf("read _NET_ACTIVE_WINDOW: %w", err)
	}
	if reply.ValueLen == 0 || len(reply.Value) < 4 {
		return "", nil
	}
	win := xproto.Window(xgb.Get32(reply.Value))
	if win == 0 {
		return "", nil
	}

	nameAtom, err := f.atom("_NET_WM_NAME")
	if err != nil {
		return "", err
	}
	utf8Atom, err := f.atom("UTF8_STRING")
	if err != nil {
		return "", err
	}
	if title, err := f.property(win, nameAtom, utf8Atom); err == nil && title != "" {
		return title, nil
	}
	return f.property(win, xproto.AtomWmName, xproto.GetPropertyTypeAny)
}

// Close releases the X connection
func (f *Foreground) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conn != nil {
		f.conn.Close()
		f.conn = nil
	}
	return nil
}

func (f *Foreground) property(win xproto.Window, prop, typ xproto.Atom) (string, error) {
	// length is in 32-bit units
	reply, err := xproto.GetProperty(f.conn, false, win, prop, typ, 0, TitleBufferLen).Reply()
	if err != nil {
		return "", fmt.Errorf("read window property: %w", err)
	}
	return truncateTitle(decodeProperty(reply)), nil
}

// decodeProperty converts a text property to UTF-8. STRING properties are
// ISO 8859-1; UTF8_STRING and anything else pass through.
func decodeProperty(reply *xproto.GetPropertyReply) string {
	if reply.Type != xproto.AtomString {
		return string(reply.Value)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(reply.Value)
	if err != nil {
		return string(reply.Value)
	}
	return string(decoded)
}

func (f *Foreground) atom(name string) (xproto.Atom, error) {
	if a, ok := f.atoms[name]; ok {
		return a, nil
	}
	a, err := internAtom(f.conn, name)
	if err != nil {
		return 0, err
	}
	f.atoms[name] = a
	return a, nil
}

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("intern atom %s: %w", name, err)
	}
	return reply.Atom, nil
}

const (
	netWMStateRemove = 0
	netWMStateAdd    = 1
)

// SetTopmost asks the window manager to keep an X11 window above others (_NET_WM_STATE_ABOVE)
func SetTopmost(handle uintptr, on bool) error {
	if handle == 0 {
		return fmt.Errorf("set topmost: %w", ErrNoWindow)
	}
	conn, err := xgb.NewConn()
	if err != nil {
		return fmt.Errorf("connect to X server: %w", err)
	}
	defer conn.Close()

	wmState, err := internAtom(conn, "_NET_WM_STATE")
	if err != nil {
		return err
	}
	above, err := internAtom(conn, "_NET_WM_STATE_ABOVE")
	if err != nil {
		return err
	}

	action := uint32(netWMStateRemove)
	if on {
		action = netWMStateAdd
	}
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(handle),
		Type:   wmState,
		// source indication 1 = normal application
		Data: xproto.ClientMessageDataUnionData32New([]uint32{action, uint32(above), 0, 1, 0}),
	}
	root := xproto.Setup(conn).DefaultScreen(conn).Root
	mask := uint32(xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify)
	if err := xproto.SendEventChecked(conn, false, root, mask, string(ev.Bytes())).Check(); err != nil {
		return fmt.Errorf("send _NET_WM_STATE: %w", err)
	}
	return nil
}
