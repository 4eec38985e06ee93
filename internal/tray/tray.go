// Package tray provides the system tray menu using the fyne desktop driver.
package tray

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// MenuItem represents a menu item
type MenuItem struct {
	ID       int
	Title    string
	Callback func()
	item     *fyne.MenuItem
}

// Tray manages the system tray icon and menu. Items are added before Install.
// fyne appends a Quit item to tray menus itself.
type Tray struct {
	app   fyne.App
	title string
	items []*MenuItem
	menu  *fyne.Menu
}

// New creates a tray menu for app
func New(app fyne.App, title string) *Tray {
	return &Tray{
		app:   app,
		title: title,
		items: make([]*MenuItem, 0),
	}
}

// AddMenuItem adds a menu item to the tray and returns its id
func (t *Tray) AddMenuItem(title string, callback func()) int {
	id := len(t.items)
	t.items = append(t.items, &MenuItem{
		ID:       id,
		Title:    title,
		Callback: callback,
	})
	return id
}

// AddSeparator adds a separator to the menu
func (t *Tray) AddSeparator() {
	t.items = append(t.items, nil) // nil indicates separator
}

// Install builds the menu and hands it to the driver. It reports false when
// the driver has no system tray.
func (t *Tray) Install() bool {
	t.menu = t.build()

	desk, ok := t.app.(desktop.App)
	if !ok {
		slog.Info("Tray: system tray not supported by this driver")
		return false
	}
	desk.SetSystemTrayMenu(t.menu)
	if icon := t.app.Icon(); icon != nil {
		desk.SetSystemTrayIcon(icon)
	}
	return true
}

// build converts the items to a fyne menu
func (t *Tray) build() *fyne.Menu {
	entries := make([]*fyne.MenuItem, 0, len(t.items))
	for _, mi := range t.items {
		if mi == nil {
			entries = append(entries, fyne.NewMenuItemSeparator())
			continue
		}
		mi.item = fyne.NewMenuItem(mi.Title, mi.Callback)
		entries = append(entries, mi.item)
	}
	return fyne.NewMenu(t.title, entries...)
}

// SetItemChecked sets the checked state of a menu item
func (t *Tray) SetItemChecked(id int, checked bool) {
	if id < 0 || id >= len(t.items) || t.items[id] == nil || t.items[id].item == nil {
		return
	}
	item := t.items[id].item
	if item.Checked == checked {
		return
	}
	item.Checked = checked
	if t.menu != nil {
		t.menu.Refresh()
	}
}

// ItemChecked reports the checked state of a menu item
func (t *Tray) ItemChecked(id int) bool {
	if id < 0 || id >= len(t.items) || t.items[id] == nil || t.items[id].item == nil {
		return false
	}
	return t.items[id].item.Checked
}

// Menu returns the built menu, or nil before Install
func (t *Tray) Menu() *fyne.Menu {
	return t.menu
}
