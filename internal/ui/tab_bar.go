package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/soundboard/internal/model"
)

// TabBar shows the tabs with scroll arrows, an add button and close buttons
type TabBar struct {
	tabs   *fyne.Container
	scroll *container.Scroll
	root   *fyne.Container

	// Callbacks
	onSelect func(tabID string)
	onRename func(tab model.Tab)
	onClose  func(tab model.Tab)
	onAdd    func()
}

// NewTabBar creates an empty tab bar
func NewTabBar(onSelect func(tabID string), onRename, onClose func(tab model.Tab), onAdd func()) *TabBar {
	tb := &TabBar{
		tabs:     container.NewHBox(),
		onSelect: onSelect,
		onRename: onRename,
		onClose:  onClose,
		onAdd:    onAdd,
	}
	tb.scroll = container.NewHScroll(tb.tabs)

	left := widget.NewButton(IconLeft, func() { tb.ScrollBy(-TabScrollStep) })
	left.Importance = widget.LowImportance
	right := widget.NewButton(IconRight, func() { tb.ScrollBy(TabScrollStep) })
	right.Importance = widget.LowImportance
	add := widget.NewButton(IconAdd, func() {
		if tb.onAdd != nil {
			tb.onAdd()
		}
	})

	tb.root = container.NewBorder(nil, nil, left, container.NewHBox(right, add), tb.scroll)
	return tb
}

// Container returns the tab bar canvas object
func (tb *TabBar) Container() fyne.CanvasObject {
	return tb.root
}

// Update rebuilds the tab buttons
func (tb *TabBar) Update(tabs []model.Tab, activeID string) {
	objects := make([]fyne.CanvasObject, 0, len(tabs))
	for _, tab := range tabs {
		objects = append(objects, tb.tabButton(tab, tab.ID == activeID, len(tabs) > 1))
	}
	tb.tabs.Objects = objects
	tb.tabs.Refresh()
	tb.scroll.Refresh()
}

// ScrollBy moves the tab strip horizontally, clamped to its content
func (tb *TabBar) ScrollBy(dx float32) {
	maxOffset := tb.tabs.MinSize().Width - tb.scroll.Size().Width
	if maxOffset < 0 {
		maxOffset = 0
	}
	x := tb.scroll.Offset.X + dx
	if x < 0 {
		x = 0
	}
	if x > maxOffset {
		x = maxOffset
	}
	tb.scroll.Offset = fyne.NewPos(x, tb.scroll.Offset.Y)
	tb.scroll.Refresh()
}

// tabButton renders one tab. Tapping the active tab renames it.
func (tb *TabBar) tabButton(tab model.Tab, active, closable bool) fyne.CanvasObject {
	name := widget.NewButton(tab.Name, func() {
		if active {
			if tb.onRename != nil {
				tb.onRename(tab)
			}
			return
		}
		if tb.onSelect != nil {
			tb.onSelect(tab.ID)
		}
	})
	name.Importance = widget.LowImportance
	if active {
		name.Importance = widget.HighImportance
	}
	if !closable {
		return name
	}

	closeBtn := widget.NewButton(IconClose, func() {
		if tb.onClose != nil {
			tb.onClose(tab)
		}
	})
	closeBtn.Importance = widget.LowImportance
	return container.NewHBox(name, closeBtn)
}
