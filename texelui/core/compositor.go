// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/compositor.go
// Summary: Composes a small set of widgets into a cell buffer, tracking
// dirty regions, focus and mouse routing.

package core

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Compositor owns the root widgets of a screen and composes them into a
// framebuffer. Widgets later in the list draw on top.
type Compositor struct {
	dirtyMu  sync.Mutex // protects dirty and notifier
	W, H     int
	widgets  []Widget
	bgStyle  tcell.Style
	notifier chan<- bool
	focused  Widget
	buf      [][]Cell
	dirty    []Rect
}

// NewCompositor returns an empty compositor clearing to bg.
func NewCompositor(bg tcell.Style) *Compositor {
	return &Compositor{bgStyle: bg}
}

// SetRefreshNotifier registers a channel poked whenever a redraw is needed.
func (c *Compositor) SetRefreshNotifier(ch chan<- bool) {
	c.dirtyMu.Lock()
	defer c.dirtyMu.Unlock()
	c.notifier = ch
}

// Resize drops the framebuffer and invalidates everything.
func (c *Compositor) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.W, c.H = w, h
	c.buf = nil
	c.InvalidateAll()
}

// AddWidget appends w to the draw list and wires its invalidator.
func (c *Compositor) AddWidget(w Widget) {
	c.widgets = append(c.widgets, w)
	if ia, ok := w.(InvalidationAware); ok {
		ia.SetInvalidator(c.Invalidate)
	}
	c.InvalidateAll()
}

// Focus moves focus to w when it is focusable.
func (c *Compositor) Focus(w Widget) {
	if w == nil || !w.Focusable() || c.focused == w {
		return
	}
	if c.focused != nil {
		c.focused.Blur()
	}
	c.focused = w
	w.Focus()
}

// Focused returns the focused widget, if any.
func (c *Compositor) Focused() Widget { return c.focused }

// HandleKey forwards the key to the focused widget.
func (c *Compositor) HandleKey(ev *tcell.EventKey) bool {
	if c.focused == nil || !c.focused.HandleKey(ev) {
		return false
	}
	c.dirtyMu.Lock()
	if len(c.dirty) == 0 {
		c.invalidateAllLocked()
	} else {
		c.requestRefreshLocked()
	}
	c.dirtyMu.Unlock()
	return true
}

// HandleMouse focuses on press and routes the event to the topmost
// mouse-aware widget under the pointer.
func (c *Compositor) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	w := c.topmostAt(x, y)
	if w == nil {
		return false
	}
	if ev.Buttons()&tcell.Button1 != 0 {
		c.Focus(w)
	}
	mw, ok := w.(MouseAware)
	if !ok || !mw.HandleMouse(ev) {
		return false
	}
	c.InvalidateAll()
	return true
}

func (c *Compositor) topmostAt(x, y int) Widget {
	for i := len(c.widgets) - 1; i >= 0; i-- {
		if c.widgets[i].HitTest(x, y) {
			return c.widgets[i]
		}
	}
	return nil
}

// Invalidate marks a region for redraw.
func (c *Compositor) Invalidate(r Rect) {
	if r.Empty() {
		return
	}
	c.dirtyMu.Lock()
	defer c.dirtyMu.Unlock()
	c.dirty = append(c.dirty, r)
	c.requestRefreshLocked()
}

// InvalidateAll marks the whole surface for redraw.
func (c *Compositor) InvalidateAll() {
	c.dirtyMu.Lock()
	defer c.dirtyMu.Unlock()
	c.invalidateAllLocked()
}

// Dirty reports whether a redraw is pending.
func (c *Compositor) Dirty() bool {
	c.dirtyMu.Lock()
	defer c.dirtyMu.Unlock()
	return len(c.dirty) > 0
}

func (c *Compositor) invalidateAllLocked() {
	c.dirty = append(c.dirty, Rect{W: c.W, H: c.H})
	c.requestRefreshLocked()
}

func (c *Compositor) requestRefreshLocked() {
	if c.notifier == nil {
		return
	}
	select {
	case c.notifier <- true:
	default:
	}
}

func (c *Compositor) ensureBuffer() {
	if c.buf != nil && len(c.buf) == c.H && (c.H == 0 || len(c.buf[0]) == c.W) {
		return
	}
	c.buf = make([][]Cell, c.H)
	for y := range c.buf {
		row := make([]Cell, c.W)
		for x := range row {
			row[x] = Cell{Ch: ' ', Style: c.bgStyle}
		}
		c.buf[y] = row
	}
}

// Render redraws the dirty regions and returns the framebuffer.
func (c *Compositor) Render() [][]Cell {
	c.ensureBuffer()

	c.dirtyMu.Lock()
	dirty := c.dirty
	c.dirty = nil
	c.dirtyMu.Unlock()

	surface := Rect{W: c.W, H: c.H}
	for _, clip := range mergeRects(dirty) {
		clip = clip.Intersect(surface)
		if clip.Empty() {
			continue
		}
		p := NewPainter(c.buf, clip)
		p.Fill(clip, ' ', c.bgStyle)
		for _, w := range c.widgets {
			wx, wy := w.Position()
			ww, wh := w.Size()
			if rectsOverlap(Rect{X: wx, Y: wy, W: ww, H: wh}, clip) {
				w.Draw(p)
			}
		}
	}
	return c.buf
}

// Show renders and copies the frame onto screen.
func (c *Compositor) Show(screen tcell.Screen) {
	Blit(screen, 0, 0, c.Render())
	screen.Show()
}
