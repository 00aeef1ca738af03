// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package core_test

import (
	"testing"

	"github.com/framegrace/texelgrid/texelui/core"
	"github.com/gdamore/tcell/v2"
)

type miniWidget struct {
	core.BaseWidget
	ch    rune
	draws int
	inv   func(core.Rect)
	wheel int
}

func newMini(x, y, w, h int, ch rune) *miniWidget {
	m := &miniWidget{ch: ch}
	m.SetPosition(x, y)
	m.Resize(w, h)
	m.SetFocusable(true)
	return m
}

func (m *miniWidget) Draw(p *core.Painter) {
	m.draws++
	p.Fill(m.Rect, m.ch, tcell.StyleDefault)
}

func (m *miniWidget) SetInvalidator(fn func(core.Rect)) { m.inv = fn }

func (m *miniWidget) HandleKey(ev *tcell.EventKey) bool {
	if ev.Rune() == 'x' {
		m.ch = 'x'
		return true
	}
	return false
}

func (m *miniWidget) HandleMouse(ev *tcell.EventMouse) bool {
	if ev.Buttons()&tcell.WheelDown != 0 {
		m.wheel++
		return true
	}
	return false
}

func TestCompositorRendersWidgets(t *testing.T) {
	c := core.NewCompositor(tcell.StyleDefault)
	c.Resize(6, 3)
	c.AddWidget(newMini(0, 0, 3, 3, 'A'))
	c.AddWidget(newMini(2, 0, 3, 1, 'B'))

	buf := c.Render()
	if len(buf) != 3 || len(buf[0]) != 6 {
		t.Fatalf("unexpected buffer size %dx%d", len(buf[0]), len(buf))
	}
	if buf[0][1].Ch != 'A' || buf[0][2].Ch != 'B' || buf[1][2].Ch != 'A' || buf[0][5].Ch != ' ' {
		t.Errorf("unexpected composition: %q %q %q %q", buf[0][1].Ch, buf[0][2].Ch, buf[1][2].Ch, buf[0][5].Ch)
	}
	if c.Dirty() {
		t.Error("render should consume dirty regions")
	}
}

func TestCompositorDirtyClipsRestrictDraw(t *testing.T) {
	c := core.NewCompositor(tcell.StyleDefault)
	c.Resize(10, 2)
	left := newMini(0, 0, 5, 2, 'L')
	right := newMini(5, 0, 5, 2, 'R')
	c.AddWidget(left)
	c.AddWidget(right)
	c.Render()

	left.draws, right.draws = 0, 0
	right.inv(core.Rect{X: 6, Y: 0, W: 2, H: 1})
	c.Render()
	if left.draws != 0 || right.draws != 1 {
		t.Errorf("draws left=%d right=%d, want 0 and 1", left.draws, right.draws)
	}
}

func TestCompositorRoutesInput(t *testing.T) {
	c := core.NewCompositor(tcell.StyleDefault)
	c.Resize(4, 1)
	w := newMini(0, 0, 4, 1, 'A')
	c.AddWidget(w)
	c.Render()

	if c.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) {
		t.Fatal("key handled without focus")
	}
	c.Focus(w)
	if !c.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) {
		t.Fatal("focused widget should handle key")
	}
	if buf := c.Render(); buf[0][0].Ch != 'x' {
		t.Errorf("cell = %q, want redraw after key", buf[0][0].Ch)
	}

	if !c.HandleMouse(tcell.NewEventMouse(1, 0, tcell.WheelDown, tcell.ModNone)) || w.wheel != 1 {
		t.Errorf("wheel not routed, count=%d", w.wheel)
	}
	if c.HandleMouse(tcell.NewEventMouse(9, 9, tcell.WheelDown, tcell.ModNone)) {
		t.Error("event outside every widget should not be handled")
	}
}

func TestCompositorNotifier(t *testing.T) {
	c := core.NewCompositor(tcell.StyleDefault)
	ch := make(chan bool, 1)
	c.SetRefreshNotifier(ch)
	c.Resize(2, 2)
	select {
	case <-ch:
	default:
		t.Fatal("resize should request a refresh")
	}
	c.Invalidate(core.Rect{})
	select {
	case <-ch:
		t.Fatal("empty invalidation should be ignored")
	default:
	}
}
