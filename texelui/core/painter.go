// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/painter.go
// Summary: Clipped drawing into a cell buffer. Text placement is measured in
// display columns so wide runes occupy two cells.

package core

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Painter draws into a cell buffer, discarding everything outside its clip.
type Painter struct {
	buf  [][]Cell
	clip Rect
}

// NewPainter returns a painter over buf limited to clip. The clip is
// narrowed to the buffer bounds.
func NewPainter(buf [][]Cell, clip Rect) *Painter {
	bounds := Rect{}
	if len(buf) > 0 {
		bounds = Rect{W: len(buf[0]), H: len(buf)}
	}
	return &Painter{buf: buf, clip: clip.Intersect(bounds)}
}

// Clip returns the active clip rectangle.
func (p *Painter) Clip() Rect { return p.clip }

// WithClip returns a painter sharing the buffer whose clip is the
// intersection of the current clip and r.
func (p *Painter) WithClip(r Rect) *Painter {
	return &Painter{buf: p.buf, clip: p.clip.Intersect(r)}
}

// SetCell writes one cell when it is inside the clip.
func (p *Painter) SetCell(x, y int, ch rune, style tcell.Style) {
	if !p.clip.Contains(x, y) {
		return
	}
	p.buf[y][x] = Cell{Ch: ch, Style: style}
}

// Fill paints every clipped cell of r.
func (p *Painter) Fill(r Rect, ch rune, style tcell.Style) {
	r = r.Intersect(p.clip)
	for y := r.Y; y < r.Y+r.H; y++ {
		row := p.buf[y]
		for x := r.X; x < r.X+r.W; x++ {
			row[x] = Cell{Ch: ch, Style: style}
		}
	}
}

// DrawText writes s starting at (x, y) and returns the display width
// consumed. The continuation cell of a wide rune is blanked.
func (p *Painter) DrawText(x, y int, s string, style tcell.Style) int {
	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		p.SetCell(col, y, r, style)
		if w == 2 {
			p.SetCell(col+1, y, 0, style)
		}
		col += w
	}
	return col - x
}

// DrawTextWidth writes s into exactly width columns: truncated with an
// ellipsis when too wide, padded with spaces per align otherwise.
func (p *Painter) DrawTextWidth(x, y, width int, s string, style tcell.Style, align Align) {
	if width <= 0 {
		return
	}
	s = FitText(s, width, align)
	p.DrawText(x, y, s, style)
}

// Align is horizontal text alignment inside a fixed width.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// FitText returns s truncated or padded to exactly width display columns.
func FitText(s string, width int, align Align) string {
	if width <= 0 {
		return ""
	}
	sw := runewidth.StringWidth(s)
	if sw > width {
		tail := "…"
		if width == 1 {
			tail = ""
		}
		s = runewidth.Truncate(s, width, tail)
		sw = runewidth.StringWidth(s)
	}
	pad := width - sw
	switch align {
	case AlignRight:
		return runewidth.FillLeft(s, width)
	case AlignCenter:
		left := pad / 2
		return runewidth.FillRight(runewidth.FillLeft(s, sw+left), width)
	default:
		return runewidth.FillRight(s, width)
	}
}

// Blit copies a composed buffer onto a tcell screen at (x, y).
func Blit(screen tcell.Screen, x, y int, buf [][]Cell) {
	for row, cells := range buf {
		for col := 0; col < len(cells); col++ {
			c := cells[col]
			if c.Ch == 0 {
				// continuation of a wide rune
				continue
			}
			screen.SetContent(x+col, y+row, c.Ch, nil, c.Style)
		}
	}
}
