// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/statusbar.go
// Summary: Single-line status bar with left and right aligned segments.

package widgets

import (
	"github.com/framegrace/texelgrid/texelui/core"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// StatusBar shows a left message and a right-aligned summary.
type StatusBar struct {
	core.BaseWidget
	Style tcell.Style

	left  string
	right string
	inv   func(core.Rect)
}

func NewStatusBar(x, y, w int, style tcell.Style) *StatusBar {
	s := &StatusBar{Style: style}
	s.SetPosition(x, y)
	s.Resize(w, 1)
	return s
}

// SetText replaces both segments.
func (s *StatusBar) SetText(left, right string) {
	if s.left == left && s.right == right {
		return
	}
	s.left, s.right = left, right
	if s.inv != nil {
		s.inv(s.Rect)
	}
}

// Text returns the current segments.
func (s *StatusBar) Text() (left, right string) { return s.left, s.right }

// SetInvalidator sets the invalidation callback.
func (s *StatusBar) SetInvalidator(fn func(core.Rect)) { s.inv = fn }

// Draw fills the line and draws both segments. The right segment wins when
// the line is too short for both.
func (s *StatusBar) Draw(painter *core.Painter) {
	p := painter.WithClip(s.Rect)
	p.Fill(s.Rect, ' ', s.Style)
	rw := min(runewidth.StringWidth(s.right), s.Rect.W)
	if rw > 0 {
		p.DrawTextWidth(s.Rect.X+s.Rect.W-rw, s.Rect.Y, rw, s.right, s.Style, core.AlignRight)
	}
	if lw := s.Rect.W - rw - 1; lw > 0 {
		p.DrawTextWidth(s.Rect.X, s.Rect.Y, lw, s.left, s.Style, core.AlignLeft)
	}
}
