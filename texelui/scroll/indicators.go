// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/scroll/indicators.go
// Summary: Scroll indicator rendering for scrollable widgets.
// Draws ▲/▼ on a vertical edge and ◀/▶ on a horizontal edge when content
// overflows in that direction.

package scroll

import (
	"github.com/framegrace/texelgrid/texelui/core"
	"github.com/gdamore/tcell/v2"
)

// Default indicator glyphs.
const (
	DefaultUpGlyph    = '▲'
	DefaultDownGlyph  = '▼'
	DefaultLeftGlyph  = '◀'
	DefaultRightGlyph = '▶'
)

// IndicatorConfig configures the appearance of scroll indicators.
type IndicatorConfig struct {
	Style tcell.Style

	UpGlyph    rune
	DownGlyph  rune
	LeftGlyph  rune
	RightGlyph rune
}

// DefaultIndicatorConfig returns a configuration with the standard glyphs.
func DefaultIndicatorConfig(style tcell.Style) IndicatorConfig {
	return IndicatorConfig{
		Style:      style,
		UpGlyph:    DefaultUpGlyph,
		DownGlyph:  DefaultDownGlyph,
		LeftGlyph:  DefaultLeftGlyph,
		RightGlyph: DefaultRightGlyph,
	}
}

func glyphOr(g, def rune) rune {
	if g == 0 {
		return def
	}
	return g
}

// DrawIndicators draws vertical indicators in the right-most column of rect.
func DrawIndicators(painter *core.Painter, rect core.Rect, state State, config IndicatorConfig) {
	if rect.Empty() {
		return
	}
	x := rect.X + rect.W - 1
	if state.CanScrollBack() {
		painter.SetCell(x, rect.Y, glyphOr(config.UpGlyph, DefaultUpGlyph), config.Style)
	}
	if state.CanScrollForward() {
		painter.SetCell(x, rect.Y+rect.H-1, glyphOr(config.DownGlyph, DefaultDownGlyph), config.Style)
	}
}

// DrawHorizontalIndicators draws horizontal indicators at both ends of the
// top row of rect.
func DrawHorizontalIndicators(painter *core.Painter, rect core.Rect, state State, config IndicatorConfig) {
	if rect.Empty() {
		return
	}
	if state.CanScrollBack() {
		painter.SetCell(rect.X, rect.Y, glyphOr(config.LeftGlyph, DefaultLeftGlyph), config.Style)
	}
	if state.CanScrollForward() {
		painter.SetCell(rect.X+rect.W-1, rect.Y, glyphOr(config.RightGlyph, DefaultRightGlyph), config.Style)
	}
}
