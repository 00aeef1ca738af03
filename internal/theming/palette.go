// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/theming/palette.go
// Summary: Grid palette resolved from the theme section of the config.

package theming

import (
	"strings"

	"github.com/framegrace/texelgrid/config"
	"github.com/framegrace/texelgrid/texelui/widgets"
	"github.com/framegrace/texelgrid/virtual"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds the resolved theme colours.
type Palette struct {
	SurfaceFG     tcell.Color
	SurfaceBG     tcell.Color
	HeaderFG      tcell.Color
	HeaderBG      tcell.Color
	SelectedBG    tcell.Color
	PinnedOverlay tcell.Color
	FillerBG      tcell.Color
	DetailFG      tcell.Color
	DetailBG      tcell.Color
	IndicatorFG   tcell.Color
	SyntaxStyle   string
}

// Default is the palette used when the theme section is missing or a key
// does not parse.
var Default = Palette{
	SurfaceFG:     tcell.NewHexColor(0xcdd6f4),
	SurfaceBG:     tcell.NewHexColor(0x1e1e2e),
	HeaderFG:      tcell.NewHexColor(0x89b4fa),
	HeaderBG:      tcell.NewHexColor(0x181825),
	SelectedBG:    tcell.NewHexColor(0x45475a),
	PinnedOverlay: tcell.ColorWhite,
	FillerBG:      tcell.NewHexColor(0x181825),
	DetailFG:      tcell.NewHexColor(0xbac2de),
	DetailBG:      tcell.NewHexColor(0x11111b),
	IndicatorFG:   tcell.NewHexColor(0xf9e2af),
	SyntaxStyle:   "catppuccin-mocha",
}

// FromConfig resolves the theme section over Default.
func FromConfig(cfg config.Config) Palette {
	get := func(key string, def tcell.Color) tcell.Color {
		return ParseColor(cfg.GetString(config.SectionTheme, key, ""), def)
	}
	d := Default
	return Palette{
		SurfaceFG:     get("surface_fg", d.SurfaceFG),
		SurfaceBG:     get("surface_bg", d.SurfaceBG),
		HeaderFG:      get("header_fg", d.HeaderFG),
		HeaderBG:      get("header_bg", d.HeaderBG),
		SelectedBG:    get("selected_bg", d.SelectedBG),
		PinnedOverlay: get("pinned_overlay", d.PinnedOverlay),
		FillerBG:      get("filler_bg", d.FillerBG),
		DetailFG:      get("detail_fg", d.DetailFG),
		DetailBG:      get("detail_bg", d.DetailBG),
		IndicatorFG:   get("indicator_fg", d.IndicatorFG),
		SyntaxStyle:   cfg.GetString(config.SectionTheme, "syntax_style", d.SyntaxStyle),
	}
}

// ParseColor accepts "#rrggbb" and tcell colour names. Anything else
// returns def.
func ParseColor(s string, def tcell.Color) tcell.Color {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return def
		}
		return fromColorful(c)
	}
	if c := tcell.GetColor(strings.ToLower(s)); c != tcell.ColorDefault {
		return c
	}
	return def
}

// Tint blends overlay over base with the given alpha. Colours without an
// RGB value are returned unchanged.
func Tint(base, overlay tcell.Color, alpha float64) tcell.Color {
	b, ok := toColorful(base)
	if !ok {
		return base
	}
	o, ok := toColorful(overlay)
	if !ok {
		return base
	}
	alpha = min(max(alpha, 0), 1)
	return fromColorful(b.BlendRgb(o, alpha).Clamped())
}

// GridStyles builds the DataGrid palette. Pinned stripes use the surface
// background lightened by the overlay at the given elevation.
func (p Palette) GridStyles(elevation float64) widgets.Styles {
	surface := tcell.StyleDefault.Foreground(p.SurfaceFG).Background(p.SurfaceBG)
	pinnedBG := Tint(p.SurfaceBG, p.PinnedOverlay, virtual.OverlayAlpha(elevation))
	return widgets.Styles{
		Cell:      surface,
		Header:    tcell.StyleDefault.Foreground(p.HeaderFG).Background(p.HeaderBG).Bold(true),
		Selected:  surface.Background(p.SelectedBG),
		Pinned:    surface.Background(pinnedBG),
		Filler:    surface.Background(p.FillerBG),
		Detail:    tcell.StyleDefault.Foreground(p.DetailFG).Background(p.DetailBG),
		Indicator: surface.Foreground(p.IndicatorFG).Bold(true),
	}
}

func toColorful(c tcell.Color) (colorful.Color, bool) {
	if !c.Valid() {
		return colorful.Color{}, false
	}
	r, g, b := c.RGB()
	if r < 0 {
		return colorful.Color{}, false
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, true
}

func fromColorful(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
