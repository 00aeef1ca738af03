// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: txfmt/chroma.go
// Summary: Syntax colouring of detail panel text. Lines are tokenised as one
// block so the lexer sees full context, then mapped back to styled cells.

package txfmt

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/framegrace/texelgrid/texelui/core"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const defaultStyleName = "catppuccin-mocha"

// chromaStyle resolves a style name to a Chroma style, falling back to the default.
func chromaStyle(name string) *chroma.Style {
	if name == "" {
		name = defaultStyleName
	}
	return styles.Get(name)
}

// Highlight colours lines with the lexer for language (a Chroma lexer name
// or alias; empty analyses the text). Unstyled runes use base. Each output
// line holds one cell per display column.
func Highlight(lines []string, language, styleName string, base tcell.Style) [][]core.Cell {
	out := make([][]core.Cell, len(lines))
	if len(lines) == 0 {
		return out
	}
	text := strings.Join(lines, "\n") + "\n"
	style := chromaStyle(styleName)
	lexer := chroma.Coalesce(getLexer(language, text))

	tokens, err := chroma.Tokenise(lexer, nil, text)
	if err != nil {
		for i, l := range lines {
			out[i] = Plain(l, base)
		}
		return out
	}

	baseColour := style.Get(chroma.Text).Colour
	line := 0
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		st := resolveTokenStyle(style.Get(tok.Type), baseColour, base)
		for _, r := range tok.Value {
			if r == '\n' {
				line++
				continue
			}
			if line >= len(out) {
				break
			}
			out[line] = appendRune(out[line], r, st)
		}
	}
	return out
}

// Plain converts text to cells with a single style.
func Plain(s string, style tcell.Style) []core.Cell {
	var cells []core.Cell
	for _, r := range s {
		cells = appendRune(cells, r, style)
	}
	return cells
}

// appendRune appends r and, for wide runes, a zero continuation cell.
// Zero-width runes are dropped.
func appendRune(cells []core.Cell, r rune, style tcell.Style) []core.Cell {
	switch runewidth.RuneWidth(r) {
	case 0:
		return cells
	case 2:
		return append(cells, core.Cell{Ch: r, Style: style}, core.Cell{Ch: 0, Style: style})
	default:
		return append(cells, core.Cell{Ch: r, Style: style})
	}
}

// resolveTokenStyle layers a token's colour and attributes over base.
// Colours equal to the style's text colour keep base's foreground.
func resolveTokenStyle(entry chroma.StyleEntry, baseColour chroma.Colour, base tcell.Style) tcell.Style {
	st := base
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	if entry.Colour.IsSet() && entry.Colour != baseColour {
		st = st.Foreground(tcell.NewRGBColor(int32(entry.Colour.Red()), int32(entry.Colour.Green()), int32(entry.Colour.Blue())))
	}
	return st
}

// getLexer returns a Chroma lexer by name, or auto-detects from content.
func getLexer(name, text string) chroma.Lexer {
	if name != "" {
		if l := lexers.Get(name); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}
