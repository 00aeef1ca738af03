// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package txfmt

import (
	"testing"

	"github.com/framegrace/texelgrid/texelui/core"
	"github.com/gdamore/tcell/v2"
)

func text(cells []core.Cell) string {
	var rs []rune
	for _, c := range cells {
		if c.Ch != 0 {
			rs = append(rs, c.Ch)
		}
	}
	return string(rs)
}

func TestHighlight_PreservesText(t *testing.T) {
	lines := []string{"package main", "", "func main() { println(\"hi\") }"}
	out := Highlight(lines, "Go", "", tcell.StyleDefault)
	if len(out) != len(lines) {
		t.Fatalf("got %d lines, want %d", len(out), len(lines))
	}
	for i, l := range lines {
		if got := text(out[i]); got != l {
			t.Errorf("line %d = %q, want %q", i, got, l)
		}
	}
}

func TestHighlight_ColoursKeywords(t *testing.T) {
	base := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	out := Highlight([]string{"package main"}, "go", "monokai", base)
	kw := out[0][0].Style
	if kw == base {
		t.Error("keyword should be styled differently from plain text")
	}
}

func TestHighlight_UnknownLanguageFallsBack(t *testing.T) {
	out := Highlight([]string{"just words"}, "no-such-lexer", "no-such-style", tcell.StyleDefault)
	if text(out[0]) != "just words" {
		t.Errorf("fallback text = %q", text(out[0]))
	}
}

func TestPlain_WideRunes(t *testing.T) {
	cells := Plain("a世", tcell.StyleDefault)
	if len(cells) != 3 || cells[1].Ch != '世' || cells[2].Ch != 0 {
		t.Errorf("cells = %+v", cells)
	}
}
