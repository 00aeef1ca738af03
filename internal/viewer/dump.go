// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/viewer/dump.go
// Summary: Headless rendering of a single frame.

package viewer

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/framegrace/texelgrid/texelui/core"
	"github.com/gdamore/tcell/v2"
)

// Snapshot renders one frame of app into a simulation screen of the given
// size and returns its lines with trailing blanks trimmed.
func Snapshot(app Runnable, width, height int) ([]string, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", width, height)
	}
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.SetSize(width, height)

	app.Resize(width, height)
	core.Blit(screen, 0, 0, app.Render())
	screen.Show()

	lines := make([]string, height)
	for y := range height {
		var b strings.Builder
		for x := 0; x < width; x++ {
			r, _, _, w := screen.GetContent(x, y)
			if r == 0 {
				r = ' '
			}
			b.WriteRune(r)
			if w > 1 {
				x += w - 1
			}
		}
		lines[y] = strings.TrimRight(b.String(), " ")
	}
	return lines, nil
}

// Dump writes Snapshot output to w, one line per screen row.
func Dump(w io.Writer, app Runnable, width, height int) error {
	lines, err := Snapshot(app, width, height)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		if _, err := bw.WriteString(l + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
