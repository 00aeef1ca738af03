// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: virtual/context.go
// Summary: Render context type and the buffer/clamp helper shared by the
// scrollable zone and the pinned layers.

package virtual

import "fmt"

// RenderContext is the half-open index range [first, last) of rows and
// columns currently materialized.
type RenderContext struct {
	FirstRowIndex    int
	LastRowIndex     int
	FirstColumnIndex int
	LastColumnIndex  int
}

func (c RenderContext) String() string {
	return fmt.Sprintf("rows[%d,%d) cols[%d,%d)",
		c.FirstRowIndex, c.LastRowIndex, c.FirstColumnIndex, c.LastColumnIndex)
}

// ScrollPosition is the scroll offset of the viewport in cells.
type ScrollPosition struct {
	Top  int
	Left int
}

// Viewport is the measured size of the scrollable container.
type Viewport struct {
	Width  int
	Height int
}

// ColumnDomain bounds the column indices a layer may render.
type ColumnDomain struct {
	Min int
	Max int
}

// RenderableRange expands [first, last) by buffer on both sides and clamps
// both ends into [min, max]. A domain with max < min collapses to the empty
// range at min.
func RenderableRange(first, last, buffer, min, max int) (int, int) {
	if max < min {
		max = min
	}
	return clamp(first-buffer, min, max), clamp(last+buffer, min, max)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
