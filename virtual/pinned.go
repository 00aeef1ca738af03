// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: virtual/pinned.go
// Summary: Pinned column split, pinned layer windows, and overlay elevation.

package virtual

import "math"

// PinnedSide identifies a pinned column stripe.
type PinnedSide int

const (
	PinnedLeft PinnedSide = iota
	PinnedRight
)

func (s PinnedSide) String() string {
	if s == PinnedRight {
		return "right"
	}
	return "left"
}

// PinnedRowAnchor places the pinned row at the top or bottom of the body.
type PinnedRowAnchor int

const (
	AnchorBottom PinnedRowAnchor = iota
	AnchorTop
)

// ParseAnchor maps "top" to AnchorTop; anything else is AnchorBottom.
func ParseAnchor(s string) PinnedRowAnchor {
	if s == "top" {
		return AnchorTop
	}
	return AnchorBottom
}

func (a PinnedRowAnchor) String() string {
	if a == AnchorTop {
		return "top"
	}
	return "bottom"
}

// PinnedColumns is the requested pinning configuration by column field.
type PinnedColumns struct {
	Left  []string
	Right []string
}

// SplitPinnedColumns resolves the pinning configuration against the visible
// field order. Left pins are kept in configured order when visible; right
// pins are filtered against what left did not take. Unknown fields are
// dropped.
func SplitPinnedColumns(pinned PinnedColumns, fields []string) (left, right []string) {
	left = []string{}
	right = []string{}
	if len(pinned.Left) == 0 && len(pinned.Right) == 0 {
		return left, right
	}

	visible := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		visible[f] = struct{}{}
	}
	for _, f := range pinned.Left {
		if _, ok := visible[f]; ok {
			left = append(left, f)
		}
	}
	for _, f := range left {
		delete(visible, f)
	}
	for _, f := range pinned.Right {
		if _, ok := visible[f]; ok {
			right = append(right, f)
		}
	}
	return left, right
}

// RemainingFields returns fields that are pinned on neither side, in order.
func RemainingFields(fields, left, right []string) []string {
	pinned := make(map[string]struct{}, len(left)+len(right))
	for _, f := range left {
		pinned[f] = struct{}{}
	}
	for _, f := range right {
		pinned[f] = struct{}{}
	}
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := pinned[f]; !ok {
			out = append(out, f)
		}
	}
	return out
}

// PinnedWindow re-windows ctx onto a pinned stripe. The row range is kept;
// columns become [0, leftCount) or [visibleCount-rightCount, visibleCount).
// ok is false when the side has no pinned columns.
func PinnedWindow(ctx RenderContext, side PinnedSide, visibleCount, leftCount, rightCount int) (RenderContext, bool) {
	switch side {
	case PinnedLeft:
		if leftCount <= 0 {
			return RenderContext{}, false
		}
		ctx.FirstColumnIndex = 0
		ctx.LastColumnIndex = leftCount
	case PinnedRight:
		if rightCount <= 0 {
			return RenderContext{}, false
		}
		ctx.FirstColumnIndex = visibleCount - rightCount
		ctx.LastColumnIndex = visibleCount
	default:
		return RenderContext{}, false
	}
	return ctx, true
}

// OverlayAlpha converts an elevation level into the perceptual alpha used to
// lighten pinned overlays.
func OverlayAlpha(elevation float64) float64 {
	var alpha float64
	if elevation < 1 {
		alpha = 5.11916 * elevation * elevation
	} else {
		alpha = 4.5*math.Log(elevation+1) + 2
	}
	return alpha / 100
}
