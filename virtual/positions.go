// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: virtual/positions.go
// Summary: Cumulative offset tables for rows and columns and the binary
// search that maps a cell offset back to an item index.

package virtual

// PositionIndex holds the start offset of every item along one axis plus the
// total extent. It is built once per layout and never mutated.
type PositionIndex struct {
	positions []int
	total     int
}

// NewPositionIndex builds an index from per-item sizes. Negative sizes are
// treated as zero so offsets stay non-decreasing.
func NewPositionIndex(sizes []int) PositionIndex {
	positions := make([]int, len(sizes))
	acc := 0
	for i, size := range sizes {
		positions[i] = acc
		if size > 0 {
			acc += size
		}
	}
	return PositionIndex{positions: positions, total: acc}
}

// Len returns the number of items.
func (p PositionIndex) Len() int { return len(p.positions) }

// Total returns the extent of all items.
func (p PositionIndex) Total() int { return p.total }

// Positions exposes the start offsets. Callers must not modify the slice.
func (p PositionIndex) Positions() []int { return p.positions }

// Offset returns the start offset of item i. i == Len() yields the total
// extent; other out-of-range values are clamped.
func (p PositionIndex) Offset(i int) int {
	if i <= 0 || len(p.positions) == 0 {
		return 0
	}
	if i >= len(p.positions) {
		return p.total
	}
	return p.positions[i]
}

// Size returns the extent of item i, or 0 when i is out of range.
func (p PositionIndex) Size(i int) int {
	if i < 0 || i >= len(p.positions) {
		return 0
	}
	return p.Offset(i+1) - p.positions[i]
}

// IndexOf returns the smallest index i such that positions[i] >= offset.
// An exact hit on a boundary resolves to the earlier index. Offsets past the
// last position return len(positions); an empty table returns -1.
func IndexOf(offset int, positions []int) int {
	if len(positions) == 0 {
		return -1
	}
	lo, hi := 0, len(positions)
	for lo < hi {
		pivot := lo + (hi-lo)/2
		if offset <= positions[pivot] {
			hi = pivot
		} else {
			lo = pivot + 1
		}
	}
	return lo
}
