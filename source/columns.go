// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: source/columns.go
// Summary: Column set shared by sources: order, widths and pinning.

package source

import (
	"github.com/framegrace/texelgrid/virtual"
	"github.com/mattn/go-runewidth"
)

// Column width bounds used by AutoWidths.
const (
	MinColumnWidth = 3
	MaxColumnWidth = 40
)

// ColumnSet implements virtual.ColumnSource over a mutable column list.
type ColumnSet struct {
	columns []virtual.Column
	pinned  virtual.PinnedColumns
}

// NewColumnSet returns a set over columns. Columns without a header use
// their field name.
func NewColumnSet(columns []virtual.Column) *ColumnSet {
	cs := &ColumnSet{columns: make([]virtual.Column, len(columns))}
	copy(cs.columns, columns)
	for i := range cs.columns {
		if cs.columns[i].HeaderName == "" {
			cs.columns[i].HeaderName = cs.columns[i].Field
		}
	}
	return cs
}

// VisibleColumns returns the columns in display order.
func (cs *ColumnSet) VisibleColumns() []virtual.Column { return cs.columns }

// PinnedColumns returns the pinning configuration.
func (cs *ColumnSet) PinnedColumns() virtual.PinnedColumns { return cs.pinned }

// SetPinned replaces the pinning configuration.
func (cs *ColumnSet) SetPinned(p virtual.PinnedColumns) { cs.pinned = p }

// Fields returns the field names in display order.
func (cs *ColumnSet) Fields() []string {
	out := make([]string, len(cs.columns))
	for i, c := range cs.columns {
		out[i] = c.Field
	}
	return out
}

// SetWidth changes the width of field. It reports whether the field exists.
func (cs *ColumnSet) SetWidth(field string, width int) bool {
	for i := range cs.columns {
		if cs.columns[i].Field == field {
			cs.columns[i].Width = max(width, 0)
			return true
		}
	}
	return false
}

// Move places field at position to, clamped to the column range.
func (cs *ColumnSet) Move(field string, to int) bool {
	from := -1
	for i, c := range cs.columns {
		if c.Field == field {
			from = i
			break
		}
	}
	if from < 0 {
		return false
	}
	col := cs.columns[from]
	rest := append(cs.columns[:from:from], cs.columns[from+1:]...)
	to = min(max(to, 0), len(rest))
	out := make([]virtual.Column, 0, len(cs.columns))
	out = append(out, rest[:to]...)
	out = append(out, col)
	out = append(out, rest[to:]...)
	cs.columns = out
	return true
}

// AutoWidths sizes each column to its widest header or value, plus one
// cell of padding, within [MinColumnWidth, MaxColumnWidth].
func AutoWidths(columns []virtual.Column, records []Record) []virtual.Column {
	out := make([]virtual.Column, len(columns))
	for i, c := range columns {
		w := runewidth.StringWidth(c.HeaderName)
		for _, r := range records {
			w = max(w, runewidth.StringWidth(r[c.Field]))
		}
		c.Width = min(max(w+1, MinColumnWidth), MaxColumnWidth)
		out[i] = c
	}
	return out
}
