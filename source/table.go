// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: source/table.go
// Summary: In-memory paged source used by the CSV, XLSX and directory
// loaders.

package source

import (
	"strconv"

	"github.com/framegrace/texelgrid/virtual"
)

// Table holds every record in memory and serves them one page at a time.
// A page size of 0 serves everything as a single page.
type Table struct {
	*ColumnSet

	ids     []string
	records []Record
	heights map[string]int

	pageSize int
	page     int
	rows     []virtual.Row
	index    map[string]int
}

// NewTable returns a table over records. Row ids are the record positions
// unless idField names a column holding unique ids.
func NewTable(columns []virtual.Column, records []Record, idField string, pageSize int) *Table {
	t := &Table{
		ColumnSet: NewColumnSet(columns),
		records:   records,
		ids:       make([]string, len(records)),
		pageSize:  max(pageSize, 0),
	}
	for i, r := range records {
		id := strconv.Itoa(i)
		if idField != "" && r[idField] != "" {
			id = r[idField]
		}
		t.ids[i] = id
	}
	t.loadPage()
	return t
}

// Columns returns the column set.
func (t *Table) Columns() *ColumnSet { return t.ColumnSet }

// Len is the total number of records across pages.
func (t *Table) Len() int { return len(t.records) }

// Rows returns the rows of the current page.
func (t *Table) Rows() []virtual.Row { return t.rows }

// PageRange returns the absolute index range of the current page.
func (t *Table) PageRange() (virtual.PageRange, bool) {
	first := t.page * t.effectivePageSize()
	return virtual.PageRange{FirstRowIndex: first, LastRowIndex: first + len(t.rows) - 1}, true
}

// RowHeight returns the height of a row; rows are one cell unless
// overridden with SetRowHeight.
func (t *Table) RowHeight(id string) int {
	if h, ok := t.heights[id]; ok {
		return h
	}
	return 1
}

// SetRowHeight overrides the height of a row.
func (t *Table) SetRowHeight(id string, h int) {
	if t.heights == nil {
		t.heights = make(map[string]int)
	}
	t.heights[id] = h
}

// Record returns the model of a row on the current page.
func (t *Table) Record(id string) (Record, bool) {
	i, ok := t.index[id]
	if !ok {
		return nil, false
	}
	return t.rows[i].Model.(Record), true
}

// Page returns the current page number.
func (t *Table) Page() int { return t.page }

// PageCount returns the number of pages; an empty table has one empty page.
func (t *Table) PageCount() int {
	size := t.effectivePageSize()
	if size == 0 {
		return 1
	}
	return max((len(t.records)+size-1)/size, 1)
}

// SetPage switches to page n, clamped to the available pages.
func (t *Table) SetPage(n int) error {
	t.page = min(max(n, 0), t.PageCount()-1)
	t.loadPage()
	return nil
}

// Close is a no-op.
func (t *Table) Close() error { return nil }

func (t *Table) effectivePageSize() int {
	if t.pageSize == 0 {
		return len(t.records)
	}
	return t.pageSize
}

func (t *Table) loadPage() {
	size := t.effectivePageSize()
	first := min(t.page*size, len(t.records))
	last := min(first+size, len(t.records))
	t.rows = make([]virtual.Row, 0, last-first)
	t.index = make(map[string]int, last-first)
	for i := first; i < last; i++ {
		t.index[t.ids[i]] = len(t.rows)
		t.rows = append(t.rows, virtual.Row{ID: t.ids[i], Model: t.records[i]})
	}
}
