// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: source/record.go
// Summary: Row model shared by every source and the generic paged source
// interface the viewer works with.

package source

import (
	"sort"
	"strings"

	"github.com/framegrace/texelgrid/virtual"
)

// Record is the model of one row: field name to display text.
type Record map[string]string

// CellValue returns the text of field.
func (r Record) CellValue(field string) string { return r[field] }

// Describe renders the record as "field: value" lines in column order.
// Fields without a column are appended alphabetically.
func (r Record) Describe(columns []virtual.Column) string {
	var b strings.Builder
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		seen[c.Field] = struct{}{}
		b.WriteString(c.HeaderName)
		b.WriteString(": ")
		b.WriteString(r[c.Field])
		b.WriteByte('\n')
	}
	var extra []string
	for f := range r {
		if _, ok := seen[f]; !ok {
			extra = append(extra, f)
		}
	}
	sort.Strings(extra)
	for _, f := range extra {
		b.WriteString(f)
		b.WriteString(": ")
		b.WriteString(r[f])
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Source is a paged row source with its columns.
type Source interface {
	virtual.RowSource
	virtual.ColumnSource

	// Columns exposes the mutable column set.
	Columns() *ColumnSet
	// Record returns the model of a row on the current page.
	Record(id string) (Record, bool)

	Page() int
	PageCount() int
	// SetPage loads page n, clamped to the available pages.
	SetPage(n int) error

	Close() error
}
