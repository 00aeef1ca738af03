// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: virtual/sources.go
// Summary: Collaborator contracts consumed by the engine and the row
// descriptors it hands back to renderers.

package virtual

// Align is the horizontal alignment of a column's content.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// Column is a visible column with its computed width in cells.
type Column struct {
	Field      string
	HeaderName string
	Width      int
	Align      Align
}

// Row is one row of the current page.
type Row struct {
	ID    string
	Model any
}

// PageRange locates the current page within the whole dataset.
type PageRange struct {
	FirstRowIndex int
	LastRowIndex  int
}

// RowSource supplies the rows of the current page.
type RowSource interface {
	Rows() []Row
	// PageRange reports false when no page is loaded.
	PageRange() (PageRange, bool)
	// RowHeight returns the height of a row in cells; values <= 0 fall back
	// to the configured default.
	RowHeight(id string) int
}

// ColumnSource supplies the visible columns and the pinning configuration.
type ColumnSource interface {
	VisibleColumns() []Column
	PinnedColumns() PinnedColumns
}

// DetailSource supplies expanded detail panel content.
type DetailSource interface {
	ExpandedRowIDs() []string
	DetailContent(id string) (any, bool)
	DetailHeight(id string) int
}

// SelectionSource reports row selection.
type SelectionSource interface {
	IsRowSelected(id string) bool
}

// RowDescriptor is everything a row renderer needs for one row.
type RowDescriptor struct {
	ID    string
	Model any
	// Height is the row's own height; DetailMargin is the extra space
	// reserved below it for an expanded detail panel.
	Height       int
	DetailMargin int
	Selected     bool
	// Index is the absolute row index within the dataset.
	Index int
	// Offset is the row's start offset in content coordinates.
	Offset      int
	Columns     []Column
	FirstColumn int
	LastColumn  int
}

// PinnedRowDescriptor describes the row rendered outside row virtualization.
type PinnedRowDescriptor struct {
	Row         Row
	Anchor      PinnedRowAnchor
	Height      int
	Columns     []Column
	FirstColumn int
	LastColumn  int
	// OffsetLeft is the horizontal translation of the cell strip in content
	// coordinates.
	OffsetLeft int
	// FillerWidth is the unused width to the right of the last column.
	FillerWidth int
}

// DetailPanel is an expanded panel anchored below its row.
type DetailPanel struct {
	RowID   string
	Content any
	Top     int
	Height  int
}
