// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: virtual/engine.go
// Summary: Viewport virtualization engine. Maps scroll position and viewport
// size to the minimal renderable row/column range, decides when that range
// is committed, and positions the render zone, pinned layers and detail
// overlays from the committed context.
// Notes: The engine is driven from a single event loop and holds no locks.

package virtual

import "log"

// Options configures the engine.
type Options struct {
	RowBuffer       int
	ColumnBuffer    int
	RowThreshold    int
	ColumnThreshold int

	DisableVirtualization bool
	// AutoHeight sizes the body to its content; every page row is in range.
	AutoHeight       bool
	DefaultRowHeight int

	PinnedRow         *Row
	PinnedRowPosition PinnedRowAnchor

	// IsRowSelectable further restricts selection when set.
	IsRowSelectable func(id string) bool
}

// DefaultOptions returns the stock buffer and threshold settings.
func DefaultOptions() Options {
	return Options{
		RowBuffer:        3,
		ColumnBuffer:     3,
		RowThreshold:     3,
		ColumnThreshold:  3,
		DefaultRowHeight: 1,
	}
}

// Engine is the viewport virtualization engine.
type Engine struct {
	opts Options

	rows      RowSource
	cols      ColumnSource
	details   DetailSource
	selection SelectionSource

	dispatcher Dispatcher
	policy     *CommitPolicy

	scroll   ScrollPosition
	viewport Viewport
	measured bool

	pageRows  []Row
	rowLookup map[string]int
	rowIndex  PositionIndex
	margins   map[string]int

	columns     []Column
	colIndex    PositionIndex
	leftPinned  []string
	rightPinned []string

	zone           ZonePayload
	contentSize    ContentSize
	hasContentSize bool
}

// NewEngine creates an engine over the given row and column sources. The
// engine produces no output until the first HandleResize with a non-zero
// width.
func NewEngine(opts Options, rows RowSource, cols ColumnSource) *Engine {
	if opts.DefaultRowHeight <= 0 {
		opts.DefaultRowHeight = 1
	}
	e := &Engine{
		opts:   opts,
		rows:   rows,
		cols:   cols,
		policy: NewCommitPolicy(opts.RowThreshold, opts.ColumnThreshold),
	}
	e.refreshColumns()
	e.refreshRows()
	e.policy.SetTotalWidth(e.colIndex.Total())
	return e
}

// SetDetailSource installs the detail panel collaborator and rebuilds row
// geometry.
func (e *Engine) SetDetailSource(d DetailSource) {
	e.details = d
	e.HandleRowsChange()
}

// SetSelectionSource installs the selection collaborator.
func (e *Engine) SetSelectionSource(s SelectionSource) {
	e.selection = s
}

// Subscribe registers a listener for the given event types.
func (e *Engine) Subscribe(l Listener, types ...EventType) Subscription {
	return e.dispatcher.Subscribe(l, types...)
}

// Unsubscribe removes a listener.
func (e *Engine) Unsubscribe(s Subscription) {
	e.dispatcher.Unsubscribe(s)
}

// Options returns the active options.
func (e *Engine) Options() Options { return e.opts }

// ScrollPosition returns the last accepted scroll position.
func (e *Engine) ScrollPosition() ScrollPosition { return e.scroll }

// Viewport returns the last measured viewport and whether it is measured.
func (e *Engine) Viewport() (Viewport, bool) { return e.viewport, e.measured }

// Columns returns the visible columns with pinned columns moved to the ends.
func (e *Engine) Columns() []Column { return e.columns }

// PageRows returns the rows of the current page.
func (e *Engine) PageRows() []Row { return e.pageRows }

// RowPositions returns the row position index.
func (e *Engine) RowPositions() PositionIndex { return e.rowIndex }

// ColumnPositions returns the column position index.
func (e *Engine) ColumnPositions() PositionIndex { return e.colIndex }

// RenderZone returns the last render zone translation.
func (e *Engine) RenderZone() ZonePayload { return e.zone }

// RenderContext returns the last committed context.
func (e *Engine) RenderContext() (RenderContext, bool) {
	return e.policy.Committed()
}

// PinnedColumns returns the resolved left and right pinned fields.
func (e *Engine) PinnedColumns() (left, right []string) {
	return e.leftPinned, e.rightPinned
}

// ScrollableDomain is the column domain of the scrollable zone: visible
// columns minus the pinned stripes.
func (e *Engine) ScrollableDomain() ColumnDomain {
	return ColumnDomain{Min: len(e.leftPinned), Max: len(e.columns) - len(e.rightPinned)}
}

// HandleResize records a new viewport size and recomputes the render
// context. A zero width leaves the engine unmeasured.
func (e *Engine) HandleResize(width, height int) {
	if width <= 0 {
		e.viewport = Viewport{}
		e.measured = false
		e.policy.Clear()
		return
	}
	if height < 0 {
		height = 0
	}
	first := !e.measured
	e.viewport = Viewport{Width: width, Height: height}
	e.measured = true
	if first {
		log.Printf("Grid: First layout %dx%d, %d rows, %d columns", width, height, len(e.pageRows), len(e.columns))
	}
	e.recompute()
}

// HandleScroll processes a scroll event and reports whether a new context
// was committed. Negative offsets are overscroll and are dropped without
// touching any state.
func (e *Engine) HandleScroll(pos ScrollPosition) bool {
	if pos.Top < 0 || pos.Left < 0 {
		return false
	}
	e.scroll = pos

	prev, ok := e.policy.Committed()
	if !ok {
		return false
	}

	candidate := prev
	if !e.opts.DisableVirtualization {
		candidate = e.computeRenderContext()
	}
	ctx, committed := e.policy.Evaluate(candidate, e.colIndex.Total())

	e.dispatcher.Publish(Event{Type: EventRowsScroll, Payload: ScrollPayload{
		Top:           pos.Top,
		Left:          pos.Left,
		RenderContext: ctx,
	}})

	if committed {
		e.dispatcher.Publish(Event{Type: EventRenderContextChange, Payload: ctx})
		e.UpdateRenderZonePosition(ctx)
	}
	return committed
}

// HandleRowsChange rebuilds row geometry after the page, row heights or
// expanded rows changed.
func (e *Engine) HandleRowsChange() {
	e.refreshRows()
	if e.measured {
		e.recompute()
	} else {
		e.updateContentSize()
	}
}

// HandleColumnWidthChange rebuilds column geometry and repositions the
// render zone without waiting for a scroll. The committed context is kept;
// the next scroll commits because the total width moved.
func (e *Engine) HandleColumnWidthChange() {
	e.refreshColumns()
	e.refreshZone()
	e.updateContentSize()
}

// HandleColumnOrderChange is HandleColumnWidthChange for reordering, which
// can also move columns between pinned stripes.
func (e *Engine) HandleColumnOrderChange() {
	e.HandleColumnWidthChange()
}

// SetVirtualizationDisabled toggles virtualization. The scroll position is
// reset to the origin and the context recomputed.
func (e *Engine) SetVirtualizationDisabled(disabled bool) {
	if e.opts.DisableVirtualization == disabled {
		return
	}
	e.opts.DisableVirtualization = disabled
	e.scroll = ScrollPosition{}
	log.Printf("Grid: Virtualization disabled=%v", disabled)
	if e.measured {
		e.recompute()
	}
}

// UpdateRenderZonePosition translates the render zone so its first rendered
// row and column sit at their content offsets.
func (e *Engine) UpdateRenderZonePosition(ctx RenderContext) {
	zone := ZonePayload{}
	if !e.opts.DisableVirtualization {
		firstRow, _ := RenderableRange(ctx.FirstRowIndex, ctx.LastRowIndex, e.opts.RowBuffer, 0, len(e.pageRows))
		d := e.ScrollableDomain()
		firstCol, _ := RenderableRange(ctx.FirstColumnIndex, ctx.LastColumnIndex, e.opts.ColumnBuffer, d.Min, d.Max)
		zone.Top = e.rowIndex.Offset(firstRow)
		zone.Left = e.colIndex.Offset(firstCol)
	}
	e.zone = zone
	e.dispatcher.Publish(Event{Type: EventRenderZonePositioning, Payload: zone})
}

// Rows returns row descriptors for ctx. override narrows the column domain;
// nil uses the scrollable domain. ok is false when there is nothing to
// render: no measured viewport or an empty page.
func (e *Engine) Rows(ctx RenderContext, override *ColumnDomain) ([]RowDescriptor, bool) {
	if !e.measured || len(e.pageRows) == 0 {
		return nil, false
	}
	page, ok := e.rows.PageRange()
	if !ok {
		return nil, false
	}

	rowBuffer, columnBuffer := e.buffers()
	firstRow, lastRow := RenderableRange(ctx.FirstRowIndex, ctx.LastRowIndex, rowBuffer, 0, len(e.pageRows))

	domain := e.ScrollableDomain()
	if override != nil {
		domain = *override
	}
	firstCol, lastCol := RenderableRange(ctx.FirstColumnIndex, ctx.LastColumnIndex, columnBuffer, domain.Min, domain.Max)
	firstCol, lastCol = clamp(firstCol, 0, len(e.columns)), clamp(lastCol, 0, len(e.columns))
	rendered := e.columns[firstCol:lastCol]

	out := make([]RowDescriptor, 0, lastRow-firstRow)
	for i, row := range e.pageRows[firstRow:lastRow] {
		idx := firstRow + i
		out = append(out, RowDescriptor{
			ID:           row.ID,
			Model:        row.Model,
			Height:       e.rowHeight(row.ID),
			DetailMargin: e.detailMargin(row.ID),
			Selected:     e.isSelected(row.ID),
			Index:        page.FirstRowIndex + idx,
			Offset:       e.rowIndex.Offset(idx),
			Columns:      rendered,
			FirstColumn:  firstCol,
			LastColumn:   lastCol,
		})
	}
	return out, true
}

// RenderRows returns the scrollable zone rows for the committed context.
func (e *Engine) RenderRows() ([]RowDescriptor, bool) {
	ctx, ok := e.policy.Committed()
	if !ok {
		return nil, false
	}
	return e.Rows(ctx, nil)
}

// PinnedColumnRows returns the rows of a pinned column stripe. The row slice
// matches the scrollable zone; columns are re-windowed onto the stripe.
func (e *Engine) PinnedColumnRows(side PinnedSide) ([]RowDescriptor, bool) {
	ctx, ok := e.policy.Committed()
	if !ok {
		return nil, false
	}
	window, ok := PinnedWindow(ctx, side, len(e.columns), len(e.leftPinned), len(e.rightPinned))
	if !ok {
		return nil, false
	}
	return e.Rows(window, &ColumnDomain{Min: window.FirstColumnIndex, Max: window.LastColumnIndex})
}

// PinnedRow returns the configured pinned row, column-virtualized with the
// committed column range of the scrollable zone.
func (e *Engine) PinnedRow() (PinnedRowDescriptor, bool) {
	if e.opts.PinnedRow == nil || !e.measured {
		return PinnedRowDescriptor{}, false
	}
	ctx, ok := e.policy.Committed()
	if !ok {
		return PinnedRowDescriptor{}, false
	}

	_, columnBuffer := e.buffers()
	d := e.ScrollableDomain()
	firstCol, lastCol := RenderableRange(ctx.FirstColumnIndex, ctx.LastColumnIndex, columnBuffer, d.Min, d.Max)
	firstCol, lastCol = clamp(firstCol, 0, len(e.columns)), clamp(lastCol, 0, len(e.columns))

	desc := PinnedRowDescriptor{
		Row:         *e.opts.PinnedRow,
		Anchor:      e.opts.PinnedRowPosition,
		Height:      e.opts.DefaultRowHeight,
		Columns:     e.columns[firstCol:lastCol],
		FirstColumn: firstCol,
		LastColumn:  lastCol,
	}
	if !e.opts.DisableVirtualization {
		desc.OffsetLeft = e.colIndex.Offset(firstCol)
	}
	if filler := e.viewport.Width - e.colIndex.Total(); filler > 0 {
		desc.FillerWidth = filler
	}
	return desc, true
}

// DetailPanels returns the expanded panels of rows on the current page.
// Expanded ids without a row on this page are skipped.
func (e *Engine) DetailPanels() []DetailPanel {
	if e.details == nil {
		return nil
	}
	ids := e.details.ExpandedRowIDs()
	seen := make(map[string]struct{}, len(ids))
	var panels []DetailPanel
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		idx, exists := e.rowLookup[id]
		if !exists {
			continue
		}
		content, ok := e.details.DetailContent(id)
		if !ok || content == nil {
			continue
		}
		panels = append(panels, DetailPanel{
			RowID:   id,
			Content: content,
			Top:     e.rowIndex.Offset(idx) + e.rowHeight(id),
			Height:  e.details.DetailHeight(id),
		})
	}
	return panels
}

// ContentSize returns the size of the scrollable content.
func (e *Engine) ContentSize() ContentSize {
	size := ContentSize{Width: e.viewport.Width, Height: e.rowIndex.Total()}
	if e.NeedsHorizontalScroll() {
		size.Width = e.colIndex.Total()
	}
	if size.Height < 1 {
		size.Height = 1
	}
	if e.opts.AutoHeight && len(e.pageRows) == 0 {
		size.Height = 2 * e.opts.DefaultRowHeight
	}
	return size
}

// NeedsHorizontalScroll reports whether the columns overflow the viewport.
func (e *Engine) NeedsHorizontalScroll() bool {
	return e.measured && e.colIndex.Total() > e.viewport.Width
}

func (e *Engine) computeRenderContext() RenderContext {
	if e.opts.DisableVirtualization {
		return RenderContext{
			FirstRowIndex:    0,
			LastRowIndex:     len(e.pageRows),
			FirstColumnIndex: 0,
			LastColumnIndex:  len(e.columns),
		}
	}

	top, left := e.scroll.Top, e.scroll.Left
	rowPositions := e.rowIndex.Positions()
	colPositions := e.colIndex.Positions()

	firstRow := max(IndexOf(top, rowPositions), 0)
	var lastRow int
	if e.opts.AutoHeight {
		lastRow = min(firstRow+len(e.pageRows), len(e.pageRows))
	} else {
		lastRow = max(IndexOf(top+e.viewport.Height, rowPositions), 0)
	}
	firstCol := max(IndexOf(left, colPositions), 0)
	lastCol := max(IndexOf(left+e.viewport.Width, colPositions), 0)

	return RenderContext{
		FirstRowIndex:    firstRow,
		LastRowIndex:     lastRow,
		FirstColumnIndex: firstCol,
		LastColumnIndex:  lastCol,
	}
}

// recompute installs a freshly computed context unconditionally.
func (e *Engine) recompute() {
	ctx := e.computeRenderContext()
	e.policy.Reset(ctx)
	e.dispatcher.Publish(Event{Type: EventRenderContextChange, Payload: ctx})
	e.dispatcher.Publish(Event{Type: EventRowsScroll, Payload: ScrollPayload{
		Top:           e.scroll.Top,
		Left:          e.scroll.Left,
		RenderContext: ctx,
	}})
	e.UpdateRenderZonePosition(ctx)
	e.updateContentSize()
}

func (e *Engine) refreshZone() {
	if ctx, ok := e.policy.Committed(); ok {
		e.UpdateRenderZonePosition(ctx)
	}
}

func (e *Engine) updateContentSize() {
	size := e.ContentSize()
	if e.hasContentSize && size == e.contentSize {
		return
	}
	e.contentSize = size
	e.hasContentSize = true
	e.dispatcher.Publish(Event{Type: EventContentSizeChange, Payload: size})
}

func (e *Engine) refreshRows() {
	e.pageRows = nil
	if e.rows != nil {
		e.pageRows = e.rows.Rows()
	}
	e.margins = e.expandedMargins()
	e.rowLookup = make(map[string]int, len(e.pageRows))
	sizes := make([]int, len(e.pageRows))
	for i, row := range e.pageRows {
		e.rowLookup[row.ID] = i
		sizes[i] = e.rowHeight(row.ID) + e.detailMargin(row.ID)
	}
	e.rowIndex = NewPositionIndex(sizes)
}

func (e *Engine) refreshColumns() {
	var visible []Column
	var pinned PinnedColumns
	if e.cols != nil {
		visible = e.cols.VisibleColumns()
		pinned = e.cols.PinnedColumns()
	}
	fields := make([]string, len(visible))
	for i, c := range visible {
		fields[i] = c.Field
	}
	e.leftPinned, e.rightPinned = SplitPinnedColumns(pinned, fields)
	e.columns = arrangePinned(visible, e.leftPinned, e.rightPinned)

	widths := make([]int, len(e.columns))
	for i, c := range e.columns {
		widths[i] = c.Width
	}
	e.colIndex = NewPositionIndex(widths)
}

// arrangePinned orders columns as left pins, unpinned columns, right pins so
// the pinned stripes occupy the two ends of the column index space.
func arrangePinned(visible []Column, left, right []string) []Column {
	if len(left) == 0 && len(right) == 0 {
		return visible
	}
	byField := make(map[string]Column, len(visible))
	for _, c := range visible {
		byField[c.Field] = c
	}
	fields := make([]string, len(visible))
	for i, c := range visible {
		fields[i] = c.Field
	}

	out := make([]Column, 0, len(visible))
	for _, f := range left {
		out = append(out, byField[f])
	}
	for _, f := range RemainingFields(fields, left, right) {
		out = append(out, byField[f])
	}
	for _, f := range right {
		out = append(out, byField[f])
	}
	return out
}

func (e *Engine) buffers() (int, int) {
	if e.opts.DisableVirtualization {
		return 0, 0
	}
	return e.opts.RowBuffer, e.opts.ColumnBuffer
}

func (e *Engine) rowHeight(id string) int {
	if e.rows != nil {
		if h := e.rows.RowHeight(id); h > 0 {
			return h
		}
	}
	return e.opts.DefaultRowHeight
}

func (e *Engine) detailMargin(id string) int {
	return e.margins[id]
}

// expandedMargins collects the detail heights of expanded rows that have
// content.
func (e *Engine) expandedMargins() map[string]int {
	margins := make(map[string]int)
	if e.details == nil {
		return margins
	}
	for _, id := range e.details.ExpandedRowIDs() {
		if content, ok := e.details.DetailContent(id); !ok || content == nil {
			continue
		}
		if h := e.details.DetailHeight(id); h > 0 {
			margins[id] = h
		}
	}
	return margins
}

func (e *Engine) isSelected(id string) bool {
	if e.selection == nil || !e.selection.IsRowSelected(id) {
		return false
	}
	if e.opts.IsRowSelectable != nil {
		return e.opts.IsRowSelectable(id)
	}
	return true
}
