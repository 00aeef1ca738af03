// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/datagrid.go
// Summary: DataGrid widget. Draws the layers produced by a virtual.Engine:
// header, scrollable zone, pinned column stripes, detail panels, the pinned
// row and scroll indicators. Input is translated into clamped scroll
// positions and forwarded to the engine.

package widgets

import (
	"fmt"
	"slices"
	"strings"

	"github.com/framegrace/texelgrid/texelui/core"
	"github.com/framegrace/texelgrid/texelui/scroll"
	"github.com/framegrace/texelgrid/virtual"
	"github.com/gdamore/tcell/v2"
)

// Styles holds every style the grid draws with.
type Styles struct {
	Cell      tcell.Style
	Header    tcell.Style
	Selected  tcell.Style
	Pinned    tcell.Style
	Filler    tcell.Style
	Detail    tcell.Style
	Indicator tcell.Style
}

// DefaultStyles returns a plain palette for terminals without a theme.
func DefaultStyles() Styles {
	base := tcell.StyleDefault
	return Styles{
		Cell:      base,
		Header:    base.Bold(true).Underline(true),
		Selected:  base.Reverse(true),
		Pinned:    base.Background(tcell.ColorDarkSlateGray),
		Filler:    base,
		Detail:    base.Dim(true),
		Indicator: base.Bold(true),
	}
}

// CellFormatter turns a row model into the text of one cell.
type CellFormatter func(model any, col virtual.Column) string

// Pager switches the page served by the row source.
type Pager interface {
	Page() int
	PageCount() int
	SetPage(n int) error
}

// ColumnEditor resizes and reorders the columns behind the engine.
type ColumnEditor interface {
	Fields() []string
	SetWidth(field string, width int) bool
	Move(field string, to int) bool
}

type cellValuer interface {
	CellValue(field string) string
}

// DefaultFormatter reads models implementing CellValue(field), string maps
// and map[string]any; anything else is printed whole in every column.
func DefaultFormatter(model any, col virtual.Column) string {
	switch m := model.(type) {
	case cellValuer:
		return m.CellValue(col.Field)
	case map[string]string:
		return m[col.Field]
	case map[string]any:
		if v, ok := m[col.Field]; ok && v != nil {
			return fmt.Sprint(v)
		}
		return ""
	case nil:
		return ""
	default:
		return fmt.Sprint(m)
	}
}

// DataGrid renders a virtual.Engine into a rectangle.
type DataGrid struct {
	core.BaseWidget
	Styles Styles
	Format CellFormatter

	// OnToggleDetail expands or collapses the detail panel of a row.
	OnToggleDetail func(id string) bool
	// OnToggleSelect flips the selection of a row.
	OnToggleSelect func(id string) bool
	// OnPageChange runs after the pager switched pages.
	OnPageChange func(page int)

	WheelRows    int
	WheelColumns int

	engine *virtual.Engine
	pager  Pager
	editor ColumnEditor
	inv    func(core.Rect)
	subs   []virtual.Subscription

	vstate scroll.State
	hstate scroll.State
	zone   virtual.ZonePayload

	showIndicators  bool
	indicatorConfig scroll.IndicatorConfig
}

// NewDataGrid creates a grid over engine and subscribes to its layout
// events. Call Close to unsubscribe.
func NewDataGrid(x, y, w, h int, engine *virtual.Engine) *DataGrid {
	g := &DataGrid{
		Styles:         DefaultStyles(),
		Format:         DefaultFormatter,
		WheelRows:      3,
		WheelColumns:   3,
		engine:         engine,
		showIndicators: true,
	}
	g.indicatorConfig = scroll.DefaultIndicatorConfig(g.Styles.Indicator)
	g.subs = append(g.subs,
		engine.Subscribe(virtual.ListenerFunc(g.onZone), virtual.EventRenderZonePositioning),
		engine.Subscribe(virtual.ListenerFunc(g.onContentSize), virtual.EventContentSizeChange),
	)
	g.zone = engine.RenderZone()
	g.SetFocusable(true)
	g.SetPosition(x, y)
	g.Resize(w, h)
	return g
}

// Close detaches the grid from its engine.
func (g *DataGrid) Close() {
	for _, s := range g.subs {
		g.engine.Unsubscribe(s)
	}
	g.subs = nil
}

// Engine returns the engine the grid draws.
func (g *DataGrid) Engine() *virtual.Engine { return g.engine }

// SetPager enables page switching with '[' and ']'.
func (g *DataGrid) SetPager(p Pager) { g.pager = p }

// SetColumnEditor enables '<' and '>' to resize and Alt+Left/Right to move
// the leftmost scrollable column in view.
func (g *DataGrid) SetColumnEditor(c ColumnEditor) { g.editor = c }

// SetStyles replaces the palette.
func (g *DataGrid) SetStyles(s Styles) {
	g.Styles = s
	g.indicatorConfig.Style = s.Indicator
	g.invalidate()
}

// ShowIndicators enables or disables scroll indicators.
func (g *DataGrid) ShowIndicators(show bool) { g.showIndicators = show }

// SetInvalidator sets the invalidation callback.
func (g *DataGrid) SetInvalidator(fn func(core.Rect)) { g.inv = fn }

func (g *DataGrid) invalidate() {
	if g.inv != nil {
		g.inv(g.Rect)
	}
}

// ScrollOffsets returns the clamped vertical and horizontal offsets.
func (g *DataGrid) ScrollOffsets() (top, left int) {
	return g.vstate.Offset, g.hstate.Offset
}

// bodyRect is the scrollable viewport: everything below the header minus
// the pinned row line.
func (g *DataGrid) bodyRect() core.Rect {
	r := core.Rect{X: g.Rect.X, Y: g.Rect.Y + 1, W: g.Rect.W, H: g.Rect.H - 1}
	if g.engine.Options().PinnedRow != nil {
		r.H--
		if g.engine.Options().PinnedRowPosition == virtual.AnchorTop {
			r.Y++
		}
	}
	r.W, r.H = max(r.W, 0), max(r.H, 0)
	return r
}

func (g *DataGrid) pinnedRowY() int {
	if g.engine.Options().PinnedRowPosition == virtual.AnchorTop {
		return g.Rect.Y + 1
	}
	return g.Rect.Y + g.Rect.H - 1
}

// Resize lays out the grid and reports the body size to the engine.
func (g *DataGrid) Resize(w, h int) {
	g.BaseWidget.Resize(w, h)
	body := g.bodyRect()
	g.vstate = g.vstate.WithViewportSize(body.H)
	g.hstate = g.hstate.WithViewportSize(body.W)
	g.engine.HandleResize(body.W, body.H)
	g.refreshContent()
	g.invalidate()
}

// Refresh rebuilds row geometry after the row source or detail panels
// changed outside the grid.
func (g *DataGrid) Refresh() {
	g.engine.HandleRowsChange()
	g.refreshContent()
	g.invalidate()
}

// refreshContent re-reads the content size and forwards any offset the
// new size clamped.
func (g *DataGrid) refreshContent() {
	size := g.engine.ContentSize()
	g.vstate = g.vstate.WithContentSize(size.Height)
	g.hstate = g.hstate.WithContentSize(size.Width)
	g.syncScroll()
}

func (g *DataGrid) onZone(ev virtual.Event) {
	if zone, ok := ev.Payload.(virtual.ZonePayload); ok {
		g.zone = zone
		g.invalidate()
	}
}

func (g *DataGrid) onContentSize(ev virtual.Event) {
	size, ok := ev.Payload.(virtual.ContentSize)
	if !ok {
		return
	}
	g.vstate = g.vstate.WithContentSize(size.Height)
	g.hstate = g.hstate.WithContentSize(size.Width)
}

// syncScroll forwards the clamped offsets when they differ from the
// engine's scroll position, e.g. after content shrank.
func (g *DataGrid) syncScroll() {
	pos := g.engine.ScrollPosition()
	if pos.Top == g.vstate.Offset && pos.Left == g.hstate.Offset {
		return
	}
	g.engine.HandleScroll(virtual.ScrollPosition{Top: g.vstate.Offset, Left: g.hstate.Offset})
}

// ScrollBy moves the viewport by rows and cells, clamped to the content.
func (g *DataGrid) ScrollBy(dy, dx int) {
	g.scrollTo(g.vstate.ScrollBy(dy), g.hstate.ScrollBy(dx))
}

func (g *DataGrid) scrollTo(v, h scroll.State) {
	if v.Offset == g.vstate.Offset && h.Offset == g.hstate.Offset {
		return
	}
	g.vstate, g.hstate = v, h
	g.engine.HandleScroll(virtual.ScrollPosition{Top: v.Offset, Left: h.Offset})
	g.invalidate()
}

// TopRowIndex returns the page index of the row at the top of the
// viewport.
func (g *DataGrid) TopRowIndex() (int, bool) {
	positions := g.engine.RowPositions().Positions()
	idx := virtual.IndexOf(g.vstate.Offset, positions)
	if idx == len(positions) || (idx >= 0 && positions[idx] > g.vstate.Offset) {
		idx--
	}
	if idx < 0 || idx >= len(g.engine.PageRows()) {
		return 0, false
	}
	return idx, true
}

// TopRowID returns the id of the row at the top of the viewport.
func (g *DataGrid) TopRowID() (string, bool) {
	idx, ok := g.TopRowIndex()
	if !ok {
		return "", false
	}
	return g.engine.PageRows()[idx].ID, true
}

// HandleKey handles navigation and row actions.
func (g *DataGrid) HandleKey(ev *tcell.EventKey) bool {
	body := g.bodyRect()
	ctrl := ev.Modifiers()&tcell.ModCtrl != 0
	alt := ev.Modifiers()&tcell.ModAlt != 0
	switch ev.Key() {
	case tcell.KeyUp:
		g.ScrollBy(-1, 0)
	case tcell.KeyDown:
		g.ScrollBy(1, 0)
	case tcell.KeyLeft:
		if alt {
			return g.moveLeadColumn(-1)
		}
		g.ScrollBy(0, -1)
	case tcell.KeyRight:
		if alt {
			return g.moveLeadColumn(1)
		}
		g.ScrollBy(0, 1)
	case tcell.KeyPgUp:
		g.ScrollBy(-max(body.H, 1), 0)
	case tcell.KeyPgDn:
		g.ScrollBy(max(body.H, 1), 0)
	case tcell.KeyHome:
		if ctrl {
			g.scrollTo(g.vstate.ScrollToStart(), g.hstate)
		} else {
			g.scrollTo(g.vstate, g.hstate.ScrollToStart())
		}
	case tcell.KeyEnd:
		if ctrl {
			g.scrollTo(g.vstate.ScrollToEnd(), g.hstate)
		} else {
			g.scrollTo(g.vstate, g.hstate.ScrollToEnd())
		}
	case tcell.KeyEnter:
		return g.toggleTopRow(g.OnToggleDetail, true)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'v':
			g.ToggleVirtualization()
		case ' ':
			return g.toggleTopRow(g.OnToggleSelect, false)
		case ']':
			return g.turnPage(1)
		case '[':
			return g.turnPage(-1)
		case '>':
			return g.resizeLeadColumn(1)
		case '<':
			return g.resizeLeadColumn(-1)
		default:
			return false
		}
	default:
		return false
	}
	return true
}

// HandleMouse scrolls on wheel events. Shift turns vertical wheel motion
// into horizontal scrolling.
func (g *DataGrid) HandleMouse(ev *tcell.EventMouse) bool {
	b := ev.Buttons()
	shift := ev.Modifiers()&tcell.ModShift != 0
	switch {
	case b&tcell.WheelUp != 0 && shift, b&tcell.WheelLeft != 0:
		g.ScrollBy(0, -g.WheelColumns)
	case b&tcell.WheelDown != 0 && shift, b&tcell.WheelRight != 0:
		g.ScrollBy(0, g.WheelColumns)
	case b&tcell.WheelUp != 0:
		g.ScrollBy(-g.WheelRows, 0)
	case b&tcell.WheelDown != 0:
		g.ScrollBy(g.WheelRows, 0)
	default:
		return false
	}
	return true
}

// ToggleVirtualization flips virtualization; the engine resets the scroll
// position to the origin.
func (g *DataGrid) ToggleVirtualization() {
	g.engine.SetVirtualizationDisabled(!g.engine.Options().DisableVirtualization)
	g.vstate = g.vstate.ScrollToStart()
	g.hstate = g.hstate.ScrollToStart()
	g.invalidate()
}

func (g *DataGrid) toggleTopRow(fn func(string) bool, geometry bool) bool {
	if fn == nil {
		return false
	}
	id, ok := g.TopRowID()
	if !ok {
		return false
	}
	fn(id)
	if geometry {
		g.engine.HandleRowsChange()
		g.refreshContent()
	}
	g.invalidate()
	return true
}

func (g *DataGrid) turnPage(delta int) bool {
	if g.pager == nil {
		return false
	}
	next := g.pager.Page() + delta
	if next < 0 || next >= g.pager.PageCount() {
		return true
	}
	if err := g.pager.SetPage(next); err != nil {
		return true
	}
	g.engine.HandleRowsChange()
	g.vstate = g.vstate.ScrollToStart()
	g.refreshContent()
	if g.OnPageChange != nil {
		g.OnPageChange(g.pager.Page())
	}
	g.invalidate()
	return true
}

// leadColumn returns the engine index of the leftmost scrollable column in
// the viewport.
func (g *DataGrid) leadColumn() (int, bool) {
	d := g.engine.ScrollableDomain()
	if d.Min >= d.Max {
		return 0, false
	}
	positions := g.engine.ColumnPositions().Positions()
	idx := virtual.IndexOf(g.hstate.Offset, positions)
	if idx == len(positions) || (idx >= 0 && positions[idx] > g.hstate.Offset) {
		idx--
	}
	return min(max(idx, d.Min), d.Max-1), true
}

func (g *DataGrid) resizeLeadColumn(delta int) bool {
	if g.editor == nil {
		return false
	}
	idx, ok := g.leadColumn()
	if !ok {
		return true
	}
	col := g.engine.Columns()[idx]
	if !g.editor.SetWidth(col.Field, max(col.Width+delta, 1)) {
		return true
	}
	g.engine.HandleColumnWidthChange()
	g.refreshContent()
	g.invalidate()
	return true
}

// moveLeadColumn swaps the lead column with its scrollable neighbor.
// Pinned columns are skipped since the engine arranges them by field.
func (g *DataGrid) moveLeadColumn(delta int) bool {
	if g.editor == nil {
		return false
	}
	idx, ok := g.leadColumn()
	if !ok {
		return true
	}
	d := g.engine.ScrollableDomain()
	next := idx + delta
	if next < d.Min || next >= d.Max {
		return true
	}
	cols := g.engine.Columns()
	to := slices.Index(g.editor.Fields(), cols[next].Field)
	if to < 0 || !g.editor.Move(cols[idx].Field, to) {
		return true
	}
	g.engine.HandleColumnOrderChange()
	g.refreshContent()
	g.invalidate()
	return true
}

// Draw renders every layer. Later layers overwrite earlier ones: the
// scrollable zone, pinned stripes, detail panels, pinned row, header and
// indicators.
func (g *DataGrid) Draw(painter *core.Painter) {
	p := painter.WithClip(g.Rect)
	p.Fill(g.Rect, ' ', g.Styles.Cell)
	body := g.bodyRect()

	rows, hasRows := g.engine.RenderRows()
	if hasRows {
		g.drawZone(p.WithClip(body), body, rows)
	}
	g.drawPinnedStripes(p.WithClip(body), body)
	g.drawDetailPanels(p.WithClip(body), body)
	g.drawPinnedRow(p)
	g.drawHeader(p, rows, hasRows)

	if g.showIndicators {
		scroll.DrawIndicators(p, body, g.vstate, g.indicatorConfig)
		scroll.DrawHorizontalIndicators(p, core.Rect{X: g.Rect.X, Y: g.Rect.Y, W: g.Rect.W, H: 1}, g.hstate, g.indicatorConfig)
	}
}

func (g *DataGrid) rowStyle(d virtual.RowDescriptor) tcell.Style {
	if d.Selected {
		return g.Styles.Selected
	}
	return g.Styles.Cell
}

// drawZone draws the scrollable zone at absolute content offsets.
func (g *DataGrid) drawZone(p *core.Painter, body core.Rect, rows []virtual.RowDescriptor) {
	cols := g.engine.ColumnPositions()
	for _, d := range rows {
		y := body.Y + d.Offset - g.vstate.Offset
		style := g.rowStyle(d)
		for j, col := range d.Columns {
			x := body.X + cols.Offset(d.FirstColumn+j) - g.hstate.Offset
			g.drawCell(p, x, y, d.Height, col, d.Model, style)
		}
	}
}

func (g *DataGrid) drawCell(p *core.Painter, x, y, height int, col virtual.Column, model any, style tcell.Style) {
	if col.Width <= 0 {
		return
	}
	p.Fill(core.Rect{X: x, Y: y, W: col.Width, H: max(height, 1)}, ' ', style)
	text := g.Format(model, col)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	// one cell of right padding separates columns
	width := col.Width
	if width > 1 {
		width--
	}
	p.DrawTextWidth(x, y, width, text, style, coreAlign(col.Align))
}

func coreAlign(a virtual.Align) core.Align {
	switch a {
	case virtual.AlignRight:
		return core.AlignRight
	case virtual.AlignCenter:
		return core.AlignCenter
	}
	return core.AlignLeft
}

// stripeRect returns the screen rectangle of a pinned stripe and the
// content offset of its first column.
func (g *DataGrid) stripeRect(body core.Rect, side virtual.PinnedSide) (core.Rect, int) {
	left, right := g.engine.PinnedColumns()
	cols := g.engine.ColumnPositions()
	n := cols.Len()
	if side == virtual.PinnedLeft {
		w := cols.Offset(len(left))
		return core.Rect{X: body.X, Y: body.Y, W: min(w, body.W), H: body.H}, 0
	}
	start := cols.Offset(n - len(right))
	w := cols.Total() - start
	return core.Rect{X: body.X + body.W - w, Y: body.Y, W: w, H: body.H}, start
}

// drawPinnedStripes draws both pinned column stripes. They ignore
// horizontal scrolling and follow the render zone vertically.
func (g *DataGrid) drawPinnedStripes(p *core.Painter, body core.Rect) {
	cols := g.engine.ColumnPositions()
	for _, side := range []virtual.PinnedSide{virtual.PinnedLeft, virtual.PinnedRight} {
		rect, origin := g.stripeRect(body, side)
		if rect.Empty() {
			continue
		}
		// stripes cover the full body height even when content is short
		p.Fill(rect, ' ', g.Styles.Pinned)
		rows, ok := g.engine.PinnedColumnRows(side)
		if !ok || len(rows) == 0 {
			continue
		}
		sp := p.WithClip(rect)
		top := body.Y + g.zone.Top - g.vstate.Offset
		for _, d := range rows {
			y := top + d.Offset - rows[0].Offset
			style := g.Styles.Pinned
			if d.Selected {
				style = g.Styles.Selected
			}
			for j, col := range d.Columns {
				x := rect.X + cols.Offset(d.FirstColumn+j) - origin
				g.drawCell(sp, x, y, d.Height, col, d.Model, style)
			}
		}
	}
}

// drawDetailPanels draws expanded panels across the full body width.
func (g *DataGrid) drawDetailPanels(p *core.Painter, body core.Rect) {
	for _, panel := range g.engine.DetailPanels() {
		r := core.Rect{X: body.X, Y: body.Y + panel.Top - g.vstate.Offset, W: body.W, H: panel.Height}
		if r.Intersect(body).Empty() {
			continue
		}
		p.Fill(r, ' ', g.Styles.Detail)
		pp := p.WithClip(r)
		switch c := panel.Content.(type) {
		case [][]core.Cell:
			for i, line := range c {
				for j, cell := range line {
					if cell.Ch != 0 {
						pp.SetCell(r.X+1+j, r.Y+i, cell.Ch, cell.Style)
					}
				}
			}
		case []string:
			for i, line := range c {
				pp.DrawText(r.X+1, r.Y+i, line, g.Styles.Detail)
			}
		case string:
			for i, line := range strings.Split(c, "\n") {
				pp.DrawText(r.X+1, r.Y+i, line, g.Styles.Detail)
			}
		default:
			pp.DrawText(r.X+1, r.Y, fmt.Sprint(c), g.Styles.Detail)
		}
	}
}

// drawPinnedRow draws the pinned row: its scrollable slice follows the
// horizontal scroll, the filler pads to the viewport edge, and pinned
// column cells sit in their stripes.
func (g *DataGrid) drawPinnedRow(p *core.Painter) {
	d, ok := g.engine.PinnedRow()
	if !ok {
		return
	}
	body := g.bodyRect()
	y := g.pinnedRowY()
	line := core.Rect{X: body.X, Y: y, W: body.W, H: 1}
	lp := p.WithClip(line)
	lp.Fill(line, ' ', g.Styles.Header)

	cols := g.engine.ColumnPositions()
	for j, col := range d.Columns {
		x := body.X + cols.Offset(d.FirstColumn+j) - g.hstate.Offset
		g.drawCell(lp, x, y, 1, col, d.Row.Model, g.Styles.Header)
	}
	if d.FillerWidth > 0 {
		lp.Fill(core.Rect{X: body.X + cols.Total() - g.hstate.Offset, Y: y, W: d.FillerWidth, H: 1}, ' ', g.Styles.Filler)
	}
	g.drawPinnedCells(lp, body, y, func(cp *core.Painter, x int, col virtual.Column) {
		g.drawCell(cp, x, y, 1, col, d.Row.Model, g.Styles.Pinned)
	})
}

// drawPinnedCells calls draw for every pinned column of a single line,
// with x inside the column's stripe.
func (g *DataGrid) drawPinnedCells(p *core.Painter, body core.Rect, y int, draw func(cp *core.Painter, x int, col virtual.Column)) {
	left, right := g.engine.PinnedColumns()
	columns := g.engine.Columns()
	cols := g.engine.ColumnPositions()
	for _, side := range []virtual.PinnedSide{virtual.PinnedLeft, virtual.PinnedRight} {
		rect, origin := g.stripeRect(body, side)
		if rect.Empty() {
			continue
		}
		first, last := 0, len(left)
		if side == virtual.PinnedRight {
			first, last = len(columns)-len(right), len(columns)
		}
		sp := p.WithClip(core.Rect{X: rect.X, Y: y, W: rect.W, H: 1})
		for i := first; i < last; i++ {
			draw(sp, rect.X+cols.Offset(i)-origin, columns[i])
		}
	}
}

func (g *DataGrid) drawHeaderCell(p *core.Painter, x, y int, col virtual.Column, style tcell.Style) {
	if col.Width <= 0 {
		return
	}
	p.Fill(core.Rect{X: x, Y: y, W: col.Width, H: 1}, ' ', style)
	width := col.Width
	if width > 1 {
		width--
	}
	p.DrawTextWidth(x, y, width, col.HeaderName, style, coreAlign(col.Align))
}

// drawHeader draws column titles for the rendered column range, then the
// pinned titles over their stripes.
func (g *DataGrid) drawHeader(p *core.Painter, rows []virtual.RowDescriptor, hasRows bool) {
	body := g.bodyRect()
	line := core.Rect{X: g.Rect.X, Y: g.Rect.Y, W: g.Rect.W, H: 1}
	hp := p.WithClip(line)
	hp.Fill(line, ' ', g.Styles.Header)

	columns := g.engine.Columns()
	domain := g.engine.ScrollableDomain()
	first, last := domain.Min, domain.Max
	if hasRows && len(rows) > 0 {
		first, last = rows[0].FirstColumn, rows[0].LastColumn
	}
	cols := g.engine.ColumnPositions()
	for i := first; i < last && i < len(columns); i++ {
		x := body.X + cols.Offset(i) - g.hstate.Offset
		g.drawHeaderCell(hp, x, line.Y, columns[i], g.Styles.Header)
	}
	pinned := g.Styles.Header.Background(pinnedBackground(g.Styles))
	g.drawPinnedCells(hp, body, line.Y, func(cp *core.Painter, x int, col virtual.Column) {
		g.drawHeaderCell(cp, x, line.Y, col, pinned)
	})
}

func pinnedBackground(s Styles) tcell.Color {
	_, bg, _ := s.Pinned.Decompose()
	return bg
}
