// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/viewer/app.go
// Summary: Grid viewer application: wires a source into the engine, the
// DataGrid and a status bar, and serves detail panels.

package viewer

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/framegrace/texelgrid/config"
	"github.com/framegrace/texelgrid/internal/theming"
	"github.com/framegrace/texelgrid/source"
	"github.com/framegrace/texelgrid/texelui/core"
	"github.com/framegrace/texelgrid/texelui/widgets"
	"github.com/framegrace/texelgrid/txfmt"
	"github.com/framegrace/texelgrid/virtual"
	"github.com/gdamore/tcell/v2"
)

const defaultPreviewLines = 20

// Options adjusts the viewer on top of the loaded config.
type Options struct {
	Title string
	// Root is the scanned directory when the source lists files; detail
	// panels then preview file contents.
	Root   string
	Pinned virtual.PinnedColumns
	// NoVirtualization starts with virtualization disabled.
	NoVirtualization bool
	// Totals pins a row summing the numeric columns of the current page.
	Totals       bool
	PreviewLines int
}

// App is the interactive grid viewer.
type App struct {
	src     source.Source
	opts    Options
	palette theming.Palette

	engine    *virtual.Engine
	comp      *core.Compositor
	grid      *widgets.DataGrid
	status    *widgets.StatusBar
	details   *source.Expansion
	selection *source.Selection
	totals    *virtual.Row

	stop     chan struct{}
	stopOnce sync.Once
}

// New builds a viewer over src. The viewer does not own src.
func New(src source.Source, cfg config.Config, opts Options) *App {
	a := &App{
		src:     src,
		opts:    opts,
		palette: theming.FromConfig(cfg),
		stop:    make(chan struct{}),
	}
	if len(opts.Pinned.Left) > 0 || len(opts.Pinned.Right) > 0 {
		src.Columns().SetPinned(opts.Pinned)
	} else if p := config.PinnedColumns(cfg); len(p.Left) > 0 || len(p.Right) > 0 {
		src.Columns().SetPinned(p)
	}

	engOpts := config.GridOptions(cfg)
	if opts.NoVirtualization {
		engOpts.DisableVirtualization = true
	}
	if opts.Totals {
		row := source.Totals(src.Rows(), src.VisibleColumns(), "Total")
		a.totals = &row
		engOpts.PinnedRow = a.totals
	}

	a.details = source.NewExpansion(a.detail)
	a.selection = source.NewSelection()
	a.engine = virtual.NewEngine(engOpts, src, src)
	a.engine.SetDetailSource(a.details)
	a.engine.SetSelectionSource(a.selection)

	styles := a.palette.GridStyles(config.PinnedElevation(cfg))
	surface := tcell.StyleDefault.Foreground(a.palette.SurfaceFG).Background(a.palette.SurfaceBG)
	a.comp = core.NewCompositor(surface)

	a.grid = widgets.NewDataGrid(0, 0, 0, 0, a.engine)
	a.grid.SetStyles(styles)
	a.grid.WheelRows = max(cfg.GetInt(config.SectionGrid, "wheel_rows", 3), 1)
	a.grid.WheelColumns = max(cfg.GetInt(config.SectionGrid, "wheel_columns", 3), 1)
	a.grid.OnToggleDetail = a.details.Toggle
	a.grid.OnToggleSelect = a.selection.Toggle
	a.grid.SetPager(src)
	a.grid.SetColumnEditor(src.Columns())
	a.grid.OnPageChange = a.onPageChange

	a.status = widgets.NewStatusBar(0, 0, 0, styles.Header)

	a.comp.AddWidget(a.grid)
	a.comp.AddWidget(a.status)
	a.comp.Focus(a.grid)
	return a
}

// Engine returns the viewer's engine.
func (a *App) Engine() *virtual.Engine { return a.engine }

// Grid returns the viewer's grid widget.
func (a *App) Grid() *widgets.DataGrid { return a.grid }

// Resize gives the grid everything but the last line, which holds the
// status bar.
func (a *App) Resize(w, h int) {
	a.comp.Resize(w, h)
	a.grid.SetPosition(0, 0)
	a.grid.Resize(w, max(h-1, 0))
	a.status.SetPosition(0, max(h-1, 0))
	a.status.Resize(w, min(h, 1))
	a.comp.InvalidateAll()
}

// Render refreshes the status line and returns the composed frame.
func (a *App) Render() [][]core.Cell {
	a.updateStatus()
	return a.comp.Render()
}

// HandleKey quits on q or Escape and forwards everything else to the grid.
func (a *App) HandleKey(ev *tcell.EventKey) bool {
	switch {
	case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
		a.Stop()
		return true
	case ev.Key() == tcell.KeyRune && ev.Rune() == 'c':
		if len(a.details.ExpandedRowIDs()) == 0 {
			return false
		}
		a.details.Clear()
		a.grid.Refresh()
		return true
	}
	return a.comp.HandleKey(ev)
}

// HandleMouse forwards mouse events to the widget under the pointer.
func (a *App) HandleMouse(ev *tcell.EventMouse) bool {
	return a.comp.HandleMouse(ev)
}

// SetRefreshNotifier forwards redraw requests to ch.
func (a *App) SetRefreshNotifier(ch chan<- bool) { a.comp.SetRefreshNotifier(ch) }

// Run blocks until Stop.
func (a *App) Run() error {
	<-a.stop
	return nil
}

// Stop ends Run and detaches the grid from the engine.
func (a *App) Stop() {
	a.stopOnce.Do(func() {
		a.grid.Close()
		close(a.stop)
	})
}

func (a *App) onPageChange(int) {
	a.details.Clear()
	if a.totals != nil {
		*a.totals = source.Totals(a.src.Rows(), a.src.VisibleColumns(), "Total")
	}
	a.grid.Refresh()
}

// detail serves detail panel content: a highlighted preview for files, the
// record's fields otherwise.
func (a *App) detail(id string) (any, int, bool) {
	rec, ok := a.src.Record(id)
	if !ok {
		return nil, 0, false
	}
	if a.opts.Root != "" && rec["path"] != "" {
		n := a.opts.PreviewLines
		if n <= 0 {
			n = defaultPreviewLines
		}
		lines, err := source.FilePreview(filepath.Join(a.opts.Root, filepath.FromSlash(rec["path"])), n)
		if err == nil && len(lines) > 0 {
			cells := txfmt.Highlight(lines, rec["language"], a.palette.SyntaxStyle, a.grid.Styles.Detail)
			return cells, len(cells), true
		}
	}
	text := rec.Describe(a.src.VisibleColumns())
	return text, strings.Count(text, "\n") + 1, true
}

type lener interface{ Len() int }

func (a *App) updateStatus() {
	left := a.opts.Title
	if idx, ok := a.grid.TopRowIndex(); ok {
		abs := idx
		if pr, ok := a.src.PageRange(); ok {
			abs += pr.FirstRowIndex
		}
		pos := "row " + humanize.Comma(int64(abs+1))
		if l, ok := a.src.(lener); ok {
			pos += " of " + humanize.Comma(int64(l.Len()))
		}
		left = strings.TrimSpace(left + "  " + pos)
	}

	var right []string
	if n := a.selection.Len(); n > 0 {
		right = append(right, fmt.Sprintf("%d selected", n))
	}
	if a.engine.Options().DisableVirtualization {
		right = append(right, "virtualization off")
	}
	if pages := a.src.PageCount(); pages > 1 {
		right = append(right, fmt.Sprintf("page %d/%d", a.src.Page()+1, pages))
	}
	a.status.SetText(left, strings.Join(right, " · "))
}
