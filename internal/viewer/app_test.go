// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package viewer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/framegrace/texelgrid/config"
	"github.com/framegrace/texelgrid/source"
	"github.com/framegrace/texelgrid/texelui/core"
	"github.com/framegrace/texelgrid/virtual"
	"github.com/gdamore/tcell/v2"
)

func salesTable(n, pageSize int) *source.Table {
	cols := []virtual.Column{
		{Field: "name", HeaderName: "Name", Width: 8},
		{Field: "qty", HeaderName: "Qty", Width: 6, Align: virtual.AlignRight},
		{Field: "city", HeaderName: "City", Width: 10},
	}
	recs := make([]source.Record, n)
	for i := range recs {
		recs[i] = source.Record{"name": fmt.Sprintf("item%d", i), "qty": fmt.Sprint(i), "city": "Lyon"}
	}
	return source.NewTable(cols, recs, "", pageSize)
}

func key(a *App, k tcell.Key, r rune) bool {
	return a.HandleKey(tcell.NewEventKey(k, r, tcell.ModNone))
}

func TestSnapshotLayout(t *testing.T) {
	app := New(salesTable(30, 0), config.Config{}, Options{Title: "sales.csv"})
	lines, err := Snapshot(app, 30, 8)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(lines[0], "Name") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "item0") {
		t.Errorf("first row = %q", lines[1])
	}
	if !strings.HasPrefix(lines[7], "sales.csv  row 1 of 30") {
		t.Errorf("status = %q", lines[7])
	}
}

func TestSnapshotRejectsEmptySize(t *testing.T) {
	app := New(salesTable(1, 0), config.Config{}, Options{})
	if _, err := Snapshot(app, 0, 5); err == nil {
		t.Fatal("expected an error for a zero width")
	}
}

func TestDumpWritesEveryLine(t *testing.T) {
	app := New(salesTable(3, 0), config.Config{}, Options{})
	var buf bytes.Buffer
	if err := Dump(&buf, app, 30, 5); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 5 {
		t.Errorf("dumped %d lines, want 5", got)
	}
}

func TestTotalsFollowPages(t *testing.T) {
	tbl := salesTable(20, 10)
	app := New(tbl, config.Config{}, Options{Totals: true})
	lines, err := Snapshot(app, 30, 8)
	if err != nil {
		t.Fatal(err)
	}
	// rows 0..9 sum to 45; the pinned row sits above the status line
	if !strings.HasPrefix(lines[6], "Total") || !strings.Contains(lines[6], "45") {
		t.Errorf("totals row = %q", lines[6])
	}
	if !strings.Contains(lines[7], "page 1/2") {
		t.Errorf("status = %q", lines[7])
	}

	key(app, tcell.KeyRune, ']')
	lines, _ = Snapshot(app, 30, 8)
	// rows 10..19 sum to 145
	if !strings.Contains(lines[6], "145") {
		t.Errorf("totals after page change = %q", lines[6])
	}
	if !strings.Contains(lines[7], "row 11 of 20") {
		t.Errorf("status after page change = %q", lines[7])
	}
}

func TestColumnEditingKeys(t *testing.T) {
	tbl := salesTable(5, 0)
	app := New(tbl, config.Config{}, Options{})
	if _, err := Snapshot(app, 40, 6); err != nil {
		t.Fatal(err)
	}

	if !key(app, tcell.KeyRune, '>') {
		t.Fatal("'>' not handled")
	}
	if w := tbl.VisibleColumns()[0].Width; w != 9 {
		t.Errorf("name width = %d, want 9", w)
	}
	if !app.HandleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModAlt)) {
		t.Fatal("Alt+Right not handled")
	}
	if got := strings.Join(tbl.Fields(), ","); got != "qty,name,city" {
		t.Errorf("order = %s", got)
	}
	lines, _ := Snapshot(app, 40, 6)
	if q, n := strings.Index(lines[0], "Qty"), strings.Index(lines[0], "Name"); q < 0 || n < q {
		t.Errorf("header after move = %q", lines[0])
	}
}

func TestDetailDescribesRecord(t *testing.T) {
	app := New(salesTable(5, 0), config.Config{}, Options{})
	app.Resize(40, 10)
	key(app, tcell.KeyEnter, 0)

	panels := app.Engine().DetailPanels()
	if len(panels) != 1 {
		t.Fatalf("panels = %d", len(panels))
	}
	text, ok := panels[0].Content.(string)
	if !ok || !strings.Contains(text, "Name: item0") || panels[0].Height != 3 {
		t.Errorf("detail = %#v height %d", panels[0].Content, panels[0].Height)
	}

	if !key(app, tcell.KeyRune, 'c') {
		t.Error("c should collapse open panels")
	}
	if len(app.Engine().DetailPanels()) != 0 {
		t.Error("panels left after collapse")
	}
	if key(app, tcell.KeyRune, 'c') {
		t.Error("c with nothing open should not be consumed")
	}
}

func TestDetailPreviewsFiles(t *testing.T) {
	dir := t.TempDir()
	src := "package main\n\nfunc main() {}\n"
	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	tbl, err := source.ScanDir(dir, source.ScanOptions{})
	if err != nil {
		t.Fatal(err)
	}
	app := New(tbl, config.Config{}, Options{Root: dir})
	app.Resize(60, 12)
	key(app, tcell.KeyEnter, 0)

	panels := app.Engine().DetailPanels()
	if len(panels) != 1 {
		t.Fatalf("panels = %d", len(panels))
	}
	cells, ok := panels[0].Content.([][]core.Cell)
	if !ok || len(cells) != 3 || panels[0].Height != 3 {
		t.Fatalf("preview = %#v", panels[0].Content)
	}
	var first strings.Builder
	for _, c := range cells[0] {
		first.WriteRune(c.Ch)
	}
	if first.String() != "package main" {
		t.Errorf("first preview line = %q", first.String())
	}
}

func TestPinnedFromConfigAndOptions(t *testing.T) {
	cfg := config.Config{config.SectionGrid: config.Section{"pin_left": []any{"city"}}}
	tbl := salesTable(3, 0)
	New(tbl, cfg, Options{})
	if got := tbl.PinnedColumns().Left; len(got) != 1 || got[0] != "city" {
		t.Errorf("config pinning = %v", got)
	}

	tbl = salesTable(3, 0)
	New(tbl, cfg, Options{Pinned: virtual.PinnedColumns{Right: []string{"name"}}})
	if p := tbl.PinnedColumns(); len(p.Left) != 0 || len(p.Right) != 1 {
		t.Errorf("flag pinning should replace config pinning, got %+v", p)
	}
}

func TestQuitStopsRun(t *testing.T) {
	app := New(salesTable(3, 0), config.Config{}, Options{NoVirtualization: true})
	if !app.Engine().Options().DisableVirtualization {
		t.Error("NoVirtualization ignored")
	}
	done := make(chan error, 1)
	go func() { done <- app.Run() }()
	key(app, tcell.KeyRune, 'q')
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	app.Stop()
}
