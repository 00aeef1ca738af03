// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package source

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/framegrace/texelgrid/virtual"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	in := "name,,name\nalpha,1\nbeta,2,b,extra\n"
	tbl, err := ReadCSV(strings.NewReader(in), 0)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	fields := tbl.Fields()
	if strings.Join(fields, ",") != "name,B,C" {
		t.Errorf("fields = %v", fields)
	}
	rec, _ := tbl.Record("0")
	if rec["name"] != "alpha" || rec["B"] != "1" || rec["C"] != "" {
		t.Errorf("short record = %v", rec)
	}
	rec, _ = tbl.Record("1")
	if rec["C"] != "b" || len(rec) != 3 {
		t.Errorf("long record = %v", rec)
	}

	if _, err := ReadCSV(strings.NewReader(""), 0); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("empty input error = %v, want ErrEmptyTable", err)
	}
}

func TestLoadCSV_Missing(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"), 0)
	var le *LoadError
	if !errors.As(err, &le) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want LoadError wrapping ErrNotExist", err)
	}
}

func TestColumnLetter(t *testing.T) {
	for i, want := range map[int]string{0: "A", 25: "Z", 26: "AA", 27: "AB", 701: "ZZ", 702: "AAA"} {
		if got := columnLetter(i); got != want {
			t.Errorf("columnLetter(%d) = %q, want %q", i, got, want)
		}
	}
}

func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "City")
	f.SetCellValue("Sheet1", "B1", "Population")
	f.SetCellValue("Sheet1", "A2", "Lisbon")
	f.SetCellValue("Sheet1", "B2", 545000)
	f.SetCellValue("Sheet1", "A3", "Porto")
	f.SetCellValue("Sheet1", "B3", 232000)
	if _, err := f.NewSheet("Empty"); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "cities.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func TestLoadXLSX(t *testing.T) {
	path := writeWorkbook(t)

	tbl, err := LoadXLSX(path, "", 0)
	if err != nil {
		t.Fatalf("LoadXLSX: %v", err)
	}
	if tbl.Len() != 2 || strings.Join(tbl.Fields(), ",") != "City,Population" {
		t.Fatalf("rows=%d fields=%v", tbl.Len(), tbl.Fields())
	}
	rec, _ := tbl.Record("1")
	if rec["City"] != "Porto" || rec["Population"] != "232000" {
		t.Errorf("record = %v", rec)
	}

	if _, err := LoadXLSX(path, "Missing", 0); !errors.Is(err, ErrNoSheet) {
		t.Errorf("missing sheet error = %v", err)
	}
	if _, err := LoadXLSX(path, "Empty", 0); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("empty sheet error = %v", err)
	}
}

func writeDatabase(t *testing.T, n int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if _, err := db.Exec(`CREATE TABLE items (id INTEGER PRIMARY KEY, "label" TEXT, price REAL, note BLOB)`); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`CREATE TABLE "a""quoted" (x TEXT)`); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < n; i++ {
		if _, err := db.Exec(`INSERT INTO items (label, price, note) VALUES (?, ?, ?)`,
			fmt.Sprintf("item-%03d", i), float64(i)/2, nil); err != nil {
			t.Fatal(err)
		}
	}
	return path
}

func TestSQLiteSource_Paging(t *testing.T) {
	path := writeDatabase(t, 45)
	src, err := OpenSQLite(path, "items", 20)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer src.Close()

	if src.Len() != 45 || src.PageCount() != 3 {
		t.Fatalf("len=%d pages=%d", src.Len(), src.PageCount())
	}
	cols := src.VisibleColumns()
	if len(cols) != 4 || cols[0].Field != "id" {
		t.Fatalf("columns = %+v", cols)
	}
	if cols[2].Align != virtual.AlignRight || cols[1].Align != virtual.AlignLeft {
		t.Errorf("numeric columns should be right aligned: %+v", cols)
	}

	if err := src.SetPage(2); err != nil {
		t.Fatal(err)
	}
	rows := src.Rows()
	if len(rows) != 5 || rows[0].ID != "40" {
		t.Fatalf("last page: %d rows, first id %q", len(rows), rows[0].ID)
	}
	rec, ok := src.Record("44")
	if !ok || rec["label"] != "item-044" || rec["price"] != "22" || rec["note"] != "" {
		t.Errorf("record 44 = %v", rec)
	}
	pr, _ := src.PageRange()
	if pr.FirstRowIndex != 40 || pr.LastRowIndex != 44 {
		t.Errorf("PageRange = %+v", pr)
	}
}

func TestSQLiteSource_PathWithURICharacters(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "q?#1 %20")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "data #2.db")
	if err := os.Rename(writeDatabase(t, 3), path); err != nil {
		t.Fatal(err)
	}

	src, err := OpenSQLite(path, "items", 0)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer src.Close()
	if src.Len() != 3 {
		t.Errorf("len = %d, want 3", src.Len())
	}
	if _, err := src.db.Exec(`DELETE FROM items`); err == nil {
		t.Error("write succeeded on a query-only connection")
	}
}

func TestSQLiteDSN(t *testing.T) {
	cases := map[string]string{
		"/tmp/data.db": "file:/tmp/data.db?_pragma=query_only(1)",
		"rel/a b.db":   "file:rel/a%20b.db?_pragma=query_only(1)",
		"/x/q?#%.db":   "file:/x/q%3F%23%25.db?_pragma=query_only(1)",
	}
	for in, want := range cases {
		if got := sqliteDSN(in); got != want {
			t.Errorf("sqliteDSN(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSQLiteSource_Tables(t *testing.T) {
	path := writeDatabase(t, 1)

	src, err := OpenSQLite(path, "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if src.Table() != `a"quoted` {
		t.Errorf("default table = %q", src.Table())
	}
	src.Close()

	if _, err := OpenSQLite(path, "missing", 0); !errors.Is(err, ErrNoTable) {
		t.Errorf("missing table error = %v", err)
	}
}

func TestScanDir(t *testing.T) {
	root := t.TempDir()
	write := func(rel, content string) {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("main.go", "package main\n\nfunc main() {}\n")
	write("notes/readme.md", "# Title\n")
	write(".hidden/secret.txt", "x")
	write("node_modules/lib/index.js", "module.exports = 1\n")
	write("blob.bin", "\x00\x01\x02\x03")

	tbl, err := ScanDir(root, ScanOptions{})
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	if tbl.Len() != 3 {
		t.Fatalf("files = %d, want 3 (hidden and vendor skipped): %v", tbl.Len(), tbl.Rows())
	}
	rec, ok := tbl.Record("main.go")
	if !ok || rec["language"] != "Go" || rec["bytes"] != "29" {
		t.Errorf("main.go = %v", rec)
	}
	if rec, _ := tbl.Record("blob.bin"); rec["language"] != "binary" {
		t.Errorf("blob.bin language = %q", rec["language"])
	}
	if _, ok := tbl.Record("notes/readme.md"); !ok {
		t.Error("nested file missing")
	}

	all, err := ScanDir(root, ScanOptions{Hidden: true, Vendor: true, MaxFiles: 4})
	if err != nil {
		t.Fatal(err)
	}
	if all.Len() != 4 {
		t.Errorf("MaxFiles=4 gave %d files", all.Len())
	}

	lines, err := FilePreview(filepath.Join(root, "main.go"), 2)
	if err != nil || len(lines) != 2 || lines[0] != "package main" {
		t.Errorf("FilePreview = %q, %v", lines, err)
	}
}

func TestOpen_Dispatch(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "t.csv")
	os.WriteFile(csvPath, []byte("a,b\n1,2\n"), 0o644)
	src, err := Open(csvPath, OpenOptions{})
	if err != nil || len(src.Rows()) != 1 {
		t.Fatalf("Open csv: %v", err)
	}

	txt := filepath.Join(dir, "t.txt")
	os.WriteFile(txt, []byte("x"), 0o644)
	if _, err := Open(txt, OpenOptions{}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("txt error = %v", err)
	}

	dirSrc, err := Open(dir, OpenOptions{PageSize: 1})
	if err != nil || dirSrc.PageCount() != 2 {
		t.Errorf("Open dir: pages=%d err=%v", dirSrc.PageCount(), err)
	}
}
