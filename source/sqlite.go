// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: source/sqlite.go
// Summary: Paged row source over a SQLite table. Only the current page is
// held in memory; page changes run a LIMIT/OFFSET query.

package source

import (
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/framegrace/texelgrid/virtual"

	_ "modernc.org/sqlite"
)

// DefaultSQLitePageSize is used when OpenSQLite gets a page size <= 0.
const DefaultSQLitePageSize = 1000

// SQLiteSource serves one table of a SQLite database page by page.
type SQLiteSource struct {
	*ColumnSet

	db       *sql.DB
	table    string
	total    int
	pageSize int
	page     int

	rows  []virtual.Row
	index map[string]int
}

// OpenSQLite opens table in the database at path. An empty table name
// selects the first user table in name order.
func OpenSQLite(path, table string, pageSize int) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, loadError(path, fmt.Errorf("failed to open database: %w", err))
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, loadError(path, fmt.Errorf("failed to connect to database: %w", err))
	}
	src, err := newSQLiteSource(db, table, pageSize)
	if err != nil {
		db.Close()
		return nil, loadError(path, err)
	}
	return src, nil
}

// sqliteDSN builds a read-only file: URI. The path is escaped so '?', '#'
// and '%' in file names are not taken as URI syntax.
func sqliteDSN(path string) string {
	u := url.URL{Path: filepath.ToSlash(path)}
	return "file:" + u.EscapedPath() + "?_pragma=query_only(1)"
}

func newSQLiteSource(db *sql.DB, table string, pageSize int) (*SQLiteSource, error) {
	if pageSize <= 0 {
		pageSize = DefaultSQLitePageSize
	}
	tables, err := Tables(db)
	if err != nil {
		return nil, err
	}
	if table == "" {
		if len(tables) == 0 {
			return nil, ErrNoTable
		}
		table = tables[0]
	} else if !contains(tables, table) {
		return nil, fmt.Errorf("%q: %w", table, ErrNoTable)
	}

	columns, err := tableColumns(db, table)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%q: %w", table, ErrEmptyTable)
	}

	s := &SQLiteSource{
		ColumnSet: NewColumnSet(columns),
		db:        db,
		table:     table,
		pageSize:  pageSize,
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM " + quoteIdent(table)).Scan(&s.total); err != nil {
		return nil, fmt.Errorf("count rows of %q: %w", table, err)
	}
	if err := s.loadPage(); err != nil {
		return nil, err
	}

	records := make([]Record, len(s.rows))
	for i, r := range s.rows {
		records[i] = r.Model.(Record)
	}
	s.ColumnSet = NewColumnSet(AutoWidths(columns, records))
	log.Printf("Grid: Opened table %q, %d rows, %d columns", table, s.total, len(columns))
	return s, nil
}

// Tables lists the user tables of db in name order.
func Tables(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list tables: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func tableColumns(db *sql.DB, table string) ([]virtual.Column, error) {
	rows, err := db.Query("SELECT name, type FROM pragma_table_info(?)", table)
	if err != nil {
		return nil, fmt.Errorf("columns of %q: %w", table, err)
	}
	defer rows.Close()

	var columns []virtual.Column
	for rows.Next() {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			return nil, fmt.Errorf("columns of %q: %w", table, err)
		}
		col := virtual.Column{Field: name, HeaderName: name}
		if numericType(typ) {
			col.Align = virtual.AlignRight
		}
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

func numericType(typ string) bool {
	t := strings.ToUpper(typ)
	for _, k := range []string{"INT", "REAL", "FLOA", "DOUB", "NUM", "DEC"} {
		if strings.Contains(t, k) {
			return true
		}
	}
	return false
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Table returns the name of the served table.
func (s *SQLiteSource) Table() string { return s.table }

// Columns returns the column set.
func (s *SQLiteSource) Columns() *ColumnSet { return s.ColumnSet }

// Len is the number of rows in the table.
func (s *SQLiteSource) Len() int { return s.total }

// Rows returns the rows of the current page.
func (s *SQLiteSource) Rows() []virtual.Row { return s.rows }

// PageRange returns the absolute index range of the current page.
func (s *SQLiteSource) PageRange() (virtual.PageRange, bool) {
	first := s.page * s.pageSize
	return virtual.PageRange{FirstRowIndex: first, LastRowIndex: first + len(s.rows) - 1}, true
}

// RowHeight is one cell for every row.
func (s *SQLiteSource) RowHeight(string) int { return 1 }

// Record returns the model of a row on the current page.
func (s *SQLiteSource) Record(id string) (Record, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.rows[i].Model.(Record), true
}

// Page returns the current page number.
func (s *SQLiteSource) Page() int { return s.page }

// PageCount returns the number of pages; an empty table has one.
func (s *SQLiteSource) PageCount() int {
	return max((s.total+s.pageSize-1)/s.pageSize, 1)
}

// SetPage loads page n, clamped to the available pages.
func (s *SQLiteSource) SetPage(n int) error {
	n = min(max(n, 0), s.PageCount()-1)
	if n == s.page && s.rows != nil {
		return nil
	}
	prev := s.page
	s.page = n
	if err := s.loadPage(); err != nil {
		s.page = prev
		return err
	}
	return nil
}

// Close closes the database.
func (s *SQLiteSource) Close() error { return s.db.Close() }

// loadPage reads the current page. Row ids are absolute row numbers.
func (s *SQLiteSource) loadPage() error {
	fields := s.Fields()
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = quoteIdent(f)
	}
	query := fmt.Sprintf("SELECT %s FROM %s LIMIT ? OFFSET ?", strings.Join(quoted, ", "), quoteIdent(s.table))
	first := s.page * s.pageSize
	rows, err := s.db.Query(query, s.pageSize, first)
	if err != nil {
		return fmt.Errorf("load page %d of %q: %w", s.page, s.table, err)
	}
	defer rows.Close()

	values := make([]any, len(fields))
	ptrs := make([]any, len(fields))
	for i := range values {
		ptrs[i] = &values[i]
	}
	page := make([]virtual.Row, 0, s.pageSize)
	index := make(map[string]int, s.pageSize)
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return fmt.Errorf("load page %d of %q: %w", s.page, s.table, err)
		}
		rec := make(Record, len(fields))
		for i, f := range fields {
			rec[f] = formatValue(values[i])
		}
		id := strconv.Itoa(first + len(page))
		index[id] = len(page)
		page = append(page, virtual.Row{ID: id, Model: rec})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load page %d of %q: %w", s.page, s.table, err)
	}
	s.rows, s.index = page, index
	return nil
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
