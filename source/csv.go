// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/framegrace/texelgrid/virtual"
)

// LoadCSV reads a CSV file whose first record is the header.
func LoadCSV(path string, pageSize int) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, loadError(path, err)
	}
	defer f.Close()

	t, err := ReadCSV(f, pageSize)
	if err != nil {
		return nil, loadError(path, err)
	}
	return t, nil
}

// ReadCSV builds a table from CSV input. Short records are padded with
// empty cells; extra cells are dropped.
func ReadCSV(r io.Reader, pageSize int) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyTable
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	var records [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	return tableFromGrid(header, records, pageSize)
}

// tableFromGrid builds a table from a header row and data rows. Blank or
// duplicate header names are replaced by their column letter.
func tableFromGrid(header []string, rows [][]string, pageSize int) (*Table, error) {
	if len(header) == 0 {
		return nil, ErrEmptyTable
	}
	columns := make([]virtual.Column, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, name := range header {
		field := name
		if _, dup := seen[field]; dup || field == "" {
			field = columnLetter(i)
		}
		seen[field] = struct{}{}
		columns[i] = virtual.Column{Field: field, HeaderName: field}
	}

	records := make([]Record, len(rows))
	for i, row := range rows {
		rec := make(Record, len(columns))
		for j, c := range columns {
			if j < len(row) {
				rec[c.Field] = row[j]
			} else {
				rec[c.Field] = ""
			}
		}
		records[i] = rec
	}
	return NewTable(AutoWidths(columns, records), records, "", pageSize), nil
}

// columnLetter returns the spreadsheet letter of a zero-based column.
func columnLetter(i int) string {
	name := ""
	for i++; i > 0; i = (i - 1) / 26 {
		name = string(rune('A'+(i-1)%26)) + name
	}
	return name
}
