// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OpenOptions selects what Open loads from a path.
type OpenOptions struct {
	// Table names the SQLite table; empty picks the first.
	Table string
	// Sheet names the worksheet; empty picks the first.
	Sheet    string
	PageSize int
	Scan     ScanOptions
}

// Open picks a loader from the path: directories are scanned, and files are
// matched by extension.
func Open(path string, opts OpenOptions) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, loadError(path, err)
	}
	if info.IsDir() {
		scan := opts.Scan
		if scan.PageSize == 0 {
			scan.PageSize = opts.PageSize
		}
		return ScanDir(path, scan)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".db", ".sqlite", ".sqlite3":
		return OpenSQLite(path, opts.Table, opts.PageSize)
	case ".xlsx", ".xlsm":
		return LoadXLSX(path, opts.Sheet, opts.PageSize)
	case ".csv":
		return LoadCSV(path, opts.PageSize)
	default:
		return nil, loadError(path, fmt.Errorf("%q: %w", ext, ErrUnsupported))
	}
}
