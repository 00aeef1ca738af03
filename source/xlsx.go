// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package source

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads a worksheet whose first row is the header. An empty sheet
// name selects the first sheet of the workbook.
func LoadXLSX(path, sheet string, pageSize int) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, loadError(path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, loadError(path, ErrNoSheet)
	}
	if sheet == "" {
		sheet = sheets[0]
	} else if !contains(sheets, sheet) {
		return nil, loadError(path, fmt.Errorf("%q: %w", sheet, ErrNoSheet))
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, loadError(path, fmt.Errorf("sheet %q: %w", sheet, err))
	}
	if len(rows) == 0 {
		return nil, loadError(path, fmt.Errorf("sheet %q: %w", sheet, ErrEmptyTable))
	}
	t, err := tableFromGrid(rows[0], rows[1:], pageSize)
	if err != nil {
		return nil, loadError(path, fmt.Errorf("sheet %q: %w", sheet, err))
	}
	return t, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
