// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: source/totals.go
// Summary: Column totals for the pinned summary row.

package source

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/framegrace/texelgrid/virtual"
)

// TotalsRowID identifies the summary row built by Totals.
const TotalsRowID = "__totals__"

// Totals sums every right-aligned column over rows. Cells that do not
// parse as numbers are skipped; a column without any number stays empty.
// The first non-numeric column carries label.
func Totals(rows []virtual.Row, columns []virtual.Column, label string) virtual.Row {
	rec := Record{}
	labelled := false
	for _, c := range columns {
		if c.Align != virtual.AlignRight {
			if !labelled {
				rec[c.Field] = label
				labelled = true
			}
			continue
		}
		sum, n := 0.0, 0
		for _, r := range rows {
			m, ok := r.Model.(Record)
			if !ok {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(m[c.Field]), 64)
			if err != nil {
				continue
			}
			sum += v
			n++
		}
		if n > 0 {
			rec[c.Field] = humanize.CommafWithDigits(sum, 2)
		}
	}
	return virtual.Row{ID: TotalsRowID, Model: rec}
}
