// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/grid.go
// Summary: Conversion of the grid section into engine options.

package config

import "github.com/framegrace/texelgrid/virtual"

// GridOptions builds engine options from the grid section. Missing keys
// keep virtual.DefaultOptions values.
func GridOptions(cfg Config) virtual.Options {
	def := virtual.DefaultOptions()
	return virtual.Options{
		RowBuffer:             max(cfg.GetInt(SectionGrid, "row_buffer", def.RowBuffer), 0),
		ColumnBuffer:          max(cfg.GetInt(SectionGrid, "column_buffer", def.ColumnBuffer), 0),
		RowThreshold:          max(cfg.GetInt(SectionGrid, "row_threshold", def.RowThreshold), 0),
		ColumnThreshold:       max(cfg.GetInt(SectionGrid, "column_threshold", def.ColumnThreshold), 0),
		DisableVirtualization: cfg.GetBool(SectionGrid, "disable_virtualization", false),
		AutoHeight:            cfg.GetBool(SectionGrid, "auto_height", false),
		DefaultRowHeight:      max(cfg.GetInt(SectionGrid, "row_height", def.DefaultRowHeight), 1),
		PinnedRowPosition:     virtual.ParseAnchor(cfg.GetString(SectionGrid, "pinned_row_position", "bottom")),
	}
}

// PinnedElevation returns the elevation used to tint pinned columns.
func PinnedElevation(cfg Config) float64 {
	return cfg.GetFloat(SectionGrid, "pinned_elevation", 2)
}

// PinnedColumns reads pin_left and pin_right field lists from the grid
// section.
func PinnedColumns(cfg Config) virtual.PinnedColumns {
	return virtual.PinnedColumns{
		Left:  cfg.GetStrings(SectionGrid, "pin_left"),
		Right: cfg.GetStrings(SectionGrid, "pin_right"),
	}
}
