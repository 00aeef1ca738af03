// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values registered on every loaded configuration.

package config

// Section names.
const (
	SectionGrid  = "grid"
	SectionTheme = "theme"
)

func applyDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults(SectionGrid, Section{
		"row_buffer":             3,
		"column_buffer":          3,
		"row_threshold":          3,
		"column_threshold":       3,
		"row_height":             1,
		"auto_height":            false,
		"disable_virtualization": false,
		"pinned_row_position":    "bottom",
		"pinned_elevation":       2.0,
		"wheel_rows":             3,
		"wheel_columns":          3,
		"page_size":              1000,
	})
	cfg.RegisterDefaults(SectionTheme, Section{
		"syntax_style": "catppuccin-mocha",
	})
}
