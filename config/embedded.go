// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/embedded.go
// Summary: Parses the embedded default.json, the shipped configuration.

package config

import (
	_ "embed"
	"encoding/json"
	"log"
	"sync"
)

//go:embed default.json
var defaultJSON []byte

var (
	embeddedOnce sync.Once
	embedded     Config
)

// defaultConfig returns a fresh copy of the embedded defaults.
func defaultConfig() Config {
	embeddedOnce.Do(func() {
		if err := json.Unmarshal(defaultJSON, &embedded); err != nil {
			log.Printf("Config: Embedded defaults are invalid: %v", err)
			embedded = make(Config)
		}
	})
	return Clone(embedded)
}
