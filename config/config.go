// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Configuration store for texelgrid, backed by texelgrid.json.

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const configName = "texelgrid.json"

// Config stores configuration sections as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

var (
	mu       sync.RWMutex
	once     sync.Once
	current  Config
	loadErr  error
	pathOver string
)

// UsePath makes the store read and write path instead of the per-user
// file. It must be called before the first access; later calls take effect
// on the next Reload.
func UsePath(path string) {
	mu.Lock()
	defer mu.Unlock()
	pathOver = path
}

// Err returns the most recent load error.
func Err() error {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return loadErr
}

// Get returns a copy of the active configuration.
func Get() Config {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return Clone(current)
}

// Reload re-reads the configuration file.
func Reload() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	loadErr = loadLocked()
	return loadErr
}

// Set replaces the in-memory configuration. Missing defaults are filled in.
func Set(cfg Config) {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	if cfg == nil {
		cfg = make(Config)
	}
	current = Clone(cfg)
	applyDefaults(current)
}

// Save persists the in-memory configuration.
func Save() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	path, err := configPath()
	if err != nil {
		return err
	}
	return writeConfig(path, current)
}

// Clone returns a copy of the config and its sections. Values inside a
// section are shared.
func Clone(cfg Config) Config {
	if cfg == nil {
		return nil
	}
	clone := make(Config, len(cfg))
	for name, raw := range cfg {
		var section map[string]interface{}
		switch v := raw.(type) {
		case Section:
			section = v
		case map[string]interface{}:
			section = v
		default:
			clone[name] = v
			continue
		}
		out := make(Section, len(section))
		for key, value := range section {
			out[key] = value
		}
		clone[name] = out
	}
	return clone
}

func initStore() {
	mu.Lock()
	defer mu.Unlock()
	current = make(Config)
	loadErr = loadLocked()
}

func readConfig(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

func writeConfig(path string, cfg Config) error {
	if cfg == nil {
		cfg = make(Config)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
