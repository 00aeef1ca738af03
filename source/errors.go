// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package source

import (
	"errors"
	"fmt"
)

// ErrNoSheet indicates the requested worksheet does not exist.
var ErrNoSheet = errors.New("sheet not found")

// ErrNoTable indicates the requested database table does not exist.
var ErrNoTable = errors.New("table not found")

// ErrEmptyTable indicates the input has no header row or no columns.
var ErrEmptyTable = errors.New("table has no columns")

// ErrUnsupported indicates a file type no loader understands.
var ErrUnsupported = errors.New("unsupported source type")

// LoadError reports a failure while loading a source.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func loadError(src string, err error) error {
	if err == nil {
		return nil
	}
	return &LoadError{Source: src, Err: err}
}
