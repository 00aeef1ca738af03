// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: source/files.go
// Summary: Directory listing source. Each file becomes a row with its size,
// modification time and detected language.

package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/framegrace/texelgrid/virtual"
	"github.com/go-enry/go-enry/v2"
)

// sniffSize is how much of a file is read for language detection.
const sniffSize = 8 << 10

// ScanOptions controls ScanDir.
type ScanOptions struct {
	// MaxFiles stops the walk after this many files; 0 means no limit.
	MaxFiles int
	// Hidden includes dot files and dot directories.
	Hidden bool
	// Vendor includes vendored and generated trees (node_modules, vendor/).
	Vendor   bool
	PageSize int
}

// FileColumns are the columns produced by ScanDir.
var FileColumns = []virtual.Column{
	{Field: "path", HeaderName: "Path"},
	{Field: "language", HeaderName: "Language"},
	{Field: "size", HeaderName: "Size", Align: virtual.AlignRight},
	{Field: "bytes", HeaderName: "Bytes", Align: virtual.AlignRight},
	{Field: "modified", HeaderName: "Modified"},
	{Field: "mode", HeaderName: "Mode"},
}

var errStopWalk = errors.New("stop walk")

// ScanDir lists the regular files under root. Row ids are slash-separated
// paths relative to root.
func ScanDir(root string, opts ScanOptions) (*Table, error) {
	var records []Record
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		if skip(rel, d, opts) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		records = append(records, Record{
			"path":     rel,
			"language": detectLanguage(path, rel),
			"size":     humanize.Bytes(uint64(info.Size())),
			"bytes":    fmt.Sprint(info.Size()),
			"modified": info.ModTime().Format("2006-01-02 15:04"),
			"mode":     info.Mode().String(),
		})
		if opts.MaxFiles > 0 && len(records) >= opts.MaxFiles {
			return errStopWalk
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopWalk) {
		return nil, loadError(root, err)
	}
	return NewTable(AutoWidths(FileColumns, records), records, "path", opts.PageSize), nil
}

func skip(rel string, d fs.DirEntry, opts ScanOptions) bool {
	if !opts.Hidden && strings.HasPrefix(d.Name(), ".") {
		return true
	}
	if !opts.Vendor && d.IsDir() && enry.IsVendor(rel+"/") {
		return true
	}
	return false
}

// detectLanguage names the language of a file from its name and first
// bytes. Binary files report "binary"; unknown text reports "".
func detectLanguage(path, rel string) string {
	head, err := readHead(path, sniffSize)
	if err != nil {
		return ""
	}
	if enry.IsBinary(head) {
		return "binary"
	}
	return enry.GetLanguage(filepath.Base(rel), head)
}

func readHead(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	buf := make([]byte, n)
	m, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:m], nil
}

// FilePreview returns up to maxLines lines from the start of a text file.
func FilePreview(path string, maxLines int) ([]string, error) {
	head, err := readHead(path, sniffSize)
	if err != nil {
		return nil, err
	}
	if enry.IsBinary(head) {
		return nil, nil
	}
	var lines []string
	sc := bufio.NewScanner(strings.NewReader(string(head)))
	for sc.Scan() && len(lines) < maxLines {
		lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
	}
	return lines, sc.Err()
}
