// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelgrid/main.go
// Summary: texelgrid CLI: interactive table viewer and headless frame dump.

package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/framegrace/texelgrid/config"
	"github.com/framegrace/texelgrid/internal/viewer"
	"github.com/framegrace/texelgrid/source"
	"github.com/framegrace/texelgrid/virtual"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

type flags struct {
	table      string
	sheet      string
	pinLeft    []string
	pinRight   []string
	pageSize   int
	noVirt     bool
	totals     bool
	hidden     bool
	maxFiles   int
	logFile    string
	configPath string
	width      int
	height     int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:          "texelgrid",
		Short:        "Browse large tables in the terminal",
		SilenceUsage: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&f.table, "table", "", "SQLite table to open (default: first table)")
	pf.StringVar(&f.sheet, "sheet", "", "Worksheet to open (default: first sheet)")
	pf.StringSliceVar(&f.pinLeft, "pin-left", nil, "Fields pinned to the left edge")
	pf.StringSliceVar(&f.pinRight, "pin-right", nil, "Fields pinned to the right edge")
	pf.IntVar(&f.pageSize, "page-size", 0, "Rows per page (default: config page_size)")
	pf.BoolVar(&f.noVirt, "no-virtualization", false, "Render every row and column")
	pf.BoolVar(&f.totals, "totals", false, "Pin a row with the sums of numeric columns")
	pf.BoolVar(&f.hidden, "hidden", false, "Include dot files when browsing a directory")
	pf.IntVar(&f.maxFiles, "max-files", 0, "Stop scanning a directory after this many files")
	pf.StringVar(&f.logFile, "log-file", "", "Write logs to this file")
	pf.StringVar(&f.configPath, "config", "", "Path of the config file")

	view := &cobra.Command{
		Use:   "view <path>",
		Short: "Open a table, workbook, CSV file or directory interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(f, args[0])
		},
	}

	dump := &cobra.Command{
		Use:   "dump <path>",
		Short: "Render one frame and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd.OutOrStdout(), f, args[0])
		},
	}
	dump.Flags().IntVar(&f.width, "width", 0, "Frame width (default: terminal width)")
	dump.Flags().IntVar(&f.height, "height", 0, "Frame height (default: terminal height)")

	root.AddCommand(view, dump)
	return root
}

// setup configures logging and config, then opens the source.
func setup(f *flags, path string) (*viewer.App, func(), error) {
	closeLog, err := setupLog(f.logFile)
	if err != nil {
		return nil, nil, err
	}
	if f.configPath != "" {
		config.UsePath(f.configPath)
	}
	cfg := config.Get()
	if err := config.Err(); err != nil {
		log.Printf("Grid: config: %v", err)
	}

	pageSize := f.pageSize
	if pageSize <= 0 {
		pageSize = cfg.GetInt(config.SectionGrid, "page_size", source.DefaultSQLitePageSize)
	}
	src, err := source.Open(path, source.OpenOptions{
		Table:    f.table,
		Sheet:    f.sheet,
		PageSize: pageSize,
		Scan:     source.ScanOptions{Hidden: f.hidden, MaxFiles: f.maxFiles},
	})
	if err != nil {
		closeLog()
		return nil, nil, err
	}

	opts := viewer.Options{
		Title:            filepath.Base(path),
		Pinned:           virtual.PinnedColumns{Left: f.pinLeft, Right: f.pinRight},
		NoVirtualization: f.noVirt,
		Totals:           f.totals,
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		opts.Root = path
	}
	app := viewer.New(src, cfg, opts)
	cleanup := func() {
		app.Stop()
		if err := src.Close(); err != nil {
			log.Printf("Grid: close: %v", err)
		}
		closeLog()
	}
	return app, cleanup, nil
}

func setupLog(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return func() { _ = file.Close() }, nil
}

func runView(f *flags, path string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("view needs a terminal; use dump for redirected output")
	}
	app, cleanup, err := setup(f, path)
	if err != nil {
		return err
	}
	defer cleanup()
	return viewer.Run(app)
}

func runDump(w io.Writer, f *flags, path string) error {
	app, cleanup, err := setup(f, path)
	if err != nil {
		return err
	}
	defer cleanup()
	width, height := dumpSize(f.width, f.height)
	return viewer.Dump(w, app, width, height)
}

// dumpSize fills unset dimensions from the terminal, or the classic 80x24
// when stdout is not a terminal.
func dumpSize(width, height int) (int, int) {
	if width > 0 && height > 0 {
		return width, height
	}
	tw, th := fallbackWidth, fallbackHeight
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, h, err := term.GetSize(fd); err == nil && w > 0 && h > 0 {
			tw, th = w, h
		}
	}
	if width <= 0 {
		width = tw
	}
	if height <= 0 {
		height = th
	}
	return width, height
}
