// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/viewer/runner.go
// Summary: Runs a viewer App inside a local tcell screen.

package viewer

import (
	"fmt"
	"sync"

	"github.com/framegrace/texelgrid/texelui/core"
	"github.com/gdamore/tcell/v2"
)

// Runnable is what Run drives: a renderable surface with its own lifetime.
type Runnable interface {
	Resize(w, h int)
	Render() [][]core.Cell
	HandleKey(ev *tcell.EventKey) bool
	HandleMouse(ev *tcell.EventMouse) bool
	SetRefreshNotifier(ch chan<- bool)
	// Run blocks until Stop is called.
	Run() error
	Stop()
}

var screenFactory = tcell.NewScreen

// SetScreenFactory overrides the screen factory used by Run. Passing nil restores the default.
func SetScreenFactory(factory func() (tcell.Screen, error)) {
	if factory == nil {
		screenFactory = tcell.NewScreen
		return
	}
	screenFactory = factory
}

// Run drives app on a fresh screen until Ctrl-C or until the app stops.
func Run(app Runnable) error {
	screen, err := screenFactory()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.Clear()
	screen.EnableMouse()
	defer screen.DisableMouse()

	width, height := screen.Size()
	app.Resize(width, height)
	refreshCh := make(chan bool, 1)
	app.SetRefreshNotifier(refreshCh)

	draw := func() {
		core.Blit(screen, 0, 0, app.Render())
		screen.Show()
	}

	// Helper goroutines finish before the screen is torn down.
	done := make(chan struct{})
	var wg sync.WaitGroup
	defer func() {
		close(done)
		wg.Wait()
	}()
	wake := func() {
		select {
		case <-done:
		default:
			screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
	}

	runErr := make(chan error, 1)
	wg.Add(2)
	go func() {
		defer wg.Done()
		runErr <- app.Run()
		// wake PollEvent so the loop sees runErr
		wake()
	}()
	defer app.Stop()

	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			case <-refreshCh:
				wake()
			}
		}
	}()

	draw()

	for {
		select {
		case err := <-runErr:
			return err
		default:
		}

		ev := screen.PollEvent()
		switch tev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			draw()
		case *tcell.EventResize:
			w, h := tev.Size()
			app.Resize(w, h)
			screen.Sync()
			draw()
		case *tcell.EventKey:
			if tev.Key() == tcell.KeyCtrlC {
				return nil
			}
			if app.HandleKey(tev) {
				draw()
			}
		case *tcell.EventMouse:
			if app.HandleMouse(tev) {
				draw()
			}
		}
	}
}
