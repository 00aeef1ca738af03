// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/viewer/runner_test.go
// Summary: Exercises the screen loop with a stub app on a simulation screen.

package viewer_test

import (
	"sync"
	"testing"
	"time"

	"github.com/framegrace/texelgrid/internal/viewer"
	"github.com/framegrace/texelgrid/texelui/core"
	"github.com/gdamore/tcell/v2"
)

type stubApp struct {
	mu          sync.Mutex
	renderCount int
	resizes     [][2]int
	keys        []*tcell.EventKey
	mice        int
	stopCalled  bool
	stopCh      chan struct{}
	runStarted  chan struct{}
	refresh     chan<- bool
}

func newStubApp() *stubApp {
	return &stubApp{
		stopCh:     make(chan struct{}),
		runStarted: make(chan struct{}),
	}
}

func (a *stubApp) Run() error {
	close(a.runStarted)
	<-a.stopCh
	return nil
}

func (a *stubApp) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopCalled {
		return
	}
	a.stopCalled = true
	close(a.stopCh)
}

func (a *stubApp) Resize(cols, rows int) {
	a.mu.Lock()
	a.resizes = append(a.resizes, [2]int{cols, rows})
	a.mu.Unlock()
}

func (a *stubApp) Render() [][]core.Cell {
	a.mu.Lock()
	a.renderCount++
	a.mu.Unlock()
	return [][]core.Cell{{{Ch: 'X'}}}
}

func (a *stubApp) HandleKey(ev *tcell.EventKey) bool {
	a.mu.Lock()
	a.keys = append(a.keys, ev)
	a.mu.Unlock()
	if ev.Key() == tcell.KeyRune && ev.Rune() == 'q' {
		a.Stop()
	}
	return true
}

func (a *stubApp) HandleMouse(*tcell.EventMouse) bool {
	a.mu.Lock()
	a.mice++
	a.mu.Unlock()
	return true
}

func (a *stubApp) SetRefreshNotifier(ch chan<- bool) { a.refresh = ch }

func (a *stubApp) renderCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.renderCount
}

func (a *stubApp) lastResize() (int, int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.resizes) == 0 {
		return 0, 0, false
	}
	last := a.resizes[len(a.resizes)-1]
	return last[0], last[1], true
}

func (a *stubApp) recordedKeys() []*tcell.EventKey {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*tcell.EventKey, len(a.keys))
	copy(out, a.keys)
	return out
}

func (a *stubApp) mouseCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mice
}

func (a *stubApp) waitRunStarted(t *testing.T) {
	t.Helper()
	select {
	case <-a.runStarted:
	case <-time.After(time.Second):
		t.Fatal("app.Run was not invoked")
	}
}

func (a *stubApp) requestRefresh() {
	if a.refresh == nil {
		return
	}
	select {
	case a.refresh <- true:
	default:
	}
}

func startRun(t *testing.T, app *stubApp) (tcell.SimulationScreen, chan error) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	viewer.SetScreenFactory(func() (tcell.Screen, error) {
		return screen, nil
	})
	t.Cleanup(func() { viewer.SetScreenFactory(nil) })

	errCh := make(chan error, 1)
	go func() {
		errCh <- viewer.Run(app)
	}()
	app.waitRunStarted(t)
	return screen, errCh
}

func waitExit(t *testing.T, errCh chan error) {
	t.Helper()
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("run did not exit")
	}
}

func TestRunHandlesInputRefreshAndShutdown(t *testing.T) {
	app := newStubApp()
	screen, errCh := startRun(t, app)

	waitFor(func() bool { return app.renderCalls() > 0 }, 500*time.Millisecond, t, "initial render")
	before := app.renderCalls()

	app.requestRefresh()
	waitFor(func() bool { return app.renderCalls() > before }, 500*time.Millisecond, t, "render after refresh")

	screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'x', 0))
	waitFor(func() bool {
		keys := app.recordedKeys()
		return len(keys) > 0 && keys[0].Rune() == 'x'
	}, 500*time.Millisecond, t, "key press to be handled")

	screen.PostEvent(tcell.NewEventMouse(1, 1, tcell.WheelDown, tcell.ModNone))
	waitFor(func() bool { return app.mouseCalls() > 0 }, 500*time.Millisecond, t, "mouse event to be handled")

	screen.PostEvent(tcell.NewEventResize(50, 12))
	waitFor(func() bool {
		w, h, ok := app.lastResize()
		return ok && w == 50 && h == 12
	}, 500*time.Millisecond, t, "resize event to be handled")

	screen.PostEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, 0))
	waitExit(t, errCh)

	app.mu.Lock()
	stopped := app.stopCalled
	app.mu.Unlock()
	if !stopped {
		t.Fatal("app.Stop was not invoked")
	}
}

func TestRunExitsWhenAppStops(t *testing.T) {
	app := newStubApp()
	screen, errCh := startRun(t, app)

	screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', 0))
	waitExit(t, errCh)
}

// finiScreen counts events posted after Fini.
type finiScreen struct {
	tcell.SimulationScreen
	mu       sync.Mutex
	finished bool
	late     int
}

func (s *finiScreen) Fini() {
	s.mu.Lock()
	s.finished = true
	s.mu.Unlock()
	s.SimulationScreen.Fini()
}

func (s *finiScreen) PostEvent(ev tcell.Event) error {
	s.mu.Lock()
	if s.finished {
		s.late++
	}
	s.mu.Unlock()
	return s.SimulationScreen.PostEvent(ev)
}

func (s *finiScreen) latePosts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.late
}

func TestRunStopsRefreshAfterExit(t *testing.T) {
	screen := &finiScreen{SimulationScreen: tcell.NewSimulationScreen("UTF-8")}
	viewer.SetScreenFactory(func() (tcell.Screen, error) { return screen, nil })
	t.Cleanup(func() { viewer.SetScreenFactory(nil) })

	app := newStubApp()
	errCh := make(chan error, 1)
	go func() { errCh <- viewer.Run(app) }()
	app.waitRunStarted(t)

	screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', 0))
	waitExit(t, errCh)

	for i := 0; i < 3; i++ {
		app.requestRefresh()
		time.Sleep(20 * time.Millisecond)
	}
	if n := screen.latePosts(); n != 0 {
		t.Fatalf("%d events posted after Fini", n)
	}
}

func waitFor(cond func() bool, timeout time.Duration, t *testing.T, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for %s", msg)
}
