// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/scroll/state.go
// Summary: Immutable scroll state for one axis. Every operation returns a new
// State with the offset clamped to [0, MaxOffset].

package scroll

// State tracks the scroll offset of content along one axis.
type State struct {
	Offset       int
	ContentSize  int
	ViewportSize int
}

// NewState returns a state at offset 0.
func NewState(contentSize, viewportSize int) State {
	return State{ContentSize: max(contentSize, 0), ViewportSize: max(viewportSize, 0)}
}

// MaxOffset is the largest offset that still fills the viewport.
func (s State) MaxOffset() int {
	return max(s.ContentSize-s.ViewportSize, 0)
}

func (s State) clamped() State {
	s.Offset = min(max(s.Offset, 0), s.MaxOffset())
	return s
}

// WithContentSize returns s for a new content size.
func (s State) WithContentSize(n int) State {
	s.ContentSize = max(n, 0)
	return s.clamped()
}

// WithViewportSize returns s for a new viewport size.
func (s State) WithViewportSize(n int) State {
	s.ViewportSize = max(n, 0)
	return s.clamped()
}

// ScrollBy moves the offset by delta.
func (s State) ScrollBy(delta int) State {
	s.Offset += delta
	return s.clamped()
}

// ScrollTo moves the least distance that makes [pos, pos+size) visible.
func (s State) ScrollTo(pos, size int) State {
	switch {
	case pos < s.Offset:
		s.Offset = pos
	case pos+size > s.Offset+s.ViewportSize:
		s.Offset = pos + size - s.ViewportSize
		if s.Offset > pos {
			s.Offset = pos
		}
	}
	return s.clamped()
}

// ScrollToStart returns s at offset 0.
func (s State) ScrollToStart() State {
	s.Offset = 0
	return s
}

// ScrollToEnd returns s at MaxOffset.
func (s State) ScrollToEnd() State {
	s.Offset = s.MaxOffset()
	return s
}

// CanScroll reports whether the content overflows the viewport.
func (s State) CanScroll() bool { return s.ContentSize > s.ViewportSize }

// CanScrollBack reports whether content is hidden before the viewport.
func (s State) CanScrollBack() bool { return s.Offset > 0 }

// CanScrollForward reports whether content is hidden after the viewport.
func (s State) CanScrollForward() bool { return s.Offset < s.MaxOffset() }

// IsVisible reports whether pos is inside the viewport.
func (s State) IsVisible(pos int) bool {
	return pos >= s.Offset && pos < s.Offset+s.ViewportSize
}
