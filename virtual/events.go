// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: virtual/events.go
// Summary: Event types published by the engine and the dispatcher layers
// use to subscribe to exactly the events they need.

package virtual

// EventType defines the type of an engine event.
type EventType int

const (
	// EventRowsScroll fires on every accepted scroll, committed or not.
	EventRowsScroll EventType = iota
	// EventRenderContextChange fires when a new context is committed.
	EventRenderContextChange
	// EventRenderZonePositioning fires when the render zone is translated.
	EventRenderZonePositioning
	// EventContentSizeChange fires when the scrollable content size changes.
	EventContentSizeChange
)

func (t EventType) String() string {
	switch t {
	case EventRowsScroll:
		return "rowsScroll"
	case EventRenderContextChange:
		return "renderContextChange"
	case EventRenderZonePositioning:
		return "renderZonePositioning"
	case EventContentSizeChange:
		return "contentSizeChange"
	}
	return "unknown"
}

// Event is a message published by the engine. Payload holds one of the
// payload types below, matching Type.
type Event struct {
	Type    EventType
	Payload interface{}
}

// ScrollPayload accompanies EventRowsScroll.
type ScrollPayload struct {
	Top           int
	Left          int
	RenderContext RenderContext
}

// ZonePayload accompanies EventRenderZonePositioning.
type ZonePayload struct {
	Top  int
	Left int
}

// ContentSize is the size of the scrollable content.
type ContentSize struct {
	Width  int
	Height int
}

// Listener receives engine events.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }

type subscription struct {
	id       int
	listener Listener
	mask     uint32
}

// Subscription identifies a registered listener.
type Subscription int

// Dispatcher delivers events to subscribed listeners, in subscription
// order. It is not safe for concurrent use; the engine is driven from a
// single event loop.
type Dispatcher struct {
	subs   []subscription
	nextID int
}

// Subscribe registers listener for the given event types. With no types the
// listener receives everything.
func (d *Dispatcher) Subscribe(listener Listener, types ...EventType) Subscription {
	mask := ^uint32(0)
	if len(types) > 0 {
		mask = 0
		for _, t := range types {
			mask |= 1 << uint(t)
		}
	}
	d.nextID++
	d.subs = append(d.subs, subscription{id: d.nextID, listener: listener, mask: mask})
	return Subscription(d.nextID)
}

// Unsubscribe removes a listener. Unknown subscriptions are ignored.
// The list is copied so a Publish in progress keeps its own view.
func (d *Dispatcher) Unsubscribe(s Subscription) {
	for i, sub := range d.subs {
		if sub.id == int(s) {
			d.subs = append(d.subs[:i:i], d.subs[i+1:]...)
			return
		}
	}
}

// Publish sends an event once to every listener subscribed to its type
// when Publish starts.
func (d *Dispatcher) Publish(event Event) {
	bit := uint32(1) << uint(event.Type)
	for _, s := range d.subs {
		if s.mask&bit != 0 {
			s.listener.OnEvent(event)
		}
	}
}
