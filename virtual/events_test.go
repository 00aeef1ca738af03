// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package virtual

import "testing"

func TestDispatcher_Filtering(t *testing.T) {
	var d Dispatcher
	all := &recorder{}
	zoneOnly := &recorder{}
	d.Subscribe(all)
	d.Subscribe(zoneOnly, EventRenderZonePositioning)

	d.Publish(Event{Type: EventRowsScroll})
	d.Publish(Event{Type: EventRenderZonePositioning, Payload: ZonePayload{Top: 4}})
	d.Publish(Event{Type: EventContentSizeChange})

	if len(all.events) != 3 {
		t.Errorf("unfiltered listener got %d events, want 3", len(all.events))
	}
	if len(zoneOnly.events) != 1 || zoneOnly.events[0].Type != EventRenderZonePositioning {
		t.Errorf("filtered listener got %v", zoneOnly.events)
	}
}

func TestDispatcher_UnsubscribeAndOrder(t *testing.T) {
	var d Dispatcher
	var order []string
	first := d.Subscribe(ListenerFunc(func(Event) { order = append(order, "first") }))
	d.Subscribe(ListenerFunc(func(Event) { order = append(order, "second") }))

	d.Publish(Event{Type: EventRowsScroll})
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("delivery order = %v", order)
	}

	d.Unsubscribe(first)
	d.Unsubscribe(Subscription(999))
	order = nil
	d.Publish(Event{Type: EventRowsScroll})
	if len(order) != 1 || order[0] != "second" {
		t.Errorf("after unsubscribe delivery = %v", order)
	}
}

func TestDispatcher_UnsubscribeDuringPublish(t *testing.T) {
	var d Dispatcher
	var got []string
	var a Subscription
	a = d.Subscribe(ListenerFunc(func(Event) {
		got = append(got, "a")
		d.Unsubscribe(a)
	}))
	d.Subscribe(ListenerFunc(func(Event) { got = append(got, "b") }))
	d.Subscribe(ListenerFunc(func(Event) { got = append(got, "c") }))

	d.Publish(Event{Type: EventRowsScroll})
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("delivery while unsubscribing = %v, want [a b c]", got)
	}

	got = nil
	d.Publish(Event{Type: EventRowsScroll})
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Errorf("next delivery = %v, want [b c]", got)
	}
}

func TestEventType_String(t *testing.T) {
	if EventRowsScroll.String() != "rowsScroll" {
		t.Errorf("EventRowsScroll.String() = %q", EventRowsScroll.String())
	}
	if EventType(42).String() != "unknown" {
		t.Errorf("EventType(42).String() = %q", EventType(42).String())
	}
}
