// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package window

import (
	"fmt"
	"image"
)

// EventTypes are the kinds of window events handled by the app.
type EventTypes int32

const (
	// Resize is sent when the framebuffer size changes.
	Resize EventTypes = iota

	// Move is sent when the window is moved.
	Move

	// Refresh is sent when the window contents need to be redrawn.
	Refresh

	// Close is sent when the user asks to close the window.
	Close
)

func (et EventTypes) String() string {
	switch et {
	case Resize:
		return "Resize"
	case Move:
		return "Move"
	case Refresh:
		return "Refresh"
	case Close:
		return "Close"
	}
	return fmt.Sprintf("EventTypes(%d)", int32(et))
}

// Event is one window event.
type Event struct {
	Type EventTypes

	// Size is the new framebuffer size, for Resize.
	Size image.Point

	// Pos is the new window position, for Move.
	Pos image.Point
}

func (ev Event) String() string {
	switch ev.Type {
	case Resize:
		return fmt.Sprintf("Resize %v", ev.Size)
	case Move:
		return fmt.Sprintf("Move %v", ev.Pos)
	}
	return ev.Type.String()
}

// Queue collects events from window callbacks until they are drained
// by the event loop. It is only used from the main thread.
type Queue struct {
	events []Event
}

// Push adds an event to the queue.
func (q *Queue) Push(ev Event) {
	q.events = append(q.events, ev)
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	return len(q.events)
}

// Drain returns the queued events and empties the queue. Runs of
// consecutive Resize or Move events are reduced to the last one, and
// repeated Refresh and Close events are dropped, as only the latest
// state matters to the loop.
func (q *Queue) Drain() []Event {
	if len(q.events) == 0 {
		return nil
	}
	out := make([]Event, 0, len(q.events))
	for _, ev := range q.events {
		n := len(out)
		if n > 0 && out[n-1].Type == ev.Type {
			out[n-1] = ev
			continue
		}
		if (ev.Type == Refresh || ev.Type == Close) && hasType(out, ev.Type) {
			continue
		}
		out = append(out, ev)
	}
	q.events = q.events[:0]
	return out
}

func hasType(evs []Event, et EventTypes) bool {
	for _, ev := range evs {
		if ev.Type == et {
			return true
		}
	}
	return false
}
