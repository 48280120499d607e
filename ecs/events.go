package ecs

import "github.com/milk9111/raysweep/kinematic"

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const EventCollision = "collision"

// CollisionEvent records one resolved collision of an entity's body.
type CollisionEvent struct {
	Entity Entity
	Event  kinematic.Event
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// ObserveCollisions forwards every collision of b to the world queue, tagged
// with e. Events are queued after the body's handler has resolved them.
func ObserveCollisions(w *World, e Entity, b *kinematic.Body) {
	b.Listener = func(_ *kinematic.Body, ev kinematic.Event) {
		w.events.Push(Event{Type: EventCollision, Data: CollisionEvent{Entity: e, Event: ev}})
	}
}
