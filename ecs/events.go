package ecs

// EventKind identifies platform lifecycle events.
type EventKind string

const (
	EventSpawned   EventKind = "spawned"
	EventDestroyed EventKind = "destroyed"
	EventRespawned EventKind = "respawned"
	EventDodged    EventKind = "dodged"
	EventBounced   EventKind = "bounced"
)

// Event is a generic ECS event payload.
type Event struct {
	Kind   EventKind
	Entity Entity
	Data   any
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

// Clear drops queued events.
func (q *EventQueue) Clear() {
	if q == nil {
		return
	}
	q.items = nil
}
