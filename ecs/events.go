package ecs

// EventType identifies gameplay events pushed by systems.
type EventType string

const (
	EventShotFired     EventType = "shot_fired"
	EventDashStarted   EventType = "dash_started"
	EventEnemyHit      EventType = "enemy_hit"
	EventEnemyDefeated EventType = "enemy_defeated"
	EventLevelChanged  EventType = "level_changed"
)

// Event is a generic ECS event payload.
type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

// LevelChanged is the payload of EventLevelChanged.
type LevelChanged struct {
	Level int
}

// EventQueue is a simple FIFO queue. Systems push during the frame, later
// systems read with Each, and the owner of the loop drains it once the frame
// is over.
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

// Each visits queued events without consuming them.
func (q *EventQueue) Each(fn func(Event)) {
	if q == nil {
		return
	}
	for _, evt := range q.items {
		fn(evt)
	}
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
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
