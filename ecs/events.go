package ecs

import "github.com/milk9111/combatant/common"

// HitEvent reports a weapon strike landing on a victim.
type HitEvent struct {
	Attacker Entity
	Victim   Entity
	Swing    int
	Damage   int
	Push     common.Vec3
}

// DeathEvent is emitted once when an actor's health runs out.
type DeathEvent struct {
	Entity Entity
	Killer Entity
}

// EventQueue is a FIFO queue of typed payloads. Unread events are dropped at
// the end of the frame.
type EventQueue struct {
	items []any
}

// Push adds an event.
func (q *EventQueue) Push(evt any) {
	if q == nil || evt == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len reports how many events are queued.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain removes and returns every queued event of type T, keeping the rest.
func Drain[T any](q *EventQueue) []T {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	var out []T
	kept := q.items[:0]
	for _, item := range q.items {
		if evt, ok := item.(T); ok {
			out = append(out, evt)
			continue
		}
		kept = append(kept, item)
	}
	for i := len(kept); i < len(q.items); i++ {
		q.items[i] = nil
	}
	q.items = kept
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
