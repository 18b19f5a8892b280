package input

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/milk9111/combatant/common"
)

// Handler is invoked once per delivered discrete event.
type Handler func()

// Router turns raw device events into gameplay signals.
//
// Movement is level-triggered and overwritten on every move callback. Attack
// and Block are level-triggered flags that consumers poll. Jump, Dodge, Look,
// Target and Cancel are edge-triggered: a performed phase queues one event,
// and further performed phases are ignored until the signal passes through
// begin or canceled again. Queued events are delivered by Dispatch, which the
// simulation calls once per tick, so device callbacks may arrive from another
// goroutine.
type Router struct {
	mu sync.Mutex

	movement  common.Vec2
	attacking bool
	blocking  bool

	last     map[Signal]Phase
	handlers map[Signal][]*Subscription
	pending  []Signal
	nextID   uint64
	closed   bool
}

func NewRouter() *Router {
	return &Router{
		last:     make(map[Signal]Phase),
		handlers: make(map[Signal][]*Subscription),
	}
}

// Handle records one raw device callback.
func (r *Router) Handle(ev RawEvent) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	switch {
	case ev.Signal == SignalMove:
		r.movement = ev.Value
	case ev.Signal.Held():
		var flag *bool
		if ev.Signal == SignalAttack {
			flag = &r.attacking
		} else {
			flag = &r.blocking
		}
		switch ev.Phase {
		case PhasePerformed:
			*flag = true
		case PhaseCanceled:
			*flag = false
		}
	case ev.Signal.Discrete():
		prev := r.last[ev.Signal]
		r.last[ev.Signal] = ev.Phase
		if ev.Phase == PhasePerformed && prev != PhasePerformed {
			r.pending = append(r.pending, ev.Signal)
		}
	default:
		log.Warn().Str("signal", string(ev.Signal)).Msg("input: dropping event for unknown signal")
	}
}

// Dispatch delivers queued discrete events to their subscribers in arrival
// order and returns how many events were drained. An event with no
// subscribers is dropped silently.
func (r *Router) Dispatch() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	pending := r.pending
	r.pending = nil
	batches := make([][]*Subscription, len(pending))
	for i, sig := range pending {
		batches[i] = append([]*Subscription(nil), r.handlers[sig]...)
	}
	r.mu.Unlock()

	for _, subs := range batches {
		for _, sub := range subs {
			// a handler earlier in the batch may have unsubscribed this one
			if !sub.Active() {
				continue
			}
			sub.handler()
		}
	}
	return len(pending)
}

// Pending returns the queued events without delivering them.
func (r *Router) Pending() []Signal {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Signal(nil), r.pending...)
}

func (r *Router) Movement() common.Vec2 {
	if r == nil {
		return common.Vec2{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.movement
}

func (r *Router) IsAttacking() bool {
	if r == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attacking
}

func (r *Router) IsBlocking() bool {
	if r == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.blocking
}

// Subscribe registers h for a discrete signal. Subscribing to a continuous or
// unknown signal returns an inactive subscription.
func (r *Router) Subscribe(sig Signal, h Handler) *Subscription {
	sub := &Subscription{router: r, signal: sig, handler: h}
	if r == nil || h == nil {
		return sub
	}
	if !sig.Discrete() {
		log.Warn().Str("signal", string(sig)).Msg("input: subscribe to non-event signal ignored")
		return sub
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return sub
	}
	r.nextID++
	sub.id = r.nextID
	sub.active = true
	r.handlers[sig] = append(r.handlers[sig], sub)
	return sub
}

// SubscriberCount reports the live subscriptions for sig.
func (r *Router) SubscriberCount(sig Signal) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handlers[sig])
}

// Close drops every subscriber and queued event and stops accepting input.
func (r *Router) Close() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, subs := range r.handlers {
		for _, sub := range subs {
			sub.active = false
		}
	}
	r.handlers = make(map[Signal][]*Subscription)
	r.pending = nil
	r.movement = common.Vec2{}
	r.attacking = false
	r.blocking = false
	r.closed = true
}

func (r *Router) remove(sub *Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !sub.active {
		return
	}
	sub.active = false
	subs := r.handlers[sub.signal]
	for i, s := range subs {
		if s.id == sub.id {
			r.handlers[sub.signal] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(r.handlers[sub.signal]) == 0 {
		delete(r.handlers, sub.signal)
	}
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	router  *Router
	signal  Signal
	handler Handler
	id      uint64
	active  bool
}

func (s *Subscription) Signal() Signal {
	if s == nil {
		return ""
	}
	return s.signal
}

// Active reports whether the subscription still receives events.
func (s *Subscription) Active() bool {
	if s == nil || s.router == nil {
		return false
	}
	s.router.mu.Lock()
	defer s.router.mu.Unlock()
	return s.active
}

// Unsubscribe is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.router == nil {
		return
	}
	s.router.remove(s)
}
