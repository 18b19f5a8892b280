package input

import "github.com/milk9111/combatant/common"

// Frame is the device state sampled for one tick.
type Frame struct {
	Move common.Vec2
	Down map[Signal]bool
}

// Poller turns sampled device state into raw events, the way a callback
// based input system would report them: begin and performed when a control
// goes down, canceled when it comes back up, and a move event whenever the
// axis changes.
type Poller struct {
	router *Router
	held   map[Signal]bool
	move   common.Vec2
}

func NewPoller(r *Router) *Poller {
	return &Poller{router: r, held: make(map[Signal]bool)}
}

// Update compares f with the previous frame and forwards the differences to
// the router. It returns the number of raw events produced.
func (p *Poller) Update(f Frame) int {
	if p == nil || p.router == nil {
		return 0
	}
	n := 0
	if f.Move != p.move {
		phase := PhasePerformed
		if f.Move.IsZero() {
			phase = PhaseCanceled
		}
		p.router.Handle(RawEvent{Signal: SignalMove, Phase: phase, Value: f.Move})
		p.move = f.Move
		n++
	}

	for _, sig := range Signals {
		if sig == SignalMove {
			continue
		}
		was, now := p.held[sig], f.Down[sig]
		switch {
		case now && !was:
			p.router.Handle(RawEvent{Signal: sig, Phase: PhaseBegin})
			p.router.Handle(RawEvent{Signal: sig, Phase: PhasePerformed})
			n += 2
		case was && !now:
			p.router.Handle(RawEvent{Signal: sig, Phase: PhaseCanceled})
			n++
		}
		p.held[sig] = now
	}
	return n
}

// Reset releases everything still held, e.g. when the window loses focus.
func (p *Poller) Reset() {
	p.Update(Frame{})
}
