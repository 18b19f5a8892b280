package input

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/combatant/common"
)

func TestRouterDiscreteEdges(t *testing.T) {
	cases := []struct {
		name   string
		phases []Phase
		fires  int
	}{
		{"press_hold_release", []Phase{PhaseBegin, PhasePerformed, PhasePerformed, PhaseCanceled}, 1},
		{"two_presses", []Phase{PhaseBegin, PhasePerformed, PhaseCanceled, PhaseBegin, PhasePerformed, PhaseCanceled}, 2},
		{"performed_without_begin", []Phase{PhasePerformed}, 1},
		{"begin_only", []Phase{PhaseBegin, PhaseCanceled}, 0},
		{"reset_by_begin", []Phase{PhasePerformed, PhaseBegin, PhasePerformed}, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := NewRouter()
			calls := 0
			r.Subscribe(SignalJump, func() { calls++ })
			for _, p := range c.phases {
				r.Handle(RawEvent{Signal: SignalJump, Phase: p})
			}
			r.Dispatch()
			assert.Equal(t, c.fires, calls)
		})
	}
}

func TestRouterEventsAreQueuedUntilDispatch(t *testing.T) {
	r := NewRouter()
	var order []Signal
	for _, sig := range []Signal{SignalJump, SignalDodge, SignalLook, SignalTarget, SignalCancel} {
		r.Subscribe(sig, func() { order = append(order, sig) })
	}

	r.Handle(RawEvent{Signal: SignalTarget, Phase: PhasePerformed})
	r.Handle(RawEvent{Signal: SignalDodge, Phase: PhasePerformed})
	require.Empty(t, order)
	require.Equal(t, []Signal{SignalTarget, SignalDodge}, r.Pending())

	assert.Equal(t, 2, r.Dispatch())
	assert.Equal(t, []Signal{SignalTarget, SignalDodge}, order)
	assert.Equal(t, 0, r.Dispatch())
}

func TestRouterFireWithoutSubscribers(t *testing.T) {
	r := NewRouter()
	r.Handle(RawEvent{Signal: SignalCancel, Phase: PhasePerformed})
	assert.NotPanics(t, func() { r.Dispatch() })
}

func TestRouterMovementOverwrites(t *testing.T) {
	r := NewRouter()
	r.Handle(RawEvent{Signal: SignalMove, Phase: PhaseBegin, Value: common.Vec2{X: 1}})
	assert.Equal(t, common.Vec2{X: 1}, r.Movement())
	r.Handle(RawEvent{Signal: SignalMove, Phase: PhasePerformed, Value: common.Vec2{X: 0.5, Y: -1}})
	assert.Equal(t, common.Vec2{X: 0.5, Y: -1}, r.Movement())
	r.Handle(RawEvent{Signal: SignalMove, Phase: PhaseCanceled})
	assert.True(t, r.Movement().IsZero())
}

func TestRouterHeldFlags(t *testing.T) {
	r := NewRouter()

	r.Handle(RawEvent{Signal: SignalAttack, Phase: PhaseBegin})
	assert.False(t, r.IsAttacking())
	r.Handle(RawEvent{Signal: SignalAttack, Phase: PhasePerformed})
	assert.True(t, r.IsAttacking())
	r.Handle(RawEvent{Signal: SignalMove, Phase: PhasePerformed, Value: common.Vec2{Y: 1}})
	assert.True(t, r.IsAttacking())
	r.Handle(RawEvent{Signal: SignalBlock, Phase: PhasePerformed})
	r.Handle(RawEvent{Signal: SignalAttack, Phase: PhaseCanceled})
	assert.False(t, r.IsAttacking())
	assert.True(t, r.IsBlocking())
	r.Handle(RawEvent{Signal: SignalBlock, Phase: PhaseCanceled})
	assert.False(t, r.IsBlocking())

	r.Subscribe(SignalAttack, func() { t.Fatal("held signals never fire events") })
	r.Handle(RawEvent{Signal: SignalAttack, Phase: PhasePerformed})
	assert.Equal(t, 0, r.Dispatch())
}

func TestRouterUnsubscribe(t *testing.T) {
	r := NewRouter()
	calls := 0
	sub := r.Subscribe(SignalJump, func() { calls++ })
	require.True(t, sub.Active())
	require.Equal(t, 1, r.SubscriberCount(SignalJump))

	sub.Unsubscribe()
	sub.Unsubscribe()
	assert.False(t, sub.Active())
	assert.Equal(t, 0, r.SubscriberCount(SignalJump))

	r.Handle(RawEvent{Signal: SignalJump, Phase: PhasePerformed})
	r.Dispatch()
	assert.Equal(t, 0, calls)
}

func TestRouterUnsubscribeDuringDispatch(t *testing.T) {
	r := NewRouter()
	second := 0
	var sub2 *Subscription
	r.Subscribe(SignalDodge, func() { sub2.Unsubscribe() })
	sub2 = r.Subscribe(SignalDodge, func() { second++ })

	r.Handle(RawEvent{Signal: SignalDodge, Phase: PhasePerformed})
	r.Dispatch()
	assert.Equal(t, 0, second)
}

func TestRouterRejectsNonEventSubscriptions(t *testing.T) {
	r := NewRouter()
	sub := r.Subscribe(SignalMove, func() {})
	assert.False(t, sub.Active())
	assert.Equal(t, 0, r.SubscriberCount(SignalMove))
}

func TestRouterClose(t *testing.T) {
	r := NewRouter()
	sub := r.Subscribe(SignalLook, func() { t.Fatal("closed router delivered event") })
	r.Handle(RawEvent{Signal: SignalLook, Phase: PhasePerformed})
	r.Close()

	assert.False(t, sub.Active())
	assert.Equal(t, 0, r.Dispatch())

	r.Handle(RawEvent{Signal: SignalAttack, Phase: PhasePerformed})
	assert.False(t, r.IsAttacking())
	assert.False(t, r.Subscribe(SignalLook, func() {}).Active())
}

func TestRouterConcurrentProducers(t *testing.T) {
	r := NewRouter()
	calls := 0
	r.Subscribe(SignalJump, func() { calls++ })

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Handle(RawEvent{Signal: SignalMove, Phase: PhasePerformed, Value: common.Vec2{X: 1}})
			}
		}()
	}
	r.Handle(RawEvent{Signal: SignalJump, Phase: PhasePerformed})
	wg.Wait()

	r.Dispatch()
	assert.Equal(t, 1, calls)
	assert.Equal(t, common.Vec2{X: 1}, r.Movement())
}

func TestBindingClose(t *testing.T) {
	r := NewRouter()
	b := NewBinding(r).
		On(SignalJump, func() {}).
		On(SignalTarget, func() {}).
		On(SignalCancel, func() {})
	require.Equal(t, 3, b.Len())
	require.Equal(t, 1, r.SubscriberCount(SignalTarget))

	b.Close()
	b.Close()
	assert.Equal(t, 0, b.Len())
	for _, sig := range Signals {
		assert.Equal(t, 0, r.SubscriberCount(sig), sig)
	}
}

func TestParseSignal(t *testing.T) {
	sig, err := ParseSignal(" Jump ")
	require.NoError(t, err)
	assert.Equal(t, SignalJump, sig)

	_, err = ParseSignal("teleport")
	assert.ErrorIs(t, err, ErrUnknownSignal)
}
