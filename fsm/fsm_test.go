package fsm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	log []string
}

func (r *recorder) add(format string, args ...any) {
	r.log = append(r.log, fmt.Sprintf(format, args...))
}

type probe struct {
	name    string
	rec     *recorder
	entered bool

	onTick  func(dt float64)
	onEnter func()
	onExit  func()
}

func (p *probe) Name() string { return p.name }

func (p *probe) Enter() {
	p.entered = true
	p.rec.add("enter %s", p.name)
	if p.onEnter != nil {
		p.onEnter()
	}
}

func (p *probe) Tick(dt float64) {
	if !p.entered {
		p.rec.add("tick outside bracket %s", p.name)
	}
	p.rec.add("tick %s %.2f", p.name, dt)
	if p.onTick != nil {
		p.onTick(dt)
	}
}

func (p *probe) Exit() {
	p.rec.add("exit %s", p.name)
	p.entered = false
	if p.onExit != nil {
		p.onExit()
	}
}

func TestMachineUninitialized(t *testing.T) {
	m := New("test")
	assert.Nil(t, m.Current())
	assert.NotPanics(t, func() { m.Tick(0.016) })
	assert.Equal(t, "none", NameOf(m.Current()))
}

func TestMachineLifecycleOrder(t *testing.T) {
	rec := &recorder{}
	a := &probe{name: "a", rec: rec}
	b := &probe{name: "b", rec: rec}
	m := New("test")

	m.ChangeState(a)
	m.Tick(0.5)
	m.ChangeState(b)
	m.Tick(0.25)
	m.ChangeState(a)

	assert.Equal(t, []string{
		"enter a",
		"tick a 0.50",
		"exit a",
		"enter b",
		"tick b 0.25",
		"exit b",
		"enter a",
	}, rec.log)
	assert.Equal(t, 3, m.Transitions())
	assert.Same(t, a, m.Current())
}

func TestMachineChangeFromTickIsDeferred(t *testing.T) {
	rec := &recorder{}
	m := New("test")
	b := &probe{name: "b", rec: rec}
	a := &probe{name: "a", rec: rec}
	a.onTick = func(float64) {
		m.ChangeState(b)
		rec.add("after change")
	}

	m.ChangeState(a)
	m.Tick(1)
	m.Tick(1)

	assert.Equal(t, []string{
		"enter a",
		"tick a 1.00",
		"after change",
		"exit a",
		"enter b",
		"tick b 1.00",
	}, rec.log)
}

func TestMachineChangeFromEnter(t *testing.T) {
	rec := &recorder{}
	m := New("test")
	c := &probe{name: "c", rec: rec}
	b := &probe{name: "b", rec: rec}
	b.onEnter = func() { m.ChangeState(c) }
	a := &probe{name: "a", rec: rec}

	m.ChangeState(a)
	m.ChangeState(b)

	assert.Equal(t, []string{"enter a", "exit a", "enter b", "exit b", "enter c"}, rec.log)
	assert.Same(t, c, m.Current())
}

func TestMachineNeverTicksOutsideBracket(t *testing.T) {
	rec := &recorder{}
	m := New("test")
	states := make([]*probe, 4)
	for i := range states {
		states[i] = &probe{name: fmt.Sprint(i), rec: rec}
	}
	for i := range states {
		next := states[(i+1)%len(states)]
		states[i].onTick = func(float64) { m.ChangeState(next) }
	}

	m.ChangeState(states[0])
	for i := 0; i < 20; i++ {
		m.Tick(0.1)
	}

	for _, line := range rec.log {
		require.NotContains(t, line, "outside bracket")
	}

	// every exit is immediately followed by the next enter
	for i, line := range rec.log {
		if len(line) > 4 && line[:4] == "exit" {
			require.Less(t, i+1, len(rec.log))
			assert.Contains(t, rec.log[i+1], "enter")
		}
	}
}

func TestMachineStop(t *testing.T) {
	rec := &recorder{}
	m := New("test")
	m.ChangeState(&probe{name: "a", rec: rec})
	m.ChangeState(nil)
	m.Tick(1)

	assert.Nil(t, m.Current())
	assert.Equal(t, []string{"enter a", "exit a"}, rec.log)
}

type anonymous struct{}

func (anonymous) Enter()       {}
func (anonymous) Tick(float64) {}
func (anonymous) Exit()        {}

func TestNameOf(t *testing.T) {
	assert.Equal(t, "a", NameOf(&probe{name: "a"}))
	assert.Equal(t, "fsm.anonymous", NameOf(anonymous{}))
}
