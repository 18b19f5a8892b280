package component

type AnimationDef struct {
	Name       string
	FrameCount int
	FPS        float64
	Loop       bool
}

// Animation plays named clips. Disabling it freezes the current frame.
type Animation struct {
	Defs    map[string]AnimationDef
	Current string
	Frame   int
	Timer   float64
	Playing bool
	Enabled bool
}

func NewAnimation(defs ...AnimationDef) *Animation {
	a := &Animation{Defs: make(map[string]AnimationDef, len(defs)), Enabled: true}
	for _, d := range defs {
		a.Defs[d.Name] = d
	}
	return a
}

// Play switches to clip from its first frame. Replaying the current clip
// keeps its progress.
func (a *Animation) Play(clip string) {
	if a == nil || (clip == a.Current && a.Playing) {
		return
	}
	a.Current = clip
	a.Frame = 0
	a.Timer = 0
	a.Playing = true
}

func (a *Animation) SetEnabled(enabled bool) {
	if a == nil {
		return
	}
	a.Enabled = enabled
}

// Advance steps the current clip by dt seconds.
func (a *Animation) Advance(dt float64) {
	if a == nil || !a.Enabled || !a.Playing {
		return
	}
	def, ok := a.Defs[a.Current]
	if !ok || def.FrameCount <= 0 || def.FPS <= 0 {
		return
	}
	a.Timer += dt
	step := 1 / def.FPS
	for a.Timer >= step {
		a.Timer -= step
		a.Frame++
		if a.Frame < def.FrameCount {
			continue
		}
		if def.Loop {
			a.Frame = 0
			continue
		}
		a.Frame = def.FrameCount - 1
		a.Playing = false
		return
	}
}

var AnimationComponent = NewComponent[Animation]()
