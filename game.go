package main

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog/log"

	"github.com/milk9111/combatant/behavior"
	"github.com/milk9111/combatant/common"
	"github.com/milk9111/combatant/ecs"
	"github.com/milk9111/combatant/ecs/component"
	"github.com/milk9111/combatant/ecs/entity"
	"github.com/milk9111/combatant/ecs/system"
	"github.com/milk9111/combatant/input"
	"github.com/milk9111/combatant/physics"
	"github.com/milk9111/combatant/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	arenaBounds = 12.0
	// enemies spawn on a ring around the player
	spawnRadius = 7.0
)

type Options struct {
	Debug   bool
	Enemies int
	Watch   bool
	Seed    uint64
}

type Game struct {
	opts   Options
	frames int

	arena     *entity.Arena
	scheduler *ecs.Scheduler
	render    *system.RenderSystem
	deaths    *system.DeathSystem
	keymap    *system.Keymap

	playerSpec *prefabs.PlayerSpec
	enemySpec  *prefabs.EnemySpec
	idle       *behavior.Script
	player     ecs.Entity
	rounds     uint64

	paused  bool
	restart bool
	pauseUI *ebitenui.UI

	watcher *prefabs.Watcher
}

func NewGame(opts Options) (*Game, error) {
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	enemySpec, err := prefabs.LoadEnemySpec()
	if err != nil {
		return nil, err
	}
	inputSpec, err := prefabs.LoadInputSpec()
	if err != nil {
		return nil, err
	}
	keymap, err := system.NewKeymap(inputSpec)
	if err != nil {
		return nil, err
	}
	idle, err := loadIdleScript(enemySpec)
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:       opts,
		render:     system.NewRenderSystem(arenaBounds),
		keymap:     keymap,
		playerSpec: playerSpec,
		enemySpec:  enemySpec,
		idle:       idle,
	}
	if err := g.resetArena(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if opts.Watch {
		g.watcher, err = prefabs.NewWatcher()
		if err != nil {
			log.Warn().Err(err).Msg("prefab watcher disabled")
		}
	}

	log.Info().
		Int("enemies", opts.Enemies).
		Uint64("seed", opts.Seed).
		Bool("watch", g.watcher != nil).
		Msg("arena ready")
	return g, nil
}

// resetArena builds a fresh world with the player at the centre and the
// configured number of enemies around it.
func (g *Game) resetArena() error {
	if g.arena != nil {
		// closes the previous round's router
		ecs.DestroyEntity(g.arena.World, g.player)
	}
	seed := g.opts.Seed + g.rounds
	g.rounds++
	g.arena = &entity.Arena{
		World:   ecs.NewWorld(),
		Physics: physics.NewWorld(common.Gravity),
		Rand:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Bounds:  arenaBounds,
	}
	g.deaths = system.NewDeathSystem()

	var err error
	g.player, err = entity.NewPlayer(g.arena, g.playerSpec, input.NewRouter(), common.Vec3{})
	if err != nil {
		return err
	}
	for i := 0; i < g.opts.Enemies; i++ {
		if _, err := g.spawnEnemy(); err != nil {
			return err
		}
	}

	w := g.arena.World
	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(g.keymap),
		system.NewForceSystem(),
		system.NewBrainSystem(),
		system.NewCombatSystem(),
		system.NewDamageSystem(),
		g.deaths,
		system.NewAnimationSystem(),
		system.NewPhysicsSystem(w, g.arena.Physics),
	)
	return nil
}

func loadIdleScript(spec *prefabs.EnemySpec) (*behavior.Script, error) {
	if spec.IdleScript == "" {
		return nil, nil
	}
	src, err := prefabs.LoadScript(spec.IdleScript)
	if err != nil {
		return nil, err
	}
	return behavior.CompileScript(spec.IdleScript, src)
}

func (g *Game) spawnEnemy() (ecs.Entity, error) {
	angle := g.arena.Rand.Float64() * 2 * math.Pi
	pos := common.DirectionOf(angle).Scale(spawnRadius)
	return entity.NewEnemy(g.arena, g.enemySpec, g.idle, g.player, pos)
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++
	g.reload()

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	if !g.deaths.PlayerAlive && inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.restart = true
	}
	if g.restart {
		g.restart = false
		if err := g.resetArena(); err != nil {
			return err
		}
		log.Info().Uint64("round", g.rounds).Msg("arena restarted")
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if _, err := g.spawnEnemy(); err != nil {
			log.Error().Err(err).Msg("spawn enemy")
		}
	}

	g.scheduler.Update(g.arena.World, 1/float64(ebiten.TPS()))
	return nil
}

// reload applies prefab edits picked up by the watcher.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.applyChange(name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Warn().Err(err).Msg("prefab watcher")
		default:
			return
		}
	}
}

func (g *Game) applyChange(name string) {
	switch {
	case name == "enemy.yaml":
		spec, err := prefabs.LoadEnemySpec()
		if err != nil {
			log.Error().Err(err).Msg("reload enemy spec")
			return
		}
		g.enemySpec = spec
	case name == "scripts/"+g.enemySpec.IdleScript:
		idle, err := loadIdleScript(g.enemySpec)
		if err != nil {
			log.Error().Err(err).Msg("reload idle script")
			return
		}
		g.idle = idle
	default:
		return
	}

	retuned := 0
	ecs.ForEach2(g.arena.World, component.EnemyTagComponent, component.BrainComponent, func(e ecs.Entity, _ *component.EnemyTag, brain *component.Brain) {
		enemy, ok := brain.Agent.(*behavior.Enemy)
		if !ok {
			return
		}
		enemy.Retune(g.enemySpec.ChaseRange, entity.EnemyTuning(g.enemySpec, g.idle))
		retuned++
	})
	log.Info().Str("file", name).Int("enemies", retuned).Msg("prefab reloaded")
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.arena.World, screen)
	system.DrawHUD(g.arena.World, screen, g.deaths)
	if g.opts.Debug {
		var centerX float64
		if tr, ok := ecs.Get(g.arena.World, g.player, component.TransformComponent); ok {
			centerX = tr.Pos.X
		}
		system.DrawPhysicsDebug(g.arena.Physics, screen, centerX)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()), 8, baseHeight-20)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
