package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"reflect"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/lavaclimb/common"
	"github.com/milk9111/lavaclimb/ecs"
	"github.com/milk9111/lavaclimb/ecs/component"
	"github.com/milk9111/lavaclimb/physics"
	"github.com/milk9111/lavaclimb/platform"
	"github.com/milk9111/lavaclimb/prefabs"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	coinChance    = 0.12
	cameraLead    = 0.55 // share of the screen kept above the player
	cameraSmooth  = 0.12
	lavaStartDrop = 260
)

var backgroundColor = color.NRGBA{R: 0x1a, G: 0x12, B: 0x1e, A: 0xff}

// Options are the command line settings of a session.
type Options struct {
	Seed  uint64
	Debug bool
	Watch bool
}

type Game struct {
	opts   Options
	log    *slog.Logger
	frames int

	catalog  *platform.Catalog
	tuning   platform.Tuning
	modifier platform.WeightModifier
	watcher  *prefabs.Watcher

	input  *Input
	space  *physics.Space
	engine *platform.Engine
	player *Player
	coins  *CoinSpawner
	lava   *Lava
	rng    *rand.Rand

	viewTop float64
	score   int
	best    int
	paused  bool
	over    bool
	quit    bool

	pauseUI *ebitenui.UI
	overUI  *ebitenui.UI
	face    ebtext.Face
}

func NewGame(opts Options) (*Game, error) {
	g := &Game{
		opts:  opts,
		log:   common.Logger("game"),
		input: NewInput(),
		face:  ebtext.NewGoXFace(basicfont.Face7x13),
	}
	if err := g.loadPrefabs(); err != nil {
		return nil, err
	}
	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			g.log.Warn("hot reload disabled", "err", err)
		} else {
			g.watcher = w
		}
	}
	if err := g.newRun(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)
	return g, nil
}

// loadPrefabs reads the catalog, tuning and difficulty script.
func (g *Game) loadPrefabs() error {
	spec, err := prefabs.LoadPlatformSpec()
	if err != nil {
		return err
	}
	catalog, err := platform.CatalogFromSpec(spec)
	if err != nil {
		return err
	}
	g.catalog = catalog
	g.tuning = platform.TuningFromSpec(spec.Tuning)
	g.modifier = nil
	if spec.DifficultyScript != "" {
		m, err := platform.LoadScriptModifier(spec.DifficultyScript)
		if err != nil {
			g.log.Warn("difficulty script not loaded", "script", spec.DifficultyScript, "err", err)
		} else {
			g.modifier = m
		}
	}
	return nil
}

// newRun builds a fresh playthrough: space, player on the base platform,
// engine and lava.
func (g *Game) newRun() error {
	seed := g.opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	g.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	g.log.Info("new run", "seed", seed)

	t := g.tuning
	g.space = physics.NewSpace()
	player, err := NewPlayer(t.ScreenWidth/2, t.MaxY, g.input, g.space, t.ScreenWidth, t.JumpImpulse)
	if err != nil {
		return fmt.Errorf("create player: %w", err)
	}
	g.player = player
	g.coins = NewCoinSpawner(g.rng, coinChance)

	engine, err := platform.New(platform.Config{
		World:    g.space,
		Actor:    player,
		Catalog:  g.catalog,
		Tuning:   t,
		Rand:     g.rng,
		Modifier: g.modifier,
		Bonus:    g.coins,
		Logger:   common.Logger("platform"),
	})
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	g.engine = engine
	player.SetControls(engine.Controls())

	// Base platform under the player's feet.
	if _, err := engine.Spawn(t.ScreenWidth/2, t.MaxY,
		platform.WithType(component.KindNormal),
		platform.WithNoMove(),
		platform.WithAllowBaseX(),
	); err != nil {
		return fmt.Errorf("spawn base platform: %w", err)
	}

	g.viewTop = t.MaxY + 60 - t.ScreenHeight
	g.lava = NewLava(t.MaxY + lavaStartDrop)
	g.score = 0
	g.paused = false
	g.over = false
	g.overUI = nil
	return nil
}

func (g *Game) restart() {
	if g.engine != nil {
		g.engine.Shutdown()
	}
	if err := g.newRun(); err != nil {
		g.log.Error("restart failed", "err", err)
		g.quit = true
	}
}

func (g *Game) screenW() int { return int(g.tuning.ScreenWidth) }
func (g *Game) screenH() int { return int(g.tuning.ScreenHeight) }

func (g *Game) Update() error {
	if g.quit {
		if g.watcher != nil {
			_ = g.watcher.Close()
		}
		return ebiten.Termination
	}
	g.frames++
	g.input.Update()
	g.pollReload()

	if g.over {
		g.overUI.Update()
		return nil
	}
	if g.input.PausePressed {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	dt := time.Second / time.Duration(ebiten.TPS())
	g.player.Update(dt, g.engine.RenderTags())

	target := g.player.Y - g.tuning.ScreenHeight*cameraLead
	if target < g.viewTop {
		g.viewTop = common.Lerp(g.viewTop, target, cameraSmooth)
	}

	g.space.Advance(dt)
	g.engine.Update(dt, g.viewTop)
	g.handleEvents(g.engine.Events())

	viewBottom := g.viewTop + g.tuning.ScreenHeight
	g.coins.Update(&g.player.Rect, viewBottom+g.tuning.DespawnMargin)
	g.lava.Update(dt, viewBottom)
	g.score = int(g.engine.Altitude()/10) + g.coins.Collected*coinValue

	if g.lava.Burns(g.player.Bottom()) || g.player.Y > viewBottom+g.tuning.DespawnMargin {
		g.gameOver()
	}
	return nil
}

func (g *Game) handleEvents(events []ecs.Event) {
	for _, evt := range events {
		switch evt.Kind {
		case ecs.EventRespawned:
			g.log.Debug("platform respawned", "entity", evt.Entity)
		case ecs.EventBounced, ecs.EventDodged:
			g.log.Debug("platform reacted", "event", evt.Kind, "entity", evt.Entity)
		}
	}
}

func (g *Game) gameOver() {
	g.over = true
	if g.score > g.best {
		g.best = g.score
	}
	st := g.engine.Stats()
	g.log.Info("game over", "score", g.score, "altitude", g.engine.Altitude(), "spawned", st.Spawned, "destroyed", st.Destroyed)
	g.overUI = NewGameOverUI(g)
}

// pollReload applies prefab edits reported by the watcher.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case ch, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(ch)
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.Warn("prefab watcher", "err", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(ch prefabs.Change) {
	prevTuning := g.tuning
	if err := g.loadPrefabs(); err != nil {
		g.log.Warn("prefab reload failed", "file", ch.Path, "kind", ch.Kind, "err", err)
		return
	}
	g.engine.SetCatalog(g.catalog)
	g.engine.SetModifier(g.modifier)
	g.log.Info("prefabs reloaded", "file", ch.Path, "kind", ch.Kind)
	if !reflect.DeepEqual(prevTuning, g.tuning) {
		g.log.Info("tuning changes apply on the next run")
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	owner := g.engine.Controls().Owner()
	for _, tag := range g.engine.RenderTags() {
		g.drawPlatform(screen, tag, owner)
	}
	g.coins.Draw(screen, g.viewTop)
	g.player.Draw(screen, g.viewTop)
	g.lava.Draw(screen, g.viewTop)
	if g.opts.Debug {
		drawColliders(screen, g.space.CP(), g.viewTop)
	}
	g.drawHUD(screen)

	if g.over && g.overUI != nil {
		g.overUI.Draw(screen)
	} else if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawPlatform(screen *ebiten.Image, tag platform.RenderTag, owner ecs.Entity) {
	if !tag.Visible {
		return
	}
	x := float32(tag.X - tag.Width/2)
	y := float32(tag.Y - g.viewTop)
	w, h := float32(tag.Width), float32(tag.Height)

	c := tag.Color
	c.A = uint8(float64(c.A) * tag.Alpha)
	vector.DrawFilledRect(screen, x, y, w, h, c, false)

	switch {
	case tag.IsInvertX && tag.Entity == owner && owner != 0:
		vector.StrokeRect(screen, x, y, w, h, 2, colornames.White, false)
	case tag.IsTimed || tag.IsFragile:
		vector.StrokeLine(screen, x+4, y+h/2, x+w-4, y+h/2, 1, colornames.Black, false)
	}
	if tag.IsMoving {
		vector.DrawFilledRect(screen, x+w/2-3, y+h+2, 6, 3, c, false)
	}
	if g.opts.Debug && tag.Ghost {
		vector.StrokeRect(screen, x, y, w, h, 1, colornames.Cyan, false)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	lines := []string{
		fmt.Sprintf("Score %d", g.score),
		fmt.Sprintf("Height %.0fm", g.engine.Altitude()/10),
	}
	if g.engine.Controls().Active() {
		lines = append(lines, "Controls inverted!")
	}
	if g.player.Slipping() {
		lines = append(lines, "Slippery")
	}
	for i, line := range lines {
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(10, float64(10+i*16))
		op.ColorScale.ScaleWithColor(colornames.White)
		ebtext.Draw(screen, line, g.face, op)
	}

	if g.opts.Debug {
		st := g.engine.Stats()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
			"FPS %.1f  state %s\nlive %d ghosts %d spawned %d destroyed %d respawns %d\nbodies %d timers %d coins %d",
			ebiten.ActualFPS(), g.player.StateName(),
			st.Live, st.Ghosts, st.Spawned, st.Destroyed, st.PendingRespawns,
			g.space.Len(), g.space.Pending(), g.coins.Len(),
		), 10, g.screenH()-60)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW(), g.screenH()
}
