// Package platform generates, animates and recycles the climbable platforms
// of a playthrough.
package platform

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/milk9111/lavaclimb/common"
	"github.com/milk9111/lavaclimb/ecs"
	"github.com/milk9111/lavaclimb/ecs/component"
	"github.com/milk9111/lavaclimb/physics"
)

var (
	ErrEngineClosed = errors.New("platform: engine is shut down")
	ErrUnknownKind  = errors.New("platform: unknown platform kind")
	ErrNoWorld      = errors.New("platform: world port is nil")
	ErrNoActor      = errors.New("platform: actor is nil")
)

type Config struct {
	World   World
	Actor   Actor
	Catalog *Catalog
	Tuning  Tuning

	// Optional.
	Rand     *rand.Rand
	Modifier WeightModifier
	Bonus    BonusSpawnHook
	Logger   *slog.Logger
}

// Stats is a snapshot of the engine population and counters.
type Stats struct {
	Live            int
	Ghosts          int
	Spawned         int
	Destroyed       int
	PendingRespawns int
}

// Engine is the platform generation engine of one playthrough. It is driven
// by Update from a single game loop goroutine.
type Engine struct {
	world    *ecs.World
	port     World
	actor    Actor
	tuning   Tuning
	rng      *rand.Rand
	selector *Selector
	controls *InvertControl
	bonus    BonusSpawnHook
	log      *slog.Logger

	scheduler *ecs.Scheduler

	// edges indexes the platforms currently inside an edge zone.
	edges map[ecs.Entity]component.EdgeSide
	// respawns are timed-platform comebacks owned by the engine, since their
	// platform is already gone when they fire.
	respawns map[physics.Token]struct{}

	dt       time.Duration
	viewTop  float64
	startY   float64
	altitude float64

	spawned   int
	destroyed int
	closed    bool
}

func New(cfg Config) (*Engine, error) {
	if cfg.World == nil {
		return nil, ErrNoWorld
	}
	if cfg.Actor == nil {
		return nil, ErrNoActor
	}
	if cfg.Catalog == nil {
		return nil, errors.New("platform: catalog is nil")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = common.Logger("platform")
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	e := &Engine{
		world:    ecs.NewWorld(),
		port:     cfg.World,
		actor:    cfg.Actor,
		tuning:   cfg.Tuning.withDefaults(),
		rng:      rng,
		controls: &InvertControl{},
		bonus:    cfg.Bonus,
		log:      logger,
		edges:    make(map[ecs.Entity]component.EdgeSide),
		respawns: make(map[physics.Token]struct{}),
	}
	e.selector = NewSelector(cfg.Catalog, rng)
	e.selector.modifier = cfg.Modifier
	e.selector.onModifierError = func(err error) {
		e.log.Warn("weight modifier failed, using catalog weights", "err", err)
	}
	_, e.startY = cfg.Actor.Position()
	e.viewTop = e.startY - e.tuning.ScreenHeight

	e.scheduler = ecs.NewScheduler(
		&behaviorSystem{e: e},
		&oscillationSystem{e: e},
		&streamingSystem{e: e},
	)
	return e, nil
}

// Update advances every platform by dt. viewTop is the world y of the top
// edge of the visible area. The caller advances the world port's clock
// before Update.
func (e *Engine) Update(dt time.Duration, viewTop float64) {
	if e == nil || e.closed {
		return
	}
	if dt < 0 {
		dt = 0
	}
	e.dt = dt
	e.viewTop = viewTop
	if _, ay := e.actor.Position(); e.startY-ay > e.altitude {
		e.altitude = e.startY - ay
	}
	e.scheduler.Update(e.world)
}

// ChooseType draws a platform kind for the current altitude.
func (e *Engine) ChooseType() component.PlatformKind {
	return e.selector.Choose(e.altitude)
}

// SetCatalog swaps the catalog used by later spawns. Live platforms keep
// their colour.
func (e *Engine) SetCatalog(c *Catalog) {
	if e == nil || c == nil {
		return
	}
	e.selector.catalog = c
}

// SetModifier swaps the weight modifier. nil restores the catalog weights.
func (e *Engine) SetModifier(m WeightModifier) {
	if e == nil {
		return
	}
	e.selector.modifier = m
	e.selector.modifierFailed = false
}

func (e *Engine) Catalog() *Catalog {
	return e.selector.catalog
}

func (e *Engine) Tuning() Tuning {
	return e.tuning
}

// Controls exposes the shared control inversion state.
func (e *Engine) Controls() *InvertControl {
	return e.controls
}

// World exposes the entity store, mainly for tests and debug views.
func (e *Engine) World() *ecs.World {
	return e.world
}

// Events drains the lifecycle events queued since the previous call. Hosts
// drain once per frame.
func (e *Engine) Events() []ecs.Event {
	return e.world.Events().Drain()
}

// Altitude is the highest climb above the actor's start, in pixels.
func (e *Engine) Altitude() float64 {
	return e.altitude
}

// Platforms returns the live non-ghost platforms.
func (e *Engine) Platforms() []ecs.Entity {
	var out []ecs.Entity
	for _, ent := range e.world.Query(component.PlatformComponent.Kind()) {
		if !e.isGhost(ent) {
			out = append(out, ent)
		}
	}
	return out
}

// Ghosts returns the live wrap mirrors.
func (e *Engine) Ghosts() []ecs.Entity {
	return e.world.Query(component.GhostComponent.Kind())
}

func (e *Engine) Stats() Stats {
	return Stats{
		Live:            len(e.Platforms()),
		Ghosts:          len(e.Ghosts()),
		Spawned:         e.spawned,
		Destroyed:       e.destroyed,
		PendingRespawns: len(e.respawns),
	}
}

// Position returns the centre x and top y of ent.
func (e *Engine) Position(ent ecs.Entity) (x, y float64, ok bool) {
	t, ok := ecs.Get(e.world, ent, component.TransformComponent.Kind())
	if !ok {
		return 0, 0, false
	}
	return t.X, t.Y, true
}

// Kind returns the platform kind of ent.
func (e *Engine) Kind(ent ecs.Entity) (component.PlatformKind, bool) {
	p, ok := ecs.Get(e.world, ent, component.PlatformComponent.Kind())
	if !ok {
		return "", false
	}
	return p.Kind, true
}

// Shutdown destroys every platform and cancels every pending timer. The
// engine rejects spawns afterwards.
func (e *Engine) Shutdown() {
	if e == nil || e.closed {
		return
	}
	for tok := range e.respawns {
		e.port.Cancel(tok)
	}
	clear(e.respawns)
	for _, ent := range e.Platforms() {
		e.Destroy(ent)
	}
	e.controls.reset()
	e.closed = true
}

// Destroy removes a platform, cancelling its timers and its ghosts first.
// Destroying a dead entity or a ghost is a no-op that reports false; ghosts
// live and die with their origin.
func (e *Engine) Destroy(ent ecs.Entity) bool {
	if e == nil || !e.world.IsAlive(ent) || e.isGhost(ent) {
		return false
	}
	p, ok := ecs.Get(e.world, ent, component.PlatformComponent.Kind())
	if !ok {
		return e.world.DestroyEntity(ent)
	}

	for _, tok := range p.Timers {
		e.port.Cancel(tok)
	}
	p.Timers = nil
	e.dropGhosts(ent, p)
	delete(e.edges, ent)
	e.controls.release(ent)
	e.port.DestroyBody(p.Sensor)
	e.port.DestroyBody(p.Body)

	kind := p.Kind
	if !e.world.DestroyEntity(ent) {
		return false
	}
	e.destroyed++
	e.world.Events().Push(ecs.Event{Kind: ecs.EventDestroyed, Entity: ent, Data: kind})
	e.log.Debug("platform destroyed", "entity", ent, "kind", kind)
	return true
}

// schedule runs fn after d unless ent is destroyed first.
func (e *Engine) schedule(ent ecs.Entity, d time.Duration, fn func(*component.Platform)) {
	p, ok := ecs.Get(e.world, ent, component.PlatformComponent.Kind())
	if !ok {
		return
	}
	var tok physics.Token
	tok = e.port.ScheduleOnce(d, func() {
		cur, ok := ecs.Get(e.world, ent, component.PlatformComponent.Kind())
		if !ok {
			return
		}
		cur.ForgetTimer(tok)
		fn(cur)
	})
	p.TrackTimer(tok)
}

// every runs fn each interval until ent is destroyed.
func (e *Engine) every(ent ecs.Entity, interval time.Duration, fn func(*component.Platform)) {
	p, ok := ecs.Get(e.world, ent, component.PlatformComponent.Kind())
	if !ok {
		return
	}
	tok := e.port.SchedulePeriodic(interval, func() {
		cur, ok := ecs.Get(e.world, ent, component.PlatformComponent.Kind())
		if !ok {
			return
		}
		fn(cur)
	})
	p.TrackTimer(tok)
}

func (e *Engine) isGhost(ent ecs.Entity) bool {
	return ecs.Has(e.world, ent, component.GhostComponent.Kind())
}
