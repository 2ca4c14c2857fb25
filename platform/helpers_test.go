package platform

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/milk9111/lavaclimb/ecs"
	"github.com/milk9111/lavaclimb/ecs/component"
	"github.com/milk9111/lavaclimb/physics"
)

const (
	tick        = 10 * time.Millisecond
	actorWidth  = 24
	actorHeight = 36
)

// spyWorld counts Cancel calls on top of a real space.
type spyWorld struct {
	*physics.Space
	cancelled map[physics.Token]int
}

func newSpyWorld() *spyWorld {
	return &spyWorld{Space: physics.NewSpace(), cancelled: make(map[physics.Token]int)}
}

func (s *spyWorld) Cancel(tok physics.Token) {
	s.cancelled[tok]++
	s.Space.Cancel(tok)
}

type fakeActor struct {
	space    *physics.Space
	body     physics.BodyHandle
	x, y     float64
	vx, vy   float64
	grounded bool
	jump     bool

	slipGrants int
	slip       time.Duration
	setVY      []float64
}

func newFakeActor(t *testing.T, space *physics.Space, x, feetY float64) *fakeActor {
	t.Helper()
	body, err := space.CreateStaticBody(x-actorWidth/2, feetY-actorHeight, actorWidth, actorHeight)
	if err != nil {
		t.Fatalf("create actor body: %v", err)
	}
	return &fakeActor{space: space, body: body, x: x, y: feetY}
}

func (a *fakeActor) place(x, feetY float64) {
	a.x, a.y = x, feetY
	a.space.MoveBody(a.body, x-actorWidth/2, feetY-actorHeight)
}

func (a *fakeActor) Position() (float64, float64) { return a.x, a.y }
func (a *fakeActor) Velocity() (float64, float64) { return a.vx, a.vy }
func (a *fakeActor) Grounded() bool               { return a.grounded }
func (a *fakeActor) JumpPressed() bool            { return a.jump }
func (a *fakeActor) Body() physics.BodyHandle     { return a.body }

func (a *fakeActor) SetVelocityY(vy float64) {
	a.vy = vy
	a.setVY = append(a.setVY, vy)
}

func (a *fakeActor) GrantSlip(d time.Duration) {
	a.slipGrants++
	a.slip = d
}

type harness struct {
	t       *testing.T
	world   *spyWorld
	actor   *fakeActor
	engine  *Engine
	viewTop float64
	events  []ecs.Event
}

func testTuning() Tuning {
	tuning := DefaultTuning()
	tuning.MoveChance = 0
	return tuning
}

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog([]PlatformType{
		{Key: component.KindNormal, DisplayName: "Stone", Weight: 1},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c
}

// newHarness builds an engine whose actor stands at (x, feetY). The view
// top is 0 so nothing placed between 0 and the screen bottom despawns.
func newHarness(t *testing.T, tuning Tuning, x, feetY float64, seed uint64) *harness {
	t.Helper()
	w := newSpyWorld()
	actor := newFakeActor(t, w.Space, x, feetY)
	e, err := New(Config{
		World:   w,
		Actor:   actor,
		Catalog: testCatalog(t),
		Tuning:  tuning,
		Rand:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return &harness{t: t, world: w, actor: actor, engine: e}
}

func (h *harness) spawn(kind component.PlatformKind, x, y float64) ecs.Entity {
	h.t.Helper()
	ent, err := h.engine.Spawn(x, y, WithType(kind), WithNoMove(), WithAllowBaseX())
	if err != nil {
		h.t.Fatalf("spawn %s: %v", kind, err)
	}
	return ent
}

// step advances the clock and the engine n ticks.
func (h *harness) step(n int) {
	for i := 0; i < n; i++ {
		h.world.Advance(tick)
		h.engine.Update(tick, h.viewTop)
		h.events = append(h.events, h.engine.Events()...)
	}
}

func (h *harness) countEvents(kind ecs.EventKind, ent ecs.Entity) int {
	n := 0
	for _, evt := range h.events {
		if evt.Kind == kind && (ent == 0 || evt.Entity == ent) {
			n++
		}
	}
	return n
}

func (h *harness) platformAt(kind component.PlatformKind, x, y float64) []ecs.Entity {
	var out []ecs.Entity
	for _, ent := range h.engine.Platforms() {
		k, _ := h.engine.Kind(ent)
		px, py, _ := h.engine.Position(ent)
		if k == kind && px == x && py == y {
			out = append(out, ent)
		}
	}
	return out
}
