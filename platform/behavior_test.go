package platform

import (
	"math"
	"testing"

	"github.com/milk9111/lavaclimb/ecs"
	"github.com/milk9111/lavaclimb/ecs/component"
)

func TestFragileBreaksAfterContinuousOverlap(t *testing.T) {
	h := newHarness(t, testTuning(), 100, 100, 1)
	ent := h.spawn(component.KindFragile, 100, 100)

	// 500ms of overlap triggers the break, 300ms of blinking follows.
	h.step(49)
	if st := fragileState(t, h, ent); st.Triggered {
		t.Fatalf("fragile triggered after %v of overlap", st.Overlap)
	}
	h.step(1)
	if st := fragileState(t, h, ent); !st.Triggered {
		t.Fatalf("expected fragile to trigger at 500ms, overlap=%v", st.Overlap)
	}
	h.step(29)
	if !h.engine.World().IsAlive(ent) {
		t.Fatalf("fragile destroyed before blink finished")
	}
	h.step(1)
	if h.engine.World().IsAlive(ent) {
		t.Fatalf("expected fragile destroyed after blink")
	}
	h.step(100)
	if n := h.countEvents(ecs.EventDestroyed, ent); n != 1 {
		t.Fatalf("expected exactly one destroy event, got %d", n)
	}
}

func TestFragileInterruptedOverlapResets(t *testing.T) {
	h := newHarness(t, testTuning(), 100, 100, 2)
	ent := h.spawn(component.KindFragile, 100, 100)

	for round := 0; round < 5; round++ {
		h.actor.place(100, 100)
		h.step(45)
		h.actor.place(400, 100)
		h.step(1)
		if st := fragileState(t, h, ent); st.Overlap != 0 || st.Triggered {
			t.Fatalf("round %d: expected reset, got %+v", round, *st)
		}
	}
	h.step(100)
	if !h.engine.World().IsAlive(ent) {
		t.Fatalf("interrupted overlap must not break a fragile platform")
	}
}

func TestFragileBreakWhileOverlapLost(t *testing.T) {
	h := newHarness(t, testTuning(), 100, 100, 3)
	ent := h.spawn(component.KindFragile, 100, 100)
	h.step(50)
	h.actor.place(400, 100)
	h.step(30)
	if h.engine.World().IsAlive(ent) {
		t.Fatalf("a triggered fragile platform breaks even once the actor left")
	}
}

func TestTimedRespawnsAtSamePosition(t *testing.T) {
	h := newHarness(t, testTuning(), 100, 100, 4)
	ent := h.spawn(component.KindTimed, 100, 100)

	h.step(100)
	st, ok := ecs.Get(h.engine.World(), ent, component.BehaviorComponent.Kind())
	if !ok || !st.State.(*component.TimedState).Breaking {
		t.Fatalf("expected timed platform breaking after 1000ms of overlap")
	}

	h.step(99)
	if !h.engine.World().IsAlive(ent) {
		t.Fatalf("timed platform destroyed before its blink ended")
	}
	h.step(1)
	if h.engine.World().IsAlive(ent) {
		t.Fatalf("expected timed platform destroyed after blinking 1000ms")
	}
	if got := h.engine.Stats().PendingRespawns; got != 1 {
		t.Fatalf("expected one pending respawn, got %d", got)
	}

	h.step(49)
	if got := h.platformAt(component.KindTimed, 100, 100); len(got) != 0 {
		t.Fatalf("respawned early: %v", got)
	}
	h.step(1)
	got := h.platformAt(component.KindTimed, 100, 100)
	if len(got) != 1 {
		t.Fatalf("expected one timed platform back at (100,100), got %v", got)
	}
	if got[0] == ent {
		t.Fatalf("respawn must be a new entity")
	}
	if n := h.countEvents(ecs.EventRespawned, 0); n != 1 {
		t.Fatalf("expected one respawn event, got %d", n)
	}

	h.actor.place(400, 100)
	h.step(200)
	if got := h.platformAt(component.KindTimed, 100, 100); len(got) != 1 {
		t.Fatalf("expected the respawn to happen only once, got %v", got)
	}
}

func TestTimedOverlapResets(t *testing.T) {
	h := newHarness(t, testTuning(), 100, 100, 5)
	ent := h.spawn(component.KindTimed, 100, 100)
	h.step(90)
	h.actor.place(400, 100)
	h.step(1)
	h.actor.place(100, 100)
	h.step(90)

	b, _ := ecs.Get(h.engine.World(), ent, component.BehaviorComponent.Kind())
	st := b.State.(*component.TimedState)
	if st.Breaking {
		t.Fatalf("accumulator should have reset when overlap was lost")
	}
	if st.StayAccum != 90*tick {
		t.Fatalf("StayAccum = %v, want %v", st.StayAccum, 90*tick)
	}
}

func TestDodgerRelocation(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		h := newHarness(t, testTuning(), 60, 200, seed)
		ent := h.spawn(component.KindDodger, 60, 300)
		h.actor.vy = -200

		h.step(1)
		x, y, _ := h.engine.Position(ent)
		if math.Abs(x-60) < h.engine.Tuning().DodgerMinDistance {
			t.Fatalf("seed %d: relocated to %v, too close to 60", seed, x)
		}
		if y != 300 {
			t.Fatalf("seed %d: dodge changed y to %v", seed, y)
		}
		if n := h.countEvents(ecs.EventDodged, ent); n != 1 {
			t.Fatalf("seed %d: expected one dodge, got %d", seed, n)
		}

		// Follow the platform: within the cooldown it stays put.
		h.actor.place(x, 200)
		h.step(69)
		if nx, _, _ := h.engine.Position(ent); nx != x {
			t.Fatalf("seed %d: dodged again within cooldown (%v -> %v)", seed, x, nx)
		}
		h.step(1)
		if nx, _, _ := h.engine.Position(ent); nx == x {
			t.Fatalf("seed %d: expected a second dodge after the cooldown", seed)
		}
	}
}

func TestDodgerIgnoresFallingActor(t *testing.T) {
	h := newHarness(t, testTuning(), 240, 200, 7)
	ent := h.spawn(component.KindDodger, 240, 300)
	h.actor.vy = 150
	h.step(10)
	if x, _, _ := h.engine.Position(ent); x != 240 {
		t.Fatalf("falling actor without jump input moved dodger to %v", x)
	}
	h.actor.jump = true
	h.step(1)
	if x, _, _ := h.engine.Position(ent); x == 240 {
		t.Fatalf("jump press inside the window should dodge")
	}
}

func TestIceGrantsSlipWhileStanding(t *testing.T) {
	h := newHarness(t, testTuning(), 300, 300, 8)
	h.spawn(component.KindIce, 300, 300)

	h.actor.grounded = false
	h.step(3)
	if h.actor.slipGrants != 0 {
		t.Fatalf("slip granted while airborne")
	}
	h.actor.grounded = true
	h.step(3)
	if h.actor.slipGrants != 3 || h.actor.slip != h.engine.Tuning().IceSlip {
		t.Fatalf("expected 3 grants of %v, got %d of %v", h.engine.Tuning().IceSlip, h.actor.slipGrants, h.actor.slip)
	}
}

func TestBouncyLaunchesWithCooldown(t *testing.T) {
	h := newHarness(t, testTuning(), 300, 300, 9)
	ent := h.spawn(component.KindBouncy, 300, 300)
	tuning := h.engine.Tuning()
	want := -tuning.BouncyMultiplier * tuning.JumpImpulse

	h.actor.vy = 200
	h.step(1)
	if len(h.actor.setVY) != 1 || h.actor.setVY[0] != want {
		t.Fatalf("expected a single launch at %v, got %v", want, h.actor.setVY)
	}
	if tag, _ := h.engine.Tag(ent); tag.Alpha == 1 {
		t.Fatalf("expected the bouncy platform to flash")
	}

	// Still falling onto it during the cooldown.
	h.actor.vy = 200
	h.step(20)
	if len(h.actor.setVY) != 1 {
		t.Fatalf("bounced during cooldown: %v", h.actor.setVY)
	}
	h.actor.vy = 200
	h.step(2)
	if len(h.actor.setVY) != 2 {
		t.Fatalf("expected a second bounce after cooldown, got %v", h.actor.setVY)
	}
}

func TestInversaMovesAgainstActor(t *testing.T) {
	h := newHarness(t, testTuning(), 300, 600, 10)
	ent := h.spawn(component.KindInversa, 240, 300)
	speed := h.engine.Tuning().InversaSpeed

	h.actor.vx = 50
	h.step(100)
	x, _, _ := h.engine.Position(ent)
	if want := 240 - speed; math.Abs(x-want) > 1e-6 {
		t.Fatalf("x = %v, want %v", x, want)
	}

	h.actor.vx = 0
	h.step(10)
	if nx, _, _ := h.engine.Position(ent); nx != x {
		t.Fatalf("idle actor moved inversa platform")
	}

	h.actor.vx = -1
	h.step(350)
	nx, _, _ := h.engine.Position(ent)
	w := h.engine.Tuning().ScreenWidth
	want := math.Mod(x+3.5*speed, w)
	if math.Abs(nx-want) > 1e-6 || nx < 0 || nx >= w {
		t.Fatalf("expected wrapped x %v, got %v", want, nx)
	}
}

func fragileState(t *testing.T, h *harness, ent ecs.Entity) *component.FragileState {
	t.Helper()
	b, ok := ecs.Get(h.engine.World(), ent, component.BehaviorComponent.Kind())
	if !ok {
		t.Fatalf("no behaviour for %v", ent)
	}
	st, ok := b.State.(*component.FragileState)
	if !ok {
		t.Fatalf("expected fragile state, got %T", b.State)
	}
	return st
}
