package platform

import (
	"math"
	"time"

	"github.com/milk9111/lavaclimb/common"
	"github.com/milk9111/lavaclimb/ecs"
	"github.com/milk9111/lavaclimb/ecs/component"
	"github.com/milk9111/lavaclimb/physics"
)

const bouncyFlashAlpha = 0.6

// actorFrame is the actor snapshot shared by every behaviour in one tick.
type actorFrame struct {
	x, y     float64
	vx, vy   float64
	grounded bool
	jump     bool
	body     physics.BodyHandle
	// standing is the platform under the actor's feet, zero when airborne or
	// on something else.
	standing ecs.Entity
}

// behaviorSystem runs every platform's behaviour once per tick and then
// settles control inversion ownership.
type behaviorSystem struct {
	e *Engine
}

func (s *behaviorSystem) Update(w *ecs.World) {
	e := s.e
	frame, ok := e.actorFrame()
	if !ok {
		// Actor body not ready yet; try again next tick.
		return
	}

	for _, ent := range e.Platforms() {
		if !w.IsAlive(ent) {
			continue
		}
		b, ok := ecs.Get(w, ent, component.BehaviorComponent.Kind())
		if !ok || b.State == nil {
			continue
		}
		p, ok := ecs.Get(w, ent, component.PlatformComponent.Kind())
		if !ok {
			continue
		}

		switch st := b.State.(type) {
		case *component.NormalState:
		case *component.FragileState:
			e.updateFragile(ent, p, st, &frame)
		case *component.TimedState:
			e.updateTimed(ent, p, st, &frame)
		case *component.DodgerState:
			e.updateDodger(ent, p, st, &frame)
		case *component.IceState:
			if frame.standing == ent {
				e.actor.GrantSlip(e.tuning.IceSlip)
			}
		case *component.BouncyState:
			e.updateBouncy(ent, p, st, &frame)
		case *component.InvertXState:
			if e.touching(ent, p, frame.body) {
				e.controls.claim(ent)
			}
		case *component.InversaState:
			e.updateInversa(ent, &frame)
		}
	}

	e.controls.resolve(frame.standing, frame.grounded)
}

func (e *Engine) actorFrame() (actorFrame, bool) {
	var f actorFrame
	f.body = e.actor.Body()
	if f.body == 0 {
		return f, false
	}
	f.x, f.y = e.actor.Position()
	f.vx, f.vy = e.actor.Velocity()
	f.grounded = e.actor.Grounded()
	f.jump = e.actor.JumpPressed()
	if f.grounded {
		f.standing = e.standingOn(f.body)
	}
	return f, true
}

// standingOn finds the platform whose top sensor (or a ghost's) holds body.
func (e *Engine) standingOn(body physics.BodyHandle) ecs.Entity {
	for _, ent := range e.Platforms() {
		p, ok := ecs.Get(e.world, ent, component.PlatformComponent.Kind())
		if !ok {
			continue
		}
		if e.touching(ent, p, body) {
			return ent
		}
	}
	return 0
}

// touching reports whether body overlaps the top sensor of ent or of one of
// its ghosts.
func (e *Engine) touching(ent ecs.Entity, p *component.Platform, body physics.BodyHandle) bool {
	if body == 0 || p == nil {
		return false
	}
	if e.port.Overlaps(p.Sensor, body) {
		return true
	}
	for _, raw := range [2]uint64{p.GhostLeft, p.GhostRight} {
		if raw == 0 {
			continue
		}
		g, ok := ecs.Get(e.world, ecs.Entity(raw), component.PlatformComponent.Kind())
		if ok && e.port.Overlaps(g.Sensor, body) {
			return true
		}
	}
	return false
}

func (e *Engine) updateFragile(ent ecs.Entity, p *component.Platform, st *component.FragileState, f *actorFrame) {
	if st.Triggered {
		return
	}
	if !e.touching(ent, p, f.body) {
		st.Overlap = 0
		return
	}
	st.Overlap += e.dt
	if st.Overlap < e.tuning.FragileOverlap {
		return
	}
	st.Triggered = true
	e.startBreak(ent, e.tuning.FragileBlink, func() {
		e.Destroy(ent)
	})
}

func (e *Engine) updateTimed(ent ecs.Entity, p *component.Platform, st *component.TimedState, f *actorFrame) {
	if st.Breaking {
		return
	}
	if !e.touching(ent, p, f.body) {
		st.StayAccum = 0
		return
	}
	st.StayAccum += e.dt
	if st.StayAccum < e.tuning.TimedStay {
		return
	}
	st.Breaking = true
	e.startBreak(ent, e.tuning.TimedBlink, func() {
		x, y, ok := e.Position(ent)
		if !ok || !e.Destroy(ent) {
			return
		}
		e.scheduleRespawn(component.KindTimed, x, y)
	})
}

// startBreak blinks ent every BlinkInterval for d and then runs done.
func (e *Engine) startBreak(ent ecs.Entity, d time.Duration, done func()) {
	e.every(ent, e.tuning.BlinkInterval, func(p *component.Platform) {
		p.Visible = !p.Visible
	})
	e.schedule(ent, d, func(*component.Platform) {
		done()
	})
}

// scheduleRespawn brings a platform of kind back at (x, y) once. The token
// lives on the engine since the platform is gone by now.
func (e *Engine) scheduleRespawn(kind component.PlatformKind, x, y float64) {
	var tok physics.Token
	tok = e.port.ScheduleOnce(e.tuning.TimedRespawn, func() {
		delete(e.respawns, tok)
		if e.closed {
			return
		}
		ent, err := e.Spawn(x, y, WithType(kind), WithNoMove(), WithAllowBaseX())
		if err != nil {
			e.log.Warn("respawn failed", "kind", kind, "err", err)
			return
		}
		e.world.Events().Push(ecs.Event{Kind: ecs.EventRespawned, Entity: ent, Data: kind})
	})
	e.respawns[tok] = struct{}{}
}

func (e *Engine) updateDodger(ent ecs.Entity, p *component.Platform, st *component.DodgerState, f *actorFrame) {
	t := e.tuning
	now := e.port.Now()
	if st.HasDodged && now-st.LastDodge < t.DodgerCooldown {
		return
	}
	if !f.jump && f.vy >= 0 {
		return
	}
	px, py, ok := e.Position(ent)
	if !ok {
		return
	}
	dy := py - f.y
	if math.Abs(f.x-px) > t.DodgerWindowX || dy < t.DodgerMinDY || dy > t.DodgerMaxDY {
		return
	}

	x := px
	for i := 0; i < t.DodgerAttempts; i++ {
		x = e.randomX()
		if math.Abs(x-px) >= t.DodgerMinDistance {
			break
		}
	}
	if osc, ok := ecs.Get(e.world, ent, component.OscillationComponent.Kind()); ok {
		osc.HomeX = x
	}
	e.setPosition(ent, x, py)
	st.LastDodge = now
	st.HasDodged = true
	e.flash(ent, p, t.DodgerFlashAlpha, t.DodgerFlash)
	e.world.Events().Push(ecs.Event{Kind: ecs.EventDodged, Entity: ent, Data: px})
}

func (e *Engine) updateBouncy(ent ecs.Entity, p *component.Platform, st *component.BouncyState, f *actorFrame) {
	if st.CooldownActive || f.vy <= 0 || !e.touching(ent, p, f.body) {
		return
	}
	t := e.tuning
	e.actor.SetVelocityY(-t.BouncyMultiplier * t.JumpImpulse)
	st.CooldownActive = true
	e.schedule(ent, t.BouncyCooldown, func(*component.Platform) {
		st.CooldownActive = false
	})
	e.flash(ent, p, bouncyFlashAlpha, t.BouncyFlash)
	e.world.Events().Push(ecs.Event{Kind: ecs.EventBounced, Entity: ent})
}

func (e *Engine) updateInversa(ent ecs.Entity, f *actorFrame) {
	dir := common.Sign(f.vx)
	if dir == 0 || e.dt <= 0 {
		return
	}
	x, y, ok := e.Position(ent)
	if !ok {
		return
	}
	delta := -dir * e.tuning.InversaSpeed * e.dt.Seconds()
	w := e.tuning.ScreenWidth
	if osc, ok := ecs.Get(e.world, ent, component.OscillationComponent.Kind()); ok {
		osc.HomeX = common.Wrap(osc.HomeX+delta, w)
	}
	e.setPosition(ent, common.Wrap(x+delta, w), y)
}

// flash drops the platform alpha for d.
func (e *Engine) flash(ent ecs.Entity, p *component.Platform, alpha float64, d time.Duration) {
	p.Alpha = alpha
	e.schedule(ent, d, func(cur *component.Platform) {
		cur.Alpha = 1
	})
}
