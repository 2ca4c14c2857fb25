package main

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/milk9111/lavaclimb/common"
	"github.com/milk9111/lavaclimb/ecs"
	"github.com/milk9111/lavaclimb/ecs/component"
	"github.com/milk9111/lavaclimb/physics"
	"github.com/milk9111/lavaclimb/platform"
)

const (
	botWidth   = 24
	botHeight  = 36
	botSpeed   = 200.0
	botGravity = 1150.0
)

// bot is an autopilot actor: when grounded it picks a reachable platform
// above and jumps towards it.
type bot struct {
	space    *physics.Space
	body     physics.BodyHandle
	controls *platform.InvertControl
	screenW  float64
	impulse  float64

	x, feet  float64
	vx, vy   float64
	impactVY float64
	grounded bool
	jump     bool
	targetX  float64
	slip     time.Duration
}

func (b *bot) Position() (float64, float64) { return b.x, b.feet }

// Velocity reports the fall speed the bot landed with on the step it landed.
func (b *bot) Velocity() (float64, float64) {
	if b.impactVY > 0 {
		return b.vx, b.impactVY
	}
	return b.vx, b.vy
}

func (b *bot) Grounded() bool           { return b.grounded }
func (b *bot) JumpPressed() bool        { return b.jump }
func (b *bot) Body() physics.BodyHandle { return b.body }

func (b *bot) SetVelocityY(vy float64) {
	b.vy = vy
	b.impactVY = 0
	b.grounded = false
}

func (b *bot) GrantSlip(d time.Duration) {
	b.slip = max(b.slip, d)
}

func (b *bot) think(tags []platform.RenderTag) {
	b.jump = false
	if !b.grounded {
		return
	}
	best, bestScore := -1, math.Inf(1)
	for i, t := range tags {
		rise := b.feet - t.Y
		if t.Ghost || rise < 20 || rise > 115 {
			continue
		}
		score := math.Abs(t.X-b.x) - rise*0.5
		if score < bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		// Nothing reachable: wander.
		b.targetX = b.x + 60*common.Sign(b.screenW/2-b.x+1)
		return
	}
	b.targetX = tags[best].X
	b.vy = -b.impulse
	b.grounded = false
	b.jump = true
}

func (b *bot) step(dt time.Duration, tags []platform.RenderTag) {
	secs := dt.Seconds()
	dir := common.Sign(b.targetX - b.x)
	if math.Abs(b.targetX-b.x) < 4 {
		dir = 0
	}
	// The bot pre-flips its input while controls are inverted, the game
	// flips it back.
	input := b.controls.ApplyX(dir)
	want := b.controls.ApplyX(input) * botSpeed
	if b.slip > 0 {
		b.vx = common.Lerp(b.vx, want, 0.06)
		b.slip -= dt
	} else {
		b.vx = want
	}

	b.vy += botGravity * secs
	prev := b.feet
	b.x = common.Wrap(b.x+b.vx*secs, b.screenW)
	b.feet += b.vy * secs

	b.grounded = false
	b.impactVY = 0
	if b.vy >= 0 {
		for _, t := range tags {
			if math.Abs(t.X-b.x) > t.Width/2+botWidth/2 {
				continue
			}
			if prev <= t.Y && b.feet >= t.Y {
				b.feet = t.Y
				b.impactVY = b.vy
				b.vy = 0
				b.grounded = true
				break
			}
		}
	}
	b.space.MoveBody(b.body, b.x-botWidth/2, b.feet-botHeight)
}

// sim couples the engine, its space and the bot without any terminal.
type sim struct {
	space   *physics.Space
	engine  *platform.Engine
	bot     *bot
	tuning  platform.Tuning
	viewTop float64
	falls   int
	bounces int
}

func newSim(catalog *platform.Catalog, tuning platform.Tuning, modifier platform.WeightModifier, seed uint64) (*sim, error) {
	space := physics.NewSpace()
	b := &bot{
		space:   space,
		screenW: tuning.ScreenWidth,
		impulse: tuning.JumpImpulse,
		x:       tuning.ScreenWidth / 2,
		feet:    tuning.MaxY,
	}
	b.targetX = b.x
	body, err := space.CreateStaticBody(b.x-botWidth/2, b.feet-botHeight, botWidth, botHeight)
	if err != nil {
		return nil, err
	}
	b.body = body
	b.grounded = true

	engine, err := platform.New(platform.Config{
		World:    space,
		Actor:    b,
		Catalog:  catalog,
		Tuning:   tuning,
		Rand:     rand.New(rand.NewPCG(seed, seed+1)),
		Modifier: modifier,
		Logger:   common.Logger("platview"),
	})
	if err != nil {
		return nil, err
	}
	b.controls = engine.Controls()
	if _, err := engine.Spawn(b.x, b.feet,
		platform.WithType(component.KindNormal),
		platform.WithNoMove(),
		platform.WithAllowBaseX(),
	); err != nil {
		return nil, fmt.Errorf("base platform: %w", err)
	}

	s := &sim{space: space, engine: engine, bot: b, tuning: engine.Tuning()}
	s.viewTop = b.feet + 60 - s.tuning.ScreenHeight
	return s, nil
}

func (s *sim) step(dt time.Duration) {
	tags := s.engine.RenderTags()
	s.bot.think(tags)
	s.bot.step(dt, tags)

	target := s.bot.feet - s.tuning.ScreenHeight*0.55
	if target < s.viewTop {
		s.viewTop = target
	}
	// A bot that fell off the view is put back on the highest visible
	// platform so the viewer keeps climbing.
	if s.bot.feet > s.viewTop+s.tuning.ScreenHeight {
		s.falls++
		s.rescue(tags)
	}

	s.space.Advance(dt)
	s.engine.Update(dt, s.viewTop)
	for _, evt := range s.engine.Events() {
		if evt.Kind == ecs.EventBounced {
			s.bounces++
		}
	}
}

func (s *sim) rescue(tags []platform.RenderTag) {
	bottom := s.viewTop + s.tuning.ScreenHeight
	best := -1
	for i, t := range tags {
		if t.Ghost || t.Y > bottom || t.Y < s.viewTop {
			continue
		}
		if best < 0 || t.Y > tags[best].Y {
			best = i
		}
	}
	if best < 0 {
		s.bot.feet = bottom - 40
	} else {
		s.bot.x, s.bot.feet = tags[best].X, tags[best].Y
	}
	s.bot.vx, s.bot.vy = 0, 0
}
