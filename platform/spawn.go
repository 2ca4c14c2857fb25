package platform

import (
	"fmt"
	"math"

	"github.com/milk9111/lavaclimb/ecs"
	"github.com/milk9111/lavaclimb/ecs/component"
	"github.com/milk9111/lavaclimb/physics"
)

type spawnOptions struct {
	kind       component.PlatformKind
	noMove     bool
	allowBaseX bool
}

// SpawnOption tweaks a single Spawn call.
type SpawnOption func(*spawnOptions)

// WithType forces the platform kind instead of drawing one.
func WithType(k component.PlatformKind) SpawnOption {
	return func(o *spawnOptions) { o.kind = k }
}

// WithNoMove keeps the platform still.
func WithNoMove() SpawnOption {
	return func(o *spawnOptions) { o.noMove = true }
}

// WithAllowBaseX skips the avoid zone re-roll, keeping x exactly.
func WithAllowBaseX() SpawnOption {
	return func(o *spawnOptions) { o.allowBaseX = true }
}

// Spawn creates a platform with its centre at x and its top at y.
func (e *Engine) Spawn(x, y float64, opts ...SpawnOption) (ecs.Entity, error) {
	if e == nil || e.closed {
		return 0, ErrEngineClosed
	}
	var o spawnOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	kind := o.kind
	if kind == "" {
		kind = e.ChooseType()
	}
	if !kind.Valid() {
		return 0, fmt.Errorf("spawn %q: %w", kind, ErrUnknownKind)
	}

	t := e.tuning
	y = math.Min(y, t.MaxY)
	if !o.allowBaseX {
		x = e.avoidX(x)
	}

	body, sensor, err := e.createColliders(x, y)
	if err != nil {
		return 0, fmt.Errorf("spawn %s: %w", kind, err)
	}

	ent := e.world.CreateEntity()
	p := &component.Platform{
		Kind:    kind,
		Width:   t.PlatformWidth,
		Height:  t.PlatformHeight,
		Body:    body,
		Sensor:  sensor,
		Color:   e.selector.catalog.Color(kind),
		Alpha:   1,
		Visible: true,
	}
	if err := e.attach(ent, x, y, p, component.NewBehaviorState(kind)); err != nil {
		e.port.DestroyBody(sensor)
		e.port.DestroyBody(body)
		e.world.DestroyEntity(ent)
		return 0, fmt.Errorf("spawn %s: %w", kind, err)
	}

	if !o.noMove && !t.MoveExclusive[kind] && t.MoveChance > 0 && e.rng.Float64() < t.MoveChance {
		p.Moving = true
		osc := &component.Oscillation{HomeX: x, Amplitude: t.MoveAmplitude, Period: t.MovePeriod}
		if err := ecs.Add(e.world, ent, component.OscillationComponent.Kind(), osc); err != nil {
			e.log.Warn("oscillation not attached", "entity", ent, "err", err)
			p.Moving = false
		}
	}

	e.refreshGhosts(ent)
	e.spawned++
	e.world.Events().Push(ecs.Event{Kind: ecs.EventSpawned, Entity: ent, Data: kind})
	e.log.Debug("platform spawned", "entity", ent, "kind", kind, "x", x, "y", y)

	if e.bonus != nil {
		if tag, ok := e.Tag(ent); ok {
			e.bonus.OfferPlatform(tag)
		}
	}
	return ent, nil
}

func (e *Engine) attach(ent ecs.Entity, x, y float64, p *component.Platform, state component.BehaviorState) error {
	if err := ecs.Add(e.world, ent, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return err
	}
	if err := ecs.Add(e.world, ent, component.PlatformComponent.Kind(), p); err != nil {
		return err
	}
	if state == nil {
		return nil
	}
	return ecs.Add(e.world, ent, component.BehaviorComponent.Kind(), &component.Behavior{State: state})
}

// createColliders adds the solid body and the thin sensor resting on top of
// it. x is the centre, y the top.
func (e *Engine) createColliders(x, y float64) (body, sensor physics.BodyHandle, err error) {
	t := e.tuning
	left := x - t.PlatformWidth/2
	body, err = e.port.CreateStaticBody(left, y, t.PlatformWidth, t.PlatformHeight)
	if err != nil {
		return 0, 0, err
	}
	sensor, err = e.port.CreateSensor(left, y-t.SensorHeight, t.PlatformWidth, t.SensorHeight)
	if err != nil {
		e.port.DestroyBody(body)
		return 0, 0, err
	}
	return body, sensor, nil
}

// avoidX re-rolls x while it sits inside the avoid zone. The last candidate
// is kept once attempts run out.
func (e *Engine) avoidX(x float64) float64 {
	zone := e.tuning.AvoidX
	if !zone.Enabled || zone.Radius <= 0 {
		return x
	}
	for i := 0; i < e.tuning.AvoidAttempts && math.Abs(x-zone.X) < zone.Radius; i++ {
		x = e.randomX()
	}
	return x
}

// randomX is a centre x keeping the whole platform on screen.
func (e *Engine) randomX() float64 {
	t := e.tuning
	half := t.PlatformWidth / 2
	span := t.ScreenWidth - t.PlatformWidth
	if span <= 0 {
		return t.ScreenWidth / 2
	}
	return half + e.rng.Float64()*span
}
