package platform

import (
	"github.com/milk9111/lavaclimb/ecs"
	"github.com/milk9111/lavaclimb/ecs/component"
)

func (e *Engine) edgeSide(x float64) component.EdgeSide {
	t := e.tuning
	switch {
	case x < t.EdgeMargin:
		return component.EdgeLeft
	case x > t.ScreenWidth-t.EdgeMargin:
		return component.EdgeRight
	}
	return component.EdgeNone
}

// ghostX is where the mirror of a platform at x sits.
func (e *Engine) ghostX(x float64, side component.EdgeSide) float64 {
	if side == component.EdgeLeft {
		return x + e.tuning.ScreenWidth
	}
	return x - e.tuning.ScreenWidth
}

// setPosition moves ent, its colliders and its ghost.
func (e *Engine) setPosition(ent ecs.Entity, x, y float64) {
	tr, ok := ecs.Get(e.world, ent, component.TransformComponent.Kind())
	if !ok {
		return
	}
	tr.X, tr.Y = x, y
	if p, ok := ecs.Get(e.world, ent, component.PlatformComponent.Kind()); ok {
		e.moveColliders(p, x, y)
	}
	e.refreshGhosts(ent)
}

func (e *Engine) moveColliders(p *component.Platform, x, y float64) {
	left := x - p.Width/2
	e.port.MoveBody(p.Body, left, y)
	e.port.MoveBody(p.Sensor, left, y-e.tuning.SensorHeight)
}

// refreshGhosts keeps the mirror of ent in line with the edge zone it is in.
// Mirrors are only created or destroyed when the side changes.
func (e *Engine) refreshGhosts(ent ecs.Entity) {
	tr, ok := ecs.Get(e.world, ent, component.TransformComponent.Kind())
	if !ok {
		return
	}
	p, ok := ecs.Get(e.world, ent, component.PlatformComponent.Kind())
	if !ok {
		return
	}

	side := e.edgeSide(tr.X)
	prev := e.edges[ent]
	if side == prev {
		if side != component.EdgeNone {
			e.moveGhost(p, side, tr.X, tr.Y)
		}
		return
	}

	e.dropGhosts(ent, p)
	if side == component.EdgeNone {
		return
	}
	g, err := e.createGhost(ent, p, side, tr.X, tr.Y)
	if err != nil {
		e.log.Warn("ghost not created", "entity", ent, "err", err)
		return
	}
	if side == component.EdgeLeft {
		p.GhostLeft = uint64(g)
	} else {
		p.GhostRight = uint64(g)
	}
	e.edges[ent] = side
}

func (e *Engine) createGhost(origin ecs.Entity, p *component.Platform, side component.EdgeSide, x, y float64) (ecs.Entity, error) {
	gx := e.ghostX(x, side)
	body, sensor, err := e.createColliders(gx, y)
	if err != nil {
		return 0, err
	}
	g := e.world.CreateEntity()
	gp := &component.Platform{
		Kind:   p.Kind,
		Width:  p.Width,
		Height: p.Height,
		Body:   body,
		Sensor: sensor,
	}
	if err := e.attach(g, gx, y, gp, nil); err != nil {
		e.port.DestroyBody(sensor)
		e.port.DestroyBody(body)
		e.world.DestroyEntity(g)
		return 0, err
	}
	if err := ecs.Add(e.world, g, component.GhostComponent.Kind(), &component.Ghost{Origin: uint64(origin), Side: side}); err != nil {
		e.destroyGhost(g)
		return 0, err
	}
	return g, nil
}

func (e *Engine) moveGhost(p *component.Platform, side component.EdgeSide, x, y float64) {
	raw := p.GhostRight
	if side == component.EdgeLeft {
		raw = p.GhostLeft
	}
	g := ecs.Entity(raw)
	tr, ok := ecs.Get(e.world, g, component.TransformComponent.Kind())
	if !ok {
		return
	}
	gp, ok := ecs.Get(e.world, g, component.PlatformComponent.Kind())
	if !ok {
		return
	}
	tr.X, tr.Y = e.ghostX(x, side), y
	e.moveColliders(gp, tr.X, tr.Y)
}

// dropGhosts destroys both mirrors of ent and forgets its edge side.
func (e *Engine) dropGhosts(ent ecs.Entity, p *component.Platform) {
	if p.GhostLeft != 0 {
		e.destroyGhost(ecs.Entity(p.GhostLeft))
		p.GhostLeft = 0
	}
	if p.GhostRight != 0 {
		e.destroyGhost(ecs.Entity(p.GhostRight))
		p.GhostRight = 0
	}
	delete(e.edges, ent)
}

func (e *Engine) destroyGhost(g ecs.Entity) bool {
	if !e.world.IsAlive(g) {
		return false
	}
	if gp, ok := ecs.Get(e.world, g, component.PlatformComponent.Kind()); ok {
		e.port.DestroyBody(gp.Sensor)
		e.port.DestroyBody(gp.Body)
	}
	return e.world.DestroyEntity(g)
}
