package platform

import (
	"image/color"

	"github.com/milk9111/lavaclimb/ecs"
	"github.com/milk9111/lavaclimb/ecs/component"
)

// RenderTag is everything a renderer needs to draw one platform or ghost.
// X is the centre and Y the top edge.
type RenderTag struct {
	Entity      ecs.Entity
	Kind        component.PlatformKind
	DisplayName string
	X, Y        float64
	Width       float64
	Height      float64
	Color       color.NRGBA
	Alpha       float64
	Visible     bool
	Ghost       bool

	IsFragile bool
	IsTimed   bool
	IsDodger  bool
	IsIce     bool
	IsBouncy  bool
	IsInvertX bool
	IsInversa bool
	IsMoving  bool
}

// RenderTags lists every live platform and ghost.
func (e *Engine) RenderTags() []RenderTag {
	ents := e.world.Query(component.PlatformComponent.Kind())
	tags := make([]RenderTag, 0, len(ents))
	for _, ent := range ents {
		if tag, ok := e.Tag(ent); ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Tag builds the render tag of ent. Ghosts take their look from the origin.
func (e *Engine) Tag(ent ecs.Entity) (RenderTag, bool) {
	tr, ok := ecs.Get(e.world, ent, component.TransformComponent.Kind())
	if !ok {
		return RenderTag{}, false
	}
	p, ok := ecs.Get(e.world, ent, component.PlatformComponent.Kind())
	if !ok {
		return RenderTag{}, false
	}

	look := p
	ghost := false
	if g, ok := ecs.Get(e.world, ent, component.GhostComponent.Kind()); ok {
		ghost = true
		origin, ok := ecs.Get(e.world, ecs.Entity(g.Origin), component.PlatformComponent.Kind())
		if !ok {
			return RenderTag{}, false
		}
		look = origin
	}

	tag := RenderTag{
		Entity:  ent,
		Kind:    p.Kind,
		X:       tr.X,
		Y:       tr.Y,
		Width:   p.Width,
		Height:  p.Height,
		Color:   look.Color,
		Alpha:   look.Alpha,
		Visible: look.Visible,
		Ghost:   ghost,

		IsFragile: p.Kind == component.KindFragile,
		IsTimed:   p.Kind == component.KindTimed,
		IsDodger:  p.Kind == component.KindDodger,
		IsIce:     p.Kind == component.KindIce,
		IsBouncy:  p.Kind == component.KindBouncy,
		IsInvertX: p.Kind == component.KindInvertX,
		IsInversa: p.Kind == component.KindInversa,
		IsMoving:  look.Moving,
	}
	if pt, ok := e.selector.catalog.Lookup(p.Kind); ok {
		tag.DisplayName = pt.DisplayName
	}
	return tag, true
}
