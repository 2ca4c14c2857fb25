package platform

import (
	"math"

	"github.com/milk9111/lavaclimb/ecs"
	"github.com/milk9111/lavaclimb/ecs/component"
)

// oscillationSystem swings moving platforms around their home x.
type oscillationSystem struct {
	e *Engine
}

func (s *oscillationSystem) Update(w *ecs.World) {
	e := s.e
	ecs.ForEach(w, component.OscillationComponent.Kind(), func(ent ecs.Entity, osc *component.Oscillation) {
		if osc.Period <= 0 {
			return
		}
		osc.Elapsed += e.dt
		phase := 2 * math.Pi * float64(osc.Elapsed%osc.Period) / float64(osc.Period)
		_, y, ok := e.Position(ent)
		if !ok {
			return
		}
		e.setPosition(ent, osc.HomeX+osc.Amplitude*math.Sin(phase), y)
	})
}

// streamingSystem recycles platforms that scrolled below the view and tops
// the population back up above the highest one. Destruction always finishes
// before replenishing.
type streamingSystem struct {
	e *Engine
}

func (s *streamingSystem) Update(_ *ecs.World) {
	e := s.e
	t := e.tuning
	limit := e.viewTop + t.ScreenHeight + t.DespawnMargin

	live := e.Platforms()
	count := 0
	top := math.Inf(1)
	for _, ent := range live {
		_, y, ok := e.Position(ent)
		if !ok {
			continue
		}
		if y > limit {
			e.Destroy(ent)
			continue
		}
		count++
		top = math.Min(top, y)
	}
	if math.IsInf(top, 1) {
		top = e.viewTop + t.ScreenHeight
	}

	for count < t.MinPlatforms {
		gap := t.GapMin + e.rng.Float64()*(t.GapMax-t.GapMin)
		y := top - gap
		if _, err := e.Spawn(e.randomX(), y); err != nil {
			e.log.Warn("replenish spawn failed", "err", err)
			return
		}
		top = y
		count++
	}
}
