package platform

import (
	"time"

	"github.com/milk9111/lavaclimb/physics"
)

// World is the collision and timing capability the engine runs against.
// physics.Space implements it.
type World interface {
	CreateStaticBody(x, y, w, h float64) (physics.BodyHandle, error)
	CreateSensor(x, y, w, h float64) (physics.BodyHandle, error)
	MoveBody(h physics.BodyHandle, x, y float64)
	DestroyBody(h physics.BodyHandle)
	Overlaps(a, b physics.BodyHandle) bool

	ScheduleOnce(d time.Duration, fn func()) physics.Token
	SchedulePeriodic(interval time.Duration, fn func()) physics.Token
	Cancel(tok physics.Token)
	Now() time.Duration
}

// ActorQuery is read-only access to the controlled actor. Position is the
// horizontal centre and the feet (bottom) y; y grows downward. On the tick
// the actor lands, Velocity reports the fall speed it landed with rather
// than the zero the landing left behind.
type ActorQuery interface {
	Position() (x, y float64)
	Velocity() (vx, vy float64)
	Grounded() bool
	JumpPressed() bool
	Body() physics.BodyHandle
}

// ActorEffects are the mutations platform behaviours apply to the actor.
type ActorEffects interface {
	SetVelocityY(vy float64)
	GrantSlip(d time.Duration)
}

type Actor interface {
	ActorQuery
	ActorEffects
}

// BonusSpawnHook is offered every freshly spawned platform, e.g. to stack a
// power-up on top of it.
type BonusSpawnHook interface {
	OfferPlatform(tag RenderTag)
}
