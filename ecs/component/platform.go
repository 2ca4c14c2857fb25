package component

import (
	"image/color"

	"github.com/milk9111/lavaclimb/physics"
)

// PlatformKind names a platform type. It never changes after spawn.
type PlatformKind string

const (
	KindNormal  PlatformKind = "normal"
	KindFragile PlatformKind = "fragile"
	KindTimed   PlatformKind = "timed"
	KindDodger  PlatformKind = "dodger"
	KindIce     PlatformKind = "ice"
	KindBouncy  PlatformKind = "bouncy"
	KindInvertX PlatformKind = "invertX"
	KindInversa PlatformKind = "inversa"
)

// Kinds lists every platform kind in catalog order.
var Kinds = []PlatformKind{
	KindNormal, KindFragile, KindTimed, KindDodger,
	KindIce, KindBouncy, KindInvertX, KindInversa,
}

// Valid reports whether k is a known kind.
func (k PlatformKind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Platform is the collision and render state shared by every platform kind.
// Transform holds the centre x and top y.
type Platform struct {
	Kind   PlatformKind
	Width  float64
	Height float64

	Body   physics.BodyHandle
	Sensor physics.BodyHandle

	Color   color.NRGBA
	Alpha   float64
	Visible bool
	Moving  bool

	// Timers owned by this platform, cancelled when it is destroyed.
	Timers []physics.Token

	// Raw entity ids of the wrap mirrors, zero when absent.
	GhostLeft  uint64
	GhostRight uint64
}

var PlatformComponent = NewComponent[Platform]()

// TrackTimer records tok so destruction can cancel it.
func (p *Platform) TrackTimer(tok physics.Token) {
	if p == nil || tok == 0 {
		return
	}
	p.Timers = append(p.Timers, tok)
}

// ForgetTimer drops tok after it fired.
func (p *Platform) ForgetTimer(tok physics.Token) {
	if p == nil {
		return
	}
	for i, t := range p.Timers {
		if t == tok {
			p.Timers = append(p.Timers[:i], p.Timers[i+1:]...)
			return
		}
	}
}
