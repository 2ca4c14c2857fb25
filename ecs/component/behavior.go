package component

import "time"

// BehaviorState is the per-kind payload of a platform. Exactly one concrete
// state type exists per PlatformKind.
type BehaviorState interface {
	Kind() PlatformKind
}

type NormalState struct{}

// FragileState accumulates continuous overlap until the platform breaks.
type FragileState struct {
	Overlap   time.Duration
	Triggered bool
}

// TimedState breaks after the actor stays long enough; it comes back later.
type TimedState struct {
	StayAccum time.Duration
	Breaking  bool
}

type DodgerState struct {
	LastDodge time.Duration
	HasDodged bool
}

type IceState struct{}

type BouncyState struct {
	CooldownActive bool
}

type InvertXState struct{}

type InversaState struct{}

func (*NormalState) Kind() PlatformKind  { return KindNormal }
func (*FragileState) Kind() PlatformKind { return KindFragile }
func (*TimedState) Kind() PlatformKind   { return KindTimed }
func (*DodgerState) Kind() PlatformKind  { return KindDodger }
func (*IceState) Kind() PlatformKind     { return KindIce }
func (*BouncyState) Kind() PlatformKind  { return KindBouncy }
func (*InvertXState) Kind() PlatformKind { return KindInvertX }
func (*InversaState) Kind() PlatformKind { return KindInversa }

// NewBehaviorState returns the zero state for kind, or nil for an unknown
// kind.
func NewBehaviorState(kind PlatformKind) BehaviorState {
	switch kind {
	case KindNormal:
		return &NormalState{}
	case KindFragile:
		return &FragileState{}
	case KindTimed:
		return &TimedState{}
	case KindDodger:
		return &DodgerState{}
	case KindIce:
		return &IceState{}
	case KindBouncy:
		return &BouncyState{}
	case KindInvertX:
		return &InvertXState{}
	case KindInversa:
		return &InversaState{}
	}
	return nil
}

type Behavior struct {
	State BehaviorState
}

var BehaviorComponent = NewComponent[Behavior]()
