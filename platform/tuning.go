package platform

import (
	"time"

	"github.com/milk9111/lavaclimb/ecs/component"
	"github.com/milk9111/lavaclimb/prefabs"
)

type AvoidZone struct {
	Enabled bool
	X       float64
	Radius  float64
}

// Tuning holds every engine constant. Zero fields are replaced by
// DefaultTuning values in New.
type Tuning struct {
	ScreenWidth    float64
	ScreenHeight   float64
	PlatformWidth  float64
	PlatformHeight float64
	SensorHeight   float64
	EdgeMargin     float64
	MaxY           float64
	AvoidX         AvoidZone
	AvoidAttempts  int
	MinPlatforms   int
	GapMin         float64
	GapMax         float64
	DespawnMargin  float64

	MoveChance    float64
	MoveExclusive map[component.PlatformKind]bool
	MoveAmplitude float64
	MovePeriod    time.Duration

	BlinkInterval     time.Duration
	FragileOverlap    time.Duration
	FragileBlink      time.Duration
	TimedStay         time.Duration
	TimedBlink        time.Duration
	TimedRespawn      time.Duration
	DodgerWindowX     float64
	DodgerMinDY       float64
	DodgerMaxDY       float64
	DodgerCooldown    time.Duration
	DodgerMinDistance float64
	DodgerAttempts    int
	DodgerFlash       time.Duration
	DodgerFlashAlpha  float64
	IceSlip           time.Duration
	BouncyCooldown    time.Duration
	BouncyFlash       time.Duration
	BouncyMultiplier  float64
	JumpImpulse       float64
	InversaSpeed      float64
}

func DefaultTuning() Tuning {
	return Tuning{
		ScreenWidth:    480,
		ScreenHeight:   800,
		PlatformWidth:  96,
		PlatformHeight: 16,
		SensorHeight:   6,
		EdgeMargin:     80,
		MaxY:           740,
		AvoidX:         AvoidZone{Enabled: true, X: 240, Radius: 70},
		AvoidAttempts:  10,
		MinPlatforms:   14,
		GapMin:         70,
		GapMax:         120,
		DespawnMargin:  120,

		MoveChance: 0.15,
		MoveExclusive: map[component.PlatformKind]bool{
			component.KindDodger:  true,
			component.KindIce:     true,
			component.KindBouncy:  true,
			component.KindInvertX: true,
		},
		MoveAmplitude: 60,
		MovePeriod:    2600 * time.Millisecond,

		BlinkInterval:     100 * time.Millisecond,
		FragileOverlap:    500 * time.Millisecond,
		FragileBlink:      300 * time.Millisecond,
		TimedStay:         time.Second,
		TimedBlink:        time.Second,
		TimedRespawn:      500 * time.Millisecond,
		DodgerWindowX:     80,
		DodgerMinDY:       30,
		DodgerMaxDY:       160,
		DodgerCooldown:    700 * time.Millisecond,
		DodgerMinDistance: 100,
		DodgerAttempts:    8,
		DodgerFlash:       150 * time.Millisecond,
		DodgerFlashAlpha:  0.4,
		IceSlip:           350 * time.Millisecond,
		BouncyCooldown:    220 * time.Millisecond,
		BouncyFlash:       120 * time.Millisecond,
		BouncyMultiplier:  3,
		JumpImpulse:       520,
		InversaSpeed:      120,
	}
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// TuningFromSpec converts the yaml tuning block.
func TuningFromSpec(s prefabs.TuningSpec) Tuning {
	t := Tuning{
		ScreenWidth:    s.ScreenWidth,
		ScreenHeight:   s.ScreenHeight,
		PlatformWidth:  s.PlatformWidth,
		PlatformHeight: s.PlatformHeight,
		SensorHeight:   s.SensorHeight,
		EdgeMargin:     s.EdgeMargin,
		MaxY:           s.MaxY,
		AvoidX:         AvoidZone{Enabled: s.AvoidX.Enabled, X: s.AvoidX.X, Radius: s.AvoidX.Radius},
		AvoidAttempts:  s.AvoidAttempts,
		MinPlatforms:   s.MinPlatforms,
		GapMin:         s.GapMin,
		GapMax:         s.GapMax,
		DespawnMargin:  s.DespawnMargin,

		MoveChance:    s.MoveChance,
		MoveAmplitude: s.MoveAmplitude,
		MovePeriod:    ms(s.MovePeriodMS),

		BlinkInterval:     ms(s.BlinkIntervalMS),
		FragileOverlap:    ms(s.FragileOverlapMS),
		FragileBlink:      ms(s.FragileBlinkMS),
		TimedStay:         ms(s.TimedStayMS),
		TimedBlink:        ms(s.TimedBlinkMS),
		TimedRespawn:      ms(s.TimedRespawnMS),
		DodgerWindowX:     s.DodgerWindowX,
		DodgerMinDY:       s.DodgerMinDY,
		DodgerMaxDY:       s.DodgerMaxDY,
		DodgerCooldown:    ms(s.DodgerCooldownMS),
		DodgerMinDistance: s.DodgerMinDistance,
		DodgerAttempts:    s.DodgerAttempts,
		DodgerFlash:       ms(s.DodgerFlashMS),
		DodgerFlashAlpha:  s.DodgerFlashAlpha,
		IceSlip:           ms(s.IceSlipMS),
		BouncyCooldown:    ms(s.BouncyCooldownMS),
		BouncyFlash:       ms(s.BouncyFlashMS),
		BouncyMultiplier:  s.BouncyMultiplier,
		JumpImpulse:       s.JumpImpulse,
		InversaSpeed:      s.InversaSpeed,
	}
	if s.MoveExclusive != nil {
		t.MoveExclusive = make(map[component.PlatformKind]bool, len(s.MoveExclusive))
		for _, k := range s.MoveExclusive {
			t.MoveExclusive[component.PlatformKind(k)] = true
		}
	}
	return t
}

// withDefaults fills zero fields. MoveChance and the avoid zone are kept as
// given since zero is meaningful for both.
func (t Tuning) withDefaults() Tuning {
	d := DefaultTuning()
	setF := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	setI := func(v *int, def int) {
		if *v <= 0 {
			*v = def
		}
	}
	setD := func(v *time.Duration, def time.Duration) {
		if *v <= 0 {
			*v = def
		}
	}

	setF(&t.ScreenWidth, d.ScreenWidth)
	setF(&t.ScreenHeight, d.ScreenHeight)
	setF(&t.PlatformWidth, d.PlatformWidth)
	setF(&t.PlatformHeight, d.PlatformHeight)
	setF(&t.SensorHeight, d.SensorHeight)
	setF(&t.EdgeMargin, d.EdgeMargin)
	setF(&t.MaxY, d.MaxY)
	setI(&t.AvoidAttempts, d.AvoidAttempts)
	setI(&t.MinPlatforms, d.MinPlatforms)
	setF(&t.GapMin, d.GapMin)
	setF(&t.GapMax, d.GapMax)
	if t.GapMax < t.GapMin {
		t.GapMax = t.GapMin
	}
	setF(&t.DespawnMargin, d.DespawnMargin)
	if t.MoveExclusive == nil {
		t.MoveExclusive = d.MoveExclusive
	}
	setF(&t.MoveAmplitude, d.MoveAmplitude)
	setD(&t.MovePeriod, d.MovePeriod)

	setD(&t.BlinkInterval, d.BlinkInterval)
	setD(&t.FragileOverlap, d.FragileOverlap)
	setD(&t.FragileBlink, d.FragileBlink)
	setD(&t.TimedStay, d.TimedStay)
	setD(&t.TimedBlink, d.TimedBlink)
	setD(&t.TimedRespawn, d.TimedRespawn)
	setF(&t.DodgerWindowX, d.DodgerWindowX)
	setF(&t.DodgerMinDY, d.DodgerMinDY)
	setF(&t.DodgerMaxDY, d.DodgerMaxDY)
	setD(&t.DodgerCooldown, d.DodgerCooldown)
	setF(&t.DodgerMinDistance, d.DodgerMinDistance)
	setI(&t.DodgerAttempts, d.DodgerAttempts)
	setD(&t.DodgerFlash, d.DodgerFlash)
	setF(&t.DodgerFlashAlpha, d.DodgerFlashAlpha)
	setD(&t.IceSlip, d.IceSlip)
	setD(&t.BouncyCooldown, d.BouncyCooldown)
	setD(&t.BouncyFlash, d.BouncyFlash)
	setF(&t.BouncyMultiplier, d.BouncyMultiplier)
	setF(&t.JumpImpulse, d.JumpImpulse)
	setF(&t.InversaSpeed, d.InversaSpeed)
	return t
}
