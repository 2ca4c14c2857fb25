package main

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	lavaColor = color.NRGBA{R: 0xff, G: 0x45, B: 0x1a, A: 0xff}
	lavaGlow  = color.NRGBA{R: 0xff, G: 0xb3, B: 0x30, A: 0xff}
)

// Lava rises from below and speeds up over time. It never trails further
// than lag pixels below the bottom of the view.
type Lava struct {
	Y     float64
	speed float64
	accel float64
	lag   float64
	t     float64
}

func NewLava(y float64) *Lava {
	return &Lava{Y: y, speed: 22, accel: 0.9, lag: 80}
}

func (l *Lava) Update(dt time.Duration, viewBottom float64) {
	secs := dt.Seconds()
	l.t += secs
	l.speed += l.accel * secs
	l.Y -= l.speed * secs
	l.Y = math.Min(l.Y, viewBottom+l.lag)
}

// Burns reports whether feet at y are under the surface.
func (l *Lava) Burns(y float64) bool {
	return y > l.Y
}

func (l *Lava) Draw(screen *ebiten.Image, viewTop float64) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	top := l.Y - viewTop
	if top >= float64(h) {
		return
	}
	// Surface ripple.
	for x := 0; x < w; x += 8 {
		off := 3 * math.Sin(l.t*4+float64(x)*0.08)
		vector.DrawFilledRect(screen, float32(x), float32(top+off-3), 8, 6, lavaGlow, false)
	}
	vector.DrawFilledRect(screen, 0, float32(top), float32(w), float32(float64(h)-top), lavaColor, false)
}
