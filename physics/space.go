// Package physics backs the platform engine's world port with a Chipmunk2D
// space and a millisecond timer queue.
package physics

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
)

var (
	ErrNilSpace    = errors.New("physics: space is nil")
	ErrInvalidSize = errors.New("physics: body size must be positive")
)

// BodyHandle identifies a body created through a Space. Zero is never valid.
type BodyHandle uint32

type body struct {
	body   *cp.Body
	shape  *cp.Shape
	width  float64
	height float64
}

// Space owns static collider bodies and the timers of one playthrough.
// It is not safe for concurrent use.
type Space struct {
	space  *cp.Space
	bodies map[BodyHandle]*body
	next   BodyHandle

	timers
}

func NewSpace() *Space {
	space := cp.NewSpace()
	space.Iterations = 20
	return &Space{
		space:  space,
		bodies: make(map[BodyHandle]*body),
		timers: newTimers(),
	}
}

// CP exposes the underlying chipmunk space, e.g. for debug drawing.
func (s *Space) CP() *cp.Space {
	if s == nil {
		return nil
	}
	return s.space
}

// CreateStaticBody adds a solid w*h box whose top-left corner sits at (x, y).
func (s *Space) CreateStaticBody(x, y, w, h float64) (BodyHandle, error) {
	return s.addBox(x, y, w, h, false)
}

// CreateSensor adds a w*h box that reports overlaps but never collides.
func (s *Space) CreateSensor(x, y, w, h float64) (BodyHandle, error) {
	return s.addBox(x, y, w, h, true)
}

func (s *Space) addBox(x, y, w, h float64, sensor bool) (BodyHandle, error) {
	if s == nil || s.space == nil {
		return 0, ErrNilSpace
	}
	if w <= 0 || h <= 0 {
		return 0, fmt.Errorf("create body %gx%g: %w", w, h, ErrInvalidSize)
	}

	b := cp.NewStaticBody()
	b.SetPosition(cp.Vector{X: x + w/2, Y: y + h/2})
	shape := cp.NewBox(b, w, h, 0)
	shape.SetFriction(1.0)
	shape.SetSensor(sensor)
	s.space.AddBody(b)
	s.space.AddShape(shape)
	shape.CacheBB()

	s.next++
	s.bodies[s.next] = &body{body: b, shape: shape, width: w, height: h}
	return s.next, nil
}

// MoveBody sets the top-left corner of h. Unknown handles are ignored.
func (s *Space) MoveBody(h BodyHandle, x, y float64) {
	b := s.lookup(h)
	if b == nil {
		return
	}
	b.body.SetPosition(cp.Vector{X: x + b.width/2, Y: y + b.height/2})
	b.shape.CacheBB()
}

// DestroyBody removes h from the space. Destroying twice is a no-op.
func (s *Space) DestroyBody(h BodyHandle) {
	b := s.lookup(h)
	if b == nil {
		return
	}
	s.space.RemoveShape(b.shape)
	s.space.RemoveBody(b.body)
	delete(s.bodies, h)
}

// Bounds returns the cached chipmunk bounding box of h.
func (s *Space) Bounds(h BodyHandle) (cp.BB, bool) {
	b := s.lookup(h)
	if b == nil {
		return cp.BB{}, false
	}
	return b.shape.BB(), true
}

// IsSensor reports whether h was created with CreateSensor.
func (s *Space) IsSensor(h BodyHandle) bool {
	b := s.lookup(h)
	return b != nil && b.shape.Sensor()
}

// Overlaps reports whether the shapes of a and b intersect. Touching edges
// do not count, so a platform resting flush under a sensor is not "inside" it.
func (s *Space) Overlaps(a, b BodyHandle) bool {
	ba, ok := s.Bounds(a)
	if !ok {
		return false
	}
	bb, ok := s.Bounds(b)
	if !ok {
		return false
	}
	return ba.Intersects(bb) && !touchOnly(ba, bb)
}

// Len returns the number of live bodies.
func (s *Space) Len() int {
	if s == nil {
		return 0
	}
	return len(s.bodies)
}

func (s *Space) lookup(h BodyHandle) *body {
	if s == nil || h == 0 {
		return nil
	}
	return s.bodies[h]
}

// touchOnly is true when a and b share an edge but no area. cp's
// BB.Intersects counts that as an intersection.
func touchOnly(a, b cp.BB) bool {
	return a.R == b.L || b.R == a.L || a.T == b.B || b.T == a.B
}
