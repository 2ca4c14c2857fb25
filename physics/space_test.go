package physics

import (
	"errors"
	"testing"
)

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b [4]float64 // x, y, w, h
		want bool
	}{
		{"same_box", [4]float64{0, 0, 10, 10}, [4]float64{0, 0, 10, 10}, true},
		{"partial", [4]float64{0, 0, 10, 10}, [4]float64{5, 5, 10, 10}, true},
		{"touching_edge", [4]float64{0, 0, 10, 10}, [4]float64{10, 0, 10, 10}, false},
		{"apart", [4]float64{0, 0, 10, 10}, [4]float64{50, 50, 4, 4}, false},
		{"thin_sensor_on_top", [4]float64{100, 94, 96, 6}, [4]float64{120, 60, 24, 36}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewSpace()
			a, err := s.CreateStaticBody(c.a[0], c.a[1], c.a[2], c.a[3])
			if err != nil {
				t.Fatalf("create a: %v", err)
			}
			b, err := s.CreateStaticBody(c.b[0], c.b[1], c.b[2], c.b[3])
			if err != nil {
				t.Fatalf("create b: %v", err)
			}
			if got := s.Overlaps(a, b); got != c.want {
				t.Fatalf("Overlaps = %v, want %v", got, c.want)
			}
			if got := s.Overlaps(b, a); got != c.want {
				t.Fatalf("Overlaps not symmetric: %v", got)
			}
		})
	}
}

func TestMoveAndDestroyBody(t *testing.T) {
	s := NewSpace()
	a, _ := s.CreateStaticBody(0, 0, 10, 10)
	b, _ := s.CreateStaticBody(100, 0, 10, 10)

	if s.Overlaps(a, b) {
		t.Fatalf("expected no overlap before move")
	}
	s.MoveBody(b, 5, 0)
	if !s.Overlaps(a, b) {
		t.Fatalf("expected overlap after move")
	}
	bb, ok := s.Bounds(b)
	if !ok || bb.L != 5 || bb.R != 15 || bb.B != 0 || bb.T != 10 {
		t.Fatalf("unexpected bounds %+v ok=%v", bb, ok)
	}

	s.DestroyBody(b)
	s.DestroyBody(b)
	if s.Overlaps(a, b) {
		t.Fatalf("destroyed body must not overlap")
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 body, got %d", s.Len())
	}
	s.MoveBody(b, 0, 0)
}

func TestCreateStaticBodyRejectsEmptyBox(t *testing.T) {
	s := NewSpace()
	if _, err := s.CreateStaticBody(0, 0, 0, 10); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
	var nilSpace *Space
	if _, err := nilSpace.CreateStaticBody(0, 0, 1, 1); !errors.Is(err, ErrNilSpace) {
		t.Fatalf("expected ErrNilSpace, got %v", err)
	}
}

func TestSensorOverlapFollowsMoves(t *testing.T) {
	s := NewSpace()
	solid, _ := s.CreateStaticBody(100, 100, 96, 20)
	sensor, err := s.CreateSensor(100, 94, 96, 6)
	if err != nil {
		t.Fatalf("CreateSensor: %v", err)
	}
	actor, _ := s.CreateStaticBody(300, 0, 24, 36)

	if s.IsSensor(solid) || !s.IsSensor(sensor) {
		t.Fatalf("sensor flag wrong: solid=%v sensor=%v", s.IsSensor(solid), s.IsSensor(sensor))
	}
	if s.Overlaps(sensor, solid) {
		t.Fatalf("sensor resting flush on its platform must not overlap it")
	}

	steps := []struct {
		name string
		x, y float64
		want bool
	}{
		{"far_away", 300, 0, false},
		{"feet_in_band", 130, 60, true},
		{"standing_on_top_edge", 130, 58, false},
		{"off_the_side", 196, 60, false},
		{"back_in_band", 190, 60, true},
	}
	for _, st := range steps {
		s.MoveBody(actor, st.x, st.y)
		if got := s.Overlaps(actor, sensor); got != st.want {
			t.Fatalf("%s: Overlaps = %v, want %v", st.name, got, st.want)
		}
	}
}
