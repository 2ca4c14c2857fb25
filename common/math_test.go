package common

import "testing"

func TestWrap(t *testing.T) {
	cases := []struct {
		x, width, want float64
	}{
		{10, 480, 10},
		{-5, 480, 475},
		{480, 480, 0},
		{965, 480, 5},
		{3, 0, 3},
	}
	for _, c := range cases {
		if got := Wrap(c.x, c.width); got != c.want {
			t.Fatalf("Wrap(%g, %g) = %g, want %g", c.x, c.width, got, c.want)
		}
	}
}

func TestSign(t *testing.T) {
	if Sign(-3) != -1 || Sign(0) != 0 || Sign(2.5) != 1 {
		t.Fatalf("unexpected Sign results")
	}
}
