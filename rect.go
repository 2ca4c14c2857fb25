package main

// Rect is an axis aligned box in world pixels, y down.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r *Rect) Intersects(other *Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Bottom is the y of the lower edge.
func (r *Rect) Bottom() float64 {
	return r.Y + r.Height
}

// CenterX is the horizontal middle.
func (r *Rect) CenterX() float64 {
	return r.X + r.Width/2
}
