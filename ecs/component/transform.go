package component

// Transform places an entity in world space. Platforms use X as the centre
// and Y as the top edge; y grows downward.
type Transform struct {
	X      float64
	Y      float64
	ScaleX float64
	ScaleY float64
}

var TransformComponent = NewComponent[Transform]()
