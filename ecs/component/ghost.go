package component

// EdgeSide tells which wrap edge a platform is close to.
type EdgeSide int

const (
	EdgeNone EdgeSide = iota
	EdgeLeft
	EdgeRight
)

// Ghost marks a wrap mirror. Origin is the raw id of the mirrored platform
// (ecs.Entity is uint64).
type Ghost struct {
	Origin uint64
	Side   EdgeSide
}

var GhostComponent = NewComponent[Ghost]()
